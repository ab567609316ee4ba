package models

// Vendor represents a contracted vendor looked up by business number.
// Business numbers arrive in loose forms (hyphenated, digits-only, raw);
// matching normalizes to digits before comparing.
type Vendor struct {
	ID             int64  `json:"id,omitempty"`
	BusinessNumber string `json:"business_number"`
	Name           string `json:"name"`
	VendorCode     string `json:"vendor_code,omitempty"`
	Address        string `json:"address,omitempty"`
	Phone          string `json:"phone,omitempty"`
}
