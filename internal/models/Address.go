package models

// Address is a read-only lookup row keyed by camp and full_code prefix,
// used for raw address display alongside routes.
type Address struct {
	ID       int64  `json:"id,omitempty"`
	Camp     string `json:"camp"`
	FullCode string `json:"full_code"`
	Address  string `json:"address,omitempty"`
	Memo     string `json:"memo,omitempty"`
}
