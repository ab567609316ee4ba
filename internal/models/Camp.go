package models

// Camp represents one delivery-location row under a camp. The mb_camp
// column is the name routes reference; lookups trim and lowercase it.
// Camp data is authoritative for address/coordinates over whatever a
// route row still carries.
type Camp struct {
	ID        int64    `json:"id,omitempty"`
	Camp      string   `json:"camp"`
	MBCamp    string   `json:"mb_camp"`
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
