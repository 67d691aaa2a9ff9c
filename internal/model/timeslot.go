package model

// TimeSlot is a bookable time of day for the selected date. Slots are
// derived on demand and carry no identity beyond their time label.
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	TableID   *int   `json:"table_id,omitempty"`
}
