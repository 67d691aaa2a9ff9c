package model

// Table statuses.
const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
)

// Table types.
const (
	TableStandard = "standard"
	TablePremium  = "premium"
	TableVIP      = "vip"
)

// Position is a layout coordinate expressed as percentages of the floor plan.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Table is one of the fixed dining tables seeded at startup.
// ReservationID is a weak reference used for lookups only; the table does
// not own the reservation's lifecycle.
type Table struct {
	ID            int      `json:"id"`
	Capacity      int      `json:"capacity"`
	Status        string   `json:"status"`
	ReservationID string   `json:"reservation_id,omitempty"`
	Position      Position `json:"position"`
	Price         float64  `json:"price"`
	Type          string   `json:"type"`
	Features      []string `json:"features"`
	Image         string   `json:"image"`
	Shape         string   `json:"shape"`
	Rotation      *float64 `json:"rotation,omitempty"`
}

// Selectable reports whether a party of the given size may pick this table.
func (t Table) Selectable(guests int) bool {
	return t.Status == TableAvailable && t.Capacity >= guests
}
