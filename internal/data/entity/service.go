package entity

type PricingUnit string

const (
	PricingUnitHourly   PricingUnit = "hourly"
	PricingUnitQuantity PricingUnit = "quantity"
)

// Service is a catalog entry. The catalog is maintained elsewhere; bookings
// only read it for pricing.
type Service struct {
	Base
	Name          string      `db:"name"`
	Description   *string     `db:"description"`
	UnitType      PricingUnit `db:"unit_type"`
	UnitPrice     float64     `db:"unit_price"`
	MinQuantity   float64     `db:"min_quantity"`
	RequiresNotes bool        `db:"requires_notes"`
	NotePrompt    *string     `db:"note_prompt"`
	IsActive      bool        `db:"is_active"`
}
