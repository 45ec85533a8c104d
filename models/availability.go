package models

// Availability statuses for a single (property, date) row.
const (
	AvailabilityAvailable = "available"
	AvailabilityBooked    = "booked"
	AvailabilityBlocked   = "blocked"
)

// AvailabilityDay is one calendar night of a property. Rows are unique per
// (propertyId, date); a missing row means the night is available at the
// base rate. Blocked rows come from iCal imports or manual holds and carry
// the feed source so cancellations never clear them.
type AvailabilityDay struct {
	PropertyID    string   `bson:"propertyId" json:"propertyId"`
	Date          string   `bson:"date" json:"date"` // "YYYY-MM-DD"
	Status        string   `bson:"status" json:"status"`
	BookingID     string   `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	PriceOverride *float64 `bson:"priceOverride,omitempty" json:"priceOverride,omitempty"`
	Source        string   `bson:"source,omitempty" json:"source,omitempty"` // e.g. "ical:airbnb"
}
