package models

// Location is a geographic coordinate attached to an alert. Raw carries a
// caller-supplied coordinate string verbatim; Latitude/Longitude are set
// when the coordinate was resolved server-side.
type Location struct {
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	Raw       string  `json:"raw,omitempty"`
}

// HasCoordinates reports whether a numeric coordinate pair is present.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Raw == "" && (l.Latitude != 0 || l.Longitude != 0)
}

// AlertEvent is one user-triggered emergency broadcast. It is never
// persisted; recipients are resolved from configuration at dispatch time.
type AlertEvent struct {
	SenderName string `json:"sender_name"`
	Message    string `json:"message"`
	// Location is optional; empty string means "resolve server-side".
	Location string `json:"location,omitempty"`
}

// Delivery statuses for a single recipient.
const (
	StatusDelivered = "Delivered"
	StatusFailed    = "Failed"
)

// DeliveryOutcome is the result of one recipient's delivery attempt within
// a single dispatch. Error is set iff Status is Failed.
type DeliveryOutcome struct {
	RecipientID string `json:"recipient_id"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
}
