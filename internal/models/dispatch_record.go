package models

import "time"

// DispatchRecord is the audit event published to Kafka after an alert
// fan-out completes. One record per dispatch call, not per recipient.
type DispatchRecord struct {
	DispatchID   string            `json:"dispatch_id"`
	SenderName   string            `json:"sender_name"`
	Location     string            `json:"location,omitempty"`
	Recipients   int               `json:"recipients"`
	Delivered    int               `json:"delivered"`
	Failed       int               `json:"failed"`
	Outcomes     []DeliveryOutcome `json:"outcomes"`
	DispatchedAt time.Time         `json:"dispatched_at"`
}
