package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sylesh7/medinnovate/internal/logger"
	"github.com/sylesh7/medinnovate/internal/models"
)

// Error variables
var (
	ErrMissingField      = errors.New("sender name and message are required")
	ErrMissingCredential = errors.New("messaging credential is not configured")
	ErrNoRecipients      = errors.New("no alert recipients configured")
)

// DefaultDeliveryTimeout bounds each recipient's network attempt so one
// unreachable recipient cannot stall the whole fan-out.
const DefaultDeliveryTimeout = 5 * time.Second

// MessageSender delivers a composed alert to a single recipient.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID, text string) error
	SendLocation(ctx context.Context, chatID string, lat, lon float64) error
}

// HostLocator resolves the dispatching host's coordinates best-effort.
type HostLocator interface {
	Resolve(ctx context.Context) (lat, lon float64, ok bool)
}

// LocationCache caches the resolved host coordinates.
type LocationCache interface {
	GetHostLocation(ctx context.Context) (lat, lon float64, ok bool, err error)
	SetHostLocation(ctx context.Context, lat, lon float64) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AlertService composes an emergency message and fans it out to every
// configured recipient, recording each recipient's outcome independently.
type AlertService struct {
	sender      MessageSender // nil when no credential is configured
	locator     HostLocator
	cache       LocationCache // optional
	kafkaWriter KafkaWriter   // optional
	recipients  []string
	timeout     time.Duration
}

// NewAlertService creates a new AlertService. A nil sender means the
// messaging credential was absent; dispatch then fails fast. cache and
// kafkaWriter may be nil.
func NewAlertService(
	sender MessageSender,
	locator HostLocator,
	cache LocationCache,
	kafkaWriter KafkaWriter,
	recipients []string,
	timeout time.Duration,
) *AlertService {
	if timeout <= 0 {
		timeout = DefaultDeliveryTimeout
	}
	return &AlertService{
		sender:      sender,
		locator:     locator,
		cache:       cache,
		kafkaWriter: kafkaWriter,
		recipients:  recipients,
		timeout:     timeout,
	}
}

// ParseRecipients splits a comma-separated recipient list, trimming each
// entry and dropping empty ones.
func ParseRecipients(raw string) []string {
	var recipients []string
	for _, r := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(r); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}

// Dispatch validates the event, resolves a best-effort location, and
// delivers the composed message to every configured recipient
// concurrently. The returned outcomes follow the configured recipient
// order, one entry per recipient; a failed recipient never aborts or
// skips the others. No retries within a call.
func (s *AlertService) Dispatch(ctx context.Context, event models.AlertEvent) ([]models.DeliveryOutcome, error) {
	if strings.TrimSpace(event.SenderName) == "" || strings.TrimSpace(event.Message) == "" {
		return nil, ErrMissingField
	}
	if s.sender == nil {
		logger.Log.Errorw("dispatch rejected", "reason", "missing messaging credential")
		return nil, ErrMissingCredential
	}
	if len(s.recipients) == 0 {
		logger.Log.Errorw("dispatch rejected", "reason", "empty recipient list")
		return nil, ErrNoRecipients
	}

	location := s.resolveLocation(ctx, event.Location)
	body := composeBody(event, location)

	outcomes := make([]models.DeliveryOutcome, len(s.recipients))
	var wg sync.WaitGroup
	for i, recipientID := range s.recipients {
		wg.Add(1)
		go func(i int, recipientID string) {
			defer wg.Done()
			outcomes[i] = s.deliver(ctx, recipientID, body, location)
		}(i, recipientID)
	}
	wg.Wait()

	s.publishDispatchRecord(ctx, event, location, outcomes)

	return outcomes, nil
}

// deliver attempts one recipient with a bounded timeout. The location pin
// is a best-effort follow-up: its failure does not fail the delivery once
// the message itself went through.
func (s *AlertService) deliver(ctx context.Context, recipientID, body string, location *models.Location) models.DeliveryOutcome {
	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.sender.SendMessage(sendCtx, recipientID, body); err != nil {
		logger.Log.Errorw("alert delivery failed", "recipient", recipientID, "err", err)
		return models.DeliveryOutcome{
			RecipientID: recipientID,
			Status:      models.StatusFailed,
			Error:       err.Error(),
		}
	}

	if location.HasCoordinates() {
		if err := s.sender.SendLocation(sendCtx, recipientID, location.Latitude, location.Longitude); err != nil {
			logger.Log.Warnw("location pin failed after message delivery", "recipient", recipientID, "err", err)
		}
	}

	return models.DeliveryOutcome{
		RecipientID: recipientID,
		Status:      models.StatusDelivered,
	}
}

// resolveLocation prefers a caller-supplied coordinate string verbatim,
// then the cached host coordinate, then a fresh geolocation lookup. A nil
// result just drops the location line from the message.
func (s *AlertService) resolveLocation(ctx context.Context, supplied string) *models.Location {
	if trimmed := strings.TrimSpace(supplied); trimmed != "" {
		return &models.Location{Raw: trimmed}
	}

	if s.cache != nil {
		lat, lon, ok, err := s.cache.GetHostLocation(ctx)
		if err != nil {
			logger.Log.Warnw("location cache unavailable", "err", err)
		} else if ok {
			return &models.Location{Latitude: lat, Longitude: lon}
		}
	}

	if s.locator == nil {
		return nil
	}
	lat, lon, ok := s.locator.Resolve(ctx)
	if !ok {
		return nil
	}

	if s.cache != nil {
		if err := s.cache.SetHostLocation(ctx, lat, lon); err != nil {
			logger.Log.Warnw("failed to cache host location", "err", err)
		}
	}

	return &models.Location{Latitude: lat, Longitude: lon}
}

func composeBody(event models.AlertEvent, location *models.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "EMERGENCY ALERT from %s\n", strings.TrimSpace(event.SenderName))
	b.WriteString(strings.TrimSpace(event.Message))
	if location != nil {
		if location.Raw != "" {
			fmt.Fprintf(&b, "\nLocation: %s", location.Raw)
		} else {
			fmt.Fprintf(&b, "\nLocation: %.6f,%.6f", location.Latitude, location.Longitude)
		}
	}
	return b.String()
}

// publishDispatchRecord publishes an audit record for the whole dispatch.
// Publishing is best-effort and never affects the returned outcomes.
func (s *AlertService) publishDispatchRecord(ctx context.Context, event models.AlertEvent, location *models.Location, outcomes []models.DeliveryOutcome) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping dispatch audit")
		return
	}

	record := models.DispatchRecord{
		DispatchID:   uuid.New().String(),
		SenderName:   event.SenderName,
		Recipients:   len(outcomes),
		Outcomes:     outcomes,
		DispatchedAt: time.Now().UTC(),
	}
	if location != nil {
		if location.Raw != "" {
			record.Location = location.Raw
		} else {
			record.Location = fmt.Sprintf("%.6f,%.6f", location.Latitude, location.Longitude)
		}
	}
	for _, o := range outcomes {
		if o.Status == models.StatusDelivered {
			record.Delivered++
		} else {
			record.Failed++
		}
	}

	data, err := json.Marshal(record)
	if err != nil {
		logger.Log.Errorw("Failed to marshal dispatch record for Kafka", "dispatch_id", record.DispatchID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(record.DispatchID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish dispatch record to Kafka", "dispatch_id", record.DispatchID, "error", err)
	} else {
		logger.Log.Infow("Dispatch record published to Kafka", "dispatch_id", record.DispatchID, "delivered", record.Delivered, "failed", record.Failed)
	}
}
