package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/sylesh7/medinnovate/internal/models"
	"github.com/sylesh7/medinnovate/internal/services"
)

func TestParseRecipients(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"plain list", "111,222,333", []string{"111", "222", "333"}},
		{"whitespace trimmed", " 111 , 222 ,333 ", []string{"111", "222", "333"}},
		{"empty entries dropped", "111,,222,", []string{"111", "222"}},
		{"empty string", "", nil},
		{"only separators", ", ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.ParseRecipients(tt.raw))
		})
	}
}

func TestAlertService_Dispatch_OrderedOutcomes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sender := services.NewMockMessageSender(ctrl)
	locator := services.NewMockHostLocator(ctrl)

	locator.EXPECT().Resolve(gomock.Any()).Return(0.0, 0.0, false)

	// B fails, A and C succeed. Order of the result must follow the
	// configured recipient order regardless of completion order.
	sender.EXPECT().SendMessage(gomock.Any(), "A", gomock.Any()).Return(nil)
	sender.EXPECT().SendMessage(gomock.Any(), "B", gomock.Any()).Return(errors.New("chat not found"))
	sender.EXPECT().SendMessage(gomock.Any(), "C", gomock.Any()).Return(nil)

	svc := services.NewAlertService(sender, locator, nil, nil, []string{"A", "B", "C"}, time.Second)

	outcomes, err := svc.Dispatch(context.Background(), models.AlertEvent{
		SenderName: "alice",
		Message:    "need help now",
	})
	assert.NoError(t, err)
	assert.Len(t, outcomes, 3)

	assert.Equal(t, "A", outcomes[0].RecipientID)
	assert.Equal(t, models.StatusDelivered, outcomes[0].Status)
	assert.Empty(t, outcomes[0].Error)

	assert.Equal(t, "B", outcomes[1].RecipientID)
	assert.Equal(t, models.StatusFailed, outcomes[1].Status)
	assert.Contains(t, outcomes[1].Error, "chat not found")

	assert.Equal(t, "C", outcomes[2].RecipientID)
	assert.Equal(t, models.StatusDelivered, outcomes[2].Status)
	assert.Empty(t, outcomes[2].Error)
}

func TestAlertService_Dispatch_MissingFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: nothing may be called before validation.
	sender := services.NewMockMessageSender(ctrl)
	locator := services.NewMockHostLocator(ctrl)

	svc := services.NewAlertService(sender, locator, nil, nil, []string{"A"}, time.Second)

	tests := []struct {
		name  string
		event models.AlertEvent
	}{
		{"empty sender", models.AlertEvent{Message: "help"}},
		{"empty message", models.AlertEvent{SenderName: "alice"}},
		{"whitespace only", models.AlertEvent{SenderName: "  ", Message: "\t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcomes, err := svc.Dispatch(context.Background(), tt.event)
			assert.ErrorIs(t, err, services.ErrMissingField)
			assert.Nil(t, outcomes)
		})
	}
}

func TestAlertService_Dispatch_Misconfiguration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	event := models.AlertEvent{SenderName: "alice", Message: "help"}

	t.Run("no credential", func(t *testing.T) {
		svc := services.NewAlertService(nil, services.NewMockHostLocator(ctrl), nil, nil, []string{"A"}, time.Second)

		outcomes, err := svc.Dispatch(context.Background(), event)
		assert.ErrorIs(t, err, services.ErrMissingCredential)
		assert.Nil(t, outcomes)
	})

	t.Run("no recipients", func(t *testing.T) {
		sender := services.NewMockMessageSender(ctrl) // must not be invoked
		svc := services.NewAlertService(sender, services.NewMockHostLocator(ctrl), nil, nil, nil, time.Second)

		outcomes, err := svc.Dispatch(context.Background(), event)
		assert.ErrorIs(t, err, services.ErrNoRecipients)
		assert.Nil(t, outcomes)
	})
}

func TestAlertService_Dispatch_LocationVariants(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	event := models.AlertEvent{SenderName: "alice", Message: "help"}

	t.Run("no location still delivers, body has no location line", func(t *testing.T) {
		sender := services.NewMockMessageSender(ctrl)
		locator := services.NewMockHostLocator(ctrl)

		locator.EXPECT().Resolve(gomock.Any()).Return(0.0, 0.0, false)

		var gotBody string
		sender.EXPECT().
			SendMessage(gomock.Any(), "A", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, text string) error {
				gotBody = text
				return nil
			})

		svc := services.NewAlertService(sender, locator, nil, nil, []string{"A"}, time.Second)

		outcomes, err := svc.Dispatch(context.Background(), event)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusDelivered, outcomes[0].Status)
		assert.Contains(t, gotBody, "alice")
		assert.Contains(t, gotBody, "help")
		assert.NotContains(t, gotBody, "Location:")
	})

	t.Run("caller-supplied coordinate used verbatim", func(t *testing.T) {
		sender := services.NewMockMessageSender(ctrl)
		locator := services.NewMockHostLocator(ctrl) // must not be queried

		var gotBody string
		sender.EXPECT().
			SendMessage(gomock.Any(), "A", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, text string) error {
				gotBody = text
				return nil
			})

		svc := services.NewAlertService(sender, locator, nil, nil, []string{"A"}, time.Second)

		supplied := event
		supplied.Location = "12.9716,77.5946"
		_, err := svc.Dispatch(context.Background(), supplied)
		assert.NoError(t, err)
		assert.Contains(t, gotBody, "Location: 12.9716,77.5946")
	})

	t.Run("resolved coordinate triggers location pin", func(t *testing.T) {
		sender := services.NewMockMessageSender(ctrl)
		locator := services.NewMockHostLocator(ctrl)

		locator.EXPECT().Resolve(gomock.Any()).Return(51.5, -0.12, true)
		sender.EXPECT().SendMessage(gomock.Any(), "A", gomock.Any()).Return(nil)
		sender.EXPECT().SendLocation(gomock.Any(), "A", 51.5, -0.12).Return(nil)

		svc := services.NewAlertService(sender, locator, nil, nil, []string{"A"}, time.Second)

		outcomes, err := svc.Dispatch(context.Background(), event)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusDelivered, outcomes[0].Status)
	})

	t.Run("failed location pin does not fail the delivery", func(t *testing.T) {
		sender := services.NewMockMessageSender(ctrl)
		locator := services.NewMockHostLocator(ctrl)

		locator.EXPECT().Resolve(gomock.Any()).Return(51.5, -0.12, true)
		sender.EXPECT().SendMessage(gomock.Any(), "A", gomock.Any()).Return(nil)
		sender.EXPECT().SendLocation(gomock.Any(), "A", 51.5, -0.12).Return(errors.New("flood limit"))

		svc := services.NewAlertService(sender, locator, nil, nil, []string{"A"}, time.Second)

		outcomes, err := svc.Dispatch(context.Background(), event)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusDelivered, outcomes[0].Status)
	})
}

func TestAlertService_Dispatch_LocationCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	event := models.AlertEvent{SenderName: "alice", Message: "help"}

	t.Run("cache hit skips the lookup", func(t *testing.T) {
		sender := services.NewMockMessageSender(ctrl)
		locator := services.NewMockHostLocator(ctrl) // no Resolve expected
		cache := services.NewMockLocationCache(ctrl)

		cache.EXPECT().GetHostLocation(gomock.Any()).Return(48.85, 2.35, true, nil)
		sender.EXPECT().SendMessage(gomock.Any(), "A", gomock.Any()).Return(nil)
		sender.EXPECT().SendLocation(gomock.Any(), "A", 48.85, 2.35).Return(nil)

		svc := services.NewAlertService(sender, locator, cache, nil, []string{"A"}, time.Second)

		_, err := svc.Dispatch(context.Background(), event)
		assert.NoError(t, err)
	})

	t.Run("cache miss falls through and stores the result", func(t *testing.T) {
		sender := services.NewMockMessageSender(ctrl)
		locator := services.NewMockHostLocator(ctrl)
		cache := services.NewMockLocationCache(ctrl)

		cache.EXPECT().GetHostLocation(gomock.Any()).Return(0.0, 0.0, false, nil)
		locator.EXPECT().Resolve(gomock.Any()).Return(48.85, 2.35, true)
		cache.EXPECT().SetHostLocation(gomock.Any(), 48.85, 2.35).Return(nil)
		sender.EXPECT().SendMessage(gomock.Any(), "A", gomock.Any()).Return(nil)
		sender.EXPECT().SendLocation(gomock.Any(), "A", 48.85, 2.35).Return(nil)

		svc := services.NewAlertService(sender, locator, cache, nil, []string{"A"}, time.Second)

		_, err := svc.Dispatch(context.Background(), event)
		assert.NoError(t, err)
	})

	t.Run("cache error degrades to a fresh lookup", func(t *testing.T) {
		sender := services.NewMockMessageSender(ctrl)
		locator := services.NewMockHostLocator(ctrl)
		cache := services.NewMockLocationCache(ctrl)

		cache.EXPECT().GetHostLocation(gomock.Any()).Return(0.0, 0.0, false, errors.New("redis down"))
		locator.EXPECT().Resolve(gomock.Any()).Return(0.0, 0.0, false)
		sender.EXPECT().SendMessage(gomock.Any(), "A", gomock.Any()).Return(nil)

		svc := services.NewAlertService(sender, locator, cache, nil, []string{"A"}, time.Second)

		outcomes, err := svc.Dispatch(context.Background(), event)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusDelivered, outcomes[0].Status)
	})
}

func TestAlertService_Dispatch_PublishesAuditRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sender := services.NewMockMessageSender(ctrl)
	locator := services.NewMockHostLocator(ctrl)
	writer := services.NewMockKafkaWriter(ctrl)

	locator.EXPECT().Resolve(gomock.Any()).Return(0.0, 0.0, false)
	sender.EXPECT().SendMessage(gomock.Any(), "A", gomock.Any()).Return(nil)
	sender.EXPECT().SendMessage(gomock.Any(), "B", gomock.Any()).Return(errors.New("timeout"))
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

	svc := services.NewAlertService(sender, locator, nil, writer, []string{"A", "B"}, time.Second)

	outcomes, err := svc.Dispatch(context.Background(), models.AlertEvent{
		SenderName: "alice",
		Message:    "help",
	})
	assert.NoError(t, err)
	assert.Len(t, outcomes, 2)
}

func TestAlertService_Dispatch_KafkaFailureIsNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sender := services.NewMockMessageSender(ctrl)
	locator := services.NewMockHostLocator(ctrl)
	writer := services.NewMockKafkaWriter(ctrl)

	locator.EXPECT().Resolve(gomock.Any()).Return(0.0, 0.0, false)
	sender.EXPECT().SendMessage(gomock.Any(), "A", gomock.Any()).Return(nil)
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker unreachable"))

	svc := services.NewAlertService(sender, locator, nil, writer, []string{"A"}, time.Second)

	outcomes, err := svc.Dispatch(context.Background(), models.AlertEvent{
		SenderName: "alice",
		Message:    "help",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, outcomes[0].Status)
}

func TestAlertService_Dispatch_SlowRecipientIsBounded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sender := services.NewMockMessageSender(ctrl)
	locator := services.NewMockHostLocator(ctrl)

	locator.EXPECT().Resolve(gomock.Any()).Return(0.0, 0.0, false)

	// The slow recipient honors its context deadline; the fast one is
	// unaffected because deliveries run concurrently.
	sender.EXPECT().
		SendMessage(gomock.Any(), "slow", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string) error {
			<-ctx.Done()
			return ctx.Err()
		})
	sender.EXPECT().SendMessage(gomock.Any(), "fast", gomock.Any()).Return(nil)

	svc := services.NewAlertService(sender, locator, nil, nil, []string{"slow", "fast"}, 100*time.Millisecond)

	start := time.Now()
	outcomes, err := svc.Dispatch(context.Background(), models.AlertEvent{
		SenderName: "alice",
		Message:    "help",
	})
	elapsed := time.Since(start)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusFailed, outcomes[0].Status)
	assert.True(t, strings.Contains(outcomes[0].Error, "context deadline exceeded"))
	assert.Equal(t, models.StatusDelivered, outcomes[1].Status)
	assert.Less(t, elapsed, time.Second, "total latency is one timeout, not the sum")
}
