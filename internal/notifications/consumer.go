package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/pkg/db/models"
	"github.com/ocampodev/supplyline-backend/pkg/enums"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
	"github.com/ocampodev/supplyline-backend/pkg/outbox"
	"github.com/ocampodev/supplyline-backend/pkg/outbox/idempotency"
	"github.com/ocampodev/supplyline-backend/pkg/outbox/payloads"
)

const shipmentNotificationConsumer = "shipment-notifications"

type repository interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// Consumer watches domain events and turns sales note transitions into
// store-facing notifications.
type Consumer struct {
	repo         repository
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	logg         *logger.Logger
}

// NewConsumer builds a shipment notification consumer.
func NewConsumer(repo repository, subscription *pubsub.Subscriber, manager *idempotency.Manager, logg *logger.Logger) (*Consumer, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("domain subscription required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		repo:         repo,
		subscription: subscription,
		idempotency:  manager,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := enums.OutboxEventType(msg.Attributes["event_type"])
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": string(eventType),
	})

	switch eventType {
	case enums.EventSalesNoteCreated, enums.EventSalesNoteShipped, enums.EventSalesNoteReceived:
	default:
		c.logg.Info(logCtx, "skipping non-shipment event")
		return processResult{ack: true}
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return processResult{ack: true}
	}

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, shipmentNotificationConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	}

	notification, err := c.buildNotification(eventType, envelope.Data)
	if err != nil {
		c.logg.Error(logCtx, "failed to parse payload", err)
		_ = c.idempotency.Delete(ctx, shipmentNotificationConsumer, eventID)
		return processResult{nack: true}
	}
	if notification == nil {
		c.logg.Info(logCtx, "event produces no notification")
		return processResult{ack: true}
	}

	logCtx = c.logg.WithStoreID(logCtx, notification.StoreID.String())
	if err := c.repo.Create(ctx, notification); err != nil {
		c.logg.Error(logCtx, "notification create failed", err)
		_ = c.idempotency.Delete(ctx, shipmentNotificationConsumer, eventID)
		return processResult{nack: true}
	}
	c.logg.Info(logCtx, "store notified of shipment update")
	return processResult{ack: true}
}

func (c *Consumer) buildNotification(eventType enums.OutboxEventType, data json.RawMessage) (*models.Notification, error) {
	switch eventType {
	case enums.EventSalesNoteCreated:
		var payload payloads.SalesNoteCreatedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		if payload.StoreID == uuid.Nil {
			return nil, fmt.Errorf("store id missing")
		}
		// Drafts are staging-side only, the store hears about them on ship.
		if payload.Status != string(enums.SalesNoteStatusShipped) {
			return nil, nil
		}
		return &models.Notification{
			StoreID: payload.StoreID,
			Type:    enums.NotificationTypeShipmentCreated,
			Title:   "Shipment on the way",
			Body:    fmt.Sprintf("A shipment with %d line items is headed to your store.", payload.ItemCount),
			Data:    noteRef(payload.SalesNoteID),
		}, nil
	case enums.EventSalesNoteShipped:
		var payload payloads.SalesNoteShippedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		if payload.StoreID == uuid.Nil {
			return nil, fmt.Errorf("store id missing")
		}
		return &models.Notification{
			StoreID: payload.StoreID,
			Type:    enums.NotificationTypeShipmentCreated,
			Title:   "Shipment on the way",
			Body:    "A drafted sales note for your store has shipped.",
			Data:    noteRef(payload.SalesNoteID),
		}, nil
	case enums.EventSalesNoteReceived:
		var payload payloads.SalesNoteReceivedEvent
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, err
		}
		if payload.StoreID == uuid.Nil {
			return nil, fmt.Errorf("store id missing")
		}
		return &models.Notification{
			StoreID: payload.StoreID,
			Type:    enums.NotificationTypeShipmentReceived,
			Title:   "Shipment received",
			Body:    "Receipt was confirmed for a shipment to your store.",
			Data:    noteRef(payload.SalesNoteID),
		}, nil
	default:
		return nil, nil
	}
}

func noteRef(salesNoteID uuid.UUID) json.RawMessage {
	raw, _ := json.Marshal(map[string]string{"sales_note_id": salesNoteID.String()})
	return raw
}
