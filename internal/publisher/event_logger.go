package publisher

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/pubsub"
	"github.com/inventorypos/salesdesk/internal/types"
)

// DecodeInvoiceCommittedEvent reads the payload written by PublishInvoiceCommitted
func DecodeInvoiceCommittedEvent(msg *message.Message) (*InvoiceCommittedEvent, error) {
	var event InvoiceCommittedEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid invoice event payload").
			WithReportableDetails(map[string]any{
				"message_uuid": msg.UUID,
			}).
			Mark(ierr.ErrValidation)
	}
	return &event, nil
}

// InvoiceEventLogger writes every committed invoice to the sales log
type InvoiceEventLogger struct {
	subscriber pubsub.Subscriber
	logger     *logger.Logger
}

func NewInvoiceEventLogger(subscriber pubsub.Subscriber, logger *logger.Logger) *InvoiceEventLogger {
	return &InvoiceEventLogger{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Run consumes invoice events until ctx is cancelled or the subscription closes
func (l *InvoiceEventLogger) Run(ctx context.Context) error {
	messages, err := l.subscriber.Subscribe(ctx, types.InvoiceEventCommitted)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to subscribe to invoice events").
			Mark(ierr.ErrSystem)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			l.handle(msg)
		}
	}
}

func (l *InvoiceEventLogger) handle(msg *message.Message) {
	// malformed payloads are acked too, redelivery cannot fix them
	defer msg.Ack()

	event, err := DecodeInvoiceCommittedEvent(msg)
	if err != nil {
		l.logger.Errorw("dropping invoice event", "message_uuid", msg.UUID, "error", err)
		return
	}

	l.logger.Infow("invoice committed",
		"event_id", event.ID,
		"invoice_id", event.InvoiceID,
		"invoice_number", event.InvoiceNumber,
		"customer_id", event.CustomerID,
		"item_count", event.ItemCount,
		"grand_total", event.GrandTotal.StringFixed(2),
		"due_amount", event.DueAmount.StringFixed(2),
		"created_by", event.CreatedBy,
	)
}
