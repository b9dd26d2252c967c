package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/inventorypos/salesdesk/internal/config"
	"github.com/inventorypos/salesdesk/internal/domain/invoice"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/pubsub"
	"github.com/inventorypos/salesdesk/internal/types"
	"github.com/shopspring/decimal"
)

// InvoiceCommittedEvent is the payload published after an invoice is saved
type InvoiceCommittedEvent struct {
	ID            string          `json:"id"`
	EventName     string          `json:"event_name"`
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    string          `json:"customer_id"`
	ItemCount     int             `json:"item_count"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	DueAmount     decimal.Decimal `json:"due_amount"`
	CreatedBy     string          `json:"created_by"`
	Timestamp     time.Time       `json:"timestamp"`
}

// EventPublisher handles invoice event publishing
type EventPublisher interface {
	PublishInvoiceCommitted(ctx context.Context, inv *invoice.Invoice) error
}

type eventPublisher struct {
	pubsub pubsub.Publisher
	config *config.EventsConfig
	logger *logger.Logger
}

// NewEventPublisher creates a new publisher. With events disabled the
// publisher accepts every event and drops it.
func NewEventPublisher(
	cfg *config.Configuration,
	logger *logger.Logger,
	pubSub pubsub.PubSub,
) EventPublisher {
	return &eventPublisher{
		pubsub: pubSub,
		config: &cfg.Events,
		logger: logger,
	}
}

func NewInvoiceCommittedEvent(inv *invoice.Invoice) *InvoiceCommittedEvent {
	return &InvoiceCommittedEvent{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EVENT),
		EventName:     types.InvoiceEventCommitted,
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		ItemCount:     inv.ItemCount(),
		GrandTotal:    inv.GrandTotal,
		DueAmount:     inv.DueAmount,
		CreatedBy:     inv.CreatedBy,
		Timestamp:     time.Now().UTC(),
	}
}

func (p *eventPublisher) PublishInvoiceCommitted(ctx context.Context, inv *invoice.Invoice) error {
	if !p.config.Enabled {
		return nil
	}

	event := NewInvoiceCommittedEvent(inv)
	payload, err := json.Marshal(event)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode invoice event").
			Mark(ierr.ErrSystem)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("invoice_number", inv.InvoiceNumber)

	p.logger.Debugw("publishing invoice event",
		"event_id", event.ID,
		"event_name", event.EventName,
		"invoice_number", inv.InvoiceNumber,
	)

	if err := p.pubsub.Publish(ctx, types.InvoiceEventCommitted, msg); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to publish invoice event").
			Mark(ierr.ErrSystem)
	}
	return nil
}
