package publisher_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/inventorypos/salesdesk/internal/config"
	"github.com/inventorypos/salesdesk/internal/domain/invoice"
	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/inventorypos/salesdesk/internal/logger"
	"github.com/inventorypos/salesdesk/internal/publisher"
	"github.com/inventorypos/salesdesk/internal/testutil"
	"github.com/inventorypos/salesdesk/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type EventPublisherSuite struct {
	suite.Suite
	ctx    context.Context
	cfg    *config.Configuration
	logger *logger.Logger
	pubsub *testutil.InMemoryPubSub
}

func TestEventPublisher(t *testing.T) {
	suite.Run(t, new(EventPublisherSuite))
}

func (s *EventPublisherSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.cfg = config.GetDefaultConfig()
	s.logger = logger.NewNopLogger()
	s.pubsub = testutil.NewInMemoryPubSub()
}

func (s *EventPublisherSuite) sampleInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:            "inv_01",
		InvoiceNumber: "INV-202610-00007",
		CustomerID:    "cust_kamal",
		GrandTotal:    decimal.RequireFromString("61.38"),
		DueAmount:     decimal.RequireFromString("11.38"),
		CreatedBy:     "cashier_2",
		LineItems: []*invoice.InvoiceLineItem{
			{Position: 1, ProductID: "prod_a", Quantity: 1},
			{Position: 2, ProductID: "prod_b", Quantity: 4},
		},
	}
}

func (s *EventPublisherSuite) TestPublishInvoiceCommitted() {
	pub := publisher.NewEventPublisher(s.cfg, s.logger, s.pubsub)
	s.Require().NoError(pub.PublishInvoiceCommitted(s.ctx, s.sampleInvoice()))

	msgs := s.pubsub.GetMessages(types.InvoiceEventCommitted)
	s.Require().Len(msgs, 1)
	s.Equal("INV-202610-00007", msgs[0].Metadata.Get("invoice_number"))

	event, err := publisher.DecodeInvoiceCommittedEvent(msgs[0])
	s.Require().NoError(err)
	s.Equal(msgs[0].UUID, event.ID)
	s.Equal(types.InvoiceEventCommitted, event.EventName)
	s.Equal("inv_01", event.InvoiceID)
	s.Equal("cust_kamal", event.CustomerID)
	s.Equal(2, event.ItemCount)
	s.Equal("61.38", event.GrandTotal.StringFixed(2))
	s.Equal("11.38", event.DueAmount.StringFixed(2))
	s.Equal("cashier_2", event.CreatedBy)
}

func (s *EventPublisherSuite) TestDisabledEventsAreDropped() {
	s.cfg.Events.Enabled = false
	pub := publisher.NewEventPublisher(s.cfg, s.logger, s.pubsub)

	s.Require().NoError(pub.PublishInvoiceCommitted(s.ctx, s.sampleInvoice()))
	s.Empty(s.pubsub.GetMessages(types.InvoiceEventCommitted))
}

func (s *EventPublisherSuite) TestPublishFailureIsSystemError() {
	s.pubsub.FailPublish(errors.New("broker down"))
	pub := publisher.NewEventPublisher(s.cfg, s.logger, s.pubsub)

	err := pub.PublishInvoiceCommitted(s.ctx, s.sampleInvoice())
	s.Error(err)
	s.True(ierr.Is(err, ierr.ErrSystem))
}

func (s *EventPublisherSuite) TestDecodeRejectsMalformedPayload() {
	_, err := publisher.DecodeInvoiceCommittedEvent(message.NewMessage("bad", []byte("{")))
	s.True(ierr.IsValidation(err))
}

func (s *EventPublisherSuite) TestEventLoggerAcksMessages() {
	pub := publisher.NewEventPublisher(s.cfg, s.logger, s.pubsub)
	s.Require().NoError(pub.PublishInvoiceCommitted(s.ctx, s.sampleInvoice()))
	malformed := message.NewMessage("bad", []byte("not json"))
	s.Require().NoError(s.pubsub.Publish(s.ctx, types.InvoiceEventCommitted, malformed))

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error, 1)
	go func() {
		done <- publisher.NewInvoiceEventLogger(s.pubsub, s.logger).Run(ctx)
	}()

	for _, msg := range s.pubsub.GetMessages(types.InvoiceEventCommitted) {
		select {
		case <-msg.Acked():
		case <-time.After(2 * time.Second):
			s.FailNow("message was not acked", msg.UUID)
		}
	}

	cancel()
	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(2 * time.Second):
		s.FailNow("event logger did not stop")
	}
}
