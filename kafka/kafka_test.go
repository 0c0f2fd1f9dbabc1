package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/tair/warehouse-inventory/internal/inventory/domain"
	"github.com/tair/warehouse-inventory/internal/inventory/inventorytest"
	"github.com/tair/warehouse-inventory/internal/inventory/usecase/command"
	"github.com/tair/warehouse-inventory/internal/notify"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

func header(msg *sarama.ProducerMessage, key string) string {
	for _, h := range msg.Headers {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublisherCarriesEventAndTraceHeaders(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})

	producer := mocks.NewSyncProducer(t, NewProducerConfig())
	event := notify.NewEvent(notify.EventInventoryUpdate, map[string]string{"type": "CREATE"})

	ctx, span := tp.Tracer("test").Start(context.Background(), "request")
	defer span.End()
	traceID := span.SpanContext().TraceID().String()

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != TopicInventoryEvents {
			return errors.New("unexpected topic " + msg.Topic)
		}
		if header(msg, HeaderEventType) != notify.EventInventoryUpdate {
			return errors.New("missing event_type header")
		}
		if header(msg, HeaderEventID) != event.ID {
			return errors.New("missing event_id header")
		}
		if !strings.Contains(header(msg, "traceparent"), traceID) {
			return errors.New("traceparent does not carry the caller's trace")
		}

		body, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var decoded notify.Event
		if err := json.Unmarshal(body, &decoded); err != nil {
			return err
		}
		if decoded.Name != notify.EventInventoryUpdate {
			return errors.New("unexpected event name " + decoded.Name)
		}
		return nil
	})

	publisher := NewPublisherWithProducer(producer, "")
	require.NoError(t, publisher.Publish(ctx, event))
	require.NoError(t, publisher.Close())
}

func TestPublisherReturnsSendErrors(t *testing.T) {
	producer := mocks.NewSyncProducer(t, NewProducerConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewPublisherWithProducer(producer, "events")
	err := publisher.Publish(context.Background(), notify.NewEvent(notify.EventAlertsNew, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func stockMessage(t *testing.T, event StockActionRequestedEvent) *sarama.ConsumerMessage {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return &sarama.ConsumerMessage{
		Topic: TopicStockCommands,
		Value: body,
		Headers: []*sarama.RecordHeader{
			{Key: []byte(HeaderEventType), Value: []byte(EventTypeStockActionRequested)},
			{Key: []byte(HeaderEventID), Value: []byte(event.EventID)},
		},
	}
}

func TestConsumerAppliesStockCommands(t *testing.T) {
	store := inventorytest.NewMemoryStore()
	item := store.Seed(domain.Item{SKU: "BOLT-1", Name: "Bolt", StockLevel: 10, MinStock: 2})[0]
	apply := command.NewApplyStockActionHandler(store, command.NewHooks(nil, nil))

	consumer := newConsumer(nil, "inventory-service", []string{TopicStockCommands})
	consumer.RegisterHandler(EventTypeStockActionRequested, StockActionHandler(apply))

	err := consumer.handleMessage(context.Background(), stockMessage(t, StockActionRequestedEvent{
		EventID:    "evt-1",
		ItemID:     item.ID,
		ActionType: string(domain.ActionRemoveStock),
		Quantity:   4,
		ActorID:    "scanner-7",
	}))
	require.NoError(t, err)

	stored, ok := store.Item(item.ID)
	require.True(t, ok)
	assert.Equal(t, 6, stored.StockLevel)

	actions := store.AllActions()
	require.Len(t, actions, 1)
	assert.Equal(t, "scanner-7", actions[0].UserID)
	assert.Equal(t, "Kafka event evt-1", actions[0].Notes)

	// rejected commands leave stock untouched
	err = consumer.handleMessage(context.Background(), stockMessage(t, StockActionRequestedEvent{
		EventID:    "evt-2",
		ItemID:     item.ID,
		ActionType: string(domain.ActionRemoveStock),
		Quantity:   100,
		ActorID:    "scanner-7",
	}))
	assert.True(t, errors.Is(err, apperror.ErrInsufficientStock))
	stored, _ = store.Item(item.ID)
	assert.Equal(t, 6, stored.StockLevel)
}

func TestConsumerRejectsUnknownAndMalformedMessages(t *testing.T) {
	consumer := newConsumer(nil, "g", nil)
	consumer.RegisterHandler(EventTypeStockActionRequested, StockActionHandler(nil))

	err := consumer.handleMessage(context.Background(), &sarama.ConsumerMessage{
		Headers: []*sarama.RecordHeader{{Key: []byte(HeaderEventType), Value: []byte("other")}},
	})
	assert.ErrorIs(t, err, ErrNoHandler)

	err = consumer.handleMessage(context.Background(), &sarama.ConsumerMessage{
		Value:   []byte("{not json"),
		Headers: []*sarama.RecordHeader{{Key: []byte(HeaderEventType), Value: []byte(EventTypeStockActionRequested)}},
	})
	assert.ErrorIs(t, err, ErrMalformedEvent)

	err = consumer.handleMessage(context.Background(), stockMessage(t, StockActionRequestedEvent{EventID: "e", ItemID: "x"}))
	assert.True(t, errors.Is(err, apperror.ErrInvalidArgument))
}

func TestRedeliveredStockEventIsAppliedOnce(t *testing.T) {
	store := inventorytest.NewMemoryStore()
	item := store.Seed(domain.Item{SKU: "BOLT-1", Name: "Bolt", StockLevel: 10})[0]
	apply := command.NewApplyStockActionHandler(store, command.NewHooks(nil, nil))

	consumer := newConsumer(nil, "inventory-service", []string{TopicStockCommands})
	consumer.RegisterHandler(EventTypeStockActionRequested, StockActionHandler(apply))

	msg := stockMessage(t, StockActionRequestedEvent{
		EventID:    "evt-1",
		ItemID:     item.ID,
		ActionType: string(domain.ActionRemoveStock),
		Quantity:   4,
		ActorID:    "scanner-7",
	})
	require.NoError(t, consumer.handleMessage(context.Background(), msg))
	require.NoError(t, consumer.handleMessage(context.Background(), msg))

	stored, _ := store.Item(item.ID)
	assert.Equal(t, 6, stored.StockLevel)
	actions := store.AllActions()
	require.Len(t, actions, 1)
	require.NotNil(t, actions[0].EventID)
	assert.Equal(t, "evt-1", *actions[0].EventID)
}

type fakeSession struct {
	sarama.ConsumerGroupSession
	marked []int64
}

func (s *fakeSession) Context() context.Context { return context.Background() }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func TestConsumeClaimLeavesTransientFailuresUnmarked(t *testing.T) {
	prev := retryBackoff
	retryBackoff = 0
	t.Cleanup(func() { retryBackoff = prev })

	store := inventorytest.NewMemoryStore()
	item := store.Seed(domain.Item{SKU: "BOLT-1", Name: "Bolt", StockLevel: 10})[0]
	stockHandler := StockActionHandler(command.NewApplyStockActionHandler(store, command.NewHooks(nil, nil)))

	// the third message hits a database outage
	var calls int
	consumer := newConsumer(nil, "inventory-service", []string{TopicStockCommands})
	consumer.RegisterHandler(EventTypeStockActionRequested, func(ctx context.Context, value []byte) error {
		calls++
		if calls == 3 {
			store.FailOn("Actions.Create", apperror.Internal(errors.New("connection reset"), "failed to record action"))
			defer store.FailOn("Actions.Create", nil)
		}
		return stockHandler(ctx, value)
	})

	event := func(id string, quantity int) StockActionRequestedEvent {
		return StockActionRequestedEvent{
			EventID: id, ItemID: item.ID, ActionType: string(domain.ActionRemoveStock), Quantity: quantity, ActorID: "scanner-7",
		}
	}
	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 4)}
	for offset, e := range []StockActionRequestedEvent{event("evt-1", 1), event("evt-2", 100), event("evt-3", 1), event("evt-4", 1)} {
		msg := stockMessage(t, e)
		msg.Offset = int64(offset)
		claim.messages <- msg
	}
	close(claim.messages)

	session := &fakeSession{}
	err := (&consumerGroupHandler{consumer: consumer}).ConsumeClaim(session, claim)
	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.Equal(t, []int64{0, 1}, session.marked)
	assert.Equal(t, 3, calls)

	stored, _ := store.Item(item.ID)
	assert.Equal(t, 9, stored.StockLevel)
}

func TestPermanent(t *testing.T) {
	assert.True(t, Permanent(ErrNoHandler))
	assert.True(t, Permanent(apperror.NotFound("Item x not found")))
	assert.True(t, Permanent(apperror.InsufficientStock("Insufficient stock")))
	assert.True(t, Permanent(apperror.Conflict("Event e already applied")))
	assert.False(t, Permanent(apperror.Internal(errors.New("boom"), "failed")))
	assert.False(t, Permanent(context.DeadlineExceeded))
}
