package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/cam71101/vinted-scanner/internal/metrics"
	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// EventNewListing is the type field of published listing events.
const EventNewListing = "new_listing"

// ListingEvent is the JSON value published for every new listing.
type ListingEvent struct {
	Type       string          `json:"type"`
	ObservedAt time.Time       `json:"observed_at"`
	Listing    *domain.Listing `json:"listing"`
}

// KafkaNotifier publishes new listings to a Kafka topic, keyed by listing ID
// so events for the same listing land on the same partition.
type KafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

// NewKafkaProducer creates a synchronous producer that waits for all
// in-sync replicas.
func NewKafkaProducer(brokers []string, clientID string, timeout time.Duration) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	if timeout > 0 {
		cfg.Producer.Timeout = timeout
		cfg.Net.DialTimeout = timeout
	}

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}
	return producer, nil
}

// NewKafkaNotifier wraps producer. The notifier owns the producer and closes
// it in Close.
func NewKafkaNotifier(producer sarama.SyncProducer, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
}

// SendListing implements Notifier.
func (k *KafkaNotifier) SendListing(_ context.Context, l *domain.Listing) error {
	value, err := json.Marshal(ListingEvent{
		Type:       EventNewListing,
		ObservedAt: k.now().UTC(),
		Listing:    l,
	})
	if err != nil {
		return fmt.Errorf("marshaling listing event: %w", err)
	}

	start := time.Now()
	_, _, err = k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(l.ID),
		Value: sarama.ByteEncoder(value),
	})
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return fmt.Errorf("publishing listing %s to %s: %w", l.ID, k.topic, err)
	}

	metrics.NotificationsSentTotal.WithLabelValues("kafka", "event").Inc()
	return nil
}

// Close shuts down the producer.
func (k *KafkaNotifier) Close() error {
	return k.producer.Close()
}
