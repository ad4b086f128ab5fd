//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	kafkaadapter "github.com/kuchel77/vicemergency-feed/internal/adapter/kafka"
	"github.com/kuchel77/vicemergency-feed/internal/domain"
	"github.com/kuchel77/vicemergency-feed/internal/observability"
	"github.com/kuchel77/vicemergency-feed/internal/poller"
	"github.com/kuchel77/vicemergency-feed/internal/registry"
)

const testTopic = "geo-location-events"

var home = domain.Coordinate{Latitude: -37.8136, Longitude: 144.9631}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka container and returns its broker address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	controllerConn, err := kafkago.Dial("tcp",
		net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// scriptedFetcher returns a different incident batch on each poll, then
// repeats the last one.
type scriptedFetcher struct {
	mu      sync.Mutex
	batches [][]domain.Incident
}

func (f *scriptedFetcher) Fetch(_ context.Context) ([]domain.Incident, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	batch := f.batches[0]
	if len(f.batches) > 1 {
		f.batches = f.batches[1:]
	}
	return batch, nil
}

func readEvent(ctx context.Context, t *testing.T, consumer *kafkago.Reader) (domain.EntityEvent, map[string]string) {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read entity event")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var event domain.EntityEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	return event, headers
}

// TestPollerPublishesLifecycleToKafka runs the poller against real Kafka and
// verifies the add and remove events for an incident that appears in one poll
// and disappears in the next.
func TestPollerPublishesLifecycleToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	fire := domain.Incident{
		ID:         "558112",
		Category1:  "Fire",
		Category2:  "Grass Fire",
		Status:     "Going",
		Location:   "Bunyip",
		Coordinate: &domain.Coordinate{Latitude: -37.82, Longitude: 144.98},
	}
	fetcher := &scriptedFetcher{batches: [][]domain.Incident{
		{fire},
		{}, // incident resolved on the second poll
	}}

	writer := kafkaadapter.NewWriter([]string{broker}, testTopic, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	filter := domain.Filter{Home: home, RadiusKm: 20}
	p := poller.New(fetcher, filter, registry.New(), writer, discardLogger(),
		observability.NewMetricsForTesting(), 2*time.Second)

	pollerCtx, pollerCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pollerCtx) }()

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	added, headers := readEvent(ctx, t, consumer)
	assert.Equal(t, domain.EntityAdded, added.Type)
	assert.Equal(t, "558112", added.Entity.ExternalID)
	assert.Equal(t, "Fire - Bunyip", added.Entity.Name)
	assert.Equal(t, "mdi:fire-alert", added.Entity.Icon)
	assert.Greater(t, added.Entity.DistanceKm, 0.0)
	assert.Equal(t, "add", headers["event_type"])
	assert.Equal(t, "vicemergency_feed", headers["source"])
	_, err := time.Parse(time.RFC3339, headers["observed_at"])
	assert.NoError(t, err, "observed_at should be valid RFC3339")

	removed, headers := readEvent(ctx, t, consumer)
	assert.Equal(t, domain.EntityRemoved, removed.Type)
	assert.Equal(t, "558112", removed.Entity.ExternalID)
	assert.Equal(t, "remove", headers["event_type"])

	pollerCancel()
	require.NoError(t, <-errCh)
}
