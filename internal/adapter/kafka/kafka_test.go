package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("Quito-Centro"),
		Value:     []byte(`{"zone":"Quito-Centro"}`),
		Topic:     "air-quality-readings",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("collector")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("Quito-Centro"), raw.Key)
	assert.JSONEq(t, `{"zone":"Quito-Centro"}`, string(raw.Value))
	assert.Equal(t, "air-quality-readings", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "collector", raw.Headers["source"])
	assert.Nil(t, raw.Commit)
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 8, 14, 15, 10, 0, 0, time.UTC)
	a := domain.Assessment{
		ID:          "zone-abc123",
		Zone:        "Guayaquil-Sur",
		Month:       8,
		Forecast:    domain.Levels{domain.PM25: 40},
		Alert:       domain.AlertEmergency,
		ProcessedAt: now,
	}

	msg, err := serializeToMessage(a)
	require.NoError(t, err)

	assert.Equal(t, []byte("Guayaquil-Sur"), msg.Key)
	assert.Contains(t, string(msg.Value), `"alert":"emergency"`)
	assert.Contains(t, string(msg.Value), `"PM2.5":40`)
	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "assessment_id", msg.Headers[0].Key)
	assert.Equal(t, []byte("zone-abc123"), msg.Headers[0].Value)
	assert.Equal(t, "alert_tier", msg.Headers[1].Key)
	assert.Equal(t, []byte("emergency"), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}

func TestSerializeToMessage_InvalidTier(t *testing.T) {
	_, err := serializeToMessage(domain.Assessment{Zone: "Loja", Alert: domain.AlertTier(9)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serialize assessment")
}
