package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("key-1"),
		Value:     []byte(`{"id":"rpt-1"}`),
		Topic:     "hazard-reports",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("citizen")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("key-1"), raw.Key)
	assert.JSONEq(t, `{"id":"rpt-1"}`, string(raw.Value))
	assert.Equal(t, "hazard-reports", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "citizen", raw.Headers["source"])
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 8, 27, 15, 10, 0, 0, time.UTC)
	processed := domain.ProcessedReport{
		Report: domain.Report{
			ID:         "rpt-1",
			HazardType: domain.HazardHighWaves,
			Location:   domain.GPSCoordinates{Latitude: 12.97, Longitude: 74.8},
		},
		Priority:    domain.PriorityMedium,
		ProcessedAt: now,
	}

	msg, err := serializeToMessage(processed)
	require.NoError(t, err)

	assert.Equal(t, []byte("rpt-1"), msg.Key)

	var decoded domain.ProcessedReport
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "rpt-1", decoded.Report.ID)
	assert.Equal(t, domain.PriorityMedium, decoded.Priority)

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "priority", msg.Headers[0].Key)
	assert.Equal(t, []byte("medium"), msg.Headers[0].Value)
	assert.Equal(t, "hazard_type", msg.Headers[1].Key)
	assert.Equal(t, []byte("high_waves"), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}
