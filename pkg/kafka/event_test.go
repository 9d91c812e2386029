package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartPayload struct {
	SessionID string `json:"session_id"`
	ItemCount int    `json:"item_count"`
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "storefront.cart.updated", Topic("cart", "updated"))
	assert.Equal(t, "storefront.catalog.changed", Topic("catalog", "changed"))
}

func TestNewEvent_Fields(t *testing.T) {
	data := cartPayload{SessionID: "sess-1", ItemCount: 3}

	event, err := NewEvent("cart.updated", "sess-1", "cart", "storefront", data)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "cart.updated", event.EventType)
	assert.Equal(t, "sess-1", event.AggregateID)
	assert.Equal(t, "cart", event.AggregateType)
	assert.Equal(t, "storefront", event.Source)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)

	var got cartPayload
	require.NoError(t, event.UnmarshalData(&got))
	assert.Equal(t, data, got)
}

func TestNewEvent_UniqueIDs(t *testing.T) {
	a, err := NewEvent("cart.updated", "s", "cart", "storefront", nil)
	require.NoError(t, err)
	b, err := NewEvent("cart.updated", "s", "cart", "storefront", nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.EventID, b.EventID)
}

func TestNewEvent_UnserializablePayload(t *testing.T) {
	_, err := NewEvent("cart.updated", "s", "cart", "storefront", make(chan int))
	assert.ErrorContains(t, err, "marshal cart.updated payload")
}

func TestEvent_EnvelopeSurvivesWire(t *testing.T) {
	original, err := NewEvent("catalog.changed", "42", "product", "catalog-admin", map[string]int{"id": 42})
	require.NoError(t, err)
	original.WithCorrelationID("corr-1").WithMetadata("reason", "price")

	raw, err := original.Marshal()
	require.NoError(t, err)
	restored, err := UnmarshalEvent(raw)
	require.NoError(t, err)

	assert.Equal(t, original.EventID, restored.EventID)
	assert.Equal(t, "corr-1", restored.CorrelationID)
	assert.Equal(t, "price", restored.Metadata["reason"])
	assert.JSONEq(t, `{"id":42}`, string(restored.Data))
}

func TestUnmarshalEvent_Rejects(t *testing.T) {
	_, err := UnmarshalEvent([]byte(`not json`))
	assert.Error(t, err)

	_, err = UnmarshalEvent([]byte(`{"event_id":"x"}`))
	assert.ErrorContains(t, err, "missing event_type")
}

func TestWithMetadata_NilMap(t *testing.T) {
	e := &Event{}
	e.WithMetadata("k", "v")
	assert.Equal(t, "v", e.Metadata["k"])
}
