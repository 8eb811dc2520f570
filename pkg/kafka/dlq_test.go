package kafka

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDLQTopic_PrefixesOriginal(t *testing.T) {
	tests := []struct {
		name          string
		originalTopic string
		want          string
	}{
		{"catalog topic", "catalog.product.upserted", "catalog.dlq.catalog.product.upserted"},
		{"nested topic", "catalog.customer.address.changed", "catalog.dlq.catalog.customer.address.changed"},
		{"bare topic", "notifications", "catalog.dlq.notifications"},
		{"hyphenated topic", "price-events", "catalog.dlq.price-events"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DLQTopic(tt.originalTopic)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasPrefix(got, DLQTopicPrefix))
		})
	}
}

func TestDLQTopicPrefix(t *testing.T) {
	assert.Equal(t, "catalog.dlq", DLQTopicPrefix)
}
