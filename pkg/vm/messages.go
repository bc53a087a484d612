package vm

import (
	"fmt"
	"sync/atomic"

	"tableflip.dev/stockroom/pkg/bus"
	"tableflip.dev/stockroom/pkg/service"
)

// Topics route change notifications per entity type.
const (
	TopicProducts   bus.Topic = "products"
	TopicOrderItems bus.Topic = "orderitems"
)

// Tags carried on change notifications. Subscribers filter by tag
// themselves.
const (
	// TagItemChanged announces one record changed; payload is its key.
	TagItemChanged bus.Tag = "item-changed"
	// TagNewItemSaved announces a created record; payload is its key.
	TagNewItemSaved bus.Tag = "new-item-saved"
	// TagItemDeleted announces one record removed; payload is its key.
	TagItemDeleted bus.Tag = "item-deleted"
	// TagItemsDeleted announces a multi-select removal; payload is the
	// []string of removed keys.
	TagItemsDeleted bus.Tag = "items-deleted"
	// TagRangesDeleted announces a range-based removal; payload is a
	// RangesDeletedPayload. Listeners showing a record that might fall in
	// the ranges re-fetch and treat absence as deletion.
	TagRangesDeleted bus.Tag = "ranges-deleted"
	// TagRefreshAll asks listeners to re-sync without naming a record,
	// used for out-of-process store changes.
	TagRefreshAll bus.Tag = "refresh-all"
)

// RangesDeletedPayload carries enough context for listeners to decide
// whether a range deletion could have affected them.
type RangesDeletedPayload struct {
	Query  service.Query
	Ranges []IndexRange
}

var senderSeq atomic.Int64

// nextSender mints a unique publisher identity so a view-model can skip
// notifications it published itself.
func nextSender(kind string) string {
	return fmt.Sprintf("%s/%d", kind, senderSeq.Add(1))
}

func payloadKey(env bus.Envelope) string {
	key, _ := env.Payload.(string)
	return key
}

func payloadKeys(env bus.Envelope) []string {
	keys, _ := env.Payload.([]string)
	return keys
}
