package bus

import "time"

// Event kinds. Subscribers filter by prefix, so "message." matches both
// message kinds.
const (
	KindInbound       = "inbound.message"
	KindInboundBatch  = "inbound.batch"
	KindUpserted      = "message.upserted"
	KindNotify        = "notify.message"
	KindSyncBatch     = "sync.batch"
	KindNetworkStatus = "network.status_changed"
	KindContact       = "contact.upserted"
	KindContactGone   = "contact.deleted"
	KindConfig        = "config.reloaded"
)

// Event is a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// NewEvent stamps an event with the current time.
func NewEvent(kind string, payload any) Event {
	return Event{Kind: kind, Timestamp: time.Now(), Payload: payload}
}
