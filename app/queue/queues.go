package queue

// The fixed set of durable queues this service consumes. Bindings are
// established once at startup; there is no dynamic registration.
const (
	QueueProductEvents = "product_events_for_notifications"
	QueueOrderEvents   = "order_events_for_notifications"
	QueueAuthEvents    = "auth_events"
	QueueUserDataSync  = "user_data_sync"
)
