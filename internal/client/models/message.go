package models

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Delivery is the lifecycle tag of a conversation entry. A Pending assistant
// entry is the placeholder shown while the backend call is in flight; it is
// replaced in place with Delivered or Failed, never duplicated.
type Delivery string

const (
	DeliveryPending   Delivery = "pending"
	DeliveryDelivered Delivery = "delivered"
	DeliveryFailed    Delivery = "failed"
)

// Message is one entry in the append-only conversation log.
type Message struct {
	ID         string
	Role       string
	Content    string
	Timestamp  time.Time
	Delivery   Delivery
	FailReason string
}
