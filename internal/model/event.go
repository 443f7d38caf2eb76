package model

import "time"

// PostEvent is the payload published to the broker whenever a post is
// created, updated or deleted. Consumers must not assume the post still
// exists by the time the event is handled.
type PostEvent struct {
	Action     string    `json:"action"` // "created", "updated", "deleted"
	PostID     string    `json:"post_id"`
	Author     string    `json:"author"`
	OccurredAt time.Time `json:"occurred_at"`
}
