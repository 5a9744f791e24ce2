package domain

import "time"

// AuditEvent records who did what to which entity. Emission is
// fire-and-forget from the engine's perspective; a failed write is logged
// and never fails the primary mutation.
type AuditEvent struct {
	ID         string    `json:"id"`
	ActorID    int32     `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	ActorEmail string    `json:"actor_email"`
	Action     string    `json:"action"`
	EntityID   int32     `json:"entity_id"`
	Module     string    `json:"module"`
	Detail     string    `json:"detail"`
	Timestamp  time.Time `json:"timestamp"`
}
