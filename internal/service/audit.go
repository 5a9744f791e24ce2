package service

import (
	"time"

	"github.com/google/uuid"

	"furnirent-backend/internal/domain"
)

// newAuditEvent stamps an order-module audit record for the given actor.
func newAuditEvent(actor domain.Actor, action string, entityID int32, detail string) *domain.AuditEvent {
	return &domain.AuditEvent{
		ID:         uuid.NewString(),
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		ActorEmail: actor.Email,
		Action:     action,
		EntityID:   entityID,
		Module:     auditModuleOrders,
		Detail:     detail,
		Timestamp:  time.Now(),
	}
}
