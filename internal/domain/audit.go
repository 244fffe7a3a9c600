package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is an append-only record of a state-changing action.
type AuditEntry struct {
	ID                 uuid.UUID
	ActorID            uuid.UUID
	ActionType         AuditAction
	EntityType         *EntityType
	EntityID           *uuid.UUID
	AffectedProductIDs []uuid.UUID
	Description        string
	CreatedAt          time.Time
}

// AuditFilter narrows audit trail queries.
type AuditFilter struct {
	ActorID    *uuid.UUID
	ActionType *AuditAction
	ProductID  *uuid.UUID
	EntityID   *uuid.UUID
	Since      *time.Time
	Limit      int
	Offset     int
}
