package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// EventDetail lets an engine attach a richer event to a status change than
// the default derived from the status->event table. An empty Type falls back
// to the mapped type; a transition with neither produces no event.
type EventDetail struct {
	Type        model.EventType
	Description string
	Metadata    any
	Source      string
}

// StatusRegister is the single writer for the shared unit status field.
// It is a dumb atomic setter: it persists the new status and appends the
// corresponding unit event in the caller's transaction, but does not judge
// whether the transition is legal. Legality is each workflow engine's
// responsibility; see the transition tables in transitions.go.
type StatusRegister struct {
	units  UnitRepository
	events UnitEventRepository
}

// NewStatusRegister creates a new StatusRegister.
func NewStatusRegister(units UnitRepository, events UnitEventRepository) *StatusRegister {
	return &StatusRegister{units: units, events: events}
}

// SetStatusInTx persists the unit's new status and appends the derived unit
// event as one step of the caller's transaction. The unit struct is mutated
// in place so callers observe the new status.
func (r *StatusRegister) SetStatusInTx(
	ctx context.Context,
	tx *gorm.DB,
	unit *model.Unit,
	newStatus model.UnitStatus,
	actor *uuid.UUID,
	detail *EventDetail,
) error {
	if unit == nil {
		return fmt.Errorf("unit cannot be nil")
	}

	unit.Status = newStatus
	if err := r.units.UpdateInTx(ctx, tx, unit); err != nil {
		return fmt.Errorf("failed to update unit status: %w", err)
	}

	eventType, mapped := EventTypeForStatus(newStatus)
	description := fmt.Sprintf("Status changed to %s", newStatus)
	var metadata json.RawMessage
	source := ""

	if detail != nil {
		if detail.Type != "" {
			eventType = detail.Type
			mapped = true
		}
		if detail.Description != "" {
			description = detail.Description
		}
		if detail.Metadata != nil {
			raw, err := json.Marshal(detail.Metadata)
			if err != nil {
				return fmt.Errorf("failed to marshal event metadata: %w", err)
			}
			metadata = raw
		}
		source = detail.Source
	}

	if !mapped {
		// No event type defined for this status and no explicit detail.
		return nil
	}

	event := &model.UnitEvent{
		UnitID:      unit.ID,
		EventType:   eventType,
		EventDate:   time.Now().UTC(),
		Description: description,
		UserID:      actor,
		Metadata:    metadata,
		Source:      source,
	}
	if err := r.events.AppendInTx(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to append unit event: %w", err)
	}

	return nil
}
