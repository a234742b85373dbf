package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

func TestIsValidVIN(t *testing.T) {
	t.Run("valid 17-character VIN", func(t *testing.T) {
		assert.True(t, IsValidVIN("1FDXE4FS8JDC12345"))
	})

	t.Run("lowercase is accepted", func(t *testing.T) {
		assert.True(t, IsValidVIN("1fdxe4fs8jdc12345"))
	})

	t.Run("too short", func(t *testing.T) {
		assert.False(t, IsValidVIN("1FDXE4FS8JDC1234"))
	})

	t.Run("too long", func(t *testing.T) {
		assert.False(t, IsValidVIN("1FDXE4FS8JDC123456"))
	})

	t.Run("excluded letters rejected", func(t *testing.T) {
		assert.False(t, IsValidVIN("IFDXE4FS8JDC12345")) // I
		assert.False(t, IsValidVIN("OFDXE4FS8JDC12345")) // O
		assert.False(t, IsValidVIN("QFDXE4FS8JDC12345")) // Q
	})

	t.Run("empty", func(t *testing.T) {
		assert.False(t, IsValidVIN(""))
	})
}

func TestEventTypeForStatus(t *testing.T) {
	t.Run("mapped statuses", func(t *testing.T) {
		cases := map[model.UnitStatus]model.EventType{
			model.UnitStatusPDIComplete:           model.EventTypePDICompleted,
			model.UnitStatusShipped:               model.EventTypeShipped,
			model.UnitStatusReceived:              model.EventTypeReceived,
			model.UnitStatusInAcceptance:          model.EventTypeAcceptanceStarted,
			model.UnitStatusAccepted:              model.EventTypeAcceptanceCompleted,
			model.UnitStatusConditionallyAccepted: model.EventTypeAcceptanceCompleted,
			model.UnitStatusRejected:              model.EventTypeAcceptanceCompleted,
		}
		for status, want := range cases {
			got, ok := EventTypeForStatus(status)
			assert.True(t, ok, "status %s should be mapped", status)
			assert.Equal(t, want, got)
		}
	})

	t.Run("unmapped status produces no event type", func(t *testing.T) {
		_, ok := EventTypeForStatus(model.UnitStatusPendingInspection)
		assert.False(t, ok)

		_, ok = EventTypeForStatus(model.UnitStatusPDIIssues)
		assert.False(t, ok)
	})
}

func TestCanTransitionInspection(t *testing.T) {
	t.Run("in progress completes", func(t *testing.T) {
		assert.True(t, CanTransitionInspection(model.InspectionStatusInProgress, model.InspectionStatusCompleted))
	})

	t.Run("completed approves or rejects", func(t *testing.T) {
		assert.True(t, CanTransitionInspection(model.InspectionStatusCompleted, model.InspectionStatusApproved))
		assert.True(t, CanTransitionInspection(model.InspectionStatusCompleted, model.InspectionStatusRejected))
	})

	t.Run("no skipping straight to approved", func(t *testing.T) {
		assert.False(t, CanTransitionInspection(model.InspectionStatusInProgress, model.InspectionStatusApproved))
	})

	t.Run("terminal states are terminal", func(t *testing.T) {
		assert.False(t, CanTransitionInspection(model.InspectionStatusApproved, model.InspectionStatusCompleted))
		assert.False(t, CanTransitionInspection(model.InspectionStatusRejected, model.InspectionStatusCompleted))
	})
}

func TestCanTransitionAcceptance(t *testing.T) {
	t.Run("in progress completes or cancels", func(t *testing.T) {
		assert.True(t, CanTransitionAcceptance(model.AcceptanceStatusInProgress, model.AcceptanceStatusCompleted))
		assert.True(t, CanTransitionAcceptance(model.AcceptanceStatusInProgress, model.AcceptanceStatusCancelled))
	})

	t.Run("completed is terminal", func(t *testing.T) {
		assert.False(t, CanTransitionAcceptance(model.AcceptanceStatusCompleted, model.AcceptanceStatusCancelled))
		assert.False(t, CanTransitionAcceptance(model.AcceptanceStatusCompleted, model.AcceptanceStatusInProgress))
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		assert.False(t, CanTransitionAcceptance(model.AcceptanceStatusCancelled, model.AcceptanceStatusCompleted))
	})
}

func TestUnitStatusForDecision(t *testing.T) {
	t.Run("long and short spellings collapse", func(t *testing.T) {
		for _, decision := range []model.AcceptanceDecision{model.DecisionFullAccept, model.DecisionAccepted} {
			status, ok := UnitStatusForDecision(decision)
			assert.True(t, ok)
			assert.Equal(t, model.UnitStatusAccepted, status)
		}

		for _, decision := range []model.AcceptanceDecision{model.DecisionConditional, model.DecisionAcceptedWithConditions} {
			status, ok := UnitStatusForDecision(decision)
			assert.True(t, ok)
			assert.Equal(t, model.UnitStatusConditionallyAccepted, status)
		}

		for _, decision := range []model.AcceptanceDecision{model.DecisionReject, model.DecisionRejected} {
			status, ok := UnitStatusForDecision(decision)
			assert.True(t, ok)
			assert.Equal(t, model.UnitStatusRejected, status)
		}
	})

	t.Run("unknown decision", func(t *testing.T) {
		_, ok := UnitStatusForDecision("MAYBE")
		assert.False(t, ok)
	})
}
