package service

import (
	"regexp"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// vinPattern matches a 17-character VIN. I, O and Q are excluded per the
// VIN standard to avoid confusion with 1 and 0.
var vinPattern = regexp.MustCompile(`^[A-HJ-NPR-Za-hj-npr-z0-9]{17}$`)

// IsValidVIN reports whether the given string is a well-formed VIN.
func IsValidVIN(vin string) bool {
	return vinPattern.MatchString(vin)
}

// statusEventTypes is the fixed unit-status -> event-type table consulted by
// the status register. Statuses without an entry produce no automatic event;
// the engines attach an explicit event detail for those transitions instead.
var statusEventTypes = map[model.UnitStatus]model.EventType{
	model.UnitStatusPDIComplete:           model.EventTypePDICompleted,
	model.UnitStatusShipped:               model.EventTypeShipped,
	model.UnitStatusReceived:              model.EventTypeReceived,
	model.UnitStatusInAcceptance:          model.EventTypeAcceptanceStarted,
	model.UnitStatusAccepted:              model.EventTypeAcceptanceCompleted,
	model.UnitStatusConditionallyAccepted: model.EventTypeAcceptanceCompleted,
	model.UnitStatusRejected:              model.EventTypeAcceptanceCompleted,
}

// EventTypeForStatus returns the event type mapped to a unit status, if any.
func EventTypeForStatus(status model.UnitStatus) (model.EventType, bool) {
	et, ok := statusEventTypes[status]
	return et, ok
}

// inspectionTransitions is the legal transition table for manufacturer
// inspection records.
var inspectionTransitions = map[model.InspectionStatus][]model.InspectionStatus{
	model.InspectionStatusInProgress: {model.InspectionStatusCompleted},
	model.InspectionStatusCompleted:  {model.InspectionStatusApproved, model.InspectionStatusRejected},
}

// CanTransitionInspection reports whether an inspection record may move from
// one status to another.
func CanTransitionInspection(from, to model.InspectionStatus) bool {
	for _, allowed := range inspectionTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// acceptanceTransitions is the legal transition table for dealer acceptance
// records.
var acceptanceTransitions = map[model.AcceptanceStatus][]model.AcceptanceStatus{
	model.AcceptanceStatusInProgress: {model.AcceptanceStatusCompleted, model.AcceptanceStatusCancelled},
}

// CanTransitionAcceptance reports whether an acceptance record may move from
// one status to another.
func CanTransitionAcceptance(from, to model.AcceptanceStatus) bool {
	for _, allowed := range acceptanceTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// decisionStatuses maps an acceptance decision to the resulting unit status.
// Long and short decision spellings collapse to the same status.
var decisionStatuses = map[model.AcceptanceDecision]model.UnitStatus{
	model.DecisionFullAccept:             model.UnitStatusAccepted,
	model.DecisionAccepted:               model.UnitStatusAccepted,
	model.DecisionConditional:            model.UnitStatusConditionallyAccepted,
	model.DecisionAcceptedWithConditions: model.UnitStatusConditionallyAccepted,
	model.DecisionReject:                 model.UnitStatusRejected,
	model.DecisionRejected:               model.UnitStatusRejected,
}

// UnitStatusForDecision maps an acceptance decision to the unit status it
// produces. Returns false for an unrecognized decision.
func UnitStatusForDecision(decision model.AcceptanceDecision) (model.UnitStatus, bool) {
	st, ok := decisionStatuses[decision]
	return st, ok
}
