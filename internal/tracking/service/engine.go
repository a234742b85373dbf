package service

import (
	"math"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// RunItem is a workflow-neutral view of one checklist item within a run.
// The three engines share the same aggregation and completion-validation
// rules, so they all reduce their item rows to this shape before counting.
type RunItem struct {
	Status               model.ItemStatus
	Required             bool
	PhotoRequiredOnIssue bool
	PhotoCount           int
}

// inspectionRunItems converts inspection items (with their template items
// preloaded) into the neutral run view.
func inspectionRunItems(items []model.InspectionItem) []RunItem {
	out := make([]RunItem, 0, len(items))
	for _, it := range items {
		ri := RunItem{Status: it.Status, PhotoCount: len(it.Photos)}
		if it.ChecklistItem != nil {
			ri.Required = it.ChecklistItem.Required
			ri.PhotoRequiredOnIssue = it.ChecklistItem.PhotoRequiredOnIssue
		}
		out = append(out, ri)
	}
	return out
}

// acceptanceRunItems converts acceptance items into the neutral run view.
func acceptanceRunItems(items []model.AcceptanceItem) []RunItem {
	out := make([]RunItem, 0, len(items))
	for _, it := range items {
		ri := RunItem{Status: it.Status, PhotoCount: len(it.Photos)}
		if it.ChecklistItem != nil {
			ri.Required = it.ChecklistItem.Required
			ri.PhotoRequiredOnIssue = it.ChecklistItem.PhotoRequiredOnIssue
		}
		out = append(out, ri)
	}
	return out
}

// Tally computes aggregate counts from item statuses. PENDING and NA items
// count toward neither passed nor failed; NA counts as completed.
func Tally(items []RunItem) model.Progress {
	p := model.Progress{TotalItems: len(items)}
	for _, it := range items {
		switch it.Status {
		case model.ItemStatusPass:
			p.PassedItems++
		case model.ItemStatusFail:
			p.FailedItems++
		case model.ItemStatusIssue:
			p.IssueItems++
		case model.ItemStatusNA:
			p.SkippedItems++
		}
		if it.Status != model.ItemStatusPending {
			p.CompletedItems++
		}
	}
	p.PercentComplete = PercentComplete(p.CompletedItems, p.TotalItems)
	return p
}

// PercentComplete returns round(100 * completed / total), and 0 when the run
// has no items at all.
func PercentComplete(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// RequiredPendingCount counts items that are required by their template item
// and still PENDING. A completion attempt must report this count when it is
// non-zero.
func RequiredPendingCount(items []RunItem) int {
	n := 0
	for _, it := range items {
		if it.Required && it.Status == model.ItemStatusPending {
			n++
		}
	}
	return n
}

// PhotoRuleViolations counts flagged items (ISSUE or FAIL) whose template
// item requires a photo on issue but which have no photos attached.
func PhotoRuleViolations(items []RunItem) int {
	n := 0
	for _, it := range items {
		if (it.Status == model.ItemStatusIssue || it.Status == model.ItemStatusFail) &&
			it.PhotoRequiredOnIssue && it.PhotoCount == 0 {
			n++
		}
	}
	return n
}

// DeriveIsIssue resolves the issue flag for an item update: an explicit
// override wins, otherwise ISSUE and FAIL statuses imply an issue.
func DeriveIsIssue(status model.ItemStatus, override *bool) bool {
	if override != nil {
		return *override
	}
	return status == model.ItemStatusIssue || status == model.ItemStatusFail
}
