package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// PDIService ingests and maintains legacy pre-delivery inspections. PDI
// records arrive complete in one webhook call from the factory-side system;
// the only later edits are dealers resolving flagged items.
type PDIService struct {
	db       *gorm.DB
	pdis     PDIRepository
	units    UnitRepository
	register *StatusRegister
}

// NewPDIService creates a new PDIService.
func NewPDIService(db *gorm.DB, pdis PDIRepository, units UnitRepository, register *StatusRegister) *PDIService {
	return &PDIService{db: db, pdis: pdis, units: units, register: register}
}

// Create ingests a complete PDI submission for the unit with the given VIN.
// Item tallies are computed at submission time: a FAIL or ISSUE item counts
// as failed. The record lands as ISSUES_PENDING when any item failed and
// COMPLETE otherwise, and the unit moves to PDI_ISSUES or PDI_COMPLETE
// accordingly. A fresh submission always sets the unit status, so a
// re-submission carrying unresolved failures pulls a PDI_COMPLETE unit back
// to PDI_ISSUES; only item-level resolution (UpdateItem) is one way.
func (s *PDIService) Create(ctx context.Context, vin string, dto *model.CreatePDIDTO) (*model.PDIRecord, error) {
	var recordID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.createInTx(ctx, tx, vin, dto)
		if err != nil {
			return err
		}
		recordID = record.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, recordID)
}

func (s *PDIService) createInTx(ctx context.Context, tx *gorm.DB, vin string, dto *model.CreatePDIDTO) (*model.PDIRecord, error) {
	unit, err := s.units.GetByVINInTx(ctx, tx, vin)
	if err != nil {
		return nil, err
	}
	if len(dto.Items) == 0 {
		return nil, validationf("a PDI submission must contain at least one item")
	}

	total := len(dto.Items)
	passed, failed, unresolved := 0, 0, 0
	for _, item := range dto.Items {
		switch item.Status {
		case model.ItemStatusPass:
			passed++
		case model.ItemStatusFail, model.ItemStatusIssue:
			failed++
			if !item.Resolved {
				unresolved++
			}
		}
	}

	recordStatus := model.PDIStatusComplete
	if failed > 0 {
		recordStatus = model.PDIStatusIssuesPending
	}

	completedAt := dto.CompletedAt
	if completedAt == nil {
		now := time.Now().UTC()
		completedAt = &now
	}

	record := &model.PDIRecord{
		UnitID:        unit.ID,
		InspectorID:   dto.InspectorID,
		InspectorName: dto.InspectorName,
		Status:        recordStatus,
		CompletedAt:   completedAt,
		Notes:         dto.Notes,
		TotalItems:    total,
		PassedItems:   passed,
		FailedItems:   failed,
	}
	if err := s.pdis.CreateInTx(ctx, tx, record); err != nil {
		return nil, fmt.Errorf("failed to create PDI record: %w", err)
	}

	items := make([]model.PDIItem, 0, total)
	for _, in := range dto.Items {
		items = append(items, model.PDIItem{
			PDIID:           record.ID,
			ItemCode:        in.ItemCode,
			ItemDescription: in.ItemDescription,
			Status:          in.Status,
			Notes:           in.Notes,
			Resolved:        in.Resolved,
			ResolvedBy:      in.ResolvedBy,
			ResolvedAt:      in.ResolvedAt,
			ResolutionNotes: in.ResolutionNotes,
		})
	}
	if err := s.pdis.CreateItemsInTx(ctx, tx, items); err != nil {
		return nil, fmt.Errorf("failed to create PDI items: %w", err)
	}

	newStatus := model.UnitStatusPDIComplete
	eventType := model.EventTypePDICompleted
	if unresolved > 0 {
		newStatus = model.UnitStatusPDIIssues
		eventType = model.EventTypeStatusChanged
	}
	err = s.register.SetStatusInTx(ctx, tx, unit, newStatus, nil, &EventDetail{
		Type:        eventType,
		Description: fmt.Sprintf("PDI submitted by %s", dto.InspectorName),
		Metadata: map[string]any{
			"pdiId":  record.ID,
			"total":  total,
			"passed": passed,
			"failed": failed,
		},
		Source: "pdi-webhook",
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "PDI ingested",
		"pdi_id", record.ID,
		"unit_id", unit.ID,
		"vin", unit.VIN,
		"status", recordStatus,
		"failed", failed,
	)
	return record, nil
}

// GetByID returns a PDI record with its items and photos.
func (s *PDIService) GetByID(ctx context.Context, id uuid.UUID) (*model.PDIRecord, error) {
	return s.pdis.GetByIDInTx(ctx, s.db, id)
}

// GetLatestByVIN returns the most recent PDI record for a unit.
func (s *PDIService) GetLatestByVIN(ctx context.Context, vin string) (*model.PDIRecord, error) {
	unit, err := s.units.GetByVINInTx(ctx, s.db, vin)
	if err != nil {
		return nil, err
	}
	records, err := s.pdis.ListByUnitInTx(ctx, s.db, unit.ID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, notFoundf("no PDI record for VIN %s", vin)
	}
	return &records[0], nil
}

// ListByVIN returns all PDI records for a unit, newest first.
func (s *PDIService) ListByVIN(ctx context.Context, vin string) ([]model.PDIRecord, error) {
	unit, err := s.units.GetByVINInTx(ctx, s.db, vin)
	if err != nil {
		return nil, err
	}
	return s.pdis.ListByUnitInTx(ctx, s.db, unit.ID)
}

// UpdateItem edits one PDI item, typically to mark an issue resolved. There
// is no in-progress guard: PDI items stay editable after submission. The
// record's tallies and status are recomputed from all sibling items, and
// when the last flagged item is resolved the unit is promoted to
// PDI_COMPLETE. The promotion is one way; resolving and then re-failing an
// item never moves the unit back.
func (s *PDIService) UpdateItem(ctx context.Context, itemID uuid.UUID, dto *model.UpdatePDIItemDTO, actor string) (*model.PDIItem, error) {
	var item *model.PDIItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = s.updateItemInTx(ctx, tx, itemID, dto, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PDIService) updateItemInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, dto *model.UpdatePDIItemDTO, actor string) (*model.PDIItem, error) {
	item, err := s.pdis.GetItemInTx(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}

	if dto.Status != nil {
		item.Status = *dto.Status
	}
	if dto.Notes != nil {
		item.Notes = *dto.Notes
	}
	if dto.Resolved != nil {
		item.Resolved = *dto.Resolved
		if item.Resolved {
			now := time.Now().UTC()
			item.ResolvedAt = &now
			if dto.ResolvedBy != nil {
				item.ResolvedBy = *dto.ResolvedBy
			} else if actor != "" {
				item.ResolvedBy = actor
			}
		} else {
			item.ResolvedAt = nil
			item.ResolvedBy = ""
		}
	}
	if dto.ResolutionNotes != nil {
		item.ResolutionNotes = *dto.ResolutionNotes
	}

	if err := s.pdis.UpdateItemInTx(ctx, tx, item); err != nil {
		return nil, fmt.Errorf("failed to update PDI item: %w", err)
	}

	if err := s.recountInTx(ctx, tx, item.PDIID); err != nil {
		return nil, err
	}
	return item, nil
}

// recountInTx recomputes a PDI record's tallies from its items, moves the
// record between ISSUES_PENDING and COMPLETE, and promotes the unit to
// PDI_COMPLETE once nothing unresolved remains.
func (s *PDIService) recountInTx(ctx context.Context, tx *gorm.DB, pdiID uuid.UUID) error {
	record, err := s.pdis.GetByIDInTx(ctx, tx, pdiID)
	if err != nil {
		return err
	}
	items, err := s.pdis.ListItemsInTx(ctx, tx, pdiID)
	if err != nil {
		return err
	}

	passed, failed, unresolved := 0, 0, 0
	for i := range items {
		switch items[i].Status {
		case model.ItemStatusPass:
			passed++
		case model.ItemStatusFail, model.ItemStatusIssue:
			failed++
		}
		if items[i].HasUnresolvedIssue() {
			unresolved++
		}
	}

	record.TotalItems = len(items)
	record.PassedItems = passed
	record.FailedItems = failed
	if unresolved > 0 {
		record.Status = model.PDIStatusIssuesPending
	} else {
		record.Status = model.PDIStatusComplete
	}
	if err := s.pdis.UpdateInTx(ctx, tx, record); err != nil {
		return fmt.Errorf("failed to update PDI record: %w", err)
	}

	if unresolved == 0 {
		unit, err := s.units.GetByIDInTx(ctx, tx, record.UnitID)
		if err != nil {
			return err
		}
		if unit.Status == model.UnitStatusPDIIssues || unit.Status == model.UnitStatusPendingPDI || unit.Status == model.UnitStatusPDIInProgress {
			err = s.register.SetStatusInTx(ctx, tx, unit, model.UnitStatusPDIComplete, nil, &EventDetail{
				Description: "All PDI issues resolved",
			})
			if err != nil {
				return err
			}
			slog.InfoContext(ctx, "unit promoted to PDI complete", "unit_id", unit.ID, "pdi_id", record.ID)
		}
	}
	return nil
}

// GetSummary returns the roll-up view of a PDI record, grouping category
// stats by item code prefix (the segment before the first dot).
func (s *PDIService) GetSummary(ctx context.Context, id uuid.UUID) (*model.PDISummary, error) {
	record, err := s.pdis.GetByIDInTx(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	summary := &model.PDISummary{
		PDIID:         record.ID,
		UnitID:        record.UnitID,
		Inspector:     record.InspectorName,
		Status:        record.Status,
		CompletedAt:   record.CompletedAt,
		Total:         record.TotalItems,
		Passed:        record.PassedItems,
		Failed:        record.FailedItems,
		CategoryStats: make(map[string]model.CategoryProgress),
		Issues:        []model.PDIItem{},
	}

	for _, item := range record.Items {
		summary.PhotoCount += len(item.Photos)

		cat := categoryFromCode(item.ItemCode)
		stats := summary.CategoryStats[cat]
		stats.Total++
		if item.Status != model.ItemStatusPending {
			stats.Completed++
		}
		switch item.Status {
		case model.ItemStatusPass:
			stats.Passed++
		case model.ItemStatusIssue:
			stats.Issues++
		case model.ItemStatusFail:
			stats.Failed++
		}
		summary.CategoryStats[cat] = stats

		if item.Status == model.ItemStatusFail || item.Status == model.ItemStatusIssue {
			summary.Issues = append(summary.Issues, item)
		}
	}
	return summary, nil
}

// categoryFromCode derives a category label from an item code such as
// "ELEC.004". A code without a dot is its own category; an empty code falls
// into "uncategorized".
func categoryFromCode(code string) string {
	prefix, _, _ := strings.Cut(code, ".")
	if prefix == "" {
		return "uncategorized"
	}
	return prefix
}
