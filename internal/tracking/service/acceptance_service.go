package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// AcceptanceService drives the dealer acceptance workflow: from a received
// or PDI-complete unit through to a final accept/reject decision.
type AcceptanceService struct {
	db          *gorm.DB
	acceptances AcceptanceRepository
	units       UnitRepository
	checklists  ChecklistRepository
	register    *StatusRegister
}

// NewAcceptanceService creates a new AcceptanceService.
func NewAcceptanceService(
	db *gorm.DB,
	acceptances AcceptanceRepository,
	units UnitRepository,
	checklists ChecklistRepository,
	register *StatusRegister,
) *AcceptanceService {
	return &AcceptanceService{
		db:          db,
		acceptances: acceptances,
		units:       units,
		checklists:  checklists,
		register:    register,
	}
}

// Start begins a dealer acceptance for the unit with the given VIN, or
// resumes the existing in-progress one. Unlike the manufacturer engine, an
// existing IN_PROGRESS record is returned rather than treated as a conflict
// so a technician can pick up where they left off.
func (s *AcceptanceService) Start(ctx context.Context, dto *model.StartAcceptanceDTO, userID uuid.UUID, dealerID uuid.UUID) (*model.AcceptanceRecord, error) {
	var recordID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.startInTx(ctx, tx, dto, userID, dealerID)
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

func (s *AcceptanceService) startInTx(ctx context.Context, tx *gorm.DB, dto *model.StartAcceptanceDTO, userID uuid.UUID, dealerID uuid.UUID) (*model.AcceptanceRecord, error) {
	unit, err := s.units.GetByVINInTx(ctx, tx, dto.VIN)
	if err != nil {
		return nil, err
	}

	if unit.DealerID == nil || *unit.DealerID != dealerID {
		return nil, validationf("unit does not belong to your dealership")
	}

	if unit.Status == model.UnitStatusPendingPDI {
		return nil, validationf("unit has not completed PDI")
	}

	existing, err := s.acceptances.FindInProgressByUnitInTx(ctx, tx, unit.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// Idempotent resume.
		return existing, nil
	}

	template, err := s.checklists.FindForModelInTx(ctx, tx, unit.ModelID, model.TemplateTypeDealer)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, validationf("no checklist template found for this model")
	}

	record := &model.AcceptanceRecord{
		UnitID:       unit.ID,
		UserID:       userID,
		Status:       model.AcceptanceStatusInProgress,
		DeviceInfo:   dto.DeviceInfo,
		LocationData: dto.LocationData,
		StartedAt:    time.Now().UTC(),
	}
	if err := s.acceptances.CreateInTx(ctx, tx, record); err != nil {
		return nil, fmt.Errorf("failed to create acceptance record: %w", err)
	}

	templateItems := template.Items()
	items := make([]model.AcceptanceItem, 0, len(templateItems))
	for _, ti := range templateItems {
		items = append(items, model.AcceptanceItem{
			AcceptanceID:    record.ID,
			ChecklistItemID: ti.ID,
			Status:          model.ItemStatusPending,
		})
	}
	if len(items) > 0 {
		if err := s.acceptances.CreateItemsInTx(ctx, tx, items); err != nil {
			return nil, fmt.Errorf("failed to create acceptance items: %w", err)
		}
	}

	err = s.register.SetStatusInTx(ctx, tx, unit, model.UnitStatusInAcceptance, &userID, &EventDetail{
		Description: "Dealer acceptance started",
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "dealer acceptance started",
		"acceptance_id", record.ID,
		"unit_id", unit.ID,
		"vin", unit.VIN,
		"items", len(items),
	)
	return record, nil
}

// GetByID returns an acceptance with its items and template details.
func (s *AcceptanceService) GetByID(ctx context.Context, id uuid.UUID) (*model.AcceptanceRecord, error) {
	return s.acceptances.GetByIDInTx(ctx, s.db, id)
}

// ListByVIN returns all acceptance runs for a unit, newest first.
func (s *AcceptanceService) ListByVIN(ctx context.Context, vin string) ([]model.AcceptanceRecord, error) {
	unit, err := s.units.GetByVINInTx(ctx, s.db, vin)
	if err != nil {
		return nil, err
	}
	return s.acceptances.ListByUnitInTx(ctx, s.db, unit.ID)
}

// List returns acceptances filtered by dealer and status, newest first.
func (s *AcceptanceService) List(ctx context.Context, dealerID *uuid.UUID, status *model.AcceptanceStatus, offset, limit int) ([]model.AcceptanceRecord, *model.PageMeta, error) {
	records, total, err := s.acceptances.ListInTx(ctx, s.db, dealerID, status, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	return records, &model.PageMeta{Total: total, Offset: offset, Limit: limit}, nil
}

// UpdateItem updates one item. Only permitted while the acceptance is
// IN_PROGRESS.
func (s *AcceptanceService) UpdateItem(ctx context.Context, acceptanceID, itemID uuid.UUID, dto *model.UpdateWorkflowItemDTO) (*model.AcceptanceItem, error) {
	var item *model.AcceptanceItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = s.updateItemInTx(ctx, tx, acceptanceID, itemID, dto)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *AcceptanceService) updateItemInTx(ctx context.Context, tx *gorm.DB, acceptanceID, itemID uuid.UUID, dto *model.UpdateWorkflowItemDTO) (*model.AcceptanceItem, error) {
	record, err := s.acceptances.GetByIDInTx(ctx, tx, acceptanceID)
	if err != nil {
		return nil, err
	}
	if record.Status != model.AcceptanceStatusInProgress {
		return nil, validationf("cannot modify a %s acceptance", record.Status)
	}

	item, err := s.acceptances.GetItemInTx(ctx, tx, acceptanceID, itemID)
	if err != nil {
		return nil, err
	}

	item.Status = dto.Status
	if dto.Notes != nil {
		item.Notes = *dto.Notes
	}
	item.IsIssue = DeriveIsIssue(dto.Status, dto.IsIssue)
	if dto.IssueSeverity != "" {
		item.IssueSeverity = dto.IssueSeverity
	}

	if err := s.acceptances.UpdateItemInTx(ctx, tx, item); err != nil {
		return nil, fmt.Errorf("failed to update acceptance item: %w", err)
	}
	return item, nil
}

// UpdateItems applies several item updates in one transaction.
func (s *AcceptanceService) UpdateItems(ctx context.Context, acceptanceID uuid.UUID, dto *model.BulkUpdateItemsDTO) (*model.AcceptanceRecord, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.acceptances.GetByIDInTx(ctx, tx, acceptanceID)
		if err != nil {
			return err
		}
		if record.Status != model.AcceptanceStatusInProgress {
			return validationf("cannot modify a %s acceptance", record.Status)
		}

		for _, upd := range dto.Items {
			item, err := s.acceptances.GetItemInTx(ctx, tx, acceptanceID, upd.ItemID)
			if err != nil {
				return err
			}
			item.Status = upd.Status
			if upd.Notes != nil {
				item.Notes = *upd.Notes
			}
			item.IsIssue = DeriveIsIssue(upd.Status, upd.IsIssue)
			if upd.IssueSeverity != "" {
				item.IssueSeverity = upd.IssueSeverity
			}
			if err := s.acceptances.UpdateItemInTx(ctx, tx, item); err != nil {
				return fmt.Errorf("failed to update acceptance item %s: %w", item.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, acceptanceID)
}

// Submit finishes an in-progress acceptance with a decision. It rejects when
// any template-required item is still PENDING or any flagged item is missing
// a required photo, reporting the offending item count in either case; no
// mutation happens on a rejected submit.
func (s *AcceptanceService) Submit(ctx context.Context, id uuid.UUID, dto *model.SubmitAcceptanceDTO, userID uuid.UUID, signatureIP string) (*model.AcceptanceRecord, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.submitInTx(ctx, tx, id, dto, userID, signatureIP)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *AcceptanceService) submitInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, dto *model.SubmitAcceptanceDTO, userID uuid.UUID, signatureIP string) error {
	record, err := s.acceptances.GetByIDInTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if !CanTransitionAcceptance(record.Status, model.AcceptanceStatusCompleted) {
		return validationf("acceptance already completed")
	}

	runItems := acceptanceRunItems(record.Items)
	if pending := RequiredPendingCount(runItems); pending > 0 {
		return validationf("%d required items are not yet marked", pending)
	}
	if violations := PhotoRuleViolations(runItems); violations > 0 {
		return validationf("%d issues require photos", violations)
	}

	newUnitStatus, ok := UnitStatusForDecision(dto.Decision)
	if !ok {
		return validationf("unrecognized decision %q", dto.Decision)
	}

	now := time.Now().UTC()
	record.Status = model.AcceptanceStatusCompleted
	record.CompletedAt = &now
	record.Decision = dto.Decision
	record.Conditions = dto.Conditions
	record.GeneralNotes = dto.GeneralNotes
	record.SignatureData = dto.SignatureData
	record.SignatureTimestamp = &now
	record.SignatureIP = signatureIP
	if err := s.acceptances.UpdateInTx(ctx, tx, record); err != nil {
		return fmt.Errorf("failed to update acceptance record: %w", err)
	}

	unit, err := s.units.GetByIDInTx(ctx, tx, record.UnitID)
	if err != nil {
		return err
	}

	return s.register.SetStatusInTx(ctx, tx, unit, newUnitStatus, &userID, &EventDetail{
		Description: fmt.Sprintf("Acceptance completed: %s", dto.Decision),
		Metadata: map[string]any{
			"decision":   dto.Decision,
			"conditions": dto.Conditions,
		},
	})
}

// Cancel abandons an in-progress acceptance. The unit status is reset to
// RECEIVED regardless of what it was before the acceptance started; the
// pre-acceptance status is not preserved anywhere, so a unit that entered
// from PDI_ISSUES comes back as RECEIVED.
func (s *AcceptanceService) Cancel(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.cancelInTx(ctx, tx, id, userID)
	})
}

func (s *AcceptanceService) cancelInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, userID uuid.UUID) error {
	record, err := s.acceptances.GetByIDInTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if !CanTransitionAcceptance(record.Status, model.AcceptanceStatusCancelled) {
		return validationf("can only cancel an in-progress acceptance")
	}

	record.Status = model.AcceptanceStatusCancelled
	if err := s.acceptances.UpdateInTx(ctx, tx, record); err != nil {
		return fmt.Errorf("failed to update acceptance record: %w", err)
	}

	unit, err := s.units.GetByIDInTx(ctx, tx, record.UnitID)
	if err != nil {
		return err
	}

	return s.register.SetStatusInTx(ctx, tx, unit, model.UnitStatusReceived, &userID, &EventDetail{
		Description: "Dealer acceptance cancelled",
	})
}

// GetProgress recomputes the full progress view from current item state.
// It is a pure read: safe to call repeatedly, never mutates, and never
// depends on cached counters.
func (s *AcceptanceService) GetProgress(ctx context.Context, id uuid.UUID) (*model.AcceptanceProgress, error) {
	record, err := s.acceptances.GetByIDInTx(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return buildAcceptanceProgress(record), nil
}

func buildAcceptanceProgress(record *model.AcceptanceRecord) *model.AcceptanceProgress {
	progress := &model.AcceptanceProgress{
		AcceptanceID: record.ID,
		Progress:     Tally(acceptanceRunItems(record.Items)),
		ByCategory:   make(map[string]model.CategoryProgress),
	}

	for _, item := range record.Items {
		progress.PhotoCount += len(item.Photos)

		catName := "uncategorized"
		if item.ChecklistItem != nil && item.ChecklistItem.Category != nil {
			catName = item.ChecklistItem.Category.Name
		}
		cat := progress.ByCategory[catName]
		cat.Total++
		if item.Status != model.ItemStatusPending {
			cat.Completed++
		}
		switch item.Status {
		case model.ItemStatusPass:
			cat.Passed++
		case model.ItemStatusIssue:
			cat.Issues++
		case model.ItemStatusFail:
			cat.Failed++
		}
		progress.ByCategory[catName] = cat
	}
	return progress
}

// GetSummary returns the roll-up view of an acceptance: progress, issue
// listings with photo counts, and the decision if one has been made.
func (s *AcceptanceService) GetSummary(ctx context.Context, id uuid.UUID) (*model.AcceptanceSummary, error) {
	record, err := s.acceptances.GetByIDInTx(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	summary := &model.AcceptanceSummary{
		AcceptanceID: record.ID,
		Status:       record.Status,
		Decision:     record.Decision,
		StartedAt:    record.StartedAt,
		CompletedAt:  record.CompletedAt,
		Progress:     buildAcceptanceProgress(record),
		Conditions:   record.Conditions,
		Issues:       []model.IssueSummary{},
	}
	if record.Unit != nil {
		summary.VIN = record.Unit.VIN
		summary.ModelYear = record.Unit.ModelYear
		if record.Unit.Model != nil {
			summary.ModelName = record.Unit.Model.Name
		}
	}

	for _, item := range record.Items {
		if item.Status != model.ItemStatusIssue && item.Status != model.ItemStatusFail {
			continue
		}
		issue := model.IssueSummary{
			ItemID:     item.ID,
			Status:     item.Status,
			Severity:   item.IssueSeverity,
			Notes:      item.Notes,
			PhotoCount: len(item.Photos),
		}
		if item.ChecklistItem != nil {
			issue.Code = item.ChecklistItem.Code
			issue.Description = item.ChecklistItem.Description
		}
		summary.Issues = append(summary.Issues, issue)
	}
	return summary, nil
}
