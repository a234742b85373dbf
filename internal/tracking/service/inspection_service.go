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

// InspectionService drives the manufacturer inspection workflow: it takes a
// unit from PENDING_INSPECTION through inspection, approval and shipping.
type InspectionService struct {
	db          *gorm.DB
	inspections InspectionRepository
	units       UnitRepository
	checklists  ChecklistRepository
	register    *StatusRegister
}

// NewInspectionService creates a new InspectionService.
func NewInspectionService(
	db *gorm.DB,
	inspections InspectionRepository,
	units UnitRepository,
	checklists ChecklistRepository,
	register *StatusRegister,
) *InspectionService {
	return &InspectionService{
		db:          db,
		inspections: inspections,
		units:       units,
		checklists:  checklists,
		register:    register,
	}
}

// Start begins a manufacturer inspection for a unit. The unit must be in
// PENDING_INSPECTION and must not already have an inspection in progress.
// One item row is materialized per checklist item, all PENDING. Everything
// happens in one transaction; on any failure nothing is persisted.
func (s *InspectionService) Start(ctx context.Context, dto *model.StartInspectionDTO, inspectorID uuid.UUID) (*model.InspectionRecord, error) {
	var record *model.InspectionRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		record, err = s.startInTx(ctx, tx, dto, inspectorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, record.ID)
}

func (s *InspectionService) startInTx(ctx context.Context, tx *gorm.DB, dto *model.StartInspectionDTO, inspectorID uuid.UUID) (*model.InspectionRecord, error) {
	unit, err := s.units.GetByIDInTx(ctx, tx, dto.UnitID)
	if err != nil {
		return nil, err
	}

	if unit.Status != model.UnitStatusPendingInspection {
		return nil, validationf("cannot start inspection for unit in status %s", unit.Status)
	}

	existing, err := s.inspections.FindInProgressByUnitInTx(ctx, tx, unit.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflictf("unit %s already has an inspection in progress", unit.VIN)
	}

	template, err := s.resolveTemplate(ctx, tx, dto.TemplateID, unit.ModelID)
	if err != nil {
		return nil, err
	}

	record := &model.InspectionRecord{
		UnitID:      unit.ID,
		InspectorID: inspectorID,
		Status:      model.InspectionStatusInProgress,
	}
	if err := s.inspections.CreateInTx(ctx, tx, record); err != nil {
		return nil, fmt.Errorf("failed to create inspection record: %w", err)
	}

	templateItems := template.Items()
	items := make([]model.InspectionItem, 0, len(templateItems))
	for _, ti := range templateItems {
		items = append(items, model.InspectionItem{
			InspectionID:    record.ID,
			ChecklistItemID: ti.ID,
			Status:          model.ItemStatusPending,
		})
	}
	if len(items) > 0 {
		if err := s.inspections.CreateItemsInTx(ctx, tx, items); err != nil {
			return nil, fmt.Errorf("failed to create inspection items: %w", err)
		}
	}

	err = s.register.SetStatusInTx(ctx, tx, unit, model.UnitStatusInspectionInProgress, &inspectorID, &EventDetail{
		Type:        model.EventTypeInspectionStarted,
		Description: "Manufacturer inspection started",
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "manufacturer inspection started",
		"inspection_id", record.ID,
		"unit_id", unit.ID,
		"vin", unit.VIN,
		"items", len(items),
	)
	return record, nil
}

// resolveTemplate picks the checklist template for a new inspection: the
// explicitly requested one if given, otherwise the default manufacturer
// template for the unit's model.
func (s *InspectionService) resolveTemplate(ctx context.Context, tx *gorm.DB, templateID *uuid.UUID, modelID *uuid.UUID) (*model.ChecklistTemplate, error) {
	if templateID != nil {
		return s.checklists.GetByIDInTx(ctx, tx, *templateID)
	}
	template, err := s.checklists.FindForModelInTx(ctx, tx, modelID, model.TemplateTypeManufacturer)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, validationf("no checklist template found for this model")
	}
	return template, nil
}

// GetByID returns an inspection with its items, template details and a
// freshly computed progress block.
func (s *InspectionService) GetByID(ctx context.Context, id uuid.UUID) (*model.InspectionRecord, error) {
	return s.inspections.GetByIDInTx(ctx, s.db, id)
}

// GetProgress recomputes the aggregate completion state from current items.
func (s *InspectionService) GetProgress(ctx context.Context, id uuid.UUID) (*model.Progress, error) {
	record, err := s.inspections.GetByIDInTx(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	progress := Tally(inspectionRunItems(record.Items))
	return &progress, nil
}

// GetLatestByUnit returns the most recent inspection for a unit.
func (s *InspectionService) GetLatestByUnit(ctx context.Context, unitID uuid.UUID) (*model.InspectionRecord, error) {
	record, err := s.inspections.GetLatestByUnitInTx(ctx, s.db, unitID)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, record.ID)
}

// UpdateItem updates one item. Only permitted while the inspection is
// IN_PROGRESS; item statuses move freely between any values until then.
func (s *InspectionService) UpdateItem(ctx context.Context, inspectionID, itemID uuid.UUID, dto *model.UpdateWorkflowItemDTO) (*model.InspectionItem, error) {
	var item *model.InspectionItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = s.updateItemInTx(ctx, tx, inspectionID, itemID, dto)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InspectionService) updateItemInTx(ctx context.Context, tx *gorm.DB, inspectionID, itemID uuid.UUID, dto *model.UpdateWorkflowItemDTO) (*model.InspectionItem, error) {
	record, err := s.inspections.GetByIDInTx(ctx, tx, inspectionID)
	if err != nil {
		return nil, err
	}
	if record.Status != model.InspectionStatusInProgress {
		return nil, validationf("cannot update items on a %s inspection", record.Status)
	}

	item, err := s.inspections.GetItemInTx(ctx, tx, inspectionID, itemID)
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

	if err := s.inspections.UpdateItemInTx(ctx, tx, item); err != nil {
		return nil, fmt.Errorf("failed to update inspection item: %w", err)
	}
	return item, nil
}

// BulkUpdateItems applies several item updates in one transaction. Returns
// the number of items updated.
func (s *InspectionService) BulkUpdateItems(ctx context.Context, inspectionID uuid.UUID, dto *model.BulkUpdateItemsDTO) (int, error) {
	updated := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.inspections.GetByIDInTx(ctx, tx, inspectionID)
		if err != nil {
			return err
		}
		if record.Status != model.InspectionStatusInProgress {
			return validationf("cannot update items on a %s inspection", record.Status)
		}

		for _, upd := range dto.Items {
			item, err := s.inspections.GetItemInTx(ctx, tx, inspectionID, upd.ItemID)
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
			if err := s.inspections.UpdateItemInTx(ctx, tx, item); err != nil {
				return fmt.Errorf("failed to update inspection item %s: %w", item.ID, err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

// Complete marks an in-progress inspection COMPLETED and moves the unit to
// PENDING_APPROVAL. Fails if any template-required item is still PENDING,
// reporting the count of such items.
func (s *InspectionService) Complete(ctx context.Context, inspectionID uuid.UUID, dto *model.CompleteInspectionDTO, userID uuid.UUID) (*model.InspectionRecord, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.completeInTx(ctx, tx, inspectionID, dto, userID)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, inspectionID)
}

func (s *InspectionService) completeInTx(ctx context.Context, tx *gorm.DB, inspectionID uuid.UUID, dto *model.CompleteInspectionDTO, userID uuid.UUID) error {
	record, err := s.inspections.GetByIDInTx(ctx, tx, inspectionID)
	if err != nil {
		return err
	}
	if !CanTransitionInspection(record.Status, model.InspectionStatusCompleted) {
		return validationf("inspection is not in progress")
	}

	runItems := inspectionRunItems(record.Items)
	if pending := RequiredPendingCount(runItems); pending > 0 {
		return validationf("%d required items are not completed", pending)
	}

	tally := Tally(runItems)
	now := time.Now().UTC()

	record.Status = model.InspectionStatusCompleted
	record.CompletedAt = &now
	record.GeneralNotes = dto.GeneralNotes
	record.TotalItems = tally.TotalItems
	record.PassedItems = tally.PassedItems
	record.FailedItems = tally.FailedItems
	record.IssueItems = tally.IssueItems
	if dto.SignatureData != "" {
		record.SignatureData = dto.SignatureData
		record.SignatureTimestamp = &now
	}
	if err := s.inspections.UpdateInTx(ctx, tx, record); err != nil {
		return fmt.Errorf("failed to update inspection record: %w", err)
	}

	unit, err := s.units.GetByIDInTx(ctx, tx, record.UnitID)
	if err != nil {
		return err
	}
	unit.InspectionCompletedAt = &now

	return s.register.SetStatusInTx(ctx, tx, unit, model.UnitStatusPendingApproval, &userID, &EventDetail{
		Type: model.EventTypeInspectionCompleted,
		Description: fmt.Sprintf("Inspection completed: %d passed, %d failed, %d issues",
			tally.PassedItems, tally.FailedItems, tally.IssueItems),
		Metadata: tally,
	})
}

// Approve marks a completed inspection APPROVED and the unit APPROVED,
// recording the approver and timestamp.
func (s *InspectionService) Approve(ctx context.Context, inspectionID uuid.UUID, dto *model.ApproveInspectionDTO, approverID uuid.UUID) (*model.InspectionRecord, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.approveInTx(ctx, tx, inspectionID, dto, approverID)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, inspectionID)
}

func (s *InspectionService) approveInTx(ctx context.Context, tx *gorm.DB, inspectionID uuid.UUID, dto *model.ApproveInspectionDTO, approverID uuid.UUID) error {
	record, err := s.inspections.GetByIDInTx(ctx, tx, inspectionID)
	if err != nil {
		return err
	}
	if !CanTransitionInspection(record.Status, model.InspectionStatusApproved) {
		return validationf("inspection must be completed before approval")
	}

	now := time.Now().UTC()
	record.Status = model.InspectionStatusApproved
	record.ApprovedAt = &now
	record.ApprovedByID = &approverID
	if err := s.inspections.UpdateInTx(ctx, tx, record); err != nil {
		return fmt.Errorf("failed to update inspection record: %w", err)
	}

	unit, err := s.units.GetByIDInTx(ctx, tx, record.UnitID)
	if err != nil {
		return err
	}
	unit.ApprovedAt = &now
	unit.ApprovedByID = &approverID

	detail := &EventDetail{
		Type:        model.EventTypeInspectionApproved,
		Description: "Inspection approved, unit ready to ship",
	}
	if dto.ApprovalNotes != "" {
		detail.Metadata = map[string]string{"notes": dto.ApprovalNotes}
	}
	return s.register.SetStatusInTx(ctx, tx, unit, model.UnitStatusApproved, &approverID, detail)
}

// Reject sends a completed inspection back for rework. The rejected record
// stays REJECTED and the unit returns to PENDING_INSPECTION so a fresh
// inspection cycle can start.
func (s *InspectionService) Reject(ctx context.Context, inspectionID uuid.UUID, dto *model.RejectInspectionDTO, userID uuid.UUID) (*model.InspectionRecord, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.rejectInTx(ctx, tx, inspectionID, dto, userID)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, inspectionID)
}

func (s *InspectionService) rejectInTx(ctx context.Context, tx *gorm.DB, inspectionID uuid.UUID, dto *model.RejectInspectionDTO, userID uuid.UUID) error {
	record, err := s.inspections.GetByIDInTx(ctx, tx, inspectionID)
	if err != nil {
		return err
	}
	if !CanTransitionInspection(record.Status, model.InspectionStatusRejected) {
		return validationf("inspection must be completed before rejection")
	}

	record.Status = model.InspectionStatusRejected
	if err := s.inspections.UpdateInTx(ctx, tx, record); err != nil {
		return fmt.Errorf("failed to update inspection record: %w", err)
	}

	unit, err := s.units.GetByIDInTx(ctx, tx, record.UnitID)
	if err != nil {
		return err
	}

	return s.register.SetStatusInTx(ctx, tx, unit, model.UnitStatusPendingInspection, &userID, &EventDetail{
		Type:        model.EventTypeInspectionRejected,
		Description: fmt.Sprintf("Inspection rejected: %s", dto.RejectionReason),
		Metadata:    map[string]string{"reason": dto.RejectionReason},
	})
}

// ShipUnit marks an approved unit SHIPPED; this is the point at which the
// unit becomes visible to the dealer side.
func (s *InspectionService) ShipUnit(ctx context.Context, unitID uuid.UUID, userID uuid.UUID) (*model.Unit, error) {
	var unit *model.Unit
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		unit, err = s.shipUnitInTx(ctx, tx, unitID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *InspectionService) shipUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, userID uuid.UUID) (*model.Unit, error) {
	unit, err := s.units.GetByIDInTx(ctx, tx, unitID)
	if err != nil {
		return nil, err
	}
	if unit.Status != model.UnitStatusApproved {
		return nil, validationf("unit must be approved before shipping")
	}

	now := time.Now().UTC()
	unit.ShippedAt = &now
	unit.ShippedByID = &userID
	unit.ShipDate = &now

	err = s.register.SetStatusInTx(ctx, tx, unit, model.UnitStatusShipped, &userID, &EventDetail{
		Description: "Unit shipped to dealer",
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// List returns inspections filtered by status and inspector, newest first.
func (s *InspectionService) List(ctx context.Context, status *model.InspectionStatus, inspectorID *uuid.UUID, offset, limit int) ([]model.InspectionRecord, *model.PageMeta, error) {
	records, total, err := s.inspections.ListInTx(ctx, s.db, status, inspectorID, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	return records, &model.PageMeta{Total: total, Offset: offset, Limit: limit}, nil
}

// UnitsPendingInspection lists units waiting for an inspection to start.
func (s *InspectionService) UnitsPendingInspection(ctx context.Context) ([]model.Unit, error) {
	return s.units.ListByStatusesInTx(ctx, s.db, nil, []model.UnitStatus{model.UnitStatusPendingInspection})
}

// UnitsPendingApproval lists units with a completed inspection awaiting a
// decision.
func (s *InspectionService) UnitsPendingApproval(ctx context.Context) ([]model.Unit, error) {
	return s.units.ListByStatusesInTx(ctx, s.db, nil, []model.UnitStatus{model.UnitStatusPendingApproval})
}

// UnitsReadyToShip lists approved units that have not shipped yet.
func (s *InspectionService) UnitsReadyToShip(ctx context.Context) ([]model.Unit, error) {
	return s.units.ListByStatusesInTx(ctx, s.db, nil, []model.UnitStatus{model.UnitStatusApproved})
}
