package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

func newInspectionFixture() (*InspectionService, *MockInspectionRepository, *MockUnitRepository, *MockChecklistRepository, *MockUnitEventRepository) {
	inspections := new(MockInspectionRepository)
	units := new(MockUnitRepository)
	checklists := new(MockChecklistRepository)
	events := new(MockUnitEventRepository)
	register := NewStatusRegister(units, events)
	return NewInspectionService(nil, inspections, units, checklists, register), inspections, units, checklists, events
}

func manufacturerTemplate(itemCount int) *model.ChecklistTemplate {
	category := model.ChecklistCategory{BaseModel: model.BaseModel{ID: uuid.New()}, Name: "Exterior"}
	for i := 0; i < itemCount; i++ {
		category.Items = append(category.Items, model.ChecklistItem{
			BaseModel: model.BaseModel{ID: uuid.New()},
			Required:  true,
		})
	}
	return &model.ChecklistTemplate{
		BaseModel:    model.BaseModel{ID: uuid.New()},
		Name:         "Factory Final",
		TemplateType: model.TemplateTypeManufacturer,
		Categories:   []model.ChecklistCategory{category},
	}
}

func TestInspectionStart(t *testing.T) {
	ctx := context.Background()
	inspectorID := uuid.New()

	t.Run("materializes one pending item per template item", func(t *testing.T) {
		svc, inspections, units, checklists, events := newInspectionFixture()
		unit := &model.Unit{BaseModel: model.BaseModel{ID: uuid.New()}, VIN: "1FDXE4FS8JDC12345", Status: model.UnitStatusPendingInspection}
		template := manufacturerTemplate(3)

		units.On("GetByIDInTx", ctx, mock.Anything, unit.ID).Return(unit, nil)
		inspections.On("FindInProgressByUnitInTx", ctx, mock.Anything, unit.ID).Return(nil, nil)
		checklists.On("FindForModelInTx", ctx, mock.Anything, unit.ModelID, model.TemplateTypeManufacturer).Return(template, nil)
		inspections.On("CreateInTx", ctx, mock.Anything, mock.AnythingOfType("*model.InspectionRecord")).Return(nil)
		inspections.On("CreateItemsInTx", ctx, mock.Anything, mock.MatchedBy(func(items []model.InspectionItem) bool {
			if len(items) != 3 {
				return false
			}
			for _, it := range items {
				if it.Status != model.ItemStatusPending {
					return false
				}
			}
			return true
		})).Return(nil)
		units.On("UpdateInTx", ctx, mock.Anything, unit).Return(nil)
		events.On("AppendInTx", ctx, mock.Anything, mock.MatchedBy(func(e *model.UnitEvent) bool {
			return e.EventType == model.EventTypeInspectionStarted
		})).Return(nil)

		record, err := svc.startInTx(ctx, nil, &model.StartInspectionDTO{UnitID: unit.ID}, inspectorID)

		assert.NoError(t, err)
		assert.Equal(t, model.InspectionStatusInProgress, record.Status)
		assert.Equal(t, inspectorID, record.InspectorID)
		assert.Equal(t, model.UnitStatusInspectionInProgress, unit.Status)
		inspections.AssertExpectations(t)
	})

	t.Run("wrong unit status is rejected", func(t *testing.T) {
		svc, _, units, _, _ := newInspectionFixture()
		unit := &model.Unit{BaseModel: model.BaseModel{ID: uuid.New()}, Status: model.UnitStatusShipped}
		units.On("GetByIDInTx", ctx, mock.Anything, unit.ID).Return(unit, nil)

		_, err := svc.startInTx(ctx, nil, &model.StartInspectionDTO{UnitID: unit.ID}, inspectorID)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("an existing in-progress inspection conflicts", func(t *testing.T) {
		svc, inspections, units, _, _ := newInspectionFixture()
		unit := &model.Unit{BaseModel: model.BaseModel{ID: uuid.New()}, VIN: "1FDXE4FS8JDC12345", Status: model.UnitStatusPendingInspection}
		existing := &model.InspectionRecord{BaseModel: model.BaseModel{ID: uuid.New()}, Status: model.InspectionStatusInProgress}

		units.On("GetByIDInTx", ctx, mock.Anything, unit.ID).Return(unit, nil)
		inspections.On("FindInProgressByUnitInTx", ctx, mock.Anything, unit.ID).Return(existing, nil)

		_, err := svc.startInTx(ctx, nil, &model.StartInspectionDTO{UnitID: unit.ID}, inspectorID)
		assert.True(t, errors.Is(err, ErrConflict))
	})

	t.Run("no template for the model is rejected", func(t *testing.T) {
		svc, inspections, units, checklists, _ := newInspectionFixture()
		unit := &model.Unit{BaseModel: model.BaseModel{ID: uuid.New()}, Status: model.UnitStatusPendingInspection}

		units.On("GetByIDInTx", ctx, mock.Anything, unit.ID).Return(unit, nil)
		inspections.On("FindInProgressByUnitInTx", ctx, mock.Anything, unit.ID).Return(nil, nil)
		checklists.On("FindForModelInTx", ctx, mock.Anything, unit.ModelID, model.TemplateTypeManufacturer).Return(nil, nil)

		_, err := svc.startInTx(ctx, nil, &model.StartInspectionDTO{UnitID: unit.ID}, inspectorID)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestInspectionUpdateItem(t *testing.T) {
	ctx := context.Background()
	inspectionID := uuid.New()
	itemID := uuid.New()

	t.Run("updates a pending item on an in-progress inspection", func(t *testing.T) {
		svc, inspections, _, _, _ := newInspectionFixture()
		record := &model.InspectionRecord{BaseModel: model.BaseModel{ID: inspectionID}, Status: model.InspectionStatusInProgress}
		item := &model.InspectionItem{BaseModel: model.BaseModel{ID: itemID}, InspectionID: inspectionID, Status: model.ItemStatusPending}

		inspections.On("GetByIDInTx", ctx, mock.Anything, inspectionID).Return(record, nil)
		inspections.On("GetItemInTx", ctx, mock.Anything, inspectionID, itemID).Return(item, nil)
		inspections.On("UpdateItemInTx", ctx, mock.Anything, item).Return(nil)

		notes := "scratch on rear panel"
		got, err := svc.updateItemInTx(ctx, nil, inspectionID, itemID, &model.UpdateWorkflowItemDTO{
			Status:        model.ItemStatusIssue,
			Notes:         &notes,
			IssueSeverity: model.IssueSeverityMinor,
		})

		assert.NoError(t, err)
		assert.Equal(t, model.ItemStatusIssue, got.Status)
		assert.True(t, got.IsIssue)
		assert.Equal(t, notes, got.Notes)
		assert.Equal(t, model.IssueSeverityMinor, got.IssueSeverity)
	})

	t.Run("items freeze once the inspection completes", func(t *testing.T) {
		svc, inspections, _, _, _ := newInspectionFixture()
		record := &model.InspectionRecord{BaseModel: model.BaseModel{ID: inspectionID}, Status: model.InspectionStatusCompleted}
		inspections.On("GetByIDInTx", ctx, mock.Anything, inspectionID).Return(record, nil)

		_, err := svc.updateItemInTx(ctx, nil, inspectionID, itemID, &model.UpdateWorkflowItemDTO{Status: model.ItemStatusPass})
		assert.True(t, errors.Is(err, ErrValidation))
		inspections.AssertNotCalled(t, "UpdateItemInTx", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestInspectionComplete(t *testing.T) {
	ctx := context.Background()
	inspectionID := uuid.New()
	userID := uuid.New()

	requiredItem := func(status model.ItemStatus) model.InspectionItem {
		return model.InspectionItem{
			Status:        status,
			ChecklistItem: &model.ChecklistItem{Required: true},
		}
	}

	t.Run("completes and moves the unit to pending approval", func(t *testing.T) {
		svc, inspections, units, _, events := newInspectionFixture()
		unit := &model.Unit{BaseModel: model.BaseModel{ID: uuid.New()}, Status: model.UnitStatusInspectionInProgress}
		record := &model.InspectionRecord{
			BaseModel: model.BaseModel{ID: inspectionID},
			UnitID:    unit.ID,
			Status:    model.InspectionStatusInProgress,
			Items: []model.InspectionItem{
				requiredItem(model.ItemStatusPass),
				requiredItem(model.ItemStatusFail),
				requiredItem(model.ItemStatusNA),
			},
		}

		inspections.On("GetByIDInTx", ctx, mock.Anything, inspectionID).Return(record, nil)
		inspections.On("UpdateInTx", ctx, mock.Anything, record).Return(nil)
		units.On("GetByIDInTx", ctx, mock.Anything, unit.ID).Return(unit, nil)
		units.On("UpdateInTx", ctx, mock.Anything, unit).Return(nil)
		events.On("AppendInTx", ctx, mock.Anything, mock.MatchedBy(func(e *model.UnitEvent) bool {
			return e.EventType == model.EventTypeInspectionCompleted
		})).Return(nil)

		err := svc.completeInTx(ctx, nil, inspectionID, &model.CompleteInspectionDTO{SignatureData: "data:image/png;base64,abc"}, userID)

		assert.NoError(t, err)
		assert.Equal(t, model.InspectionStatusCompleted, record.Status)
		assert.NotNil(t, record.CompletedAt)
		assert.NotNil(t, record.SignatureTimestamp)
		assert.Equal(t, 3, record.TotalItems)
		assert.Equal(t, 1, record.PassedItems)
		assert.Equal(t, 1, record.FailedItems)
		assert.Equal(t, model.UnitStatusPendingApproval, unit.Status)
		assert.NotNil(t, unit.InspectionCompletedAt)
	})

	t.Run("required pending items block completion", func(t *testing.T) {
		svc, inspections, _, _, _ := newInspectionFixture()
		record := &model.InspectionRecord{
			BaseModel: model.BaseModel{ID: inspectionID},
			Status:    model.InspectionStatusInProgress,
			Items: []model.InspectionItem{
				requiredItem(model.ItemStatusPending),
				requiredItem(model.ItemStatusPending),
				requiredItem(model.ItemStatusPass),
			},
		}
		inspections.On("GetByIDInTx", ctx, mock.Anything, inspectionID).Return(record, nil)

		err := svc.completeInTx(ctx, nil, inspectionID, &model.CompleteInspectionDTO{}, userID)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Contains(t, err.Error(), "2 required items")
	})

	t.Run("already completed inspection cannot complete again", func(t *testing.T) {
		svc, inspections, _, _, _ := newInspectionFixture()
		record := &model.InspectionRecord{BaseModel: model.BaseModel{ID: inspectionID}, Status: model.InspectionStatusCompleted}
		inspections.On("GetByIDInTx", ctx, mock.Anything, inspectionID).Return(record, nil)

		err := svc.completeInTx(ctx, nil, inspectionID, &model.CompleteInspectionDTO{}, userID)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestInspectionApprove(t *testing.T) {
	ctx := context.Background()
	inspectionID := uuid.New()
	approverID := uuid.New()

	t.Run("approves a completed inspection", func(t *testing.T) {
		svc, inspections, units, _, events := newInspectionFixture()
		unit := &model.Unit{BaseModel: model.BaseModel{ID: uuid.New()}, Status: model.UnitStatusPendingApproval}
		record := &model.InspectionRecord{BaseModel: model.BaseModel{ID: inspectionID}, UnitID: unit.ID, Status: model.InspectionStatusCompleted}

		inspections.On("GetByIDInTx", ctx, mock.Anything, inspectionID).Return(record, nil)
		inspections.On("UpdateInTx", ctx, mock.Anything, record).Return(nil)
		units.On("GetByIDInTx", ctx, mock.Anything, unit.ID).Return(unit, nil)
		units.On("UpdateInTx", ctx, mock.Anything, unit).Return(nil)
		events.On("AppendInTx", ctx, mock.Anything, mock.MatchedBy(func(e *model.UnitEvent) bool {
			return e.EventType == model.EventTypeInspectionApproved
		})).Return(nil)

		err := svc.approveInTx(ctx, nil, inspectionID, &model.ApproveInspectionDTO{ApprovalNotes: "clean unit"}, approverID)

		assert.NoError(t, err)
		assert.Equal(t, model.InspectionStatusApproved, record.Status)
		assert.Equal(t, &approverID, record.ApprovedByID)
		assert.Equal(t, model.UnitStatusApproved, unit.Status)
		assert.Equal(t, &approverID, unit.ApprovedByID)
	})

	t.Run("in-progress inspection cannot be approved", func(t *testing.T) {
		svc, inspections, _, _, _ := newInspectionFixture()
		record := &model.InspectionRecord{BaseModel: model.BaseModel{ID: inspectionID}, Status: model.InspectionStatusInProgress}
		inspections.On("GetByIDInTx", ctx, mock.Anything, inspectionID).Return(record, nil)

		err := svc.approveInTx(ctx, nil, inspectionID, &model.ApproveInspectionDTO{}, approverID)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestInspectionReject(t *testing.T) {
	ctx := context.Background()
	inspectionID := uuid.New()
	userID := uuid.New()

	t.Run("rejection returns the unit for a fresh cycle", func(t *testing.T) {
		svc, inspections, units, _, events := newInspectionFixture()
		unit := &model.Unit{BaseModel: model.BaseModel{ID: uuid.New()}, Status: model.UnitStatusPendingApproval}
		record := &model.InspectionRecord{BaseModel: model.BaseModel{ID: inspectionID}, UnitID: unit.ID, Status: model.InspectionStatusCompleted}

		inspections.On("GetByIDInTx", ctx, mock.Anything, inspectionID).Return(record, nil)
		inspections.On("UpdateInTx", ctx, mock.Anything, record).Return(nil)
		units.On("GetByIDInTx", ctx, mock.Anything, unit.ID).Return(unit, nil)
		units.On("UpdateInTx", ctx, mock.Anything, unit).Return(nil)
		events.On("AppendInTx", ctx, mock.Anything, mock.MatchedBy(func(e *model.UnitEvent) bool {
			return e.EventType == model.EventTypeInspectionRejected
		})).Return(nil)

		err := svc.rejectInTx(ctx, nil, inspectionID, &model.RejectInspectionDTO{RejectionReason: "paint rework"}, userID)

		assert.NoError(t, err)
		assert.Equal(t, model.InspectionStatusRejected, record.Status)
		assert.Equal(t, model.UnitStatusPendingInspection, unit.Status)
	})
}

func TestShipUnit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("ships an approved unit", func(t *testing.T) {
		svc, _, units, _, events := newInspectionFixture()
		unit := &model.Unit{BaseModel: model.BaseModel{ID: uuid.New()}, Status: model.UnitStatusApproved}

		units.On("GetByIDInTx", ctx, mock.Anything, unit.ID).Return(unit, nil)
		units.On("UpdateInTx", ctx, mock.Anything, unit).Return(nil)
		events.On("AppendInTx", ctx, mock.Anything, mock.MatchedBy(func(e *model.UnitEvent) bool {
			return e.EventType == model.EventTypeShipped
		})).Return(nil)

		got, err := svc.shipUnitInTx(ctx, nil, unit.ID, userID)

		assert.NoError(t, err)
		assert.Equal(t, model.UnitStatusShipped, got.Status)
		assert.NotNil(t, got.ShippedAt)
		assert.NotNil(t, got.ShipDate)
		assert.Equal(t, &userID, got.ShippedByID)
	})

	t.Run("unapproved unit cannot ship", func(t *testing.T) {
		svc, _, units, _, _ := newInspectionFixture()
		unit := &model.Unit{BaseModel: model.BaseModel{ID: uuid.New()}, Status: model.UnitStatusPendingApproval}
		units.On("GetByIDInTx", ctx, mock.Anything, unit.ID).Return(unit, nil)

		_, err := svc.shipUnitInTx(ctx, nil, unit.ID, userID)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}
