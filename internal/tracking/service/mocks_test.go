package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// MockUnitRepository is a mock implementation of UnitRepository
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Unit, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Unit), args.Error(1)
}

func (m *MockUnitRepository) GetByVINInTx(ctx context.Context, tx *gorm.DB, vin string) (*model.Unit, error) {
	args := m.Called(ctx, tx, vin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Unit), args.Error(1)
}

func (m *MockUnitRepository) CreateInTx(ctx context.Context, tx *gorm.DB, unit *model.Unit) error {
	args := m.Called(ctx, tx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) UpdateInTx(ctx context.Context, tx *gorm.DB, unit *model.Unit) error {
	args := m.Called(ctx, tx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) ListInTx(ctx context.Context, tx *gorm.DB, query model.ListUnitsQuery) ([]model.Unit, int64, error) {
	args := m.Called(ctx, tx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Unit), args.Get(1).(int64), args.Error(2)
}

func (m *MockUnitRepository) ListByStatusesInTx(ctx context.Context, tx *gorm.DB, dealerID *uuid.UUID, statuses []model.UnitStatus) ([]model.Unit, error) {
	args := m.Called(ctx, tx, dealerID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Unit), args.Error(1)
}

// MockUnitEventRepository is a mock implementation of UnitEventRepository
type MockUnitEventRepository struct {
	mock.Mock
}

func (m *MockUnitEventRepository) AppendInTx(ctx context.Context, tx *gorm.DB, event *model.UnitEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func (m *MockUnitEventRepository) ListByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, limit int) ([]model.UnitEvent, error) {
	args := m.Called(ctx, tx, unitID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.UnitEvent), args.Error(1)
}

// MockChecklistRepository is a mock implementation of ChecklistRepository
type MockChecklistRepository struct {
	mock.Mock
}

func (m *MockChecklistRepository) GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ChecklistTemplate, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChecklistTemplate), args.Error(1)
}

func (m *MockChecklistRepository) FindForModelInTx(ctx context.Context, tx *gorm.DB, modelID *uuid.UUID, templateType model.TemplateType) (*model.ChecklistTemplate, error) {
	args := m.Called(ctx, tx, modelID, templateType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChecklistTemplate), args.Error(1)
}

func (m *MockChecklistRepository) ListInTx(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]model.ChecklistTemplate, error) {
	args := m.Called(ctx, tx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ChecklistTemplate), args.Error(1)
}

func (m *MockChecklistRepository) CreateInTx(ctx context.Context, tx *gorm.DB, template *model.ChecklistTemplate) error {
	args := m.Called(ctx, tx, template)
	return args.Error(0)
}

func (m *MockChecklistRepository) UpdateInTx(ctx context.Context, tx *gorm.DB, template *model.ChecklistTemplate) error {
	args := m.Called(ctx, tx, template)
	return args.Error(0)
}

func (m *MockChecklistRepository) MaxCategoryOrderInTx(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (int, error) {
	args := m.Called(ctx, tx, templateID)
	return args.Int(0), args.Error(1)
}

func (m *MockChecklistRepository) MaxItemOrderInTx(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) (int, error) {
	args := m.Called(ctx, tx, categoryID)
	return args.Int(0), args.Error(1)
}

func (m *MockChecklistRepository) GetCategoryInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ChecklistCategory, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChecklistCategory), args.Error(1)
}

func (m *MockChecklistRepository) CreateCategoryInTx(ctx context.Context, tx *gorm.DB, category *model.ChecklistCategory) error {
	args := m.Called(ctx, tx, category)
	return args.Error(0)
}

func (m *MockChecklistRepository) CreateItemInTx(ctx context.Context, tx *gorm.DB, item *model.ChecklistItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

// MockInspectionRepository is a mock implementation of InspectionRepository
type MockInspectionRepository struct {
	mock.Mock
}

func (m *MockInspectionRepository) GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.InspectionRecord, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InspectionRecord), args.Error(1)
}

func (m *MockInspectionRepository) GetLatestByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) (*model.InspectionRecord, error) {
	args := m.Called(ctx, tx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InspectionRecord), args.Error(1)
}

func (m *MockInspectionRepository) FindInProgressByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) (*model.InspectionRecord, error) {
	args := m.Called(ctx, tx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InspectionRecord), args.Error(1)
}

func (m *MockInspectionRepository) CreateInTx(ctx context.Context, tx *gorm.DB, record *model.InspectionRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockInspectionRepository) UpdateInTx(ctx context.Context, tx *gorm.DB, record *model.InspectionRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockInspectionRepository) CreateItemsInTx(ctx context.Context, tx *gorm.DB, items []model.InspectionItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockInspectionRepository) GetItemInTx(ctx context.Context, tx *gorm.DB, inspectionID, itemID uuid.UUID) (*model.InspectionItem, error) {
	args := m.Called(ctx, tx, inspectionID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InspectionItem), args.Error(1)
}

func (m *MockInspectionRepository) UpdateItemInTx(ctx context.Context, tx *gorm.DB, item *model.InspectionItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockInspectionRepository) ListInTx(ctx context.Context, tx *gorm.DB, status *model.InspectionStatus, inspectorID *uuid.UUID, offset, limit int) ([]model.InspectionRecord, int64, error) {
	args := m.Called(ctx, tx, status, inspectorID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.InspectionRecord), args.Get(1).(int64), args.Error(2)
}

// MockPDIRepository is a mock implementation of PDIRepository
type MockPDIRepository struct {
	mock.Mock
}

func (m *MockPDIRepository) GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PDIRecord, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PDIRecord), args.Error(1)
}

func (m *MockPDIRepository) ListByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]model.PDIRecord, error) {
	args := m.Called(ctx, tx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PDIRecord), args.Error(1)
}

func (m *MockPDIRepository) CreateInTx(ctx context.Context, tx *gorm.DB, record *model.PDIRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockPDIRepository) UpdateInTx(ctx context.Context, tx *gorm.DB, record *model.PDIRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockPDIRepository) CreateItemsInTx(ctx context.Context, tx *gorm.DB, items []model.PDIItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockPDIRepository) GetItemInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*model.PDIItem, error) {
	args := m.Called(ctx, tx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PDIItem), args.Error(1)
}

func (m *MockPDIRepository) UpdateItemInTx(ctx context.Context, tx *gorm.DB, item *model.PDIItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockPDIRepository) ListItemsInTx(ctx context.Context, tx *gorm.DB, pdiID uuid.UUID) ([]model.PDIItem, error) {
	args := m.Called(ctx, tx, pdiID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PDIItem), args.Error(1)
}

// MockAcceptanceRepository is a mock implementation of AcceptanceRepository
type MockAcceptanceRepository struct {
	mock.Mock
}

func (m *MockAcceptanceRepository) GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.AcceptanceRecord, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AcceptanceRecord), args.Error(1)
}

func (m *MockAcceptanceRepository) ListByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]model.AcceptanceRecord, error) {
	args := m.Called(ctx, tx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AcceptanceRecord), args.Error(1)
}

func (m *MockAcceptanceRepository) FindInProgressByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) (*model.AcceptanceRecord, error) {
	args := m.Called(ctx, tx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AcceptanceRecord), args.Error(1)
}

func (m *MockAcceptanceRepository) CreateInTx(ctx context.Context, tx *gorm.DB, record *model.AcceptanceRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockAcceptanceRepository) UpdateInTx(ctx context.Context, tx *gorm.DB, record *model.AcceptanceRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockAcceptanceRepository) CreateItemsInTx(ctx context.Context, tx *gorm.DB, items []model.AcceptanceItem) error {
	args := m.Called(ctx, tx, items)
	return args.Error(0)
}

func (m *MockAcceptanceRepository) GetItemInTx(ctx context.Context, tx *gorm.DB, acceptanceID, itemID uuid.UUID) (*model.AcceptanceItem, error) {
	args := m.Called(ctx, tx, acceptanceID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AcceptanceItem), args.Error(1)
}

func (m *MockAcceptanceRepository) UpdateItemInTx(ctx context.Context, tx *gorm.DB, item *model.AcceptanceItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockAcceptanceRepository) ListInTx(ctx context.Context, tx *gorm.DB, dealerID *uuid.UUID, status *model.AcceptanceStatus, offset, limit int) ([]model.AcceptanceRecord, int64, error) {
	args := m.Called(ctx, tx, dealerID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.AcceptanceRecord), args.Get(1).(int64), args.Error(2)
}

// MockItemNoteRepository is a mock implementation of ItemNoteRepository
type MockItemNoteRepository struct {
	mock.Mock
}

func (m *MockItemNoteRepository) GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ItemNote, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ItemNote), args.Error(1)
}

func (m *MockItemNoteRepository) CreateInTx(ctx context.Context, tx *gorm.DB, note *model.ItemNote) error {
	args := m.Called(ctx, tx, note)
	return args.Error(0)
}

func (m *MockItemNoteRepository) UpdateInTx(ctx context.Context, tx *gorm.DB, note *model.ItemNote) error {
	args := m.Called(ctx, tx, note)
	return args.Error(0)
}

func (m *MockItemNoteRepository) DeleteInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *MockItemNoteRepository) ListForManufacturerItemInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, filter model.NoteVisibilityFilter) ([]model.ItemNote, error) {
	args := m.Called(ctx, tx, itemID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ItemNote), args.Error(1)
}

func (m *MockItemNoteRepository) ListForAcceptanceItemInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, filter model.NoteVisibilityFilter) ([]model.ItemNote, error) {
	args := m.Called(ctx, tx, itemID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ItemNote), args.Error(1)
}

func (m *MockItemNoteRepository) ListForUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, filter model.NoteVisibilityFilter) ([]model.ItemNote, error) {
	args := m.Called(ctx, tx, unitID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ItemNote), args.Error(1)
}

func (m *MockItemNoteRepository) ManufacturerItemExistsInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemNoteRepository) AcceptanceItemExistsInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tx, itemID)
	return args.Bool(0), args.Error(1)
}
