package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// The services depend on narrow repository interfaces so the engines can be
// exercised against mocks. All mutating methods take the enclosing
// transaction; read paths outside a transaction pass the root *gorm.DB.

// UnitRepository persists units.
type UnitRepository interface {
	GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Unit, error)
	GetByVINInTx(ctx context.Context, tx *gorm.DB, vin string) (*model.Unit, error)
	CreateInTx(ctx context.Context, tx *gorm.DB, unit *model.Unit) error
	UpdateInTx(ctx context.Context, tx *gorm.DB, unit *model.Unit) error
	ListInTx(ctx context.Context, tx *gorm.DB, query model.ListUnitsQuery) ([]model.Unit, int64, error)
	ListByStatusesInTx(ctx context.Context, tx *gorm.DB, dealerID *uuid.UUID, statuses []model.UnitStatus) ([]model.Unit, error)
}

// UnitEventRepository appends to and reads the unit event log. Events are
// never updated or deleted.
type UnitEventRepository interface {
	AppendInTx(ctx context.Context, tx *gorm.DB, event *model.UnitEvent) error
	ListByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, limit int) ([]model.UnitEvent, error)
}

// ChecklistRepository resolves and persists checklist templates.
type ChecklistRepository interface {
	GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ChecklistTemplate, error)
	// FindForModelInTx resolves the applicable template for a model and
	// workflow type: the highest-version active model-specific template
	// first, then the highest-version active generic template.
	FindForModelInTx(ctx context.Context, tx *gorm.DB, modelID *uuid.UUID, templateType model.TemplateType) (*model.ChecklistTemplate, error)
	ListInTx(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]model.ChecklistTemplate, error)
	CreateInTx(ctx context.Context, tx *gorm.DB, template *model.ChecklistTemplate) error
	UpdateInTx(ctx context.Context, tx *gorm.DB, template *model.ChecklistTemplate) error
	MaxCategoryOrderInTx(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (int, error)
	MaxItemOrderInTx(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) (int, error)
	GetCategoryInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ChecklistCategory, error)
	CreateCategoryInTx(ctx context.Context, tx *gorm.DB, category *model.ChecklistCategory) error
	CreateItemInTx(ctx context.Context, tx *gorm.DB, item *model.ChecklistItem) error
}

// InspectionRepository persists manufacturer inspection records and items.
type InspectionRepository interface {
	GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.InspectionRecord, error)
	GetLatestByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) (*model.InspectionRecord, error)
	FindInProgressByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) (*model.InspectionRecord, error)
	CreateInTx(ctx context.Context, tx *gorm.DB, record *model.InspectionRecord) error
	UpdateInTx(ctx context.Context, tx *gorm.DB, record *model.InspectionRecord) error
	CreateItemsInTx(ctx context.Context, tx *gorm.DB, items []model.InspectionItem) error
	GetItemInTx(ctx context.Context, tx *gorm.DB, inspectionID, itemID uuid.UUID) (*model.InspectionItem, error)
	UpdateItemInTx(ctx context.Context, tx *gorm.DB, item *model.InspectionItem) error
	ListInTx(ctx context.Context, tx *gorm.DB, status *model.InspectionStatus, inspectorID *uuid.UUID, offset, limit int) ([]model.InspectionRecord, int64, error)
}

// PDIRepository persists legacy PDI records and items.
type PDIRepository interface {
	GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PDIRecord, error)
	ListByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]model.PDIRecord, error)
	CreateInTx(ctx context.Context, tx *gorm.DB, record *model.PDIRecord) error
	UpdateInTx(ctx context.Context, tx *gorm.DB, record *model.PDIRecord) error
	CreateItemsInTx(ctx context.Context, tx *gorm.DB, items []model.PDIItem) error
	GetItemInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*model.PDIItem, error)
	UpdateItemInTx(ctx context.Context, tx *gorm.DB, item *model.PDIItem) error
	ListItemsInTx(ctx context.Context, tx *gorm.DB, pdiID uuid.UUID) ([]model.PDIItem, error)
}

// AcceptanceRepository persists dealer acceptance records and items.
type AcceptanceRepository interface {
	GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.AcceptanceRecord, error)
	ListByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]model.AcceptanceRecord, error)
	FindInProgressByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) (*model.AcceptanceRecord, error)
	CreateInTx(ctx context.Context, tx *gorm.DB, record *model.AcceptanceRecord) error
	UpdateInTx(ctx context.Context, tx *gorm.DB, record *model.AcceptanceRecord) error
	CreateItemsInTx(ctx context.Context, tx *gorm.DB, items []model.AcceptanceItem) error
	GetItemInTx(ctx context.Context, tx *gorm.DB, acceptanceID, itemID uuid.UUID) (*model.AcceptanceItem, error)
	UpdateItemInTx(ctx context.Context, tx *gorm.DB, item *model.AcceptanceItem) error
	ListInTx(ctx context.Context, tx *gorm.DB, dealerID *uuid.UUID, status *model.AcceptanceStatus, offset, limit int) ([]model.AcceptanceRecord, int64, error)
}

// ItemNoteRepository persists item notes.
type ItemNoteRepository interface {
	GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ItemNote, error)
	CreateInTx(ctx context.Context, tx *gorm.DB, note *model.ItemNote) error
	UpdateInTx(ctx context.Context, tx *gorm.DB, note *model.ItemNote) error
	DeleteInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListForManufacturerItemInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, filter model.NoteVisibilityFilter) ([]model.ItemNote, error)
	ListForAcceptanceItemInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, filter model.NoteVisibilityFilter) ([]model.ItemNote, error)
	ListForUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, filter model.NoteVisibilityFilter) ([]model.ItemNote, error)
	ManufacturerItemExistsInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (bool, error)
	AcceptanceItemExistsInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (bool, error)
}
