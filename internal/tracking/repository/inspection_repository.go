package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// InspectionRepository is the GORM implementation of
// service.InspectionRepository.
type InspectionRepository struct{}

// NewInspectionRepository creates a new InspectionRepository.
func NewInspectionRepository() *InspectionRepository {
	return &InspectionRepository{}
}

func withInspectionDetails(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Unit").
		Preload("Unit.Model").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("manufacturer_inspection_items.created_at ASC")
		}).
		Preload("Items.ChecklistItem").
		Preload("Items.ChecklistItem.Category").
		Preload("Items.Photos")
}

func (r *InspectionRepository) GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.InspectionRecord, error) {
	var record model.InspectionRecord
	err := withInspectionDetails(tx.WithContext(ctx)).First(&record, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, "inspection %s", id)
	}
	return &record, nil
}

func (r *InspectionRepository) GetLatestByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) (*model.InspectionRecord, error) {
	var record model.InspectionRecord
	err := withInspectionDetails(tx.WithContext(ctx)).
		Where("unit_id = ?", unitID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, translateNotFound(err, "no inspection for unit %s", unitID)
	}
	return &record, nil
}

// FindInProgressByUnitInTx returns the unit's in-progress inspection, or nil
// when there is none.
func (r *InspectionRepository) FindInProgressByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) (*model.InspectionRecord, error) {
	var record model.InspectionRecord
	err := tx.WithContext(ctx).
		Where("unit_id = ? AND status = ?", unitID, model.InspectionStatusInProgress).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *InspectionRepository) CreateInTx(ctx context.Context, tx *gorm.DB, record *model.InspectionRecord) error {
	return tx.WithContext(ctx).Create(record).Error
}

func (r *InspectionRepository) UpdateInTx(ctx context.Context, tx *gorm.DB, record *model.InspectionRecord) error {
	return tx.WithContext(ctx).Omit("Unit", "Items").Save(record).Error
}

func (r *InspectionRepository) CreateItemsInTx(ctx context.Context, tx *gorm.DB, items []model.InspectionItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *InspectionRepository) GetItemInTx(ctx context.Context, tx *gorm.DB, inspectionID, itemID uuid.UUID) (*model.InspectionItem, error) {
	var item model.InspectionItem
	err := tx.WithContext(ctx).
		Preload("ChecklistItem").
		Preload("Photos").
		First(&item, "id = ? AND inspection_id = ?", itemID, inspectionID).Error
	if err != nil {
		return nil, translateNotFound(err, "inspection item %s", itemID)
	}
	return &item, nil
}

func (r *InspectionRepository) UpdateItemInTx(ctx context.Context, tx *gorm.DB, item *model.InspectionItem) error {
	return tx.WithContext(ctx).Omit("ChecklistItem", "Photos").Save(item).Error
}

func (r *InspectionRepository) ListInTx(ctx context.Context, tx *gorm.DB, status *model.InspectionStatus, inspectorID *uuid.UUID, offset, limit int) ([]model.InspectionRecord, int64, error) {
	q := tx.WithContext(ctx).Model(&model.InspectionRecord{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if inspectorID != nil {
		q = q.Where("inspector_id = ?", *inspectorID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.InspectionRecord
	err := q.Preload("Unit").Preload("Unit.Model").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
