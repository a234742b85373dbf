package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// PDIRepository is the GORM implementation of service.PDIRepository.
type PDIRepository struct{}

// NewPDIRepository creates a new PDIRepository.
func NewPDIRepository() *PDIRepository {
	return &PDIRepository{}
}

func (r *PDIRepository) GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PDIRecord, error) {
	var record model.PDIRecord
	err := tx.WithContext(ctx).
		Preload("Unit").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("pdi_items.item_code ASC")
		}).
		Preload("Items.Photos").
		First(&record, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, "PDI record %s", id)
	}
	return &record, nil
}

func (r *PDIRepository) ListByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]model.PDIRecord, error) {
	var records []model.PDIRecord
	err := tx.WithContext(ctx).
		Preload("Items").
		Where("unit_id = ?", unitID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PDIRepository) CreateInTx(ctx context.Context, tx *gorm.DB, record *model.PDIRecord) error {
	return tx.WithContext(ctx).Create(record).Error
}

func (r *PDIRepository) UpdateInTx(ctx context.Context, tx *gorm.DB, record *model.PDIRecord) error {
	return tx.WithContext(ctx).Omit("Unit", "Items").Save(record).Error
}

func (r *PDIRepository) CreateItemsInTx(ctx context.Context, tx *gorm.DB, items []model.PDIItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *PDIRepository) GetItemInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*model.PDIItem, error) {
	var item model.PDIItem
	err := tx.WithContext(ctx).Preload("Photos").First(&item, "id = ?", itemID).Error
	if err != nil {
		return nil, translateNotFound(err, "PDI item %s", itemID)
	}
	return &item, nil
}

func (r *PDIRepository) UpdateItemInTx(ctx context.Context, tx *gorm.DB, item *model.PDIItem) error {
	return tx.WithContext(ctx).Omit("Photos").Save(item).Error
}

func (r *PDIRepository) ListItemsInTx(ctx context.Context, tx *gorm.DB, pdiID uuid.UUID) ([]model.PDIItem, error) {
	var items []model.PDIItem
	err := tx.WithContext(ctx).
		Where("pdi_id = ?", pdiID).
		Order("item_code ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
