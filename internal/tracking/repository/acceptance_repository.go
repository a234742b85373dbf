package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// AcceptanceRepository is the GORM implementation of
// service.AcceptanceRepository.
type AcceptanceRepository struct{}

// NewAcceptanceRepository creates a new AcceptanceRepository.
func NewAcceptanceRepository() *AcceptanceRepository {
	return &AcceptanceRepository{}
}

func withAcceptanceDetails(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Unit").
		Preload("Unit.Model").
		Preload("Unit.Dealer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("acceptance_items.created_at ASC")
		}).
		Preload("Items.ChecklistItem").
		Preload("Items.ChecklistItem.Category").
		Preload("Items.Photos")
}

func (r *AcceptanceRepository) GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.AcceptanceRecord, error) {
	var record model.AcceptanceRecord
	err := withAcceptanceDetails(tx.WithContext(ctx)).First(&record, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, "acceptance %s", id)
	}
	return &record, nil
}

func (r *AcceptanceRepository) ListByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) ([]model.AcceptanceRecord, error) {
	var records []model.AcceptanceRecord
	err := tx.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("started_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindInProgressByUnitInTx returns the unit's in-progress acceptance with
// full details, or nil when there is none.
func (r *AcceptanceRepository) FindInProgressByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID) (*model.AcceptanceRecord, error) {
	var record model.AcceptanceRecord
	err := withAcceptanceDetails(tx.WithContext(ctx)).
		Where("unit_id = ? AND status = ?", unitID, model.AcceptanceStatusInProgress).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *AcceptanceRepository) CreateInTx(ctx context.Context, tx *gorm.DB, record *model.AcceptanceRecord) error {
	return tx.WithContext(ctx).Create(record).Error
}

func (r *AcceptanceRepository) UpdateInTx(ctx context.Context, tx *gorm.DB, record *model.AcceptanceRecord) error {
	return tx.WithContext(ctx).Omit("Unit", "Items").Save(record).Error
}

func (r *AcceptanceRepository) CreateItemsInTx(ctx context.Context, tx *gorm.DB, items []model.AcceptanceItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *AcceptanceRepository) GetItemInTx(ctx context.Context, tx *gorm.DB, acceptanceID, itemID uuid.UUID) (*model.AcceptanceItem, error) {
	var item model.AcceptanceItem
	err := tx.WithContext(ctx).
		Preload("ChecklistItem").
		Preload("Photos").
		First(&item, "id = ? AND acceptance_id = ?", itemID, acceptanceID).Error
	if err != nil {
		return nil, translateNotFound(err, "acceptance item %s", itemID)
	}
	return &item, nil
}

func (r *AcceptanceRepository) UpdateItemInTx(ctx context.Context, tx *gorm.DB, item *model.AcceptanceItem) error {
	return tx.WithContext(ctx).Omit("ChecklistItem", "Photos").Save(item).Error
}

func (r *AcceptanceRepository) ListInTx(ctx context.Context, tx *gorm.DB, dealerID *uuid.UUID, status *model.AcceptanceStatus, offset, limit int) ([]model.AcceptanceRecord, int64, error) {
	q := tx.WithContext(ctx).Model(&model.AcceptanceRecord{})
	if status != nil {
		q = q.Where("acceptance_records.status = ?", *status)
	}
	if dealerID != nil {
		q = q.Joins("JOIN units ON units.id = acceptance_records.unit_id").
			Where("units.dealer_id = ?", *dealerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []model.AcceptanceRecord
	err := q.Preload("Unit").Preload("Unit.Model").
		Order("acceptance_records.started_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
