package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// UnitRepository is the GORM implementation of service.UnitRepository.
type UnitRepository struct{}

// NewUnitRepository creates a new UnitRepository.
func NewUnitRepository() *UnitRepository {
	return &UnitRepository{}
}

func (r *UnitRepository) GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Unit, error) {
	var unit model.Unit
	err := tx.WithContext(ctx).
		Preload("Model").
		Preload("Dealer").
		First(&unit, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, "unit %s", id)
	}
	return &unit, nil
}

func (r *UnitRepository) GetByVINInTx(ctx context.Context, tx *gorm.DB, vin string) (*model.Unit, error) {
	var unit model.Unit
	err := tx.WithContext(ctx).
		Preload("Model").
		Preload("Dealer").
		First(&unit, "vin = ?", vin).Error
	if err != nil {
		return nil, translateNotFound(err, "unit with VIN %s", vin)
	}
	return &unit, nil
}

func (r *UnitRepository) CreateInTx(ctx context.Context, tx *gorm.DB, unit *model.Unit) error {
	return tx.WithContext(ctx).Create(unit).Error
}

func (r *UnitRepository) UpdateInTx(ctx context.Context, tx *gorm.DB, unit *model.Unit) error {
	return tx.WithContext(ctx).Save(unit).Error
}

func (r *UnitRepository) ListInTx(ctx context.Context, tx *gorm.DB, query model.ListUnitsQuery) ([]model.Unit, int64, error) {
	q := tx.WithContext(ctx).Model(&model.Unit{})

	if query.DealerID != nil {
		q = q.Where("dealer_id = ?", *query.DealerID)
	}
	if len(query.Statuses) > 0 {
		q = q.Where("status IN ?", query.Statuses)
	}
	if query.Search != "" {
		like := "%" + query.Search + "%"
		q = q.Where("vin ILIKE ? OR stock_number ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if query.Offset != nil {
		q = q.Offset(*query.Offset)
	}
	if query.Limit != nil {
		q = q.Limit(*query.Limit)
	}

	var units []model.Unit
	err := q.Preload("Model").Preload("Dealer").
		Order("created_at DESC").
		Find(&units).Error
	if err != nil {
		return nil, 0, err
	}
	return units, total, nil
}

func (r *UnitRepository) ListByStatusesInTx(ctx context.Context, tx *gorm.DB, dealerID *uuid.UUID, statuses []model.UnitStatus) ([]model.Unit, error) {
	q := tx.WithContext(ctx).Where("status IN ?", statuses)
	if dealerID != nil {
		q = q.Where("dealer_id = ?", *dealerID)
	}

	var units []model.Unit
	err := q.Preload("Model").Preload("Dealer").
		Order("created_at DESC").
		Find(&units).Error
	if err != nil {
		return nil, err
	}
	return units, nil
}

// UnitEventRepository is the GORM implementation of
// service.UnitEventRepository.
type UnitEventRepository struct{}

// NewUnitEventRepository creates a new UnitEventRepository.
func NewUnitEventRepository() *UnitEventRepository {
	return &UnitEventRepository{}
}

func (r *UnitEventRepository) AppendInTx(ctx context.Context, tx *gorm.DB, event *model.UnitEvent) error {
	return tx.WithContext(ctx).Create(event).Error
}

func (r *UnitEventRepository) ListByUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, limit int) ([]model.UnitEvent, error) {
	q := tx.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("event_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var events []model.UnitEvent
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
