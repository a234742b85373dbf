package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// ItemNoteRepository is the GORM implementation of
// service.ItemNoteRepository.
type ItemNoteRepository struct{}

// NewItemNoteRepository creates a new ItemNoteRepository.
func NewItemNoteRepository() *ItemNoteRepository {
	return &ItemNoteRepository{}
}

func (r *ItemNoteRepository) GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ItemNote, error) {
	var note model.ItemNote
	err := tx.WithContext(ctx).First(&note, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, "note %s", id)
	}
	return &note, nil
}

func (r *ItemNoteRepository) CreateInTx(ctx context.Context, tx *gorm.DB, note *model.ItemNote) error {
	return tx.WithContext(ctx).Create(note).Error
}

func (r *ItemNoteRepository) UpdateInTx(ctx context.Context, tx *gorm.DB, note *model.ItemNote) error {
	return tx.WithContext(ctx).Save(note).Error
}

func (r *ItemNoteRepository) DeleteInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Delete(&model.ItemNote{}, "id = ?", id).Error
}

// applyVisibility translates a NoteVisibilityFilter into WHERE clauses.
func applyVisibility(q *gorm.DB, filter model.NoteVisibilityFilter) *gorm.DB {
	if filter.RequireDealerVisible {
		q = q.Where("visible_to_dealer = ?", true)
	}
	if filter.RequireManufacturerVisible {
		q = q.Where("visible_to_manufacturer = ?", true)
	}
	if filter.RequireSubmitted {
		q = q.Where("submitted_at IS NOT NULL")
	}
	return q
}

func (r *ItemNoteRepository) ListForManufacturerItemInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, filter model.NoteVisibilityFilter) ([]model.ItemNote, error) {
	q := applyVisibility(tx.WithContext(ctx).Where("manufacturer_item_id = ?", itemID), filter)

	var notes []model.ItemNote
	if err := q.Order("created_at ASC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *ItemNoteRepository) ListForAcceptanceItemInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, filter model.NoteVisibilityFilter) ([]model.ItemNote, error) {
	q := applyVisibility(tx.WithContext(ctx).Where("acceptance_item_id = ?", itemID), filter)

	var notes []model.ItemNote
	if err := q.Order("created_at ASC").Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// ListForUnitInTx collects a unit's notes from both workflows, applying the
// caller's visibility filter uniformly across both item sides.
func (r *ItemNoteRepository) ListForUnitInTx(ctx context.Context, tx *gorm.DB, unitID uuid.UUID, filter model.NoteVisibilityFilter) ([]model.ItemNote, error) {
	mfgQ := applyVisibility(tx.WithContext(ctx).
		Joins("JOIN manufacturer_inspection_items mii ON mii.id = item_notes.manufacturer_item_id").
		Joins("JOIN manufacturer_inspection_records mir ON mir.id = mii.inspection_id").
		Where("mir.unit_id = ?", unitID), filter)

	var notes []model.ItemNote
	if err := mfgQ.Find(&notes).Error; err != nil {
		return nil, err
	}

	accQ := applyVisibility(tx.WithContext(ctx).
		Joins("JOIN acceptance_items ai ON ai.id = item_notes.acceptance_item_id").
		Joins("JOIN acceptance_records ar ON ar.id = ai.acceptance_id").
		Where("ar.unit_id = ?", unitID), filter)

	var accNotes []model.ItemNote
	if err := accQ.Find(&accNotes).Error; err != nil {
		return nil, err
	}
	return append(notes, accNotes...), nil
}

func (r *ItemNoteRepository) ManufacturerItemExistsInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&model.InspectionItem{}).
		Where("id = ?", itemID).
		Count(&count).Error
	return count > 0, err
}

func (r *ItemNoteRepository) AcceptanceItemExistsInTx(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (bool, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&model.AcceptanceItem{}).
		Where("id = ?", itemID).
		Count(&count).Error
	return count > 0, err
}
