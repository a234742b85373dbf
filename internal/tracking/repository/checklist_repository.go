package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// ChecklistRepository is the GORM implementation of
// service.ChecklistRepository.
type ChecklistRepository struct{}

// NewChecklistRepository creates a new ChecklistRepository.
func NewChecklistRepository() *ChecklistRepository {
	return &ChecklistRepository{}
}

func (r *ChecklistRepository) GetByIDInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ChecklistTemplate, error) {
	var template model.ChecklistTemplate
	err := tx.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("checklist_categories.order_num ASC")
		}).
		Preload("Categories.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("checklist_items.order_num ASC")
		}).
		First(&template, "id = ?", id).Error
	if err != nil {
		return nil, translateNotFound(err, "checklist template %s", id)
	}
	return &template, nil
}

// FindForModelInTx resolves the template for a model and workflow type.
// Model-scoped templates win over generic ones; within each bucket the
// highest version wins. ModelIDs is a jsonb list so the scoping check runs
// in Go over the active candidates rather than in SQL.
func (r *ChecklistRepository) FindForModelInTx(ctx context.Context, tx *gorm.DB, modelID *uuid.UUID, templateType model.TemplateType) (*model.ChecklistTemplate, error) {
	var candidates []model.ChecklistTemplate
	err := tx.WithContext(ctx).
		Where("template_type = ? AND active = ?", templateType, true).
		Order("version DESC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	pick := func(scoped bool) *model.ChecklistTemplate {
		for i := range candidates {
			if (len(candidates[i].ModelIDs) > 0) != scoped {
				continue
			}
			if !scoped || (modelID != nil && candidates[i].AppliesToModel(*modelID)) {
				return &candidates[i]
			}
		}
		return nil
	}

	best := pick(true)
	if best == nil {
		best = pick(false)
	}
	if best == nil {
		return nil, nil
	}
	return r.GetByIDInTx(ctx, tx, best.ID)
}

func (r *ChecklistRepository) ListInTx(ctx context.Context, tx *gorm.DB, activeOnly bool) ([]model.ChecklistTemplate, error) {
	q := tx.WithContext(ctx).Model(&model.ChecklistTemplate{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var templates []model.ChecklistTemplate
	err := q.Order("template_type ASC, version DESC").Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *ChecklistRepository) CreateInTx(ctx context.Context, tx *gorm.DB, template *model.ChecklistTemplate) error {
	return tx.WithContext(ctx).Create(template).Error
}

func (r *ChecklistRepository) UpdateInTx(ctx context.Context, tx *gorm.DB, template *model.ChecklistTemplate) error {
	return tx.WithContext(ctx).Save(template).Error
}

func (r *ChecklistRepository) MaxCategoryOrderInTx(ctx context.Context, tx *gorm.DB, templateID uuid.UUID) (int, error) {
	var max *int
	err := tx.WithContext(ctx).
		Model(&model.ChecklistCategory{}).
		Where("template_id = ?", templateID).
		Select("MAX(order_num)").
		Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

func (r *ChecklistRepository) MaxItemOrderInTx(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID) (int, error) {
	var max *int
	err := tx.WithContext(ctx).
		Model(&model.ChecklistItem{}).
		Where("category_id = ?", categoryID).
		Select("MAX(order_num)").
		Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

func (r *ChecklistRepository) GetCategoryInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.ChecklistCategory, error) {
	var category model.ChecklistCategory
	err := tx.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, translateNotFound(err, "checklist category %s", id)
		}
		return nil, err
	}
	return &category, nil
}

func (r *ChecklistRepository) CreateCategoryInTx(ctx context.Context, tx *gorm.DB, category *model.ChecklistCategory) error {
	return tx.WithContext(ctx).Create(category).Error
}

func (r *ChecklistRepository) CreateItemInTx(ctx context.Context, tx *gorm.DB, item *model.ChecklistItem) error {
	return tx.WithContext(ctx).Create(item).Error
}
