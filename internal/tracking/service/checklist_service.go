package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// ChecklistService manages checklist template definitions. Templates are
// additive: categories and items are appended with automatically assigned
// order numbers, and a template is retired by deactivating it rather than
// deleting it, since workflow runs snapshot items by ID.
type ChecklistService struct {
	db         *gorm.DB
	checklists ChecklistRepository
}

// NewChecklistService creates a new ChecklistService.
func NewChecklistService(db *gorm.DB, checklists ChecklistRepository) *ChecklistService {
	return &ChecklistService{db: db, checklists: checklists}
}

// List returns checklist templates, optionally restricted to active ones.
func (s *ChecklistService) List(ctx context.Context, activeOnly bool) ([]model.ChecklistTemplate, error) {
	return s.checklists.ListInTx(ctx, s.db, activeOnly)
}

// GetByID returns one template with its categories and items.
func (s *ChecklistService) GetByID(ctx context.Context, id uuid.UUID) (*model.ChecklistTemplate, error) {
	return s.checklists.GetByIDInTx(ctx, s.db, id)
}

// FindForModel resolves the template a new workflow run should use: the
// highest-version active template scoped to the model, falling back to the
// highest-version active generic template.
func (s *ChecklistService) FindForModel(ctx context.Context, modelID *uuid.UUID, templateType model.TemplateType) (*model.ChecklistTemplate, error) {
	template, err := s.checklists.FindForModelInTx(ctx, s.db, modelID, templateType)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, notFoundf("no active %s template for this model", templateType)
	}
	return template, nil
}

// Create defines a new empty template at version 1.
func (s *ChecklistService) Create(ctx context.Context, dto *model.CreateTemplateDTO, createdBy *uuid.UUID) (*model.ChecklistTemplate, error) {
	template := &model.ChecklistTemplate{
		Name:         dto.Name,
		Description:  dto.Description,
		TemplateType: dto.TemplateType,
		Version:      1,
		Active:       true,
		ModelIDs:     model.StringArray(dto.ModelIDs),
		CreatedByID:  createdBy,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.checklists.CreateInTx(ctx, tx, template)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checklist template: %w", err)
	}

	slog.InfoContext(ctx, "checklist template created",
		"template_id", template.ID,
		"type", template.TemplateType,
		"name", template.Name,
	)
	return template, nil
}

// SetActive activates or deactivates a template.
func (s *ChecklistService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*model.ChecklistTemplate, error) {
	var template *model.ChecklistTemplate
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		template, err = s.checklists.GetByIDInTx(ctx, tx, id)
		if err != nil {
			return err
		}
		template.Active = active
		return s.checklists.UpdateInTx(ctx, tx, template)
	})
	if err != nil {
		return nil, err
	}
	return template, nil
}

// AddCategory appends a category to a template with the next order number.
func (s *ChecklistService) AddCategory(ctx context.Context, templateID uuid.UUID, dto *model.AddCategoryDTO) (*model.ChecklistCategory, error) {
	var category *model.ChecklistCategory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		category, err = s.addCategoryInTx(ctx, tx, templateID, dto)
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *ChecklistService) addCategoryInTx(ctx context.Context, tx *gorm.DB, templateID uuid.UUID, dto *model.AddCategoryDTO) (*model.ChecklistCategory, error) {
	if _, err := s.checklists.GetByIDInTx(ctx, tx, templateID); err != nil {
		return nil, err
	}
	maxOrder, err := s.checklists.MaxCategoryOrderInTx(ctx, tx, templateID)
	if err != nil {
		return nil, err
	}

	category := &model.ChecklistCategory{
		TemplateID:  templateID,
		Name:        dto.Name,
		Code:        dto.Code,
		Description: dto.Description,
		OrderNum:    maxOrder + 1,
		Required:    true,
	}
	if dto.Required != nil {
		category.Required = *dto.Required
	}
	if err := s.checklists.CreateCategoryInTx(ctx, tx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// AddItem appends an item to a category with the next order number.
func (s *ChecklistService) AddItem(ctx context.Context, categoryID uuid.UUID, dto *model.AddItemDTO) (*model.ChecklistItem, error) {
	var item *model.ChecklistItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		item, err = s.addItemInTx(ctx, tx, categoryID, dto)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ChecklistService) addItemInTx(ctx context.Context, tx *gorm.DB, categoryID uuid.UUID, dto *model.AddItemDTO) (*model.ChecklistItem, error) {
	if _, err := s.checklists.GetCategoryInTx(ctx, tx, categoryID); err != nil {
		return nil, err
	}
	maxOrder, err := s.checklists.MaxItemOrderInTx(ctx, tx, categoryID)
	if err != nil {
		return nil, err
	}

	item := &model.ChecklistItem{
		CategoryID:           categoryID,
		Code:                 dto.Code,
		Description:          dto.Description,
		Instructions:         dto.Instructions,
		OrderNum:             maxOrder + 1,
		Required:             true,
		PhotoRequired:        dto.PhotoRequired,
		PhotoRequiredOnIssue: true,
	}
	if dto.Required != nil {
		item.Required = *dto.Required
	}
	if dto.PhotoRequiredOnIssue != nil {
		item.PhotoRequiredOnIssue = *dto.PhotoRequiredOnIssue
	}
	if err := s.checklists.CreateItemInTx(ctx, tx, item); err != nil {
		return nil, err
	}
	return item, nil
}
