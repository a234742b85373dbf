package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

func TestChecklistAddCategory(t *testing.T) {
	ctx := context.Background()
	templateID := uuid.New()

	t.Run("assigns the next order number", func(t *testing.T) {
		checklists := new(MockChecklistRepository)
		svc := NewChecklistService(nil, checklists)
		template := &model.ChecklistTemplate{BaseModel: model.BaseModel{ID: templateID}}

		checklists.On("GetByIDInTx", ctx, mock.Anything, templateID).Return(template, nil)
		checklists.On("MaxCategoryOrderInTx", ctx, mock.Anything, templateID).Return(3, nil)
		checklists.On("CreateCategoryInTx", ctx, mock.Anything, mock.AnythingOfType("*model.ChecklistCategory")).Return(nil)

		category, err := svc.addCategoryInTx(ctx, nil, templateID, &model.AddCategoryDTO{Name: "Interior"})

		assert.NoError(t, err)
		assert.Equal(t, 4, category.OrderNum)
		assert.True(t, category.Required)
	})

	t.Run("missing template propagates not found", func(t *testing.T) {
		checklists := new(MockChecklistRepository)
		svc := NewChecklistService(nil, checklists)
		checklists.On("GetByIDInTx", ctx, mock.Anything, templateID).Return(nil, notFoundf("template %s not found", templateID))

		_, err := svc.addCategoryInTx(ctx, nil, templateID, &model.AddCategoryDTO{Name: "Interior"})
		assert.True(t, IsNotFound(err))
	})
}

func TestChecklistAddItem(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	t.Run("defaults required and photo-on-issue", func(t *testing.T) {
		checklists := new(MockChecklistRepository)
		svc := NewChecklistService(nil, checklists)
		category := &model.ChecklistCategory{BaseModel: model.BaseModel{ID: categoryID}}

		checklists.On("GetCategoryInTx", ctx, mock.Anything, categoryID).Return(category, nil)
		checklists.On("MaxItemOrderInTx", ctx, mock.Anything, categoryID).Return(0, nil)
		checklists.On("CreateItemInTx", ctx, mock.Anything, mock.AnythingOfType("*model.ChecklistItem")).Return(nil)

		item, err := svc.addItemInTx(ctx, nil, categoryID, &model.AddItemDTO{
			Code:        "INT-001",
			Description: "Check cabinet latches",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, item.OrderNum)
		assert.True(t, item.Required)
		assert.True(t, item.PhotoRequiredOnIssue)
	})

	t.Run("explicit flags override the defaults", func(t *testing.T) {
		checklists := new(MockChecklistRepository)
		svc := NewChecklistService(nil, checklists)
		category := &model.ChecklistCategory{BaseModel: model.BaseModel{ID: categoryID}}
		optional := false

		checklists.On("GetCategoryInTx", ctx, mock.Anything, categoryID).Return(category, nil)
		checklists.On("MaxItemOrderInTx", ctx, mock.Anything, categoryID).Return(7, nil)
		checklists.On("CreateItemInTx", ctx, mock.Anything, mock.AnythingOfType("*model.ChecklistItem")).Return(nil)

		item, err := svc.addItemInTx(ctx, nil, categoryID, &model.AddItemDTO{
			Code:                 "INT-002",
			Description:          "Photograph odometer",
			Required:             &optional,
			PhotoRequired:        true,
			PhotoRequiredOnIssue: &optional,
		})

		assert.NoError(t, err)
		assert.Equal(t, 8, item.OrderNum)
		assert.False(t, item.Required)
		assert.True(t, item.PhotoRequired)
		assert.False(t, item.PhotoRequiredOnIssue)
	})
}

func TestTemplateAppliesToModel(t *testing.T) {
	modelID := uuid.New()

	t.Run("empty scope applies to all models", func(t *testing.T) {
		template := &model.ChecklistTemplate{}
		assert.True(t, template.AppliesToModel(modelID))
	})

	t.Run("scoped template matches only listed models", func(t *testing.T) {
		template := &model.ChecklistTemplate{ModelIDs: model.StringArray{modelID.String()}}
		assert.True(t, template.AppliesToModel(modelID))
		assert.False(t, template.AppliesToModel(uuid.New()))
	})
}

func TestTemplateItems(t *testing.T) {
	template := &model.ChecklistTemplate{
		Categories: []model.ChecklistCategory{
			{Items: []model.ChecklistItem{{Code: "A-1"}, {Code: "A-2"}}},
			{Items: []model.ChecklistItem{{Code: "B-1"}}},
		},
	}

	items := template.Items()
	assert.Len(t, items, 3)
	assert.Equal(t, "A-1", items[0].Code)
	assert.Equal(t, "B-1", items[2].Code)
}
