package model

import (
	"github.com/google/uuid"
)

// TemplateType distinguishes the manufacturer inspection checklist from the
// dealer acceptance checklist.
type TemplateType string

const (
	TemplateTypeManufacturer TemplateType = "MANUFACTURER"
	TemplateTypeDealer       TemplateType = "DEALER"
)

// StringArray stores a list of strings as a jsonb column.
type StringArray []string

// ChecklistTemplate is a versioned, ordered checklist definition. A template
// optionally scopes to a set of model IDs; an empty list means it applies to
// all models. Workflow runs snapshot template items into their own item rows,
// so editing a template never affects runs already started.
type ChecklistTemplate struct {
	BaseModel
	Name         string       `gorm:"type:varchar(255);column:name;not null" json:"name"`
	Description  string       `gorm:"type:text;column:description" json:"description"`
	TemplateType TemplateType `gorm:"type:varchar(20);column:template_type;not null;default:DEALER" json:"templateType"`
	Version      int          `gorm:"column:version;not null;default:1" json:"version"`
	Active       bool         `gorm:"column:active;not null;default:true" json:"active"`
	ModelIDs     StringArray  `gorm:"type:jsonb;column:model_ids;serializer:json" json:"modelIds"`
	CreatedByID  *uuid.UUID   `gorm:"type:uuid;column:created_by_id" json:"createdById,omitempty"`

	Categories []ChecklistCategory `gorm:"foreignKey:TemplateID" json:"categories,omitempty"`
}

func (t *ChecklistTemplate) TableName() string {
	return "checklist_templates"
}

// AppliesToModel reports whether the template covers the given model.
// An empty scope applies to all models.
func (t *ChecklistTemplate) AppliesToModel(modelID uuid.UUID) bool {
	if len(t.ModelIDs) == 0 {
		return true
	}
	for _, id := range t.ModelIDs {
		if id == modelID.String() {
			return true
		}
	}
	return false
}

// Items flattens the template's categories into a single item list in
// category order, then item order.
func (t *ChecklistTemplate) Items() []ChecklistItem {
	var items []ChecklistItem
	for _, cat := range t.Categories {
		items = append(items, cat.Items...)
	}
	return items
}

// ChecklistCategory groups related checklist items. Order numbers are dense
// per template and define display and validation order.
type ChecklistCategory struct {
	BaseModel
	TemplateID  uuid.UUID `gorm:"type:uuid;column:template_id;not null;index" json:"templateId"`
	Name        string    `gorm:"type:varchar(255);column:name;not null" json:"name"`
	Code        string    `gorm:"type:varchar(50);column:code" json:"code"`
	Description string    `gorm:"type:text;column:description" json:"description"`
	OrderNum    int       `gorm:"column:order_num;not null" json:"orderNum"`
	Required    bool      `gorm:"column:required;not null;default:true" json:"required"`

	Items []ChecklistItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

func (c *ChecklistCategory) TableName() string {
	return "checklist_categories"
}

// ChecklistItem is an immutable checklist question definition. Codes are
// free-form strings (e.g. "1.2.3") used for cross-workflow item matching.
type ChecklistItem struct {
	BaseModel
	CategoryID           uuid.UUID `gorm:"type:uuid;column:category_id;not null;index" json:"categoryId"`
	Code                 string    `gorm:"type:varchar(50);column:code;not null" json:"code"`
	Description          string    `gorm:"type:text;column:description;not null" json:"description"`
	Instructions         string    `gorm:"type:text;column:instructions" json:"instructions"`
	OrderNum             int       `gorm:"column:order_num;not null" json:"orderNum"`
	Required             bool      `gorm:"column:required;not null;default:true" json:"required"`
	PhotoRequired        bool      `gorm:"column:photo_required;not null;default:false" json:"photoRequired"`
	PhotoRequiredOnIssue bool      `gorm:"column:photo_required_on_issue;not null;default:true" json:"photoRequiredOnIssue"`

	Category *ChecklistCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (i *ChecklistItem) TableName() string {
	return "checklist_items"
}
