package model

import (
	"time"

	"github.com/google/uuid"
)

// PDIStatus is the lifecycle of a legacy pre-delivery inspection record.
type PDIStatus string

const (
	PDIStatusInProgress    PDIStatus = "IN_PROGRESS"
	PDIStatusComplete      PDIStatus = "COMPLETE"
	PDIStatusIncomplete    PDIStatus = "INCOMPLETE"
	PDIStatusIssuesPending PDIStatus = "ISSUES_PENDING"
)

// PDIRecord is a legacy pre-delivery inspection submitted in one shot by the
// factory-side PDI system. Unlike the interactive workflows, its items carry
// their own code and description rather than referencing a template snapshot.
type PDIRecord struct {
	BaseModel
	UnitID        uuid.UUID `gorm:"type:uuid;column:unit_id;not null;index" json:"unitId"`
	InspectorID   string    `gorm:"type:varchar(100);column:inspector_id" json:"inspectorId"`
	InspectorName string    `gorm:"type:varchar(255);column:inspector_name" json:"inspectorName"`
	Status        PDIStatus `gorm:"type:varchar(20);column:status;not null" json:"status"`

	CompletedAt *time.Time `gorm:"type:timestamptz;column:completed_at" json:"completedAt,omitempty"`
	Notes       string     `gorm:"type:text;column:notes" json:"notes"`

	TotalItems  int `gorm:"column:total_items;not null;default:0" json:"totalItems"`
	PassedItems int `gorm:"column:passed_items;not null;default:0" json:"passedItems"`
	FailedItems int `gorm:"column:failed_items;not null;default:0" json:"failedItems"`

	Unit  *Unit     `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Items []PDIItem `gorm:"foreignKey:PDIID" json:"items,omitempty"`
}

func (r *PDIRecord) TableName() string {
	return "pdi_records"
}

// PDIItem is one inspection point within a PDI record. Items remain editable
// after submission so the dealer can mark issues resolved.
type PDIItem struct {
	BaseModel
	PDIID           uuid.UUID  `gorm:"type:uuid;column:pdi_id;not null;index" json:"pdiId"`
	ItemCode        string     `gorm:"type:varchar(50);column:item_code" json:"itemCode"`
	ItemDescription string     `gorm:"type:text;column:item_description" json:"itemDescription"`
	Status          ItemStatus `gorm:"type:varchar(10);column:status;not null" json:"status"`
	Notes           string     `gorm:"type:text;column:notes" json:"notes"`

	Resolved        bool       `gorm:"column:resolved;not null;default:false" json:"resolved"`
	ResolvedBy      string     `gorm:"type:varchar(255);column:resolved_by" json:"resolvedBy,omitempty"`
	ResolvedAt      *time.Time `gorm:"type:timestamptz;column:resolved_at" json:"resolvedAt,omitempty"`
	ResolutionNotes string     `gorm:"type:text;column:resolution_notes" json:"resolutionNotes,omitempty"`

	Photos []Photo `gorm:"foreignKey:PDIItemID" json:"photos,omitempty"`
}

func (i *PDIItem) TableName() string {
	return "pdi_items"
}

// HasUnresolvedIssue reports whether the item is a failed or flagged item
// that has not been marked resolved.
func (i *PDIItem) HasUnresolvedIssue() bool {
	return (i.Status == ItemStatusFail || i.Status == ItemStatusIssue) && !i.Resolved
}
