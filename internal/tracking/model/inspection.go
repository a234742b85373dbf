package model

import (
	"time"

	"github.com/google/uuid"
)

// InspectionStatus is the lifecycle of a manufacturer inspection record.
type InspectionStatus string

const (
	InspectionStatusInProgress InspectionStatus = "IN_PROGRESS"
	InspectionStatusCompleted  InspectionStatus = "COMPLETED"
	InspectionStatusApproved   InspectionStatus = "APPROVED"
	InspectionStatusRejected   InspectionStatus = "REJECTED"
)

// ItemStatus is the per-item result shared by all three workflows.
// Transitions between item statuses are unconstrained while the owning
// record is in progress; items freeze once the record leaves IN_PROGRESS.
type ItemStatus string

const (
	ItemStatusPending ItemStatus = "PENDING"
	ItemStatusPass    ItemStatus = "PASS"
	ItemStatusFail    ItemStatus = "FAIL"
	ItemStatusIssue   ItemStatus = "ISSUE"
	ItemStatusNA      ItemStatus = "NA"
)

// IssueSeverity grades a flagged item.
type IssueSeverity string

const (
	IssueSeverityMinor    IssueSeverity = "MINOR"
	IssueSeverityModerate IssueSeverity = "MODERATE"
	IssueSeverityMajor    IssueSeverity = "MAJOR"
	IssueSeverityCritical IssueSeverity = "CRITICAL"
)

// InspectionRecord is one run of the manufacturer checklist against a unit.
// At most one record may be IN_PROGRESS per unit at a time.
type InspectionRecord struct {
	BaseModel
	UnitID      uuid.UUID        `gorm:"type:uuid;column:unit_id;not null;index" json:"unitId"`
	InspectorID uuid.UUID        `gorm:"type:uuid;column:inspector_id;not null" json:"inspectorId"`
	Status      InspectionStatus `gorm:"type:varchar(20);column:status;not null;index" json:"status"`

	CompletedAt        *time.Time `gorm:"type:timestamptz;column:completed_at" json:"completedAt,omitempty"`
	ApprovedAt         *time.Time `gorm:"type:timestamptz;column:approved_at" json:"approvedAt,omitempty"`
	ApprovedByID       *uuid.UUID `gorm:"type:uuid;column:approved_by_id" json:"approvedById,omitempty"`
	GeneralNotes       string     `gorm:"type:text;column:general_notes" json:"generalNotes"`
	SignatureData      string     `gorm:"type:text;column:signature_data" json:"signatureData,omitempty"`
	SignatureTimestamp *time.Time `gorm:"type:timestamptz;column:signature_timestamp" json:"signatureTimestamp,omitempty"`

	TotalItems  int `gorm:"column:total_items;not null;default:0" json:"totalItems"`
	PassedItems int `gorm:"column:passed_items;not null;default:0" json:"passedItems"`
	FailedItems int `gorm:"column:failed_items;not null;default:0" json:"failedItems"`
	IssueItems  int `gorm:"column:issue_items;not null;default:0" json:"issueItems"`

	Unit  *Unit            `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Items []InspectionItem `gorm:"foreignKey:InspectionID" json:"items,omitempty"`
}

func (r *InspectionRecord) TableName() string {
	return "manufacturer_inspection_records"
}

// InspectionItem is one checklist item's result within an inspection run.
type InspectionItem struct {
	BaseModel
	InspectionID    uuid.UUID     `gorm:"type:uuid;column:inspection_id;not null;index" json:"inspectionId"`
	ChecklistItemID uuid.UUID     `gorm:"type:uuid;column:checklist_item_id;not null" json:"checklistItemId"`
	Status          ItemStatus    `gorm:"type:varchar(10);column:status;not null;default:PENDING" json:"status"`
	Notes           string        `gorm:"type:text;column:notes" json:"notes"`
	IsIssue         bool          `gorm:"column:is_issue;not null;default:false" json:"isIssue"`
	IssueSeverity   IssueSeverity `gorm:"type:varchar(10);column:issue_severity" json:"issueSeverity,omitempty"`

	ChecklistItem *ChecklistItem `gorm:"foreignKey:ChecklistItemID" json:"checklistItem,omitempty"`
	Photos        []Photo        `gorm:"foreignKey:InspectionItemID" json:"photos,omitempty"`
}

func (i *InspectionItem) TableName() string {
	return "manufacturer_inspection_items"
}
