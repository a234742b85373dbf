package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AcceptanceStatus is the lifecycle of a dealer acceptance record.
type AcceptanceStatus string

const (
	AcceptanceStatusInProgress AcceptanceStatus = "IN_PROGRESS"
	AcceptanceStatusCompleted  AcceptanceStatus = "COMPLETED"
	AcceptanceStatusCancelled  AcceptanceStatus = "CANCELLED"
)

// AcceptanceDecision is the dealer's final call on a unit. Both the long and
// short spellings are accepted on the wire; they map to the same unit status.
type AcceptanceDecision string

const (
	DecisionFullAccept             AcceptanceDecision = "FULL_ACCEPT"
	DecisionConditional            AcceptanceDecision = "CONDITIONAL"
	DecisionReject                 AcceptanceDecision = "REJECT"
	DecisionAccepted               AcceptanceDecision = "ACCEPTED"
	DecisionAcceptedWithConditions AcceptanceDecision = "ACCEPTED_WITH_CONDITIONS"
	DecisionRejected               AcceptanceDecision = "REJECTED"
)

// AcceptanceRecord is one run of the dealer checklist against a unit.
// At most one record may be IN_PROGRESS per unit at a time; starting while
// one exists resumes it rather than erroring.
type AcceptanceRecord struct {
	BaseModel
	UnitID uuid.UUID        `gorm:"type:uuid;column:unit_id;not null;index" json:"unitId"`
	UserID uuid.UUID        `gorm:"type:uuid;column:user_id;not null" json:"userId"`
	Status AcceptanceStatus `gorm:"type:varchar(20);column:status;not null;default:IN_PROGRESS;index" json:"status"`

	Decision     AcceptanceDecision `gorm:"type:varchar(30);column:decision" json:"decision,omitempty"`
	Conditions   json.RawMessage    `gorm:"type:jsonb;column:conditions" json:"conditions,omitempty"`
	GeneralNotes string             `gorm:"type:text;column:general_notes" json:"generalNotes"`

	DeviceInfo   string `gorm:"type:text;column:device_info" json:"deviceInfo,omitempty"`
	LocationData string `gorm:"type:text;column:location_data" json:"locationData,omitempty"`

	StartedAt          time.Time  `gorm:"type:timestamptz;column:started_at;not null" json:"startedAt"`
	CompletedAt        *time.Time `gorm:"type:timestamptz;column:completed_at" json:"completedAt,omitempty"`
	SignatureData      string     `gorm:"type:text;column:signature_data" json:"signatureData,omitempty"`
	SignatureTimestamp *time.Time `gorm:"type:timestamptz;column:signature_timestamp" json:"signatureTimestamp,omitempty"`
	SignatureIP        string     `gorm:"type:varchar(45);column:signature_ip" json:"signatureIp,omitempty"`

	Unit  *Unit            `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	Items []AcceptanceItem `gorm:"foreignKey:AcceptanceID" json:"items,omitempty"`
}

func (r *AcceptanceRecord) TableName() string {
	return "acceptance_records"
}

// AcceptanceItem is one checklist item's result within an acceptance run.
type AcceptanceItem struct {
	BaseModel
	AcceptanceID    uuid.UUID     `gorm:"type:uuid;column:acceptance_id;not null;index" json:"acceptanceId"`
	ChecklistItemID uuid.UUID     `gorm:"type:uuid;column:checklist_item_id;not null" json:"checklistItemId"`
	Status          ItemStatus    `gorm:"type:varchar(10);column:status;not null;default:PENDING" json:"status"`
	Notes           string        `gorm:"type:text;column:notes" json:"notes"`
	IsIssue         bool          `gorm:"column:is_issue;not null;default:false" json:"isIssue"`
	IssueSeverity   IssueSeverity `gorm:"type:varchar(10);column:issue_severity" json:"issueSeverity,omitempty"`

	ChecklistItem *ChecklistItem `gorm:"foreignKey:ChecklistItemID" json:"checklistItem,omitempty"`
	Photos        []Photo        `gorm:"foreignKey:AcceptanceItemID" json:"photos,omitempty"`
}

func (i *AcceptanceItem) TableName() string {
	return "acceptance_items"
}
