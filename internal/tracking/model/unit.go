package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// UnitStatus represents where a unit sits in the combined factory-to-dealer lifecycle.
// The manufacturer inspection path, the legacy PDI path and the dealer acceptance path
// all write to the same status field; see the transition tables in the service package.
type UnitStatus string

const (
	// Manufacturer inspection workflow
	UnitStatusPendingInspection    UnitStatus = "PENDING_INSPECTION"
	UnitStatusInspectionInProgress UnitStatus = "INSPECTION_IN_PROGRESS"
	UnitStatusInspectionComplete   UnitStatus = "INSPECTION_COMPLETE"
	UnitStatusPendingApproval      UnitStatus = "PENDING_APPROVAL"
	UnitStatusApproved             UnitStatus = "APPROVED"
	UnitStatusShipped              UnitStatus = "SHIPPED" // unit becomes visible to the dealer

	// Legacy PDI statuses (kept for backwards compatibility with the PDI webhook)
	UnitStatusPendingPDI    UnitStatus = "PENDING_PDI"
	UnitStatusPDIInProgress UnitStatus = "PDI_IN_PROGRESS"
	UnitStatusPDIComplete   UnitStatus = "PDI_COMPLETE"
	UnitStatusPDIIssues     UnitStatus = "PDI_ISSUES"

	// Dealer workflow
	UnitStatusReceived              UnitStatus = "RECEIVED"
	UnitStatusPendingAcceptance     UnitStatus = "PENDING_ACCEPTANCE"
	UnitStatusInAcceptance          UnitStatus = "IN_ACCEPTANCE"
	UnitStatusAccepted              UnitStatus = "ACCEPTED"
	UnitStatusConditionallyAccepted UnitStatus = "CONDITIONALLY_ACCEPTED"
	UnitStatusRejected              UnitStatus = "REJECTED"
)

// EventType classifies entries in the unit event log.
type EventType string

const (
	EventTypeUnitCreated  EventType = "UNIT_CREATED"
	EventTypeManufactured EventType = "MANUFACTURED"
	EventTypeShipped      EventType = "SHIPPED"
	EventTypeReceived     EventType = "RECEIVED"

	EventTypeInspectionStarted   EventType = "INSPECTION_STARTED"
	EventTypeInspectionCompleted EventType = "INSPECTION_COMPLETED"
	EventTypeInspectionApproved  EventType = "INSPECTION_APPROVED"
	EventTypeInspectionRejected  EventType = "INSPECTION_REJECTED"

	EventTypePDIStarted   EventType = "PDI_STARTED"
	EventTypePDICompleted EventType = "PDI_COMPLETED"

	EventTypeAcceptanceStarted   EventType = "ACCEPTANCE_STARTED"
	EventTypeAcceptanceCompleted EventType = "ACCEPTANCE_COMPLETED"

	EventTypeStatusChanged EventType = "STATUS_CHANGED"
	EventTypeNoteAdded     EventType = "NOTE_ADDED"
	EventTypeNoteShared    EventType = "NOTE_SHARED"
)

// VehicleModel is a catalog entry for a model line (e.g. "Aria 3200").
type VehicleModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);column:name;not null" json:"name"`
	Code     string `gorm:"type:varchar(50);column:code;not null;uniqueIndex" json:"code"`
	Category string `gorm:"type:varchar(50);column:category" json:"category"`
}

func (m *VehicleModel) TableName() string {
	return "vehicle_models"
}

// Dealer is a dealership that receives and accepts units.
type Dealer struct {
	BaseModel
	Name   string `gorm:"type:varchar(255);column:name;not null" json:"name"`
	Code   string `gorm:"type:varchar(50);column:code;not null;uniqueIndex" json:"code"`
	Active bool   `gorm:"column:active;not null;default:true" json:"active"`
}

func (d *Dealer) TableName() string {
	return "dealers"
}

// Unit represents one physical vehicle tracked through manufacturing,
// inspection, shipping and dealer acceptance. The VIN is globally unique
// and immutable after creation. Units are never hard-deleted.
type Unit struct {
	BaseModel
	VIN         string     `gorm:"type:varchar(17);column:vin;not null;uniqueIndex" json:"vin"`
	StockNumber string     `gorm:"type:varchar(50);column:stock_number" json:"stockNumber"`
	DealerID    *uuid.UUID `gorm:"type:uuid;column:dealer_id" json:"dealerId,omitempty"`
	ModelID     *uuid.UUID `gorm:"type:uuid;column:model_id" json:"modelId,omitempty"`
	ModelYear   int        `gorm:"column:model_year" json:"modelYear"`

	ExteriorColor string `gorm:"type:varchar(100);column:exterior_color" json:"exteriorColor"`
	InteriorColor string `gorm:"type:varchar(100);column:interior_color" json:"interiorColor"`
	ChassisType   string `gorm:"type:varchar(100);column:chassis_type" json:"chassisType"`
	EngineType    string `gorm:"type:varchar(100);column:engine_type" json:"engineType"`
	GVWR          int    `gorm:"column:gvwr" json:"gvwr"`

	Status UnitStatus `gorm:"type:varchar(30);column:status;not null;index" json:"status"`

	ShipDate               *time.Time `gorm:"type:timestamptz;column:ship_date" json:"shipDate,omitempty"`
	ReceiveDate            *time.Time `gorm:"type:timestamptz;column:receive_date" json:"receiveDate,omitempty"`
	ApprovedAt             *time.Time `gorm:"type:timestamptz;column:approved_at" json:"approvedAt,omitempty"`
	ApprovedByID           *uuid.UUID `gorm:"type:uuid;column:approved_by_id" json:"approvedById,omitempty"`
	ShippedAt              *time.Time `gorm:"type:timestamptz;column:shipped_at" json:"shippedAt,omitempty"`
	ShippedByID            *uuid.UUID `gorm:"type:uuid;column:shipped_by_id" json:"shippedById,omitempty"`
	InspectionCompletedAt  *time.Time `gorm:"type:timestamptz;column:inspection_completed_at" json:"inspectionCompletedAt,omitempty"`

	Model  *VehicleModel `gorm:"foreignKey:ModelID" json:"model,omitempty"`
	Dealer *Dealer       `gorm:"foreignKey:DealerID" json:"dealer,omitempty"`
}

func (u *Unit) TableName() string {
	return "units"
}

// UnitEvent is an append-only log entry for a unit. Events are never updated
// or deleted and are displayed ordered by event date descending.
type UnitEvent struct {
	BaseModel
	UnitID      uuid.UUID       `gorm:"type:uuid;column:unit_id;not null;index" json:"unitId"`
	EventType   EventType       `gorm:"type:varchar(40);column:event_type;not null" json:"eventType"`
	EventDate   time.Time       `gorm:"type:timestamptz;column:event_date;not null" json:"eventDate"`
	Description string          `gorm:"type:text;column:description" json:"description"`
	UserID      *uuid.UUID      `gorm:"type:uuid;column:user_id" json:"userId,omitempty"`
	Metadata    json.RawMessage `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	Source      string          `gorm:"type:varchar(50);column:source" json:"source,omitempty"`
}

func (e *UnitEvent) TableName() string {
	return "unit_events"
}
