package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CreateUnitDTO is the payload for registering a new unit.
type CreateUnitDTO struct {
	VIN           string     `json:"vin" binding:"required"`
	StockNumber   string     `json:"stockNumber"`
	DealerID      *uuid.UUID `json:"dealerId"`
	ModelID       *uuid.UUID `json:"modelId"`
	ModelYear     int        `json:"modelYear"`
	ExteriorColor string     `json:"exteriorColor"`
	InteriorColor string     `json:"interiorColor"`
	ChassisType   string     `json:"chassisType"`
	EngineType    string     `json:"engineType"`
	GVWR          int        `json:"gvwr"`
	ShipDate      *time.Time `json:"shipDate"`
	ReceiveDate   *time.Time `json:"receiveDate"`
	Status        UnitStatus `json:"status"`
}

// UpdateUnitDTO carries the mutable unit attributes. Status is deliberately
// absent; status only moves through the workflow engines.
type UpdateUnitDTO struct {
	StockNumber   *string    `json:"stockNumber"`
	DealerID      *uuid.UUID `json:"dealerId"`
	ModelYear     *int       `json:"modelYear"`
	ExteriorColor *string    `json:"exteriorColor"`
	InteriorColor *string    `json:"interiorColor"`
	ChassisType   *string    `json:"chassisType"`
	EngineType    *string    `json:"engineType"`
	GVWR          *int       `json:"gvwr"`
	ShipDate      *time.Time `json:"shipDate"`
	ReceiveDate   *time.Time `json:"receiveDate"`
}

// ListUnitsQuery filters the unit list.
type ListUnitsQuery struct {
	DealerID *uuid.UUID
	Statuses []UnitStatus
	Search   string
	Offset   *int
	Limit    *int
}

// StartInspectionDTO starts a manufacturer inspection for a unit. TemplateID
// is optional; when absent the default manufacturer template for the unit's
// model is resolved.
type StartInspectionDTO struct {
	UnitID     uuid.UUID  `json:"unitId" binding:"required"`
	TemplateID *uuid.UUID `json:"templateId"`
}

// UpdateWorkflowItemDTO updates a single inspection or acceptance item.
// IsIssue defaults to (status == ISSUE || status == FAIL) unless set.
type UpdateWorkflowItemDTO struct {
	Status        ItemStatus    `json:"status" binding:"required"`
	Notes         *string       `json:"notes"`
	IsIssue       *bool         `json:"isIssue"`
	IssueSeverity IssueSeverity `json:"issueSeverity"`
}

// BulkItemUpdate addresses one item within a bulk update request.
type BulkItemUpdate struct {
	ItemID        uuid.UUID     `json:"itemId" binding:"required"`
	Status        ItemStatus    `json:"status" binding:"required"`
	Notes         *string       `json:"notes"`
	IsIssue       *bool         `json:"isIssue"`
	IssueSeverity IssueSeverity `json:"issueSeverity"`
}

// BulkUpdateItemsDTO updates several items in one request.
type BulkUpdateItemsDTO struct {
	Items []BulkItemUpdate `json:"items" binding:"required"`
}

// CompleteInspectionDTO finishes a manufacturer inspection.
type CompleteInspectionDTO struct {
	GeneralNotes  string `json:"generalNotes"`
	SignatureData string `json:"signatureData"`
}

// ApproveInspectionDTO approves a completed inspection.
type ApproveInspectionDTO struct {
	ApprovalNotes string `json:"approvalNotes"`
}

// RejectInspectionDTO sends a completed inspection back for rework.
type RejectInspectionDTO struct {
	RejectionReason string `json:"rejectionReason" binding:"required"`
}

// CreatePDIItemDTO is one inspection point in a PDI webhook submission.
type CreatePDIItemDTO struct {
	ItemCode        string     `json:"itemCode"`
	ItemDescription string     `json:"itemDescription"`
	Status          ItemStatus `json:"status" binding:"required"`
	Notes           string     `json:"notes"`
	Resolved        bool       `json:"resolved"`
	ResolvedBy      string     `json:"resolvedBy"`
	ResolvedAt      *time.Time `json:"resolvedAt"`
	ResolutionNotes string     `json:"resolutionNotes"`
}

// CreatePDIDTO is the legacy PDI webhook payload, submitted in one shot.
type CreatePDIDTO struct {
	InspectorID   string             `json:"inspectorId"`
	InspectorName string             `json:"inspectorName"`
	CompletedAt   *time.Time         `json:"completedAt"`
	Notes         string             `json:"notes"`
	Items         []CreatePDIItemDTO `json:"items"`
}

// UpdatePDIItemDTO edits a single PDI item, typically to mark an issue resolved.
type UpdatePDIItemDTO struct {
	Status          *ItemStatus `json:"status"`
	Notes           *string     `json:"notes"`
	Resolved        *bool       `json:"resolved"`
	ResolvedBy      *string     `json:"resolvedBy"`
	ResolutionNotes *string     `json:"resolutionNotes"`
}

// CreateTemplateDTO defines a new checklist template.
type CreateTemplateDTO struct {
	Name         string       `json:"name" binding:"required"`
	Description  string       `json:"description"`
	TemplateType TemplateType `json:"templateType" binding:"required"`
	ModelIDs     []string     `json:"modelIds"`
}

// AddCategoryDTO appends a category to a template. Order is assigned
// automatically.
type AddCategoryDTO struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Required    *bool  `json:"required"`
}

// AddItemDTO appends an item to a category. Order is assigned automatically.
type AddItemDTO struct {
	Code                 string `json:"code" binding:"required"`
	Description          string `json:"description" binding:"required"`
	Instructions         string `json:"instructions"`
	Required             *bool  `json:"required"`
	PhotoRequired        bool   `json:"photoRequired"`
	PhotoRequiredOnIssue *bool  `json:"photoRequiredOnIssue"`
}

// StartAcceptanceDTO begins (or resumes) a dealer acceptance for a unit.
type StartAcceptanceDTO struct {
	VIN          string `json:"vin" binding:"required"`
	DeviceInfo   string `json:"deviceInfo"`
	LocationData string `json:"locationData"`
}

// SubmitAcceptanceDTO finishes an acceptance with a decision.
type SubmitAcceptanceDTO struct {
	Decision      AcceptanceDecision `json:"decision" binding:"required"`
	Conditions    json.RawMessage    `json:"conditions"`
	GeneralNotes  string             `json:"generalNotes"`
	SignatureData string             `json:"signatureData"`
}

// CreateItemNoteDTO attaches a note to exactly one workflow item.
type CreateItemNoteDTO struct {
	ManufacturerItemID    *uuid.UUID `json:"manufacturerItemId"`
	AcceptanceItemID      *uuid.UUID `json:"acceptanceItemId"`
	Content               string     `json:"content" binding:"required"`
	VisibleToDealer       *bool      `json:"visibleToDealer"`
	VisibleToManufacturer *bool      `json:"visibleToManufacturer"`
}

// UpdateItemNoteDTO edits an unsubmitted note.
type UpdateItemNoteDTO struct {
	Content               *string `json:"content"`
	VisibleToDealer       *bool   `json:"visibleToDealer"`
	VisibleToManufacturer *bool   `json:"visibleToManufacturer"`
}

// SubmitNoteDTO submits a note, optionally flipping dealer visibility.
type SubmitNoteDTO struct {
	MakeVisibleToDealer *bool `json:"makeVisibleToDealer"`
}

// Progress is the aggregate completion state of a checklist run, always
// recomputed from current item statuses.
type Progress struct {
	TotalItems      int `json:"totalItems"`
	CompletedItems  int `json:"completedItems"`
	PassedItems     int `json:"passedItems"`
	FailedItems     int `json:"failedItems"`
	IssueItems      int `json:"issueItems"`
	SkippedItems    int `json:"skippedItems"`
	PercentComplete int `json:"percentComplete"`
}

// CategoryProgress is per-category completion within an acceptance run.
type CategoryProgress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Passed    int `json:"passed"`
	Issues    int `json:"issues"`
	Failed    int `json:"failed"`
}

// AcceptanceProgress is the full read-side progress view for an acceptance.
type AcceptanceProgress struct {
	AcceptanceID uuid.UUID                   `json:"acceptanceId"`
	Progress
	ByCategory map[string]CategoryProgress `json:"byCategory"`
	PhotoCount int                         `json:"photoCount"`
}

// IssueSummary describes one flagged item in a summary view.
type IssueSummary struct {
	ItemID      uuid.UUID     `json:"itemId"`
	Code        string        `json:"code"`
	Description string        `json:"description"`
	Status      ItemStatus    `json:"status"`
	Severity    IssueSeverity `json:"severity,omitempty"`
	Notes       string        `json:"notes,omitempty"`
	PhotoCount  int           `json:"photoCount"`
}

// AcceptanceSummary is the read-side roll-up returned after (or during) an
// acceptance run.
type AcceptanceSummary struct {
	AcceptanceID uuid.UUID           `json:"acceptanceId"`
	Status       AcceptanceStatus    `json:"status"`
	Decision     AcceptanceDecision  `json:"decision,omitempty"`
	StartedAt    time.Time           `json:"startedAt"`
	CompletedAt  *time.Time          `json:"completedAt,omitempty"`
	VIN          string              `json:"vin"`
	ModelName    string              `json:"modelName,omitempty"`
	ModelYear    int                 `json:"modelYear"`
	Progress     *AcceptanceProgress `json:"progress"`
	Issues       []IssueSummary      `json:"issues"`
	Conditions   json.RawMessage     `json:"conditions,omitempty"`
}

// PDISummary is the read-side roll-up of a PDI record.
type PDISummary struct {
	PDIID         uuid.UUID                   `json:"pdiId"`
	UnitID        uuid.UUID                   `json:"unitId"`
	Inspector     string                      `json:"inspector"`
	Status        PDIStatus                   `json:"status"`
	CompletedAt   *time.Time                  `json:"completedAt,omitempty"`
	Total         int                         `json:"total"`
	Passed        int                         `json:"passed"`
	Failed        int                         `json:"failed"`
	CategoryStats map[string]CategoryProgress `json:"categoryStats"`
	Issues        []PDIItem                   `json:"issues"`
	PhotoCount    int                         `json:"photoCount"`
}

// PageMeta describes a paginated result set.
type PageMeta struct {
	Total  int64 `json:"total"`
	Offset int   `json:"offset"`
	Limit  int   `json:"limit"`
}
