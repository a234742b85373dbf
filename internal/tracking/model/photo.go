package model

import (
	"github.com/google/uuid"
)

// PhotoType classifies why a photo was taken.
type PhotoType string

const (
	PhotoTypeGeneral       PhotoType = "GENERAL"
	PhotoTypeIssue         PhotoType = "ISSUE"
	PhotoTypeBefore        PhotoType = "BEFORE"
	PhotoTypeAfter         PhotoType = "AFTER"
	PhotoTypeResolution    PhotoType = "RESOLUTION"
	PhotoTypeDocumentation PhotoType = "DOCUMENTATION"
)

// Photo is an attachment scoped to a workflow record or one of its items.
// Exactly one parent reference is set. The binary itself lives in object
// storage under Key; the workflow engines only ever count photos (the
// photo-required-on-issue rule), they never interpret them.
type Photo struct {
	BaseModel
	InspectionID     *uuid.UUID `gorm:"type:uuid;column:inspection_id;index" json:"inspectionId,omitempty"`
	InspectionItemID *uuid.UUID `gorm:"type:uuid;column:inspection_item_id;index" json:"inspectionItemId,omitempty"`
	AcceptanceID     *uuid.UUID `gorm:"type:uuid;column:acceptance_id;index" json:"acceptanceId,omitempty"`
	AcceptanceItemID *uuid.UUID `gorm:"type:uuid;column:acceptance_item_id;index" json:"acceptanceItemId,omitempty"`
	PDIID            *uuid.UUID `gorm:"type:uuid;column:pdi_id;index" json:"pdiId,omitempty"`
	PDIItemID        *uuid.UUID `gorm:"type:uuid;column:pdi_item_id;index" json:"pdiItemId,omitempty"`

	PhotoType PhotoType `gorm:"type:varchar(20);column:photo_type;not null;default:GENERAL" json:"photoType"`
	Key       string    `gorm:"type:varchar(255);column:key;not null" json:"key"`
	URL       string    `gorm:"type:text;column:url" json:"url"`
	Filename  string    `gorm:"type:varchar(255);column:filename" json:"filename"`
	MimeType  string    `gorm:"type:varchar(100);column:mime_type" json:"mimeType"`
	Size      int64     `gorm:"column:size" json:"size"`
	Caption   string    `gorm:"type:text;column:caption" json:"caption,omitempty"`

	UploadedByID *uuid.UUID `gorm:"type:uuid;column:uploaded_by_id" json:"uploadedById,omitempty"`
}

func (p *Photo) TableName() string {
	return "photos"
}
