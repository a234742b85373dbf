package model

import (
	"time"

	"github.com/google/uuid"
)

// NoteAuthorRole identifies which party authored an item note.
type NoteAuthorRole string

const (
	NoteAuthorManufacturer NoteAuthorRole = "MANUFACTURER"
	NoteAuthorDealer       NoteAuthorRole = "DEALER"
)

// ItemNote is a cross-party annotation attached to exactly one workflow item
// (manufacturer inspection item or dealer acceptance item, never both).
// Visibility to each party is tracked independently; a note only becomes
// visible to the opposite party once it has been submitted. Submitted notes
// are immutable.
type ItemNote struct {
	BaseModel
	ManufacturerItemID *uuid.UUID `gorm:"type:uuid;column:manufacturer_item_id;index" json:"manufacturerItemId,omitempty"`
	AcceptanceItemID   *uuid.UUID `gorm:"type:uuid;column:acceptance_item_id;index" json:"acceptanceItemId,omitempty"`

	AuthorID   uuid.UUID      `gorm:"type:uuid;column:author_id;not null" json:"authorId"`
	AuthorRole NoteAuthorRole `gorm:"type:varchar(20);column:author_role;not null" json:"authorRole"`
	Content    string         `gorm:"type:text;column:content;not null" json:"content"`

	// No column defaults on the visibility flags: the service resolves
	// them on create, and a default tag would make GORM drop an explicit
	// false from the INSERT.
	VisibleToDealer       bool       `gorm:"column:visible_to_dealer;not null" json:"visibleToDealer"`
	VisibleToManufacturer bool       `gorm:"column:visible_to_manufacturer;not null" json:"visibleToManufacturer"`
	SubmittedAt           *time.Time `gorm:"type:timestamptz;column:submitted_at" json:"submittedAt,omitempty"`
}

func (n *ItemNote) TableName() string {
	return "item_notes"
}

// NoteVisibilityFilter is the query-side projection of the per-role
// visibility rules. It is built once from the viewer's role and applied by
// the note repository.
type NoteVisibilityFilter struct {
	RequireDealerVisible       bool
	RequireManufacturerVisible bool
	RequireSubmitted           bool
}

// Submitted reports whether the note has been submitted and is therefore
// immutable and eligible for cross-party visibility.
func (n *ItemNote) Submitted() bool {
	return n.SubmittedAt != nil
}
