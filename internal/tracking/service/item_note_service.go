package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// ItemNoteService manages cross-party annotations on workflow items. Notes
// start as drafts carrying per-party visibility flags; submitting a note
// freezes it and makes it eligible for the other party to see.
type ItemNoteService struct {
	db    *gorm.DB
	notes ItemNoteRepository
}

// NewItemNoteService creates a new ItemNoteService.
func NewItemNoteService(db *gorm.DB, notes ItemNoteRepository) *ItemNoteService {
	return &ItemNoteService{db: db, notes: notes}
}

// Create attaches a draft note to exactly one workflow item. The author's
// own side can always see the note; the opposite-side flag may be set in the
// DTO and otherwise defaults by role: dealer notes are manufacturer-visible,
// manufacturer notes are dealer-invisible until shared.
func (s *ItemNoteService) Create(ctx context.Context, dto *model.CreateItemNoteDTO, authorID uuid.UUID, role model.NoteAuthorRole) (*model.ItemNote, error) {
	var note *model.ItemNote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		note, err = s.createInTx(ctx, tx, dto, authorID, role)
		return err
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *ItemNoteService) createInTx(ctx context.Context, tx *gorm.DB, dto *model.CreateItemNoteDTO, authorID uuid.UUID, role model.NoteAuthorRole) (*model.ItemNote, error) {
	if (dto.ManufacturerItemID == nil) == (dto.AcceptanceItemID == nil) {
		return nil, validationf("a note must reference exactly one workflow item")
	}

	if dto.ManufacturerItemID != nil {
		exists, err := s.notes.ManufacturerItemExistsInTx(ctx, tx, *dto.ManufacturerItemID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, notFoundf("inspection item %s not found", dto.ManufacturerItemID)
		}
	} else {
		exists, err := s.notes.AcceptanceItemExistsInTx(ctx, tx, *dto.AcceptanceItemID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, notFoundf("acceptance item %s not found", dto.AcceptanceItemID)
		}
	}

	note := &model.ItemNote{
		ManufacturerItemID: dto.ManufacturerItemID,
		AcceptanceItemID:   dto.AcceptanceItemID,
		AuthorID:           authorID,
		AuthorRole:         role,
		Content:            dto.Content,
	}
	switch role {
	case model.NoteAuthorDealer:
		note.VisibleToDealer = true
		note.VisibleToManufacturer = true
		if dto.VisibleToManufacturer != nil {
			note.VisibleToManufacturer = *dto.VisibleToManufacturer
		}
	default:
		note.VisibleToManufacturer = true
		if dto.VisibleToDealer != nil {
			note.VisibleToDealer = *dto.VisibleToDealer
		}
	}

	if err := s.notes.CreateInTx(ctx, tx, note); err != nil {
		return nil, fmt.Errorf("failed to create item note: %w", err)
	}
	return note, nil
}

// visibilityFor builds the query filter for a viewer role and item side.
// Each party always requires its own visibility flag. Notes on the opposite
// party's items additionally require submission: a dealer sees manufacturer
// inspection notes only once submitted, and a manufacturer sees dealer
// acceptance notes only once submitted. A party reading its own side's items
// sees its drafts too.
func visibilityFor(role model.NoteAuthorRole, manufacturerItems bool) model.NoteVisibilityFilter {
	filter := model.NoteVisibilityFilter{}
	switch role {
	case model.NoteAuthorDealer:
		filter.RequireDealerVisible = true
		filter.RequireSubmitted = manufacturerItems
	default:
		filter.RequireManufacturerVisible = true
		filter.RequireSubmitted = !manufacturerItems
	}
	return filter
}

// ListForManufacturerItem returns the notes on a manufacturer inspection
// item visible to the given role.
func (s *ItemNoteService) ListForManufacturerItem(ctx context.Context, itemID uuid.UUID, role model.NoteAuthorRole) ([]model.ItemNote, error) {
	return s.notes.ListForManufacturerItemInTx(ctx, s.db, itemID, visibilityFor(role, true))
}

// ListForAcceptanceItem returns the notes on a dealer acceptance item
// visible to the given role.
func (s *ItemNoteService) ListForAcceptanceItem(ctx context.Context, itemID uuid.UUID, role model.NoteAuthorRole) ([]model.ItemNote, error) {
	return s.notes.ListForAcceptanceItemInTx(ctx, s.db, itemID, visibilityFor(role, false))
}

// ListForUnit returns every note across both workflows for a unit that the
// given role may see. The unit-wide report is coarser than the per-item
// reads: a dealer viewer only gets submitted notes, on either item side,
// while a manufacturer viewer gets drafts too.
func (s *ItemNoteService) ListForUnit(ctx context.Context, unitID uuid.UUID, role model.NoteAuthorRole) ([]model.ItemNote, error) {
	filter := model.NoteVisibilityFilter{}
	switch role {
	case model.NoteAuthorDealer:
		filter.RequireDealerVisible = true
		filter.RequireSubmitted = true
	default:
		filter.RequireManufacturerVisible = true
	}
	return s.notes.ListForUnitInTx(ctx, s.db, unitID, filter)
}

// Update edits a draft note. Only the author may edit, and submitted notes
// are immutable.
func (s *ItemNoteService) Update(ctx context.Context, id uuid.UUID, dto *model.UpdateItemNoteDTO, actorID uuid.UUID) (*model.ItemNote, error) {
	var note *model.ItemNote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		note, err = s.updateInTx(ctx, tx, id, dto, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *ItemNoteService) updateInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, dto *model.UpdateItemNoteDTO, actorID uuid.UUID) (*model.ItemNote, error) {
	note, err := s.notes.GetByIDInTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if note.AuthorID != actorID {
		return nil, validationf("only the author can edit a note")
	}
	if note.Submitted() {
		return nil, validationf("submitted notes cannot be edited")
	}

	if dto.Content != nil {
		note.Content = *dto.Content
	}
	if dto.VisibleToDealer != nil {
		note.VisibleToDealer = *dto.VisibleToDealer
	}
	if dto.VisibleToManufacturer != nil {
		note.VisibleToManufacturer = *dto.VisibleToManufacturer
	}
	if err := s.notes.UpdateInTx(ctx, tx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes a draft note. Only the author may delete, and submitted
// notes cannot be deleted.
func (s *ItemNoteService) Delete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.deleteInTx(ctx, tx, id, actorID)
	})
}

func (s *ItemNoteService) deleteInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, actorID uuid.UUID) error {
	note, err := s.notes.GetByIDInTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if note.AuthorID != actorID {
		return validationf("only the author can delete a note")
	}
	if note.Submitted() {
		return validationf("submitted notes cannot be deleted")
	}
	return s.notes.DeleteInTx(ctx, tx, id)
}

// Submit freezes a note and stamps the submission time, optionally flipping
// dealer visibility in the same step. Submission is one-shot.
func (s *ItemNoteService) Submit(ctx context.Context, id uuid.UUID, dto *model.SubmitNoteDTO, actorID uuid.UUID) (*model.ItemNote, error) {
	var note *model.ItemNote
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		note, err = s.submitInTx(ctx, tx, id, dto, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "item note submitted",
		"note_id", note.ID,
		"author_role", note.AuthorRole,
		"visible_to_dealer", note.VisibleToDealer,
	)
	return note, nil
}

func (s *ItemNoteService) submitInTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, dto *model.SubmitNoteDTO, actorID uuid.UUID) (*model.ItemNote, error) {
	note, err := s.notes.GetByIDInTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if note.AuthorID != actorID {
		return nil, validationf("only the author can submit a note")
	}
	if note.Submitted() {
		return nil, validationf("note already submitted")
	}

	now := time.Now().UTC()
	note.SubmittedAt = &now
	if dto != nil && dto.MakeVisibleToDealer != nil {
		note.VisibleToDealer = *dto.MakeVisibleToDealer
	}
	if err := s.notes.UpdateInTx(ctx, tx, note); err != nil {
		return nil, err
	}
	return note, nil
}
