package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

func TestItemNoteCreate(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()

	t.Run("dealer draft defaults to manufacturer-visible", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		itemID := uuid.New()

		notes.On("AcceptanceItemExistsInTx", ctx, mock.Anything, itemID).Return(true, nil)
		notes.On("CreateInTx", ctx, mock.Anything, mock.AnythingOfType("*model.ItemNote")).Return(nil)

		note, err := svc.createInTx(ctx, nil, &model.CreateItemNoteDTO{
			AcceptanceItemID: &itemID,
			Content:          "trim misaligned near slide-out",
		}, authorID, model.NoteAuthorDealer)

		assert.NoError(t, err)
		assert.True(t, note.VisibleToDealer)
		assert.True(t, note.VisibleToManufacturer)
		assert.Nil(t, note.SubmittedAt)
		assert.Equal(t, authorID, note.AuthorID)
		assert.Equal(t, model.NoteAuthorDealer, note.AuthorRole)
	})

	t.Run("dealer may narrow manufacturer visibility", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		itemID := uuid.New()
		hidden := false

		notes.On("AcceptanceItemExistsInTx", ctx, mock.Anything, itemID).Return(true, nil)
		notes.On("CreateInTx", ctx, mock.Anything, mock.AnythingOfType("*model.ItemNote")).Return(nil)

		note, err := svc.createInTx(ctx, nil, &model.CreateItemNoteDTO{
			AcceptanceItemID:      &itemID,
			Content:               "internal reminder for our techs",
			VisibleToManufacturer: &hidden,
		}, authorID, model.NoteAuthorDealer)

		assert.NoError(t, err)
		assert.True(t, note.VisibleToDealer)
		assert.False(t, note.VisibleToManufacturer)
	})

	t.Run("author side visibility cannot be switched off", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		itemID := uuid.New()
		hidden := false

		notes.On("AcceptanceItemExistsInTx", ctx, mock.Anything, itemID).Return(true, nil)
		notes.On("CreateInTx", ctx, mock.Anything, mock.AnythingOfType("*model.ItemNote")).Return(nil)

		note, err := svc.createInTx(ctx, nil, &model.CreateItemNoteDTO{
			AcceptanceItemID: &itemID,
			Content:          "still my note",
			VisibleToDealer:  &hidden,
		}, authorID, model.NoteAuthorDealer)

		assert.NoError(t, err)
		assert.True(t, note.VisibleToDealer)
	})

	t.Run("manufacturer draft defaults to dealer-invisible", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		itemID := uuid.New()

		notes.On("ManufacturerItemExistsInTx", ctx, mock.Anything, itemID).Return(true, nil)
		notes.On("CreateInTx", ctx, mock.Anything, mock.AnythingOfType("*model.ItemNote")).Return(nil)

		note, err := svc.createInTx(ctx, nil, &model.CreateItemNoteDTO{
			ManufacturerItemID: &itemID,
			Content:            "resealed roof seam",
		}, authorID, model.NoteAuthorManufacturer)

		assert.NoError(t, err)
		assert.False(t, note.VisibleToDealer)
		assert.True(t, note.VisibleToManufacturer)
	})

	t.Run("manufacturer may share with the dealer", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		itemID := uuid.New()
		wide := true

		notes.On("ManufacturerItemExistsInTx", ctx, mock.Anything, itemID).Return(true, nil)
		notes.On("CreateInTx", ctx, mock.Anything, mock.AnythingOfType("*model.ItemNote")).Return(nil)

		note, err := svc.createInTx(ctx, nil, &model.CreateItemNoteDTO{
			ManufacturerItemID: &itemID,
			Content:            "known cosmetic variance",
			VisibleToDealer:    &wide,
		}, authorID, model.NoteAuthorManufacturer)

		assert.NoError(t, err)
		assert.True(t, note.VisibleToDealer)
		assert.True(t, note.VisibleToManufacturer)
	})

	t.Run("a note must reference exactly one item", func(t *testing.T) {
		svc := NewItemNoteService(nil, new(MockItemNoteRepository))
		mfgItem := uuid.New()
		accItem := uuid.New()

		_, err := svc.createInTx(ctx, nil, &model.CreateItemNoteDTO{Content: "orphan"}, authorID, model.NoteAuthorDealer)
		assert.True(t, errors.Is(err, ErrValidation))

		_, err = svc.createInTx(ctx, nil, &model.CreateItemNoteDTO{
			ManufacturerItemID: &mfgItem,
			AcceptanceItemID:   &accItem,
			Content:            "both sides",
		}, authorID, model.NoteAuthorDealer)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("missing target item is not found", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		itemID := uuid.New()
		notes.On("AcceptanceItemExistsInTx", ctx, mock.Anything, itemID).Return(false, nil)

		_, err := svc.createInTx(ctx, nil, &model.CreateItemNoteDTO{
			AcceptanceItemID: &itemID,
			Content:          "nowhere to hang this",
		}, authorID, model.NoteAuthorDealer)
		assert.True(t, IsNotFound(err))
	})
}

func TestItemNoteVisibilityFor(t *testing.T) {
	t.Run("dealer reading manufacturer items needs submission", func(t *testing.T) {
		filter := visibilityFor(model.NoteAuthorDealer, true)
		assert.True(t, filter.RequireDealerVisible)
		assert.False(t, filter.RequireManufacturerVisible)
		assert.True(t, filter.RequireSubmitted)
	})

	t.Run("dealer reading acceptance items sees own drafts", func(t *testing.T) {
		filter := visibilityFor(model.NoteAuthorDealer, false)
		assert.True(t, filter.RequireDealerVisible)
		assert.False(t, filter.RequireSubmitted)
	})

	t.Run("manufacturer reading acceptance items needs submission", func(t *testing.T) {
		filter := visibilityFor(model.NoteAuthorManufacturer, false)
		assert.True(t, filter.RequireManufacturerVisible)
		assert.False(t, filter.RequireDealerVisible)
		assert.True(t, filter.RequireSubmitted)
	})

	t.Run("manufacturer reading inspection items sees own drafts", func(t *testing.T) {
		filter := visibilityFor(model.NoteAuthorManufacturer, true)
		assert.True(t, filter.RequireManufacturerVisible)
		assert.False(t, filter.RequireSubmitted)
	})
}

func TestItemNoteListForUnit(t *testing.T) {
	ctx := context.Background()
	unitID := uuid.New()

	t.Run("dealer report only carries submitted notes", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		notes.On("ListForUnitInTx", ctx, mock.Anything, unitID, model.NoteVisibilityFilter{
			RequireDealerVisible: true,
			RequireSubmitted:     true,
		}).Return([]model.ItemNote{}, nil)

		_, err := svc.ListForUnit(ctx, unitID, model.NoteAuthorDealer)
		assert.NoError(t, err)
		notes.AssertExpectations(t)
	})

	t.Run("manufacturer report includes drafts", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		notes.On("ListForUnitInTx", ctx, mock.Anything, unitID, model.NoteVisibilityFilter{
			RequireManufacturerVisible: true,
		}).Return([]model.ItemNote{}, nil)

		_, err := svc.ListForUnit(ctx, unitID, model.NoteAuthorManufacturer)
		assert.NoError(t, err)
		notes.AssertExpectations(t)
	})
}

func TestItemNoteUpdate(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	noteID := uuid.New()

	t.Run("author edits a draft", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		note := &model.ItemNote{BaseModel: model.BaseModel{ID: noteID}, AuthorID: authorID, Content: "old"}

		notes.On("GetByIDInTx", ctx, mock.Anything, noteID).Return(note, nil)
		notes.On("UpdateInTx", ctx, mock.Anything, note).Return(nil)

		content := "new wording"
		got, err := svc.updateInTx(ctx, nil, noteID, &model.UpdateItemNoteDTO{Content: &content}, authorID)

		assert.NoError(t, err)
		assert.Equal(t, "new wording", got.Content)
	})

	t.Run("only the author may edit", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		note := &model.ItemNote{BaseModel: model.BaseModel{ID: noteID}, AuthorID: authorID}
		notes.On("GetByIDInTx", ctx, mock.Anything, noteID).Return(note, nil)

		_, err := svc.updateInTx(ctx, nil, noteID, &model.UpdateItemNoteDTO{}, uuid.New())
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("submitted notes are immutable", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		now := time.Now().UTC()
		note := &model.ItemNote{BaseModel: model.BaseModel{ID: noteID}, AuthorID: authorID, SubmittedAt: &now}
		notes.On("GetByIDInTx", ctx, mock.Anything, noteID).Return(note, nil)

		_, err := svc.updateInTx(ctx, nil, noteID, &model.UpdateItemNoteDTO{}, authorID)
		assert.True(t, errors.Is(err, ErrValidation))
		notes.AssertNotCalled(t, "UpdateInTx", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestItemNoteDelete(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	noteID := uuid.New()

	t.Run("author deletes a draft", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		note := &model.ItemNote{BaseModel: model.BaseModel{ID: noteID}, AuthorID: authorID}

		notes.On("GetByIDInTx", ctx, mock.Anything, noteID).Return(note, nil)
		notes.On("DeleteInTx", ctx, mock.Anything, noteID).Return(nil)

		assert.NoError(t, svc.deleteInTx(ctx, nil, noteID, authorID))
	})

	t.Run("submitted notes cannot be deleted", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		now := time.Now().UTC()
		note := &model.ItemNote{BaseModel: model.BaseModel{ID: noteID}, AuthorID: authorID, SubmittedAt: &now}
		notes.On("GetByIDInTx", ctx, mock.Anything, noteID).Return(note, nil)

		err := svc.deleteInTx(ctx, nil, noteID, authorID)
		assert.True(t, errors.Is(err, ErrValidation))
		notes.AssertNotCalled(t, "DeleteInTx", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestItemNoteSubmit(t *testing.T) {
	ctx := context.Background()
	authorID := uuid.New()
	noteID := uuid.New()

	t.Run("submission stamps the time and can widen visibility", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		note := &model.ItemNote{BaseModel: model.BaseModel{ID: noteID}, AuthorID: authorID, AuthorRole: model.NoteAuthorManufacturer, VisibleToManufacturer: true}

		notes.On("GetByIDInTx", ctx, mock.Anything, noteID).Return(note, nil)
		notes.On("UpdateInTx", ctx, mock.Anything, note).Return(nil)

		share := true
		got, err := svc.submitInTx(ctx, nil, noteID, &model.SubmitNoteDTO{MakeVisibleToDealer: &share}, authorID)

		assert.NoError(t, err)
		assert.NotNil(t, got.SubmittedAt)
		assert.True(t, got.VisibleToDealer)
	})

	t.Run("submission is one-shot", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		now := time.Now().UTC()
		note := &model.ItemNote{BaseModel: model.BaseModel{ID: noteID}, AuthorID: authorID, SubmittedAt: &now}
		notes.On("GetByIDInTx", ctx, mock.Anything, noteID).Return(note, nil)

		_, err := svc.submitInTx(ctx, nil, noteID, nil, authorID)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("only the author may submit", func(t *testing.T) {
		notes := new(MockItemNoteRepository)
		svc := NewItemNoteService(nil, notes)
		note := &model.ItemNote{BaseModel: model.BaseModel{ID: noteID}, AuthorID: authorID}
		notes.On("GetByIDInTx", ctx, mock.Anything, noteID).Return(note, nil)

		_, err := svc.submitInTx(ctx, nil, noteID, nil, uuid.New())
		assert.True(t, errors.Is(err, ErrValidation))
	})
}
