package photos

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/OpenDAF/daf/internal/tracking/model"
)

// Parent identifies what a photo is attached to. Exactly one field must be
// set.
type Parent struct {
	InspectionID     *uuid.UUID
	InspectionItemID *uuid.UUID
	AcceptanceID     *uuid.UUID
	AcceptanceItemID *uuid.UUID
	PDIID            *uuid.UUID
	PDIItemID        *uuid.UUID
}

func (p Parent) count() int {
	n := 0
	for _, ref := range []*uuid.UUID{
		p.InspectionID, p.InspectionItemID,
		p.AcceptanceID, p.AcceptanceItemID,
		p.PDIID, p.PDIItemID,
	} {
		if ref != nil {
			n++
		}
	}
	return n
}

// Upload carries an incoming photo binary and its metadata.
type Upload struct {
	Body       io.Reader
	Filename   string
	MimeType   string
	Size       int64
	PhotoType  model.PhotoType
	Caption    string
	UploadedBy *uuid.UUID
}

// Service stores photo binaries and their database rows. The workflow
// engines never touch binaries; they only count the rows attached to items.
type Service struct {
	db      *gorm.DB
	storage StorageDriver
}

// NewService creates a new photo Service.
func NewService(db *gorm.DB, storage StorageDriver) *Service {
	return &Service{db: db, storage: storage}
}

// Attach stores the binary and records the photo against its parent.
func (s *Service) Attach(ctx context.Context, parent Parent, upload Upload) (*model.Photo, error) {
	if parent.count() != 1 {
		return nil, fmt.Errorf("a photo must attach to exactly one record or item")
	}
	if upload.Body == nil {
		return nil, fmt.Errorf("photo body is empty")
	}

	mimeType := upload.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	photoType := upload.PhotoType
	if photoType == "" {
		photoType = model.PhotoTypeGeneral
	}

	key := uuid.New().String()
	if err := s.storage.Save(ctx, key, upload.Body, mimeType); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	url, err := s.storage.GenerateURL(ctx, key, 0)
	if err != nil {
		url = "" // row still usable; URL can be regenerated later
	}

	photo := &model.Photo{
		InspectionID:     parent.InspectionID,
		InspectionItemID: parent.InspectionItemID,
		AcceptanceID:     parent.AcceptanceID,
		AcceptanceItemID: parent.AcceptanceItemID,
		PDIID:            parent.PDIID,
		PDIItemID:        parent.PDIItemID,
		PhotoType:        photoType,
		Key:              key,
		URL:              url,
		Filename:         upload.Filename,
		MimeType:         mimeType,
		Size:             upload.Size,
		Caption:          upload.Caption,
		UploadedByID:     upload.UploadedBy,
	}
	if err := s.db.WithContext(ctx).Create(photo).Error; err != nil {
		// Roll the binary back so storage does not accumulate orphans.
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			slog.WarnContext(ctx, "failed to clean up orphaned photo binary", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to record photo: %w", err)
	}

	slog.InfoContext(ctx, "photo attached", "photo_id", photo.ID, "type", photoType, "size", upload.Size)
	return photo, nil
}

// GetByID returns a photo row.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*model.Photo, error) {
	var photo model.Photo
	if err := s.db.WithContext(ctx).First(&photo, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &photo, nil
}

// Open streams a photo's binary and returns its content type.
func (s *Service) Open(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	photo, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return s.storage.Get(ctx, photo.Key)
}

// FreshURL regenerates a link for a photo, e.g. after a presigned URL
// expired.
func (s *Service) FreshURL(ctx context.Context, id uuid.UUID, expires time.Duration) (string, error) {
	photo, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GenerateURL(ctx, photo.Key, expires)
}

// Delete removes both the row and the binary. The binary goes second; a
// dangling binary is harmless, a dangling row is not.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	photo, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&model.Photo{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete photo row: %w", err)
	}
	if err := s.storage.Delete(ctx, photo.Key); err != nil {
		slog.WarnContext(ctx, "failed to delete photo binary", "key", photo.Key, "error", err)
	}
	return nil
}
