package ports

import (
	"context"
	"time"

	"github.com/stmarks-parish/parish-cms/internal/core/domain"
)

// UploadBulletinInput carries the metadata and file content for a new
// bulletin.
type UploadBulletinInput struct {
	Title       string
	TitleEs     string
	Date        time.Time
	FileName    string
	ContentType string
	Data        []byte
}

// BulletinService covers weekly bulletins: upload, per-week activation and
// file retrieval. The file is stored before the record is committed; a
// commit failure triggers best-effort removal of the stored file.
type BulletinService interface {
	Upload(ctx context.Context, in UploadBulletinInput) (*domain.Bulletin, error)
	List(ctx context.Context, limit int) ([]*domain.Bulletin, error)
	// GetCurrent returns the most recent active bulletin, or (nil, nil)
	// when no bulletin is active.
	GetCurrent(ctx context.Context) (*domain.Bulletin, error)
	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	// Delete removes the backing file best-effort, then the record. A file
	// removal failure never blocks record removal.
	Delete(ctx context.Context, id string) error
	// File returns the stored bytes and content type for download.
	File(ctx context.Context, id string) ([]byte, string, error)
}
