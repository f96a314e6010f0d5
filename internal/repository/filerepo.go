package repository

import (
	"context"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/model"
	"github.com/gofrs/uuid/v5"
)

// FileRepository provides access to the files collection. All lookups that
// take an ownerID report a miss as ErrNotFound, whether the document is
// absent or owned by someone else.
type FileRepository interface {
	// Create inserts a new file document.
	Create(ctx context.Context, f *model.File) error
	// Get loads a document by id without an ownership check.
	Get(ctx context.Context, id uuid.UUID) (*model.File, error)
	// GetOwned loads a document by {id, ownerID}.
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.File, error)
	// ListByParent returns file/image documents under parent in insertion
	// order, sliced to limit entries starting at offset.
	ListByParent(ctx context.Context, ownerID uuid.UUID, parent model.ParentID, offset, limit int) ([]model.File, error)
	// SetPublic atomically updates isPublic on {id, ownerID} and returns
	// the updated document.
	SetPublic(ctx context.Context, id, ownerID uuid.UUID, public bool) (*model.File, error)
	// Count returns the total number of file documents.
	Count(ctx context.Context) (int64, error)
}
