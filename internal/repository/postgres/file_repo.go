package postgres

import (
	"context"
	"errors"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/errs"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// FileRepo implements FileRepository using PostgreSQL.
type FileRepo struct{ db *DB }

// NewFileRepo constructs a file repository.
func NewFileRepo(db *DB) *FileRepo { return &FileRepo{db: db} }

const fileColumns = `id, user_id, name, kind, parent_id, is_public, local_path, created_at`

// Create inserts a new file document.
func (r *FileRepo) Create(ctx context.Context, f *model.File) error {
	const q = `
INSERT INTO files (id, user_id, name, kind, parent_id, is_public, local_path)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Pool.Exec(ctx, q,
		f.ID, f.UserID, f.Name, string(f.Kind), f.ParentID.NullUUID, f.IsPublic, f.LocalPath)
	return err
}

// Get selects a document by id without an ownership check.
func (r *FileRepo) Get(ctx context.Context, id uuid.UUID) (*model.File, error) {
	const q = `
SELECT ` + fileColumns + `
FROM files WHERE id=$1`
	return scanFile(r.db.Pool.QueryRow(ctx, q, id))
}

// GetOwned selects a document by {id, ownerID}. A document owned by someone
// else scans as no rows and surfaces as ErrNotFound.
func (r *FileRepo) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.File, error) {
	const q = `
SELECT ` + fileColumns + `
FROM files WHERE id=$1 AND user_id=$2`
	return scanFile(r.db.Pool.QueryRow(ctx, q, id, ownerID))
}

// ListByParent returns file/image documents in insertion order. Folders are
// excluded from listings. An offset past the end yields an empty slice.
func (r *FileRepo) ListByParent(
	ctx context.Context, ownerID uuid.UUID, parent model.ParentID, offset, limit int,
) ([]model.File, error) {
	const root = `
SELECT ` + fileColumns + `
FROM files
WHERE user_id=$1 AND parent_id IS NULL AND kind IN ('file','image')
ORDER BY created_at, id
OFFSET $2 LIMIT $3`
	const under = `
SELECT ` + fileColumns + `
FROM files
WHERE user_id=$1 AND parent_id=$4 AND kind IN ('file','image')
ORDER BY created_at, id
OFFSET $2 LIMIT $3`

	var (
		rows pgx.Rows
		err  error
	)
	if parent.Root() {
		rows, err = r.db.Pool.Query(ctx, root, ownerID, offset, limit)
	} else {
		rows, err = r.db.Pool.Query(ctx, under, ownerID, offset, limit, parent.UUID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.File{}
	for rows.Next() {
		var f model.File
		if err := scanFileInto(rows, &f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// SetPublic updates isPublic on {id, ownerID} in a single statement and
// returns the updated document, or ErrNotFound on no match.
func (r *FileRepo) SetPublic(ctx context.Context, id, ownerID uuid.UUID, public bool) (*model.File, error) {
	const q = `
UPDATE files SET is_public=$3
WHERE id=$1 AND user_id=$2
RETURNING ` + fileColumns
	f, err := scanFile(r.db.Pool.QueryRow(ctx, q, id, ownerID, public))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Count returns the total number of file documents.
func (r *FileRepo) Count(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM files`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanFile(row pgx.Row) (*model.File, error) {
	var f model.File
	if err := scanFileInto(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func scanFileInto(row pgx.Row, f *model.File) error {
	var kind string
	if err := row.Scan(&f.ID, &f.UserID, &f.Name, &kind,
		&f.ParentID.NullUUID, &f.IsPublic, &f.LocalPath, &f.CreatedAt); err != nil {
		return err
	}
	f.Kind = model.Kind(kind)
	return nil
}
