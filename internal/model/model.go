// Package model defines domain entities used by services and repositories.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Kind classifies a stored file document.
type Kind string

const (
	KindFile   Kind = "file"
	KindImage  Kind = "image"
	KindFolder Kind = "folder"
)

// Valid reports whether k is one of the accepted kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindFile, KindImage, KindFolder:
		return true
	}
	return false
}

// PageSize is the fixed number of entries per listing page.
const PageSize = 20

// ThumbnailWidths are the generated image variants, in generation order.
var ThumbnailWidths = []int{500, 250, 100}

// User represents an account. The password is stored as Argon2id(password, Salt).
type User struct {
	ID        uuid.UUID // PK
	Email     string    // unique
	PwdHash   []byte
	Salt      []byte // per-user auth salt
	CreatedAt time.Time
}

// ParentID is a reference to a parent folder document. The zero value means
// the root, which serializes to JSON as the number 0; a non-root value
// serializes as the folder's UUID string.
type ParentID struct {
	uuid.NullUUID
}

// Parent wraps a folder id into a non-root ParentID.
func Parent(id uuid.UUID) ParentID {
	return ParentID{uuid.NullUUID{UUID: id, Valid: true}}
}

// Root reports whether p references the root.
func (p ParentID) Root() bool { return !p.Valid }

// MarshalJSON encodes the root as 0 and any other parent as a UUID string.
func (p ParentID) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("0"), nil
	}
	return json.Marshal(p.UUID.String())
}

// UnmarshalJSON accepts absent/null/0/"0" as the root, or a UUID string.
func (p *ParentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "", "null", "0", `"0"`, `""`:
		*p = ParentID{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("parentId: %w", err)
	}
	id, err := uuid.FromString(s)
	if err != nil {
		return fmt.Errorf("parentId: %w", err)
	}
	*p = Parent(id)
	return nil
}

// File is a stored document: a folder, or a file/image backed by a blob
// at LocalPath. LocalPath is assigned at creation and never changes; it is
// empty for folders and never exposed to API clients.
type File struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	Kind      Kind      `json:"type"`
	ParentID  ParentID  `json:"parentId"`
	IsPublic  bool      `json:"isPublic"`
	LocalPath string    `json:"-"`
	CreatedAt time.Time `json:"-"`
}
