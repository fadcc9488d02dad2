// Package uuid wraps google/uuid with the gin binding interface so that
// resource IDs in URIs and query strings parse directly into UUID fields.
package uuid

import (
	google_uuid "github.com/google/uuid"

	"github.com/michdebow/stash-tracker/internal/httputil"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

func NewString() string {
	return google_uuid.NewString()
}

// UnmarshalParam implements gin's BindUnmarshaler. An empty parameter binds
// to Nil, anything that does not parse is rejected with a stable error so
// that raw parser output never reaches API clients.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return httputil.ErrInvalidUUID
	}

	*u = UUID{parsed}
	return nil
}
