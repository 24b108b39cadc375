// Package session stores storefront sessions and their backend tokens.
package session

import (
	"encoding/json"
	"time"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// record is the stored form of a session. entity.Session hides the token
// from API responses, so the token is carried explicitly here.
type record struct {
	ID        string       `json:"id"`
	Token     string       `json:"token"`
	User      *entity.User `json:"user,omitempty"`
	ExpiresAt time.Time    `json:"expiresAt,omitzero"`
	CreatedAt time.Time    `json:"createdAt"`
}

func encode(s *entity.Session) ([]byte, error) {
	data, err := json.Marshal(record{
		ID:        s.ID,
		Token:     s.Token,
		User:      s.User,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	})

	return data, errors.WithStack(err)
}

func decode(data []byte) (*entity.Session, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "decode session record")
	}

	return &entity.Session{
		ID:        r.ID,
		Token:     r.Token,
		User:      r.User,
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
	}, nil
}
