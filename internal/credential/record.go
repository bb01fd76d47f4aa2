package credential

import (
	"encoding/json"
	"strings"
	"time"
)

// record is the persisted form. ExpiresIn is accepted for records written by
// older tooling and is resolved against the record's modification time.
type record struct {
	AccessToken  string     `json:"access_token"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	ExpiresIn    int64      `json:"expires_in,omitempty"`
	RefreshToken string     `json:"refresh_token,omitempty"`
}

func encode(c Credential) ([]byte, error) {
	rec := record{AccessToken: c.AccessToken, RefreshToken: c.RefreshToken}
	if !c.Expiry.IsZero() {
		exp := c.Expiry.UTC()
		rec.ExpiresAt = &exp
	}
	return json.MarshalIndent(rec, "", "  ")
}

func decode(data []byte, written time.Time) (Credential, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Credential{}, ErrNotFound
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Credential{}, ErrNotFound
	}
	c := Credential{AccessToken: rec.AccessToken, RefreshToken: rec.RefreshToken}
	switch {
	case rec.ExpiresAt != nil:
		c.Expiry = *rec.ExpiresAt
	case rec.ExpiresIn > 0 && !written.IsZero():
		c.Expiry = written.Add(time.Duration(rec.ExpiresIn) * time.Second)
	}
	if !c.Valid() {
		return Credential{}, ErrNotFound
	}
	return c, nil
}
