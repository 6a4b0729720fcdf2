package accounts

import (
	"encoding/json"
	"time"
)

// UserRecord is one registered account as persisted in the durable store.
//
// The JSON shape is shared with the web client that first wrote these
// records, so field names must not change.
type UserRecord struct {
	// ID is generated at creation and never reused.
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// Email is stored lowercased and trimmed; it is unique across the table.
	Email string `json:"email"`

	// CredentialHash holds the encoded password, never the plaintext.
	CredentialHash string `json:"password"`

	// AvatarRef is an opaque reference (usually a URL) to the chosen avatar.
	AvatarRef string `json:"avatar"`

	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLogin"`

	// IsActive is preserved but does not gate login.
	IsActive bool `json:"isActive"`

	// raw holds the stored JSON of an entry that could not be decoded. Such
	// entries are written back unchanged and never match a lookup.
	raw json.RawMessage
}

// UnmarshalJSON accepts timestamps the web client may have left behind in
// other shapes ("", null, non-ISO strings); they decode as the zero time.
func (u *UserRecord) UnmarshalJSON(b []byte) error {
	type plain UserRecord
	var aux struct {
		plain
		CreatedAt   json.RawMessage `json:"createdAt"`
		LastLoginAt json.RawMessage `json:"lastLogin"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*u = UserRecord(aux.plain)
	u.CreatedAt = parseTimestamp(aux.CreatedAt)
	u.LastLoginAt = parseTimestamp(aux.LastLoginAt)
	return nil
}

func (u UserRecord) MarshalJSON() ([]byte, error) {
	if u.raw != nil {
		return u.raw, nil
	}
	type plain UserRecord
	return json.Marshal(plain(u))
}

func parseTimestamp(b json.RawMessage) time.Time {
	var s string
	if len(b) == 0 || json.Unmarshal(b, &s) != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FullName returns "First Last".
func (u UserRecord) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RegisterInput carries the fields collected by the registration form.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	AvatarRef string
}
