package accounts

import (
	"context"
	"encoding/json"
	"fmt"
)

// Durable store keys. Shared with the original web client's localStorage.
const (
	UsersKey   = "beyondTheBenchUsers"
	SessionKey = "beyondTheBenchCurrentUser"
)

// loadUsers reads the whole user table. A missing key, a read failure or a
// value that is not a JSON array yield an empty table. Entries that do not
// decode are kept opaque so the next write preserves them. Failures are
// reported through s.reportStorage and never returned.
func (s *AccountStore) loadUsers(ctx context.Context) []UserRecord {
	raw, ok, err := s.store.Get(ctx, UsersKey)
	if err != nil {
		s.reportStorage(ctx, "read users", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.reportStorage(ctx, "parse users", err)
		return nil
	}

	users := make([]UserRecord, 0, len(entries))
	for i, entry := range entries {
		var u UserRecord
		if err := json.Unmarshal(entry, &u); err != nil || u.ID == "" {
			s.log.Warn(ctx, "keeping undecodable user entry", "index", i, "error", err)
			u = UserRecord{raw: entry}
		}
		users = append(users, u)
	}
	return users
}

// visibleUsers drops the opaque entries kept by loadUsers.
func visibleUsers(users []UserRecord) []UserRecord {
	out := make([]UserRecord, 0, len(users))
	for _, u := range users {
		if u.raw == nil {
			out = append(out, u)
		}
	}
	return out
}

// saveUsers serializes and writes the whole table.
func (s *AccountStore) saveUsers(ctx context.Context, users []UserRecord) error {
	if users == nil {
		users = []UserRecord{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := s.store.Set(ctx, UsersKey, string(data)); err != nil {
		return err
	}
	return nil
}

// loadSession returns the persisted session record. ok is false when the key
// is absent; err is non-nil when it is present but unreadable.
func (s *AccountStore) loadSession(ctx context.Context) (UserRecord, bool, error) {
	raw, ok, err := s.store.Get(ctx, SessionKey)
	if err != nil {
		return UserRecord{}, false, err
	}
	if !ok {
		return UserRecord{}, false, nil
	}

	// "null" and other non-object payloads are rejected, matching a record
	// whose id can never be found.
	var ptr *UserRecord
	if err := json.Unmarshal([]byte(raw), &ptr); err != nil {
		return UserRecord{}, true, fmt.Errorf("parse session: %w", err)
	}
	if ptr == nil {
		return UserRecord{}, true, fmt.Errorf("parse session: empty record")
	}
	return *ptr, true, nil
}

func (s *AccountStore) saveSession(ctx context.Context, rec UserRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.store.Set(ctx, SessionKey, string(data))
}

func (s *AccountStore) clearSession(ctx context.Context) error {
	return s.store.Delete(ctx, SessionKey)
}

func findByEmail(users []UserRecord, email string) int {
	normalized := NormalizeEmail(email)
	for i := range users {
		if users[i].raw == nil && NormalizeEmail(users[i].Email) == normalized {
			return i
		}
	}
	return -1
}

func findByID(users []UserRecord, id string) int {
	for i := range users {
		if users[i].raw == nil && users[i].ID == id {
			return i
		}
	}
	return -1
}
