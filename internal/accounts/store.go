package accounts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/benchauth/internal/client/storage"
	"github.com/dmitrijs2005/benchauth/internal/logging"
	"github.com/google/uuid"
)

// StorageErrorHandler is notified when a durable store read or write fails.
// The operation that hit the failure still completes with its in-memory
// effects; the handler is how a presentation layer learns about it.
type StorageErrorHandler func(ctx context.Context, err error)

// AccountStore owns the user table and the current session.
//
// Every table mutation is a whole read-modify-write of UsersKey. The session
// is a snapshot of the record taken at login; later table changes do not
// flow into it.
type AccountStore struct {
	mu sync.Mutex

	store          storage.Store
	encoder        Encoder
	log            logging.Logger
	now            func() time.Time
	newID          func() string
	onStorageError StorageErrorHandler

	current *UserRecord
}

type Option func(*AccountStore)

func WithLogger(l logging.Logger) Option {
	return func(s *AccountStore) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *AccountStore) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *AccountStore) { s.newID = gen }
}

func WithEncoder(e Encoder) Option {
	return func(s *AccountStore) { s.encoder = e }
}

func WithStorageErrorHandler(h StorageErrorHandler) Option {
	return func(s *AccountStore) { s.onStorageError = h }
}

// New constructs an AccountStore over store. Call RestoreSession once after
// construction to pick up a session left by a previous run.
func New(store storage.Store, opts ...Option) *AccountStore {
	s := &AccountStore{
		store:   store,
		encoder: LegacyEncoder{},
		log:     logging.Nop(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RestoreSession loads the persisted session. Data that cannot be read,
// cannot be parsed, or names a user no longer in the table is discarded and
// the session key removed.
func (s *AccountStore) RestoreSession(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil

	rec, ok, err := s.loadSession(ctx)
	if err != nil {
		s.reportStorage(ctx, "read session", err)
		if ok {
			s.dropSession(ctx)
		}
		return
	}
	if !ok {
		return
	}

	users := s.loadUsers(ctx)
	if findByID(users, rec.ID) < 0 {
		s.log.Warn(ctx, "discarding session for unknown user", "user_id", rec.ID)
		s.dropSession(ctx)
		return
	}

	s.current = &rec
	s.log.Info(ctx, "session restored", "user_id", rec.ID)
}

// Register validates in, appends a new record and logs the user in.
func (s *AccountStore) Register(ctx context.Context, in RegisterInput) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateRegistration(in); err != nil {
		return UserRecord{}, err
	}

	users := s.loadUsers(ctx)
	if findByEmail(users, in.Email) >= 0 {
		return UserRecord{}, &Error{Kind: KindConflict, Message: MsgEmailTaken}
	}

	credential, err := s.encoder.Encode(in.Password)
	if err != nil {
		return UserRecord{}, fmt.Errorf("encode credential: %w", err)
	}

	now := s.timestamp()
	rec := UserRecord{
		ID:             s.newID(),
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          NormalizeEmail(in.Email),
		CredentialHash: credential,
		AvatarRef:      strings.TrimSpace(in.AvatarRef),
		CreatedAt:      now,
		LastLoginAt:    now,
		IsActive:       true,
	}

	users = append(users, rec)
	if err := s.saveUsers(ctx, users); err != nil {
		s.reportStorage(ctx, "write users", err)
	}
	s.log.Info(ctx, "user registered", "user_id", rec.ID)

	// Authenticate against the table held in memory so a failed write above
	// cannot turn the automatic login into a failure.
	return s.authenticate(ctx, users, in.Email, in.Password)
}

// Login checks the credentials and starts a session. Unknown email and wrong
// password produce the same error.
func (s *AccountStore) Login(ctx context.Context, email, password string) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(email) == "" || password == "" {
		return UserRecord{}, validationError(MsgCredentialsRequired)
	}

	return s.authenticate(ctx, s.loadUsers(ctx), email, password)
}

func (s *AccountStore) authenticate(ctx context.Context, users []UserRecord, email, password string) (UserRecord, error) {
	i := findByEmail(users, email)
	if i < 0 || !s.encoder.Verify(password, users[i].CredentialHash) {
		s.log.Info(ctx, "login rejected")
		return UserRecord{}, &Error{Kind: KindAuth, Message: MsgInvalidCredentials}
	}

	users[i].LastLoginAt = s.timestamp()
	if err := s.saveUsers(ctx, users); err != nil {
		s.reportStorage(ctx, "write users", err)
	}

	rec := users[i]
	s.current = &rec
	if err := s.saveSession(ctx, rec); err != nil {
		s.reportStorage(ctx, "write session", err)
	}

	s.log.Info(ctx, "user logged in", "user_id", rec.ID)
	return rec, nil
}

// Logout clears the session in memory and in the store. It always succeeds.
func (s *AccountStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		s.log.Info(ctx, "user logged out", "user_id", s.current.ID)
	}
	s.dropSession(ctx)
}

func (s *AccountStore) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// CurrentUser returns a copy of the session record.
func (s *AccountStore) CurrentUser() (UserRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return UserRecord{}, false
	}
	return *s.current, true
}

// Users returns the decodable records of the persisted table as read now.
func (s *AccountStore) Users(ctx context.Context) []UserRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return visibleUsers(s.loadUsers(ctx))
}

func (s *AccountStore) dropSession(ctx context.Context) {
	s.current = nil
	if err := s.clearSession(ctx); err != nil {
		s.reportStorage(ctx, "delete session", err)
	}
}

// timestamp is millisecond precision in UTC, the resolution of the stored
// ISO-8601 strings.
func (s *AccountStore) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *AccountStore) reportStorage(ctx context.Context, op string, err error) {
	msg := "error reading user data"
	if strings.HasPrefix(op, "write") || strings.HasPrefix(op, "delete") {
		msg = "error saving user data"
		s.log.Error(ctx, "storage write failed", "op", op, "error", err)
	} else {
		s.log.Warn(ctx, "storage read failed", "op", op, "error", err)
	}
	if s.onStorageError != nil {
		s.onStorageError(ctx, storageError(msg, fmt.Errorf("%s: %w", op, err)))
	}
}
