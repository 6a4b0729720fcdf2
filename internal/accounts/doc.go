// Package accounts is the credential store and session manager.
//
// # Overview
//
// AccountStore registers users, verifies credentials, and keeps at most one
// current session. It persists two keys in a storage.Store:
//
//   - UsersKey     JSON array of every UserRecord
//   - SessionKey   JSON copy of the logged-in UserRecord, absent when logged out
//
// Failures come back as *Error values whose Kind is one of KindValidation,
// KindConflict or KindAuth; match them with errors.Is against ErrValidation,
// ErrConflict, ErrAuth. Durable store failures are never returned: reads
// degrade to an empty table or no session, writes are logged and passed to the
// StorageErrorHandler while the in-memory effect stands.
//
// # Credentials
//
// The default LegacyEncoder is a reversible base64 encoding kept for
// compatibility with existing stores. It is not a password hash. Pass
// WithEncoder(NewArgon2Encoder()) for real deployments.
//
// # Concurrency
//
// Calls are serialized by a mutex. Two processes sharing one store are not
// coordinated: the last table write wins.
package accounts
