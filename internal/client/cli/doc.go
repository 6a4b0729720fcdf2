// Package cli provides the interactive command-line front end for the account
// core.
//
// It wires configuration, the durable store (SQLite, or a MemoryStore for
// ":memory:") and an accounts.AccountStore, restores the previous session,
// and runs a REPL.
//
// Key features:
//   - Register (with password confirmation, strength meter, avatar and terms)
//   - Login / Logout / Whoami
//   - Users listing
//   - Export / Import of the whole store as a JSON key/value dump
//
// Feedback is printed as notification lines tagged [success], [danger],
// [info] or [warning]. Storage failures reported by the core show up as
// [danger] lines while the command itself still completes.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
