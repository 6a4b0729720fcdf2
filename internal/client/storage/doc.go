// Package storage is the durable key-value store the account core persists
// into: a string-keyed, string-valued map that survives restarts.
//
// # Overview
//
// The package defines a Store interface and two implementations:
//
//   - type SQLiteStore    rows in the kv table, over dbx.DBTX (*sql.DB or *sql.Tx)
//   - type MemoryStore    a mutex-guarded map, lost on exit
//
// Open prepares a SQLite database file (parent directory, busy timeout,
// goose migrations) and returns a ready SQLiteStore.
//
// # Contract
//
// Get on a missing key returns ("", false, nil); Delete on a missing key is
// not an error. Replace swaps the whole key space in one step.
//
// Typical Usage
//
//	st, closeFn, err := storage.Open(ctx, "data/accounts.db", 5*time.Second)
//	defer closeFn()
//	_ = st.Set(ctx, "beyondTheBenchUsers", "[]")
//	v, ok, _ := st.Get(ctx, "beyondTheBenchUsers")
package storage
