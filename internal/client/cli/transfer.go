package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/benchauth/internal/filex"
)

// Export writes every key of the durable store to path as a JSON object of
// string values, the same shape as a browser localStorage dump.
func (a *App) Export(ctx context.Context, path string) error {
	entries, err := a.store.List(ctx)
	if err != nil {
		a.log.Error(ctx, "export failed", "error", err)
		a.notify(levelDanger, "error reading user data")
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}

	abs, err := filex.EnsureParentDir(path)
	if err != nil {
		a.notify(levelDanger, err.Error())
		return err
	}
	if err := os.WriteFile(abs, data, 0o600); err != nil {
		a.notify(levelDanger, err.Error())
		return err
	}

	a.notify(levelSuccess, fmt.Sprintf("Exported %d keys to %s", len(entries), abs))
	return nil
}

// Import replaces the whole durable store with the JSON object in path and
// then reloads the session from it.
func (a *App) Import(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		a.notify(levelDanger, err.Error())
		return err
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		a.notify(levelDanger, "import file must be a JSON object of string values")
		return fmt.Errorf("parse import: %w", err)
	}

	if err := a.store.Replace(ctx, entries); err != nil {
		a.log.Error(ctx, "import failed", "error", err)
		a.notify(levelDanger, "error saving user data")
		return err
	}

	a.accounts.RestoreSession(ctx)
	a.notify(levelSuccess, fmt.Sprintf("Imported %d keys from %s", len(entries), path))
	if u, ok := a.accounts.CurrentUser(); ok {
		a.notify(levelInfo, "Signed in as "+u.FullName())
	}
	return nil
}
