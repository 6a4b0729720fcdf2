package cli

import (
	"bufio"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/benchauth/internal/accounts"
	"github.com/dmitrijs2005/benchauth/internal/client/config"
	"github.com/dmitrijs2005/benchauth/internal/client/storage"
	"github.com/dmitrijs2005/benchauth/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		StorePath:        filepath.Join(t.TempDir(), "accounts.db"),
		BusyTimeout:      time.Second,
		LogLevel:         "error",
		CredentialScheme: "legacy",
	}
}

func TestNewApp_UnknownScheme(t *testing.T) {
	cfg := testConfig(t)
	cfg.CredentialScheme = "rot13"

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewApp_SessionSurvivesRestart(t *testing.T) {
	captureOutput(t)
	ctx := context.Background()
	cfg := testConfig(t)

	first, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	registerAda(t, first)
	first.Close()
	first.Close()

	second, err := NewApp(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(second.Close)

	assert.False(t, second.isLoggedIn(), "nothing restored before RestoreSession")
	second.accounts.RestoreSession(ctx)
	assert.True(t, second.isLoggedIn())
	assert.Equal(t, "(Ada Lovelace) ", second.getStatus())
}

func TestRun_RestoresSessionAndExits(t *testing.T) {
	out := captureOutput(t)
	ctx := context.Background()

	st := storage.NewMemoryStore()
	seed := newTestApp(t, st)
	registerAda(t, seed)

	a := newApp(&config.Config{}, st, accounts.LegacyEncoder{}, logging.Nop(),
		bufio.NewReader(strings.NewReader("whoami\nexit\n")), io.Discard)
	a.Run(ctx)

	assert.Contains(t, out.lines, "[info] Welcome back, Ada!")
	assert.Contains(t, out.lines, "bench (Ada Lovelace) > ")
	assert.Contains(t, out.joined(), "Signed in as Ada Lovelace")
	assert.Contains(t, out.lines, "Bye!")
}

func TestNewApp_MemoryPathUsesMemoryStore(t *testing.T) {
	captureOutput(t)
	cfg := testConfig(t)
	cfg.StorePath = storage.MemoryDSN

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	assert.IsType(t, &storage.MemoryStore{}, a.store)
	assert.Nil(t, a.closeFn)
	registerAda(t, a)
	assert.True(t, a.isLoggedIn())
}

func TestNewApp_FilePathUsesSQLite(t *testing.T) {
	a, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)

	assert.IsType(t, &storage.SQLiteStore{}, a.store)
	assert.NotNil(t, a.closeFn)
}
