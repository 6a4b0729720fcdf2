package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/benchauth/internal/accounts"
	"github.com/dmitrijs2005/benchauth/internal/client/config"
	"github.com/dmitrijs2005/benchauth/internal/client/storage"
	"github.com/dmitrijs2005/benchauth/internal/logging"
)

// Notification levels, named after the toast styles of the web client.
const (
	levelSuccess = "success"
	levelDanger  = "danger"
	levelInfo    = "info"
	levelWarning = "warning"
)

type App struct {
	config   *config.Config
	accounts *accounts.AccountStore
	store    storage.Store
	log      logging.Logger
	closeFn  func() error
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp opens the durable store named by c and builds the account core on
// top of it. The caller must call Close (Run does it) to release the database.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel)

	enc, err := accounts.EncoderFor(c.CredentialScheme)
	if err != nil {
		return nil, err
	}

	st, closeFn, err := openStore(ctx, c)
	if err != nil {
		logger.Error(ctx, "error initializing storage", "path", c.StorePath, "error", err)
		return nil, err
	}

	a := newApp(c, st, enc, logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.closeFn = closeFn
	return a, nil
}

// openStore keeps ":memory:" runs in a MemoryStore; any other path is a
// SQLite file.
func openStore(ctx context.Context, c *config.Config) (storage.Store, func() error, error) {
	if c.StorePath == storage.MemoryDSN {
		return storage.NewMemoryStore(), nil, nil
	}
	return storage.Open(ctx, c.StorePath, c.BusyTimeout)
}

func newApp(c *config.Config, st storage.Store, enc accounts.Encoder, logger logging.Logger, r *bufio.Reader, w io.Writer) *App {
	a := &App{config: c, store: st, log: logger, reader: r, out: w}
	a.accounts = accounts.New(st,
		accounts.WithLogger(logger.With("component", "accounts")),
		accounts.WithEncoder(enc),
		accounts.WithStorageErrorHandler(a.onStorageError),
	)
	return a
}

// Run restores the previous session and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.accounts.RestoreSession(ctx)

	printlnFn("Welcome to Beyond the Bench accounts (type 'help' for commands)")
	if u, ok := a.accounts.CurrentUser(); ok {
		a.notify(levelInfo, fmt.Sprintf("Welcome back, %s!", u.FirstName))
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	if a.closeFn == nil {
		return
	}
	if err := a.closeFn(); err != nil {
		a.log.Error(context.Background(), "error closing storage", "error", err)
	}
	a.closeFn = nil
}

func (a *App) isLoggedIn() bool {
	return a.accounts.IsLoggedIn()
}

func (a *App) getStatus() string {
	if u, ok := a.accounts.CurrentUser(); ok {
		return fmt.Sprintf("(%s) ", u.FullName())
	}
	return ""
}

func (a *App) notify(level, msg string) {
	printlnFn(fmt.Sprintf("[%s] %s", level, msg))
}

func (a *App) onStorageError(_ context.Context, err error) {
	a.notify(levelDanger, err.Error())
}
