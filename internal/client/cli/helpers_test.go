package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/benchauth/internal/accounts"
	"github.com/dmitrijs2005/benchauth/internal/client/config"
	"github.com/dmitrijs2005/benchauth/internal/client/storage"
	"github.com/dmitrijs2005/benchauth/internal/logging"
	"github.com/stretchr/testify/require"
)

type capturedOutput struct {
	lines []string
}

func (c *capturedOutput) joined() string { return strings.Join(c.lines, "\n") }

// captureOutput replaces printlnFn for the duration of the test.
func captureOutput(t *testing.T) *capturedOutput {
	t.Helper()
	c := &capturedOutput{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		line := strings.TrimSuffix(fmt.Sprintln(a...), "\n")
		c.lines = append(c.lines, line)
		return len(line), nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return c
}

// stubInputs feeds answers to getSimpleText and getPassword in order.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword

	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", fmt.Errorf("unexpected prompt %q", prompt)
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ io.Writer, prompt string) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, fmt.Errorf("unexpected password prompt %q", prompt)
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}

	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func newTestApp(t *testing.T, st storage.Store) *App {
	t.Helper()
	if st == nil {
		st = storage.NewMemoryStore()
	}
	return newApp(&config.Config{}, st, accounts.LegacyEncoder{}, logging.Nop(),
		bufio.NewReader(strings.NewReader("")), io.Discard)
}

// registerAda registers and leaves Ada logged in.
func registerAda(t *testing.T, a *App) {
	t.Helper()
	_, err := a.accounts.Register(context.Background(), accounts.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@x.com",
		Password:  "Str0ngPass",
		AvatarRef: "a1.png",
	})
	require.NoError(t, err)
}
