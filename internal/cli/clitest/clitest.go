// Package clitest builds command contexts backed by a fake API and a
// throwaway SQLite preferences store
package clitest

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/habitdash/internal/apitest"
	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/config"
	"github.com/julianstephens/habitdash/internal/notifications"
	"github.com/julianstephens/habitdash/internal/storage/sqlite"
	"github.com/julianstephens/habitdash/internal/store"
)

// Now is the fixed clock used by test contexts
var Now = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

// Env is a command context plus the fakes behind it
type Env struct {
	Ctx      *cli.Context
	Backend  *apitest.Backend
	Prefs    *sqlite.Store
	Out      *bytes.Buffer
	Notifier *RecordingNotifier
}

// New returns an initialized environment. The preferences store lives under t.TempDir.
func New(t *testing.T) *Env {
	t.Helper()

	backend := apitest.New(t)
	dir := t.TempDir()
	prefs := sqlite.NewStore(filepath.Join(dir, "habitdash.db"))
	if err := prefs.Init(); err != nil {
		t.Fatalf("prefs.Init() error = %v", err)
	}
	t.Cleanup(func() { prefs.Close() })

	out := &bytes.Buffer{}
	notifier := &RecordingNotifier{}
	ctx := &cli.Context{
		Ctx: context.Background(),
		Config: config.Config{
			Path:        filepath.Join(dir, "config.toml"),
			Dir:         dir,
			APIURL:      backend.URL(),
			Preferences: prefs.GetConfigPath(),
		},
		Prefs:    prefs,
		Store:    store.New(backend.Client()),
		Center:   notifications.NewCenter(),
		Notifier: notifier,
		Out:      out,
		Now:      func() time.Time { return Now },
	}
	return &Env{Ctx: ctx, Backend: backend, Prefs: prefs, Out: out, Notifier: notifier}
}

// RecordingNotifier collects forwarded notifications
type RecordingNotifier struct {
	mu    sync.Mutex
	Err   error
	notes []notifications.Notification
}

func (r *RecordingNotifier) Notify(_ context.Context, note notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note)
	return r.Err
}

func (r *RecordingNotifier) Notes() []notifications.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notifications.Notification(nil), r.notes...)
}
