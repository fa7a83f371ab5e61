package mvc

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/app/config"
	"yatube/app/repositories"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:          0,
		DBDriver:      config.DriverBadger,
		DatabasePath:  filepath.Join(t.TempDir(), "badger"),
		SessionSecret: "test-secret",
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

func testIO(input string) (IO, *bytes.Buffer) {
	var out bytes.Buffer
	return IO{In: strings.NewReader(input), Out: &out}, &out
}

func TestGroupCommands(t *testing.T) {
	cfg := testConfig(t)
	cli, out := testIO("")

	require.NoError(t, Group(cfg, []string{"add", "--slug", "cats", "--title", "Cats", "--description", "All cats"}, cli))
	assert.Contains(t, out.String(), `Created group "cats"`)

	err := Group(cfg, []string{"add", "--slug", "cats", "--title", "Again"}, cli)
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	assert.Error(t, Group(cfg, []string{"add", "--title", "No slug"}, cli))
	assert.Error(t, Group(cfg, []string{"rename"}, cli))
	assert.Error(t, Group(cfg, nil, cli))

	out.Reset()
	require.NoError(t, Group(cfg, []string{"list"}, cli))
	assert.Contains(t, out.String(), "SLUG")
	assert.Contains(t, out.String(), "cats")
	assert.Contains(t, out.String(), "Cats")
}

func TestUserCommand(t *testing.T) {
	cfg := testConfig(t)
	cli, out := testIO("")

	require.NoError(t, User(cfg, []string{"add", "--username", "leo", "--password", "correct-horse"}, cli))
	assert.Contains(t, out.String(), `Created user "leo"`)

	assert.ErrorIs(t, User(cfg, []string{"add", "--username", "leo", "--password", "x"}, cli), repositories.ErrDuplicate)
	assert.Error(t, User(cfg, []string{"add", "--username", "anna"}, cli))
	assert.Error(t, User(cfg, []string{"remove"}, cli))

	store, err := OpenStore(cfg)
	require.NoError(t, err)
	defer store.Close()
	user, err := store.Users.GetByUsername("leo")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
}

func TestBackupCleanRestore(t *testing.T) {
	cfg := testConfig(t)
	cli, out := testIO("")
	require.NoError(t, Group(cfg, []string{"add", "--slug", "cats", "--title", "Cats"}, cli))

	backupFile := filepath.Join(t.TempDir(), "backups", "yatube.db")
	require.NoError(t, Backup(cfg, []string{backupFile}, cli))
	assert.Contains(t, out.String(), backupFile)

	require.NoError(t, Clean(cfg, []string{"--yes"}, cli))
	assert.NoDirExists(t, cfg.DatabasePath)

	require.NoError(t, Restore(cfg, []string{backupFile}, cli))

	store, err := OpenStore(cfg)
	require.NoError(t, err)
	group, err := store.Groups.GetBySlug("cats")
	require.NoError(t, err)
	assert.Equal(t, "Cats", group.Title)
	require.NoError(t, store.Close())

	// Restoring over an existing database asks first.
	cli, out = testIO("n\n")
	require.NoError(t, Restore(cfg, []string{backupFile}, cli))
	assert.Contains(t, out.String(), "Operation cancelled")

	cli, _ = testIO("y\n")
	require.NoError(t, Restore(cfg, []string{backupFile}, cli))
}

func TestCleanConfirmation(t *testing.T) {
	cfg := testConfig(t)
	cli, out := testIO("")

	require.NoError(t, Clean(cfg, nil, cli))
	assert.Contains(t, out.String(), "already clean")

	require.NoError(t, Group(cfg, []string{"add", "--slug", "cats", "--title", "Cats"}, cli))

	cli, out = testIO("n\n")
	require.NoError(t, Clean(cfg, nil, cli))
	assert.Contains(t, out.String(), "Operation cancelled")
	assert.DirExists(t, cfg.DatabasePath)

	cli, out = testIO("y\n")
	require.NoError(t, Clean(cfg, nil, cli))
	assert.Contains(t, out.String(), "cleaned successfully")
	assert.NoDirExists(t, cfg.DatabasePath)
}

func TestBadgerOnlyCommands(t *testing.T) {
	cfg := testConfig(t)
	cfg.DBDriver = config.DriverMySQL
	cli, _ := testIO("")

	assert.ErrorIs(t, Backup(cfg, nil, cli), errBadgerOnly)
	assert.ErrorIs(t, Restore(cfg, []string{"x"}, cli), errBadgerOnly)
	assert.ErrorIs(t, Clean(cfg, nil, cli), errBadgerOnly)
}

func TestBackupWithoutDatabase(t *testing.T) {
	cfg := testConfig(t)
	cli, _ := testIO("")
	assert.Error(t, Backup(cfg, nil, cli))
	assert.Error(t, Restore(cfg, nil, cli))
	assert.Error(t, Restore(cfg, []string{filepath.Join(t.TempDir(), "missing.db")}, cli))
}

func TestServeStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, cfg) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
