package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/todo-api/internal/cli"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("TODO_DATABASE_DRIVER", config.DriverSQLite)
	t.Setenv("TODO_DATABASE_URL", filepath.Join(t.TempDir(), "todo.db"))
}

func TestRun_HelpNeedsNoConfig(t *testing.T) {
	t.Setenv("TODO_DATABASE_URL", "")
	var out, errOut bytes.Buffer

	assert.Equal(t, cli.ExitOK, run(context.Background(), []string{"help"}, &out, &errOut))
	assert.Contains(t, out.String(), "usermgr <subcommand>")
	assert.Empty(t, errOut.String())
}

func TestRun_ConfigError(t *testing.T) {
	t.Setenv("TODO_DATABASE_URL", "")
	var out, errOut bytes.Buffer

	assert.Equal(t, cli.ExitError, run(context.Background(), []string{"list"}, &out, &errOut))
	assert.Contains(t, errOut.String(), "failed to load configuration")
}

func TestRun_AgainstSQLite(t *testing.T) {
	useSQLite(t)
	ctx := context.Background()
	var out, errOut bytes.Buffer

	require.Equal(t, cli.ExitOK, run(ctx, []string{"create", "frank"}, &out, &errOut), errOut.String())
	assert.Contains(t, out.String(), "created user frank")

	out.Reset()
	require.Equal(t, cli.ExitOK, run(ctx, []string{"apikey", "frank"}, &out, &errOut))
	key := strings.TrimSpace(out.String())
	assert.NotEmpty(t, key)

	out.Reset()
	require.Equal(t, cli.ExitOK, run(ctx, []string{"list"}, &out, &errOut))
	assert.Contains(t, out.String(), key)

	out.Reset()
	require.Equal(t, cli.ExitOK, run(ctx, []string{"delete", "frank"}, &out, &errOut))
	assert.Equal(t, cli.ExitError, run(ctx, []string{"apikey", "frank"}, &out, &errOut))
}
