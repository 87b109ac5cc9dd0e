package cli_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowse_WithoutTerminalPrintsFirstPage(t *testing.T) {
	setupCLITest(t)
	t.Setenv("USERDIR_PAGE_SIZE", "3")
	srv := newDirectoryServer(t, http.StatusOK, directoryPayload)

	var stdout, stderr strings.Builder
	cmd := newRoot()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--source-url", srv.URL, "browse"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "Charlie Brown")
	assert.NotContains(t, out, "dana")
	assert.Contains(t, out, "page 1 of 3")
}

func TestBrowse_InvalidConfig(t *testing.T) {
	setupCLITest(t)
	t.Setenv("USERDIR_LOCALE", "not a locale!")

	_, err := execute(t, "browse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
