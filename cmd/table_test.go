package cmd

import (
	"strings"
	"testing"

	"streamvault/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTableEmptyHeaders(t *testing.T) {
	assert.Equal(t, "", renderTable(nil, [][]string{{"x"}}, nil))
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, []columnAlignment{alignLeft, alignRight})

	assert.Contains(t, out, "only")
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.True(t, strings.HasPrefix(lines[0], "╭"))
}

func TestRenderTitles(t *testing.T) {
	year := 2021
	page := response.NewPaginatedResponse([]response.TitleResponse{
		{Slug: "dune", Title: "Dune", Type: "movie", Status: "published", Year: &year, ViewsCount: 42, Featured: true},
		{Slug: "untitled", Title: "Untitled", Type: "series", Status: "draft"},
	}, 1, 20, 2)

	out := renderTitles(page)

	assert.Contains(t, out, "dune")
	assert.Contains(t, out, "2021")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "untitled")
	assert.True(t, strings.HasSuffix(out, "page 1/1, 2 titles"))
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()

	for _, name := range []string{"serve", "migrate", "titles"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	flag := root.PersistentFlags().Lookup("env-file")
	require.NotNil(t, flag)
	assert.Equal(t, ".env", flag.DefValue)
}
