package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatMarkdown, ParseFormat("md"))
	assert.Equal(t, FormatMarkdown, ParseFormat("markdown"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("anything"))
}

func TestFormatter_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	f, err := NewFormatter(FormatJSON, path, true)
	require.NoError(t, err)
	assert.False(t, f.Colored(), "file output disables color")

	require.NoError(t, f.Output(map[string]float64{"noc": 3}))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"noc": 3`)
}

func TestTable_Markdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	f, err := NewFormatter(FormatMarkdown, path, false)
	require.NoError(t, err)

	tbl := &Table{
		Title:   "Ranked Types",
		Headers: []string{"Name", "CR"},
		Rows:    [][]string{{"User", "1.42"}, {"Base", "0.88"}},
	}
	require.NoError(t, f.Render(tbl))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := string(data)
	assert.Contains(t, got, "## Ranked Types")
	assert.Contains(t, got, "| Name | CR |")
	assert.Contains(t, got, "| User | 1.42 |")
}

func TestTable_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	f, err := NewFormatter(FormatText, path, false)
	require.NoError(t, err)

	tbl := &Table{
		Title:   "Summary",
		Headers: []string{"Metric", "Value"},
		Rows:    [][]string{{"classes", "7"}},
	}
	require.NoError(t, f.Render(tbl))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := string(data)
	assert.True(t, strings.HasPrefix(got, "Summary"))
	assert.Contains(t, got, "classes")
	assert.Contains(t, got, "7")
}
