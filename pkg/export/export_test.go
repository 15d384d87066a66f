package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCSV(t *testing.T) {
	out, err := Render(FormatCSV, Table{
		Columns: []string{"student", "email", "status"},
		Rows: [][]string{
			{"Jo Doe", "jo@x.edu", "approved"},
			{"Sam Lee", "sam@x.edu", "pending"},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "student,email,status", lines[0])
	assert.Contains(t, lines[1], "jo@x.edu")
}

func TestRenderPDFProducesDocument(t *testing.T) {
	out, err := Render(FormatPDF, Table{
		Title:   "Tech Fest registrations",
		Columns: []string{"student", "status"},
		Rows:    [][]string{{"Jo Doe", "approved"}},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestRenderRejectsEmptyColumns(t *testing.T) {
	_, err := Render(FormatCSV, Table{})
	require.Error(t, err)
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	_, err := Render(Format("xlsx"), Table{Columns: []string{"a"}})
	require.Error(t, err)
}
