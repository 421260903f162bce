package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"name", "emotion", "message"},
		Rows: [][]string{
			{"A", "positive", "hello"},
			{"B", "negative"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,emotion,message", lines[0])
	assert.Equal(t, "A,positive,hello", lines[1])
	// short rows pad to header width
	assert.Equal(t, "B,negative,", lines[2])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"name", "emotion"},
		Rows:    [][]string{{"A", "positive"}},
	}

	out, err := NewPDFExporter().Render(data, "Daily Summary")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}
