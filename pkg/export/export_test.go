package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Course Code", "Weekly Hours"},
		Rows: []map[string]string{
			{"Course Code": "CS301", "Weekly Hours": "4"},
			{"Course Code": "TOTAL", "Weekly Hours": "4 / 21"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Course Code,Weekly Hours\nCS301,4\nTOTAL,4 / 21\n", string(out))
}

func TestCSVExporterRejectsEmptyHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Course Code", "Weekly Hours"},
		Rows:    []map[string]string{{"Course Code": "CS301", "Weekly Hours": "4"}},
	}

	out, err := NewPDFExporter().Render(data, "Workload - Dr. Rao (CSE)")
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}
