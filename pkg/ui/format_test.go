package ui

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"auto", FormatAuto, false},
		{"", FormatAuto, false},
		{"term", FormatTerminal, false},
		{"terminal", FormatTerminal, false},
		{"text", FormatText, false},
		{"plain", FormatText, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"xml", FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "auto", FormatAuto.String())
	assert.Equal(t, "term", FormatTerminal.String())
	assert.Equal(t, "text", FormatText.String())
	assert.Equal(t, "json", FormatJSON.String())
}

func TestTable_RenderText(t *testing.T) {
	table := Table{
		Headers: []string{"NAME", "KIND"},
		Rows: [][]string{
			{"refresh", "startswith"},
			{"errors", "regex"},
		},
	}

	out, err := table.Render(FormatText)

	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "refresh")
	assert.Contains(t, out, "startswith")
}

func TestTable_RenderJSON(t *testing.T) {
	table := Table{
		Headers: []string{"NAME", "KIND"},
		Rows:    [][]string{{"refresh", "startswith"}},
	}

	out, err := table.Render(FormatJSON)

	require.NoError(t, err)
	var rows []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "refresh", rows[0]["name"])
	assert.Equal(t, "startswith", rows[0]["kind"])
}

func TestTable_RenderEmpty(t *testing.T) {
	table := Table{Headers: []string{"NAME"}}

	out, err := table.Render(FormatText)

	require.NoError(t, err)
	assert.Contains(t, out, "(none)")
}
