package matchers

import (
	"testing"

	"github.com/arthur-debert/reactor/pkg/registry"
	"github.com/arthur-debert/reactor/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuffixMatcher_Match(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		tag         string
		shouldMatch bool
	}{
		{
			name:        "matching suffix",
			pattern:     "/refresh",
			tag:         "minion/refresh",
			shouldMatch: true,
		},
		{
			name:        "whole tag equals suffix",
			pattern:     "minion/refresh",
			tag:         "minion/refresh",
			shouldMatch: true,
		},
		{
			name:        "no match - suffix appears earlier",
			pattern:     "minion",
			tag:         "minion/refresh",
			shouldMatch: false,
		},
		{
			name:        "no match - case sensitive",
			pattern:     "/Refresh",
			tag:         "minion/refresh",
			shouldMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSuffixMatcher(tt.pattern)

			matched, result := m.Match(tt.tag)

			assert.Equal(t, tt.shouldMatch, matched)
			if matched {
				assert.NotNil(t, result)
				assert.Empty(t, result)
			} else {
				assert.Nil(t, result)
			}
		})
	}
}

func TestSuffixMatcher_Properties(t *testing.T) {
	m := NewSuffixMatcher("/done")

	assert.Equal(t, types.KindEndsWith, m.Kind())
	assert.Equal(t, "/done", m.Pattern())
	assert.Equal(t, "Matches tags ending with: /done", m.Description())
}

func TestSuffixMatcher_FactoryRegistration(t *testing.T) {
	factory, err := registry.GetMatcherFactory(types.KindEndsWith)
	require.NoError(t, err)

	m, err := factory("/done")
	require.NoError(t, err)

	matched, _ := m.Match("job/42/done")
	assert.True(t, matched)
}
