package types_test

import (
	"testing"
	"time"

	"github.com/arthur-debert/reactor/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	before := time.Now().UTC()
	evt := types.NewEvent("minion/refresh", map[string]interface{}{
		"severity": "high",
	})

	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, "minion/refresh", evt.Tag)
	assert.Equal(t, "high", evt.Data["severity"])
	assert.False(t, evt.Time.Before(before))
}

func TestNewEvent_NilDataBecomesEmptyMap(t *testing.T) {
	evt := types.NewEvent("system/boot", nil)

	assert.NotNil(t, evt.Data)
	assert.Empty(t, evt.Data)
}

func TestNewEvent_UniqueIDs(t *testing.T) {
	a := types.NewEvent("a", nil)
	b := types.NewEvent("a", nil)

	assert.NotEqual(t, a.ID, b.ID)
}
