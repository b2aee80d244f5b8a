package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPush_NoDedup(t *testing.T) {
	c := NewCenter()
	a := c.Push("saved", Success)
	b := c.Push("saved", Success)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, c.Len())
}

func TestDismiss_LeavesOthers(t *testing.T) {
	c := NewCenter()
	a := c.Push("one", Info)
	b := c.Push("two", Warning)
	d := c.Push("three", Danger)

	require.True(t, c.Dismiss(b.ID))
	active := c.Active()
	require.Len(t, active, 2)
	assert.Equal(t, a.ID, active[0].ID)
	assert.Equal(t, d.ID, active[1].ID)

	assert.False(t, c.Expire(b.ID), "timer after early dismissal is a no-op")
	assert.True(t, c.Expire(a.ID))
}

func TestDismissLatest(t *testing.T) {
	c := NewCenter()
	assert.False(t, c.DismissLatest())

	c.Push("old", Info)
	c.Push("new", Info)
	require.True(t, c.DismissLatest())
	assert.Equal(t, "old", c.Active()[0].Message)
}

func TestSeverityTitle(t *testing.T) {
	assert.Equal(t, "Success", Success.Title())
	assert.Equal(t, "Error", Danger.Title())
	assert.Equal(t, "Warning", Warning.Title())
	assert.Equal(t, "Info", Info.Title())
}
