package chapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const description = `Thanks for watching!

0:00 Intro
1:30 - The build
12:05 Wrap up
Follow me elsewhere.`

func TestParse(t *testing.T) {
	got := Parse(description, 1000)
	require.Len(t, got, 3)

	assert.Equal(t, "Intro", got[0].Title)
	assert.Equal(t, 0.0, got[0].Start)
	assert.Equal(t, 90.0, got[0].End)

	assert.Equal(t, "The build", got[1].Title)
	assert.Equal(t, 725.0, got[1].End)

	assert.Equal(t, "Wrap up", got[2].Title)
	assert.Equal(t, 1000.0, got[2].End)
	assert.InDelta(t, 72.5, got[2].StartPercentage, 1e-9)
	assert.InDelta(t, 100.0, got[2].EndPercentage, 1e-9)
}

func TestParse_Hours(t *testing.T) {
	got := Parse("0:00 Start\n1:02:03 Late", 4000)
	require.Len(t, got, 2)
	assert.Equal(t, 3723.0, got[1].Start)
}

func TestParse_NotChapters(t *testing.T) {
	assert.Nil(t, Parse("no timestamps here", 100))
	assert.Nil(t, Parse("0:00 only one", 100))
	assert.Nil(t, Parse("0:10 late start\n0:20 next", 100))
}

func TestAtPercentage(t *testing.T) {
	got := Parse(description, 1000)

	c, ok := AtPercentage(got, 50).Get()
	require.True(t, ok)
	assert.Equal(t, "The build", c.Title)

	// Boundaries are exclusive.
	assert.False(t, AtPercentage(got, 9).IsPresent())
	assert.False(t, AtPercentage(nil, 50).IsPresent())
}
