package seekmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentageFromPointer(t *testing.T) {
	tests := []struct {
		name  string
		pageX float64
		want  float64
	}{
		{"left edge", 100, 0},
		{"middle", 300, 50},
		{"right edge", 500, 100},
		{"before track", 20, 0},
		{"past track", 900, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PercentageFromPointer(tt.pageX, 100, 400), 1e-9)
		})
	}
}

func TestPercentageFromPointer_ZeroWidth(t *testing.T) {
	assert.Equal(t, 0.0, PercentageFromPointer(50, 0, 0))
}

func TestPercentageFromPointer_MonotonicAndBounded(t *testing.T) {
	prev := -1.0
	for x := -200.0; x <= 1200; x += 0.5 {
		got := PercentageFromPointer(x, 37, 811)
		assert.GreaterOrEqual(t, got, prev, "x=%v", x)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
		prev = got
	}
}

func TestTimeFromPercentage(t *testing.T) {
	assert.InDelta(t, 30.0, TimeFromPercentage(25, 120), 1e-9)
	assert.Equal(t, 0.0, TimeFromPercentage(50, 0))
}

func TestHoverLabelOffset(t *testing.T) {
	// ((1000-27.5)/100)*50 - (100/2-12) = 486.25 - 38
	assert.InDelta(t, 448.25, HoverLabelOffset(50, 100, 1000), 1e-9)
	// Clamped on the left.
	assert.Equal(t, MinLabelOffset, HoverLabelOffset(0, 100, 1000))
	// Clamped on the right: 1000 - 100 - 17.
	assert.Equal(t, 883.0, HoverLabelOffset(100, 100, 1000))
}

func TestHoverLabelOffsetLeft(t *testing.T) {
	// ((1000-20)/100)*50
	assert.InDelta(t, 490.0, HoverLabelOffsetLeft(50, 100, 1000), 1e-9)
	assert.Equal(t, MinLabelOffset, HoverLabelOffsetLeft(0, 100, 1000))
	// 1000 - 100 - 10.
	assert.Equal(t, 890.0, HoverLabelOffsetLeft(100, 100, 1000))
}

func TestHoverLabel_NarrowViewportRightMarginWins(t *testing.T) {
	// 100 - 100 - 17 and 100 - 100 - 10.
	assert.Equal(t, -17.0, HoverLabelOffset(0, 100, 100))
	assert.Equal(t, -10.0, HoverLabelOffsetLeft(0, 100, 100))
	// 200 - 300 - 17 and 200 - 300 - 10.
	assert.Equal(t, -117.0, HoverLabelOffset(90, 300, 200))
	assert.Equal(t, -110.0, HoverLabelOffsetLeft(90, 300, 200))
}

func TestFormatTimestamp(t *testing.T) {
	tests := map[float64]string{
		0:      "0:00",
		5.9:    "0:05",
		65:     "1:05",
		3600:   "1:00:00",
		3725.2: "1:02:05",
		-3:     "0:00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatTimestamp(in), "input %v", in)
	}
}
