package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinIsConvexHull(t *testing.T) {
	got := Range(1, 3).Join(Range(10, 12))
	assert.Equal(t, Range(1, 12), got)
}

func TestMeetNarrowsToOverlap(t *testing.T) {
	got := Range(1, 10).Meet(Range(5, 20))
	assert.Equal(t, Range(5, 10), got)
}

func TestMeetOfDisjointRangesIsBottom(t *testing.T) {
	got := Range(1, 2).Meet(Range(5, 6))
	assert.True(t, got.(Interval).IsBottom())
}

func TestWidenJumpsMovingBoundToInfinity(t *testing.T) {
	a := Range(0, 0)
	b := a.Widen(Range(0, 1)).(Interval)
	assert.Equal(t, AtLeast(0), b)
}

func TestWidenThenNarrowRecoversTighterUpperBound(t *testing.T) {
	widened := AtLeast(0)
	narrowed := widened.Narrow(Range(0, 999)).(Interval)
	assert.Equal(t, Range(0, 999), narrowed)
}

func TestAddOfPositiveRangesIsSound(t *testing.T) {
	got := Range(1, 5).Add(Range(10, 10))
	assert.Equal(t, Range(11, 15), got)
}

func TestMulClampsAtInfinity(t *testing.T) {
	got := AtLeast(1).Mul(AtLeast(1))
	assert.Equal(t, AtLeast(1), got)
}

func TestLeqIsIntervalContainment(t *testing.T) {
	assert.True(t, Range(2, 3).Leq(Range(0, 10)))
	assert.False(t, Range(0, 10).Leq(Range(2, 3)))
}
