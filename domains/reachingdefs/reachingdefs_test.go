package reachingdefs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"absint/symbolic"
)

func TestSingleContainsOnlyItsSite(t *testing.T) {
	a, b := Site("a"), Site("b")
	s := Single(a)
	assert.True(t, s.Contains(a))
	assert.False(t, s.Contains(b))
	assert.False(t, s.IsBottom())
}

func TestEmptyIsBottom(t *testing.T) {
	assert.True(t, Empty().IsBottom())
	assert.False(t, Empty().IsTop())
}

func TestJoinIsUnion(t *testing.T) {
	a, b := Site("a"), Site("b")
	joined := Single(a).Join(Single(b)).(DefSet)
	assert.True(t, joined.Contains(a))
	assert.True(t, joined.Contains(b))
	assert.Len(t, joined.Sites(), 2)
}

func TestMeetIsIntersection(t *testing.T) {
	a, b := Site("a"), Site("b")
	both := Single(a).Join(Single(b))
	met := both.Meet(Single(a)).(DefSet)
	assert.True(t, met.Contains(a))
	assert.False(t, met.Contains(b))
}

func TestLeqIsSubsetOrder(t *testing.T) {
	a, b := Site("a"), Site("b")
	assert.True(t, Single(a).Leq(Single(a).Join(Single(b))))
	assert.False(t, Single(a).Join(Single(b)).Leq(Single(a)))
	assert.True(t, Empty().Leq(Single(a)))
}

func TestTopAbsorbsJoinAndIsLeqOnlyFromTop(t *testing.T) {
	a := Site("a")
	assert.True(t, All().IsTop())
	assert.Equal(t, All(), Single(a).Join(All()))
	assert.True(t, Single(a).Leq(All()))
	assert.False(t, All().Leq(Single(a)))
}

func TestWidenIsJoinAndNarrowIsMeet(t *testing.T) {
	a, b := Site("a"), Site("b")
	assert.Equal(t, Single(a).Join(Single(b)), Single(a).Widen(Single(b)))
	both := Single(a).Join(Single(b))
	assert.Equal(t, both.Meet(Single(a)), both.Narrow(Single(a)))
}

func TestSiteOfIsStableForSameExprIdentity(t *testing.T) {
	expr := &symbolic.Constant{Value: 1}
	assert.Equal(t, SiteOf(expr), SiteOf(expr))
}

func TestSiteOfDistinguishesDistinctExprNodes(t *testing.T) {
	a := &symbolic.Constant{Value: 1}
	b := &symbolic.Constant{Value: 1}
	assert.NotEqual(t, SiteOf(a), SiteOf(b))
}
