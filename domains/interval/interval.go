// Package interval is a reference value domain implementing classic
// interval arithmetic with widening/narrowing at infinity (spec §8,
// scenarios S5 cross-check and S6 recursive factorial), the domain the
// spec names explicitly for proving the interprocedural driver
// terminates on recursion.
package interval

import (
	"fmt"
	"math/big"

	"absint/lattice"
)

// infHi/infLo stand in for +∞/-∞. Chosen so that infHi+infHi and
// infLo+infLo both still fit in int64 (addition never needs
// saturating bignum arithmetic; multiplication does).
const (
	infHi int64 = 1<<62 - 1
	infLo int64 = -infHi
)

// Interval is a closed integer interval [lo, hi], or bottom.
type Interval struct {
	bottom bool
	lo, hi int64
}

// BottomInterval is the empty interval (unreachable).
func BottomInterval() Interval { return Interval{bottom: true} }

// Top is (-∞, +∞).
func Top() Interval { return Interval{lo: infLo, hi: infHi} }

// Of is the singleton interval [v, v].
func Of(v int64) Interval { return Interval{lo: v, hi: v} }

// Range is the interval [lo, hi], or Bottom if lo > hi.
func Range(lo, hi int64) Interval {
	if lo > hi {
		return BottomInterval()
	}
	return Interval{lo: lo, hi: hi}
}

// AtLeast is [v, +∞).
func AtLeast(v int64) Interval { return Interval{lo: v, hi: infHi} }

// AtMost is (-∞, v].
func AtMost(v int64) Interval { return Interval{lo: infLo, hi: v} }

func (i Interval) IsBottom() bool { return i.bottom }
func (i Interval) IsTop() bool    { return !i.bottom && i.lo <= infLo && i.hi >= infHi }

// Bounds returns (lo, hi, ok); ok is false for Bottom.
func (i Interval) Bounds() (int64, int64, bool) {
	return i.lo, i.hi, !i.bottom
}

func (i Interval) Leq(o lattice.Element) bool {
	other := o.(Interval)
	if i.bottom {
		return true
	}
	if other.bottom {
		return false
	}
	return i.lo >= other.lo && i.hi <= other.hi
}

func (i Interval) Equal(o lattice.Element) bool {
	other := o.(Interval)
	if i.bottom || other.bottom {
		return i.bottom == other.bottom
	}
	return i.lo == other.lo && i.hi == other.hi
}

func (i Interval) Join(o lattice.Element) lattice.Element {
	other := o.(Interval)
	if i.bottom {
		return other
	}
	if other.bottom {
		return i
	}
	return Interval{lo: minI64(i.lo, other.lo), hi: maxI64(i.hi, other.hi)}
}

func (i Interval) Meet(o lattice.Element) lattice.Element {
	other := o.(Interval)
	if i.bottom || other.bottom {
		return BottomInterval()
	}
	return Range(maxI64(i.lo, other.lo), minI64(i.hi, other.hi))
}

// Widen implements the classic bounds-to-infinity widening (spec §4.2,
// "Widen must guarantee ascending-chain termination"): a bound that
// moved outward jumps straight to infinity.
func (i Interval) Widen(o lattice.Element) lattice.Element {
	other := o.(Interval)
	if i.bottom {
		return other
	}
	if other.bottom {
		return i
	}
	lo := i.lo
	if other.lo < i.lo {
		lo = infLo
	}
	hi := i.hi
	if other.hi > i.hi {
		hi = infHi
	}
	return Interval{lo: lo, hi: hi}
}

// Narrow only tightens a bound that is currently infinite (spec §9,
// Open Question (b): the descending phase is bounded by
// cfg.Config.NarrowingSteps, so narrowing here is a single-step
// tightening rather than a full re-solve).
func (i Interval) Narrow(o lattice.Element) lattice.Element {
	other := o.(Interval)
	if i.bottom || other.bottom {
		return BottomInterval()
	}
	lo := i.lo
	if i.lo == infLo {
		lo = other.lo
	}
	hi := i.hi
	if i.hi == infHi {
		hi = other.hi
	}
	return Interval{lo: lo, hi: hi}
}

func (i Interval) Negate() Interval {
	if i.bottom {
		return i
	}
	return Interval{lo: -i.hi, hi: -i.lo}
}

func (i Interval) Add(o Interval) Interval {
	if i.bottom || o.bottom {
		return BottomInterval()
	}
	return Interval{lo: clampAdd(i.lo, o.lo), hi: clampAdd(i.hi, o.hi)}
}

func (i Interval) Sub(o Interval) Interval { return i.Add(o.Negate()) }

func (i Interval) Mul(o Interval) Interval {
	if i.bottom || o.bottom {
		return BottomInterval()
	}
	products := [4]int64{
		clampMul(i.lo, o.lo), clampMul(i.lo, o.hi),
		clampMul(i.hi, o.lo), clampMul(i.hi, o.hi),
	}
	lo, hi := products[0], products[0]
	for _, p := range products[1:] {
		lo, hi = minI64(lo, p), maxI64(hi, p)
	}
	return Interval{lo: lo, hi: hi}
}

func clampAdd(a, b int64) int64 {
	sum := a + b
	return clampI64(sum)
}

func clampMul(a, b int64) int64 {
	x := new(big.Int).Mul(big.NewInt(a), big.NewInt(b))
	if x.Cmp(big.NewInt(infLo)) <= 0 {
		return infLo
	}
	if x.Cmp(big.NewInt(infHi)) >= 0 {
		return infHi
	}
	return x.Int64()
}

func clampI64(v int64) int64 {
	if v <= infLo {
		return infLo
	}
	if v >= infHi {
		return infHi
	}
	return v
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func (i Interval) String() string {
	if i.bottom {
		return "⊥"
	}
	lo, hi := "-∞", "+∞"
	if i.lo > infLo {
		lo = fmt.Sprintf("%d", i.lo)
	}
	if i.hi < infHi {
		hi = fmt.Sprintf("%d", i.hi)
	}
	return fmt.Sprintf("[%s, %s]", lo, hi)
}
