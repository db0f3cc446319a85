// Package sign is a reference value domain implementing the classic
// sign-set abstraction over integers (spec §8, scenario S2), used to
// exercise a domain whose Assume actually refines state (unlike
// constprop's identity Assume).
package sign

import (
	"strings"

	"absint/lattice"
)

// Sign is a non-empty-or-bottom subset of {negative, zero, positive},
// represented as a 3-bit mask (spec §3, generalizing "Constant" to a
// set-valued abstraction). Bottom is the empty mask; Top is the full
// mask.
type Sign struct {
	mask uint8
}

const (
	negBit uint8 = 1 << iota
	zeroBit
	posBit
	fullMask = negBit | zeroBit | posBit
)

// BottomSign is the empty sign set (unreachable).
func BottomSign() Sign { return Sign{mask: 0} }

// Top is "any integer".
func Top() Sign { return Sign{mask: fullMask} }

// Negative, Zero, Positive are the three primitive signs.
func Negative() Sign { return Sign{mask: negBit} }
func Zero() Sign     { return Sign{mask: zeroBit} }
func Positive() Sign { return Sign{mask: posBit} }

// NonNegative, NonPositive, NonZero are the three two-bit unions,
// produced by joins that can't be represented as a single primitive
// sign.
func NonNegative() Sign { return Sign{mask: zeroBit | posBit} }
func NonPositive() Sign { return Sign{mask: negBit | zeroBit} }
func NonZero() Sign     { return Sign{mask: negBit | posBit} }

// Of classifies a known integer constant into its primitive sign.
func Of(v int) Sign {
	switch {
	case v < 0:
		return Negative()
	case v > 0:
		return Positive()
	default:
		return Zero()
	}
}

func (s Sign) IsBottom() bool { return s.mask == 0 }
func (s Sign) IsTop() bool    { return s.mask == fullMask }

func (s Sign) Leq(o lattice.Element) bool {
	other := o.(Sign)
	return s.mask&^other.mask == 0
}

func (s Sign) Equal(o lattice.Element) bool { return s.mask == o.(Sign).mask }

func (s Sign) Join(o lattice.Element) lattice.Element {
	return Sign{mask: s.mask | o.(Sign).mask}
}

func (s Sign) Meet(o lattice.Element) lattice.Element {
	return Sign{mask: s.mask & o.(Sign).mask}
}

// Widen is Join: the lattice has height 4 (bottom, single bit, double
// bit, top), so plain Join already terminates in at most 3 steps.
func (s Sign) Widen(o lattice.Element) lattice.Element { return s.Join(o) }

func (s Sign) Narrow(o lattice.Element) lattice.Element {
	other := o.(Sign)
	if other.Leq(s) {
		return other
	}
	return s
}

// Negate returns the sign of the negation of every value in s.
func (s Sign) Negate() Sign {
	var out uint8
	if s.mask&negBit != 0 {
		out |= posBit
	}
	if s.mask&zeroBit != 0 {
		out |= zeroBit
	}
	if s.mask&posBit != 0 {
		out |= negBit
	}
	return Sign{mask: out}
}

func (s Sign) Add(o Sign) Sign {
	if s.IsBottom() || o.IsBottom() {
		return BottomSign()
	}
	var out uint8
	for _, a := range s.primitives() {
		for _, b := range o.primitives() {
			out |= addTable[a][b]
		}
	}
	return Sign{mask: out}
}

func (s Sign) Sub(o Sign) Sign { return s.Add(o.Negate()) }

func (s Sign) Mul(o Sign) Sign {
	if s.IsBottom() || o.IsBottom() {
		return BottomSign()
	}
	var out uint8
	for _, a := range s.primitives() {
		for _, b := range o.primitives() {
			out |= mulTable[a][b]
		}
	}
	return Sign{mask: out}
}

// primitives returns the indices (0=neg,1=zero,2=pos) set in the mask.
func (s Sign) primitives() []int {
	var out []int
	if s.mask&negBit != 0 {
		out = append(out, 0)
	}
	if s.mask&zeroBit != 0 {
		out = append(out, 1)
	}
	if s.mask&posBit != 0 {
		out = append(out, 2)
	}
	return out
}

var addTable = [3][3]uint8{
	// neg       zero      pos
	{negBit, negBit, fullMask}, // neg + _
	{negBit, zeroBit, posBit},  // zero + _
	{fullMask, posBit, posBit}, // pos + _
}

var mulTable = [3][3]uint8{
	{posBit, zeroBit, negBit},
	{zeroBit, zeroBit, zeroBit},
	{negBit, zeroBit, posBit},
}

func (s Sign) String() string {
	if s.IsBottom() {
		return "⊥"
	}
	if s.IsTop() {
		return "⊤"
	}
	var parts []string
	if s.mask&negBit != 0 {
		parts = append(parts, "-")
	}
	if s.mask&zeroBit != 0 {
		parts = append(parts, "0")
	}
	if s.mask&posBit != 0 {
		parts = append(parts, "+")
	}
	return strings.Join(parts, "|")
}
