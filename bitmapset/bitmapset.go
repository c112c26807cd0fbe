// Package bitmapset provides attribute-number sets backing the planner
// scaffolding identities of §8 (bms_equal, bms_union, bms_intersect, ...).
// attno 0 (the synthetic rowid) is a valid member like any other.
package bitmapset

import "github.com/RoaringBitmap/roaring/v2"

// Set is an immutable-by-convention attribute-number set: every operation
// below returns a new Set rather than mutating its receiver, matching the
// bms_* functions it is grounded on (each of which returns a possibly-new
// Bitmapset rather than mutating in place).
type Set struct {
	bits *roaring.Bitmap
}

// Empty returns the empty set.
func Empty() Set {
	return Set{bits: roaring.New()}
}

// Of builds a Set containing exactly the given attribute numbers.
func Of(attnos ...int) Set {
	s := Empty()
	for _, a := range attnos {
		s.bits.Add(uint32(a))
	}
	return s
}

// Copy returns an independent copy of s.
func (s Set) Copy() Set {
	return Set{bits: s.bits.Clone()}
}

// Add returns s with attno added.
func (s Set) Add(attno int) Set {
	cp := s.Copy()
	cp.bits.Add(uint32(attno))
	return cp
}

// IsMember reports whether attno is in s.
func (s Set) IsMember(attno int) bool {
	return s.bits.Contains(uint32(attno))
}

// IsEmpty reports whether s has no members.
func (s Set) IsEmpty() bool {
	return s.bits.IsEmpty()
}

// Equal reports whether s and other have exactly the same members.
func (s Set) Equal(other Set) bool {
	return s.bits.Equals(other.bits)
}

// Union returns the union of s and other.
func (s Set) Union(other Set) Set {
	return Set{bits: roaring.Or(s.bits, other.bits)}
}

// Intersect returns the intersection of s and other.
func (s Set) Intersect(other Set) Set {
	return Set{bits: roaring.And(s.bits, other.bits)}
}

// IsSubset reports whether every member of s is also a member of other.
func (s Set) IsSubset(other Set) bool {
	return s.Intersect(other).Equal(s)
}

// Overlap reports whether s and other share at least one member.
func (s Set) Overlap(other Set) bool {
	return !s.Intersect(other).IsEmpty()
}

// Len returns the cardinality of s.
func (s Set) Len() int {
	return int(s.bits.GetCardinality())
}

// ToSlice returns the sorted member attribute numbers of s.
func (s Set) ToSlice() []int {
	vals := s.bits.ToArray()
	out := make([]int, len(vals))
	for i, v := range vals {
		out[i] = int(v)
	}
	return out
}
