// Package sample turns raw engine output into typed draws: whole-range
// integers and floats, bounded ranges, and unique sequences. All helpers
// are generic over the numeric type and take any engine.
package sample

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/rayozzie/tumbler/pkg/engine"
)

// Int draws one integer covering the type's whole range by converting
// the next 64-bit value.
func Int[T constraints.Integer](e engine.Engine) T {
	return T(e.Next())
}

// Float draws one float in [0, 1] by scaling the next 64-bit value.
func Float[T constraints.Float](e engine.Engine) T {
	return T(e.Next()) * (1 / T(uint64(math.MaxUint64)))
}

// IntIn draws one integer in [min, max]. The span is reduced in uint64
// before conversion so results never leave the range. A full-width range
// falls through to the raw value. min must not exceed max.
func IntIn[T constraints.Integer](e engine.Engine, min, max T) T {
	span := uint64(max) - uint64(min) + 1
	if span == 0 {
		return T(e.Next())
	}
	return min + T(e.Next()%span)
}

// FloatIn draws one float in [min, max].
func FloatIn[T constraints.Float](e engine.Engine, min, max T) T {
	return min + T(e.Next())/T(uint64(math.MaxUint64))*(max-min)
}

// UniqueInts draws count distinct integers in [min, max], in the order
// first seen. count is capped to the range cardinality.
func UniqueInts[T constraints.Integer](e engine.Engine, min, max T, count int) []T {
	if count <= 0 {
		return nil
	}
	span := uint64(max) - uint64(min) + 1
	if span != 0 && uint64(count) > span {
		count = int(span)
	}

	out := make([]T, 0, count)
	seen := make(map[T]struct{}, count)
	for len(out) < count {
		v := IntIn(e, min, max)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// UniqueFloats draws count distinct floats in [min, max], in the order
// first seen. count is capped to the number of epsilon-sized steps the
// range holds.
func UniqueFloats[T constraints.Float](e engine.Engine, min, max T, count int) []T {
	if count <= 0 {
		return nil
	}
	limit := math.Ceil(float64((max - min) / machineEpsilon[T]()))
	if limit < float64(count) {
		count = int(limit)
	}

	out := make([]T, 0, count)
	seen := make(map[T]struct{}, count)
	for len(out) < count {
		v := FloatIn(e, min, max)
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// machineEpsilon computes the type's epsilon: the smallest value whose
// addition to 1 is still distinguishable from 1.
func machineEpsilon[T constraints.Float]() T {
	eps := T(1)
	for T(1)+eps/2 > T(1) {
		eps /= 2
	}
	return eps
}
