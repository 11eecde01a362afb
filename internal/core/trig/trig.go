// Package trig provides a precomputed trigonometric lookup table for the
// angle-heavy inner loops of the ray caster.
package trig

import (
	"errors"
	"math"
)

// DefaultStep is the angular resolution of the default table (radians).
const DefaultStep = 0.001

// FullTurn is one full rotation in radians.
const FullTurn = 2 * math.Pi

// ErrInvalidStep is returned when a table is requested with a step that is not
// a positive, finite number smaller than a full turn.
var ErrInvalidStep = errors.New("trig: step must be positive, finite and less than a full turn")

// Table holds sine, cosine and tangent values sampled every Step radians over
// one full turn. A Table is immutable once built and safe to share.
type Table struct {
	step float64
	sin  []float64
	cos  []float64
	tan  []float64
}

// New builds a table sampled at the given angular step.
func New(step float64) (*Table, error) {
	if !(step > 0) || math.IsInf(step, 0) || step >= FullTurn {
		return nil, ErrInvalidStep
	}

	n := int(math.Ceil(FullTurn / step))
	t := &Table{
		step: step,
		sin:  make([]float64, n),
		cos:  make([]float64, n),
		tan:  make([]float64, n),
	}

	for i := 0; i < n; i++ {
		a := float64(i) * step
		t.sin[i] = math.Sin(a)
		t.cos[i] = math.Cos(a)
		t.tan[i] = math.Tan(a)
	}

	return t, nil
}

// Default returns a table built with DefaultStep.
func Default() *Table {
	t, _ := New(DefaultStep)
	return t
}

// Step returns the angular resolution of the table.
func (t *Table) Step() float64 { return t.step }

// Len returns the number of samples per lookup sequence.
func (t *Table) Len() int { return len(t.sin) }

// Sin returns an approximation of sin(a).
func (t *Table) Sin(a float64) float64 {
	i, small, ok := t.index(a)
	if !ok {
		return small
	}
	return t.sin[i]
}

// Cos returns an approximation of cos(a).
func (t *Table) Cos(a float64) float64 {
	i, small, ok := t.index(a)
	if !ok {
		return 1 - small*small/2
	}
	return t.cos[i]
}

// Tan returns an approximation of tan(a).
func (t *Table) Tan(a float64) float64 {
	i, small, ok := t.index(a)
	if !ok {
		return small
	}
	return t.tan[i]
}

// index reduces a to [0, 2π) and maps it to a table slot. When the angle sits in
// the first slot, or in the partial slot just below a full turn, ok is false and
// small holds the angle as a signed offset from zero for the analytic fallback.
func (t *Table) index(a float64) (i int, small float64, ok bool) {
	a = Normalize(a)
	if math.IsNaN(a) {
		return 0, 0, false
	}
	if a < t.step {
		return 0, a, false
	}
	if FullTurn-a < t.step {
		return 0, a - FullTurn, false
	}

	i = int(a / t.step)
	if i >= len(t.sin) {
		i = len(t.sin) - 1
	}
	return i, 0, true
}

// Normalize reduces an angle to [0, 2π).
func Normalize(a float64) float64 {
	a = math.Mod(a, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	if a >= FullTurn {
		a = 0
	}
	return a
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}
