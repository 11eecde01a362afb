package trig

import (
	"errors"
	"math"
	"testing"
)

func TestNewRejectsBadStep(t *testing.T) {
	for _, step := range []float64{0, -0.1, math.NaN(), math.Inf(1), 7} {
		if _, err := New(step); !errors.Is(err, ErrInvalidStep) {
			t.Errorf("Expected ErrInvalidStep for step %v, got %v", step, err)
		}
	}
}

func TestTableLength(t *testing.T) {
	tbl, err := New(0.001)
	if err != nil {
		t.Fatalf("Failed to build table: %v", err)
	}

	expected := int(math.Ceil(2 * math.Pi / 0.001))
	if tbl.Len() != expected {
		t.Errorf("Expected %d samples, got %d", expected, tbl.Len())
	}
	if tbl.Step() != 0.001 {
		t.Errorf("Expected step 0.001, got %f", tbl.Step())
	}
}

// TestLookupMatchesMath checks angles outside the fallback band against the
// math package within the quantisation error of one step.
func TestLookupMatchesMath(t *testing.T) {
	tbl := Default()
	step := tbl.Step()

	for a := 0.01; a < 2*math.Pi-0.01; a += 0.037 {
		// Sin and Cos have slope at most 1, so one step bounds the error.
		if got, want := tbl.Sin(a), math.Sin(a); math.Abs(got-want) > step {
			t.Errorf("Sin(%f): expected %f, got %f", a, want, got)
		}
		if got, want := tbl.Cos(a), math.Cos(a); math.Abs(got-want) > step {
			t.Errorf("Cos(%f): expected %f, got %f", a, want, got)
		}

		// Tan is steep near the poles; bound the error by the derivative.
		slot := math.Floor(a/step) * step
		c := math.Cos(a)
		if math.Abs(c) < 0.1 {
			continue
		}
		tol := step/(c*c) + 1e-9
		if got, want := tbl.Tan(a), math.Tan(slot); math.Abs(got-want) > tol {
			t.Errorf("Tan(%f): expected %f, got %f", a, want, got)
		}
	}
}

func TestFallbackBand(t *testing.T) {
	tbl := Default()

	tests := []struct {
		name  string
		angle float64
		small float64
	}{
		{"zero", 0, 0},
		{"inside first slot", 0.0004, 0.0004},
		{"just below full turn", 2*math.Pi - 0.0002, -0.0002},
		{"negative small", -0.0003, -0.0003},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tbl.Sin(tt.angle); math.Abs(got-tt.small) > 1e-12 {
				t.Errorf("Expected Sin %g, got %g", tt.small, got)
			}
			if got := tbl.Tan(tt.angle); math.Abs(got-tt.small) > 1e-12 {
				t.Errorf("Expected Tan %g, got %g", tt.small, got)
			}
			wantCos := 1 - tt.small*tt.small/2
			if got := tbl.Cos(tt.angle); math.Abs(got-wantCos) > 1e-12 {
				t.Errorf("Expected Cos %g, got %g", wantCos, got)
			}
		})
	}
}

func TestAnglesWrap(t *testing.T) {
	tbl := Default()
	// Angles sit mid-slot so rounding in the reduction cannot change the slot.
	for _, a := range []float64{1.0005, 2.5005, 4.0005} {
		if tbl.Sin(a) != tbl.Sin(a+2*math.Pi) {
			t.Errorf("Expected Sin(%f) to equal Sin of the angle plus a full turn", a)
		}
		if tbl.Cos(a) != tbl.Cos(a-4*math.Pi) {
			t.Errorf("Expected Cos(%f) to equal Cos of the angle minus two turns", a)
		}
	}
}

func TestNonFiniteAngle(t *testing.T) {
	tbl := Default()
	if got := tbl.Sin(math.NaN()); got != 0 {
		t.Errorf("Expected Sin(NaN) to fall back to 0, got %f", got)
	}
	if got := tbl.Cos(math.Inf(1)); got != 1 {
		t.Errorf("Expected Cos(+Inf) to fall back to 1, got %f", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Normalize(%f): expected %f, got %f", tt.in, tt.want, got)
		}
	}
}
