package twobody

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestSampleDistances(t *testing.T) {
	μ := Earth.GM()
	r := 8000.0
	o1, _ := NewOrbitFromElements(μ, r, 0, 0, 0, 0, 0)
	o2, _ := NewOrbitFromElements(μ, r, 0, math.Pi, 0, math.Pi/2, 0)
	P := o1.Period()

	samples := SampleDistances(o1, o2, 0, P, 101)
	if len(samples) != 101 {
		t.Fatalf("expected 101 samples, got %d", len(samples))
	}
	if samples[0].Time != 0 || !floats.EqualWithinAbs(samples[100].Time, P, 1e-9) {
		t.Fatalf("grid does not span the window: %f..%f", samples[0].Time, samples[100].Time)
	}
	for i, s := range samples {
		if i > 0 && s.Time <= samples[i-1].Time {
			t.Fatalf("sample times not ascending at %d", i)
		}
		// the head-on geometry has a closed form distance
		n := o1.MeanMotion()
		exp := 2 * r * math.Abs(math.Sin(n*s.Time+math.Pi/4))
		if !floats.EqualWithinAbs(s.Distance, exp, 1e-3) {
			t.Fatalf("sample %d: distance %f, want %f", i, s.Distance, exp)
		}
	}
}
