package twobody

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestNormUnit(t *testing.T) {
	v := []float64{3, 4, 0}
	if !floats.EqualWithinAbs(norm(v), 5, 1e-12) {
		t.Fatalf("norm([3 4 0]) != 5")
	}
	u := unit(v)
	if !floats.EqualWithinAbs(norm(u), 1, 1e-12) {
		t.Fatalf("unit vector does not have unit norm")
	}
	z := unit([]float64{0, 0, 0})
	if norm(z) != 0 {
		t.Fatalf("unit of null vector should be null")
	}
}

func TestCrossDot(t *testing.T) {
	i := []float64{1, 0, 0}
	j := []float64{0, 1, 0}
	k := cross(i, j)
	if !floats.EqualWithinAbs(k[2], 1, 1e-12) || k[0] != 0 || k[1] != 0 {
		t.Fatalf("i x j != k (got %+v)", k)
	}
	if dot(i, j) != 0 {
		t.Fatalf("i . j != 0")
	}
	if !floats.EqualWithinAbs(dot(k, k), 1, 1e-12) {
		t.Fatalf("k . k != 1")
	}
}

func TestSignClamp(t *testing.T) {
	if sign(-0.1) != -1 || sign(0.1) != 1 || sign(0) != 1 {
		t.Fatalf("sign is broken")
	}
	if clamp(-1, 1, 5) != 1 || clamp(-1, 1, -5) != -1 || clamp(-1, 1, 0.5) != 0.5 {
		t.Fatalf("clamp is broken")
	}
}

func TestZeroPredicate(t *testing.T) {
	if !zero(0) || !zero(1e-9) {
		t.Fatalf("zero should accept tiny values")
	}
	if zero(1e-7) || zero(1) {
		t.Fatalf("zero should reject large values")
	}
	if !eqf(math.Pi, math.Pi+1e-12) {
		t.Fatalf("eqf should tolerate roundoff")
	}
}

func TestAngleConversions(t *testing.T) {
	if !floats.EqualWithinAbs(Deg2rad(180), math.Pi, 1e-12) {
		t.Fatalf("Deg2rad(180) != π")
	}
	if !floats.EqualWithinAbs(Rad2deg(math.Pi/2), 90, 1e-12) {
		t.Fatalf("Rad2deg(π/2) != 90")
	}
	if !floats.EqualWithinAbs(Deg2rad(-90), 3*math.Pi/2, 1e-12) {
		t.Fatalf("Deg2rad should wrap negatives")
	}
}

func TestWrapAngle(t *testing.T) {
	for _, x := range []float64{-10, -math.Pi, 0, 1, math.Pi, 10, 123.456} {
		w := wrapAngle(x)
		if w <= -math.Pi || w > math.Pi {
			t.Fatalf("wrapAngle(%f) = %f out of (-π..π]", x, w)
		}
		if !floats.EqualWithinAbs(math.Sin(w), math.Sin(x), 1e-12) ||
			!floats.EqualWithinAbs(math.Cos(w), math.Cos(x), 1e-12) {
			t.Fatalf("wrapAngle(%f) = %f is not the same angle", x, w)
		}
	}
}
