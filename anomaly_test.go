package twobody

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestAnomalyRoundTripElliptic(t *testing.T) {
	for _, e := range []float64{0, 0.1, 0.5, 0.9, 0.99} {
		for f := -3.0; f <= 3.0; f += 0.25 {
			E := TrueToEccentric(e, f)
			if !floats.EqualWithinAbs(EccentricToTrue(e, E), f, 1e-9) {
				t.Fatalf("e=%f f=%f: true->eccentric->true failed", e, f)
			}
			M := EccentricToMean(e, E)
			if !floats.EqualWithinAbs(MeanToEccentric(e, M), E, 1e-9) {
				t.Fatalf("e=%f f=%f: Kepler solver failed", e, f)
			}
			if !floats.EqualWithinAbs(MeanToTrue(e, TrueToMean(e, f)), f, 1e-9) {
				t.Fatalf("e=%f f=%f: true->mean->true failed", e, f)
			}
		}
	}
}

func TestAnomalyRoundTripHyperbolic(t *testing.T) {
	for _, e := range []float64{1.1, 1.5, 3} {
		maxf := ConicMaxTrueAnomaly(e)
		for _, frac := range []float64{-0.9, -0.5, -0.1, 0, 0.1, 0.5, 0.9} {
			f := frac * maxf
			H := TrueToEccentric(e, f)
			if !floats.EqualWithinAbs(EccentricToTrue(e, H), f, 1e-9) {
				t.Fatalf("e=%f f=%f: true->eccentric->true failed", e, f)
			}
			M := EccentricToMean(e, H)
			if !floats.EqualWithinAbs(MeanToEccentric(e, M), H, 1e-8) {
				t.Fatalf("e=%f f=%f: hyperbolic Kepler solver failed", e, f)
			}
		}
	}
}

func TestAnomalyRoundTripParabolic(t *testing.T) {
	e := 1.0
	for f := -2.5; f <= 2.5; f += 0.25 {
		D := TrueToEccentric(e, f)
		if !floats.EqualWithinAbs(D, math.Tan(f/2), 1e-12) {
			t.Fatalf("parabolic eccentric anomaly should be tan(f/2)")
		}
		M := EccentricToMean(e, D)
		if !floats.EqualWithinAbs(M, D+D*D*D/3, 1e-12) {
			t.Fatalf("Barker mean anomaly wrong")
		}
		// Barker's equation has a closed form solution
		if !floats.EqualWithinAbs(MeanToEccentric(e, M), D, 1e-9) {
			t.Fatalf("Barker solution failed at f=%f", f)
		}
	}
}

func TestKeplerLargeMeanAnomaly(t *testing.T) {
	// many revolutions ahead: the solver reduces to the current revolution
	e := 0.3
	E := 1.2
	M := EccentricToMean(e, E)
	for _, k := range []float64{-3, -1, 1, 5} {
		got := MeanToEccentric(e, M+k*2*math.Pi)
		if !floats.EqualWithinAbs(got, E, 1e-9) {
			t.Fatalf("k=%f: expected E=%f got %f", k, E, got)
		}
	}
}

func TestRadiusFromAnomalies(t *testing.T) {
	μ := 1e5
	for _, e := range []float64{0, 0.4, 1, 1.8} {
		p := 42.0
		for _, f := range []float64{-1, 0, 0.5, 1.2} {
			if f >= ConicMaxTrueAnomaly(e) {
				continue
			}
			r := RadiusFromTrue(p, e, f)
			E := TrueToEccentric(e, f)
			if !floats.EqualWithinRel(RadiusFromEccentric(p, e, E), r, 1e-9) {
				t.Fatalf("e=%f f=%f: radius formulas disagree", e, f)
			}
			// vis-viva cross-check of the velocity components
			vr, vh := RadialSpeed(μ, p, e, f), HorizontalSpeed(μ, p, e, f)
			v2 := vr*vr + vh*vh
			ξ := v2/2 - μ/r
			if ConicParabolic(e) {
				if !floats.EqualWithinAbs(ξ/(μ/p), 0, 1e-9) {
					t.Fatalf("parabolic energy should be zero")
				}
			} else {
				a := ConicSemiMajorAxis(p, e)
				if !floats.EqualWithinRel(ξ, -μ/(2*a), 1e-9) {
					t.Fatalf("e=%f f=%f: vis-viva violated", e, f)
				}
			}
		}
	}
}

func TestTrueFromRadius(t *testing.T) {
	p, e := 10.0, 0.5
	pe, ap := ConicPeriapsis(p, e), ConicApoapsis(p, e)
	for _, r := range []float64{pe + 0.1, p, ap - 0.1} {
		f := TrueFromRadius(p, e, r)
		if f < 0 || f > math.Pi {
			t.Fatalf("true anomaly from radius out of [0,π]")
		}
		if !floats.EqualWithinRel(RadiusFromTrue(p, e, f), r, 1e-9) {
			t.Fatalf("radius->anomaly->radius failed for r=%f", r)
		}
	}
	// unattainable radii saturate
	if TrueFromRadius(p, e, pe/2) != 0 {
		t.Fatalf("radius below periapsis should saturate at 0")
	}
	if !floats.EqualWithinAbs(TrueFromRadius(p, e, ap*2), math.Pi, 1e-12) {
		t.Fatalf("radius above apoapsis should saturate at π")
	}
	if TrueFromRadius(p, e, -1) != 0 {
		t.Fatalf("negative radius should saturate at 0")
	}
}
