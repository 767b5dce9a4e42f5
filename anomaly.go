package twobody

import "math"

// Anomaly conversions for the three conic families. The eccentric anomaly
// convention follows the conic class: E on ellipses, D = tan(f/2) on
// parabolas (Barker), and H on hyperbolas.

const (
	keplerMaxIter = 50
	keplerε       = 1e-14
)

// TrueToEccentric converts true anomaly to eccentric anomaly.
func TrueToEccentric(e, f float64) float64 {
	if ConicParabolic(e) {
		return math.Tan(f / 2)
	}
	if ConicHyperbolic(e) {
		x := clamp(-1, 1, math.Sqrt((e-1)/(e+1))*math.Tan(f/2))
		return 2 * math.Atanh(x)
	}
	return 2 * math.Atan(math.Sqrt((1-e)/(1+e))*math.Tan(f/2))
}

// EccentricToTrue converts eccentric anomaly to true anomaly.
func EccentricToTrue(e, E float64) float64 {
	if ConicParabolic(e) {
		return 2 * math.Atan(E)
	}
	if ConicHyperbolic(e) {
		return 2 * math.Atan(math.Sqrt((e+1)/(e-1))*math.Tanh(E/2))
	}
	return 2 * math.Atan(math.Sqrt((1+e)/(1-e))*math.Tan(E/2))
}

// EccentricToMean converts eccentric anomaly to mean anomaly.
func EccentricToMean(e, E float64) float64 {
	if ConicParabolic(e) {
		return E + E*E*E/3
	}
	if ConicHyperbolic(e) {
		return e*math.Sinh(E) - E
	}
	return E - e*math.Sin(E)
}

// MeanToEccentric solves the Kepler equation of the conic family for the
// eccentric anomaly. On ellipses the mean anomaly is reduced to (-π..π] first,
// so the result is the eccentric anomaly on the current revolution.
func MeanToEccentric(e, M float64) float64 {
	if ConicParabolic(e) {
		// Barker's equation has the closed form solution of a depressed cubic.
		A := 3 * M / 2
		z := math.Cbrt(A + math.Sqrt(A*A+1))
		return z - 1/z
	}
	if ConicHyperbolic(e) {
		H := math.Asinh(M / e)
		for i := 0; i < keplerMaxIter; i++ {
			δ := (e*math.Sinh(H) - H - M) / (e*math.Cosh(H) - 1)
			H -= δ
			if math.Abs(δ) < keplerε {
				break
			}
		}
		return H
	}
	M = wrapAngle(M)
	E := M
	if e > 0.8 {
		E = math.Pi * sign(M)
	}
	for i := 0; i < keplerMaxIter; i++ {
		δ := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= δ
		if math.Abs(δ) < keplerε {
			break
		}
	}
	return E
}

// TrueToMean converts true anomaly to mean anomaly.
func TrueToMean(e, f float64) float64 {
	return EccentricToMean(e, TrueToEccentric(e, f))
}

// MeanToTrue converts mean anomaly to true anomaly.
func MeanToTrue(e, M float64) float64 {
	return EccentricToTrue(e, MeanToEccentric(e, M))
}

// RadiusFromTrue returns the orbit radius at the given true anomaly.
func RadiusFromTrue(p, e, f float64) float64 {
	return p / (1 + e*math.Cos(f))
}

// RadiusFromEccentric returns the orbit radius at the given eccentric anomaly.
func RadiusFromEccentric(p, e, E float64) float64 {
	if ConicParabolic(e) {
		return (p / 2) * (1 + E*E)
	}
	a := ConicSemiMajorAxis(p, e)
	if ConicHyperbolic(e) {
		return a * (1 - e*math.Cosh(E))
	}
	return a * (1 - e*math.Cos(E))
}

// TrueFromRadius returns the positive true anomaly at which the conic reaches
// the given radius. Unattainable radii saturate at 0 (below periapsis) or at
// the maximum true anomaly (above apoapsis).
func TrueFromRadius(p, e, r float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Acos(clamp(-1, 1, (p/r-1)/e))
}

// RadialSpeed returns the radial velocity component at true anomaly f.
func RadialSpeed(μ, p, e, f float64) float64 {
	return math.Sqrt(μ/p) * e * math.Sin(f)
}

// HorizontalSpeed returns the horizontal velocity component at true anomaly f.
func HorizontalSpeed(μ, p, e, f float64) float64 {
	return math.Sqrt(μ/p) * (1 + e*math.Cos(f))
}

// wrapAngle reduces an angle to (-π..π].
func wrapAngle(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x <= 0 {
		x += 2 * math.Pi
	}
	return x - math.Pi
}
