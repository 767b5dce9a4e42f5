package twobody

import "math"

// Conic scalar formulas over the gravity parameter μ, the semi-latus rectum p
// and the eccentricity e. These are free functions so that the intercept
// pipeline can evaluate them without building an Orbit.

// ConicCircular returns whether a conic of the given eccentricity is circular.
func ConicCircular(e float64) bool {
	return zero(e)
}

// ConicParabolic returns whether a conic of the given eccentricity is parabolic.
func ConicParabolic(e float64) bool {
	return zero(e - 1)
}

// ConicClosed returns whether a conic of the given eccentricity is closed.
func ConicClosed(e float64) bool {
	return e < 1 && !ConicParabolic(e)
}

// ConicHyperbolic returns whether a conic of the given eccentricity is hyperbolic.
func ConicHyperbolic(e float64) bool {
	return e > 1 && !ConicParabolic(e)
}

// ConicPeriapsis returns the periapsis radius.
func ConicPeriapsis(p, e float64) float64 {
	return p / (1 + e)
}

// ConicApoapsis returns the apoapsis radius, infinite on open conics.
func ConicApoapsis(p, e float64) float64 {
	if !ConicClosed(e) {
		return math.Inf(1)
	}
	return p / (1 - e)
}

// ConicSemiMajorAxis returns the semi major axis, negative on hyperbolas and
// infinite on parabolas.
func ConicSemiMajorAxis(p, e float64) float64 {
	if ConicParabolic(e) {
		return math.Inf(1)
	}
	return p / (1 - e*e)
}

// ConicMeanMotion returns the mean motion n such that M = n·(t - t_pe).
// The parabolic convention is Barker's equation with M = D + D³/3.
func ConicMeanMotion(μ, p, e float64) float64 {
	if ConicParabolic(e) {
		return 2 * math.Sqrt(μ/(p*p*p))
	}
	k := math.Abs(1 - e*e)
	return math.Sqrt(μ * k * k * k / (p * p * p))
}

// ConicPeriod returns the orbital period, infinite on open conics.
func ConicPeriod(μ, p, e float64) float64 {
	if !ConicClosed(e) {
		return math.Inf(1)
	}
	return 2 * math.Pi / ConicMeanMotion(μ, p, e)
}

// ConicPeriapsisVelocity returns the speed at periapsis.
func ConicPeriapsisVelocity(μ, p, e float64) float64 {
	return math.Sqrt(μ/p) * (1 + e)
}

// ConicMaxTrueAnomaly returns the largest attainable true anomaly, which is
// π for closed and parabolic conics and the asymptote angle for hyperbolas.
func ConicMaxTrueAnomaly(e float64) float64 {
	if ConicHyperbolic(e) {
		return math.Acos(-1 / e)
	}
	return math.Pi
}
