package twobody

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonum/floats"
)

// Orbit is an immutable descriptor of a Keplerian trajectory: the gravity
// parameter, the conic shape, the periapsis epoch and an orthonormal
// orientation triad. The major axis points towards periapsis and the normal
// axis is along the angular momentum.
type Orbit struct {
	μ, p, e    float64
	tPeriapsis float64
	majorAxis  []float64
	minorAxis  []float64
	normalAxis []float64
}

// GravityParameter returns μ.
func (o Orbit) GravityParameter() float64 {
	return o.μ
}

// SemiLatusRectum returns the semi-latus rectum p.
func (o Orbit) SemiLatusRectum() float64 {
	return o.p
}

// Eccentricity returns the eccentricity e.
func (o Orbit) Eccentricity() float64 {
	return o.e
}

// PeriapsisTime returns the epoch of periapsis passage.
func (o Orbit) PeriapsisTime() float64 {
	return o.tPeriapsis
}

// MajorAxis returns the unit vector towards periapsis.
func (o Orbit) MajorAxis() []float64 {
	return o.majorAxis
}

// MinorAxis returns the in-plane unit vector normal to the major axis.
func (o Orbit) MinorAxis() []float64 {
	return o.minorAxis
}

// NormalAxis returns the unit vector along the angular momentum.
func (o Orbit) NormalAxis() []float64 {
	return o.normalAxis
}

// Circular returns whether this orbit is circular.
func (o Orbit) Circular() bool {
	return ConicCircular(o.e)
}

// Closed returns whether this orbit is closed (circular or elliptic).
func (o Orbit) Closed() bool {
	return ConicClosed(o.e)
}

// Parabolic returns whether this orbit is parabolic.
func (o Orbit) Parabolic() bool {
	return ConicParabolic(o.e)
}

// Hyperbolic returns whether this orbit is hyperbolic.
func (o Orbit) Hyperbolic() bool {
	return ConicHyperbolic(o.e)
}

// Radial returns whether this orbit carries no angular momentum. Radial
// orbits are rejected by the intercept pipeline.
func (o Orbit) Radial() bool {
	return zero(o.p)
}

// Periapsis returns the periapsis radius.
func (o Orbit) Periapsis() float64 {
	return ConicPeriapsis(o.p, o.e)
}

// Apoapsis returns the apoapsis radius, infinite on open orbits.
func (o Orbit) Apoapsis() float64 {
	return ConicApoapsis(o.p, o.e)
}

// MeanMotion returns the mean motion n.
func (o Orbit) MeanMotion() float64 {
	return ConicMeanMotion(o.μ, o.p, o.e)
}

// Period returns the orbital period, infinite on open orbits.
func (o Orbit) Period() float64 {
	return ConicPeriod(o.μ, o.p, o.e)
}

// PositionAtEccentric returns the inertial position at eccentric anomaly E.
func (o Orbit) PositionAtEccentric(E float64) []float64 {
	x, y := o.planePosition(E)
	return o.fromPlane(x, y)
}

// VelocityAtEccentric returns the inertial velocity at eccentric anomaly E.
func (o Orbit) VelocityAtEccentric(E float64) []float64 {
	n := o.MeanMotion()
	var vx, vy float64
	switch {
	case o.Parabolic():
		dE := n / (1 + E*E)
		vx = -o.p * E * dE
		vy = o.p * dE
	case o.Hyperbolic():
		a := ConicSemiMajorAxis(o.p, o.e)
		dE := n / (o.e*math.Cosh(E) - 1)
		vx = a * math.Sinh(E) * dE
		vy = -a * math.Sqrt(o.e*o.e-1) * math.Cosh(E) * dE
	default:
		a := ConicSemiMajorAxis(o.p, o.e)
		dE := n / (1 - o.e*math.Cos(E))
		vx = -a * math.Sin(E) * dE
		vy = a * math.Sqrt(1-o.e*o.e) * math.Cos(E) * dE
	}
	return o.fromPlane(vx, vy)
}

// PositionAtTrue returns the inertial position at true anomaly f.
func (o Orbit) PositionAtTrue(f float64) []float64 {
	r := RadiusFromTrue(o.p, o.e, f)
	sf, cf := math.Sincos(f)
	return o.fromPlane(r*cf, r*sf)
}

// EccentricAtTime returns the eccentric anomaly at the given epoch.
func (o Orbit) EccentricAtTime(t float64) float64 {
	return MeanToEccentric(o.e, (t-o.tPeriapsis)*o.MeanMotion())
}

// planePosition returns the position in the orbital plane at eccentric
// anomaly E, with x along the major axis.
func (o Orbit) planePosition(E float64) (x, y float64) {
	switch {
	case o.Parabolic():
		x = (o.p / 2) * (1 - E*E)
		y = o.p * E
	case o.Hyperbolic():
		a := ConicSemiMajorAxis(o.p, o.e)
		x = a * (math.Cosh(E) - o.e)
		y = -a * math.Sqrt(o.e*o.e-1) * math.Sinh(E)
	default:
		a := ConicSemiMajorAxis(o.p, o.e)
		x = a * (math.Cos(E) - o.e)
		y = a * math.Sqrt(1-o.e*o.e) * math.Sin(E)
	}
	return
}

func (o Orbit) fromPlane(x, y float64) []float64 {
	return []float64{
		x*o.majorAxis[0] + y*o.minorAxis[0],
		x*o.majorAxis[1] + y*o.minorAxis[1],
		x*o.majorAxis[2] + y*o.minorAxis[2],
	}
}

// String implements the stringer interface (hence the value receiver)
func (o Orbit) String() string {
	return fmt.Sprintf("μ=%.1f p=%.1f e=%.4f tPe=%.3f", o.μ, o.p, o.e, o.tPeriapsis)
}

// Equals returns whether two orbits describe the same conic with the same
// orientation and periapsis epoch.
func (o Orbit) Equals(o1 Orbit) (bool, error) {
	if !floats.EqualWithinAbs(o.μ, o1.μ, o.μ*1e-9) {
		return false, errors.New("different gravity parameter")
	}
	if !floats.EqualWithinRel(o.p, o1.p, 1e-6) {
		return false, errors.New("semi-latus rectum invalid")
	}
	if !floats.EqualWithinAbs(o.e, o1.e, 1e-6) {
		return false, errors.New("eccentricity invalid")
	}
	if !zero(dot(o.normalAxis, o1.normalAxis) - 1) {
		return false, errors.New("orbital plane invalid")
	}
	if !o.Circular() && !zero(dot(o.majorAxis, o1.majorAxis)-1) {
		return false, errors.New("periapsis direction invalid")
	}
	δt := o.tPeriapsis - o1.tPeriapsis
	if o.Closed() {
		P := o.Period()
		δt = math.Remainder(δt, P)
		if !floats.EqualWithinAbs(δt, 0, P*1e-6) {
			return false, errors.New("periapsis time invalid")
		}
	} else if !floats.EqualWithinAbs(δt, 0, 1e-6) {
		return false, errors.New("periapsis time invalid")
	}
	return true, nil
}

// NewOrbitFromElements creates an orbit from the classical set
// (μ, p, e, i, Ω, ω) and the periapsis epoch. Angles are in radians.
func NewOrbitFromElements(μ, p, e, i, Ω, ω, tPeriapsis float64) (*Orbit, error) {
	if μ <= 0 {
		return nil, errors.New("gravity parameter must be positive")
	}
	if p < 0 || e < 0 {
		return nil, errors.New("conic shape parameters must not be negative")
	}
	major := PQW2ECI(i, ω, Ω, []float64{1, 0, 0})
	minor := PQW2ECI(i, ω, Ω, []float64{0, 1, 0})
	normal := PQW2ECI(i, ω, Ω, []float64{0, 0, 1})
	return &Orbit{μ, p, e, tPeriapsis, major, minor, normal}, nil
}

// NewOrbitFromRV returns the orbit matching the position and velocity state
// at epoch t. This is Vallado's RV2COE generalized to open conics and
// expressed with the orientation triad instead of the angle set.
func NewOrbitFromRV(R, V []float64, μ, t float64) (*Orbit, error) {
	if μ <= 0 {
		return nil, errors.New("gravity parameter must be positive")
	}
	hVec := cross(R, V)
	p := dot(hVec, hVec) / μ
	if zero(p) {
		// Radial trajectory, representable but rejected by the pipeline.
		return &Orbit{μ, 0, 0, t, unit(R), []float64{0, 0, 0}, []float64{0, 0, 0}}, nil
	}
	normal := unit(hVec)
	r := norm(R)
	eVec := cross(V, hVec)
	for i := 0; i < 3; i++ {
		eVec[i] = eVec[i]/μ - R[i]/r
	}
	e := norm(eVec)

	var major []float64
	if ConicCircular(e) {
		// Degenerate periapsis direction, use the node line.
		e = 0
		nodes := cross([]float64{0, 0, 1}, normal)
		if zero(dot(nodes, nodes)) {
			// Equatorial too, any in-plane axis will do.
			major = []float64{1, 0, 0}
		} else {
			major = unit(nodes)
		}
	} else {
		major = unit(eVec)
	}
	minor := cross(normal, major)

	ν := math.Acos(clamp(-1, 1, dot(major, R)/r))
	if ConicCircular(e) {
		ν *= -sign(dot(V, major))
	} else {
		ν *= sign(dot(R, V))
	}

	n := ConicMeanMotion(μ, p, e)
	M := TrueToMean(e, ν)
	return &Orbit{μ, p, e, t - M/n, major, minor, normal}, nil
}

// Radii2pe returns the semi-latus rectum and the eccentricity from the radii.
func Radii2pe(rA, rP float64) (p, e float64) {
	if rA < rP {
		panic("periapsis cannot be greater than apoapsis")
	}
	e = (rA - rP) / (rA + rP)
	p = rP * (1 + e)
	return
}
