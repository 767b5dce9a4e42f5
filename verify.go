package twobody

import (
	"math"

	"github.com/ChristopherRabotin/ode"
)

// relativeMotion integrates the Cartesian two-body motion of both orbits and
// samples their relative distance. It is a cross-check of the analytic
// intercept search and never runs in the pipeline itself.
type relativeMotion struct {
	o1, o2         *Orbit
	t0, duration   float64
	step           float64
	state          []float64 // r1 v1 r2 v2
	elapsed        float64
	minTime        float64
	minDistance    float64
	sampleFn       func(t, dist float64)
	stepsCompleted int
}

// Stop implements the stop call of the integrator.
func (rm *relativeMotion) Stop(t float64) bool {
	return t >= rm.duration
}

// GetState returns the stacked state of both orbits.
func (rm *relativeMotion) GetState() []float64 {
	s := make([]float64, 12)
	copy(s, rm.state)
	return s
}

// SetState sets the updated state and samples the relative distance.
func (rm *relativeMotion) SetState(t float64, s []float64) {
	copy(rm.state, s)
	rm.elapsed = t
	rm.stepsCompleted++
	dist := math.Sqrt(square(s[6]-s[0]) + square(s[7]-s[1]) + square(s[8]-s[2]))
	if dist < rm.minDistance {
		rm.minDistance = dist
		rm.minTime = rm.t0 + t
	}
	if rm.sampleFn != nil {
		rm.sampleFn(rm.t0+t, dist)
	}
}

// Func is the two-body integration function for both orbits.
func (rm *relativeMotion) Func(t float64, f []float64) (fDot []float64) {
	fDot = make([]float64, 12)
	for o, orbit := range []*Orbit{rm.o1, rm.o2} {
		i := o * 6
		r := math.Sqrt(f[i]*f[i] + f[i+1]*f[i+1] + f[i+2]*f[i+2])
		bodyAcc := -orbit.GravityParameter() / math.Pow(r, 3)
		// d\vec{R}/dt
		fDot[i+0] = f[i+3]
		fDot[i+1] = f[i+4]
		fDot[i+2] = f[i+5]
		// d\vec{V}/dt
		fDot[i+3] = bodyAcc * f[i+0]
		fDot[i+4] = bodyAcc * f[i+1]
		fDot[i+5] = bodyAcc * f[i+2]
	}
	return
}

// VerifyClosestApproach numerically integrates both orbits over t0..t1 with
// the given number of RK4 steps and returns the sampled minimum of the
// relative distance. It is meant to validate InterceptSearch results, not to
// replace them: the returned minimum is only as fine as the step size.
func VerifyClosestApproach(o1, o2 *Orbit, t0, t1 float64, steps int) (tMin, dMin float64) {
	rm := newRelativeMotion(o1, o2, t0, t1, steps, nil)
	ode.NewRK4(0, rm.step, rm).Solve()
	return rm.minTime, rm.minDistance
}

func newRelativeMotion(o1, o2 *Orbit, t0, t1 float64, steps int, sampleFn func(t, dist float64)) *relativeMotion {
	state := make([]float64, 12)
	for o, orbit := range []*Orbit{o1, o2} {
		E := orbit.EccentricAtTime(t0)
		copy(state[o*6:], orbit.PositionAtEccentric(E))
		copy(state[o*6+3:], orbit.VelocityAtEccentric(E))
	}
	rm := &relativeMotion{
		o1: o1, o2: o2,
		t0:          t0,
		duration:    t1 - t0,
		step:        (t1 - t0) / float64(steps),
		state:       state,
		minDistance: math.Inf(1),
		minTime:     t0,
		sampleFn:    sampleFn,
	}
	dist := math.Sqrt(square(state[6]-state[0]) + square(state[7]-state[1]) + square(state[8]-state[2]))
	rm.minDistance = dist
	return rm
}
