package twobody

import "math"

// The intercept pipeline predicts close approaches of two orbits around the
// same primary. The 3-D problem is reduced to true anomaly ranges on each
// orbit (InterceptIntersect), the ranges are converted to absolute time
// intervals (InterceptTimes), and each interval is walked by an adaptive
// numerical search (InterceptSearch). InterceptOrbit drives the whole chain.

// AnomalyRanges holds up to two half-open (begin, end) true anomaly ranges.
// A range with begin >= end is empty. Only the first range may extend below
// -π, which encodes wraparound through apoapsis on a closed orbit.
type AnomalyRanges [4]float64

// emptyRanges marks both ranges empty.
func emptyRanges() AnomalyRanges {
	return AnomalyRanges{1, -1, 1, -1}
}

// Empty returns whether range i (0 or 1) is empty.
func (fs AnomalyRanges) Empty(i int) bool {
	return fs[2*i] >= fs[2*i+1]
}

// Count returns the number of non-empty ranges.
func (fs AnomalyRanges) Count() (n int) {
	if !fs.Empty(0) {
		n++
	}
	if !fs.Empty(1) {
		n++
	}
	return
}

// TimeRange is a half-open absolute time interval.
type TimeRange struct {
	Begin, End float64
}

// Intercept is the refined output of a close approach search: the state of
// both orbits at the resolved time, their relative state and the matching
// eccentric anomalies.
type Intercept struct {
	Position    [2][]float64
	Velocity    [2][]float64
	RelPosition []float64
	RelVelocity []float64
	Distance    float64 // |RelPosition|
	Speed       float64 // radial component of RelVelocity, negative when closing
	E1, E2      float64
	Time        float64
}

// intersectRanges merges two range pairs into their set intersection of at
// most two ranges. The closed flag permits the result to wrap through
// apoapsis, stored below -π in the first range. Returns the number of
// non-empty ranges.
func intersectRanges(fs1, fs2 AnomalyRanges, closed bool) (AnomalyRanges, int) {
	var fs AnomalyRanges
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			// A single input range overlaps both output slots.
			i1, i2 := 0, 0
			if fs1[2] < fs1[3] {
				i1 = 2 * i
			}
			if fs2[2] < fs2[3] {
				i2 = 2 * i
			}
			f0, f1 := fs1[i1+j], fs2[i2+j]
			if j == 0 {
				fs[i*2+j] = math.Max(f0, f1)
			} else {
				fs[i*2+j] = math.Min(f0, f1)
			}
		}
	}

	if closed &&
		(fs[0] <= -math.Pi || zero(fs[0]+math.Pi)) &&
		(fs[3] >= math.Pi || zero(fs[3]-math.Pi)) {
		// ranges overlap at apoapsis -> union ranges -2pi
		fs[0] = math.Min(fs[0], fs[2]-2*math.Pi)
		fs[1] = math.Max(fs[1], fs[3]-2*math.Pi)
		fs[2], fs[3] = 1, -1
	}

	if (fs[1] >= fs[2] || zero(fs[1]-fs[2])) && fs[2] < fs[3] {
		// ranges overlap at periapsis -> union ranges
		fs[1] = fs[3]
		fs[2], fs[3] = 1, -1
	}

	if fs[2] < fs[3] && fs[3] > math.Pi {
		// second range overlaps apoapsis -> swap ranges -2pi
		f0, f1 := fs[0], fs[1]
		fs[0] = fs[2] - 2*math.Pi
		fs[1] = fs[3] - 2*math.Pi
		fs[2], fs[3] = f0, f1
	}

	if fs[2] < fs[3] && !(fs[0] < fs[1]) {
		// first range is empty, second is not -> swap ranges
		fs[0], fs[1] = fs[2], fs[3]
		fs[2], fs[3] = 1, -1
	}

	if fs[1]-fs[0] >= 2*math.Pi {
		// first range covers the full orbit -> -pi..pi
		// (second range must be empty)
		fs[0], fs[1] = -math.Pi, math.Pi
	}

	return fs, fs.Count()
}

// InterceptIntersect finds 0, 1 or 2 ranges of true anomaly on o1 where o1
// lies between the periapsis and apoapsis of o2 plus the threshold, and
// closer than the threshold to the orbital plane of o2. Radial orbits are
// rejected with a zero count.
func InterceptIntersect(o1, o2 *Orbit, threshold float64) (AnomalyRanges, int) {
	if o1.Radial() || o2.Radial() {
		return emptyRanges(), 0
	}

	p1, e1 := o1.SemiLatusRectum(), o1.Eccentricity()
	p2, e2 := o2.SemiLatusRectum(), o2.Eccentricity()

	// apoapsis-periapsis test
	ap1, pe1 := ConicApoapsis(p1, e1), ConicPeriapsis(p1, e1)
	ap2, pe2 := ConicApoapsis(p2, e2), ConicPeriapsis(p2, e2)
	if (ConicClosed(e1) && ap1 <= pe2-threshold) ||
		(ConicClosed(e2) && ap2 <= pe1-threshold) {
		return emptyRanges(), 0
	}

	// true anomaly on o1 between the apoapsis/periapsis band of o2 +/- threshold
	maxf := ConicMaxTrueAnomaly(e1)
	fpe := 0.0
	if !ConicCircular(e1) {
		fpe = TrueFromRadius(p1, e1, pe2-threshold)
	}
	fap := maxf
	if !ConicCircular(e1) && ConicClosed(e2) {
		fap = TrueFromRadius(p1, e1, ap2+threshold)
	}

	f1 := math.Min(fap, fpe)
	f2 := math.Max(fap, fpe)

	fs1 := emptyRanges()
	switch {
	case ConicClosed(e1) && zero(f1) && !(f2 < math.Pi):
		// intersects anywhere on orbit (f = -pi .. pi)
		fs1[0], fs1[1] = -2*math.Pi, 2*math.Pi
	case zero(f1):
		// intersect near periapsis (f = -f2 .. f2)
		fs1[0], fs1[1] = -f2, f2
	case ConicClosed(e1) && !(f2 < math.Pi):
		// intersect near apoapsis (f < -f1, f > f1)
		fs1 = AnomalyRanges{-2 * math.Pi, -f1, f1, 2 * math.Pi}
	default:
		// two intersects (-f2 < f < -f1, f1 < f < f2)
		fs1 = AnomalyRanges{-f2, -f1, f1, f2}
	}

	// ascending node
	nodes := cross(o1.normalAxis, o2.normalAxis)
	N2 := dot(nodes, nodes)
	N := math.Sqrt(N2)
	coplanar := N2 < twobodyConfig().tolerance

	fs2 := AnomalyRanges{-math.Pi, math.Pi, 1, -1}
	if !coplanar {
		// relative inclination
		reli := sign(dot(o1.normalAxis, o2.normalAxis)) * math.Asin(clamp(-1, 1, N))

		// true anomaly of ascending/descending node
		fAn := sign(dot(o1.minorAxis, nodes)) * math.Acos(clamp(-1, 1, dot(o1.majorAxis, nodes)/N))
		fDn := fAn - sign(fAn)*math.Pi

		for i, fNode := range []float64{math.Min(fAn, fDn), math.Max(fAn, fDn)} {
			r := RadiusFromTrue(p1, e1, fNode)

			// spherical trigonometry sine law
			Δf := math.Asin(clamp(-1, 1,
				math.Sin(threshold/(2*r))/math.Sin(math.Abs(reli)/2)))

			fs2[i*2+0] = fNode - Δf
			fs2[i*2+1] = fNode + Δf
		}
	}

	return intersectRanges(fs1, fs2, ConicClosed(e1))
}

// InterceptTimes converts the true anomaly ranges of both orbits into at most
// maxTimes merged time intervals within t0..t1 where both orbits satisfy
// their ranges simultaneously. The intervals are disjoint and ordered by
// ascending begin time.
func InterceptTimes(o1, o2 *Orbit, t0, t1 float64, fs1, fs2 AnomalyRanges, maxTimes int) []TimeRange {
	orbits := [2]*Orbit{o1, o2}
	ranges := [2]AnomalyRanges{fs1, fs2}

	// time ranges corresponding to true anomaly ranges
	times := [2][4]float64{{1, -1, 1, -1}, {1, -1, 1, -1}}
	var periods [2]float64 // orbital period
	var nOrbit [2]int      // number of complete orbits to t0
	for o, orbit := range orbits {
		e := orbit.Eccentricity()
		tPe := orbit.PeriapsisTime()
		n := orbit.MeanMotion()

		open := !ConicClosed(e)
		fT0, fT1 := -math.Pi, math.Pi
		if open {
			// restrict true anomaly to the range reachable within t0..t1
			fT0 = MeanToTrue(e, (t0-tPe)*n)
			fT1 = MeanToTrue(e, (t1-tPe)*n)
		}

		for i := 0; i < 2; i++ {
			if ranges[o].Empty(i) {
				continue
			}
			for j := 0; j < 2; j++ {
				f := ranges[o][2*i+j]
				if open {
					f = clamp(fT0, fT1, f)
				}
				M := TrueToMean(e, f)
				if f < -math.Pi {
					// wraparound range begins on the previous revolution
					M -= 2 * math.Pi
				}
				times[o][2*i+j] = tPe + M/n
			}
		}

		if !open {
			P := 2 * math.Pi / n
			periods[o] = P
			nOrbit[o] = int(math.Round((t0 - tPe) / P))
		}
	}

	var out []TimeRange
	var isect [2]int
	t := t0
	for t < t1 && len(out) < maxTimes {
		// time interval on this orbital period
		var trange [2]TimeRange
		for o := range orbits {
			shift := float64(nOrbit[o]) * periods[o]
			trange[o] = TimeRange{times[o][2*isect[o]+0] + shift, times[o][2*isect[o]+1] + shift}
		}

		// overlapping time interval
		tBegin := math.Max(t, math.Max(trange[0].Begin, trange[1].Begin))
		tEnd := math.Min(t1, math.Min(trange[0].End, trange[1].End))
		t = math.Max(t0, tEnd)

		if tBegin < tEnd {
			if n := len(out); n > 0 &&
				(tBegin <= out[n-1].End || zero(tBegin-out[n-1].End)) {
				// merge to previous time interval
				out[n-1].End = tEnd
			} else {
				out = append(out, TimeRange{tBegin, tEnd})
			}
		}

		// advance to next intersect range
		adv := 0
		if !(trange[0].End < trange[1].End) {
			adv = 1
		}
		isect[adv]++

		if isect[adv] == 2 || ranges[adv].Empty(isect[adv]) {
			if !orbits[adv].Closed() {
				break // open orbit, search exhausted
			}
			isect[adv] = 0
			nOrbit[adv]++
		}
	}

	return out
}

// searchPhase is the state of the adaptive close approach search.
type searchPhase uint8

const (
	searching searchPhase = iota
	refining
	converged
	exhausted
)

// searchState carries the loop state of InterceptSearch between steps.
type searchState struct {
	t, prevTime float64
	tEnd        float64 // extended search horizon, grows when backtracking
	minDt       float64
	prevSgn     float64
	phase       searchPhase
}

// InterceptSearch walks the time interval t0..t1 for a close approach of the
// two orbits: either a crossing of the target distance (e.g. a sphere of
// influence radius) or, with a zero target, the closest approach itself. The
// step budget bounds the number of state evaluations; on exhaustion the last
// evaluated state is returned and its distance may exceed the threshold.
// The second return value is the time up to which the interval has been
// searched, so a caller can resume past it.
func InterceptSearch(o1, o2 *Orbit, t0, t1, threshold, target float64, maxSteps int) (Intercept, float64) {
	vmax := ConicPeriapsisVelocity(o1.μ, o1.p, o1.e) +
		ConicPeriapsisVelocity(o2.μ, o2.p, o2.e)

	s := searchState{
		t:        t0,
		prevTime: math.NaN(),
		tEnd:     t1,
		minDt:    (t1 - t0) / float64(maxSteps/2),
		phase:    searching,
	}

	var icpt Intercept
	for step := 0; step < maxSteps; step++ {
		E1 := o1.EccentricAtTime(s.t)
		E2 := o2.EccentricAtTime(s.t)
		pos := [2][]float64{o1.PositionAtEccentric(E1), o2.PositionAtEccentric(E2)}
		vel := [2][]float64{o1.VelocityAtEccentric(E1), o2.VelocityAtEccentric(E2)}
		dr := []float64{pos[1][0] - pos[0][0], pos[1][1] - pos[0][1], pos[1][2] - pos[0][2]}
		dv := []float64{vel[1][0] - vel[0][0], vel[1][1] - vel[0][1], vel[1][2] - vel[0][2]}
		dist := norm(dr)
		vrel := dot(dr, dv) / dist
		icpt = Intercept{pos, vel, dr, dv, dist, vrel, E1, E2, s.t}

		if s.phase == refining {
			// the refinement step has landed on the target distance
			s.phase = converged
			break
		}

		sgn := sign(vrel) * sign(dist-target)
		dt := s.minDt

		switch {
		case zero(square(dist-math.Max(0, target)) / square(threshold)):
			// minimization finished
			s.phase = converged

		case sgn < 0 && math.Abs(dist-target) < threshold && s.tEnd > t0:
			// within the threshold band, extrapolate onto the target distance
			dt = (target - dist) / vrel
			s.phase = refining

		case sgn > 0 && s.prevSgn < 0 &&
			(s.t-s.prevTime)*vmax+threshold > math.Abs(dist-target) &&
			(s.t-s.prevTime) > (t1-s.tEnd)/float64(maxSteps-step):
			// closest approach bracketed, move time backwards and tighten the step
			s.tEnd = math.Max(s.t, s.tEnd)
			s.minDt = (s.t - s.prevTime) / 2
			dt = s.minDt
			s.t = s.prevTime
			sgn = s.prevSgn

		case s.t > t1:
			// search exhausted
			s.phase = exhausted

		default:
			// searching, skip ahead: the threshold band cannot be crossed
			// faster than at the maximum relative speed
			if δ := math.Abs(dist-target-threshold) / vmax; !math.IsNaN(δ) && δ > dt {
				dt = δ
			}
		}

		if s.phase == converged || s.phase == exhausted {
			break
		}

		s.tEnd = math.Max(s.tEnd, s.t)
		s.prevTime, s.prevSgn = s.t, sgn
		s.t += dt
	}

	return icpt, s.tEnd
}

// InterceptOrbit finds at most maxIntercepts close approaches of the two
// orbits within t0..t1. A close approach is accepted when its distance to
// the target distance is within the threshold. Only the first approach of
// each candidate time interval is reported even when an interval holds
// several minima (up to four on coplanar retrograde pairs).
func InterceptOrbit(o1, o2 *Orbit, t0, t1, threshold, target float64, maxIntercepts, maxSteps int) []Intercept {
	pair := [2]*Orbit{o1, o2}
	var fs [2]AnomalyRanges
	for o := 0; o < 2; o++ {
		ranges, n := InterceptIntersect(pair[o], pair[1-o], threshold)
		if n == 0 {
			// the orbits cannot approach at all
			return nil
		}
		fs[o] = ranges
	}

	times := InterceptTimes(o1, o2, t0, t1, fs[0], fs[1], 4*maxIntercepts)

	var intercepts []Intercept
	for _, trange := range times {
		t := trange.Begin
		for t < trange.End && len(intercepts) < maxIntercepts {
			icpt, tNext := InterceptSearch(o1, o2, t, trange.End, threshold, target, maxSteps)
			if math.Abs(icpt.Distance-target) <= threshold {
				intercepts = append(intercepts, icpt)
				break
			}
			t = tNext
		}
	}
	return intercepts
}
