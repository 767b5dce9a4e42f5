package main

import (
	"flag"
	"fmt"
	"os"

	kitlog "github.com/go-kit/kit/log"
	"github.com/nashmit/twobody"
)

// conjfndr searches a time window for close approaches of two orbits around
// the same primary, e.g. a transfer orbit against the orbit of a moon.

var (
	body          string
	p1, e1        float64
	i1, an1, arg1 float64
	tPe1          float64
	p2, e2        float64
	i2, an2, arg2 float64
	tPe2          float64
	t0, t1        float64
	threshold     float64
	target        float64
	maxIntercepts int
	maxSteps      int
	verify        bool
	dump          string
)

func init() {
	// Read flags
	flag.StringVar(&body, "body", "Earth", "central body (Sun, Earth, Moon, Mars)")
	flag.Float64Var(&p1, "p1", 0, "semi-latus rectum of orbit 1 (km)")
	flag.Float64Var(&e1, "e1", 0, "eccentricity of orbit 1")
	flag.Float64Var(&i1, "i1", 0, "inclination of orbit 1 (degrees)")
	flag.Float64Var(&an1, "an1", 0, "RAAN of orbit 1 (degrees)")
	flag.Float64Var(&arg1, "arg1", 0, "argument of periapsis of orbit 1 (degrees)")
	flag.Float64Var(&tPe1, "tpe1", 0, "periapsis epoch of orbit 1 (s)")
	flag.Float64Var(&p2, "p2", 0, "semi-latus rectum of orbit 2 (km)")
	flag.Float64Var(&e2, "e2", 0, "eccentricity of orbit 2")
	flag.Float64Var(&i2, "i2", 0, "inclination of orbit 2 (degrees)")
	flag.Float64Var(&an2, "an2", 0, "RAAN of orbit 2 (degrees)")
	flag.Float64Var(&arg2, "arg2", 0, "argument of periapsis of orbit 2 (degrees)")
	flag.Float64Var(&tPe2, "tpe2", 0, "periapsis epoch of orbit 2 (s)")
	flag.Float64Var(&t0, "t0", 0, "search window start (s)")
	flag.Float64Var(&t1, "t1", 0, "search window end (s)")
	flag.Float64Var(&threshold, "threshold", 0, "acceptance distance (km)")
	flag.Float64Var(&target, "target", 0, "target distance, 0 for closest approach (km)")
	flag.IntVar(&maxIntercepts, "max", 4, "maximum number of intercepts")
	flag.IntVar(&maxSteps, "steps", 100, "step budget per search")
	flag.BoolVar(&verify, "verify", false, "cross-check with an RK4 integration")
	flag.StringVar(&dump, "dump", "", "write a distance sampling to this file")
}

func main() {
	flag.Parse()
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "cmd", "conjfndr")

	primary, err := twobody.CelestialObjectFromString(body)
	if err != nil {
		klog.Log("level", "critical", "err", err)
		os.Exit(1)
	}
	if p1 <= 0 || p2 <= 0 || threshold <= 0 || !(t0 < t1) {
		klog.Log("level", "critical", "err", "need -p1, -p2, -threshold and -t0 < -t1")
		os.Exit(1)
	}

	orbit1, err := twobody.NewOrbitFromElements(primary.GM(), p1, e1,
		twobody.Deg2rad(i1), twobody.Deg2rad(an1), twobody.Deg2rad(arg1), tPe1)
	if err != nil {
		klog.Log("level", "critical", "orbit", 1, "err", err)
		os.Exit(1)
	}
	orbit2, err := twobody.NewOrbitFromElements(primary.GM(), p2, e2,
		twobody.Deg2rad(i2), twobody.Deg2rad(an2), twobody.Deg2rad(arg2), tPe2)
	if err != nil {
		klog.Log("level", "critical", "orbit", 2, "err", err)
		os.Exit(1)
	}

	klog.Log("level", "info", "body", primary.Name, "orbit1", orbit1, "orbit2", orbit2,
		"window", fmt.Sprintf("%.1f..%.1f", t0, t1))

	if dump != "" {
		if err := twobody.StreamDistances(dump, orbit1, orbit2, t0, t1, 1000); err != nil {
			klog.Log("level", "critical", "err", err)
			os.Exit(1)
		}
	}

	intercepts := twobody.InterceptOrbit(orbit1, orbit2, t0, t1, threshold, target, maxIntercepts, maxSteps)
	if len(intercepts) == 0 {
		klog.Log("level", "notice", "intercepts", 0)
		return
	}
	for i, icpt := range intercepts {
		klog.Log("level", "notice", "intercept", i,
			"t", fmt.Sprintf("%.3f", icpt.Time),
			"date", twobody.TimeFromEpoch(icpt.Time).Format("2006-01-02 15:04:05"),
			"distance(km)", fmt.Sprintf("%.3f", icpt.Distance),
			"speed(km/s)", fmt.Sprintf("%.6f", icpt.Speed))
	}

	if verify {
		tMin, dMin := twobody.VerifyClosestApproach(orbit1, orbit2, t0, t1, 10000)
		klog.Log("level", "info", "verify", "rk4",
			"tMin", fmt.Sprintf("%.3f", tMin), "dMin(km)", fmt.Sprintf("%.3f", dMin))
	}
}
