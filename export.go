package twobody

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	kitlog "github.com/go-kit/kit/log"
)

// Diagnostic sampling of the relative state of two orbits. This is an
// observer for plotting and debugging only: nothing in the intercept
// pipeline calls it.

// DistanceSample is one diagnostic sample of the relative state.
type DistanceSample struct {
	Time     float64
	Distance float64
	Speed    float64
}

// SampleDistances evaluates the relative distance and closing speed of both
// orbits on a uniform grid over t0..t1.
func SampleDistances(o1, o2 *Orbit, t0, t1 float64, samples int) []DistanceSample {
	out := make([]DistanceSample, samples)
	for i := 0; i < samples; i++ {
		t := t0 + (float64(i)/float64(samples-1))*(t1-t0)
		E1, E2 := o1.EccentricAtTime(t), o2.EccentricAtTime(t)
		pos1, vel1 := o1.PositionAtEccentric(E1), o1.VelocityAtEccentric(E1)
		pos2, vel2 := o2.PositionAtEccentric(E2), o2.VelocityAtEccentric(E2)
		dr := []float64{pos2[0] - pos1[0], pos2[1] - pos1[1], pos2[2] - pos1[2]}
		dv := []float64{vel2[0] - vel1[0], vel2[1] - vel1[1], vel2[2] - vel1[2]}
		dist := norm(dr)
		out[i] = DistanceSample{t, dist, dot(dr, dv) / dist}
	}
	return out
}

// StreamDistances writes a tab separated sampling of the relative state to
// the configured output directory.
func StreamDistances(name string, o1, o2 *Orbit, t0, t1 float64, samples int) error {
	path := filepath.Join(twobodyConfig().outputDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %s", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Comma = '\t'
	for _, sample := range SampleDistances(o1, o2, t0, t1, samples) {
		record := []string{
			strconv.FormatFloat(sample.Time, 'f', 6, 64),
			strconv.FormatFloat(sample.Distance, 'f', 6, 64),
			strconv.FormatFloat(sample.Speed, 'f', 6, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog.Log("subsys", "export", "file", path, "samples", samples)
	return w.Error()
}
