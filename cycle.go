package main

import (
	"fmt"
	"path/filepath"
	"time"
)

// Cycle is one forecast initialization, identified by date and run
// hour.
type Cycle struct {
	Date time.Time
	Hour int
}

// ParseCycle builds a Cycle from a yyyymmdd date string and a run
// hour.
func ParseCycle(pdy string, hour int) (Cycle, error) {
	d, err := time.Parse("20060102", pdy)
	if err != nil {
		return Cycle{}, fmt.Errorf("bad PDY %q: %w", pdy, err)
	}
	if hour < 0 || hour > 23 {
		return Cycle{}, fmt.Errorf("bad cycle hour %d", hour)
	}
	return Cycle{Date: d, Hour: hour}, nil
}

// ParseCycleString parses a combined yyyymmddhh cycle string.
func ParseCycleString(s string) (Cycle, error) {
	t, err := time.Parse("2006010215", s)
	if err != nil {
		return Cycle{}, fmt.Errorf("bad cycle %q: %w", s, err)
	}
	return Cycle{
		Date: time.Date(t.Year(), t.Month(), t.Day(),
			0, 0, 0, 0, time.UTC),
		Hour: t.Hour(),
	}, nil
}

// Prev returns the previous cycle. RTOFS is a daily product, so the
// fallback source is always 24 hours back at the same run hour.
func (c Cycle) Prev() Cycle {
	return Cycle{Date: c.Date.AddDate(0, 0, -1), Hour: c.Hour}
}

// YMD formats the cycle date as yyyymmdd.
func (c Cycle) YMD() string {
	return c.Date.Format("20060102")
}

// Tag returns the tHHz cycle tag used in output filenames.
func (c Cycle) Tag() string {
	return fmt.Sprintf("t%02dz", c.Hour)
}

func (c Cycle) String() string {
	return fmt.Sprintf("%s%02d", c.YMD(), c.Hour)
}

// Start returns the initialization time of the cycle.
func (c Cycle) Start() time.Time {
	return c.Date.Add(time.Duration(c.Hour) * time.Hour)
}

// RTOFSDir returns the per-cycle directory holding RTOFS output.
func RTOFSDir(root string, c Cycle) string {
	return filepath.Join(root, "rtofs."+c.YMD())
}

// leadTags enumerates the nowcast (n###) and forecast (f###)
// lead-time tags for one file family, in time order.
func leadTags(span, horizon, step int) []string {
	var tags []string
	for h := step; h <= span; h += step {
		tags = append(tags, fmt.Sprintf("n%03d", h))
	}
	for h := step; h <= horizon; h += step {
		tags = append(tags, fmt.Sprintf("f%03d", h))
	}
	return tags
}

// Candidates2D lists the candidate 2-D surface files for one cycle,
// ordered by lead time.
func (c Config) Candidates2D(cy Cycle) []string {
	dir := RTOFSDir(c.ComInRTOFS, cy)
	tags := leadTags(c.NowcastSpan, c.Horizon, c.Step2D)
	ret := make([]string, len(tags))
	for i, tag := range tags {
		ret[i] = filepath.Join(dir,
			fmt.Sprintf("rtofs_glo_2ds_%s_prog.nc", tag))
	}
	return ret
}

// Candidates3D lists the candidate 3-D profile files for one cycle,
// ordered by lead time.
func (c Config) Candidates3D(cy Cycle) []string {
	dir := RTOFSDir(c.ComInRTOFS, cy)
	tags := leadTags(c.NowcastSpan, c.Horizon, c.Step3D)
	ret := make([]string, len(tags))
	for i, tag := range tags {
		ret[i] = filepath.Join(dir,
			fmt.Sprintf("rtofs_glo_3dz_%s_daily_3ztio.nc", tag))
	}
	return ret
}
