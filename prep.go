package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Products written by the forcing generators, in the order they are
// delivered.
var (
	BndProducts   = []string{"elev2D.th.nc", "uv3D.th.nc", "TEM_3D.th.nc", "SAL_3D.th.nc"}
	NudgeProducts = []string{"TEM_nu.nc", "SAL_nu.nc"}
)

// selectFamily qualifies and merges the candidate lists for one file
// family across the current and previous cycle.
func selectFamily(primary, backup []string, minSize int64, target int) []string {
	return MergeFallback(
		Qualify(primary, minSize),
		Qualify(backup, minSize),
		target,
	)
}

// Prep assembles the boundary and nudging forcing for the cycle from
// RTOFS output. When either file family falls below the usable
// minimum the whole cycle's heavy processing is skipped and the rerun
// cache keeps serving the last good forcing.
func Prep(conf Config) error {
	today := conf.Cycle
	prev := today.Prev()

	m2 := selectFamily(
		conf.Candidates2D(today), conf.Candidates2D(prev),
		conf.MinSize2D, conf.TargetCount,
	)
	m3 := selectFamily(
		conf.Candidates3D(today), conf.Candidates3D(prev),
		conf.MinSize3D, conf.TargetCount,
	)
	if !Usable(m2, conf.MinUsable) || !Usable(m3, conf.MinUsable) {
		log.Printf("skipping forcing generation for cycle %s: "+
			"%d usable 2-D files, %d usable 3-D files, need %d",
			today, len(m2), len(m3), conf.MinUsable)
		return nil
	}
	m2, m3 = Align(m2, m3)
	fmt.Printf("cycle %s: processing %d time levels per family\n",
		today, len(m2))

	if err := os.MkdirAll(conf.Data, 0755); err != nil {
		return err
	}
	cat2, err := subsetFamily(conf, m2, "r2ds", conf.Fields2D, "rtofs_2ds.nc", conf.Rename2D)
	if err != nil {
		return err
	}
	cat3, err := subsetFamily(conf, m3, "r3dz", conf.Fields3D, "rtofs_3dz.nc", conf.Rename3D)
	if err != nil {
		return err
	}

	if err := RunToolIn(conf.Data, conf.GenBnd,
		filepath.Base(cat2), filepath.Base(cat3)); err != nil {
		return err
	}
	if err := RunToolIn(conf.Data, conf.GenNudge,
		filepath.Base(cat3)); err != nil {
		return err
	}

	for _, p := range append(append([]string{}, BndProducts...), NudgeProducts...) {
		src := filepath.Join(conf.Data, p)
		if !exists(src) {
			return fmt.Errorf("generator did not produce %s", src)
		}
		if err := Deliver(conf, src, p); err != nil {
			return err
		}
		fmt.Printf("delivered %s\n", conf.OutName(p))
	}
	return nil
}

// subsetFamily windows and trims each file of one family, then
// concatenates them into a single time series and renames the HYCOM
// variables to the names the generators expect.
func subsetFamily(conf Config, files []string, prefix string,
	vars []string, out string, renames []string) (string, error) {
	subs := make([]string, len(files))
	for i, src := range files {
		dst := filepath.Join(conf.Data,
			fmt.Sprintf("%s_%03d.nc", prefix, i))
		if err := NcksSubset(src, dst, vars,
			conf.LonMin, conf.LonMax,
			conf.LatMin, conf.LatMax); err != nil {
			return "", err
		}
		subs[i] = dst
	}
	cat := filepath.Join(conf.Data, out)
	if err := NcRcat(subs, cat); err != nil {
		return "", err
	}
	if err := NcRename(cat, renames); err != nil {
		return "", err
	}
	for _, s := range subs {
		os.Remove(s)
	}
	return cat, nil
}
