package main

import (
	"reflect"
	"testing"
)

func TestParseCycle(t *testing.T) {
	c, err := ParseCycle("20260301", 12)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.String(), "2026030112"; got != want {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	if got, want := c.Prev().String(), "2026022812"; got != want {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	if got, want := c.Tag(), "t12z"; got != want {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	if _, err := ParseCycle("2026030", 12); err == nil {
		t.Errorf("expected error on short PDY\n")
	}
	if _, err := ParseCycle("20260301", 24); err == nil {
		t.Errorf("expected error on hour 24\n")
	}
}

func TestParseCycleString(t *testing.T) {
	c, err := ParseCycleString("2026030106")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := c.YMD(), "20260301"; got != want {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	if c.Hour != 6 {
		t.Errorf("got hour %d, wanted 6\n", c.Hour)
	}
}

func TestLeadTags(t *testing.T) {
	got := leadTags(24, 48, 6)
	want := []string{
		"n006", "n012", "n018", "n024",
		"f006", "f012", "f018", "f024",
		"f030", "f036", "f042", "f048",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestCandidates(t *testing.T) {
	conf := Config{
		RawConf: RawConf{
			NowcastSpan: 12,
			Horizon:     12,
			Step2D:      6,
			Step3D:      12,
		},
		ComInRTOFS: "/com/rtofs",
	}
	cy, _ := ParseCycle("20260301", 12)
	got := conf.Candidates2D(cy)
	want := []string{
		"/com/rtofs/rtofs.20260301/rtofs_glo_2ds_n006_prog.nc",
		"/com/rtofs/rtofs.20260301/rtofs_glo_2ds_n012_prog.nc",
		"/com/rtofs/rtofs.20260301/rtofs_glo_2ds_f006_prog.nc",
		"/com/rtofs/rtofs.20260301/rtofs_glo_2ds_f012_prog.nc",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	got = conf.Candidates3D(cy)
	want = []string{
		"/com/rtofs/rtofs.20260301/rtofs_glo_3dz_n012_daily_3ztio.nc",
		"/com/rtofs/rtofs.20260301/rtofs_glo_3dz_f012_daily_3ztio.nc",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}
