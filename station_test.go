package main

import (
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/fhs/go-netcdf/netcdf"
)

func TestReadStations(t *testing.T) {
	got, err := ReadStations("testfiles/stations.dta")
	if err != nil {
		t.Fatal(err)
	}
	want := []Station{
		{ID: 1, Name: "The Battery, NY", Lat: 40.700, Lon: -74.015},
		{ID: 2, Name: "Lewisetta, VA", Lat: 37.996, Lon: -76.465},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestNearestNode(t *testing.T) {
	lon := []float64{-74.0, -76.5, -80.0}
	lat := []float64{40.7, 38.0, 25.8}
	got := nearestNode(lon, lat, Station{Lat: 37.996, Lon: -76.465})
	if got != 1 {
		t.Errorf("got node %d, wanted 1\n", got)
	}
}

// writeFieldFile creates a small merged field file: 2 time levels, 3
// nodes, elevation increasing by node then by time.
func writeFieldFile(t *testing.T, path string) {
	t.Helper()
	f, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dimT, err := f.AddDim("time", 2)
	if err != nil {
		t.Fatal(err)
	}
	dimN, err := f.AddDim("node", 3)
	if err != nil {
		t.Fatal(err)
	}
	vtime, _ := f.AddVar("time", netcdf.DOUBLE, []netcdf.Dim{dimT})
	vlon, _ := f.AddVar("lon", netcdf.DOUBLE, []netcdf.Dim{dimN})
	vlat, _ := f.AddVar("lat", netcdf.DOUBLE, []netcdf.Dim{dimN})
	vzeta, _ := f.AddVar("zeta", netcdf.FLOAT, []netcdf.Dim{dimT, dimN})
	if err := f.EndDef(); err != nil {
		t.Fatal(err)
	}
	if err := vtime.WriteFloat64s([]float64{3600, 7200}); err != nil {
		t.Fatal(err)
	}
	if err := vlon.WriteFloat64s([]float64{-74.0, -76.5, -80.0}); err != nil {
		t.Fatal(err)
	}
	if err := vlat.WriteFloat64s([]float64{40.7, 38.0, 25.8}); err != nil {
		t.Fatal(err)
	}
	err = vzeta.WriteFloat32s([]float32{
		0.1, 0.2, 0.3, // t = 3600
		1.1, 1.2, 1.3, // t = 7200
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestExtractStations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.nc")
	writeFieldFile(t, path)
	conf := Config{RawConf: RawConf{
		ElevVar: "zeta",
		LonVar:  "lon",
		LatVar:  "lat",
		TimeVar: "time",
	}}
	stations := []Station{
		{ID: 1, Name: "The Battery, NY", Lat: 40.7, Lon: -74.0},
		{ID: 2, Name: "Lewisetta, VA", Lat: 37.996, Lon: -76.465},
	}
	ser, err := ExtractStations(path, stations, conf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ser.Times, []float64{3600, 7200}) {
		t.Errorf("got times %v, wanted [3600 7200]\n", ser.Times)
	}
	want := [][]float64{
		{0.1, 1.1}, // node 0
		{0.2, 1.2}, // node 1
	}
	for i := range want {
		for j := range want[i] {
			if math.Abs(ser.Zeta[i][j]-want[i][j]) > 1e-6 {
				t.Errorf("station %d: got %v, wanted %v\n",
					i, ser.Zeta[i], want[i])
			}
		}
	}
}

func TestWriteStationProduct(t *testing.T) {
	path := filepath.Join(t.TempDir(), "station_products.nc")
	stations := []Station{
		{ID: 1, Name: "The Battery, NY", Lat: 40.7, Lon: -74.0},
	}
	times := []float64{3600, 7200}
	zeta := [][]float64{{0.1, 1.1}}
	tide := [][]float64{{0.05, 1.0}}
	anom := [][]float64{{0.05, 0.1}}
	if err := WriteStationProduct(path, stations, times,
		zeta, tide, anom); err != nil {
		t.Fatal(err)
	}

	nc, err := netcdf.OpenFile(path, netcdf.NOWRITE)
	if err != nil {
		t.Fatal(err)
	}
	defer nc.Close()
	v, err := nc.Var("anomaly")
	if err != nil {
		t.Fatal(err)
	}
	got, err := readVarFloat64s(v)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []float64{0.05, 0.1} {
		if math.Abs(got[i]-want) > 1e-6 {
			t.Errorf("got %v, wanted %v\n", got, []float64{0.05, 0.1})
		}
	}
	vid, err := nc.Var("station_id")
	if err != nil {
		t.Fatal(err)
	}
	ids := make([]int32, 1)
	if err := vid.ReadInt32s(ids); err != nil {
		t.Fatal(err)
	}
	if ids[0] != 1 {
		t.Errorf("got station id %d, wanted 1\n", ids[0])
	}
}

func TestHoursSinceYearStart(t *testing.T) {
	c, _ := ParseCycle("20260102", 12)
	got := hoursSinceYearStart(c.Start())
	want := 36.0
	if got != want {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}
