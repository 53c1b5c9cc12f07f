package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fhs/go-netcdf/netcdf"
)

// Station is one water-level validation site. The list file is
// pipe-delimited: id|name|lat|lon, with # comments.
type Station struct {
	ID   int
	Name string
	Lat  float64
	Lon  float64
}

func ReadStations(filename string) ([]Station, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var ret []Station
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) < 4 {
			return nil, fmt.Errorf("%s: bad station line %q",
				filename, line)
		}
		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("%s: bad station id in %q",
				filename, line)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad latitude in %q",
				filename, line)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad longitude in %q",
				filename, line)
		}
		ret = append(ret, Station{
			ID:   id,
			Name: strings.TrimSpace(fields[1]),
			Lat:  lat,
			Lon:  lon,
		})
	}
	return ret, scanner.Err()
}

// StationSeries is the elevation time series extracted at each
// station, station-major.
type StationSeries struct {
	Times []float64 // seconds since the cycle start
	Zeta  [][]float64
}

// readVarFloat64s reads an entire variable as float64, converting
// from FLOAT where needed.
func readVarFloat64s(v netcdf.Var) ([]float64, error) {
	dims, err := v.Dims()
	if err != nil {
		return nil, err
	}
	n := uint64(1)
	for _, d := range dims {
		l, err := d.Len()
		if err != nil {
			return nil, err
		}
		n *= l
	}
	typ, err := v.Type()
	if err != nil {
		return nil, err
	}
	switch typ {
	case netcdf.DOUBLE:
		data := make([]float64, n)
		if err := v.ReadFloat64s(data); err != nil {
			return nil, err
		}
		return data, nil
	case netcdf.FLOAT:
		tmp := make([]float32, n)
		if err := v.ReadFloat32s(tmp); err != nil {
			return nil, err
		}
		data := make([]float64, n)
		for i, x := range tmp {
			data[i] = float64(x)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported type for variable")
}

// nearestNode returns the index of the grid node closest to the
// station. Good enough at validation-station scale; the grids are
// dense near the coast where the stations sit.
func nearestNode(lon, lat []float64, st Station) int {
	best, bestD := 0, math.Inf(1)
	for i := range lon {
		dx := lon[i] - st.Lon
		dy := lat[i] - st.Lat
		if d := dx*dx + dy*dy; d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

// ExtractStations pulls the elevation series at the nearest grid node
// to each station from a merged field file with 1-D node coordinates
// and a (time, node) elevation variable.
func ExtractStations(filename string, stations []Station,
	conf Config) (*StationSeries, error) {
	nc, err := netcdf.OpenFile(filename, netcdf.NOWRITE)
	if err != nil {
		return nil, err
	}
	defer nc.Close()

	read := func(name string) ([]float64, error) {
		v, err := nc.Var(name)
		if err != nil {
			return nil, fmt.Errorf("%s: no variable %q: %w",
				filename, name, err)
		}
		return readVarFloat64s(v)
	}
	times, err := read(conf.TimeVar)
	if err != nil {
		return nil, err
	}
	lon, err := read(conf.LonVar)
	if err != nil {
		return nil, err
	}
	lat, err := read(conf.LatVar)
	if err != nil {
		return nil, err
	}
	if len(lon) != len(lat) {
		return nil, fmt.Errorf("%s: %d lon values but %d lat values",
			filename, len(lon), len(lat))
	}
	zeta, err := read(conf.ElevVar)
	if err != nil {
		return nil, err
	}
	nNode := len(lon)
	nTime := len(times)
	if len(zeta) != nNode*nTime {
		return nil, fmt.Errorf("%s: elevation has %d values, want %d",
			filename, len(zeta), nNode*nTime)
	}

	ser := &StationSeries{
		Times: times,
		Zeta:  make([][]float64, len(stations)),
	}
	for i, st := range stations {
		node := nearestNode(lon, lat, st)
		row := make([]float64, nTime)
		for t := 0; t < nTime; t++ {
			row[t] = zeta[t*nNode+node]
		}
		ser.Zeta[i] = row
	}
	return ser, nil
}

// WriteStationProduct writes the station validation NetCDF: per
// station, the modeled elevation, the predicted tide, and the
// anomaly, station x time.
func WriteStationProduct(path string, stations []Station,
	times []float64, zeta, tide, anom [][]float64) error {
	f, err := netcdf.CreateFile(path, netcdf.CLOBBER)
	if err != nil {
		return err
	}
	defer f.Close()

	dimS, err := f.AddDim("station", uint64(len(stations)))
	if err != nil {
		return err
	}
	dimT, err := f.AddDim("time", uint64(len(times)))
	if err != nil {
		return err
	}
	vid, err := f.AddVar("station_id", netcdf.INT, []netcdf.Dim{dimS})
	if err != nil {
		return err
	}
	vlat, err := f.AddVar("lat", netcdf.DOUBLE, []netcdf.Dim{dimS})
	if err != nil {
		return err
	}
	vlon, err := f.AddVar("lon", netcdf.DOUBLE, []netcdf.Dim{dimS})
	if err != nil {
		return err
	}
	vtime, err := f.AddVar("time", netcdf.DOUBLE, []netcdf.Dim{dimT})
	if err != nil {
		return err
	}
	grid := []netcdf.Dim{dimS, dimT}
	vzeta, err := f.AddVar("zeta", netcdf.FLOAT, grid)
	if err != nil {
		return err
	}
	vtide, err := f.AddVar("tide", netcdf.FLOAT, grid)
	if err != nil {
		return err
	}
	vanom, err := f.AddVar("anomaly", netcdf.FLOAT, grid)
	if err != nil {
		return err
	}
	if err := f.EndDef(); err != nil {
		return err
	}

	ids := make([]int32, len(stations))
	lats := make([]float64, len(stations))
	lons := make([]float64, len(stations))
	for i, st := range stations {
		ids[i] = int32(st.ID)
		lats[i] = st.Lat
		lons[i] = st.Lon
	}
	if err := vid.WriteInt32s(ids); err != nil {
		return err
	}
	if err := vlat.WriteFloat64s(lats); err != nil {
		return err
	}
	if err := vlon.WriteFloat64s(lons); err != nil {
		return err
	}
	if err := vtime.WriteFloat64s(times); err != nil {
		return err
	}
	for _, w := range []struct {
		v    netcdf.Var
		rows [][]float64
	}{
		{vzeta, zeta}, {vtide, tide}, {vanom, anom},
	} {
		flat := make([]float32, 0, len(stations)*len(times))
		for _, row := range w.rows {
			for _, x := range row {
				flat = append(flat, float32(x))
			}
		}
		if err := w.v.WriteFloat32s(flat); err != nil {
			return err
		}
	}
	return nil
}

// StationProducts extracts station elevation series from the merged
// field product, predicts the astronomical tide at each station, and
// writes the validation NetCDF with the model-minus-tide anomaly.
func StationProducts(conf Config) error {
	stations, err := ReadStations(conf.StationFile)
	if err != nil {
		return err
	}
	src := filepath.Join(conf.ComOut, conf.OutName(conf.FieldFile))
	ser, err := ExtractStations(src, stations, conf)
	if err != nil {
		return err
	}

	start := conf.Cycle.Start()
	initHour := hoursSinceYearStart(start)
	ts := make([]float64, len(ser.Times))
	for i, s := range ser.Times {
		ts[i] = initHour + s/3600
	}

	tide := make([][]float64, len(stations))
	anom := make([][]float64, len(stations))
	for i, st := range stations {
		tc, err := LoadConstit(conf.FT03, conf.FT07,
			start.Year(), st.ID)
		if err != nil {
			return fmt.Errorf("station %d (%s): %w",
				st.ID, st.Name, err)
		}
		tide[i] = tc.PredictSeries(ts, 0, true)
		anom[i] = Anomaly(ser.Zeta[i], tide[i])
		fmt.Printf("station %3d %-28s rmsd %6.3f max %6.3f\n",
			st.ID, st.Name,
			RMSD(colVec(ser.Zeta[i]), colVec(tide[i])),
			MaxAbs(anom[i]))
	}

	product := "station_products.nc"
	tmp := filepath.Join(conf.Data, product)
	if err := WriteStationProduct(tmp, stations, ser.Times,
		ser.Zeta, tide, anom); err != nil {
		return err
	}
	if err := Deliver(conf, tmp, product); err != nil {
		return err
	}
	fmt.Printf("delivered %s\n", conf.OutName(product))
	return nil
}

// hoursSinceYearStart converts an instant to hours since the start of
// its UTC year, the time base of the constituent tables.
func hoursSinceYearStart(t time.Time) float64 {
	y0 := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	return t.Sub(y0).Hours()
}
