package main

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// NumConstit is the number of NOS tidal constituents carried in the
// ft03/ft07 harmonic tables.
const NumConstit = 37

var ErrStationNotFound = errors.New("station not in constituent table")

// TideConstit holds everything needed to predict tides at one
// station for one year:
//
//	z(t) = z0 + sum_j Xode_j * Amp_j * cos(pi/180 * (Ang_j*t + Vpu_j - Epoc_j))
//
// with t in hours since the beginning of Year.
type TideConstit struct {
	Station int
	Year    int
	Mllw    int
	Xode    [NumConstit]float64 // node factor, by year
	Vpu     [NumConstit]float64 // V+U phase lead, degrees, by year
	Ang     [NumConstit]float64 // constituent speed, degrees/hour
	Amp     [NumConstit]float64 // station amplitude
	Epoc    [NumConstit]float64 // station epoch, degrees
}

func fixedInt(line string, lo, hi int) (int, error) {
	if len(line) < hi {
		return 0, fmt.Errorf("short line %q", line)
	}
	return strconv.Atoi(strings.TrimSpace(line[lo:hi]))
}

// parseFT03Line reads one yearly line covering constituents beg..end
// (1-based, inclusive): a 4-char year, 4 chars of padding, then 8-char
// groups of node factor (milli-units) and V+U (tenths of a degree).
func parseFT03Line(line string, beg, end int,
	xode, vpu *[NumConstit]float64) (int, error) {
	yr, err := fixedInt(line, 0, 4)
	if err != nil {
		return 0, err
	}
	if len(line) < 8 {
		return 0, fmt.Errorf("short line %q", line)
	}
	line = line[8:]
	for i := beg; i <= end; i++ {
		x, err := fixedInt(line, 0, 4)
		if err != nil {
			return 0, err
		}
		v, err := fixedInt(line, 4, 8)
		if err != nil {
			return 0, err
		}
		xode[i-1] = float64(x) / 1000
		vpu[i-1] = float64(v) / 10
		line = line[8:]
	}
	return yr, nil
}

// readFT03 loads the node factors and V+U phases for year from the
// yearly table, five lines per year.
func readFT03(filename string, year int,
	xode, vpu *[NumConstit]float64) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return fmt.Errorf("%s: empty file", filename)
	}
	line := scanner.Text()
	first, err := fixedInt(line, 0, 4)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	if year < first {
		return fmt.Errorf("%s starts at %d, want %d", filename, first, year)
	}
	for i := 0; i < (year-first)*5-1; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("%s: unexpected EOF seeking %d",
				filename, year)
		}
	}
	if year != first {
		if !scanner.Scan() {
			return fmt.Errorf("%s: unexpected EOF seeking %d",
				filename, year)
		}
		line = scanner.Text()
	}
	yr, err := parseFT03Line(line, 1, 8, xode, vpu)
	if err != nil {
		return err
	}
	if yr != year {
		return fmt.Errorf("%s: found year %d, want %d", filename, yr, year)
	}
	for _, g := range [][2]int{{9, 16}, {17, 24}, {25, 32}, {33, NumConstit}} {
		if !scanner.Scan() {
			return fmt.Errorf("%s: unexpected EOF in year %d",
				filename, year)
		}
		if _, err := parseFT03Line(scanner.Text(), g[0], g[1],
			xode, vpu); err != nil {
			return err
		}
	}
	return nil
}

// readFT07 loads the constituent speeds and the amplitude/epoch block
// for station nsta. The table opens with six speed lines of 10-char
// groups (1e-7 degrees/hour), then one 8-line block per station: the
// station number, the MLLW datum, and six amplitude/epoch lines of
// 5+4 char groups (milli-units and tenths of a degree) behind an
// 8-char prefix.
func readFT07(filename string, nsta int,
	ang, amp, epoc *[NumConstit]float64) (mllw int, err error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for i := 0; i < 6; i++ {
		j1 := 1 + i*7
		j2 := j1 + 6
		if j2 > NumConstit {
			j2 = NumConstit
		}
		if !scanner.Scan() {
			return 0, fmt.Errorf("%s: unexpected EOF in speeds", filename)
		}
		line := scanner.Text()
		for j := j1; j <= j2; j++ {
			a, err := fixedInt(line, 0, 10)
			if err != nil {
				return 0, err
			}
			ang[j-1] = float64(a) / 1e7
			line = line[10:]
		}
	}
	for i := 0; i < 8*(nsta-1); i++ {
		if !scanner.Scan() {
			return 0, fmt.Errorf("%s: station %d: %w",
				filename, nsta, ErrStationNotFound)
		}
	}
	if !scanner.Scan() {
		return 0, fmt.Errorf("%s: station %d: %w",
			filename, nsta, ErrStationNotFound)
	}
	got, err := fixedInt(scanner.Text(), 0, 3)
	if err != nil {
		return 0, err
	}
	if got != nsta {
		return 0, fmt.Errorf("%s: found station %d, want %d",
			filename, got, nsta)
	}
	if !scanner.Scan() {
		return 0, fmt.Errorf("%s: unexpected EOF at datum", filename)
	}
	mllw, err = fixedInt(scanner.Text(), 0, 6)
	if err != nil {
		return 0, err
	}
	groups := [][2]int{{1, 7}, {8, 14}, {15, 21}, {22, 28}, {29, 35}, {36, 37}}
	for _, g := range groups {
		if !scanner.Scan() {
			return 0, fmt.Errorf("%s: unexpected EOF in constants",
				filename)
		}
		raw := scanner.Text()
		if len(raw) < 8 {
			return 0, fmt.Errorf("%s: short constants line %q",
				filename, raw)
		}
		line := raw[8:]
		for j := g[0]; j <= g[1]; j++ {
			a, err := fixedInt(line, 0, 5)
			if err != nil {
				return 0, err
			}
			e, err := fixedInt(line, 5, 9)
			if err != nil {
				return 0, err
			}
			amp[j-1] = float64(a) / 1000
			epoc[j-1] = float64(e) / 10
			line = line[9:]
		}
	}
	return mllw, nil
}

// LoadConstit reads the constituent data needed to predict tides at
// one station for one year.
func LoadConstit(ft03, ft07 string, year, nsta int) (*TideConstit, error) {
	tc := &TideConstit{Station: nsta, Year: year}
	if err := readFT03(ft03, year, &tc.Xode, &tc.Vpu); err != nil {
		return nil, err
	}
	mllw, err := readFT07(ft07, nsta, &tc.Ang, &tc.Amp, &tc.Epoc)
	if err != nil {
		return nil, err
	}
	tc.Mllw = mllw
	return tc, nil
}

// Predict computes the tide at t hours since the beginning of the
// loaded year, on top of datum offset z0. Without seasonal
// adjustment, constituents 15 and 17 (Sa and Ssa) are left out.
func (tc *TideConstit) Predict(t, z0 float64, seasonal bool) float64 {
	z := z0
	for j := 0; j < NumConstit; j++ {
		if !seasonal && (j == 14 || j == 16) {
			continue
		}
		z += tc.Xode[j] * tc.Amp[j] *
			math.Cos(math.Pi/180*(tc.Ang[j]*t+tc.Vpu[j]-tc.Epoc[j]))
	}
	return z
}

// PredictSeries evaluates the tide at each of ts, hours since the
// beginning of the loaded year.
func (tc *TideConstit) PredictSeries(ts []float64, z0 float64,
	seasonal bool) []float64 {
	ret := make([]float64, len(ts))
	for i, t := range ts {
		ret[i] = tc.Predict(t, z0, seasonal)
	}
	return ret
}
