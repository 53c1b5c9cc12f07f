package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// RawConf mirrors the TOML site file. Defaults are filled in before
// unmarshaling so an empty file is a valid configuration.
type RawConf struct {
	// scheduler
	Queue        string
	Account      string
	PrepWalltime string
	FcstWalltime string
	PrepSelect   string
	FcstSelect   string
	PrepCommand  string
	FcstCommand  string

	// forcing file selection
	MinSize2D   int64
	MinSize3D   int64
	TargetCount int
	MinUsable   int
	NowcastSpan int
	Horizon     int
	Step2D      int
	Step3D      int

	// subset window and variable handling
	LonMin, LonMax float64
	LatMin, LatMax float64
	Vars2D         string
	Vars3D         string
	Rename2D       []string
	Rename3D       []string

	// completion poll
	PollInterval int // seconds
	MaxTries     int
	Marker       string

	// external executables
	GenBnd     string
	GenNudge   string
	Combine    string
	Mpiexec    string
	PostWorker string
	NWorkers   int
	TimeStep   int // model time step, seconds

	// station products
	StationFile string
	FT03        string
	FT07        string
	ElevVar     string
	LonVar      string
	LatVar      string
	TimeVar     string
	FieldFile   string
}

// Config is the resolved configuration for one stage invocation. The
// directory roles and the cycle come from the environment, which is
// the only channel between stages; the TOML file carries site
// settings and the environment always wins.
type Config struct {
	RawConf

	Run        string
	Cycle      Cycle
	ComOut     string
	ComInRTOFS string
	Data       string
	GesIn      string

	Poll     time.Duration
	Fields2D []string
	Fields3D []string
}

// EnvNames are the variables propagated into every submitted job.
var EnvNames = []string{
	"RUN", "PDY", "cyc", "COMIN", "COMOUT", "COMINrtofs", "DATA", "GESIN",
}

func envOr(key, fall string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fall
}

// LoadConfig reads the site file, applies the environment overlay,
// and resolves the cycle from PDY and cyc.
func LoadConfig(filename string) (Config, error) {
	rc := RawConf{
		Queue:        "dev",
		PrepWalltime: "00:45:00",
		FcstWalltime: "06:00:00",
		PrepSelect:   "select=1:ncpus=16",
		FcstSelect:   "select=40:ncpus=128",
		PrepCommand:  "stofs3d -prep",
		FcstCommand:  "mpiexec pschism_hydro 6",

		MinSize2D:   2_000_000,
		MinSize3D:   60_000_000,
		TargetCount: 21,
		MinUsable:   3,
		NowcastSpan: 24,
		Horizon:     48,
		Step2D:      6,
		Step3D:      6,

		LonMin: -102, LonMax: -50,
		LatMin: 5, LatMax: 53,
		Vars2D:   "ssh,u_velocity,v_velocity",
		Vars3D:   "temperature,salinity",
		Rename2D: []string{"ssh:surf_el"},
		Rename3D: []string{"temperature:temp", "salinity:salt"},

		PollInterval: 60,
		MaxTries:     360,
		Marker:       "Run completed successfully",

		GenBnd:     "stofs_3d_atl_gen_bnd",
		GenNudge:   "stofs_3d_atl_gen_nudge",
		Combine:    "combine_hotstart7",
		Mpiexec:    "mpiexec",
		PostWorker: "stofs_3d_atl_extract",
		NWorkers:   6,
		TimeStep:   150,

		StationFile: "stations.dta",
		FT03:        "ft03.dta",
		FT07:        "ft07.dta",
		ElevVar:     "zeta",
		LonVar:      "lon",
		LatVar:      "lat",
		TimeVar:     "time",
		FieldFile:   "fields.cwl.nc",
	}
	f, err := os.Open(filename)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	cont, err := io.ReadAll(f)
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(cont, &rc); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return rc.ToConfig()
}

// ToConfig resolves the environment on top of the raw file contents.
func (rc RawConf) ToConfig() (Config, error) {
	conf := Config{RawConf: rc}
	conf.Run = envOr("RUN", "stofs_3d_atl")
	conf.ComOut = envOr("COMOUT", "com/out")
	conf.ComInRTOFS = envOr("COMINrtofs", "com/rtofs")
	conf.Data = envOr("DATA", ".")
	conf.GesIn = envOr("GESIN", "nwges")

	pdy := envOr("PDY", time.Now().UTC().Format("20060102"))
	hour, err := strconv.Atoi(envOr("cyc", "12"))
	if err != nil {
		return conf, fmt.Errorf("bad cyc: %w", err)
	}
	conf.Cycle, err = ParseCycle(pdy, hour)
	if err != nil {
		return conf, err
	}

	conf.Poll = time.Duration(rc.PollInterval) * time.Second
	conf.Fields2D = strings.Split(rc.Vars2D, ",")
	conf.Fields3D = strings.Split(rc.Vars3D, ",")
	return conf, nil
}

// OutName builds the standardized product name for the current run
// and cycle.
func (c Config) OutName(product string) string {
	return c.Run + "." + c.Cycle.Tag() + "." + product
}
