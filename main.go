package main

import (
	"flag"
	"fmt"
	"log"
	"os"
)

// Flags
var (
	launch = flag.Bool("launch", false,
		"submit the preparation and forecast jobs")
	prep = flag.Bool("prep", false,
		"assemble boundary and nudging forcing from RTOFS")
	post = flag.Bool("post", false,
		"wait for the model run, then merge restarts and build products")
	stations = flag.Bool("stations", false,
		"extract station series and write the tide validation product")
	cycleFlag = flag.String("cycle", "",
		"cycle as yyyymmddhh, overriding PDY and cyc")
	noDup = flag.Bool("nodup", false,
		"leave stdout and stderr on the terminal")
)

func main() {
	host, _ := os.Hostname()
	flag.Parse()
	confFile := "stofs3d.toml"
	if args := flag.Args(); len(args) >= 1 {
		confFile = args[0]
	}
	conf, err := LoadConfig(confFile)
	if err != nil {
		log.Fatalf("loading %s: %v", confFile, err)
	}
	if *cycleFlag != "" {
		conf.Cycle, err = ParseCycleString(*cycleFlag)
		if err != nil {
			log.Fatalln(err)
		}
	}

	var (
		stage string
		run   func(Config) error
	)
	for _, s := range []struct {
		set  bool
		name string
		run  func(Config) error
	}{
		{*launch, "launch", Launch},
		{*prep, "prep", Prep},
		{*post, "post", Post},
		{*stations, "stations", StationProducts},
	} {
		if !s.set {
			continue
		}
		if run != nil {
			log.Fatalln("exactly one of -launch, -prep, -post," +
				" -stations is required")
		}
		stage, run = s.name, s.run
	}
	if run == nil {
		log.Fatalln("exactly one of -launch, -prep, -post," +
			" -stations is required")
	}

	if !*noDup {
		DupOutErr(conf.Run + "_" + stage)
	}
	fmt.Printf("running on host: %s\n", host)
	fmt.Printf("%s stage for cycle %s of %s\n", stage, conf.Cycle, conf.Run)
	if err := run(conf); err != nil {
		log.Fatalf("%s stage failed: %v", stage, err)
	}
	fmt.Printf("%s stage done\n", stage)
}
