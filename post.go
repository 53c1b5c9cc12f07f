package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// PostFields are the derived surface products extracted from the raw
// model output, one worker invocation each.
var PostFields = []string{
	"cwl", "swl", "temperature", "salinity", "uvel", "vvel",
}

// WriteMPMD writes the multi-program command file handed to the
// external launcher: one worker command line per product index. The
// returned names are the product files the workers will create under
// dir.
func WriteMPMD(w io.Writer, worker string, fields []string, dir string) []string {
	products := make([]string, len(fields))
	for i, field := range fields {
		products[i] = fmt.Sprintf("fields.%s.nc", field)
		fmt.Fprintf(w, "%s %s %s %s\n",
			worker, field, dir, products[i])
	}
	return products
}

// Post waits for the model run to complete, merges the
// domain-decomposed hotstart output, fans product extraction out
// through the multi-program launcher, and archives the results.
func Post(conf Config) error {
	outputs := filepath.Join(conf.Data, "outputs")
	status := filepath.Join(outputs, "mirror.out")
	err := WaitModelDone(status, conf.Marker, conf.Poll,
		conf.MaxTries, os.Getenv("FCSTJOB"))
	if err != nil {
		return err
	}
	fmt.Printf("model run complete for cycle %s\n", conf.Cycle)

	// merge the per-rank hotstart files at the final iteration
	it := conf.Horizon * 3600 / conf.TimeStep
	if err := RunToolIn(outputs, conf.Combine,
		"-i", strconv.Itoa(it)); err != nil {
		return err
	}
	hot := filepath.Join(outputs, fmt.Sprintf("hotstart_it=%d.nc", it))
	if !exists(hot) {
		return fmt.Errorf("combiner did not produce %s", hot)
	}
	if err := Deliver(conf, hot, "restart.nc"); err != nil {
		return err
	}

	cmdfile := filepath.Join(conf.Data, "poescript")
	f, err := os.Create(cmdfile)
	if err != nil {
		return err
	}
	products := WriteMPMD(f, conf.PostWorker, PostFields, outputs)
	if err := f.Close(); err != nil {
		return err
	}
	// the launcher owns worker coordination; all we get back is the
	// aggregate exit status
	if err := RunToolIn(conf.Data, conf.Mpiexec,
		"-np", strconv.Itoa(conf.NWorkers), "cfp", cmdfile); err != nil {
		return err
	}

	for _, p := range products {
		src := filepath.Join(conf.Data, p)
		if !exists(src) {
			return fmt.Errorf("worker did not produce %s", src)
		}
		if err := Deliver(conf, src, p); err != nil {
			return err
		}
		fmt.Printf("delivered %s\n", conf.OutName(p))
	}
	return nil
}
