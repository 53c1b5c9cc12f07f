package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeJobFile renders j into dir and returns the script path.
func writeJobFile(dir string, j JobSpec) (string, error) {
	name := filepath.Join(dir, j.Name+".pbs")
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	if err := WriteJob(f, j); err != nil {
		f.Close()
		return "", err
	}
	return name, f.Close()
}

// Launch writes and submits the preparation and forecast jobs. The
// forecast carries an afterok dependency on the preparation job, so
// the scheduler only starts the model after forcing assembly
// succeeded. A submission failure aborts immediately.
func Launch(conf Config) error {
	if err := os.MkdirAll(conf.Data, 0755); err != nil {
		return err
	}
	prep := JobSpec{
		Name:     conf.Run + "_prep_" + conf.Cycle.Tag(),
		Queue:    conf.Queue,
		Account:  conf.Account,
		Walltime: conf.PrepWalltime,
		Select:   conf.PrepSelect,
		Env:      EnvNames,
		Command:  conf.PrepCommand,
	}
	script, err := writeJobFile(conf.Data, prep)
	if err != nil {
		return err
	}
	prepID, err := Submit(script)
	if err != nil {
		return err
	}
	fmt.Printf("submitted %s as %s\n", prep.Name, prepID)

	fcst := JobSpec{
		Name:     conf.Run + "_fcst_" + conf.Cycle.Tag(),
		Queue:    conf.Queue,
		Account:  conf.Account,
		Walltime: conf.FcstWalltime,
		Select:   conf.FcstSelect,
		Depend:   prepID,
		Env:      EnvNames,
		Command:  conf.FcstCommand,
	}
	script, err = writeJobFile(conf.Data, fcst)
	if err != nil {
		return err
	}
	fcstID, err := Submit(script)
	if err != nil {
		return err
	}
	fmt.Printf("submitted %s as %s, afterok:%s\n",
		fcst.Name, fcstID, prepID)
	return nil
}
