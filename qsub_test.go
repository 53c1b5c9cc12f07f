package main

import (
	"bytes"
	"testing"
)

func TestWriteJob(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJob(&buf, JobSpec{
		Name:     "stofs_3d_atl_fcst_t12z",
		Queue:    "dev",
		Account:  "STOFS-T2O",
		Walltime: "06:00:00",
		Select:   "select=40:ncpus=128",
		Depend:   "82134.hbatch01",
		Env:      []string{"RUN", "PDY", "cyc"},
		Command:  "mpiexec pschism_hydro 6",
	})
	if err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	want := `#!/bin/bash
#PBS -N stofs_3d_atl_fcst_t12z
#PBS -q dev
#PBS -A STOFS-T2O
#PBS -l walltime=06:00:00
#PBS -l select=40:ncpus=128
#PBS -j oe
#PBS -W depend=afterok:82134.hbatch01
#PBS -v RUN,PDY,cyc

cd $PBS_O_WORKDIR
mpiexec pschism_hydro 6
`
	if got != want {
		t.Errorf("got\n%#+v, wanted\n%#+v\n", got, want)
	}
}

func TestWriteJobMinimal(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJob(&buf, JobSpec{
		Name:     "stofs_3d_atl_prep_t12z",
		Queue:    "dev",
		Walltime: "00:45:00",
		Select:   "select=1:ncpus=16",
		Command:  "stofs3d -prep",
	})
	if err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	want := `#!/bin/bash
#PBS -N stofs_3d_atl_prep_t12z
#PBS -q dev
#PBS -l walltime=00:45:00
#PBS -l select=1:ncpus=16
#PBS -j oe

cd $PBS_O_WORKDIR
stofs3d -prep
`
	if got != want {
		t.Errorf("got\n%#+v, wanted\n%#+v\n", got, want)
	}
}

func TestSubmit(t *testing.T) {
	tmp := SUBMIT_CMD
	SUBMIT_CMD = "scripts/qsub"
	defer func() {
		SUBMIT_CMD = tmp
	}()
	got, err := Submit("testfiles/file")
	if err != nil {
		t.Fatal(err)
	}
	want := "82134.hbatch01"
	if got != want {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestSubmitFailure(t *testing.T) {
	tmp := SUBMIT_CMD
	SUBMIT_CMD = "false"
	defer func() {
		SUBMIT_CMD = tmp
	}()
	if _, err := Submit("testfiles/file"); err == nil {
		t.Errorf("expected error from failing submission\n")
	}
}
