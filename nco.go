package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Commands used for driving the NetCDF operators. Each is looked up
// in the system path on invocation.
var (
	NcksCommand     = "ncks"
	NcrcatCommand   = "ncrcat"
	NcrenameCommand = "ncrename"
)

// RunTool runs an external command with its output passed through to
// the operator log. The caller treats a non-zero exit as fatal; there
// is no retry of failed tool invocations.
func RunTool(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%q: %w", cmd.String(), err)
	}
	return nil
}

// RunToolIn is RunTool with an explicit working directory.
func RunToolIn(dir, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%q in %s: %w", cmd.String(), dir, err)
	}
	return nil
}

// NcksSubset extracts vars from src over the lon/lat window into dst.
func NcksSubset(src, dst string, vars []string,
	lonMin, lonMax, latMin, latMax float64) error {
	return RunTool(NcksCommand, "-O",
		"-v", strings.Join(vars, ","),
		"-d", fmt.Sprintf("lon,%g,%g", lonMin, lonMax),
		"-d", fmt.Sprintf("lat,%g,%g", latMin, latMax),
		src, dst)
}

// NcRcat concatenates srcs along the record dimension into dst.
func NcRcat(srcs []string, dst string) error {
	args := append([]string{"-O"}, srcs...)
	args = append(args, dst)
	return RunTool(NcrcatCommand, args...)
}

// NcRename applies old:new variable renames to file in place.
func NcRename(file string, renames []string) error {
	args := []string{"-O"}
	for _, r := range renames {
		pair := strings.SplitN(r, ":", 2)
		if len(pair) != 2 {
			return fmt.Errorf("bad rename %q, want old:new", r)
		}
		args = append(args, "-v", pair[0]+","+pair[1])
	}
	args = append(args, file)
	return RunTool(NcrenameCommand, args...)
}
