package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Errors
var (
	ErrMarkerNotFound = errors.New("completion marker not found")
	ErrJobGone        = errors.New("model job left the queue without completing")
)

// markerInFile reports whether the status file contains the literal
// marker string. A missing status file is not an error; the model may
// not have started writing yet.
func markerInFile(filename, marker string) bool {
	f, err := os.Open(filename)
	if err != nil {
		return false
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), marker) {
			return true
		}
	}
	return false
}

// WaitModelDone polls statusFile for marker every interval, up to
// maxTries attempts. If jobid is non-empty and the scheduler reports
// the job gone while the marker is still absent, it fails immediately
// instead of burning the remaining attempts. This blocks the calling
// job for at most maxTries * interval of wall clock.
func WaitModelDone(statusFile, marker string, interval time.Duration,
	maxTries int, jobid string) error {
	for try := 0; try < maxTries; try++ {
		if markerInFile(statusFile, marker) {
			return nil
		}
		if jobid != "" {
			qstat := map[string]bool{jobid: true}
			Stat(&qstat)
			if !qstat[jobid] {
				// the model may have finished between
				// the scan and the queue check
				if markerInFile(statusFile, marker) {
					return nil
				}
				return fmt.Errorf("job %s: %w", jobid, ErrJobGone)
			}
		}
		fmt.Fprintf(os.Stderr, "waiting for %q in %s (%d/%d)\n",
			marker, statusFile, try+1, maxTries)
		time.Sleep(interval)
	}
	return fmt.Errorf("%s after %d attempts: %w",
		statusFile, maxTries, ErrMarkerNotFound)
}
