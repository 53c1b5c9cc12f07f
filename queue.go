package main

import (
	"bufio"
	"os/exec"
	"strings"
)

var STAT_CMD = func() (string, []string) {
	return "qstat", []string{}
}

// Stat updates a map of job ids to their queue status. The map value
// is true if the job is queued (Q), running (R) or held (H) and false
// otherwise, including jobs that have left the queue entirely.
func Stat(qstat *map[string]bool) {
	name, args := STAT_CMD()
	status, _ := exec.Command(name, args...).CombinedOutput()
	scanner := bufio.NewScanner(strings.NewReader(string(status)))
	var (
		line   string
		fields []string
		header = true
	)
	// initialize them all to false and set true if seen active
	for key := range *qstat {
		(*qstat)[key] = false
	}
	for scanner.Scan() {
		line = scanner.Text()
		if strings.HasPrefix(line, "--") {
			header = false
			continue
		} else if header {
			continue
		}
		fields = strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		if _, ok := (*qstat)[fields[0]]; ok {
			if strings.Contains("QRH", fields[4]) {
				(*qstat)[fields[0]] = true
			}
		}
	}
}
