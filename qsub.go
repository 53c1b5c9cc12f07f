package main

import (
	"embed"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed job.tmpl
var Templates embed.FS

// JobSpec describes one scheduler job: its resource request, the
// environment variables propagated into the job, and an optional
// afterok dependency on another job id.
type JobSpec struct {
	Name     string
	Queue    string
	Account  string
	Walltime string
	Select   string
	Depend   string
	Env      []string
	Command  string
}

var JOB_TEMPLATE *template.Template

func init() {
	JOB_TEMPLATE = template.Must(
		template.New("job.tmpl").
			Funcs(template.FuncMap{"join": strings.Join}).
			ParseFS(Templates, "job.tmpl"),
	)
}

// WriteJob renders the batch script for j to w.
func WriteJob(w io.Writer, j JobSpec) error {
	return JOB_TEMPLATE.Execute(w, j)
}

var SUBMIT_CMD string = "qsub"

// Submit sends filename to the queue and returns the job id. The
// directory for the submission command is taken from the filename, so
// the full path needs to be present. A submission failure is reported
// to the caller; there is no retry.
func Submit(filename string) (string, error) {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)
	cmd := exec.Command(SUBMIT_CMD, base)
	cmd.Dir = dir
	byts, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%q failed: %w", cmd.String(), err)
	}
	// output is the bare job id, like "82134.hbatch01"
	fields := strings.Fields(string(byts))
	if len(fields) < 1 {
		return "", fmt.Errorf("%q produced no job id", cmd.String())
	}
	return fields[0], nil
}
