package main

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"syscall"
)

// TrimExt removes the extension from filename.
func TrimExt(filename string) string {
	return filename[:len(filename)-len(path.Ext(filename))]
}

func exists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// Install copies src into place at dst via a temporary file in the
// destination directory, so a consumer never sees a partial product.
func Install(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".install")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Chmod(dst, 0644)
}

// Deliver installs a product into both the shared output directory
// and the rerun cache used as next cycle's fallback.
func Deliver(conf Config, src, product string) error {
	if err := os.MkdirAll(conf.ComOut, 0755); err != nil {
		return err
	}
	if err := os.MkdirAll(conf.GesIn, 0755); err != nil {
		return err
	}
	out := filepath.Join(conf.ComOut, conf.OutName(product))
	if err := Install(src, out); err != nil {
		return fmt.Errorf("installing %s: %w", out, err)
	}
	rerun := filepath.Join(conf.GesIn, product)
	if err := Install(src, rerun); err != nil {
		return fmt.Errorf("caching %s: %w", rerun, err)
	}
	return nil
}

// DupOutErr uses syscall.Dup2 to direct the stdout and stderr streams
// to files
func DupOutErr(base string) {
	// https://github.com/golang/go/issues/325
	outfile, _ := os.Create(base + ".out")
	errfile, _ := os.Create(base + ".log")
	syscall.Dup2(int(outfile.Fd()), 1)
	syscall.Dup2(int(errfile.Fd()), 2)
}
