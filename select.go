package main

import (
	"log"
	"os"
)

// Qualify retains the candidates that exist and meet the minimum byte
// size, preserving order. A rejected candidate is a warning, not an
// error: gaps in the RTOFS feed are routine and the merge step pads
// from the previous cycle.
func Qualify(paths []string, minSize int64) []string {
	ret := make([]string, 0, len(paths))
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			log.Printf("warning: skipping %s: %v", p, err)
			continue
		}
		if fi.Size() < minSize {
			log.Printf("warning: skipping %s: %d bytes below minimum %d",
				p, fi.Size(), minSize)
			continue
		}
		ret = append(ret, p)
	}
	return ret
}

// MergeFallback merges the qualified file lists for one family.
// primary is today's cycle, backup is yesterday's. When primary stops
// short of target and backup reaches further, the tail is padded with
// backup entries starting at the index where primary ends, so the
// result stays time-aligned. A list of 1 or 2 files cannot support the
// padding logic, hence the > 2 boundary on both branches.
func MergeFallback(primary, backup []string, target int) []string {
	switch {
	case len(primary) > 2:
		if len(primary) < target && len(backup) > len(primary) {
			ret := make([]string, 0, len(backup))
			ret = append(ret, primary...)
			ret = append(ret, backup[len(primary):]...)
			return ret
		}
		return primary
	case len(backup) > 2:
		return backup
	}
	return nil
}

// Usable reports whether a merged list carries enough files for heavy
// processing.
func Usable(merged []string, minUsable int) bool {
	return len(merged) >= minUsable
}

// Align truncates the 2-D and 3-D merged lists to a common length.
// Downstream NetCDF operations pair the families by time index, so
// both must stop at the shorter one.
func Align(a, b []string) ([]string, []string) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return a[:n], b[:n]
}
