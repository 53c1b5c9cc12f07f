package main

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// names generates n fake candidate paths with the given prefix.
func names(prefix string, n int) []string {
	ret := make([]string, n)
	for i := range ret {
		ret[i] = fmt.Sprintf("%s%02d.nc", prefix, i)
	}
	return ret
}

func TestQualify(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, size int) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, make([]byte, size), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	big1 := write("n001.nc", 500)
	write("n002.nc", 10) // undersized
	big2 := write("n003.nc", 100)
	missing := filepath.Join(dir, "n004.nc")
	got := Qualify([]string{
		big1,
		filepath.Join(dir, "n002.nc"),
		big2,
		missing,
	}, 100)
	want := []string{big1, big2}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestMergeFallback(t *testing.T) {
	tests := []struct {
		desc    string
		primary int
		backup  int
		target  int
		want    func(p, b []string) []string
	}{
		{
			desc:    "primary short, backup pads the tail",
			primary: 12, backup: 18, target: 21,
			want: func(p, b []string) []string {
				return append(append([]string{}, p...), b[12:]...)
			},
		},
		{
			desc:    "primary alone too small, backup serves whole",
			primary: 1, backup: 20, target: 21,
			want: func(p, b []string) []string { return b },
		},
		{
			desc:    "both too small",
			primary: 2, backup: 1, target: 21,
			want: func(p, b []string) []string { return nil },
		},
		{
			desc:    "primary exceeds target, used unchanged",
			primary: 25, backup: 18, target: 21,
			want: func(p, b []string) []string { return p },
		},
		{
			desc:    "primary meets target exactly",
			primary: 21, backup: 25, target: 21,
			want: func(p, b []string) []string { return p },
		},
		{
			desc:    "three primary files are enough to anchor",
			primary: 3, backup: 10, target: 21,
			want: func(p, b []string) []string {
				return append(append([]string{}, p...), b[3:]...)
			},
		},
		{
			desc:    "backup shorter than primary, no padding",
			primary: 5, backup: 4, target: 21,
			want: func(p, b []string) []string { return p },
		},
		{
			desc:    "two primary falls through to backup",
			primary: 2, backup: 3, target: 21,
			want: func(p, b []string) []string { return b },
		},
	}
	for _, test := range tests {
		p := names("p", test.primary)
		b := names("b", test.backup)
		got := MergeFallback(p, b, test.target)
		want := test.want(p, b)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %v, wanted %v\n", test.desc, got, want)
		}
	}
}

// the merged result never contains an entry absent from both inputs,
// and padding always yields the backup length
func TestMergeFallbackLength(t *testing.T) {
	p := names("p", 12)
	b := names("b", 18)
	got := MergeFallback(p, b, 21)
	if len(got) != len(b) {
		t.Errorf("got length %d, wanted %d\n", len(got), len(b))
	}
}

func TestAlign(t *testing.T) {
	a := names("a", 18)
	b := names("b", 15)
	ga, gb := Align(a, b)
	if len(ga) != 15 || len(gb) != 15 {
		t.Errorf("got lengths %d, %d, wanted 15, 15\n", len(ga), len(gb))
	}
	if !reflect.DeepEqual(ga, a[:15]) || !reflect.DeepEqual(gb, b) {
		t.Errorf("truncation changed the leading entries\n")
	}
}

func TestUsable(t *testing.T) {
	if Usable(names("m", 2), 3) {
		t.Errorf("2 files should not be usable with minimum 3\n")
	}
	if !Usable(names("m", 3), 3) {
		t.Errorf("3 files should be usable with minimum 3\n")
	}
}
