package intcode

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	for _, c := range []struct {
		in   string
		want []int64
		err  bool
	}{
		{in: "1,9,10,3,2,3,11,0,99,30,40,50", want: []int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}},
		{in: "99\n", want: []int64{99}},
		{in: "  3, -1 ,+4,\n", want: []int64{3, -1, 4}},
		{in: "010,08", want: []int64{10, 8}},
		{in: "104,1125899906842624,99", want: []int64{104, 1125899906842624, 99}},
		{in: "", err: true},
		{in: " \n", err: true},
		{in: "1,,2", err: true},
		{in: "1,x", err: true},
		{in: "1 2", err: true},
		{in: "99999999999999999999", err: true},
	} {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseString(c.in)
			if c.err {
				if err == nil {
					t.Fatalf("got %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !cellsEq(got, c.want) {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	got, err := Parse(strings.NewReader("3,0,4,0,99\n"))
	if err != nil {
		t.Fatal(err)
	}
	if w := []int64{3, 0, 4, 0, 99}; !cellsEq(got, w) {
		t.Errorf("got %v, want %v", got, w)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "prog.txt")
	if err := os.WriteFile(name, []byte("1101,2,3,0,99\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if w := []int64{1101, 2, 3, 0, 99}; !cellsEq(got, w) {
		t.Errorf("got %v, want %v", got, w)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("LoadFile of missing file succeeded")
	}
}
