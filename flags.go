package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/sregea/advent-of-code-2019/intcode"
)

// valuesFlag is a comma separated list of integers.
type valuesFlag []int64

func (f *valuesFlag) String() string {
	s := make([]string, len(*f))
	for i, v := range *f {
		s[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(s, ",")
}

func (f *valuesFlag) Set(s string) error {
	vs, err := intcode.ParseString(s)
	if err != nil {
		return err
	}
	*f = append(*f, vs...)
	return nil
}

type patch struct {
	addr, value int64
}

// patchFlag collects repeated addr=value memory patches.
type patchFlag []patch

func (f *patchFlag) String() string {
	s := make([]string, len(*f))
	for i, p := range *f {
		s[i] = fmt.Sprintf("%d=%d", p.addr, p.value)
	}
	return strings.Join(s, " ")
}

func (f *patchFlag) Set(s string) error {
	a, v, ok := strings.Cut(s, "=")
	if !ok {
		return errors.Errorf("patch %q: want addr=value", s)
	}
	addr, err := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
	if err != nil || addr < 0 {
		return errors.Errorf("patch %q: bad address", s)
	}
	value, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return errors.Wrapf(err, "patch %q", s)
	}
	*f = append(*f, patch{addr, value})
	return nil
}

// addrsFlag collects repeated memory addresses.
type addrsFlag []int64

func (f *addrsFlag) String() string {
	return fmt.Sprint([]int64(*f))
}

func (f *addrsFlag) Set(s string) error {
	addr, err := strconv.ParseInt(s, 10, 64)
	if err != nil || addr < 0 {
		return errors.Errorf("bad address %q", s)
	}
	*f = append(*f, addr)
	return nil
}

// modeFlags lists the flags each mode of the command takes.
var modeFlags = map[string][]string{
	"run":    {"in", "set", "peek", "interactive", "trace", "cpu_profile"},
	"dev":    {"dev", "debug", "in", "set"},
	"maze":   {"maze", "png", "scale", "gui", "delay", "set", "cpu_profile"},
	"drive":  {"drive", "set", "cpu_profile"},
	"search": {"search", "set", "cpu_profile"},
}

// checkFlags reports the first of the set flags that mode does not take.
func checkFlags(mode string, set []string) error {
	for _, name := range set {
		if !slices.Contains(modeFlags[mode], name) {
			return errors.Errorf("-%s does not apply in %s mode", name, mode)
		}
	}
	return nil
}
