package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/sregea/advent-of-code-2019/intcode"
)

// searchNounVerb runs the program in file with every noun and verb from 0
// to 99 written to addresses 1 and 2, and prints the first pair that
// leaves target at address 0.
func searchNounVerb(file string, patches []patch, target int64) error {
	program, err := intcode.LoadFile(file)
	if err != nil {
		return err
	}
	if program, err = applyPatches(program, patches); err != nil {
		return err
	}
	noun, verb, err := search(program, target)
	if err != nil {
		return errors.Wrap(err, file)
	}
	fmt.Printf("noun %d, verb %d: %d\n", noun, verb, 100*noun+verb)
	return nil
}

// search returns the first noun and verb, in that order of priority, for
// which program halts with target at address 0. Tries that fault are
// skipped. One Machine is reused, reloaded before every try.
func search(program []int64, target int64) (noun, verb int64, err error) {
	m := intcode.New(nil, intcode.Echo(false))
	for noun = 0; noun < 100; noun++ {
		for verb = 0; verb < 100; verb++ {
			m.Load(program)
			m.Reset()
			m.Write(1, noun)
			m.Write(2, verb)
			if st, _ := m.Run(); st != intcode.Halted {
				continue
			}
			if v, _ := m.Read(0); v == target {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, errors.Errorf("no noun and verb leave %d at address 0", target)
}
