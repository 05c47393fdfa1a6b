package main

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/sregea/advent-of-code-2019/intcode"
)

type stateKind int

const (
	clearState stateKind = iota // running
	quietState                  // running; only watches changed
	pauseState                  // stopped by a debugger command
	breakState                  // stopped at the breakpoint
	haltState                   // the program halted
	faultState                  // the program failed
)

// runner executes a Machine on its own goroutine, taking commands from
// the debugger and new programs from the dev mode watcher.
type runner struct {
	debug bool
	opts  []intcode.Option
	state func(*intcode.Machine, stateKind)

	cmds chan command
	swap chan []int64
	exit chan bool
}

// sliceSteps is the number of instructions executed between checks for
// commands.
const sliceSteps = 10000

func newRunner(debug bool, state func(*intcode.Machine, stateKind), opts ...intcode.Option) *runner {
	return &runner{
		debug: debug,
		opts:  opts,
		state: state,
		cmds:  make(chan command, 64),
		swap:  make(chan []int64),
		exit:  make(chan bool),
	}
}

// Debug sends a command to the running program.
func (r *runner) Debug(c command) {
	select {
	case r.cmds <- c:
	case <-r.exit:
	}
}

// Swap replaces the running program with a fresh Machine loaded with
// program.
func (r *runner) Swap(program []int64) {
	select {
	case r.swap <- program:
	case <-r.exit:
	}
}

// Exit stops Run.
func (r *runner) Exit() { close(r.exit) }

// Run executes program until Exit is called. In debug mode every program
// starts paused.
func (r *runner) Run(program []int64) {
	s := &session{r: r, program: program, brk: -1}
	s.reset()
	for {
		if s.stopped() {
			select {
			case c := <-r.cmds:
				s.do(c)
			case p := <-r.swap:
				s.program = p
				s.reset()
			case <-r.exit:
				return
			}
			continue
		}
		s.run(sliceSteps)
		select {
		case c := <-r.cmds:
			s.do(c)
		case p := <-r.swap:
			s.program = p
			s.reset()
		case <-r.exit:
			return
		default:
		}
	}
}

// session is the state of one program under a runner.
type session struct {
	r       *runner
	program []int64
	m       *intcode.Machine

	paused bool
	done   bool  // halted or failed
	err    error // why the program failed
	brk    int   // breakpoint address, or -1
	budget int   // instructions left before pausing, 0 for no limit
	shown  time.Time
}

func (s *session) reset() {
	s.m = intcode.New(s.program, s.r.opts...)
	s.paused = s.r.debug
	s.done, s.err = false, nil
	s.budget = 0
	k := clearState
	if s.paused {
		k = pauseState
	}
	s.report(k)
}

func (s *session) stopped() bool { return s.paused || s.done }

func (s *session) report(k stateKind) {
	if s.r.state != nil {
		s.r.state(s.m, k)
	}
	s.shown = time.Now()
}

func (s *session) run(n int) {
	for i := 0; i < n; i++ {
		st, err := s.m.Step()
		switch st {
		case intcode.Halted:
			log.Printf("halted after %d steps", s.m.Steps())
			s.done = true
			s.report(haltState)
			return
		case intcode.Errored:
			if _, ok := err.(*intcode.Fault); !ok {
				log.Print(err)
			}
			s.done, s.err = true, err
			s.report(faultState)
			return
		}
		if s.budget > 0 {
			if s.budget--; s.budget == 0 {
				s.paused = true
				s.report(pauseState)
				return
			}
		}
		if s.m.PC == s.brk {
			log.Printf("break at %d", s.brk)
			s.paused = true
			s.report(breakState)
			return
		}
	}
	if time.Since(s.shown) > 100*time.Millisecond {
		s.report(clearState)
	}
}

func (s *session) do(c command) {
	switch c.Verb {
	case "step":
		s.paused = false
		s.budget = int(c.arg(0, 1))
	case "continue":
		s.paused = false
		s.budget = 0
	case "break":
		s.brk = int(c.arg(0, -1))
		if s.brk < 0 {
			log.Print("cleared break")
		} else {
			log.Printf("set break %d", s.brk)
		}
	case "input":
		s.m.AppendInputs(c.values()...)
		if errors.Is(s.err, intcode.StarvedInput) {
			s.done, s.err = false, nil
			s.paused = true
		}
	case "poke":
		if err := s.m.Write(c.arg(0, 0), c.arg(1, 0)); err != nil {
			log.Print(err)
		}
	case "reset":
		log.Print("reset")
		s.reset()
		return
	}
	k := quietState
	switch {
	case s.done && s.err != nil:
		k = faultState
	case s.done:
		k = haltState
	case c.Verb == "step" || c.Verb == "continue":
		k = clearState
	case s.paused:
		k = pauseState
	}
	s.report(k)
}
