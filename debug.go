package main

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"golang.org/x/exp/slices"

	"github.com/sregea/advent-of-code-2019/intcode"
)

type debugger struct {
	run *runner

	log   *tview.TextView
	code  *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	mu      sync.Mutex
	brk     int64 // -1 if unset
	watches []int64
}

// codeLines is the number of instructions shown from the PC onward.
const codeLines = 16

func newDebugger() *debugger {
	d := &debugger{
		log: tview.NewTextView().
			SetMaxLines(1000),
		code: tview.NewTextView().
			SetWrap(false),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
		brk: -1,
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.code.SetBackgroundColor(tcell.ColorBlack)
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.code, 0, 1, false).
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 4, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetLabel("> ")
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := strings.TrimSpace(d.input.GetText())
		if line == "" {
			return
		}
		d.input.SetText("")
		c, err := parseCommand(line)
		if err != nil {
			log.Print(err)
			return
		}
		switch c.Verb {
		case "exit":
			d.app.Stop()
			return
		case "watch", "unwatch":
			addr := c.arg(0, 0)
			d.mu.Lock()
			if i := slices.Index(d.watches, addr); i >= 0 {
				d.watches = slices.Delete(d.watches, i, i+1)
			}
			if c.Verb == "watch" {
				d.watches = append(d.watches, addr)
				slices.Sort(d.watches)
			}
			d.mu.Unlock()
			log.Printf("%sing %d", c.Verb, addr)
		case "break":
			d.mu.Lock()
			d.brk = c.arg(0, -1)
			d.mu.Unlock()
		}
		d.run.Debug(c)
	})
	return d
}

func (d *debugger) Run() error { return d.app.Run() }

// StateFunc is called by the runner goroutine, which owns m.
func (d *debugger) StateFunc(m *intcode.Machine, k stateKind) {
	var (
		watch = d.watchContent(m)
		code  string
		state string
	)
	if k != quietState {
		code = codeContent(m)
		state = stateMsg(m, k)
	}
	d.app.QueueUpdateDraw(func() {
		switch k {
		case clearState:
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case breakState:
			d.state.SetTextColor(tcell.ColorYellow)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case pauseState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case haltState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkGreen)
		case faultState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkRed)
		}
		d.watch.SetText(watch)
		if k != quietState {
			d.code.SetText(code)
			d.state.SetText(state)
		}
	})
}

func stateMsg(m *intcode.Machine, k stateKind) string {
	kind := "       "
	switch k {
	case breakState:
		kind = "[break]"
	case pauseState:
		kind = "[pause]"
	case haltState:
		kind = "[halt] "
	case faultState:
		kind = "[FAULT]"
	}
	dis, _ := m.Disassemble(m.PC)
	return fmt.Sprintf("%6d %s %s\nrb: %d  steps: %d  mem: %d\nin:  %v\nout: %v\n",
		m.PC, kind, dis, m.RelBase, m.Steps(), m.Len(), m.Inputs(), tail(m.Outputs(), 16))
}

func codeContent(m *intcode.Machine) string {
	var (
		b    strings.Builder
		addr = m.PC
	)
	for i := 0; i < codeLines && int64(addr) < m.Len(); i++ {
		s, next := m.Disassemble(addr)
		mark := "  "
		if addr == m.PC {
			mark = "> "
		}
		fmt.Fprintf(&b, "%s%6d  %s\n", mark, addr, s)
		addr = next
	}
	return b.String()
}

func (d *debugger) watchContent(m *intcode.Machine) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	if d.brk >= 0 {
		fmt.Fprintf(&b, "[%d] brk!\n", d.brk)
	}
	for _, addr := range d.watches {
		fmt.Fprintf(&b, "[%d] %d\n", addr, m.Peek(addr))
	}
	return b.String()
}

// tail returns at most the last n elements of vs.
func tail(vs []int64, n int) []int64 {
	if len(vs) > n {
		return vs[len(vs)-n:]
	}
	return vs
}
