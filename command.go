package main

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// command is a debugger command line: a verb followed by integers.
type command struct {
	Verb string `parser:"@Ident"`
	Args []arg  `parser:"( @Int )*"`
}

type arg int64

func (a *arg) Capture(values []string) error {
	v, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return err
	}
	*a = arg(v)
	return nil
}

var commandParser = participle.MustBuild[command](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-z]+`},
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
)

var verbs = map[string]string{
	"s": "step", "step": "step",
	"c": "continue", "continue": "continue",
	"b": "break", "break": "break",
	"w": "watch", "watch": "watch",
	"u": "unwatch", "unwatch": "unwatch",
	"i": "input", "input": "input",
	"p": "poke", "poke": "poke",
	"r": "reset", "reset": "reset",
	"exit": "exit",
}

// parseCommand parses a debugger command line, expanding abbreviated
// verbs and checking the number of arguments.
func parseCommand(s string) (command, error) {
	c, err := commandParser.ParseString("", s)
	if err != nil {
		return command{}, errors.Wrapf(err, "command %q", s)
	}
	verb, ok := verbs[c.Verb]
	if !ok {
		return command{}, errors.Errorf("unknown command %q", c.Verb)
	}
	c.Verb = verb
	n := len(c.Args)
	switch verb {
	case "step":
		if n > 1 || n == 1 && c.Args[0] < 1 {
			return command{}, errors.New("usage: step [count]")
		}
	case "break":
		if n > 1 || n == 1 && c.Args[0] < 0 {
			return command{}, errors.New("usage: break [addr]")
		}
	case "watch", "unwatch":
		if n != 1 || c.Args[0] < 0 {
			return command{}, errors.Errorf("usage: %s addr", verb)
		}
	case "input":
		if n == 0 {
			return command{}, errors.New("usage: input value...")
		}
	case "poke":
		if n != 2 || c.Args[0] < 0 {
			return command{}, errors.New("usage: poke addr value")
		}
	default:
		if n != 0 {
			return command{}, errors.Errorf("usage: %s", verb)
		}
	}
	return *c, nil
}

func (c command) arg(i int, def int64) int64 {
	if i < len(c.Args) {
		return int64(c.Args[i])
	}
	return def
}

func (c command) values() []int64 {
	vs := make([]int64, len(c.Args))
	for i, a := range c.Args {
		vs[i] = int64(a)
	}
	return vs
}
