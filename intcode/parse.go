package intcode

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// image is the grammar of a program file: comma separated signed
// integers, with an optional trailing comma.
type image struct {
	Cells []cell `parser:"( @Int ( \",\" @Int )* \",\"? )?"`
}

type cell int64

func (c *cell) Capture(values []string) error {
	v, err := strconv.ParseInt(values[0], 10, 64)
	if err != nil {
		return err
	}
	*c = cell(v)
	return nil
}

var imageParser = participle.MustBuild[image](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "Punct", Pattern: `,`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
)

// Parse reads a comma separated program from r.
func Parse(r io.Reader) ([]int64, error) {
	return parse("", r)
}

// ParseString parses a comma separated program.
func ParseString(s string) ([]int64, error) {
	return parse("", strings.NewReader(s))
}

// LoadFile reads the program stored in the named file.
func LoadFile(name string) ([]int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "load program")
	}
	defer f.Close()
	return parse(name, f)
}

func parse(name string, r io.Reader) ([]int64, error) {
	img, err := imageParser.Parse(name, r)
	if err != nil {
		return nil, errors.Wrap(err, "parse program")
	}
	if len(img.Cells) == 0 {
		return nil, errors.New("parse program: empty program")
	}
	program := make([]int64, len(img.Cells))
	for i, c := range img.Cells {
		program[i] = int64(c)
	}
	return program, nil
}
