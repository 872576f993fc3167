package expr

import (
	"github.com/xeniagda/red/internal/action"
)

// Interpreter runs command lines against a session.
type Interpreter struct {
	ctx      *action.Context
	tabWidth int
}

func NewInterpreter(ctx *action.Context, tabWidth int) *Interpreter {
	return &Interpreter{ctx: ctx, tabWidth: tabWidth}
}

// Execute runs one command line. The address at its start becomes the cursor
// of the active buffer. The commands after it are then parsed and applied one
// at a time, each against the buffer that is active when it is reached. The
// first error ends the line; commands already applied stay applied.
func (in *Interpreter) Execute(line string) error {
	dbg("Interpreter.Execute: %q", line)

	input := []rune(line)
	b := in.ctx.Session.Current()
	r, end, err := parseAddress(input, 0, b, in.tabWidth)
	if err != nil {
		return err
	}
	b.Cursor = r

	p := cmdParser{input: input, pos: end, tabWidth: in.tabWidth}
	for {
		p.skipBlanks()
		if p.atEnd() {
			return nil
		}

		p.buf = in.ctx.Session.Current()
		a, err := p.parse()
		if err != nil {
			return err
		}

		if err := action.Exec(in.ctx, a); err != nil {
			return err
		}
	}
}

// Debug, if set, receives trace messages from parsing and evaluation.
var Debug func(message string, args ...interface{})

func dbg(message string, args ...interface{}) {
	if Debug != nil {
		Debug(message, args...)
	}
}
