package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/user/vidcompare/pkg/ports"
)

var (
	// ErrUnknownCommand is returned for a line that names no command.
	ErrUnknownCommand = errors.New("session: unknown command")

	// ErrBadArgument is returned when a command's arguments do not parse.
	ErrBadArgument = errors.New("session: invalid argument")
)

// Kind identifies a console command.
type Kind int

const (
	CmdLoad Kind = iota
	CmdPlay
	CmdPause
	CmdToggle
	CmdSeek
	CmdStep
	CmdResize
	CmdLoop
	CmdMode
	CmdDivider
	CmdStatus
	CmdQuit
)

var kindNames = [...]string{
	"load", "play", "pause", "toggle", "seek", "step",
	"resize", "loop", "mode", "divider", "status", "quit",
}

func (k Kind) String() string {
	if k < CmdLoad || k > CmdQuit {
		return "unknown"
	}
	return kindNames[k]
}

func parseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Command is one parsed console line.
type Command struct {
	Kind     Kind
	Slot     ports.Slot
	Path     string
	Index    int // seek target or step delta
	Width    int
	Height   int
	Fraction float64
}

// ParseCommand parses one line of the console grammar:
//
//	load <1|2> <path>
//	play | pause | toggle
//	seek <index>
//	step [n]
//	resize <1|2> <w> <h>
//	loop | mode | status | quit
//	divider <0..1>
//
// Paths may contain spaces; everything after the slot is the path.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	name := strings.ToLower(fields[0])
	kind, ok := parseKind(name)
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	args := fields[1:]
	cmd := Command{Kind: kind}

	var err error
	switch kind {
	case CmdLoad:
		if len(args) < 2 {
			return Command{}, fmt.Errorf("%w: usage: load <1|2> <path>", ErrBadArgument)
		}
		if cmd.Slot, err = parseSlot(args[0]); err != nil {
			return Command{}, err
		}
		// keep interior whitespace of the path
		rest := strings.TrimSpace(line)
		rest = strings.TrimSpace(rest[len(fields[0]):])
		rest = strings.TrimSpace(rest[len(args[0]):])
		cmd.Path = rest

	case CmdSeek:
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: usage: seek <index>", ErrBadArgument)
		}
		if cmd.Index, err = parseInt(args[0]); err != nil {
			return Command{}, err
		}

	case CmdStep:
		cmd.Index = 1
		if len(args) > 1 {
			return Command{}, fmt.Errorf("%w: usage: step [n]", ErrBadArgument)
		}
		if len(args) == 1 {
			if cmd.Index, err = parseInt(args[0]); err != nil {
				return Command{}, err
			}
		}

	case CmdResize:
		if len(args) != 3 {
			return Command{}, fmt.Errorf("%w: usage: resize <1|2> <w> <h>", ErrBadArgument)
		}
		if cmd.Slot, err = parseSlot(args[0]); err != nil {
			return Command{}, err
		}
		if cmd.Width, err = parseInt(args[1]); err != nil {
			return Command{}, err
		}
		if cmd.Height, err = parseInt(args[2]); err != nil {
			return Command{}, err
		}

	case CmdDivider:
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: usage: divider <0..1>", ErrBadArgument)
		}
		cmd.Fraction, err = strconv.ParseFloat(args[0], 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q is not a number", ErrBadArgument, args[0])
		}

	default:
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrBadArgument, name)
		}
	}
	return cmd, nil
}

func parseSlot(s string) (ports.Slot, error) {
	n, err := strconv.Atoi(s)
	if err != nil || !ports.Slot(n).Valid() {
		return 0, fmt.Errorf("%w: slot %q (want 1 or 2)", ErrBadArgument, s)
	}
	return ports.Slot(n), nil
}

// parseInt parses a decimal integer. Out-of-range values saturate at the
// int limits so seeks clamp instead of failing.
func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return n, nil
		}
		return 0, fmt.Errorf("%w: %q is not an integer", ErrBadArgument, s)
	}
	return n, nil
}
