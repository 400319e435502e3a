package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownCommand = errors.New("unknown command")

type Kind int

const (
	CmdSelect Kind = iota
	CmdReset
	CmdConfirm
	CmdCancel
	CmdSize
	CmdResetScores
	CmdNames
	CmdSolo
	CmdHelp
	CmdQuit
)

// Command is one parsed input line.
type Command struct {
	Kind Kind
	// Index is the 0-based cell of CmdSelect.
	Index   int
	Size    int
	Player1 string
	Player2 string
}

// Parse reads a command line. Cells are numbered from 1 as printed on the
// board.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}

	if n, err := strconv.Atoi(fields[0]); err == nil && len(fields) == 1 {
		return Command{Kind: CmdSelect, Index: n - 1}, nil
	}

	switch strings.ToLower(fields[0]) {
	case "reset", "r":
		return Command{Kind: CmdReset}, nil
	case "yes", "y":
		return Command{Kind: CmdConfirm}, nil
	case "no", "n":
		return Command{Kind: CmdCancel}, nil
	case "size":
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("%w: usage: size N", ErrUnknownCommand)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, fmt.Errorf("%w: size %q is not a number", ErrUnknownCommand, fields[1])
		}
		return Command{Kind: CmdSize, Size: n}, nil
	case "scores":
		if len(fields) == 2 && strings.EqualFold(fields[1], "reset") {
			return Command{Kind: CmdResetScores}, nil
		}
		return Command{}, fmt.Errorf("%w: usage: scores reset", ErrUnknownCommand)
	case "names":
		cmd := Command{Kind: CmdNames}
		if len(fields) > 1 {
			cmd.Player1 = fields[1]
		}
		if len(fields) > 2 {
			cmd.Player2 = strings.Join(fields[2:], " ")
		}
		return cmd, nil
	case "solo":
		return Command{Kind: CmdSolo}, nil
	case "help", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "exit", "q":
		return Command{Kind: CmdQuit}, nil
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
}

const helpText = `Commands:
  <cell>        play the numbered cell
  reset         clear the board (asks for confirmation)
  yes / no      answer the reset question
  size N        switch to an N×N board
  scores reset  set both scores to zero
  names A B     rename the players
  solo          toggle playing against the computer
  quit          leave the game`
