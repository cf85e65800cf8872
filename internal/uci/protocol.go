// Package uci implements a stdin/stdout UCI protocol loop around an
// internal/engine.Engine, grounded on the teacher's uci package.
package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/corvidchess/lucid/internal/board"
	"github.com/corvidchess/lucid/internal/engine"
)

// Engine is the subset of internal/engine.Engine the protocol loop
// drives; declared as an interface so tests can swap in a stub.
type Engine interface {
	GetInfo() (name, version, author string)
	GetOptions() []engine.UciOption
	Prepare()
	Clear()
	Search(ctx context.Context, params engine.SearchParams) engine.SearchInfo
}

type protocol struct {
	engine    Engine
	out       io.Writer
	positions []board.Position
	done      chan struct{}
	cancel    context.CancelFunc
	fields    []string
}

// Run reads UCI commands from in and writes responses to out until a
// "quit" command or end of input.
func Run(eng Engine, in io.Reader, out io.Writer) {
	var p = newProtocol(eng, out)
	p.run(in)
}

func newProtocol(eng Engine, out io.Writer) *protocol {
	var initPosition, _ = board.NewPositionFromFEN(board.InitialPositionFen)
	var p = &protocol{
		engine:    eng,
		out:       out,
		positions: []board.Position{initPosition},
		done:      make(chan struct{}),
	}
	close(p.done)
	return p
}

func (p *protocol) run(in io.Reader) {
	var scanner = bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		var line = scanner.Text()
		if line == "quit" {
			break
		}
		if err := p.handle(line); err != nil {
			p.printf("info string %s\n", err.Error())
		}
	}
}

func (p *protocol) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *protocol) handle(msg string) error {
	var fields = strings.Fields(msg)
	if len(fields) == 0 {
		return nil
	}
	var commandName = fields[0]
	p.fields = fields[1:]

	if commandName == "stop" {
		return p.stopCommand()
	}

	select {
	case <-p.done:
	default:
		return errors.New("search still running")
	}

	var h func() error
	switch commandName {
	case "uci":
		h = p.uciCommand
	case "setoption":
		h = p.setOptionCommand
	case "isready":
		h = p.isReadyCommand
	case "position":
		h = p.positionCommand
	case "go":
		h = p.goCommand
	case "ucinewgame":
		h = p.uciNewGameCommand
	case "ponderhit":
		h = func() error { return nil }
	}
	if h == nil {
		return fmt.Errorf("unknown command %q", commandName)
	}
	return h()
}

func (p *protocol) uciCommand() error {
	var name, version, author = p.engine.GetInfo()
	p.printf("id name %s %s\n", name, version)
	p.printf("id author %s\n", author)
	for _, option := range p.engine.GetOptions() {
		switch option := option.(type) {
		case *engine.BoolUciOption:
			p.printf("option name %v type check default %v\n", option.Name(), option.Value)
		case *engine.IntUciOption:
			p.printf("option name %v type spin default %v min %v max %v\n",
				option.Name(), option.Value, option.Min, option.Max)
		}
	}
	p.printf("uciok\n")
	return nil
}

func (p *protocol) setOptionCommand() error {
	if len(p.fields) < 4 || p.fields[0] != "name" {
		return errors.New("invalid setoption arguments")
	}
	var name, value = p.fields[1], p.fields[3]
	for _, option := range p.engine.GetOptions() {
		if !strings.EqualFold(option.Name(), name) {
			continue
		}
		switch option := option.(type) {
		case *engine.BoolUciOption:
			v, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			option.Value = v
		case *engine.IntUciOption:
			v, err := strconv.Atoi(value)
			if err != nil {
				return err
			}
			if v < option.Min || v > option.Max {
				return errors.New("argument out of range")
			}
			option.Value = v
		}
		return nil
	}
	return fmt.Errorf("unhandled option %q", name)
}

func (p *protocol) isReadyCommand() error {
	p.engine.Prepare()
	p.printf("readyok\n")
	return nil
}

func (p *protocol) positionCommand() error {
	var args = p.fields
	if len(args) == 0 {
		return errors.New("missing position arguments")
	}
	var token = args[0]
	var fen string
	var movesIndex = indexOf(args, "moves")
	switch token {
	case "startpos":
		fen = board.InitialPositionFen
	case "fen":
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	default:
		return errors.New("unknown position command")
	}

	var pos, err = board.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}
	var positions = []board.Position{pos}
	if movesIndex >= 0 && movesIndex+1 < len(args) {
		for _, lan := range args[movesIndex+1:] {
			var last = positions[len(positions)-1]
			var move = board.ParseMoveLAN(&last, lan)
			if move == board.MoveEmpty {
				return fmt.Errorf("parse move failed: %s", lan)
			}
			var next board.Position
			if !last.MakeMove(move, &next) {
				return fmt.Errorf("illegal move: %s", lan)
			}
			positions = append(positions, next)
		}
	}
	p.positions = positions
	return nil
}

func indexOf(fields []string, value string) int {
	for i, v := range fields {
		if v == value {
			return i
		}
	}
	return -1
}

func (p *protocol) goCommand() error {
	var limits = parseLimits(p.fields)
	var ctx, cancel = context.WithCancel(context.Background())
	var params = engine.SearchParams{
		Positions: p.positions,
		Limits:    limits,
		Progress: func(si engine.SearchInfo) {
			p.printInfo(si)
		},
	}
	p.done = make(chan struct{})
	p.cancel = cancel
	var done = p.done
	go func() {
		var result = p.engine.Search(ctx, params)
		p.printInfo(result)
		close(done)
		if len(result.MainLine) == 0 {
			p.printf("bestmove 0000\n")
			return
		}
		p.printf("bestmove %v\n", result.MainLine[0])
	}()
	return nil
}

func (p *protocol) printInfo(si engine.SearchInfo) {
	var scoreField string
	if si.Score.Mate != 0 {
		scoreField = fmt.Sprintf("mate %v", si.Score.Mate)
	} else {
		scoreField = fmt.Sprintf("cp %v", si.Score.Centipawns)
	}
	var nps = si.Nodes * 1000 / (si.Time + 1)
	var pv strings.Builder
	for i, move := range si.MainLine {
		if i > 0 {
			pv.WriteString(" ")
		}
		pv.WriteString(move.String())
	}
	p.printf("info depth %v score %v nodes %v time %v nps %v pv %v\n",
		si.Depth, scoreField, si.Nodes, si.Time, nps, pv.String())
}

func parseLimits(args []string) (result engine.LimitsType) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "ponder":
			result.Ponder = true
		case "infinite":
			result.Infinite = true
		case "wtime":
			result.WhiteTime, _ = strconv.Atoi(args[i+1])
			i++
		case "btime":
			result.BlackTime, _ = strconv.Atoi(args[i+1])
			i++
		case "winc":
			result.WhiteIncrement, _ = strconv.Atoi(args[i+1])
			i++
		case "binc":
			result.BlackIncrement, _ = strconv.Atoi(args[i+1])
			i++
		case "movestogo":
			result.MovesToGo, _ = strconv.Atoi(args[i+1])
			i++
		case "depth":
			result.Depth, _ = strconv.Atoi(args[i+1])
			i++
		case "nodes":
			result.Nodes, _ = strconv.Atoi(args[i+1])
			i++
		case "mate":
			result.Mate, _ = strconv.Atoi(args[i+1])
			i++
		case "movetime":
			result.MoveTime, _ = strconv.Atoi(args[i+1])
			i++
		}
	}
	return
}

func (p *protocol) uciNewGameCommand() error {
	p.engine.Clear()
	return nil
}

func (p *protocol) stopCommand() error {
	if p.cancel != nil {
		p.cancel()
	}
	return nil
}
