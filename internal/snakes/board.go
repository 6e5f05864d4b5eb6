// Package snakes models a snakes-and-ladders board as a Markov chain of cells.
package snakes

import (
	"fmt"
	"io"

	"github.com/aretw0/markov/pkg/chain"
	"github.com/aretw0/markov/pkg/domain"
)

const (
	// BoardSize is the number of cells; cell BoardSize ends the game.
	BoardSize = 100
	// DiceMax is the highest roll.
	DiceMax = 6
	// Empty marks a cell without a ladder or snake.
	Empty = -1

	// Label prefixes every generated walk.
	Label = "Random Walk"
	// MaxLength bounds the cells of one walk.
	MaxLength = 60
)

// Transitions lists the fixed ladders and snakes as (from, to) pairs.
// A pair is a ladder when from < to and a snake otherwise.
var Transitions = [][2]int{
	{13, 4},
	{85, 17},
	{95, 67},
	{97, 58},
	{66, 89},
	{87, 31},
	{57, 83},
	{91, 25},
	{28, 50},
	{35, 11},
	{8, 30},
	{41, 62},
	{81, 43},
	{69, 32},
	{20, 39},
	{33, 70},
	{79, 99},
	{23, 76},
	{15, 47},
	{61, 14},
}

// Cell is one square of the board.
type Cell struct {
	Number   int
	LadderTo int
	SnakeTo  int
}

// Target returns the cell a ladder or snake leads to, if any.
func (c Cell) Target() (int, bool) {
	switch {
	case c.LadderTo != Empty:
		return c.LadderTo, true
	case c.SnakeTo != Empty:
		return c.SnakeTo, true
	}
	return 0, false
}

// NewBoard numbers the cells 1..BoardSize and places the ladders and snakes.
func NewBoard() []Cell {
	board := make([]Cell, BoardSize)
	for i := range board {
		board[i] = Cell{Number: i + 1, LadderTo: Empty, SnakeTo: Empty}
	}
	for _, t := range Transitions {
		from, to := t[0], t[1]
		if from < to {
			board[from-1].LadderTo = to
		} else {
			board[from-1].SnakeTo = to
		}
	}
	return board
}

// Cells is the capability set for board cells.
type Cells struct{}

func (Cells) Equal(a, b Cell) bool { return a.Number == b.Number }

func (Cells) Copy(v Cell) (Cell, error) { return v, nil }

func (Cells) Destroy(Cell) {}

// Display renders a cell the way a walk prints it: an arrow after every cell
// except the last, annotated when a ladder or snake is taken.
func (Cells) Display(w io.Writer, v Cell) error {
	var err error
	switch {
	case v.LadderTo != Empty:
		_, err = fmt.Fprintf(w, "[%d] -ladder to->", v.Number)
	case v.SnakeTo != Empty:
		_, err = fmt.Fprintf(w, "[%d] -snake to->", v.Number)
	case v.Number == BoardSize:
		_, err = fmt.Fprintf(w, "[%d]", BoardSize)
	default:
		_, err = fmt.Fprintf(w, "[%d] ->", v.Number)
	}
	return err
}

// IsTerminal reports whether the cell is the last one.
func (Cells) IsTerminal(v Cell) bool {
	return v.Number == BoardSize
}

func (Cells) Key(v Cell) string {
	return fmt.Sprint(v.Number)
}

var (
	_ domain.Capabilities[Cell] = Cells{}
	_ domain.Keyer[Cell]        = Cells{}
)

// Fill inserts every cell of board into c, then records one forced
// transition for each ladder or snake and up to DiceMax dice transitions for
// every other cell.
func Fill(c *chain.Chain[Cell], board []Cell) error {
	nodes := make([]*chain.Node[Cell], len(board))
	for i, cell := range board {
		n, err := c.InsertOrGet(cell)
		if err != nil {
			return fmt.Errorf("insert cell %d: %w", cell.Number, err)
		}
		nodes[i] = n
	}

	for i, cell := range board {
		if to, ok := cell.Target(); ok {
			if err := c.RecordTransition(nodes[i], nodes[to-1]); err != nil {
				return fmt.Errorf("record cell %d: %w", cell.Number, err)
			}
			continue
		}
		for roll := 1; roll <= DiceMax; roll++ {
			to := cell.Number + roll
			if to > len(board) {
				break
			}
			if err := c.RecordTransition(nodes[i], nodes[to-1]); err != nil {
				return fmt.Errorf("record cell %d: %w", cell.Number, err)
			}
		}
	}
	return nil
}
