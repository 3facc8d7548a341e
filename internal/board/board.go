package board

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

var (
	ErrTooManyMines = errors.New("mine count exceeds cell count")
	ErrBadDimension = errors.New("board dimensions must be positive")
	ErrOutOfBounds  = errors.New("cell out of board bounds")
)

// Cell is a (row, column) coordinate on the grid. It is a comparable
// value type and is used as a map key throughout.
type Cell struct {
	Row, Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

// Neighbors returns the cells within the 8-neighborhood of c, clipped
// to a height*width grid and excluding c itself.
func Neighbors(c Cell, height, width int) []Cell {
	neighbors := make([]Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, cc := c.Row+dr, c.Col+dc
			if 0 <= r && r < height && 0 <= cc && cc < width {
				neighbors = append(neighbors, Cell{r, cc})
			}
		}
	}
	return neighbors
}

// Board holds ground truth about mine placement. The grid is written
// once at construction and read-only afterwards; the only mutable state
// is the set of cells the caller has flagged as found mines.
type Board struct {
	height, width int
	mineCount     int
	grid          []bool /* real mine points, row-major */
	found         map[Cell]struct{}
}

func New(height, width, mineCount int, r *rand.Rand) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, ErrBadDimension
	}
	if mineCount > height*width {
		return nil, ErrTooManyMines
	}

	b := &Board{
		height:    height,
		width:     width,
		mineCount: mineCount,
		grid:      make([]bool, height*width),
		found:     make(map[Cell]struct{}),
	}

	placed := 0
	for placed != mineCount {
		i := r.IntN(len(b.grid))
		if !b.grid[i] {
			b.grid[i] = true
			placed++
		}
	}

	return b, nil
}

func (b *Board) Height() int    { return b.height }
func (b *Board) Width() int     { return b.width }
func (b *Board) MineCount() int { return b.mineCount }

func (b *Board) inside(c Cell) bool {
	return 0 <= c.Row && c.Row < b.height && 0 <= c.Col && c.Col < b.width
}

// IsMine is a ground-truth lookup. The agent never calls this; it is
// for the driver to report outcomes.
func (b *Board) IsMine(c Cell) (bool, error) {
	if !b.inside(c) {
		return false, ErrOutOfBounds
	}
	return b.grid[c.Row*b.width+c.Col], nil
}

// NeighborMineCount counts the mines adjacent to c, excluding c itself.
func (b *Board) NeighborMineCount(c Cell) (int, error) {
	if !b.inside(c) {
		return 0, ErrOutOfBounds
	}
	count := 0
	for _, n := range Neighbors(c, b.height, b.width) {
		if b.grid[n.Row*b.width+n.Col] {
			count++
		}
	}
	return count, nil
}

// Flag records c as an externally found mine.
func (b *Board) Flag(c Cell) error {
	if !b.inside(c) {
		return ErrOutOfBounds
	}
	b.found[c] = struct{}{}
	return nil
}

// Won reports whether the found set is exactly the true mine set.
func (b *Board) Won() bool {
	if len(b.found) != b.mineCount {
		return false
	}
	for c := range b.found {
		if !b.grid[c.Row*b.width+c.Col] {
			return false
		}
	}
	return true
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := range b.height {
		for c := range b.width {
			if b.grid[r*b.width+c] {
				fmt.Fprint(&sb, "* ")
			} else {
				fmt.Fprint(&sb, "- ")
			}
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
