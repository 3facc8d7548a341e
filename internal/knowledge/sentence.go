package knowledge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ropbastos/minesweeper-agent/internal/board"
)

// Sentence is a logical statement about the game: count of the listed
// cells are mines. Construction and the two mark operations are the
// only mutations, and both preserve 0 <= count <= len(cells) as long as
// the caller only feeds in consistent facts.
type Sentence struct {
	cells Set[board.Cell]
	count int
}

func NewSentence(cells Set[board.Cell], count int) *Sentence {
	return &Sentence{cells: cells.Clone(), count: count}
}

func (s *Sentence) Count() int { return s.count }

func (s *Sentence) Cells() Set[board.Cell] { return s.cells.Clone() }

// KnownMines returns every cell of the sentence iff all of them must be
// mines, i.e. the count equals the number of remaining cells.
func (s *Sentence) KnownMines() (Set[board.Cell], bool) {
	if s.count != 0 && s.count == len(s.cells) {
		return s.cells, true
	}
	return nil, false
}

// KnownSafes returns every cell of the sentence iff none of them can be
// a mine, i.e. the count is zero.
func (s *Sentence) KnownSafes() (Set[board.Cell], bool) {
	if s.count == 0 && len(s.cells) != 0 {
		return s.cells, true
	}
	return nil, false
}

// MarkMine accounts for cell being a known mine: the cell leaves the
// sentence and takes one of its mines with it. No-op if the cell is not
// part of the sentence.
func (s *Sentence) MarkMine(cell board.Cell) {
	if s.cells.Has(cell) {
		s.cells.Delete(cell)
		s.count--
	}
}

// MarkSafe removes a known safe cell; the mine count is unaffected.
func (s *Sentence) MarkSafe(cell board.Cell) {
	s.cells.Delete(cell)
}

// Equal is structural: same cell set and same count.
func (s *Sentence) Equal(other *Sentence) bool {
	return s.count == other.count && s.cells.Equal(other.cells)
}

func (s *Sentence) String() string {
	cells := s.cells.Values()
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return fmt.Sprintf("{%s} = %d", strings.Join(parts, " "), s.count)
}
