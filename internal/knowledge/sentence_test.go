package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ropbastos/minesweeper-agent/internal/board"
)

var (
	a1 = board.Cell{Row: 0, Col: 0}
	b1 = board.Cell{Row: 0, Col: 1}
	c1 = board.Cell{Row: 0, Col: 2}
)

func TestKnownMines(t *testing.T) {
	tests := []struct {
		name     string
		sentence *Sentence
		want     []board.Cell
		ok       bool
	}{
		{"all mines", NewSentence(NewSet(a1, b1), 2), []board.Cell{a1, b1}, true},
		{"single mine", NewSentence(NewSet(a1), 1), []board.Cell{a1}, true},
		{"undetermined", NewSentence(NewSet(a1, b1), 1), nil, false},
		{"all safe", NewSentence(NewSet(a1, b1), 0), nil, false},
		{"empty", NewSentence(NewSet[board.Cell](), 0), nil, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			mines, ok := test.sentence.KnownMines()
			assert.Equal(t, test.ok, ok)
			if ok {
				assert.ElementsMatch(t, test.want, mines.Values())
			}
		})
	}
}

func TestKnownSafes(t *testing.T) {
	tests := []struct {
		name     string
		sentence *Sentence
		want     []board.Cell
		ok       bool
	}{
		{"all safe", NewSentence(NewSet(a1, b1), 0), []board.Cell{a1, b1}, true},
		{"undetermined", NewSentence(NewSet(a1, b1), 1), nil, false},
		{"all mines", NewSentence(NewSet(a1, b1), 2), nil, false},
		{"empty", NewSentence(NewSet[board.Cell](), 0), nil, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			safes, ok := test.sentence.KnownSafes()
			assert.Equal(t, test.ok, ok)
			if ok {
				assert.ElementsMatch(t, test.want, safes.Values())
			}
		})
	}
}

func TestMarkMine(t *testing.T) {
	s := NewSentence(NewSet(a1, b1, c1), 2)

	s.MarkMine(a1)
	assert.Equal(t, 1, s.Count())
	assert.True(t, s.Cells().Equal(NewSet(b1, c1)))

	// not part of the sentence: no-op
	s.MarkMine(a1)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, 2, s.Cells().Len())
}

func TestMarkSafe(t *testing.T) {
	s := NewSentence(NewSet(a1, b1, c1), 1)

	s.MarkSafe(c1)
	assert.Equal(t, 1, s.Count())
	assert.True(t, s.Cells().Equal(NewSet(a1, b1)))

	s.MarkSafe(c1)
	assert.Equal(t, 2, s.Cells().Len())
}

func TestSentenceEqual(t *testing.T) {
	assert.True(t, NewSentence(NewSet(a1, b1), 1).Equal(NewSentence(NewSet(b1, a1), 1)))
	assert.False(t, NewSentence(NewSet(a1, b1), 1).Equal(NewSentence(NewSet(a1, b1), 2)))
	assert.False(t, NewSentence(NewSet(a1), 1).Equal(NewSentence(NewSet(a1, b1), 1)))
}

func TestSentenceConstructionCopiesCells(t *testing.T) {
	cells := NewSet(a1, b1)
	s := NewSentence(cells, 1)
	cells.Add(c1)
	assert.Equal(t, 2, s.Cells().Len())
}

func TestSentenceString(t *testing.T) {
	s := NewSentence(NewSet(b1, a1), 1)
	assert.Equal(t, "{0:0 0:1} = 1", s.String())
}
