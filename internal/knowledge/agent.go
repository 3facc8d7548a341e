package knowledge

import (
	"math/rand/v2"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/ropbastos/minesweeper-agent/internal/board"
)

var Log = logrus.New()

// Agent accumulates logical sentences about a height*width board with
// mineCount mines and derives definite safe/mine conclusions from them.
// It never reads ground truth: all it learns arrives through
// AddKnowledge, one observation per real move.
//
// All methods must be called from a single goroutine (or under one
// exclusive lock); AddKnowledge mutates the whole knowledge base as one
// transaction.
type Agent struct {
	height, width int
	mineCount     int
	r             *rand.Rand

	movesMade Set[board.Cell]
	safes     Set[board.Cell]
	mines     Set[board.Cell]
	knowledge []*Sentence
}

func New(height, width, mineCount int, r *rand.Rand) *Agent {
	return &Agent{
		height:    height,
		width:     width,
		mineCount: mineCount,
		r:         r,
		movesMade: NewSet[board.Cell](),
		safes:     NewSet[board.Cell](),
		mines:     NewSet[board.Cell](),
	}
}

// MarkMine records cell as a known mine and accounts for it in every
// sentence. It is a primitive: it does not chase consequences.
func (a *Agent) MarkMine(cell board.Cell) {
	a.mines.Add(cell)
	for _, s := range a.knowledge {
		s.MarkMine(cell)
	}
}

// MarkSafe records cell as known safe and removes it from every
// sentence. Like MarkMine, it does not chase consequences.
func (a *Agent) MarkSafe(cell board.Cell) {
	a.safes.Add(cell)
	for _, s := range a.knowledge {
		s.MarkSafe(cell)
	}
}

// AddKnowledge digests one real board observation: cell was opened and
// has count mined neighbors. It records the move, folds the observation
// into the knowledge base as a new sentence, and runs fact propagation
// and subset derivation to a fixpoint so that every conclusion the
// current knowledge supports is drawn before the call returns.
func (a *Agent) AddKnowledge(cell board.Cell, count int) {
	a.movesMade.Add(cell)
	a.MarkSafe(cell)

	/*
	 * Build the sentence for this observation from the unresolved
	 * neighborhood. Known safe neighbors carry no information and are
	 * dropped up front; known mine neighbors are deliberately left in
	 * and accounted for just before the sentence is settled.
	 */
	cells := NewSet[board.Cell]()
	for _, n := range board.Neighbors(cell, a.height, a.width) {
		if !a.safes.Has(n) {
			cells.Add(n)
		}
	}
	s := NewSentence(cells, count)
	if existing := a.findSentence(s); existing != nil {
		s = existing
	} else {
		a.knowledge = append(a.knowledge, s)
	}

	Log.WithFields(logrus.Fields{
		"cell":     cell,
		"count":    count,
		"sentence": s,
	}).Debug("observation")

	/*
	 * Account for neighbors that are already known mines, so the
	 * sentence reduces to its trivial form before being settled.
	 */
	for _, n := range s.Cells().Values() {
		if a.mines.Has(n) {
			s.MarkMine(n)
		}
	}

	a.propagate(s)
	a.deriveSubsets(s)

	/*
	 * Closure sweep: propagation above should have drained every
	 * resolvable sentence already, but re-check so the guarantee does
	 * not depend on the seeding order.
	 */
	for _, s := range a.knowledge {
		if safes, ok := s.KnownSafes(); ok {
			for _, c := range safes.Values() {
				a.MarkSafe(c)
			}
		}
	}

	live := a.knowledge[:0]
	for _, s := range a.knowledge {
		if s.cells.Len() != 0 {
			live = append(live, s)
		}
	}
	a.knowledge = live

	Log.WithFields(logrus.Fields{
		"knowledge": len(a.knowledge),
		"safes":     a.safes.Len(),
		"mines":     a.mines.Len(),
	}).Debug("knowledge settled")
}

func (a *Agent) findSentence(s *Sentence) *Sentence {
	for _, other := range a.knowledge {
		if other.Equal(s) {
			return other
		}
	}
	return nil
}

// resolved reports whether a sentence currently yields facts, used for
// before/after comparison when a cell is marked. Under the count
// invariant a consistent sentence can only flip from unresolved to
// resolved, so comparing the flags is equivalent to comparing the
// returned sets.
func resolved(s *Sentence) (knownMines, knownSafes bool) {
	_, knownMines = s.KnownMines()
	_, knownSafes = s.KnownSafes()
	return
}

/*
 * Fact propagation. The original formulation is a recursion of
 * set-mutating closures; here it is an explicit worklist of sentences
 * pending settlement, drained to a fixpoint. A popped sentence that
 * yields known safes (or mines) has those cells folded into the global
 * sets and marked in every sentence; any sentence that becomes resolved
 * by such a mark goes back on the worklist. Every mark strictly shrinks
 * some cell set, so the drain terminates.
 */
func (a *Agent) propagate(seed *Sentence) {
	var todo deque.Deque[*Sentence]
	todo.PushBack(seed)

	for todo.Len() != 0 {
		s := todo.PopFront()

		if safes, ok := s.KnownSafes(); ok {
			for _, c := range safes.Values() {
				a.resolveSafe(c, &todo)
			}
		} else if mines, ok := s.KnownMines(); ok {
			for _, c := range mines.Values() {
				a.resolveMine(c, &todo)
			}
		}
	}
}

func (a *Agent) resolveSafe(cell board.Cell, todo *deque.Deque[*Sentence]) {
	Log.WithField("cell", cell).Debug("resolved safe")
	a.safes.Add(cell)
	for _, s := range a.knowledge {
		minesBefore, safesBefore := resolved(s)
		s.MarkSafe(cell)
		minesAfter, safesAfter := resolved(s)
		if minesAfter != minesBefore || safesAfter != safesBefore {
			todo.PushBack(s)
		}
	}
}

func (a *Agent) resolveMine(cell board.Cell, todo *deque.Deque[*Sentence]) {
	Log.WithField("cell", cell).Debug("resolved mine")
	a.mines.Add(cell)
	for _, s := range a.knowledge {
		minesBefore, safesBefore := resolved(s)
		s.MarkMine(cell)
		minesAfter, safesAfter := resolved(s)
		if minesAfter != minesBefore || safesAfter != safesBefore {
			todo.PushBack(s)
		}
	}
}

/*
 * Subset derivation. Whenever one sentence's cells are a proper subset
 * of another's, their difference is itself a valid sentence: from
 * {A,B,C}=1 and {A,B}=1 follows {C}=0. Each sentence on the worklist is
 * cross-checked against the current knowledge base; a derived sentence
 * that already resolves is transient evidence and goes straight to
 * propagation without ever being inserted, while an unresolved novel
 * one is inserted and queued to be cross-checked itself.
 */
func (a *Agent) deriveSubsets(seed *Sentence) {
	var todo deque.Deque[*Sentence]
	todo.PushBack(seed)

	for todo.Len() != 0 {
		s := todo.PopFront()
		if s.cells.Len() == 0 {
			continue
		}

		snapshot := make([]*Sentence, len(a.knowledge))
		copy(snapshot, a.knowledge)

		for _, t := range snapshot {
			if t == s || t.cells.Len() == 0 {
				continue
			}

			var derived *Sentence
			if t.cells.SubsetOf(s.cells) && s.cells.Diff(t.cells).Len() != 0 {
				derived = NewSentence(s.cells.Diff(t.cells), s.count-t.count)
			} else if s.cells.SubsetOf(t.cells) && t.cells.Diff(s.cells).Len() != 0 {
				derived = NewSentence(t.cells.Diff(s.cells), t.count-s.count)
			} else {
				continue
			}

			Log.WithField("sentence", derived).Debug("derived")

			minesKnown, safesKnown := resolved(derived)
			if minesKnown || safesKnown {
				a.propagate(derived)
			} else if a.findSentence(derived) == nil {
				a.knowledge = append(a.knowledge, derived)
				todo.PushBack(derived)
			}
		}
	}
}

// MakeSafeMove suggests a cell proven safe that has not been played
// yet. Any such cell is as good as any other. The knowledge base is not
// modified.
func (a *Agent) MakeSafeMove() (board.Cell, bool) {
	for c := range a.safes {
		if !a.movesMade.Has(c) {
			return c, true
		}
	}
	return board.Cell{}, false
}

// MakeRandomMove suggests a uniformly random cell that is neither a
// known mine nor already played. Once every mine is accounted for there
// is nothing left worth guessing and no move is returned.
func (a *Agent) MakeRandomMove() (board.Cell, bool) {
	if a.mines.Len() >= a.mineCount {
		return board.Cell{}, false
	}

	var candidates []board.Cell
	for r := range a.height {
		for c := range a.width {
			cell := board.Cell{Row: r, Col: c}
			if !a.mines.Has(cell) && !a.movesMade.Has(cell) {
				candidates = append(candidates, cell)
			}
		}
	}
	if len(candidates) == 0 {
		return board.Cell{}, false
	}
	return candidates[a.r.IntN(len(candidates))], true
}

// Safes returns a copy of the set of cells proven safe.
func (a *Agent) Safes() Set[board.Cell] { return a.safes.Clone() }

// Mines returns a copy of the set of cells proven to be mines.
func (a *Agent) Mines() Set[board.Cell] { return a.mines.Clone() }

// MovesMade returns a copy of the set of cells already played.
func (a *Agent) MovesMade() Set[board.Cell] { return a.movesMade.Clone() }

// KnowledgeSize reports the number of live sentences.
func (a *Agent) KnowledgeSize() int { return len(a.knowledge) }
