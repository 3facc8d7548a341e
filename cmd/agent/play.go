package main

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/ropbastos/minesweeper-agent/internal/board"
	"github.com/ropbastos/minesweeper-agent/internal/knowledge"
)

type result struct {
	won         bool
	moves       int
	safeMoves   int
	randomMoves int
	playtime    time.Duration
}

// playGame runs one full game: the board supplies ground truth, the
// agent supplies moves, and this loop shuttles observations between
// them. The agent itself never touches the board.
func playGame(h, w, mines int, r *rand.Rand) (result, error) {
	b, err := board.New(h, w, mines, r)
	if err != nil {
		return result{}, err
	}
	agent := knowledge.New(h, w, mines, r)

	log.Debug("board\n", b)

	var res result
	start := time.Now()
	maxMoves := h * w

	for {
		for _, c := range agent.Mines().Values() {
			if err := b.Flag(c); err != nil {
				return res, err
			}
		}
		if b.Won() {
			res.won = true
			break
		}
		if res.moves >= maxMoves {
			break
		}

		cell, ok := agent.MakeSafeMove()
		if ok {
			res.safeMoves++
		} else {
			cell, ok = agent.MakeRandomMove()
			if !ok {
				break
			}
			res.randomMoves++
		}
		res.moves++

		mined, err := b.IsMine(cell)
		if err != nil {
			return res, err
		}
		if mined {
			log.WithField("cell", cell).Debug("stepped on a mine")
			break
		}

		count, err := b.NeighborMineCount(cell)
		if err != nil {
			return res, err
		}
		agent.AddKnowledge(cell, count)

		log.Debug("agent view\n", agentView(agent, h, w))
	}

	res.playtime = time.Since(start)
	return res, nil
}

// agentView renders what the agent knows: opened cells, proven safe
// cells, proven mines, and everything else still unknown.
func agentView(a *knowledge.Agent, h, w int) string {
	var (
		sb    strings.Builder
		moves = a.MovesMade()
		safes = a.Safes()
		mines = a.Mines()
	)
	for r := range h {
		for c := range w {
			cell := board.Cell{Row: r, Col: c}
			switch {
			case moves.Has(cell):
				sb.WriteString("o ")
			case mines.Has(cell):
				sb.WriteString("* ")
			case safes.Has(cell):
				sb.WriteString(". ")
			default:
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
