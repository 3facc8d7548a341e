package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/ropbastos/minesweeper-agent/internal/config"
	"github.com/ropbastos/minesweeper-agent/internal/database"
	"github.com/ropbastos/minesweeper-agent/internal/knowledge"
	"github.com/ropbastos/minesweeper-agent/internal/repository"
)

//go:embed migrations/*.sql
var migrations embed.FS

var log = logrus.New()

var (
	height    int
	width     int
	mineCount int
	games     int
	workers   int
	seed      uint64
	label     string
	verbose   bool
)

func init() {
	flag.IntVar(&height, "height", 8, "board height")
	flag.IntVar(&width, "width", 8, "board width")
	flag.IntVar(&mineCount, "mines", 8, "number of mines")
	flag.IntVar(&games, "games", 1, "number of games to play")
	flag.IntVar(&workers, "workers", 4, "number of games played in parallel")
	flag.Uint64Var(&seed, "seed", 1, "base random seed")
	flag.StringVar(&label, "label", "", "run label; when set, game records are persisted")
	flag.BoolVar(&verbose, "v", false, "debug logging")
}

func setupLogging() {
	logLevel := logrus.InfoLevel
	if verbose || config.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	knowledge.Log.SetLevel(logLevel)

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if path := config.LogFile(); path != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   path,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			log.Fatal("unable to create file log hook: ", err)
		}
		log.AddHook(hook)
		knowledge.Log.AddHook(hook)
	}
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()
	setupLogging()

	var queries *repository.Queries
	var run *repository.Run
	if label != "" {
		if !config.DatabaseConfigured() {
			log.Fatal("-label requires a configured database")
		}
		db, err := database.ConnectAndMigrate(mainCtx, migrations)
		if err != nil {
			log.Fatal("unable to connect to db: ", err)
		}
		defer db.Close()
		queries = repository.New(db)

		run, err = queries.CreateRun(mainCtx, label)
		if errors.Is(err, repository.ErrDuplicateRun) {
			log.Fatalf("run label %q already taken", label)
		} else if err != nil {
			log.Fatal("unable to create run: ", err)
		}
	}

	log.WithFields(logrus.Fields{
		"height": height,
		"width":  width,
		"mines":  mineCount,
		"games":  games,
	}).Info("starting up")

	results := make([]result, games)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.SetLimit(workers)
	for i := range games {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			r := rand.New(rand.NewPCG(seed, uint64(i)))
			res, err := playGame(height, width, mineCount, r)
			if err != nil {
				return err
			}
			results[i] = res

			log.WithFields(logrus.Fields{
				"game":         i,
				"won":          res.won,
				"moves":        res.moves,
				"safe_moves":   res.safeMoves,
				"random_moves": res.randomMoves,
				"playtime":     res.playtime,
			}).Debug("game finished")

			if queries != nil {
				_, err = queries.CreateGameRecord(gCtx, repository.CreateGameRecordParams{
					RunId:       run.RunId,
					Width:       width,
					Height:      height,
					MineCount:   mineCount,
					Won:         res.won,
					Moves:       res.moves,
					SafeMoves:   res.safeMoves,
					RandomMoves: res.randomMoves,
					PlaytimeMs:  float64(res.playtime.Microseconds()) / 1000,
				})
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("run aborted: ", err)
	}

	wins := 0
	moves := 0
	for _, res := range results {
		if res.won {
			wins++
		}
		moves += res.moves
	}
	log.WithFields(logrus.Fields{
		"games":      games,
		"wins":       wins,
		"win_rate":   float64(wins) / float64(games),
		"mean_moves": float64(moves) / float64(games),
	}).Info("run complete")

	if queries != nil {
		stats, err := queries.GetRunStats(mainCtx, label)
		if err != nil {
			log.Fatal("unable to fetch run stats: ", err)
		}
		log.WithFields(logrus.Fields{
			"label":    stats.Label,
			"games":    stats.Games,
			"wins":     stats.Wins,
			"win_rate": stats.WinRate,
		}).Info("run recorded")
	}
}
