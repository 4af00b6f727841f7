// Command chesscore runs a perft node-count benchmark and a
// single-position search demo against the engine. It is not a UCI
// front end; that protocol surface is an external collaborator this
// module does not implement.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kestrelchess/chesscore/internal/board"
	"github.com/kestrelchess/chesscore/internal/engine"
	"github.com/pkg/profile"
)

var (
	fen        = flag.String("fen", board.StartFEN, "FEN of the position to analyze")
	perftDepth = flag.Int("perft", 5, "perft depth to run (0 disables perft)")
	configPath = flag.String("config", "", "path to a TOML config file (overrides -movetime/-hash)")
	searchTime = flag.Duration("movetime", 3*time.Second, "search time budget")
	hashMB     = flag.Int("hash", 64, "transposition table size in MB")
	cpuProfile = flag.Bool("cpuprofile", false, "write a pprof CPU profile for this run")
)

func main() {
	flag.Parse()

	cfg := engine.DefaultConfig()
	cfg.HashMB = *hashMB
	cfg.MoveTimeMS = int(searchTime.Milliseconds())
	if *configPath != "" {
		loaded, err := engine.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("loading config %q: %v", *configPath, err)
		}
		cfg = loaded
	}
	engine.ConfigureLogging(cfg.LogLevel)

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("invalid FEN %q: %v", *fen, err)
	}

	eng := engine.NewEngine(cfg.HashMB)
	eng.SetDifficulty(cfg.DifficultyLevel())

	if *perftDepth > 0 {
		runPerft(eng, pos, *perftDepth)
	}

	runSearch(eng, pos, cfg.Limits())
}

func runPerft(eng *engine.Engine, pos *board.Board, depth int) {
	fmt.Printf("perft(%d) from %s\n", depth, pos.ToFEN())
	start := time.Now()
	nodes := eng.Perft(pos, depth)
	elapsed := time.Since(start)

	nps := float64(0)
	if elapsed > 0 {
		nps = float64(nodes) / elapsed.Seconds()
	}
	fmt.Printf("  nodes=%d time=%s nps=%.0f\n", nodes, elapsed, nps)
}

func runSearch(eng *engine.Engine, pos *board.Board, limits engine.Limits) {
	eng.OnInfo = func(info engine.Info) {
		fmt.Printf("depth %2d  score %-8s  nodes %10d  nps %9d  time %8s  pv %s\n",
			info.Depth, engine.ScoreToString(info.Score), info.Nodes, info.NPS, info.Time.Round(time.Millisecond), pvString(info.PV))
	}

	move := eng.SearchWithLimits(pos, limits)
	if move == board.NoMove {
		fmt.Println("no legal move found")
		os.Exit(1)
	}
	fmt.Printf("bestmove %s\n", move)
}

func pvString(pv []board.Move) string {
	s := ""
	for i, m := range pv {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}
