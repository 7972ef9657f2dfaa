// Command blockfall-bench drives a headless session with a random bot for a
// fixed wall-clock duration and prints a timing report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"

	"github.com/plus3/blockfall/config"
	"github.com/plus3/blockfall/sim"
	"github.com/plus3/blockfall/trace"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the benchmark should run for.")
	frame := flag.Duration("frame", time.Second/60, "Simulated time fed to the session per frame.")
	seed := flag.Uint64("seed", 1, "Seed for the piece bag and the bot.")
	configPath := flag.String("config", "", "YAML tuning file. Defaults to $"+config.PathVar+", then built-in defaults.")
	tracePath := flag.String("trace", "", "Write every session event to this .jsonl.zst file.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Println("Starting blockfall benchmark...")

	rng := rand.New(rand.NewPCG(*seed, *seed))
	session, err := sim.New(cfg, sim.WithRand(rng), sim.WithLogger(log.New(os.Stderr, "session: ", log.LstdFlags)))
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	var tw *trace.Writer
	if *tracePath != "" {
		if tw, err = trace.Create(*tracePath); err != nil {
			log.Fatalf("Failed to create trace: %v", err)
		}
	}

	report := &Report{
		Duration:       *duration,
		Frame:          *frame,
		Seed:           *seed,
		Landing:        cfg.Landing,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}
	score := sim.Scoreboard{PerRow: cfg.ScorePerRow}
	b := newBot(rand.New(rand.NewPCG(*seed, ^*seed)))

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running session for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalFrames int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			for _, in := range b.intents(session.PlayState()) {
				if err := session.Apply(in); err != nil {
					log.Fatalf("Intent %s failed: %v", in, err)
				}
			}
			if err := session.Advance(*frame); err != nil {
				log.Fatalf("Frame %d failed: %v", totalFrames, err)
			}
			events := session.Drain()
			updateDuration := time.Since(updateStart)

			score.Observe(events)
			report.observe(events)
			if tw != nil {
				if err := tw.Write(events); err != nil {
					log.Fatalf("Failed to write trace: %v", err)
				}
			}

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalFrames++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalFrames = totalFrames
	report.SimulatedTime = time.Duration(totalFrames) * *frame
	report.Ticks = session.Stats()
	report.Score = score.Score
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	if tw != nil {
		report.TraceEvents = tw.Count()
		if err := tw.Close(); err != nil {
			log.Fatalf("Failed to close trace: %v", err)
		}
	}

	log.Println("Benchmark finished.")

	fmt.Println("\n\n--- Benchmark Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = os.Getenv(config.PathVar)
	}
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	return cfg.Env(os.LookupEnv)
}
