package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"statboard/internal/model"
	"statboard/internal/source"
)

// statgen appends statistics snapshots, one JSON payload per line, for
// exercising `statboard -file path -follow`.
func main() {
	var (
		rate        float64
		outPath     string
		durationStr string
		errorRate   float64
		newArtist   float64
		seed        int64
	)
	flag.Float64Var(&rate, "rate", 1.0, "snapshots per second")
	flag.StringVar(&outPath, "out", "", "append to this file instead of stdout")
	flag.StringVar(&durationStr, "duration", "", "optional run duration (e.g., 30s, 2m); empty runs until interrupted")
	flag.Float64Var(&errorRate, "error-rate", 0, "probability of emitting an error payload instead of a snapshot")
	flag.Float64Var(&newArtist, "new-artist-rate", 0.05, "probability that a snapshot adds an artist")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	var deadline time.Time
	if durationStr != "" {
		d, err := time.ParseDuration(durationStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid duration: %v\n", err)
			os.Exit(2)
		}
		deadline = time.Now().Add(d)
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open %s: %v\n", outPath, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
		fmt.Fprintf(os.Stderr, "appending snapshots -> %s at %.2f/s\n", outPath, rate)
	}

	p, err := model.Decode(source.Demo())
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo payload: %v\n", err)
		os.Exit(1)
	}
	g := &generator{rng: rand.New(rand.NewSource(seed)), payload: p, errorRate: errorRate, newArtistRate: newArtist}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	if rate <= 0 {
		rate = 1
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / rate))
	defer ticker.Stop()
	w := bufio.NewWriter(out)
	defer w.Flush()
	for {
		select {
		case <-sigCh:
			return
		case <-ticker.C:
			if !deadline.IsZero() && time.Now().After(deadline) {
				return
			}
			line, err := g.next()
			if err != nil {
				fmt.Fprintf(os.Stderr, "encode: %v\n", err)
				os.Exit(1)
			}
			w.Write(line)
			w.WriteByte('\n')
			_ = w.Flush()
		}
	}
}
