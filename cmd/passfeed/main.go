package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/Garsondee/Pass-Sense/internal/cli"
	"github.com/Garsondee/Pass-Sense/internal/feed"
	"github.com/Garsondee/Pass-Sense/internal/sim"
)

func main() {
	addr := flag.String("addr", ":8080", "address to listen on (e.g., 127.0.0.1:8080)")
	seed := flag.Int64("seed", 42, "RNG seed")
	mates := flag.Int("mates", 4, "teammates in the world")
	hostiles := flag.Int("hostiles", 5, "hostile obstacles in the world")
	rate := flag.Float64("rate", 10, "decision cycles per second")
	shared := cli.Register(flag.CommandLine)
	flag.Parse()

	strategy, err := shared.ParseStrategy()
	if err != nil {
		log.Fatal(err)
	}
	if *rate <= 0 {
		log.Fatalf("-rate must be > 0, got %v", *rate)
	}
	field, tuning := shared.Resolve()

	w := sim.NewWorld(
		sim.WithSeed(*seed),
		sim.WithField(field),
		sim.WithTuning(tuning),
		sim.WithStrategy(strategy),
		sim.WithRandomPlayers(*mates, *hostiles),
	)
	period := time.Duration(float64(time.Second) / *rate)
	hub := feed.NewHub(period)

	go func() {
		tick := time.NewTicker(period)
		defer tick.Stop()
		for range tick.C {
			w.Step()
			hub.Publish(feed.FrameOf(w))
		}
	}()

	http.HandleFunc("/ws", hub.ServeWS)
	log.Printf("pass feed: strategy=%s seed=%d on %s/ws", strategy, *seed, *addr)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
