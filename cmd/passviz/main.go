package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Pass-Sense/internal/cli"
	"github.com/Garsondee/Pass-Sense/internal/feed"
	"github.com/Garsondee/Pass-Sense/internal/sim"
	"github.com/Garsondee/Pass-Sense/internal/viz"
)

func main() {
	seed := flag.Int64("seed", 42, "RNG seed for the first world")
	mates := flag.Int("mates", 4, "teammates per world")
	hostiles := flag.Int("hostiles", 5, "hostile obstacles per world")
	width := flag.Int("width", 1280, "window width in pixels")
	rate := flag.Float64("rate", 10, "decision cycles per second")
	feedAddr := flag.String("feed", "", "also stream decisions on this address (e.g. :8080)")
	shared := cli.Register(flag.CommandLine)
	flag.Parse()

	strategy, err := shared.ParseStrategy()
	if err != nil {
		log.Fatal(err)
	}
	field, tuning := shared.Resolve()

	g := viz.New(viz.Config{
		Seed:      *seed,
		Mates:     *mates,
		Hostiles:  *hostiles,
		Strategy:  strategy,
		Field:     field,
		Tuning:    tuning,
		WidthPx:   *width,
		CycleRate: *rate,
	})

	if *feedAddr != "" {
		hub := feed.NewHub(0)
		g.OnCycle = func(w *sim.World) { hub.Publish(feed.FrameOf(w)) }
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", hub.ServeWS)
		go func() {
			log.Printf("decision feed on %s/ws", *feedAddr)
			log.Fatal(http.ListenAndServe(*feedAddr, mux))
		}()
	}

	ebiten.SetWindowTitle("Pass Sense")
	ebiten.SetWindowSize(g.Size())
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
