package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/helperbot/bot"
	"github.com/zucenko/helperbot/client"
	"github.com/zucenko/helperbot/gen"
)

type Bot struct {
	router  *way.Router
	Session *bot.Session
	Client  *client.Client
}

func main() {
	_ = godotenv.Load()

	worldURL := os.Getenv("WORLD_URL")
	if worldURL == "" {
		worldURL = "ws://localhost:8080/play"
		log.Printf("Defaulting to world url %s", worldURL)
	}

	var generator gen.Generator = gen.Disabled{}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		g, err := gen.NewGemini(context.Background(), key, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatalf("cant create generator: %v", err)
		}
		generator = g
	} else {
		log.Warn("GEMINI_API_KEY not set, hints fall back to canned text")
	}

	cl, err := client.Dial(worldURL)
	if err != nil {
		log.Fatalf("cant connect to world at %s: %v", worldURL, err)
	}

	session := bot.NewSession(cl, generator)
	session.Start()

	go func() {
		for in := range cl.Events {
			session.Dispatch(in)
		}
	}()
	go func() {
		err := <-cl.Errors
		session.Close()
		log.Fatalf("world connection lost: %v", err)
	}()

	b := &Bot{Session: session, Client: cl}
	b.routes()
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
		log.Printf("Defaulting to port %s", port)
	}
	log.Fatalln(http.ListenAndServe(":"+port, b.router))
}

func (b *Bot) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

func (b *Bot) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, _, pos, hasMap := b.Session.World.Snapshot()
		status := struct {
			MapID    string `json:"mapId"`
			HasMap   bool   `json:"hasMap"`
			X        int    `json:"x"`
			Y        int    `json:"y"`
			Sessions int    `json:"sessions"`
			Busy     bool   `json:"busy"`
		}{
			HasMap:   hasMap,
			X:        pos.X,
			Y:        pos.Y,
			Sessions: b.Session.Sessions.Len(),
			Busy:     !b.Session.Coord.GateFree(),
		}
		if hasMap {
			status.MapID = m.MapID
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			log.Warnf("status encode failed: %v", err)
		}
	}
}
