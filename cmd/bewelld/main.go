package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/bewellhq/bewell/internal/server"
	"github.com/bewellhq/bewell/internal/server/config"
	"github.com/bewellhq/bewell/internal/server/store"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	srv := server.New(cfg, st, log)
	log.WithField("addr", cfg.Addr).Info("bewell api listening")
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
