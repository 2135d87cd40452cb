package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/MartijnWelker/wizard/internal/config"
	"github.com/MartijnWelker/wizard/internal/server"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	srv := server.New(cfg, log)

	log.WithField("addr", cfg.Addr).Info("listening")
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
