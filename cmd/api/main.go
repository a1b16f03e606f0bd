package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/config"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/database"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/favorites"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/mq"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/notify"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/router"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/storage"
	"github.com/carlo-spada/yrinmobiliaria-sub000/pkg/logger"
)

func main() {
	// config + logger
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	l := logger.New(cfg.Env)

	// db
	pool, err := database.Open(context.Background(), cfg)
	if err != nil {
		l.Fatal().Err(err).Msg("db connect failed")
	}
	defer pool.Close()

	deps := router.Deps{}

	// object storage is optional; uploads 503 without it
	if cfg.StorageBucket != "" {
		store, err := storage.New(context.Background(), cfg.StorageRegion, cfg.StorageEndpoint, cfg.StorageBucket, cfg.PublicBaseURL)
		if err != nil {
			l.Fatal().Err(err).Msg("storage init failed")
		}
		deps.Store = store
	}

	// notifier: SMTP when configured, console otherwise
	if cfg.SMTPHost != "" {
		mailer, err := notify.NewMailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)
		if err != nil {
			l.Fatal().Err(err).Msg("smtp init failed")
		}
		deps.Notifier = mailer
	} else {
		deps.Notifier = notify.ConsoleNotifier{Log: l}
	}

	// event broker is optional; a nil publisher drops events
	if cfg.AMQPURL != "" {
		events, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			l.Fatal().Err(err).Msg("amqp connect failed")
		}
		defer events.Close()
		deps.Events = events
	}

	guests, err := favorites.NewLocalStore(cfg.DataDir)
	if err != nil {
		l.Fatal().Err(err).Msg("guest store init failed")
	}
	deps.Guests = guests

	// http
	r := router.New(l, pool, cfg, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}
