package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spex2024/ug-dashboard/internal/config"
	"github.com/spex2024/ug-dashboard/internal/httpapi"
	"github.com/spex2024/ug-dashboard/internal/localstore"
	"github.com/spex2024/ug-dashboard/internal/notify"
	"github.com/spex2024/ug-dashboard/internal/notify/pg"
	"github.com/spex2024/ug-dashboard/internal/obs"
	"github.com/spex2024/ug-dashboard/internal/session"
	"github.com/spex2024/ug-dashboard/internal/store"
	"github.com/spex2024/ug-dashboard/internal/upstream"
)

var version = "1.2.0"

func main() {
	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("GIT_COMMIT"))

	cfg := config.Load()

	state, err := localstore.Open(cfg.State.Dir)
	if err != nil {
		log.Fatalf("open state dir: %v", err)
	}

	client := upstream.New(cfg.Upstream.BaseURL, upstream.WithTimeout(cfg.Upstream.Timeout))

	officers := store.NewOfficers(client)
	admins := store.NewAdmins(client)
	logs := store.NewLogs(client)
	sess := session.New(client, state)

	feed := notify.NewFeed(state, cfg.Poll.FeedCap)
	stream := notify.NewStream()

	pollOpts := []notify.PollerOption{
		notify.WithInterval(cfg.Poll.Interval),
		notify.WithStream(stream),
	}

	// optional Postgres archive, so /readyz can ping it too
	var archive *pg.Archive
	if cfg.Archive.DSN != "" {
		archive, err = pg.Open(cfg.Archive.DSN)
		if err != nil {
			log.Fatalf("open archive: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := archive.EnsureSchema(ctx); err != nil {
			cancel()
			log.Fatalf("archive schema: %v", err)
		}
		cancel()
		pollOpts = append(pollOpts, notify.WithArchive(archive))
	}

	poller := notify.NewPoller(officers, admins, feed, pollOpts...)
	stopPoller := poller.Start(context.Background())

	rp := httpapi.ReadyProbe{}
	if archive != nil {
		rp.DB = archive.DB()
	}
	api := httpapi.New(officers, admins, logs, sess, feed, stream, state, rp, version)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      0, // SSE connections stay open
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting ug-dashboard %s on %s (upstream %s)", version, srv.Addr, cfg.Upstream.BaseURL)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	stopPoller()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if archive != nil {
		_ = archive.Close()
	}
	log.Println("Stopped")
}
