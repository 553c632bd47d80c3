package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordersight/auth"
	"ordersight/config"
	"ordersight/dashboard"
	"ordersight/store"
	"ordersight/www"
)

var Version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "ordersight.yaml", "path to config file")
	flag.Parse()

	if *showVersion {
		fmt.Println("ordersight", Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("resolve display time zone: %v", err)
	}

	// Order store
	client, err := store.Open(&cfg.Store)
	if err != nil {
		log.Fatalf("open order store: %v", err)
	}
	defer client.Close()
	log.Printf("ordersight: order store open (%s)", cfg.Store.Backend)

	// Login resolver
	resolver, err := auth.NewResolver(cfg.Auth.AdminPassword, cfg.Auth.SubscriberPassword)
	if err != nil {
		log.Fatalf("init auth resolver: %v", err)
	}

	// Viewer sessions
	registry := dashboard.NewRegistry(client, cfg.Store.PageSize, loc)

	// Web server
	handler := www.NewRouter(resolver, registry, cfg.Web.SessionSecret)

	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		log.Printf("ordersight: web server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("web server: %v", err)
		}
	}()

	log.Printf("ordersight: ready")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Printf("ordersight: shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	srv.Shutdown(shutdownCtx)

	log.Printf("ordersight: stopped")
}
