package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"phonebook-server/config"
	"phonebook-server/storage"
	"phonebook-server/storage/memstore"
	"phonebook-server/storage/mongodb"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	personStore, userStore, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	router, err := buildRouter(cfg, personStore, userStore)
	if err != nil {
		log.Fatalf("build router: %v", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("phonebook server listening on %s", cfg.HTTPAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func openStores(ctx context.Context, cfg config.Config) (storage.PersonStore, storage.UserStore, error) {
	if cfg.MongoURI == "" {
		log.Println("MONGODB_URI not set; using in-memory store")
		return memstore.NewPersonStore(), memstore.NewUserStore(), nil
	}

	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, nil, err
	}
	personStore, err := mongodb.NewPersonStore(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	userStore, err := mongodb.NewUserStore(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	log.Println("connected to mongodb")
	return personStore, userStore, nil
}
