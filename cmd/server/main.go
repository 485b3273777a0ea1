package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/rakafardani/barbershop-booking/internal/config"
	"github.com/rakafardani/barbershop-booking/internal/notify"
	"github.com/rakafardani/barbershop-booking/internal/queue"
	"github.com/rakafardani/barbershop-booking/internal/router"
	"github.com/rakafardani/barbershop-booking/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	s, err := store.Open(cfg.DataFile, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("open entity store: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; tokens kept in memory, rate limit and cache disabled")
	}
	tokens := store.NewTokenStore(rdb)

	inbox := notify.NewInbox()
	notifier := &notify.Notifier{}
	notifier.Attach(notify.LogObserver{})
	notifier.Attach(inbox)
	notifier.Attach(queue.Observer{})

	go func() {
		if err := queue.StartEventConsumer(); err != nil {
			log.Printf("event consumer stopped: %v", err)
		}
	}()

	e := router.New(cfg, s, tokens, notifier, inbox, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.DataFile)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
