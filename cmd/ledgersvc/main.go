package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/eloboard/elo-services/configs"
	"github.com/eloboard/elo-services/internal/ledgersvc/broker"
	svcconfig "github.com/eloboard/elo-services/internal/ledgersvc/config"
	"github.com/eloboard/elo-services/internal/ledgersvc/db"
	handlers "github.com/eloboard/elo-services/internal/ledgersvc/handlers"
	"github.com/eloboard/elo-services/internal/ledgersvc/service"
	"github.com/eloboard/elo-services/internal/ledgersvc/store"
	"github.com/eloboard/elo-services/internal/ledgersvc/ws"
	natscli "github.com/eloboard/elo-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "ledger"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	cfg := svcconfig.Load()

	// pg connection
	dbpool, err := db.Connect(cfg.DBUrl)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelMigrate()
	if err := db.Migrate(migrateCtx, dbpool); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}
	log.Printf("ledger schema ready")

	ledgerStore := store.NewLedgerStore(dbpool)

	identityService := service.NewIdentityService(ledgerStore)
	rosterService := service.NewRosterService(ledgerStore, cfg.DefaultRating)
	matchService := service.NewMatchService(ledgerStore, cfg.UnknownPlayerPolicy)
	queryService := service.NewQueryService(ledgerStore)

	// Connect to NATS; the match event feed degrades gracefully
	// without it, the ledger itself does not need it.
	var eventBroker *broker.Broker
	var hub *ws.Hub
	n, err := natscli.Connect()
	if err != nil {
		log.Warnf("unable to connect to NATS server, live feed disabled: %v", err)
	} else {
		defer n.Conn.Close()
		log.Printf("NATS connection established successfully %s", n.Url)

		eventBroker = broker.NewBroker(n.Conn)
		h := ws.NewHub()
		sub, err := h.Subscribe(n.Conn)
		if err != nil {
			log.Warnf("unable to subscribe to match events, live feed disabled: %v", err)
		} else {
			defer sub.Unsubscribe()
			hub = h
		}
	}

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		rateLimit = 120
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(identityService, rosterService, matchService, queryService, eventBroker, hub)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("LEDGER_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
