package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/annagav/cinema-booking/internal/catalog"
	"github.com/annagav/cinema-booking/internal/config"
	"github.com/annagav/cinema-booking/internal/database"
	"github.com/annagav/cinema-booking/internal/engine"
	"github.com/annagav/cinema-booking/internal/handler"
	"github.com/annagav/cinema-booking/internal/model"
	"github.com/annagav/cinema-booking/internal/navigation"
	"github.com/annagav/cinema-booking/internal/queue"
	"github.com/annagav/cinema-booking/internal/repository"
	"github.com/annagav/cinema-booking/internal/router"
	queue_publisher "github.com/annagav/cinema-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		var err error
		cat, err = catalog.LoadFile(cfg.CatalogFile)
		if err != nil {
			log.Fatalf("load catalog: %v", err)
		}
	}

	layout := model.VenueLayout{Rows: cfg.VenueRows, SeatsPerRow: cfg.SeatsPerRow}

	var store engine.Store
	switch cfg.StoreDriver {
	case "memory":
		store = repository.NewMemoryStore()
		slog.Warn("using in-memory store; bookings will not survive a restart")
	default:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := database.EnsureSchema(ctx, db); err != nil {
			cancel()
			log.Fatalf("ensure schema: %v", err)
		}
		cancel()
		store = repository.NewBookingRepo(db)
	}

	eng := engine.New(store, cat, layout)
	machine := navigation.New(cat, eng)

	browse := handler.NewBrowseHandler(cat, eng)
	booking := handler.NewBookingHandler(eng, queue_publisher.Publisher{})
	navigate := handler.NewNavigateHandler(machine)

	rdb := config.NewRedisClient()
	if rdb == nil {
		slog.Warn("redis unreachable; response cache and rate limiting disabled")
	}

	// Notification consumer runs for the life of the process and
	// reconnects on its own.
	go func() {
		if err := queue.StartSeatEventConsumer(); err != nil {
			slog.Error("seat event consumer stopped", "err", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.Register(e, browse, booking, navigate, rdb)

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr, "env", cfg.Env, "store", cfg.StoreDriver,
		"rows", layout.Rows, "seats_per_row", layout.SeatsPerRow)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
