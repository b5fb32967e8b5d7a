// seed carga ventas de ejemplo en el índice de búsqueda: una por día desde
// hace 30 días hasta hoy, con producto, categoría, precio y cantidad aleatorios.
//
// Uso: go run ./cmd/seed [-count 500] [-seed 42]
// Lee ES_BASE_URL, ES_INDEX y demás variables igual que cmd/api.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/sales-dashboard/internal/application/seed"
	"github.com/jhoicas/sales-dashboard/internal/infrastructure/elasticsearch"
	"github.com/jhoicas/sales-dashboard/pkg/config"
	"github.com/jhoicas/sales-dashboard/pkg/logger"
)

func main() {
	count := flag.Int("count", seed.DefaultCount, "máximo de ventas a generar")
	seedValue := flag.Int64("seed", 0, "semilla del generador (0 = aleatoria)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: "seed"})

	loc, err := cfg.Dashboard.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	if *seedValue == 0 {
		*seedValue = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := elasticsearch.NewClient(elasticsearch.Config{
		BaseURL:  cfg.Search.BaseURL,
		Index:    cfg.Search.Index,
		Timeout:  cfg.Search.Timeout,
		Location: loc,
	}, log)
	now := func() time.Time { return time.Now().In(loc) }
	uc := seed.NewSeedUseCase(client, seed.NewGenerator(*seedValue, now), log)

	n, err := uc.Run(ctx, *count)
	if err != nil {
		log.Fatal().Err(err).Int("indexed", n).Msg("seed incompleto")
	}
	log.Info().
		Int("records", n).
		Int64("seed", *seedValue).
		Str("index", cfg.Search.Index).
		Msg("datos de ejemplo generados")
}
