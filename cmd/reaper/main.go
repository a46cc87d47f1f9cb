package main

import (
	"flag"
	"log"

	"go.uber.org/fx"

	"github.com/schemaworks/registrar/internal/config"
	"github.com/schemaworks/registrar/internal/consumer"
	"github.com/schemaworks/registrar/internal/logger"
	"github.com/schemaworks/registrar/internal/metrics"
	"github.com/schemaworks/registrar/internal/rabbit"
	"github.com/schemaworks/registrar/internal/schemastore"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (YAML)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	app := fx.New(
		fx.Provide(
			cfg.LoggerConfig,
			cfg.MetricsConfig,
			cfg.SchemaStoreConfig,
			cfg.RabbitConfig,
			cfg.ConsumerBatchConfig,
		),
		logger.FXModule,
		metrics.FXModule,
		schemastore.FXModule,
		rabbit.FXModule,
		consumer.FXModule,
	)

	app.Run()
}
