package main

import (
	"flag"
	"log"

	"go.uber.org/fx"

	"github.com/schemaworks/registrar/internal/config"
	"github.com/schemaworks/registrar/internal/logger"
	"github.com/schemaworks/registrar/internal/metrics"
	"github.com/schemaworks/registrar/internal/notifier"
	"github.com/schemaworks/registrar/internal/quota"
	"github.com/schemaworks/registrar/internal/rabbit"
	"github.com/schemaworks/registrar/internal/schemastore"
	"github.com/schemaworks/registrar/internal/server"
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
			cfg.QuotaStoreConfig,
			cfg.RabbitConfig,
			func() server.Config {
				return server.Config{
					Address:      cfg.Server.Address,
					ReadTimeout:  cfg.Server.ReadTimeout,
					WriteTimeout: cfg.Server.WriteTimeout,
					IdleTimeout:  cfg.Server.IdleTimeout,
				}
			},
		),
		logger.FXModule,
		metrics.FXModule,
		schemastore.FXModule,
		quota.FXModule,
		rabbit.FXModule,
		notifier.FXModule,
		server.FXModule,
	)

	app.Run()
}
