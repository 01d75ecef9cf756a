package main

import (
	"context"
	"flag"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/donor-analytics/infrastructure/database/sqldb"
	"github.com/vfg2006/donor-analytics/infrastructure/migration"
	"github.com/vfg2006/donor-analytics/infrastructure/provider/synthetic"
	"github.com/vfg2006/donor-analytics/internal/config"
	"github.com/vfg2006/donor-analytics/pkg/log"
)

// seed grava o histórico sintético (MOCK_*) na tabela DATABASE_TABLE
func main() {
	replace := flag.Bool("replace", false, "apaga as doações existentes antes de gravar")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)

	ctx := context.Background()

	records, err := synthetic.NewClient(cfg.Mock, time.Now()).GetDonations(ctx, nil)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao gerar doações")
	}

	conn, err := sqldb.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.L.WithError(err).WithField("driver", cfg.Database.Driver).Fatal("Erro ao conectar à base de doações")
	}
	defer conn.Close()

	inserted, err := migration.NewSeeder(conn, cfg.Database.Table).Seed(ctx, records, *replace)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao gravar doações")
	}

	log.L.WithFields(log.Fields{
		"driver":  conn.Driver(),
		"table":   cfg.Database.Table,
		"records": inserted,
	}).Info("Carga concluída")
}
