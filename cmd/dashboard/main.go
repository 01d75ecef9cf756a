package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/donor-analytics/infrastructure/database/sqldb"
	"github.com/vfg2006/donor-analytics/infrastructure/provider/csvsource"
	"github.com/vfg2006/donor-analytics/infrastructure/provider/donationapi"
	"github.com/vfg2006/donor-analytics/infrastructure/provider/sqlsource"
	"github.com/vfg2006/donor-analytics/infrastructure/provider/synthetic"
	"github.com/vfg2006/donor-analytics/internal/api"
	"github.com/vfg2006/donor-analytics/internal/api/view"
	"github.com/vfg2006/donor-analytics/internal/config"
	"github.com/vfg2006/donor-analytics/internal/usecases/segmenting"
	"github.com/vfg2006/donor-analytics/pkg/log"
	"github.com/vfg2006/donor-analytics/pkg/telemetry"
)

const serviceName = "donor-analytics"

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	level := log.Configure(cfg.App.LogLevel)
	log.L.Infof("Nível de log configurado para: %s", level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, serviceName)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao configurar telemetria")
	}

	provider, closeProvider := newProvider(ctx, cfg)

	service := segmenting.NewService(cfg, provider)

	renderer, err := view.NewRenderer(cfg.App.Locale)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar templates")
	}

	server, err := api.New(cfg, service, renderer, closeProvider, shutdownTelemetry)
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// newProvider escolhe a origem de dados por DATA_SOURCE; o segundo retorno libera a conexão
func newProvider(ctx context.Context, cfg *config.Config) (segmenting.DonationProvider, func(context.Context) error) {
	noop := func(context.Context) error { return nil }

	var provider segmenting.DonationProvider
	closer := noop

	switch cfg.DataSource.Kind {
	case config.DataSourceCSV:
		provider = csvsource.NewClient(cfg.CSV)
	case config.DataSourceAPI:
		provider = donationapi.NewClient(cfg.API)
	case config.DataSourcePostgres, config.DataSourceSQLite:
		conn := dbconn(ctx, cfg.Database)
		provider = sqlsource.NewClient(conn, conn.Driver(), cfg.Database.Table)
		closer = func(context.Context) error { return conn.Close() }
	default:
		provider = synthetic.NewClient(cfg.Mock, time.Now())
	}

	log.L.WithField("source", provider.Name()).Info("Origem de dados configurada")
	return provider, closer
}

// dbconn cria a conexão com a base de doações
func dbconn(ctx context.Context, dbConfig config.Database) *sqldb.Connection {
	conn, err := sqldb.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).WithField("driver", dbConfig.Driver).Fatal("Erro ao conectar à base de doações")
	}

	log.L.WithField("driver", conn.Driver()).Info("Conexão com a base de doações estabelecida com sucesso")
	return conn
}
