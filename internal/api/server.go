package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/donor-analytics/internal/api/handler"
	"github.com/vfg2006/donor-analytics/internal/api/handler/router"
	"github.com/vfg2006/donor-analytics/internal/api/view"
	"github.com/vfg2006/donor-analytics/internal/config"
	"github.com/vfg2006/donor-analytics/internal/usecases/segmenting"
	"github.com/vfg2006/donor-analytics/pkg/log"
	"github.com/vfg2006/donor-analytics/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
	cleanup    []func(context.Context) error
}

func New(
	config *config.Config,
	service segmenting.Segmenter,
	renderer *view.Renderer,
	cleanup ...func(context.Context) error,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(service)...),
		router.WithRoutes(handler.Dashboard(service, renderer)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Tracing(),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
		cleanup: cleanup,
	}

	return srv, nil
}

// Handler expõe a cadeia completa (middlewares + rotas)
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithFields(log.Fields{
			"address": s.httpServer.Addr,
		}).Info("Painel iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

// Shutdown para o HTTP e depois libera conexões e exportadores registrados em New
func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	log.L.Info("Servidor HTTP desligado com sucesso")

	for _, fn := range s.cleanup {
		if err := fn(ctx); err != nil {
			log.L.WithError(err).Warn("Erro ao liberar recurso no desligamento")
		}
	}

	return nil
}
