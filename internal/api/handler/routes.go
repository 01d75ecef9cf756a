package handler

import (
	"net/http"

	"github.com/vfg2006/donor-analytics/internal/api/handler/router"
	"github.com/vfg2006/donor-analytics/internal/api/view"
	"github.com/vfg2006/donor-analytics/internal/usecases/segmenting"
	"github.com/vfg2006/donor-analytics/pkg/middleware"
)

func Healthcheck(service segmenting.Segmenter) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(service),
		},
	}
}

// Dashboard retorna as páginas do painel; o HTML nunca é guardado em cache
func Dashboard(service segmenting.Segmenter, renderer *view.Renderer) []router.Route {
	pageMiddlewares := []func(http.Handler) http.Handler{middleware.NoCache()}

	return []router.Route{
		{
			Path:        "/",
			Method:      http.MethodGet,
			Handler:     Home(service, renderer),
			Middlewares: pageMiddlewares,
		},
		{
			Path:        "/segmentation",
			Method:      http.MethodGet,
			Handler:     Segmentation(service, renderer),
			Middlewares: pageMiddlewares,
		},
		{
			Path:        "/churn",
			Method:      http.MethodGet,
			Handler:     Placeholder(service, renderer, "nav.churn", "churn"),
			Middlewares: pageMiddlewares,
		},
		{
			Path:        "/ltv",
			Method:      http.MethodGet,
			Handler:     Placeholder(service, renderer, "nav.ltv", "ltv"),
			Middlewares: pageMiddlewares,
		},
	}
}
