package handler

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/donor-analytics/internal/api/view"
	"github.com/vfg2006/donor-analytics/internal/domain"
	"github.com/vfg2006/donor-analytics/pkg/apiErrors"
	"github.com/vfg2006/donor-analytics/pkg/log"
)

// failure é um erro do pipeline já traduzido para código, status e mensagem
type failure struct {
	code    string
	message string
	details any
}

// classify converte os erros do domínio para o formato exibido ao usuário
func classify(err error, renderer *view.Renderer) failure {
	var insufficient *domain.InsufficientDataError

	switch {
	case errors.As(err, &insufficient):
		return failure{
			code:    apiErrors.ErrInsufficientData,
			message: renderer.T("error.insufficient", insufficient.Donors, insufficient.K, insufficient.MaxK()),
			details: map[string]int{
				"donors": insufficient.Donors,
				"k":      insufficient.K,
				"max_k":  insufficient.MaxK(),
			},
		}
	case errors.Is(err, domain.ErrSchema):
		return failure{
			code:    apiErrors.ErrSchema,
			message: renderer.T("error.schema", strings.Join(domain.RequiredColumns, ", ")),
			details: err.Error(),
		}
	case errors.Is(err, domain.ErrEmptyData):
		return failure{code: apiErrors.ErrEmptyData, message: renderer.T("error.empty")}
	case errors.Is(err, domain.ErrAmountOverflow):
		return failure{code: apiErrors.ErrAmountOutOfRange, message: renderer.T("error.amount"), details: err.Error()}
	case errors.Is(err, domain.ErrInvalidClusterCount), errors.Is(err, domain.ErrUnknownSegment):
		return failure{code: apiErrors.ErrInvalidRequest, message: renderer.T("error.invalid", err.Error())}
	case errors.Is(err, domain.ErrInvalidDateRange), errors.Is(err, errInvalidNumber):
		return failure{code: apiErrors.ErrInvalidFormat, message: renderer.T("error.invalid", err.Error())}
	case errors.Is(err, domain.ErrProviderUnavailable):
		return failure{code: apiErrors.ErrExternalService, message: renderer.T("error.provider")}
	default:
		return failure{code: apiErrors.ErrInternalServer, message: renderer.T("error.internal")}
	}
}

// writeFailure responde com JSON padronizado ou com a página de erro, mantendo o formulário
func writeFailure(w http.ResponseWriter, r *http.Request, renderer *view.Renderer, page view.Page,
	form *view.SegmentationForm, asJSON bool, err error) {
	f := classify(err, renderer)
	status := apiErrors.StatusFor(f.code)

	entry := log.ForContext(r.Context()).WithError(err).WithField("code", f.code)
	if status >= http.StatusInternalServerError {
		entry.Error("Erro ao processar requisição")
	} else {
		entry.Warn("Requisição rejeitada")
	}

	if asJSON {
		apiErrors.WriteError(w, f.code, f.message, f.details)
		return
	}

	page.Title = "error.title"
	page.Body = view.ErrorBody{Message: f.message, Form: form}
	writePage(w, r, renderer, status, view.PageError, page)
}
