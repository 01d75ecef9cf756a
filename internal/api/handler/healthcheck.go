package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/donor-analytics/internal/usecases/segmenting"
	"github.com/vfg2006/donor-analytics/pkg/log"
)

type healthStatus struct {
	Status string    `json:"status"`
	Source string    `json:"source"`
	Time   time.Time `json:"time"`
}

// HealthcheckHandler responde sem consultar a origem de dados
func HealthcheckHandler(service segmenting.Segmenter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(healthStatus{
			Status: "ok",
			Source: service.SourceName(),
			Time:   time.Now().UTC(),
		})
		if err != nil {
			log.L.WithError(err).Warn("erro ao responder healthcheck")
		}
	})
}
