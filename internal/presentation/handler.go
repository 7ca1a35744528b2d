package presentation

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mvribas/order-freight-service/internal/domain"
	"github.com/mvribas/order-freight-service/internal/logger"
	"github.com/mvribas/order-freight-service/internal/presentation/helpers"
)

// RunService is what the HTTP layer needs from the application: trigger a run
// and read the latest one.
type RunService interface {
	Run(ctx context.Context) (*domain.RunResult, error)
	LastRun() *domain.RunResult
}

type PipelineHandler struct {
	svc RunService
}

func NewPipelineHandler(svc RunService) *PipelineHandler {
	return &PipelineHandler{svc: svc}
}

func (h *PipelineHandler) Register(r chi.Router) {
	r.Post("/runs", h.TriggerRun)
	r.Get("/runs/latest", h.LatestRun)
	r.Get("/summary", h.Summary)
	r.Get("/customers", h.Customers)
	r.Get("/freights", h.Freights)
	r.Get("/healthz", h.Health)
}

func (h *PipelineHandler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.svc.Run(r.Context())
	if err != nil {
		logger.Warn("manual run failed", "error", err.Error())
		helpers.HttpError(w, http.StatusInternalServerError, "pipeline run failed: "+err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusCreated, run)
}

func (h *PipelineHandler) LatestRun(w http.ResponseWriter, r *http.Request) {
	run := h.svc.LastRun()
	if run == nil {
		helpers.HttpError(w, http.StatusNotFound, "no completed runs yet")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, run)
}

func (h *PipelineHandler) Summary(w http.ResponseWriter, r *http.Request) {
	run := h.svc.LastRun()
	if run == nil {
		helpers.HttpError(w, http.StatusNotFound, "no completed runs yet")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, run.Summary)
}

func (h *PipelineHandler) Customers(w http.ResponseWriter, r *http.Request) {
	run := h.svc.LastRun()
	if run == nil {
		helpers.HttpError(w, http.StatusNotFound, "no completed runs yet")
		return
	}
	helpers.WriteJSON(w, http.StatusOK, run.Customers)
}

// Freights returns the dispatch queue of the latest run, optionally filtered
// with ?status=URGENT or ?status=SCHEDULED.
func (h *PipelineHandler) Freights(w http.ResponseWriter, r *http.Request) {
	run := h.svc.LastRun()
	if run == nil {
		helpers.HttpError(w, http.StatusNotFound, "no completed runs yet")
		return
	}

	q := r.URL.Query().Get("status")
	if q == "" {
		helpers.WriteJSON(w, http.StatusOK, run.Freights)
		return
	}

	status := domain.FreightStatus(strings.ToUpper(strings.TrimSpace(q)))
	if !status.IsValid() {
		helpers.HttpError(w, http.StatusBadRequest, "unknown status: "+q)
		return
	}
	helpers.WriteJSON(w, http.StatusOK, run.FreightsByStatus(status))
}

func (h *PipelineHandler) Health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
