package planner

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/de-tools/dealer-planner/pkg/adapters"
	pkgerrors "github.com/de-tools/dealer-planner/pkg/errors"
	"github.com/de-tools/dealer-planner/pkg/metrics"
	"github.com/de-tools/dealer-planner/pkg/models/api"
	"github.com/de-tools/dealer-planner/pkg/models/domain"
	"github.com/de-tools/dealer-planner/pkg/services/planner"
)

type Handler struct {
	planner planner.Service
	metrics *metrics.PlannerMetrics
}

func NewHandler(svc planner.Service, m *metrics.PlannerMetrics) *Handler {
	return &Handler{
		planner: svc,
		metrics: m,
	}
}

// GetBaseline serves the forecast plan. The horizon query parameter is
// optional; when present it must be a positive month count.
func (h *Handler) GetBaseline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	horizon, err := horizonQueryParam(r)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	plan, err := h.planner.GetBaseline(ctx, horizon)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	h.metrics.IncPlans("baseline")
	writeSuccess(w, logger, adapters.MapPlanDomainToApi(plan))
}

func (h *Handler) ApplyScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var body api.ScenarioRequest
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(w, logger, err)
		return
	}

	result, err := h.planner.ApplyScenario(ctx, domain.Scenario{
		Horizon:   body.Horizon,
		Period:    body.Period,
		Overrides: body.Overrides,
	})
	if err != nil {
		writeError(w, logger, err)
		return
	}

	h.metrics.IncPlans("scenario")
	writeSuccess(w, logger, adapters.MapScenarioResultDomainToApi(result))
}

func (h *Handler) SolveTarget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var body api.TargetRequest
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(w, logger, err)
		return
	}

	solution, err := h.planner.SolveTarget(ctx, *body.TargetProfit, body.Period, body.Horizon)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	h.metrics.IncPlans("target")
	writeSuccess(w, logger, adapters.MapTargetSolutionDomainToApi(solution))
}

func (h *Handler) PlanActions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var body api.TargetRequest
	if err := decodeJSONBody(r, &body); err != nil {
		writeError(w, logger, err)
		return
	}

	plan, err := h.planner.PlanActions(ctx, *body.TargetProfit, body.Period, body.Horizon)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	h.metrics.IncPlans("actions")
	writeSuccess(w, logger, adapters.MapActionPlanDomainToApi(plan))
}

func (h *Handler) ListKPIs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	infos, err := h.planner.ListKPIs(ctx)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	response := make([]api.KPIInfo, 0, len(infos))
	for _, info := range infos {
		response = append(response, adapters.MapKPIInfoDomainToApi(info))
	}
	writeSuccess(w, logger, response)
}

// horizonQueryParam reads the optional horizon parameter. Absence means the
// configured default; an explicit value must parse and be positive.
func horizonQueryParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("horizon")
	if raw == "" {
		return 0, nil
	}
	horizon, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.Newf(pkgerrors.CodeValidation, "horizon %q is not an integer", raw)
	}
	if horizon < 1 {
		return 0, pkgerrors.Newf(pkgerrors.CodeInvalidHorizon, "horizon must be at least 1, got %d", horizon)
	}
	return horizon, nil
}
