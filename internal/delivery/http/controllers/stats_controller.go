package controllers

import (
	"log/slog"
	"net/http"

	"festregistry/internal/delivery/http/helpers"
	"festregistry/internal/domain"
)

type StatsController struct {
	Logger  *slog.Logger
	Service domain.StatsService
}

func NewStatsController(logger *slog.Logger, svc domain.StatsService) *StatsController {
	return &StatsController{
		Logger:  logger,
		Service: svc,
	}
}

// GetStats godoc
// @Summary Dashboard statistics snapshot
// @Description Returns system counters, per-event registration counts with fill percentages, prize pool, and recent activity series. The snapshot reflects datastore state at query time with no cross-query consistency guarantee.
// @Tags stats
// @Produce json
// @Success 200 {object} helpers.APIResponse "code: STATS_SUCCESS, data is the snapshot"
// @Failure 405 {object} helpers.APIResponse "code: METHOD_NOT_ALLOWED"
// @Failure 500 {object} helpers.APIResponse "code: STATS_ERROR"
// @Router /stats [get]
func (c *StatsController) GetStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		helpers.WriteError(w, http.StatusMethodNotAllowed,
			"stats only accepts GET requests", helpers.CodeMethodNotAllowed)
		return
	}

	snapshot, err := c.Service.ComputeStats(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "stats computation failed",
			"path", r.URL.Path, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError,
			"failed to retrieve statistics", helpers.CodeStatsError)
		return
	}

	helpers.WriteSuccess(w, http.StatusOK,
		"statistics retrieved successfully", snapshot, helpers.CodeStatsSuccess)
}
