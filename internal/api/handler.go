package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mr1hm/go-hazard-tools/internal/engine"
	"github.com/mr1hm/go-hazard-tools/internal/tools"
)

type Handler struct {
	svc *tools.Service
}

func NewHandler(svc *tools.Service) *Handler {
	return &Handler{
		svc: svc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/tools/query-hazards", h.queryHazards)
	r.GET("/api/hazards/:id/repair-plan", h.estimateRepairPlan)
	r.GET("/api/tools/project-worsening", h.projectWorsening)
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (h *Handler) queryHazards(c *gin.Context) {
	kind := c.Query("kind")
	location := c.Query("location")

	limit := tools.DefaultAnalyticsLimit
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	result, err := h.svc.QueryHazards(c.Request.Context(), kind, location, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) estimateRepairPlan(c *gin.Context) {
	result, err := h.svc.EstimateRepairPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) projectWorsening(c *gin.Context) {
	req := tools.ProjectionRequest{
		HazardID:    c.Query("hazard_id"),
		Location:    c.Query("location"),
		HorizonDays: tools.DefaultHorizonDays,
	}

	if v := c.Query("horizon_days"); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			req.HorizonDays = d
		}
	}
	if v := c.Query("precip_mm"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			req.PrecipMM = p
		}
	}
	if v := c.Query("freeze_thaw_cycles"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.FreezeThawCycles = n
		}
	}

	result, err := h.svc.ProjectWorsening(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps the engine's error taxonomy onto status codes. Validation
// and not-found messages are safe to echo; anything else is a store failure
// and stays out of the response body.
func writeError(c *gin.Context, err error) {
	switch {
	case engine.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case engine.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		slog.Error("tool call failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
