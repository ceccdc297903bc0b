// Package api exposes the bar pipeline over HTTP.
package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"IntraPull/internal/domain/models"
	drepo "IntraPull/internal/domain/repository"
	fcache "IntraPull/internal/service/cache"
	"IntraPull/internal/usecase"
	pkghttp "IntraPull/pkg/http"
	"IntraPull/pkg/logger"
	"IntraPull/pkg/util"
)

// SeriesHandler serves the series, scan and cache-admin endpoints.
type SeriesHandler struct {
	series *usecase.SeriesUseCase
	scan   *usecase.ScanUseCase
	log    *logger.Logger
}

// NewSeriesHandler creates the API handler.
func NewSeriesHandler(series *usecase.SeriesUseCase, scan *usecase.ScanUseCase, log *logger.Logger) *SeriesHandler {
	return &SeriesHandler{series: series, scan: scan, log: log}
}

// RegisterRoutes registers the API routes.
func (h *SeriesHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/series", h.GetSeries)
	g.GET("/scan", h.GetScan)
	g.GET("/cache/stats", h.GetCacheStats)
	g.POST("/cache/optimize", h.OptimizeCache)
}

// seriesResponse is the series payload, with indicators when requested.
type seriesResponse struct {
	*usecase.GetSeriesResult
	Indicators *usecase.SeriesIndicators `json:"indicators,omitempty"`
}

// GetSeries handles GET /api/series.
func (h *SeriesHandler) GetSeries(c echo.Context) error {
	var req models.SeriesRequest
	if verrs := pkghttp.ReadAndValidateRequest(c, &req); verrs != nil {
		return pkghttp.BadRequestResponse(c, verrs)
	}

	loc := h.series.Calendar().Location()
	base, ok := util.ParseDate(req.Base, loc)
	if req.Base != "" && !ok {
		return pkghttp.BadRequestResponse(c,
			pkghttp.BadRequestErrorf("base must be YYYY-MM-DD, got %q", req.Base))
	}

	res, err := h.series.GetSeries(c.Request().Context(), usecase.GetSeriesParams{
		Symbol:    req.Symbol,
		Timeframe: drepo.NormalizeTimeframe(req.TF),
		Offset:    req.Offset,
		BaseDate:  base,
	})
	if err != nil {
		if errors.Is(err, fcache.ErrTooSoon) {
			return pkghttp.AppErrorResponse(c,
				pkghttp.TooSoonError("identical request in flight, retry shortly"))
		}
		h.log.Error("series request failed",
			logger.String("symbol", req.Symbol),
			logger.String("tf", req.TF),
			logger.Error(err),
		)
		return pkghttp.AppErrorResponse(c,
			pkghttp.InternalError("series retrieval failed").WithError(err))
	}

	resp := seriesResponse{GetSeriesResult: res}
	if req.Indicators {
		resp.Indicators = h.series.ComputeIndicators(res.Bars)
	}
	return pkghttp.SuccessResponse(c, resp)
}

// GetScan handles GET /api/scan.
func (h *SeriesHandler) GetScan(c echo.Context) error {
	var req models.ScanRequest
	if verrs := pkghttp.ReadAndValidateRequest(c, &req); verrs != nil {
		return pkghttp.BadRequestResponse(c, verrs)
	}

	loc := h.series.Calendar().Location()
	date, ok := util.ParseDate(req.Date, loc)
	if req.Date != "" && !ok {
		return pkghttp.BadRequestResponse(c,
			pkghttp.BadRequestErrorf("date must be YYYY-MM-DD, got %q", req.Date))
	}

	res, err := h.scan.RunScan(c.Request().Context(), date)
	if err != nil {
		h.log.Error("scan request failed", logger.Error(err))
		return pkghttp.AppErrorResponse(c,
			pkghttp.InternalError("scan failed").WithError(err))
	}
	return pkghttp.SuccessResponse(c, res)
}

// GetCacheStats handles GET /api/cache/stats.
func (h *SeriesHandler) GetCacheStats(c echo.Context) error {
	return pkghttp.SuccessResponse(c, h.series.CacheStats())
}

// OptimizeCache handles POST /api/cache/optimize.
func (h *SeriesHandler) OptimizeCache(c echo.Context) error {
	removed := h.series.Optimize()
	return pkghttp.SuccessResponse(c, map[string]int{"removed": removed})
}
