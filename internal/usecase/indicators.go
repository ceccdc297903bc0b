package usecase

import (
	"IntraPull/internal/domain/models"
	"IntraPull/internal/indicators"
)

// SeriesIndicators holds per-bar indicator series aligned with the bar slice.
type SeriesIndicators struct {
	VWAP  []float64 `json:"vwap"`
	EMA20 []float64 `json:"ema20"`
	ATR14 []float64 `json:"atr14"`
}

// ComputeIndicators derives the standard indicator set for a series.
func (uc *SeriesUseCase) ComputeIndicators(series []models.Bar) *SeriesIndicators {
	if len(series) == 0 {
		return &SeriesIndicators{}
	}
	return &SeriesIndicators{
		VWAP:  indicators.VWAP(series, uc.cal.Location()),
		EMA20: indicators.EMA(indicators.Closes(series), scanEMAPeriod),
		ATR14: indicators.ATR(series, scanATRPeriod),
	}
}
