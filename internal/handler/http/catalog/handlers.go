package catalog

import (
	"log/slog"
	"net/http"

	"beer-catalog/internal/handler/http/respond"
	"beer-catalog/internal/observability/logging"
	catUC "beer-catalog/internal/usecase/catalog"

	"github.com/shopspring/decimal"
)

// PriceRangeHandler serves GET /priceRange.
type PriceRangeHandler struct{ Svc *catUC.Service }

func (h PriceRangeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	location, err := sourceURL(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := h.Svc.PriceRange(r.Context(), location)
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, NewPriceRangeDTO(result))
}

// ExactPriceHandler serves GET /priceExactly.
type ExactPriceHandler struct {
	Svc                *catUC.Service
	DefaultTargetPrice decimal.Decimal
}

func (h ExactPriceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	location, err := sourceURL(r)
	if err != nil {
		writeError(w, err)
		return
	}
	target, err := targetPrice(r, h.DefaultTargetPrice)
	if err != nil {
		writeError(w, err)
		return
	}

	products, err := h.Svc.ExactPrice(r.Context(), location, target)
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, NewProductDTOs(products))
}

// MostBottlesHandler serves GET /mostBottles. A catalog without articles
// answers null.
type MostBottlesHandler struct{ Svc *catUC.Service }

func (h MostBottlesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	location, err := sourceURL(r)
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.Svc.MostBottles(r.Context(), location)
	if err != nil {
		writeError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, NewProductDTOPtr(product))
}

// AllHandler serves GET /all, answering every query from one fetch.
type AllHandler struct {
	Svc                *catUC.Service
	DefaultTargetPrice decimal.Decimal
	Logger             *slog.Logger
}

func (h AllHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	location, err := sourceURL(r)
	if err != nil {
		writeError(w, err)
		return
	}
	target, err := targetPrice(r, h.DefaultTargetPrice)
	if err != nil {
		writeError(w, err)
		return
	}

	overview, err := h.Svc.All(r.Context(), location, target)
	if err != nil {
		writeError(w, err)
		return
	}

	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logging.WithRequestID(r.Context(), logger).Debug("overview computed",
		slog.String("target_price", target.String()),
		slog.Int("matching", len(overview.MatchingPricesSorted)))
	respond.JSON(w, http.StatusOK, NewOverviewDTO(overview))
}
