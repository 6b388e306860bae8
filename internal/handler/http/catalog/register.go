// Package catalog exposes the catalog queries over HTTP.
package catalog

import (
	"log/slog"
	"net/http"

	catUC "beer-catalog/internal/usecase/catalog"

	"github.com/shopspring/decimal"
)

// Register registers the catalog query routes on mux.
//
//	GET /priceRange    ?url=
//	GET /priceExactly  ?url=&targetPrice=
//	GET /mostBottles   ?url=
//	GET /all           ?url=&targetPrice=
func Register(mux *http.ServeMux, svc *catUC.Service, defaultTargetPrice decimal.Decimal, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	mux.Handle("GET /priceRange", PriceRangeHandler{Svc: svc})
	mux.Handle("GET /priceExactly", ExactPriceHandler{Svc: svc, DefaultTargetPrice: defaultTargetPrice})
	mux.Handle("GET /mostBottles", MostBottlesHandler{Svc: svc})
	mux.Handle("GET /all", AllHandler{Svc: svc, DefaultTargetPrice: defaultTargetPrice, Logger: logger})
}
