package catalog

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"beer-catalog/internal/domain/entity"
	"beer-catalog/internal/handler/http/respond"
	catUC "beer-catalog/internal/usecase/catalog"

	"github.com/shopspring/decimal"
)

// sourceURL reads and validates the url query parameter.
func sourceURL(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("url"))
	if err := entity.ValidateSourceURL(raw); err != nil {
		return "", err
	}
	return raw, nil
}

// targetPrice reads targetPrice, accepting "17.99" and "17,99". An absent
// parameter yields def.
func targetPrice(r *http.Request, def decimal.Decimal) (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("targetPrice"))
	if raw == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(strings.Replace(raw, ",", ".", 1))
	if err != nil {
		return decimal.Zero, &entity.ValidationError{Field: "targetPrice", Message: "targetPrice must be a decimal number"}
	}
	if d.IsNegative() {
		return decimal.Zero, &entity.ValidationError{Field: "targetPrice", Message: "targetPrice cannot be negative"}
	}
	return d, nil
}

// writeError maps service errors to responses.
//
//   - invalid input            -> 400 with the validation message
//   - client gone              -> nothing written
//   - fetch or decode failure  -> 400 "unable to fetch products", upstream
//     timeouts included
//   - other deadline exceeded  -> 504 "request timeout"
//   - anything else            -> 500
func writeError(w http.ResponseWriter, err error) {
	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve):
		respond.Error(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, entity.ErrInvalidInput):
		respond.SafeError(w, http.StatusBadRequest, err)
	case errors.Is(err, context.Canceled):
		// client disconnected
	case errors.Is(err, catUC.ErrProductsUnavailable):
		respond.SafeError(w, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, catUC.ErrProductsUnavailable.Error(), err))
	case errors.Is(err, context.DeadlineExceeded):
		respond.SafeError(w, http.StatusGatewayTimeout,
			respond.NewAppError(http.StatusGatewayTimeout, "request timeout", err))
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
