package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"beer-catalog/internal/domain/entity"
	"beer-catalog/internal/observability/metrics"
	"beer-catalog/internal/observability/tracing"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultTargetPrice is the price used by ExactPrice queries when the caller does
// not name one.
var DefaultTargetPrice = decimal.RequireFromString("17.99")

// ProductSource fetches the raw catalog payload from a location (URL or path).
// Implementations make a single bounded attempt and honor ctx.
type ProductSource interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// ProductDecoder turns a raw payload into products. A nil product list with a nil
// error means the payload was a JSON null.
type ProductDecoder interface {
	Decode(data []byte) ([]entity.Product, error)
}

// Query names a query type for logs and metrics.
type Query string

// Supported query types.
const (
	QueryPriceRange  Query = "priceRange"
	QueryExactPrice  Query = "priceExactly"
	QueryMostBottles Query = "mostBottles"
	QueryAll         Query = "all"
)

// Stage is a step of the per-request pipeline.
type Stage int

// Pipeline stages in execution order. StageFailed is terminal.
const (
	StageFetching Stage = iota
	StageDecoding
	StageNormalizing
	StageAggregating
	StageResponding
	StageFailed
)

// String returns the lower-case stage name.
func (s Stage) String() string {
	switch s {
	case StageFetching:
		return "fetching"
	case StageDecoding:
		return "decoding"
	case StageNormalizing:
		return "normalizing"
	case StageAggregating:
		return "aggregating"
	case StageResponding:
		return "responding"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// PriceRange holds the products with the most expensive and the cheapest
// article per liter.
type PriceRange struct {
	MostExpensive *entity.Product
	Cheapest      *entity.Product
}

// Overview combines the results of all queries over one fetched catalog.
type Overview struct {
	MostExpensive        *entity.Product
	Cheapest             *entity.Product
	MatchingPricesSorted []entity.Product
	MostBottlesProduct   *entity.Product
}

// Service answers catalog queries. Every call fetches, decodes and normalizes
// its own product list; nothing is shared between calls.
type Service struct {
	Source  ProductSource
	Decoder ProductDecoder
	Logger  *slog.Logger
}

// NewService creates a Service. A nil logger falls back to slog.Default().
func NewService(source ProductSource, decoder ProductDecoder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Source: source, Decoder: decoder, Logger: logger}
}

// PriceRange returns the most expensive and the cheapest product per liter.
func (s *Service) PriceRange(ctx context.Context, location string) (PriceRange, error) {
	return execute(ctx, s, QueryPriceRange, location, func(products []entity.Product) PriceRange {
		return PriceRange{
			MostExpensive: FindMostExpensivePerUnit(products),
			Cheapest:      FindCheapestPerUnit(products),
		}
	})
}

// ExactPrice returns the products having an article priced exactly at target,
// sorted by unit price.
func (s *Service) ExactPrice(ctx context.Context, location string, target decimal.Decimal) ([]entity.Product, error) {
	return execute(ctx, s, QueryExactPrice, location, func(products []entity.Product) []entity.Product {
		return SortByUnitPrice(FindByExactPrice(products, target))
	})
}

// MostBottles returns the product with the largest bottle count per article.
func (s *Service) MostBottles(ctx context.Context, location string) (*entity.Product, error) {
	return execute(ctx, s, QueryMostBottles, location, FindProductWithMostBottles)
}

// All runs every query over a single fetch of the catalog.
func (s *Service) All(ctx context.Context, location string, target decimal.Decimal) (Overview, error) {
	return execute(ctx, s, QueryAll, location, func(products []entity.Product) Overview {
		return Overview{
			MostExpensive:        FindMostExpensivePerUnit(products),
			Cheapest:             FindCheapestPerUnit(products),
			MatchingPricesSorted: SortByUnitPrice(FindByExactPrice(products, target)),
			MostBottlesProduct:   FindProductWithMostBottles(products),
		}
	})
}

// execute runs the shared pipeline prefix and then the query specific aggregation.
// Aggregation only runs once the product list is fully available.
func execute[T any](ctx context.Context, s *Service, query Query, location string, aggregate func([]entity.Product) T) (T, error) {
	var zero T
	start := time.Now()

	ctx, span := tracing.GetTracer().Start(ctx, "catalog."+string(query),
		trace.WithAttributes(attribute.String("catalog.query", string(query))))
	defer span.End()

	logger := s.Logger.With(slog.String("query", string(query)))

	products, err := s.load(ctx, logger, location)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "products unavailable")
		metrics.RecordQuery(string(query), false, time.Since(start))
		logger.Warn("catalog query failed",
			slog.String("stage", StageFailed.String()),
			slog.Any("error", err))
		return zero, err
	}

	logger.Debug("catalog stage", slog.String("stage", StageAggregating.String()))
	result := aggregate(products)

	logger.Debug("catalog stage", slog.String("stage", StageResponding.String()),
		slog.Int("products", len(products)))
	span.SetAttributes(attribute.Int("catalog.products", len(products)))
	metrics.RecordQuery(string(query), true, time.Since(start))
	return result, nil
}

// load performs Fetch → Decode → Normalize.
func (s *Service) load(ctx context.Context, logger *slog.Logger, location string) ([]entity.Product, error) {
	logger.Debug("catalog stage", slog.String("stage", StageFetching.String()))
	fetchStart := time.Now()
	data, err := s.fetch(ctx, location)
	metrics.RecordSourceFetch(err == nil, time.Since(fetchStart), len(data))
	if err != nil {
		return nil, &QueryError{Stage: StageFetching, Err: fmt.Errorf("%w: %w", ErrFetchFailed, err)}
	}

	logger.Debug("catalog stage", slog.String("stage", StageDecoding.String()),
		slog.Int("bytes", len(data)))
	products, err := s.Decoder.Decode(data)
	if err != nil {
		return nil, &QueryError{Stage: StageDecoding, Err: fmt.Errorf("%w: %w", ErrDecodeFailed, err)}
	}
	if products == nil {
		return nil, &QueryError{Stage: StageDecoding, Err: fmt.Errorf("%w: payload is null", ErrDecodeFailed)}
	}

	logger.Debug("catalog stage", slog.String("stage", StageNormalizing.String()))
	normalized := Normalize(products)
	metrics.RecordNormalized(countArticles(normalized), countMissingUnitPrice(normalized))
	return normalized, nil
}

func (s *Service) fetch(ctx context.Context, location string) ([]byte, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "catalog.fetch")
	defer span.End()

	data, err := s.Source.Fetch(ctx, location)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("catalog.payload_bytes", len(data)))
	return data, nil
}

func countArticles(products []entity.Product) int {
	n := 0
	for _, p := range products {
		n += len(p.Articles)
	}
	return n
}

func countMissingUnitPrice(products []entity.Product) int {
	n := 0
	for _, p := range products {
		for _, a := range p.Articles {
			if a.PricePerUnit.IsZero() {
				n++
			}
		}
	}
	return n
}
