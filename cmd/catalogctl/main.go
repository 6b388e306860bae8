// Package main provides a CLI that runs catalog queries against one or more
// product sources concurrently.
// Usage: catalogctl [--query all] [--target-price 17.99] location...
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"beer-catalog/internal/infra/decoder"
	"beer-catalog/internal/infra/fetcher"
	"beer-catalog/internal/observability/logging"
	"beer-catalog/internal/resilience/circuitbreaker"

	hcatalog "beer-catalog/internal/handler/http/catalog"
	catUC "beer-catalog/internal/usecase/catalog"
)

const (
	queryPriceRange  = "priceRange"
	queryExactPrice  = "priceExactly"
	queryMostBottles = "mostBottles"
	queryAll         = "all"
)

// LocationOutput is the result for one location. Exactly one of Result and
// Error is set.
type LocationOutput struct {
	Location string `json:"location"`
	Result   any    `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
}

type options struct {
	query        string
	targetPrice  decimal.Decimal
	timeout      time.Duration
	parallel     int
	failFast     bool
	allowPrivate bool
	locations    []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code: 0 when every
// location succeeded, 1 when any failed, 2 on usage errors.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, logLevel, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger := logging.NewLogger(logging.Options{
		Level:  logLevel,
		Format: logging.FormatText,
		Writer: stderr,
	})

	fetchCfg := fetcher.DefaultConfig()
	fetchCfg.Timeout = opts.timeout
	fetchCfg.DenyPrivateIPs = !opts.allowPrivate
	breakers := circuitbreaker.NewGroup(circuitbreaker.CatalogSourceConfig(), 0)
	source := fetcher.LocationSource{
		HTTP: fetcher.NewHTTPSource(fetchCfg, breakers, logger),
		File: fetcher.FileSource{MaxBodySize: fetchCfg.MaxBodySize},
	}
	svc := catUC.NewService(source, decoder.MustNew(), logger)

	outputs, err := queryAllLocations(ctx, svc, opts)
	if err != nil {
		// Only reached with --fail-fast.
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(outputs); err != nil {
		fmt.Fprintf(stderr, "Error: Failed to encode JSON: %v\n", err)
		return 1
	}

	for _, out := range outputs {
		if out.Error != "" {
			return 1
		}
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, string, error) {
	fs := flag.NewFlagSet("catalogctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opts     options
		target   string
		logLevel string
	)
	fs.StringVar(&opts.query, "query", queryAll, "Query to run: priceRange, priceExactly, mostBottles or all")
	fs.StringVar(&target, "target-price", "17.99", "Exact price matched by priceExactly and all")
	fs.DurationVar(&opts.timeout, "timeout", 10*time.Second, "Timeout for each location")
	fs.IntVar(&opts.parallel, "parallel", 4, "Maximum locations queried at once")
	fs.BoolVar(&opts.failFast, "fail-fast", false, "Stop at the first failing location")
	fs.BoolVar(&opts.allowPrivate, "allow-private", false, "Allow URLs resolving to private addresses")
	fs.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: catalogctl [flags] location...")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Locations are http(s) URLs or local JSON files.")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Examples:")
		fmt.Fprintln(stderr, "  catalogctl https://example.com/beers.json")
		fmt.Fprintln(stderr, "  catalogctl --query priceExactly --target-price 17,99 beers.json")
		fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, "", err
	}

	switch opts.query {
	case queryPriceRange, queryExactPrice, queryMostBottles, queryAll:
	default:
		return options{}, "", fmt.Errorf("unknown query %q", opts.query)
	}

	price, err := decimal.NewFromString(strings.Replace(strings.TrimSpace(target), ",", ".", 1))
	if err != nil {
		return options{}, "", fmt.Errorf("target-price must be a decimal number: %q", target)
	}
	if price.IsNegative() {
		return options{}, "", errors.New("target-price cannot be negative")
	}
	opts.targetPrice = price

	if opts.timeout <= 0 {
		return options{}, "", errors.New("timeout must be positive")
	}
	if opts.parallel < 1 {
		opts.parallel = 1
	}

	opts.locations = fs.Args()
	if len(opts.locations) == 0 {
		fs.Usage()
		return options{}, "", errors.New("at least one location is required")
	}
	return opts, logLevel, nil
}

// queryAllLocations runs the query for every location with bounded
// parallelism. Results keep the order of opts.locations.
func queryAllLocations(ctx context.Context, svc *catUC.Service, opts options) ([]LocationOutput, error) {
	outputs := make([]LocationOutput, len(opts.locations))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.parallel)

	for i, location := range opts.locations {
		eg.Go(func() error {
			locCtx, cancel := context.WithTimeout(egCtx, opts.timeout)
			defer cancel()

			result, err := runQuery(locCtx, svc, opts, location)
			outputs[i] = LocationOutput{Location: location, Result: result}
			if err != nil {
				outputs[i] = LocationOutput{Location: location, Error: err.Error()}
				if opts.failFast {
					return fmt.Errorf("%s: %w", location, err)
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

func runQuery(ctx context.Context, svc *catUC.Service, opts options, location string) (any, error) {
	switch opts.query {
	case queryPriceRange:
		r, err := svc.PriceRange(ctx, location)
		if err != nil {
			return nil, err
		}
		return hcatalog.NewPriceRangeDTO(r), nil
	case queryExactPrice:
		products, err := svc.ExactPrice(ctx, location, opts.targetPrice)
		if err != nil {
			return nil, err
		}
		return hcatalog.NewProductDTOs(products), nil
	case queryMostBottles:
		p, err := svc.MostBottles(ctx, location)
		if err != nil {
			return nil, err
		}
		return hcatalog.NewProductDTOPtr(p), nil
	default:
		o, err := svc.All(ctx, location, opts.targetPrice)
		if err != nil {
			return nil, err
		}
		return hcatalog.NewOverviewDTO(o), nil
	}
}
