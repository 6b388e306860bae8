// Package metrics provides the Prometheus collectors of the service.
//
// All collectors are registered with the Prometheus default registry through
// promauto and exposed via the /metrics endpoint.
//
// Example usage:
//
//	start := time.Now()
//	products, err := svc.PriceRange(ctx, url)
//	metrics.RecordQuery("priceRange", err == nil, time.Since(start))
package metrics
