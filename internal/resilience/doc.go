// Package resilience groups fault tolerance helpers for outbound calls.
//
// The catalog source is fetched exactly once per request, so there is no retry
// layer; repeated failures of one upstream host instead open that host's
// circuit, which rejects its fetches immediately until it recovers.
//
//	breakers := circuitbreaker.NewGroup(circuitbreaker.CatalogSourceConfig(), 0)
//	body, err := circuitbreaker.Do(breakers.Get(host), func() ([]byte, error) {
//	    return fetch(ctx, url)
//	})
package resilience
