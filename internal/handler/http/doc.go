// Package http provides the HTTP middleware, health endpoints and metrics
// exposition of the beer catalog service. Catalog routes live in the catalog
// subpackage.
package http
