package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `[
  {"id": 1, "brandName": "A", "name": "Alpha", "descriptionText": "",
   "articles": [
     {"id": 10, "shortDescription": "20 x 0,5L (Glas)", "price": 17.99, "unit": "Liter", "pricePerUnitText": "(1,80 €/Liter)", "image": ""}
   ]},
  {"id": 2, "brandName": "B", "name": "Beta", "descriptionText": "",
   "articles": [
     {"id": 20, "shortDescription": "24 x 0,33L (Glas)", "price": 19.99, "unit": "Liter", "pricePerUnitText": "(2,52 €/Liter)", "image": ""}
   ]}
]`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func decodeOutputs(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var outputs []map[string]any
	require.NoError(t, json.Unmarshal(data, &outputs))
	return outputs
}

func TestRun_ExactPriceFromFile(t *testing.T) {
	path := writeCatalog(t, catalogJSON)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--query", "priceExactly", "--target-price", "17,99", path}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	outputs := decodeOutputs(t, stdout.Bytes())
	require.Len(t, outputs, 1)
	assert.Equal(t, path, outputs[0]["location"])

	products, ok := outputs[0]["result"].([]any)
	require.True(t, ok)
	require.Len(t, products, 1)
	assert.Equal(t, "Alpha", products[0].(map[string]any)["name"])
}

func TestRun_AllKeepsLocationOrder(t *testing.T) {
	first := writeCatalog(t, catalogJSON)
	second := writeCatalog(t, `[]`)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{first, second}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	outputs := decodeOutputs(t, stdout.Bytes())
	require.Len(t, outputs, 2)
	assert.Equal(t, first, outputs[0]["location"])
	assert.Equal(t, second, outputs[1]["location"])

	overview := outputs[0]["result"].(map[string]any)
	assert.Equal(t, "Beta", overview["mostExpensive"].(map[string]any)["name"])
	assert.Equal(t, "Alpha", overview["cheapest"].(map[string]any)["name"])

	empty := outputs[1]["result"].(map[string]any)
	assert.Nil(t, empty["mostExpensive"])
	assert.Equal(t, []any{}, empty["matchingPricesSorted"])
}

func TestRun_FailedLocationReported(t *testing.T) {
	good := writeCatalog(t, catalogJSON)
	missing := filepath.Join(t.TempDir(), "missing.json")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--query", "mostBottles", good, missing}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	outputs := decodeOutputs(t, stdout.Bytes())
	require.Len(t, outputs, 2)
	assert.Equal(t, "Beta", outputs[0]["result"].(map[string]any)["name"])
	assert.Contains(t, outputs[1]["error"], "unable to fetch products")
	assert.NotContains(t, outputs[1], "result")
}

func TestRun_FailFast(t *testing.T) {
	invalid := writeCatalog(t, `{"not": "an array"}`)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"--fail-fast", invalid}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), invalid)
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no locations", args: nil},
		{name: "unknown query", args: []string{"--query", "cheapest", "x.json"}},
		{name: "bad target price", args: []string{"--target-price", "abc", "x.json"}},
		{name: "negative target price", args: []string{"--target-price", "-1", "x.json"}},
		{name: "zero timeout", args: []string{"--timeout", "0s", "x.json"}},
		{name: "unknown flag", args: []string{"--nope", "x.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr)
			assert.Equal(t, 2, code)
			assert.Empty(t, stdout.String())
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-h"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr.String(), "Usage: catalogctl")
}
