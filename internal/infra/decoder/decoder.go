// Package decoder turns raw catalog payloads into domain products.
//
// A payload is first validated against the embedded JSON Schema
// (github.com/santhosh-tekuri/jsonschema/v5) and then decoded. Derived article
// fields present in the payload (amountOfBottles, pricePerUnit) are ignored;
// they are recomputed by normalization.
package decoder

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"beer-catalog/internal/domain/entity"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"
)

//go:embed schema/products.json
var productsSchema []byte

const schemaURL = "products.json"

var (
	// ErrInvalidJSON is returned when the payload is not well-formed JSON.
	ErrInvalidJSON = errors.New("payload is not valid JSON")
	// ErrSchemaViolation is returned when the payload does not match the catalog shape.
	ErrSchemaViolation = errors.New("payload does not match catalog schema")
)

// JSONDecoder validates and decodes catalog payloads. It is safe for
// concurrent use.
type JSONDecoder struct {
	schema *jsonschema.Schema
}

// New compiles the embedded schema.
func New() (*JSONDecoder, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaURL, bytes.NewReader(productsSchema)); err != nil {
		return nil, fmt.Errorf("add catalog schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	return &JSONDecoder{schema: schema}, nil
}

// MustNew is New for process start-up.
func MustNew() *JSONDecoder {
	d, err := New()
	if err != nil {
		panic(err)
	}
	return d
}

// Decode implements catalog.ProductDecoder.
func (d *JSONDecoder) Decode(data []byte) ([]entity.Product, error) {
	doc, err := parse(data)
	if err != nil {
		return nil, err
	}

	if err := d.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaViolation, describe(err))
	}

	var wire []wireProduct
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	products := make([]entity.Product, len(wire))
	for i, p := range wire {
		products[i] = p.toEntity()
	}
	return products, nil
}

func parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after top-level value", ErrInvalidJSON)
	}
	return doc, nil
}

// describe reduces a schema error to its innermost cause, e.g.
// "/0/articles/1/price: expected number, but got string".
func describe(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return loc + ": " + strings.TrimSpace(ve.Message)
}

type wireProduct struct {
	ID              int64         `json:"id"`
	BrandName       *string       `json:"brandName"`
	Name            *string       `json:"name"`
	DescriptionText *string       `json:"descriptionText"`
	Articles        []wireArticle `json:"articles"`
}

type wireArticle struct {
	ID               int64           `json:"id"`
	ShortDescription *string         `json:"shortDescription"`
	Price            decimal.Decimal `json:"price"`
	Unit             *string         `json:"unit"`
	PricePerUnitText *string         `json:"pricePerUnitText"`
	Image            *string         `json:"image"`
}

func (p wireProduct) toEntity() entity.Product {
	out := entity.Product{
		ID:              p.ID,
		BrandName:       deref(p.BrandName),
		Name:            deref(p.Name),
		DescriptionText: deref(p.DescriptionText),
	}
	if len(p.Articles) > 0 {
		out.Articles = make([]entity.Article, len(p.Articles))
		for i, a := range p.Articles {
			out.Articles[i] = entity.Article{
				ID:               a.ID,
				ShortDescription: deref(a.ShortDescription),
				Price:            a.Price,
				Unit:             deref(a.Unit),
				PricePerUnitText: deref(a.PricePerUnitText),
				Image:            deref(a.Image),
			}
		}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
