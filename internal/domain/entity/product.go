// Package entity defines the core domain entities of the beer catalog.
// It contains Product and Article together with the validation helpers used
// by the inbound HTTP surface.
package entity

import "github.com/shopspring/decimal"

// Article is one purchasable offering of a product, e.g. a crate of 20 bottles.
// AmountOfBottles and PricePerUnit are derived from ShortDescription and
// PricePerUnitText during normalization and are never trusted from the payload.
type Article struct {
	ID               int64           `json:"id"`
	ShortDescription string          `json:"shortDescription"`
	AmountOfBottles  int             `json:"amountOfBottles"`
	Price            decimal.Decimal `json:"price"`
	Unit             string          `json:"unit"`
	PricePerUnitText string          `json:"pricePerUnitText"`
	PricePerUnit     decimal.Decimal `json:"pricePerUnit"`
	Image            string          `json:"image"`
}

// Product is a catalog entry owning an ordered list of articles.
type Product struct {
	ID              int64     `json:"id"`
	BrandName       string    `json:"brandName"`
	Name            string    `json:"name"`
	DescriptionText string    `json:"descriptionText"`
	Articles        []Article `json:"articles"`
}

// HasArticles reports whether the product has at least one article.
func (p Product) HasArticles() bool {
	return len(p.Articles) > 0
}

// Clone returns a copy of the product whose article slice does not share
// backing storage with the receiver.
func (p Product) Clone() Product {
	out := p
	if p.Articles != nil {
		out.Articles = make([]Article, len(p.Articles))
		copy(out.Articles, p.Articles)
	}
	return out
}

// CloneProducts deep-copies a product list. A nil list stays nil.
func CloneProducts(products []Product) []Product {
	if products == nil {
		return nil
	}
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}
