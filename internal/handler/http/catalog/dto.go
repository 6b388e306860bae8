package catalog

import (
	"encoding/json"

	"beer-catalog/internal/domain/entity"
	catUC "beer-catalog/internal/usecase/catalog"

	"github.com/shopspring/decimal"
)

// ArticleDTO is the wire form of an article. Prices are JSON numbers written
// from their exact decimal representation.
type ArticleDTO struct {
	ID               int64       `json:"id"`
	ShortDescription string      `json:"shortDescription"`
	AmountOfBottles  int         `json:"amountOfBottles"`
	Price            json.Number `json:"price"`
	Unit             string      `json:"unit"`
	PricePerUnitText string      `json:"pricePerUnitText"`
	PricePerUnit     json.Number `json:"pricePerUnit"`
	Image            string      `json:"image"`
}

// ProductDTO is the wire form of a product. Articles is never null.
type ProductDTO struct {
	ID              int64        `json:"id"`
	BrandName       string       `json:"brandName"`
	Name            string       `json:"name"`
	DescriptionText string       `json:"descriptionText"`
	Articles        []ArticleDTO `json:"articles"`
}

// PriceRangeDTO is the /priceRange body.
type PriceRangeDTO struct {
	MostExpensive *ProductDTO `json:"mostExpensive"`
	Cheapest      *ProductDTO `json:"cheapest"`
}

// OverviewDTO is the /all body.
type OverviewDTO struct {
	MostExpensive        *ProductDTO  `json:"mostExpensive"`
	Cheapest             *ProductDTO  `json:"cheapest"`
	MatchingPricesSorted []ProductDTO `json:"matchingPricesSorted"`
	MostBottlesProduct   *ProductDTO  `json:"mostBottlesProduct"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// NewProductDTO converts a product to its wire form.
func NewProductDTO(p entity.Product) ProductDTO {
	out := ProductDTO{
		ID:              p.ID,
		BrandName:       p.BrandName,
		Name:            p.Name,
		DescriptionText: p.DescriptionText,
		Articles:        make([]ArticleDTO, len(p.Articles)),
	}
	for i, a := range p.Articles {
		out.Articles[i] = ArticleDTO{
			ID:               a.ID,
			ShortDescription: a.ShortDescription,
			AmountOfBottles:  a.AmountOfBottles,
			Price:            number(a.Price),
			Unit:             a.Unit,
			PricePerUnitText: a.PricePerUnitText,
			PricePerUnit:     number(a.PricePerUnit),
			Image:            a.Image,
		}
	}
	return out
}

// NewProductDTOPtr is NewProductDTO preserving nil.
func NewProductDTOPtr(p *entity.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	dto := NewProductDTO(*p)
	return &dto
}

// NewProductDTOs converts products in order; nil becomes an empty slice.
func NewProductDTOs(products []entity.Product) []ProductDTO {
	out := make([]ProductDTO, len(products))
	for i, p := range products {
		out[i] = NewProductDTO(p)
	}
	return out
}

// NewPriceRangeDTO converts a price range result.
func NewPriceRangeDTO(r catUC.PriceRange) PriceRangeDTO {
	return PriceRangeDTO{
		MostExpensive: NewProductDTOPtr(r.MostExpensive),
		Cheapest:      NewProductDTOPtr(r.Cheapest),
	}
}

// NewOverviewDTO converts an overview result.
func NewOverviewDTO(o catUC.Overview) OverviewDTO {
	return OverviewDTO{
		MostExpensive:        NewProductDTOPtr(o.MostExpensive),
		Cheapest:             NewProductDTOPtr(o.Cheapest),
		MatchingPricesSorted: NewProductDTOs(o.MatchingPricesSorted),
		MostBottlesProduct:   NewProductDTOPtr(o.MostBottlesProduct),
	}
}
