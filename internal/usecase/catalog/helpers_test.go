package catalog_test

import (
	"beer-catalog/internal/domain/entity"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// article builds a raw (not yet normalized) article.
func article(id int64, price, pricePerUnitText, shortDescription string) entity.Article {
	return entity.Article{
		ID:               id,
		Price:            dec(price),
		PricePerUnitText: pricePerUnitText,
		ShortDescription: shortDescription,
		Unit:             "Liter",
	}
}

// priced builds an already normalized article.
func priced(id int64, price, perUnit string, bottles int) entity.Article {
	return entity.Article{
		ID:              id,
		Price:           dec(price),
		PricePerUnit:    dec(perUnit),
		AmountOfBottles: bottles,
	}
}

// scenarioProducts is the two product catalog used across the tests.
func scenarioProducts() []entity.Product {
	return []entity.Product{
		{ID: 1, Name: "A", Articles: []entity.Article{
			article(11, "10", "(2,50 €/Liter)", "6 Flaschen"),
		}},
		{ID: 2, Name: "B", Articles: []entity.Article{
			article(21, "17.99", "(3,00 €/Liter)", "12 Flaschen"),
		}},
	}
}

func names(products []entity.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}
