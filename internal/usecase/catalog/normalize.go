package catalog

import "beer-catalog/internal/domain/entity"

// Normalize derives PricePerUnit and AmountOfBottles for every article from its
// text fields, overwriting whatever the payload carried.
//
// The result is a new collection holding the same products and articles in the
// same order; products is left untouched. A nil list yields nil.
func Normalize(products []entity.Product) []entity.Product {
	if products == nil {
		return nil
	}

	normalized := entity.CloneProducts(products)
	for i := range normalized {
		articles := normalized[i].Articles
		for j := range articles {
			articles[j].PricePerUnit = ExtractPricePerUnit(articles[j].PricePerUnitText)
			articles[j].AmountOfBottles = ExtractLeadingBottleCount(articles[j].ShortDescription)
		}
	}
	return normalized
}
