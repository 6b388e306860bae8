package catalog

import (
	"slices"

	"beer-catalog/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// FindMostExpensivePerUnit returns the product owning the article with the highest
// price per liter. The first product reaching the maximum wins. It returns nil
// when no product has any article.
func FindMostExpensivePerUnit(products []entity.Product) *entity.Product {
	return selectByArticle(products, func(a entity.Article) decimal.Decimal {
		return a.PricePerUnit
	}, func(candidate, best decimal.Decimal) bool {
		return candidate.GreaterThan(best)
	})
}

// FindCheapestPerUnit returns the product owning the article with the lowest
// price per liter, with the same tie and empty-input rules as
// FindMostExpensivePerUnit.
func FindCheapestPerUnit(products []entity.Product) *entity.Product {
	return selectByArticle(products, func(a entity.Article) decimal.Decimal {
		return a.PricePerUnit
	}, func(candidate, best decimal.Decimal) bool {
		return candidate.LessThan(best)
	})
}

// FindProductWithMostBottles returns the product owning the article with the
// largest bottle count. The first product reaching the maximum wins; nil is
// returned when no product has any article.
func FindProductWithMostBottles(products []entity.Product) *entity.Product {
	return selectByArticle(products, func(a entity.Article) int {
		return a.AmountOfBottles
	}, func(candidate, best int) bool {
		return candidate > best
	})
}

// selectByArticle scans every (product, article) pair and keeps the product whose
// article value is strictly better than the best seen so far. The best value is
// held next to the holder so an article-less product is never dereferenced.
func selectByArticle[V any](products []entity.Product, value func(entity.Article) V, better func(candidate, best V) bool) *entity.Product {
	var (
		holder = -1
		best   V
	)
	for i := range products {
		for _, article := range products[i].Articles {
			v := value(article)
			if holder < 0 || better(v, best) {
				holder, best = i, v
			}
		}
	}
	if holder < 0 {
		return nil
	}
	return &products[holder]
}

// FindByExactPrice returns, in first-encountered order, every product that has at
// least one article priced exactly at target. A product appears at most once no
// matter how many of its articles match.
func FindByExactPrice(products []entity.Product, target decimal.Decimal) []entity.Product {
	matches := make([]entity.Product, 0)
	seen := make(map[int]struct{})

	for i, product := range products {
		for _, article := range product.Articles {
			if !article.Price.Equal(target) {
				continue
			}
			if _, ok := seen[i]; !ok {
				seen[i] = struct{}{}
				matches = append(matches, product)
			}
			break
		}
	}
	return matches
}

// SortByUnitPrice orders the articles of each product ascending by price per
// liter, then orders the products ascending by their cheapest article. Both sorts
// are stable. Products without articles have no unit price and are placed after
// all others in their original relative order.
//
// The result is a new collection; products is left untouched.
func SortByUnitPrice(products []entity.Product) []entity.Product {
	sorted := entity.CloneProducts(products)
	if sorted == nil {
		return nil
	}

	for i := range sorted {
		slices.SortStableFunc(sorted[i].Articles, func(a, b entity.Article) int {
			return a.PricePerUnit.Cmp(b.PricePerUnit)
		})
	}

	slices.SortStableFunc(sorted, func(a, b entity.Product) int {
		switch {
		case !a.HasArticles() && !b.HasArticles():
			return 0
		case !a.HasArticles():
			return 1
		case !b.HasArticles():
			return -1
		}
		return a.Articles[0].PricePerUnit.Cmp(b.Articles[0].PricePerUnit)
	})
	return sorted
}
