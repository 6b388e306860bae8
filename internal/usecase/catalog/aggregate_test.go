package catalog_test

import (
	"testing"

	"beer-catalog/internal/domain/entity"
	"beer-catalog/internal/usecase/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── scenario ───────── */

func TestAggregations_Scenario(t *testing.T) {
	products := catalog.Normalize(scenarioProducts())

	mostExpensive := catalog.FindMostExpensivePerUnit(products)
	require.NotNil(t, mostExpensive)
	assert.Equal(t, "B", mostExpensive.Name)

	cheapest := catalog.FindCheapestPerUnit(products)
	require.NotNil(t, cheapest)
	assert.Equal(t, "A", cheapest.Name)

	assert.Equal(t, []string{"B"}, names(catalog.FindByExactPrice(products, dec("17.99"))))

	mostBottles := catalog.FindProductWithMostBottles(products)
	require.NotNil(t, mostBottles)
	assert.Equal(t, "B", mostBottles.Name)
}

/* ───────── extremes ───────── */

func TestFindMostExpensivePerUnit(t *testing.T) {
	tests := []struct {
		name     string
		products []entity.Product
		want     string
	}{
		{
			name: "best article is not the first one",
			products: []entity.Product{
				{Name: "P0", Articles: []entity.Article{priced(1, "1", "5", 0), priced(2, "1", "10", 0)}},
				{Name: "P1", Articles: []entity.Article{priced(3, "1", "7", 0)}},
			},
			want: "P0",
		},
		{
			name: "first product without articles",
			products: []entity.Product{
				{Name: "empty"},
				{Name: "P1", Articles: []entity.Article{priced(1, "1", "2", 0)}},
				{Name: "P2", Articles: []entity.Article{priced(2, "1", "4", 0)}},
			},
			want: "P2",
		},
		{
			name: "tie keeps first",
			products: []entity.Product{
				{Name: "P0", Articles: []entity.Article{priced(1, "1", "3", 0)}},
				{Name: "P1", Articles: []entity.Article{priced(2, "1", "3.00", 0)}},
			},
			want: "P0",
		},
		{
			name: "article-less products in between",
			products: []entity.Product{
				{Name: "P0", Articles: []entity.Article{priced(1, "1", "1", 0)}},
				{Name: "empty", Articles: []entity.Article{}},
				{Name: "P2", Articles: []entity.Article{priced(2, "1", "1.5", 0)}},
			},
			want: "P2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.FindMostExpensivePerUnit(tt.products)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestFindCheapestPerUnit(t *testing.T) {
	tests := []struct {
		name     string
		products []entity.Product
		want     string
	}{
		{
			name: "cheapest article is second",
			products: []entity.Product{
				{Name: "P0", Articles: []entity.Article{priced(1, "1", "5", 0)}},
				{Name: "P1", Articles: []entity.Article{priced(2, "1", "6", 0), priced(3, "1", "1", 0)}},
			},
			want: "P1",
		},
		{
			name: "first product without articles",
			products: []entity.Product{
				{Name: "empty"},
				{Name: "P1", Articles: []entity.Article{priced(1, "1", "2", 0)}},
			},
			want: "P1",
		},
		{
			name: "tie keeps first",
			products: []entity.Product{
				{Name: "P0", Articles: []entity.Article{priced(1, "1", "2", 0)}},
				{Name: "P1", Articles: []entity.Article{priced(2, "1", "2", 0)}},
			},
			want: "P0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.FindCheapestPerUnit(tt.products)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestExtremes_NoArticles(t *testing.T) {
	inputs := map[string][]entity.Product{
		"nil":          nil,
		"empty":        {},
		"all articles": {{Name: "a"}, {Name: "b", Articles: []entity.Article{}}},
	}

	for name, products := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Nil(t, catalog.FindMostExpensivePerUnit(products))
				assert.Nil(t, catalog.FindCheapestPerUnit(products))
				assert.Nil(t, catalog.FindProductWithMostBottles(products))
			})
		})
	}
}

func TestExtremes_ReturnProductFromInput(t *testing.T) {
	products := []entity.Product{
		{Name: "P0", Articles: []entity.Article{priced(1, "1", "1", 1)}},
	}
	got := catalog.FindMostExpensivePerUnit(products)
	assert.Same(t, &products[0], got)
}

/* ───────── most bottles ───────── */

func TestFindProductWithMostBottles(t *testing.T) {
	tests := []struct {
		name     string
		products []entity.Product
		want     string
	}{
		{
			name: "later product wins with more bottles",
			products: []entity.Product{
				{Name: "P0", Articles: []entity.Article{priced(1, "1", "1", 6)}},
				{Name: "P1", Articles: []entity.Article{priced(2, "1", "1", 24)}},
			},
			want: "P1",
		},
		{
			name: "largest article of first product counts",
			products: []entity.Product{
				{Name: "P0", Articles: []entity.Article{priced(1, "1", "1", 6), priced(2, "1", "1", 30)}},
				{Name: "P1", Articles: []entity.Article{priced(3, "1", "1", 24)}},
			},
			want: "P0",
		},
		{
			name: "tie keeps first",
			products: []entity.Product{
				{Name: "P0", Articles: []entity.Article{priced(1, "1", "1", 20)}},
				{Name: "P1", Articles: []entity.Article{priced(2, "1", "1", 20)}},
			},
			want: "P0",
		},
		{
			name: "all zero keeps first product with articles",
			products: []entity.Product{
				{Name: "empty"},
				{Name: "P1", Articles: []entity.Article{priced(1, "1", "1", 0)}},
				{Name: "P2", Articles: []entity.Article{priced(2, "1", "1", 0)}},
			},
			want: "P1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.FindProductWithMostBottles(tt.products)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

/* ───────── exact price ───────── */

func TestFindByExactPrice(t *testing.T) {
	products := []entity.Product{
		{Name: "twice", Articles: []entity.Article{priced(1, "17.99", "1", 0), priced(2, "17.99", "2", 0)}},
		{Name: "other", Articles: []entity.Article{priced(3, "17.98", "1", 0)}},
		{Name: "empty"},
		{Name: "scaled", Articles: []entity.Article{priced(4, "5", "1", 0), priced(5, "17.990", "1", 0)}},
	}

	got := catalog.FindByExactPrice(products, dec("17.99"))
	assert.Equal(t, []string{"twice", "scaled"}, names(got))

	for _, p := range got {
		found := false
		for _, a := range p.Articles {
			if a.Price.Equal(dec("17.99")) {
				found = true
			}
		}
		assert.True(t, found, "product %s has no matching article", p.Name)
	}
}

func TestFindByExactPrice_DuplicateValuesAreDistinctProducts(t *testing.T) {
	same := entity.Product{Name: "same", Articles: []entity.Article{priced(1, "9.99", "1", 0)}}
	got := catalog.FindByExactPrice([]entity.Product{same, same}, dec("9.99"))
	assert.Len(t, got, 2)
}

func TestFindByExactPrice_NoMatch(t *testing.T) {
	got := catalog.FindByExactPrice(catalog.Normalize(scenarioProducts()), dec("1"))
	require.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, catalog.FindByExactPrice(nil, dec("1")))
}

/* ───────── sorting ───────── */

func TestSortByUnitPrice(t *testing.T) {
	products := []entity.Product{
		{Name: "mid", Articles: []entity.Article{priced(1, "1", "4", 0), priced(2, "1", "2", 0)}},
		{Name: "none"},
		{Name: "low", Articles: []entity.Article{priced(3, "1", "1", 0)}},
		{Name: "alsoNone", Articles: []entity.Article{}},
		{Name: "midTie", Articles: []entity.Article{priced(4, "1", "2", 0)}},
	}

	got := catalog.SortByUnitPrice(products)

	assert.Equal(t, []string{"low", "mid", "midTie", "none", "alsoNone"}, names(got))
	assert.Equal(t, int64(2), got[1].Articles[0].ID)
	assert.Equal(t, int64(1), got[1].Articles[1].ID)

	for _, p := range got {
		for i := 1; i < len(p.Articles); i++ {
			assert.False(t, p.Articles[i].PricePerUnit.LessThan(p.Articles[i-1].PricePerUnit))
		}
	}

	// input is left as it was
	assert.Equal(t, "mid", products[0].Name)
	assert.Equal(t, int64(1), products[0].Articles[0].ID)
}

func TestSortByUnitPrice_StableArticles(t *testing.T) {
	products := []entity.Product{
		{Name: "p", Articles: []entity.Article{priced(1, "1", "2", 0), priced(2, "1", "1", 0), priced(3, "1", "2", 0)}},
	}

	got := catalog.SortByUnitPrice(products)
	ids := []int64{got[0].Articles[0].ID, got[0].Articles[1].ID, got[0].Articles[2].ID}
	assert.Equal(t, []int64{2, 1, 3}, ids)
}

func TestSortByUnitPrice_Nil(t *testing.T) {
	assert.Nil(t, catalog.SortByUnitPrice(nil))
}
