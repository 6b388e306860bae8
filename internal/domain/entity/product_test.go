package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_HasArticles(t *testing.T) {
	assert.False(t, Product{}.HasArticles())
	assert.False(t, Product{Articles: []Article{}}.HasArticles())
	assert.True(t, Product{Articles: []Article{{ID: 1}}}.HasArticles())
}

func TestProduct_CloneDoesNotAlias(t *testing.T) {
	original := Product{
		ID:   7,
		Name: "Pils",
		Articles: []Article{
			{ID: 1, Price: decimal.RequireFromString("10.00")},
		},
	}

	clone := original.Clone()
	clone.Articles[0].Price = decimal.RequireFromString("99.99")
	clone.Name = "Export"

	assert.True(t, original.Articles[0].Price.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, "Pils", original.Name)
}

func TestProduct_CloneKeepsNilArticles(t *testing.T) {
	clone := Product{ID: 1}.Clone()
	assert.Nil(t, clone.Articles)
}

func TestCloneProducts(t *testing.T) {
	assert.Nil(t, CloneProducts(nil))

	in := []Product{{ID: 1, Articles: []Article{{ID: 10}}}, {ID: 2}}
	out := CloneProducts(in)
	require.Len(t, out, 2)

	out[0].Articles[0].ID = 11
	assert.Equal(t, int64(10), in[0].Articles[0].ID)
	assert.Equal(t, int64(2), out[1].ID)
}
