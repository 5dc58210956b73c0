package memory

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
)

func prices(small, medium, large, family string) map[domain.Size]decimal.Decimal {
	out := map[domain.Size]decimal.Decimal{}
	for size, raw := range map[domain.Size]string{
		domain.SizeSmall:  small,
		domain.SizeMedium: medium,
		domain.SizeLarge:  large,
		domain.SizeFamily: family,
	} {
		if raw != "" {
			out[size] = decimal.RequireFromString(raw)
		}
	}
	return out
}

// SeedItems is the default menu used when no database is configured.
func SeedItems() []domain.Item {
	return []domain.Item{
		{ID: "sq-calabresa", Name: "Calabresa", Category: domain.CategorySquare, SizePrices: prices("28.00", "35.00", "45.00", "62.00"), Ingredients: []string{"molho de tomate", "mussarela", "calabresa", "cebola"}, Active: true},
		{ID: "sq-marguerita", Name: "Marguerita", Category: domain.CategorySquare, SizePrices: prices("28.00", "35.00", "45.00", "62.00"), Ingredients: []string{"molho de tomate", "mussarela", "tomate", "manjericão"}, Active: true},
		{ID: "sq-frango", Name: "Frango com Catupiry", Category: domain.CategorySquare, SizePrices: prices("30.00", "38.00", "48.00", "66.00"), Ingredients: []string{"frango desfiado", "catupiry", "milho"}, Active: true},
		{ID: "sq-portuguesa", Name: "Portuguesa", Category: domain.CategorySquare, SizePrices: prices("30.00", "38.00", "48.00", "66.00"), Ingredients: []string{"presunto", "ovo", "cebola", "ervilha", "azeitona"}, Active: true},
		{ID: "rd-mussarela", Name: "Mussarela", Category: domain.CategoryRound, SizePrices: prices("25.00", "32.00", "42.00", "55.00"), Ingredients: []string{"molho de tomate", "mussarela", "orégano"}, Active: true},
		{ID: "rd-quatro-queijos", Name: "Quatro Queijos", Category: domain.CategoryRound, SizePrices: prices("", "39.00", "49.00", "63.00"), Ingredients: []string{"mussarela", "provolone", "parmesão", "gorgonzola"}, Active: true},
		{ID: "rd-pepperoni", Name: "Pepperoni", Category: domain.CategoryRound, SizePrices: prices("29.00", "37.00", "47.00", "61.00"), Ingredients: []string{"mussarela", "pepperoni"}, Active: true},
		{ID: "sw-chocolate", Name: "Chocolate com Morango", Category: domain.CategorySweet, SizePrices: prices("", "36.00", "44.00", ""), Ingredients: []string{"chocolate ao leite", "morango"}, Active: true},
		{ID: "sw-romeu-julieta", Name: "Romeu e Julieta", Category: domain.CategorySweet, SizePrices: prices("", "34.00", "42.00", ""), Ingredients: []string{"goiabada", "queijo minas"}, Active: true},
		{ID: "bv-guarana-2l", Name: "Guaraná 2L", Category: domain.CategoryBeverage, SizePrices: prices("", "12.00", "", ""), Active: true},
		{ID: "bv-cola-2l", Name: "Refrigerante de Cola 2L", Category: domain.CategoryBeverage, SizePrices: prices("", "14.00", "", ""), Active: true},
	}
}

// SeedAdditions is the default list of extras.
func SeedAdditions() []domain.Addition {
	return []domain.Addition{
		{ID: "ad-catupiry", Name: "Borda de Catupiry", Price: decimal.RequireFromString("8.00"), Category: "cheese", Active: true},
		{ID: "ad-cheddar", Name: "Cheddar extra", Price: decimal.RequireFromString("5.00"), Category: "cheese", Active: true},
		{ID: "ad-bacon", Name: "Bacon", Price: decimal.RequireFromString("6.00"), Category: "meat", Active: true},
		{ID: "ad-palmito", Name: "Palmito", Price: decimal.RequireFromString("6.50"), Category: "vegetable", Active: true},
		{ID: "ad-azeitona", Name: "Azeitona preta", Price: decimal.RequireFromString("3.00"), Category: "vegetable", Active: true},
	}
}
