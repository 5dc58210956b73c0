package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
)

func TestItemRecordToDomain_NormalizesTokens(t *testing.T) {
	record := ItemRecord{
		ID:         "rd-mussarela",
		Name:       "Mussarela",
		Category:   " Round ",
		SizePrices: map[string]string{"MEDIUM": "40.00", "small": "30.00"},
		Active:     true,
	}

	item, err := record.toDomain()
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryRound, item.Category)
	assert.True(t, item.Offers(domain.SizeMedium))
	assert.True(t, item.Offers(domain.SizeSmall))

	record.Category = "calzone"
	_, err = record.toDomain()
	require.ErrorIs(t, err, domain.ErrInvalidCategory)

	record.Category = "round"
	record.SizePrices = map[string]string{"giant": "99.00"}
	_, err = record.toDomain()
	require.ErrorIs(t, err, domain.ErrInvalidSize)
}
