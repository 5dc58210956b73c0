package migrations

import (
	"gorm.io/gorm"

	catalogpostgres "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/adapters/persistence/postgres"
	orderspostgres "github.com/Apurer/go-gin-pizzeria/internal/domains/orders/adapters/persistence/postgres"
	storefrontpostgres "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/adapters/persistence/postgres"
)

// Run applies the schema for the bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&storefrontpostgres.ScheduleRecord{},
		&catalogpostgres.ItemRecord{},
		&catalogpostgres.AdditionRecord{},
		&orderspostgres.OrderRecord{},
	)
}
