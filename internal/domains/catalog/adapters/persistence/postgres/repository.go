package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists the catalog in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed catalog repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ItemRecord maps a catalog item to the catalog_items table.
type ItemRecord struct {
	ID          string            `gorm:"primaryKey;column:id;size:64"`
	Name        string            `gorm:"column:name"`
	Category    string            `gorm:"column:category;type:varchar(16);index"`
	SizePrices  map[string]string `gorm:"column:size_prices;serializer:json"`
	Ingredients pq.StringArray    `gorm:"column:ingredients;type:text[]"`
	Active      bool              `gorm:"column:active;index"`
	CreatedAt   time.Time         `gorm:"column:created_at"`
	UpdatedAt   time.Time         `gorm:"column:updated_at"`
}

func (ItemRecord) TableName() string { return "catalog_items" }

// AdditionRecord maps an addition to the catalog_additions table.
type AdditionRecord struct {
	ID        string          `gorm:"primaryKey;column:id;size:64"`
	Name      string          `gorm:"column:name"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	Category  string          `gorm:"column:category"`
	Active    bool            `gorm:"column:active;index"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (AdditionRecord) TableName() string { return "catalog_additions" }

func (r *Repository) ListItems(ctx context.Context) ([]domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []ItemRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(records))
	for i := range records {
		item, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) GetItem(ctx context.Context, id string) (domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Item{}, err
	}
	var record ItemRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Item{}, ports.ErrNotFound
		}
		return domain.Item{}, err
	}
	return record.toDomain()
}

func (r *Repository) SaveItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Item{}, err
	}
	record := toItemRecord(item)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "category", "size_prices", "ingredients", "active", "updated_at"}),
		}).Create(&record).Error; err != nil {
		return domain.Item{}, err
	}
	return r.GetItem(ctx, item.ID)
}

func (r *Repository) ListAdditions(ctx context.Context) ([]domain.Addition, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []AdditionRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	additions := make([]domain.Addition, 0, len(records))
	for _, rec := range records {
		additions = append(additions, rec.toDomain())
	}
	return additions, nil
}

func (r *Repository) GetAddition(ctx context.Context, id string) (domain.Addition, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Addition{}, err
	}
	var record AdditionRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Addition{}, ports.ErrNotFound
		}
		return domain.Addition{}, err
	}
	return record.toDomain(), nil
}

func (r *Repository) SaveAddition(ctx context.Context, addition domain.Addition) (domain.Addition, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Addition{}, err
	}
	record := AdditionRecord{
		ID:       addition.ID,
		Name:     addition.Name,
		Price:    addition.Price,
		Category: addition.Category,
		Active:   addition.Active,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "price", "category", "active", "updated_at"}),
		}).Create(&record).Error; err != nil {
		return domain.Addition{}, err
	}
	return r.GetAddition(ctx, addition.ID)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toItemRecord(item domain.Item) ItemRecord {
	sizePrices := make(map[string]string, len(item.SizePrices))
	for size, price := range item.SizePrices {
		sizePrices[string(size)] = price.StringFixed(2)
	}
	return ItemRecord{
		ID:          item.ID,
		Name:        item.Name,
		Category:    string(item.Category),
		SizePrices:  sizePrices,
		Ingredients: pq.StringArray(item.Ingredients),
		Active:      item.Active,
	}
}

// toDomain tolerates hand-edited rows whose category or size tokens differ in case.
func (r ItemRecord) toDomain() (domain.Item, error) {
	category, err := domain.ParseCategory(r.Category)
	if err != nil {
		return domain.Item{}, fmt.Errorf("catalog item %s: %w", r.ID, err)
	}
	sizePrices := make(map[domain.Size]decimal.Decimal, len(r.SizePrices))
	for raw, rawPrice := range r.SizePrices {
		size, err := domain.ParseSize(raw)
		if err != nil {
			return domain.Item{}, fmt.Errorf("catalog item %s: %w", r.ID, err)
		}
		price, err := decimal.NewFromString(rawPrice)
		if err != nil {
			return domain.Item{}, err
		}
		sizePrices[size] = price
	}
	return domain.Item{
		ID:          r.ID,
		Name:        r.Name,
		Category:    category,
		SizePrices:  sizePrices,
		Ingredients: []string(r.Ingredients),
		Active:      r.Active,
	}, nil
}

func (r AdditionRecord) toDomain() domain.Addition {
	return domain.Addition{
		ID:       r.ID,
		Name:     r.Name,
		Price:    r.Price,
		Category: r.Category,
		Active:   r.Active,
	}
}
