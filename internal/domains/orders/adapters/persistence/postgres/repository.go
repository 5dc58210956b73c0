package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// OrderRecord maps the order aggregate to the orders table. Items are stored as JSON.
type OrderRecord struct {
	ID               string           `gorm:"primaryKey;column:id;size:36"`
	CustomerName     string           `gorm:"column:customer_name"`
	CustomerPhone    string           `gorm:"column:customer_phone;size:11;index"`
	DeliveryType     string           `gorm:"column:delivery_type;type:varchar(16)"`
	Address          string           `gorm:"column:address"`
	Neighborhood     string           `gorm:"column:neighborhood"`
	Reference        string           `gorm:"column:reference"`
	Latitude         *float64         `gorm:"column:latitude"`
	Longitude        *float64         `gorm:"column:longitude"`
	Items            []lineRecord     `gorm:"column:items;serializer:json;type:jsonb"`
	Total            decimal.Decimal  `gorm:"column:total;type:numeric(10,2)"`
	PaymentMethod    string           `gorm:"column:payment_method;type:varchar(8)"`
	NeedsChange      bool             `gorm:"column:needs_change"`
	ChangeAmount     *decimal.Decimal `gorm:"column:change_amount;type:numeric(10,2)"`
	PixCode          string           `gorm:"column:pix_code"`
	Paid             bool             `gorm:"column:paid"`
	Confirmed        bool             `gorm:"column:confirmed"`
	CardType         string           `gorm:"column:card_type;type:varchar(8)"`
	AuthorizationRef string           `gorm:"column:authorization_ref"`
	CardLast4        string           `gorm:"column:card_last4;size:4"`
	Status           string           `gorm:"column:status;type:varchar(16);index:idx_orders_status_created"`
	CreatedAt        time.Time        `gorm:"column:created_at;index:idx_orders_status_created"`
	UpdatedAt        time.Time        `gorm:"column:updated_at"`
	Version          int              `gorm:"column:version;not null;default:1"`
}

func (OrderRecord) TableName() string { return "orders" }

type lineRecord struct {
	BaseItemID   string           `json:"base_item_id"`
	BaseItemName string           `json:"base_item_name"`
	Category     string           `json:"category"`
	Size         string           `json:"size"`
	Flavors      []flavorRecord   `json:"flavors"`
	Additions    []additionRecord `json:"additions,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Quantity     int              `json:"quantity"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
}

type flavorRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type additionRecord struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Save inserts a never-persisted order (version 0) or updates the mutable columns
// of an existing one. Updates are conditional on the version and status read, so
// a concurrent writer on another replica surfaces as domain.ErrConcurrentUpdate.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if order.Version == 0 {
		record := toRecord(order)
		record.Version = 1
		result := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
			Create(&record)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, fmt.Errorf("%w: order %s already exists", domain.ErrConcurrentUpdate, order.ID)
		}
		return r.GetByID(ctx, record.ID)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current OrderRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, "id = ?", order.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ports.ErrNotFound
			}
			return err
		}
		stored, err := current.toDomain()
		if err != nil {
			return err
		}
		if err := order.Supersedes(stored); err != nil {
			return err
		}
		result := tx.Model(&OrderRecord{}).
			Where("id = ? AND version = ? AND status = ?", order.ID, order.Version, current.Status).
			Updates(map[string]any{
				"status":     string(order.Status),
				"paid":       order.Payment.Paid,
				"confirmed":  order.Payment.Confirmed,
				"updated_at": order.UpdatedAt,
				"version":    order.Version + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: order %s", domain.ErrConcurrentUpdate, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record OrderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

// List returns orders oldest first, optionally restricted to one status.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("created_at, id")
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	var records []OrderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		order, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) OrderRecord {
	c, p := order.Customer, order.Payment
	rec := OrderRecord{
		ID:               order.ID,
		CustomerName:     c.Name,
		CustomerPhone:    c.Phone,
		DeliveryType:     string(c.DeliveryType),
		Address:          c.Address,
		Neighborhood:     c.Neighborhood,
		Reference:        c.Reference,
		Total:            order.Total,
		PaymentMethod:    string(p.Method),
		NeedsChange:      p.NeedsChange,
		ChangeAmount:     p.ChangeAmount,
		PixCode:          p.PixCode,
		Paid:             p.Paid,
		Confirmed:        p.Confirmed,
		CardType:         string(p.CardType),
		AuthorizationRef: p.AuthorizationRef,
		CardLast4:        p.CardLast4,
		Status:           string(order.Status),
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
	if c.Location != nil {
		lat, lng := c.Location.Lat, c.Location.Lng
		rec.Latitude, rec.Longitude = &lat, &lng
	}
	for _, l := range order.Items {
		line := lineRecord{
			BaseItemID:   l.BaseItemID,
			BaseItemName: l.BaseItemName,
			Category:     string(l.Category),
			Size:         string(l.Size),
			Notes:        l.Notes,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
		}
		for _, f := range l.Flavors {
			line.Flavors = append(line.Flavors, flavorRecord{ID: f.ID, Name: f.Name})
		}
		for _, a := range l.Additions {
			line.Additions = append(line.Additions, additionRecord{ID: a.ID, Name: a.Name, Price: a.Price})
		}
		rec.Items = append(rec.Items, line)
	}
	return rec
}

func (r OrderRecord) toDomain() (*domain.Order, error) {
	status := domain.Status(r.Status)
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	order := &domain.Order{
		ID: r.ID,
		Customer: domain.Customer{
			Name:         r.CustomerName,
			Phone:        r.CustomerPhone,
			DeliveryType: domain.DeliveryType(r.DeliveryType),
			Address:      r.Address,
			Neighborhood: r.Neighborhood,
			Reference:    r.Reference,
		},
		Total: r.Total,
		Payment: domain.Payment{
			Method:           domain.Method(r.PaymentMethod),
			NeedsChange:      r.NeedsChange,
			ChangeAmount:     r.ChangeAmount,
			PixCode:          r.PixCode,
			Paid:             r.Paid,
			Confirmed:        r.Confirmed,
			CardType:         domain.CardType(r.CardType),
			AuthorizationRef: r.AuthorizationRef,
			CardLast4:        r.CardLast4,
		},
		Status:    status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Version:   r.Version,
	}
	if r.Latitude != nil && r.Longitude != nil {
		order.Customer.Location = &domain.GeoPoint{Lat: *r.Latitude, Lng: *r.Longitude}
	}
	for _, l := range r.Items {
		line := catalogdomain.ComposedLine{
			BaseItemID:   l.BaseItemID,
			BaseItemName: l.BaseItemName,
			Category:     catalogdomain.Category(l.Category),
			Size:         catalogdomain.Size(l.Size),
			Notes:        l.Notes,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
		}
		for _, f := range l.Flavors {
			line.Flavors = append(line.Flavors, catalogdomain.Flavor{ID: f.ID, Name: f.Name})
		}
		for _, a := range l.Additions {
			line.Additions = append(line.Additions, catalogdomain.SelectedAddition{ID: a.ID, Name: a.Name, Price: a.Price})
		}
		order.Items = append(order.Items, line)
	}
	return order, nil
}
