package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/cart/ports"
	catalogdomain "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
)

var _ ports.Store = (*Store)(nil)

const keyPattern = "cart:%s"

// DefaultTTL is how long an untouched cart survives.
const DefaultTTL = 2 * time.Hour

// Store keeps each cart as one JSON value; every save refreshes the TTL.
type Store struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewStore(rdb *goredis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

type cartRecord struct {
	SessionID string       `json:"session_id"`
	Lines     []lineRecord `json:"lines"`
	SavedAt   time.Time    `json:"saved_at"`
}

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

func Key(sessionID string) string {
	return fmt.Sprintf(keyPattern, sessionID)
}

func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Cart, error) {
	raw, err := s.rdb.Get(ctx, Key(sessionID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.NewCart(sessionID)
	}
	if err != nil {
		return nil, err
	}
	var rec cartRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}
	lines := make([]catalogdomain.ComposedLine, 0, len(rec.Lines))
	for _, l := range rec.Lines {
		lines = append(lines, l.toDomain())
	}
	return domain.Restore(sessionID, lines)
}

func (s *Store) Save(ctx context.Context, cart *domain.Cart) error {
	if cart.Len() == 0 {
		return s.Delete(ctx, cart.SessionID)
	}
	rec := cartRecord{SessionID: cart.SessionID, SavedAt: time.Now().UTC()}
	for _, l := range cart.Lines() {
		rec.Lines = append(rec.Lines, toRecord(l))
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, Key(cart.SessionID), raw, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, Key(sessionID)).Err()
}

func toRecord(l catalogdomain.ComposedLine) lineRecord {
	rec := lineRecord{
		BaseItemID:   l.BaseItemID,
		BaseItemName: l.BaseItemName,
		Category:     string(l.Category),
		Size:         string(l.Size),
		Notes:        l.Notes,
		Quantity:     l.Quantity,
		UnitPrice:    l.UnitPrice,
	}
	for _, f := range l.Flavors {
		rec.Flavors = append(rec.Flavors, flavorRecord{ID: f.ID, Name: f.Name})
	}
	for _, a := range l.Additions {
		rec.Additions = append(rec.Additions, additionRecord{ID: a.ID, Name: a.Name, Price: a.Price})
	}
	return rec
}

func (r lineRecord) toDomain() catalogdomain.ComposedLine {
	line := catalogdomain.ComposedLine{
		BaseItemID:   r.BaseItemID,
		BaseItemName: r.BaseItemName,
		Category:     catalogdomain.Category(r.Category),
		Size:         catalogdomain.Size(r.Size),
		Notes:        r.Notes,
		Quantity:     r.Quantity,
		UnitPrice:    r.UnitPrice,
	}
	for _, f := range r.Flavors {
		line.Flavors = append(line.Flavors, catalogdomain.Flavor{ID: f.ID, Name: f.Name})
	}
	for _, a := range r.Additions {
		line.Additions = append(line.Additions, catalogdomain.SelectedAddition{ID: a.ID, Name: a.Name, Price: a.Price})
	}
	return line
}
