package mapper

import (
	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/ports"
)

// Item is the transport shape of a catalog item. Prices are decimal strings.
type Item struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	SizePrices  map[string]string `json:"sizePrices"`
	Ingredients []string          `json:"ingredients"`
	MaxFlavors  map[string]int    `json:"maxFlavors"`
}

type Addition struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
	Active   bool   `json:"active"`
}

// ComposeRequest is the body of an add-to-cart call.
type ComposeRequest struct {
	BaseItemID  string   `json:"baseItemId"`
	Size        string   `json:"size"`
	FlavorIDs   []string `json:"flavors"`
	AdditionIDs []string `json:"additions"`
	Notes       string   `json:"notes"`
	Quantity    int      `json:"quantity"`
}

type Flavor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Line is a composed, priced cart or order line.
type Line struct {
	BaseItemID   string     `json:"baseItemId"`
	BaseItemName string     `json:"baseItemName"`
	Category     string     `json:"category"`
	Size         string     `json:"size"`
	Flavors      []Flavor   `json:"flavors"`
	Additions    []Addition `json:"additions"`
	Notes        string     `json:"notes,omitempty"`
	Quantity     int        `json:"quantity"`
	UnitPrice    string     `json:"unitPrice"`
	Subtotal     string     `json:"subtotal"`
}

// ToComposeInput converts the transport request into the catalog service input.
func ToComposeInput(req ComposeRequest) ports.ComposeInput {
	return ports.ComposeInput{
		BaseItemID:  req.BaseItemID,
		Size:        normalizeSize(req.Size),
		FlavorIDs:   req.FlavorIDs,
		AdditionIDs: req.AdditionIDs,
		Notes:       req.Notes,
		Quantity:    req.Quantity,
	}
}

// ToLineKey identifies a cart line from transport values; size is case-insensitive.
func ToLineKey(baseItemID, size string) (domain.LineKey, error) {
	parsed, err := domain.ParseSize(size)
	if err != nil {
		return domain.LineKey{}, err
	}
	return domain.LineKey{BaseItemID: baseItemID, Size: parsed}, nil
}

// normalizeSize leaves unknown values for the composition engine to reject.
func normalizeSize(raw string) domain.Size {
	if size, err := domain.ParseSize(raw); err == nil {
		return size
	}
	return domain.Size(raw)
}

// FromItem renders an item with the flavor limit of every size it offers.
func FromItem(item domain.Item) Item {
	out := Item{
		ID:          item.ID,
		Name:        item.Name,
		Category:    string(item.Category),
		SizePrices:  make(map[string]string, len(item.SizePrices)),
		Ingredients: append([]string{}, item.Ingredients...),
		MaxFlavors:  make(map[string]int, len(item.SizePrices)),
	}
	for size, price := range item.SizePrices {
		out.SizePrices[string(size)] = price.StringFixed(2)
		out.MaxFlavors[string(size)] = domain.MaxFlavors(item.Category, size)
	}
	return out
}

func FromItems(items []domain.Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		out = append(out, FromItem(item))
	}
	return out
}

func FromAdditions(additions []domain.Addition) []Addition {
	out := make([]Addition, 0, len(additions))
	for _, a := range additions {
		out = append(out, Addition{ID: a.ID, Name: a.Name, Price: a.Price.StringFixed(2), Category: a.Category, Active: a.Active})
	}
	return out
}

func FromLine(line domain.ComposedLine) Line {
	out := Line{
		BaseItemID:   line.BaseItemID,
		BaseItemName: line.BaseItemName,
		Category:     string(line.Category),
		Size:         string(line.Size),
		Flavors:      make([]Flavor, 0, len(line.Flavors)),
		Additions:    make([]Addition, 0, len(line.Additions)),
		Notes:        line.Notes,
		Quantity:     line.Quantity,
		UnitPrice:    line.UnitPrice.StringFixed(2),
		Subtotal:     line.Subtotal().StringFixed(2),
	}
	for _, f := range line.Flavors {
		out.Flavors = append(out.Flavors, Flavor{ID: f.ID, Name: f.Name})
	}
	for _, a := range line.Additions {
		out.Additions = append(out.Additions, Addition{ID: a.ID, Name: a.Name, Price: a.Price.StringFixed(2), Active: true})
	}
	return out
}

func FromLines(lines []domain.ComposedLine) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, FromLine(l))
	}
	return out
}
