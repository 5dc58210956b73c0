package mapper

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	catalogmapper "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/adapters/http/mapper"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
)

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Customer struct {
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	DeliveryType string    `json:"deliveryType"`
	Address      string    `json:"address,omitempty"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	Reference    string    `json:"reference,omitempty"`
	Location     *Location `json:"location,omitempty"`
}

// Card is accepted on checkout only and never rendered back.
type Card struct {
	Number     string `json:"number"`
	Expiry     string `json:"expiry"`
	CVC        string `json:"cvc"`
	HolderName string `json:"holderName"`
}

// PaymentRequest is the payment section of a checkout body.
type PaymentRequest struct {
	Method       string `json:"method"`
	NeedsChange  bool   `json:"needsChange"`
	ChangeAmount string `json:"changeAmount,omitempty"`
	CardType     string `json:"cardType,omitempty"`
	Card         *Card  `json:"card,omitempty"`
}

// CheckoutRequest is the body of a cart checkout call.
type CheckoutRequest struct {
	Customer Customer       `json:"customer"`
	Payment  PaymentRequest `json:"payment"`
}

type Payment struct {
	Method           string `json:"method"`
	NeedsChange      bool   `json:"needsChange,omitempty"`
	ChangeAmount     string `json:"changeAmount,omitempty"`
	PixCode          string `json:"pixCode,omitempty"`
	Paid             bool   `json:"paid"`
	Confirmed        bool   `json:"confirmed"`
	CardType         string `json:"cardType,omitempty"`
	AuthorizationRef string `json:"authorizationRef,omitempty"`
	CardLast4        string `json:"cardLast4,omitempty"`
}

type Order struct {
	ID        string               `json:"id"`
	Customer  Customer             `json:"customer"`
	Items     []catalogmapper.Line `json:"items"`
	Total     string               `json:"total"`
	Payment   Payment              `json:"payment"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func ToDomainCustomer(c Customer) domain.Customer {
	out := domain.Customer{
		Name:         c.Name,
		Phone:        c.Phone,
		DeliveryType: domain.DeliveryType(strings.ToLower(strings.TrimSpace(c.DeliveryType))),
		Address:      c.Address,
		Neighborhood: c.Neighborhood,
		Reference:    c.Reference,
	}
	if c.Location != nil {
		out.Location = &domain.GeoPoint{Lat: c.Location.Lat, Lng: c.Location.Lng}
	}
	return out
}

// ToDomainPayment normalizes the method and card type tokens and parses the change amount.
// Unknown methods pass through so order validation reports them.
func ToDomainPayment(p PaymentRequest) (domain.Payment, *domain.CardDetails, error) {
	method, ok := domain.ParseMethod(p.Method)
	if !ok {
		method = domain.Method(p.Method)
	}
	out := domain.Payment{Method: method, NeedsChange: p.NeedsChange}
	if raw := strings.TrimSpace(p.ChangeAmount); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil || amount.IsNegative() {
			return domain.Payment{}, nil, &domain.ValidationError{Fields: []string{"payment.changeAmount"}}
		}
		out.ChangeAmount = &amount
	}
	if method == domain.MethodCard {
		out.CardType = domain.CardType(strings.ToLower(strings.TrimSpace(p.CardType)))
	}
	var card *domain.CardDetails
	if p.Card != nil {
		card = &domain.CardDetails{Number: p.Card.Number, Expiry: p.Card.Expiry, CVC: p.Card.CVC, HolderName: p.Card.HolderName}
	}
	return out, card, nil
}

func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	c, p := order.Customer, order.Payment
	out := Order{
		ID: order.ID,
		Customer: Customer{
			Name:         c.Name,
			Phone:        c.Phone,
			DeliveryType: string(c.DeliveryType),
			Address:      c.Address,
			Neighborhood: c.Neighborhood,
			Reference:    c.Reference,
		},
		Items: catalogmapper.FromLines(order.Items),
		Total: order.Total.StringFixed(2),
		Payment: Payment{
			Method:           string(p.Method),
			NeedsChange:      p.NeedsChange,
			PixCode:          p.PixCode,
			Paid:             p.Paid,
			Confirmed:        p.Confirmed,
			CardType:         string(p.CardType),
			AuthorizationRef: p.AuthorizationRef,
			CardLast4:        p.CardLast4,
		},
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	if c.Location != nil {
		out.Customer.Location = &Location{Lat: c.Location.Lat, Lng: c.Location.Lng}
	}
	if p.ChangeAmount != nil {
		out.Payment.ChangeAmount = p.ChangeAmount.StringFixed(2)
	}
	return out
}

func FromDomainOrders(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}
