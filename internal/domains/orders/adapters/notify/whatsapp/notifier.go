package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	whatsappclient "github.com/Apurer/go-gin-pizzeria/internal/clients/http/whatsapp"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
)

var _ ports.StatusNotifier = (*Notifier)(nil)

// Sender is the gateway call used to deliver a message.
type Sender interface {
	Send(ctx context.Context, phone string, msg whatsappclient.Message, opts ...whatsappclient.SendOption) (*whatsappclient.Accepted, error)
}

// Notifier tells the customer about status changes over WhatsApp.
type Notifier struct {
	sender      Sender
	countryCode string
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender, countryCode: "55"}
}

func (n *Notifier) NotifyStatus(ctx context.Context, note ports.StatusNotification) error {
	if n == nil || n.sender == nil {
		return errors.New("whatsapp notifier not configured")
	}
	text, ok := Message(note)
	if !ok {
		return nil
	}
	orderID := ""
	if note.Order != nil {
		orderID = note.Order.ID
	}
	_, err := n.sender.Send(ctx, n.international(note.Phone), whatsappclient.Message{Text: text, Reference: orderID},
		whatsappclient.WithIdempotencyKey(fmt.Sprintf("%s-%s", orderID, note.Status)))
	return err
}

func (n *Notifier) international(phone string) string {
	if len(phone) == 10 || len(phone) == 11 {
		return n.countryCode + phone
	}
	return phone
}

// Message renders the customer-facing text for a status; ok is false for statuses
// that produce no message.
func Message(note ports.StatusNotification) (string, bool) {
	name, short := "", ""
	delivery := true
	if o := note.Order; o != nil {
		name = firstName(o.Customer.Name)
		short = shortID(o.ID)
		delivery = o.Customer.DeliveryType != domain.DeliveryTypePickup
	}
	greeting := "Olá"
	if name != "" {
		greeting = "Olá, " + name
	}
	var body string
	switch note.Status {
	case domain.StatusAccepted:
		body = "seu pedido #%s foi aceito e logo entra no forno."
	case domain.StatusProduction:
		body = "seu pedido #%s está sendo preparado."
	case domain.StatusDelivery:
		if delivery {
			body = "seu pedido #%s saiu para entrega."
		} else {
			body = "seu pedido #%s está pronto para retirada."
		}
	case domain.StatusCompleted:
		body = "seu pedido #%s foi concluído. Obrigado pela preferência!"
	default:
		return "", false
	}
	return greeting + "! " + fmt.Sprintf(body, short), true
}

func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
