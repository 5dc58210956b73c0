package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/Apurer/go-gin-pizzeria/internal/domains/orders/ports"
)

var _ ports.PixCodeGenerator = (*PixGenerator)(nil)

// PixConfig identifies the receiving merchant.
type PixConfig struct {
	Key          string
	MerchantName string
	MerchantCity string
}

// PixGenerator builds static BR Code ("copia e cola") payloads.
type PixGenerator struct {
	cfg PixConfig
}

func NewPixGenerator(cfg PixConfig) (*PixGenerator, error) {
	if strings.TrimSpace(cfg.Key) == "" {
		return nil, errors.New("pix key is required")
	}
	if cfg.MerchantName == "" {
		cfg.MerchantName = "PIZZARIA"
	}
	if cfg.MerchantCity == "" {
		cfg.MerchantCity = "SAO PAULO"
	}
	return &PixGenerator{cfg: cfg}, nil
}

// Generate returns the payload for amount, tagging it with a transaction id derived from orderID.
func (g *PixGenerator) Generate(_ context.Context, orderID string, amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", fmt.Errorf("pix amount must be positive, got %s", amount.StringFixed(2))
	}
	account := field("00", "br.gov.bcb.pix") + field("01", g.cfg.Key)
	var b strings.Builder
	b.WriteString(field("00", "01"))
	b.WriteString(field("26", account))
	b.WriteString(field("52", "0000"))
	b.WriteString(field("53", "986"))
	b.WriteString(field("54", amount.StringFixed(2)))
	b.WriteString(field("58", "BR"))
	b.WriteString(field("59", sanitize(g.cfg.MerchantName, 25)))
	b.WriteString(field("60", sanitize(g.cfg.MerchantCity, 15)))
	b.WriteString(field("62", field("05", txID(orderID))))
	b.WriteString("6304")
	return b.String() + fmt.Sprintf("%04X", CRC16(b.String())), nil
}

func field(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// sanitize strips accents and anything outside printable ASCII, upper-cases, and truncates.
func sanitize(s string, max int) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	out := strings.TrimSpace(b.String())
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func txID(orderID string) string {
	var b strings.Builder
	for _, r := range orderID {
		if r < 0x80 && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	id := b.String()
	if id == "" {
		return "***"
	}
	if len(id) > 25 {
		id = id[:25]
	}
	return id
}

// CRC16 is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), the checksum BR Code payloads end with.
func CRC16(payload string) uint16 {
	crc := uint16(0xFFFF)
	for i := 0; i < len(payload); i++ {
		crc ^= uint16(payload[i]) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
