package domain

import (
	"strings"
	"unicode"
)

// DeliveryType selects how the order reaches the customer.
type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

// GeoPoint is an optional delivery pin.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// Customer identifies who placed the order and where it goes.
type Customer struct {
	Name         string
	Phone        string
	DeliveryType DeliveryType
	Address      string
	Neighborhood string
	Reference    string
	Location     *GeoPoint
}

// NormalizePhone strips every non-digit. The result must have 10 or 11 digits
// (area code plus an 8 or 9 digit number).
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	return digits, len(digits) == 10 || len(digits) == 11
}

// Normalize trims fields, normalizes the phone and reports every missing or malformed field.
func (c Customer) Normalize() (Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	c.Neighborhood = strings.TrimSpace(c.Neighborhood)
	c.Reference = strings.TrimSpace(c.Reference)
	c.DeliveryType = DeliveryType(strings.ToLower(strings.TrimSpace(string(c.DeliveryType))))

	var fields []string
	if c.Name == "" {
		fields = append(fields, "name")
	}
	phone, ok := NormalizePhone(c.Phone)
	if !ok {
		fields = append(fields, "phone")
	}
	c.Phone = phone

	switch c.DeliveryType {
	case DeliveryTypeDelivery:
		if c.Address == "" {
			fields = append(fields, "address")
		}
		if c.Neighborhood == "" {
			fields = append(fields, "neighborhood")
		}
	case DeliveryTypePickup:
		c.Address, c.Neighborhood, c.Reference, c.Location = "", "", "", nil
	default:
		fields = append(fields, "deliveryType")
	}
	if c.Location != nil && (c.Location.Lat < -90 || c.Location.Lat > 90 || c.Location.Lng < -180 || c.Location.Lng > 180) {
		fields = append(fields, "location")
	}
	if len(fields) > 0 {
		return Customer{}, &ValidationError{Fields: fields}
	}
	return c, nil
}
