package shiptrack

import (
	"strconv"
	"strings"
	"time"

	"github.com/msm-logistics/shiptrack/internal/clock"
)

// Status is the operator-assigned delivery status of a shipment.
// Any status may be set to any other status directly; there is no
// enforced transition order.
type Status string

const (
	StatusProcessing      Status = "Processing"
	StatusInTransit       Status = "In Transit"
	StatusPending         Status = "Pending"
	StatusCustomClearance Status = "Custom clearance"
	StatusOnHold          Status = "On hold"
	StatusMissing         Status = "Missing"
	StatusDelivered       Status = "Delivered"
)

// Statuses returns all selectable statuses in display order.
func Statuses() []Status {
	return []Status{
		StatusProcessing,
		StatusInTransit,
		StatusPending,
		StatusCustomClearance,
		StatusOnHold,
		StatusMissing,
		StatusDelivered,
	}
}

func (s Status) Valid() bool {
	for _, v := range Statuses() {
		if s == v {
			return true
		}
	}
	return false
}

// ShippingSpeed is a purely descriptive service level. It has no effect
// on any other field.
type ShippingSpeed string

const (
	SpeedLocal         ShippingSpeed = "Local"
	SpeedStandard      ShippingSpeed = "Standard"
	SpeedExpress       ShippingSpeed = "Express"
	SpeedInternational ShippingSpeed = "International"
	SpeedOffshore      ShippingSpeed = "Offshore"
)

// ShippingSpeeds returns all selectable shipping speeds in display order.
func ShippingSpeeds() []ShippingSpeed {
	return []ShippingSpeed{
		SpeedLocal,
		SpeedStandard,
		SpeedExpress,
		SpeedInternational,
		SpeedOffshore,
	}
}

func (s ShippingSpeed) Valid() bool {
	for _, v := range ShippingSpeeds() {
		if s == v {
			return true
		}
	}
	return false
}

// EstimatedDeliveryLayout is the calendar-date layout used for the
// estimated_delivery attribute. The attribute is optional; an absent
// estimate is stored as null, never as an empty string.
const EstimatedDeliveryLayout = "2006-01-02"

// Shipment is the canonical shipment record. ID is assigned once at
// creation and is the sole key for update and delete; the tracking code
// is the public lookup key. CreatedAt never changes after creation and
// UpdatedAt is rewritten on every update.
type Shipment struct {
	ID                 string        `json:"id" dynamodbav:"id"`
	TrackingID         string        `json:"tracking_id" dynamodbav:"tracking_id"`
	Status             Status        `json:"status" dynamodbav:"status"`
	ShippingSpeed      ShippingSpeed `json:"shipping_speed" dynamodbav:"shipping_speed"`
	SenderName         string        `json:"sender_name" dynamodbav:"sender_name"`
	SenderEmail        string        `json:"sender_email" dynamodbav:"sender_email"`
	SenderPhone        string        `json:"sender_phone" dynamodbav:"sender_phone"`
	SenderAddress      string        `json:"sender_address" dynamodbav:"sender_address"`
	SenderCity         string        `json:"sender_city" dynamodbav:"sender_city"`
	SenderCountry      string        `json:"sender_country" dynamodbav:"sender_country"`
	RecipientName      string        `json:"recipient_name" dynamodbav:"recipient_name"`
	RecipientEmail     string        `json:"recipient_email" dynamodbav:"recipient_email"`
	RecipientPhone     string        `json:"recipient_phone" dynamodbav:"recipient_phone"`
	RecipientAddress   string        `json:"recipient_address" dynamodbav:"recipient_address"`
	RecipientCity      string        `json:"recipient_city" dynamodbav:"recipient_city"`
	RecipientCountry   string        `json:"recipient_country" dynamodbav:"recipient_country"`
	PackageDescription string        `json:"package_description" dynamodbav:"package_description"`
	PackageWeight      float64       `json:"package_weight" dynamodbav:"package_weight"`
	PackageQuantity    int           `json:"package_quantity" dynamodbav:"package_quantity"`
	Notes              string        `json:"notes" dynamodbav:"notes"`
	EstimatedDelivery  *string       `json:"estimated_delivery" dynamodbav:"estimated_delivery"`
	CreatedAt          string        `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt          string        `json:"updated_at" dynamodbav:"updated_at"`
}

// Draft is an in-progress, not-yet-persisted edit of a shipment held in
// form state. Numeric and date fields stay raw strings until the draft
// is validated, so a failed submission keeps exactly what the operator
// typed.
type Draft struct {
	TrackingID         string `json:"tracking_id"`
	Status             string `json:"status"`
	ShippingSpeed      string `json:"shipping_speed"`
	SenderName         string `json:"sender_name"`
	SenderEmail        string `json:"sender_email"`
	SenderPhone        string `json:"sender_phone"`
	SenderAddress      string `json:"sender_address"`
	SenderCity         string `json:"sender_city"`
	SenderCountry      string `json:"sender_country"`
	RecipientName      string `json:"recipient_name"`
	RecipientEmail     string `json:"recipient_email"`
	RecipientPhone     string `json:"recipient_phone"`
	RecipientAddress   string `json:"recipient_address"`
	RecipientCity      string `json:"recipient_city"`
	RecipientCountry   string `json:"recipient_country"`
	PackageDescription string `json:"package_description"`
	PackageWeight      string `json:"package_weight"`
	PackageQuantity    string `json:"package_quantity"`
	Notes              string `json:"notes"`
	EstimatedDelivery  string `json:"estimated_delivery"`
}

// NewDraft returns a draft with the same defaults the create form
// starts from.
func NewDraft() Draft {
	return Draft{
		Status:          string(StatusProcessing),
		ShippingSpeed:   string(SpeedStandard),
		PackageQuantity: "1",
	}
}

// DraftOf converts a persisted shipment back into editable form state.
func DraftOf(s *Shipment) Draft {
	d := Draft{
		TrackingID:         s.TrackingID,
		Status:             string(s.Status),
		ShippingSpeed:      string(s.ShippingSpeed),
		SenderName:         s.SenderName,
		SenderEmail:        s.SenderEmail,
		SenderPhone:        s.SenderPhone,
		SenderAddress:      s.SenderAddress,
		SenderCity:         s.SenderCity,
		SenderCountry:      s.SenderCountry,
		RecipientName:      s.RecipientName,
		RecipientEmail:     s.RecipientEmail,
		RecipientPhone:     s.RecipientPhone,
		RecipientAddress:   s.RecipientAddress,
		RecipientCity:      s.RecipientCity,
		RecipientCountry:   s.RecipientCountry,
		PackageDescription: s.PackageDescription,
		PackageWeight:      strconv.FormatFloat(s.PackageWeight, 'f', -1, 64),
		PackageQuantity:    strconv.Itoa(s.PackageQuantity),
		Notes:              s.Notes,
	}
	if s.EstimatedDelivery != nil {
		d.EstimatedDelivery = *s.EstimatedDelivery
	}
	return d
}

// NewShipment validates a draft and builds a fresh record. Both
// timestamps are set to now, so created_at == updated_at on creation.
func NewShipment(id string, d Draft, now time.Time) (*Shipment, error) {
	s, err := d.build()
	if err != nil {
		return nil, err
	}
	ts := clock.FormatRFC3339Nano(now)
	s.ID = id
	s.CreatedAt = ts
	s.UpdatedAt = ts
	return s, nil
}

// UpdatedShipment validates a draft and builds the full-record
// replacement for an existing id. CreatedAt is left zero; the store
// layer never rewrites it on update.
func UpdatedShipment(id string, d Draft, now time.Time) (*Shipment, error) {
	s, err := d.build()
	if err != nil {
		return nil, err
	}
	s.ID = id
	s.UpdatedAt = clock.FormatRFC3339Nano(now)
	return s, nil
}

func (d Draft) build() (*Shipment, error) {
	mandatory := []struct {
		field string
		value string
	}{
		{"tracking_id", d.TrackingID},
		{"sender_name", d.SenderName},
		{"sender_email", d.SenderEmail},
		{"sender_phone", d.SenderPhone},
		{"sender_address", d.SenderAddress},
		{"sender_city", d.SenderCity},
		{"sender_country", d.SenderCountry},
		{"recipient_name", d.RecipientName},
		{"recipient_email", d.RecipientEmail},
		{"recipient_phone", d.RecipientPhone},
		{"recipient_address", d.RecipientAddress},
		{"recipient_city", d.RecipientCity},
		{"recipient_country", d.RecipientCountry},
		{"package_description", d.PackageDescription},
	}
	for _, m := range mandatory {
		if strings.TrimSpace(m.value) == "" {
			return nil, &ValidationError{Field: m.field, Msg: "must not be empty"}
		}
	}
	status := Status(d.Status)
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Msg: "unknown status"}
	}
	speed := ShippingSpeed(d.ShippingSpeed)
	if !speed.Valid() {
		return nil, &ValidationError{Field: "shipping_speed", Msg: "unknown shipping speed"}
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(d.PackageWeight), 64)
	if err != nil {
		return nil, &ValidationError{Field: "package_weight", Msg: "must be a number"}
	}
	if weight < 0 {
		return nil, &ValidationError{Field: "package_weight", Msg: "must not be negative"}
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(d.PackageQuantity))
	if err != nil {
		return nil, &ValidationError{Field: "package_quantity", Msg: "must be an integer"}
	}
	if quantity < 1 {
		return nil, &ValidationError{Field: "package_quantity", Msg: "must be at least 1"}
	}
	var estimated *string
	if v := strings.TrimSpace(d.EstimatedDelivery); v != "" {
		if _, err := time.Parse(EstimatedDeliveryLayout, v); err != nil {
			return nil, &ValidationError{Field: "estimated_delivery", Msg: "must be a date in YYYY-MM-DD form"}
		}
		estimated = &v
	}
	return &Shipment{
		TrackingID:         strings.TrimSpace(d.TrackingID),
		Status:             status,
		ShippingSpeed:      speed,
		SenderName:         d.SenderName,
		SenderEmail:        d.SenderEmail,
		SenderPhone:        d.SenderPhone,
		SenderAddress:      d.SenderAddress,
		SenderCity:         d.SenderCity,
		SenderCountry:      d.SenderCountry,
		RecipientName:      d.RecipientName,
		RecipientEmail:     d.RecipientEmail,
		RecipientPhone:     d.RecipientPhone,
		RecipientAddress:   d.RecipientAddress,
		RecipientCity:      d.RecipientCity,
		RecipientCountry:   d.RecipientCountry,
		PackageDescription: d.PackageDescription,
		PackageWeight:      weight,
		PackageQuantity:    quantity,
		Notes:              d.Notes,
		EstimatedDelivery:  estimated,
	}, nil
}

// Validate reports the first constraint a draft violates, without
// building a record. Used by the form loop to reject a submission
// before any store call.
func (d Draft) Validate() error {
	_, err := d.build()
	return err
}

// CreatedTime parses the record's creation timestamp. A malformed
// timestamp sorts as the zero time.
func (s *Shipment) CreatedTime() time.Time {
	return clock.RFC3339NanoToTime(s.CreatedAt)
}

// UpdatedTime parses the record's last-update timestamp.
func (s *Shipment) UpdatedTime() time.Time {
	return clock.RFC3339NanoToTime(s.UpdatedAt)
}
