package test

import (
	"errors"
	"time"

	"github.com/msm-logistics/shiptrack"
	"github.com/msm-logistics/shiptrack/internal/clock"
)

// ErrorTest is a sentinel error for asserting error pass-through.
var ErrorTest = errors.New("test")

// NewDraft returns a fully valid draft keyed by the given tracking code.
func NewDraft(trackingCode string) shiptrack.Draft {
	return shiptrack.Draft{
		TrackingID:         trackingCode,
		Status:             string(shiptrack.StatusProcessing),
		ShippingSpeed:      string(shiptrack.SpeedStandard),
		SenderName:         "Maria Mercado",
		SenderEmail:        "maria@example.com",
		SenderPhone:        "+63 2 555 0101",
		SenderAddress:      "12 Rizal Ave",
		SenderCity:         "Manila",
		SenderCountry:      "Philippines",
		RecipientName:      "John Carter",
		RecipientEmail:     "john@example.com",
		RecipientPhone:     "+1 415 555 0199",
		RecipientAddress:   "500 Market St",
		RecipientCity:      "San Francisco",
		RecipientCountry:   "USA",
		PackageDescription: "Electronics",
		PackageWeight:      "2.5",
		PackageQuantity:    "1",
		Notes:              "Fragile",
		EstimatedDelivery:  "2024-03-01",
	}
}

// NewShipment returns a persisted-shape record keyed by the given
// tracking code, with both timestamps set to now.
func NewShipment(id, trackingCode string, now time.Time) *shiptrack.Shipment {
	s, err := shiptrack.NewShipment(id, NewDraft(trackingCode), now)
	if err != nil {
		panic(err)
	}
	return s
}

// Timestamp formats now the way records store it.
func Timestamp(now time.Time) string {
	return clock.FormatRFC3339Nano(now)
}
