package shiptrack

import (
	"context"
	"strings"
)

// Tracker is the public-facing tracking lookup flow. It needs no
// session; anyone holding a tracking code may query it.
type Tracker struct {
	client Client
}

func NewTracker(client Client) *Tracker {
	return &Tracker{client: client}
}

// Track looks up a shipment by exact tracking code. Surrounding
// whitespace is trimmed first; empty input fails with
// TrackingCodeNotProvidedError before any store access, and a store
// miss fails with TrackingCodeNotFoundError. Store failures pass
// through untouched so the caller can retry with the same input.
func (t *Tracker) Track(ctx context.Context, trackingCode string) (*Shipment, error) {
	trackingCode = strings.TrimSpace(trackingCode)
	if trackingCode == "" {
		return nil, &TrackingCodeNotProvidedError{}
	}
	out, err := t.client.GetShipmentByTrackingCode(ctx, &GetShipmentByTrackingCodeInput{
		TrackingCode: trackingCode,
	})
	if err != nil {
		return nil, err
	}
	if out.Shipment == nil {
		return nil, &TrackingCodeNotFoundError{}
	}
	return out.Shipment, nil
}
