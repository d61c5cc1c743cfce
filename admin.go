package shiptrack

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/msm-logistics/shiptrack/internal/clock"
)

// AdminOptions defines configuration options for the administration flow.
//
// Note: Clock and NewID exist so tests can pin timestamps and record
// ids. In typical use these fields should not be modified.
type AdminOptions struct {
	// Clock is an abstraction of time operations, allowing control over time during tests.
	Clock clock.Clock
	// NewID produces the unique identifier assigned to a record at creation.
	NewID func() string
}

// Admin is the authenticated shipment administration flow. It holds the
// point-in-time list snapshot the console renders; the snapshot only
// changes on an explicit Refresh or after a successful mutation from
// this session.
type Admin struct {
	client    Client
	clock     clock.Clock
	newID     func() string
	shipments []*Shipment
}

func NewAdmin(client Client, optFns ...func(*AdminOptions)) *Admin {
	o := &AdminOptions{
		Clock: &clock.RealClock{},
		NewID: func() string {
			return uuid.NewString()
		},
	}
	for _, opt := range optFns {
		opt(o)
	}
	return &Admin{
		client: client,
		clock:  o.Clock,
		newID:  o.NewID,
	}
}

// Refresh reloads the list snapshot, newest created first. On failure
// the previously loaded snapshot stays displayed (stale-but-present)
// and the error is returned for reporting.
func (a *Admin) Refresh(ctx context.Context) error {
	out, err := a.client.ListShipments(ctx, &ListShipmentsInput{})
	if err != nil {
		return err
	}
	a.shipments = out.Shipments
	return nil
}

// Shipments returns the current list snapshot.
func (a *Admin) Shipments() []*Shipment {
	return a.shipments
}

// Search filters the current snapshot; see SearchShipments.
func (a *Admin) Search(term string) []*Shipment {
	return SearchShipments(a.shipments, term)
}

// SearchShipments filters records by case-insensitive substring match
// against tracking code, sender name, recipient name or status. A blank
// term returns the input unfiltered, in order. This runs purely over
// the already-fetched list; no store round trip per keystroke.
func SearchShipments(records []*Shipment, term string) []*Shipment {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}
	var filtered []*Shipment
	for _, s := range records {
		if strings.Contains(strings.ToLower(s.TrackingID), term) ||
			strings.Contains(strings.ToLower(s.SenderName), term) ||
			strings.Contains(strings.ToLower(s.RecipientName), term) ||
			strings.Contains(strings.ToLower(string(s.Status)), term) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Save persists a draft. The draft is validated before any store call;
// a ValidationError leaves the store untouched and the draft with the
// caller. With no existing id a new record is created with a fresh id
// and created_at == updated_at; with an existing id every mutable field
// is replaced and updated_at is refreshed to the submission time,
// overriding whatever stale value the form was loaded with. On success
// the list snapshot is refreshed best-effort.
func (a *Admin) Save(ctx context.Context, d Draft, existingID string) (*Shipment, error) {
	if existingID == "" {
		s, err := NewShipment(a.newID(), d, a.clock.Now())
		if err != nil {
			return nil, err
		}
		out, err := a.client.PutShipment(ctx, &PutShipmentInput{Shipment: s})
		if err != nil {
			return nil, err
		}
		a.refreshAfterMutation(ctx)
		return out.Shipment, nil
	}
	s, err := UpdatedShipment(existingID, d, a.clock.Now())
	if err != nil {
		return nil, err
	}
	out, err := a.client.UpdateShipment(ctx, &UpdateShipmentInput{Shipment: s})
	if err != nil {
		return nil, err
	}
	a.refreshAfterMutation(ctx)
	return out.Shipment, nil
}

// Delete irreversibly removes a record. On success the snapshot is
// reloaded; on failure it stays as it was and the error is returned.
// The explicit operator confirmation happens in the console, before
// this is called.
func (a *Admin) Delete(ctx context.Context, id string) error {
	if id == "" {
		return &IDNotProvidedError{}
	}
	_, err := a.client.DeleteShipment(ctx, &DeleteShipmentInput{ID: id})
	if err != nil {
		return err
	}
	return a.Refresh(ctx)
}

// A failed reload after a successful write only leaves the snapshot
// stale; the next Refresh picks it up.
func (a *Admin) refreshAfterMutation(ctx context.Context) {
	_ = a.Refresh(ctx)
}
