package mock

import (
	"context"
	"errors"
	"time"

	"github.com/msm-logistics/shiptrack"
	"github.com/msm-logistics/shiptrack/internal/clock"
)

var ErrNotImplemented = errors.New("not implemented")

// SuccessfulMockClient returns an empty success for every operation.
var SuccessfulMockClient = Client{
	PutShipmentFunc: func(ctx context.Context, params *shiptrack.PutShipmentInput) (*shiptrack.PutShipmentOutput, error) {
		return &shiptrack.PutShipmentOutput{Shipment: params.Shipment}, nil
	},
	GetShipmentFunc: func(ctx context.Context, params *shiptrack.GetShipmentInput) (*shiptrack.GetShipmentOutput, error) {
		return &shiptrack.GetShipmentOutput{Shipment: &shiptrack.Shipment{ID: params.ID}}, nil
	},
	GetShipmentByTrackingCodeFunc: func(ctx context.Context, params *shiptrack.GetShipmentByTrackingCodeInput) (*shiptrack.GetShipmentByTrackingCodeOutput, error) {
		return &shiptrack.GetShipmentByTrackingCodeOutput{Shipment: &shiptrack.Shipment{TrackingID: params.TrackingCode}}, nil
	},
	UpdateShipmentFunc: func(ctx context.Context, params *shiptrack.UpdateShipmentInput) (*shiptrack.UpdateShipmentOutput, error) {
		return &shiptrack.UpdateShipmentOutput{Shipment: params.Shipment}, nil
	},
	DeleteShipmentFunc: func(ctx context.Context, params *shiptrack.DeleteShipmentInput) (*shiptrack.DeleteShipmentOutput, error) {
		return &shiptrack.DeleteShipmentOutput{}, nil
	},
	ListShipmentsFunc: func(ctx context.Context, params *shiptrack.ListShipmentsInput) (*shiptrack.ListShipmentsOutput, error) {
		return &shiptrack.ListShipmentsOutput{}, nil
	},
	CountShipmentsByStatusFunc: func(ctx context.Context, params *shiptrack.CountShipmentsByStatusInput) (*shiptrack.CountShipmentsByStatusOutput, error) {
		return &shiptrack.CountShipmentsByStatusOutput{Counts: map[shiptrack.Status]int{}}, nil
	},
}

type Client struct {
	PutShipmentFunc               func(ctx context.Context, params *shiptrack.PutShipmentInput) (*shiptrack.PutShipmentOutput, error)
	GetShipmentFunc               func(ctx context.Context, params *shiptrack.GetShipmentInput) (*shiptrack.GetShipmentOutput, error)
	GetShipmentByTrackingCodeFunc func(ctx context.Context, params *shiptrack.GetShipmentByTrackingCodeInput) (*shiptrack.GetShipmentByTrackingCodeOutput, error)
	UpdateShipmentFunc            func(ctx context.Context, params *shiptrack.UpdateShipmentInput) (*shiptrack.UpdateShipmentOutput, error)
	DeleteShipmentFunc            func(ctx context.Context, params *shiptrack.DeleteShipmentInput) (*shiptrack.DeleteShipmentOutput, error)
	ListShipmentsFunc             func(ctx context.Context, params *shiptrack.ListShipmentsInput) (*shiptrack.ListShipmentsOutput, error)
	CountShipmentsByStatusFunc    func(ctx context.Context, params *shiptrack.CountShipmentsByStatusInput) (*shiptrack.CountShipmentsByStatusOutput, error)
}

func (m Client) PutShipment(ctx context.Context, params *shiptrack.PutShipmentInput) (*shiptrack.PutShipmentOutput, error) {
	if m.PutShipmentFunc != nil {
		return m.PutShipmentFunc(ctx, params)
	}
	return nil, ErrNotImplemented
}

func (m Client) GetShipment(ctx context.Context, params *shiptrack.GetShipmentInput) (*shiptrack.GetShipmentOutput, error) {
	if m.GetShipmentFunc != nil {
		return m.GetShipmentFunc(ctx, params)
	}
	return nil, ErrNotImplemented
}

func (m Client) GetShipmentByTrackingCode(ctx context.Context, params *shiptrack.GetShipmentByTrackingCodeInput) (*shiptrack.GetShipmentByTrackingCodeOutput, error) {
	if m.GetShipmentByTrackingCodeFunc != nil {
		return m.GetShipmentByTrackingCodeFunc(ctx, params)
	}
	return nil, ErrNotImplemented
}

func (m Client) UpdateShipment(ctx context.Context, params *shiptrack.UpdateShipmentInput) (*shiptrack.UpdateShipmentOutput, error) {
	if m.UpdateShipmentFunc != nil {
		return m.UpdateShipmentFunc(ctx, params)
	}
	return nil, ErrNotImplemented
}

func (m Client) DeleteShipment(ctx context.Context, params *shiptrack.DeleteShipmentInput) (*shiptrack.DeleteShipmentOutput, error) {
	if m.DeleteShipmentFunc != nil {
		return m.DeleteShipmentFunc(ctx, params)
	}
	return nil, ErrNotImplemented
}

func (m Client) ListShipments(ctx context.Context, params *shiptrack.ListShipmentsInput) (*shiptrack.ListShipmentsOutput, error) {
	if m.ListShipmentsFunc != nil {
		return m.ListShipmentsFunc(ctx, params)
	}
	return nil, ErrNotImplemented
}

func (m Client) CountShipmentsByStatus(ctx context.Context, params *shiptrack.CountShipmentsByStatusInput) (*shiptrack.CountShipmentsByStatusOutput, error) {
	if m.CountShipmentsByStatusFunc != nil {
		return m.CountShipmentsByStatusFunc(ctx, params)
	}
	return nil, ErrNotImplemented
}

type Clock struct {
	T time.Time
}

func (m Clock) Now() time.Time {
	return m.T
}

func WithClock(c clock.Clock) func(s *shiptrack.ClientOptions) {
	return func(s *shiptrack.ClientOptions) {
		if c != nil {
			s.Clock = c
		}
	}
}

// FlagStore is an in-memory shiptrack.FlagStore for session tests.
type FlagStore struct {
	Values map[string]string

	GetFunc    func(key string) (string, error)
	SetFunc    func(key, value string) error
	DeleteFunc func(key string) error
}

var ErrFlagNotFound = errors.New("flag not found")

func (m *FlagStore) Get(key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(key)
	}
	v, ok := m.Values[key]
	if !ok {
		return "", ErrFlagNotFound
	}
	return v, nil
}

func (m *FlagStore) Set(key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(key, value)
	}
	if m.Values == nil {
		m.Values = make(map[string]string)
	}
	m.Values[key] = value
	return nil
}

func (m *FlagStore) Delete(key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(key)
	}
	delete(m.Values, key)
	return nil
}
