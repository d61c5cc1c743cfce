package shiptrack

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/msm-logistics/shiptrack/internal/clock"
	"github.com/upsidr/dynamotest"
)

func SetupDynamoDB(t *testing.T, initialData ...*types.PutRequest) (tableName string, client *dynamodb.Client, clean func()) {
	client, clean = dynamotest.NewDynamoDB(t)
	tableName = DefaultTableName + "-" + uuid.NewString()
	dynamotest.PrepTable(t, client, dynamotest.InitialTableSetup{
		Table: &dynamodb.CreateTableInput{
			AttributeDefinitions: []types.AttributeDefinition{
				{
					AttributeName: aws.String("id"),
					AttributeType: types.ScalarAttributeTypeS,
				},
				{
					AttributeName: aws.String("tracking_id"),
					AttributeType: types.ScalarAttributeTypeS,
				},
			},
			BillingMode:               types.BillingModePayPerRequest,
			DeletionProtectionEnabled: aws.Bool(false),
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				{
					IndexName: aws.String(DefaultTrackingCodeIndexName),
					KeySchema: []types.KeySchemaElement{
						{
							AttributeName: aws.String("tracking_id"),
							KeyType:       types.KeyTypeHash,
						},
					},
					Projection: &types.Projection{
						ProjectionType: types.ProjectionTypeAll,
					},
				},
			},
			KeySchema: []types.KeySchemaElement{
				{
					AttributeName: aws.String("id"),
					KeyType:       types.KeyTypeHash,
				},
			},
			TableName: aws.String(tableName),
		},
		InitialData: initialData,
	})
	return
}

func NewSetupFunc(initialData ...*types.PutRequest) func(t *testing.T) (string, *dynamodb.Client, func()) {
	return func(t *testing.T) (string, *dynamodb.Client, func()) {
		return SetupDynamoDB(t, initialData...)
	}
}

type ClientTestCase[Args any, Want any] struct {
	name    string
	setup   func(*testing.T) (string, *dynamodb.Client, func())
	args    Args
	want    Want
	wantErr error
}

func TestShipTrackClientShouldReturnError(t *testing.T) {
	t.Parallel()
	client, clean := prepareTestClient(t, context.Background(),
		NewSetupFunc(NewPutRequestWithShipment("A-101", "MSM101", Date(2024, 2, 1, 10, 0, 0))))
	defer clean()
	type testCase struct {
		name      string
		operation func() error
		wantError error
	}
	tests := []testCase{
		{
			name: "PutShipment should return IDNotProvidedError",
			operation: func() error {
				_, err := client.PutShipment(context.Background(), nil)
				return err
			},
			wantError: &IDNotProvidedError{},
		},
		{
			name: "GetShipment should return IDNotProvidedError",
			operation: func() error {
				_, err := client.GetShipment(context.Background(), nil)
				return err
			},
			wantError: &IDNotProvidedError{},
		},
		{
			name: "GetShipmentByTrackingCode should return TrackingCodeNotProvidedError",
			operation: func() error {
				_, err := client.GetShipmentByTrackingCode(context.Background(), nil)
				return err
			},
			wantError: &TrackingCodeNotProvidedError{},
		},
		{
			name: "UpdateShipment should return IDNotProvidedError",
			operation: func() error {
				_, err := client.UpdateShipment(context.Background(), nil)
				return err
			},
			wantError: &IDNotProvidedError{},
		},
		{
			name: "UpdateShipment should return IDNotFoundError",
			operation: func() error {
				_, err := client.UpdateShipment(context.Background(), &UpdateShipmentInput{
					Shipment: NewTestShipment("B-101", "MSM999", Date(2024, 2, 1, 10, 0, 0)),
				})
				return err
			},
			wantError: &IDNotFoundError{},
		},
		{
			name: "DeleteShipment should return IDNotProvidedError",
			operation: func() error {
				_, err := client.DeleteShipment(context.Background(), nil)
				return err
			},
			wantError: &IDNotProvidedError{},
		},
	}
	for _, tt := range tests {
		_ = assertError(t, tt.operation(), tt.wantError, tt.name)
	}
}

func TestShipTrackClientGetShipment(t *testing.T) {
	t.Parallel()
	tests := []ClientTestCase[*GetShipmentInput, *GetShipmentOutput]{
		{
			name:  "should return the record with the given id",
			setup: NewSetupFunc(NewPutRequestWithShipment("A-101", "MSM101", Date(2024, 2, 1, 10, 0, 0))),
			args:  &GetShipmentInput{ID: "A-101"},
			want: &GetShipmentOutput{
				Shipment: NewTestShipment("A-101", "MSM101", Date(2024, 2, 1, 10, 0, 0)),
			},
		},
		{
			name:  "should return nil for an unknown id",
			setup: NewSetupFunc(NewPutRequestWithShipment("A-101", "MSM101", Date(2024, 2, 1, 10, 0, 0))),
			args:  &GetShipmentInput{ID: "B-202"},
			want:  &GetShipmentOutput{},
		},
	}
	runTestsParallel[*GetShipmentInput, *GetShipmentOutput](t, "GetShipment()", tests,
		func(client Client, args *GetShipmentInput) (*GetShipmentOutput, error) {
			return client.GetShipment(context.Background(), args)
		})
}

func TestShipTrackClientGetShipmentByTrackingCode(t *testing.T) {
	t.Parallel()
	tests := []ClientTestCase[*GetShipmentByTrackingCodeInput, *GetShipmentByTrackingCodeOutput]{
		{
			name:  "should return the record carrying the code",
			setup: NewSetupFunc(NewPutRequestWithShipment("A-101", "MSM101", Date(2024, 2, 1, 10, 0, 0))),
			args:  &GetShipmentByTrackingCodeInput{TrackingCode: "MSM101"},
			want: &GetShipmentByTrackingCodeOutput{
				Shipment: NewTestShipment("A-101", "MSM101", Date(2024, 2, 1, 10, 0, 0)),
			},
		},
		{
			name:  "should return nil for an unknown code",
			setup: NewSetupFunc(NewPutRequestWithShipment("A-101", "MSM101", Date(2024, 2, 1, 10, 0, 0))),
			args:  &GetShipmentByTrackingCodeInput{TrackingCode: "MSM404"},
			want:  &GetShipmentByTrackingCodeOutput{},
		},
		{
			name:  "should match case-sensitively",
			setup: NewSetupFunc(NewPutRequestWithShipment("A-101", "MSM101", Date(2024, 2, 1, 10, 0, 0))),
			args:  &GetShipmentByTrackingCodeInput{TrackingCode: "msm101"},
			want:  &GetShipmentByTrackingCodeOutput{},
		},
	}
	runTestsParallel[*GetShipmentByTrackingCodeInput, *GetShipmentByTrackingCodeOutput](t, "GetShipmentByTrackingCode()", tests,
		func(client Client, args *GetShipmentByTrackingCodeInput) (*GetShipmentByTrackingCodeOutput, error) {
			return client.GetShipmentByTrackingCode(context.Background(), args)
		})
}

func TestShipTrackClientPutShipment(t *testing.T) {
	t.Parallel()
	tests := []ClientTestCase[*PutShipmentInput, *GetShipmentOutput]{
		{
			name:  "should insert a record readable by id",
			setup: NewSetupFunc(),
			args: &PutShipmentInput{
				Shipment: NewTestShipment("A-101", "MSM101", Date(2024, 2, 1, 10, 0, 0)),
			},
			want: &GetShipmentOutput{
				Shipment: NewTestShipment("A-101", "MSM101", Date(2024, 2, 1, 10, 0, 0)),
			},
		},
	}
	runTestsParallel[*PutShipmentInput, *GetShipmentOutput](t, "PutShipment()", tests,
		func(client Client, args *PutShipmentInput) (*GetShipmentOutput, error) {
			if _, err := client.PutShipment(context.Background(), args); err != nil {
				return nil, err
			}
			return client.GetShipment(context.Background(), &GetShipmentInput{ID: args.Shipment.ID})
		})
}

func TestShipTrackClientUpdateShipment(t *testing.T) {
	t.Parallel()
	created := Date(2024, 2, 1, 10, 0, 0)
	updated := Date(2024, 2, 2, 15, 30, 0)
	want := NewTestShipment("A-101", "MSM101", created)
	want.Status = StatusDelivered
	want.UpdatedAt = clock.FormatRFC3339Nano(updated)
	tests := []ClientTestCase[*UpdateShipmentInput, *UpdateShipmentOutput]{
		{
			name:  "should replace mutable attributes and keep created_at",
			setup: NewSetupFunc(NewPutRequestWithShipment("A-101", "MSM101", created)),
			args: &UpdateShipmentInput{
				Shipment: func() *Shipment {
					d := DraftOf(NewTestShipment("A-101", "MSM101", created))
					d.Status = string(StatusDelivered)
					s, err := UpdatedShipment("A-101", d, updated)
					if err != nil {
						panic(err)
					}
					return s
				}(),
			},
			want: &UpdateShipmentOutput{
				Shipment: want,
			},
		},
	}
	runTestsParallel[*UpdateShipmentInput, *UpdateShipmentOutput](t, "UpdateShipment()", tests,
		func(client Client, args *UpdateShipmentInput) (*UpdateShipmentOutput, error) {
			return client.UpdateShipment(context.Background(), args)
		})
}

func TestShipTrackClientDeleteShipment(t *testing.T) {
	t.Parallel()
	tests := []ClientTestCase[*DeleteShipmentInput, *GetShipmentOutput]{
		{
			name:  "should remove the record",
			setup: NewSetupFunc(NewPutRequestWithShipment("A-101", "MSM101", Date(2024, 2, 1, 10, 0, 0))),
			args:  &DeleteShipmentInput{ID: "A-101"},
			want:  &GetShipmentOutput{},
		},
		{
			name:  "should not fail for an unknown id",
			setup: NewSetupFunc(NewPutRequestWithShipment("A-101", "MSM101", Date(2024, 2, 1, 10, 0, 0))),
			args:  &DeleteShipmentInput{ID: "B-202"},
			want:  &GetShipmentOutput{},
		},
	}
	runTestsParallel[*DeleteShipmentInput, *GetShipmentOutput](t, "DeleteShipment()", tests,
		func(client Client, args *DeleteShipmentInput) (*GetShipmentOutput, error) {
			if _, err := client.DeleteShipment(context.Background(), args); err != nil {
				return nil, err
			}
			return client.GetShipment(context.Background(), &GetShipmentInput{ID: args.ID})
		})
}

func TestShipTrackClientListShipments(t *testing.T) {
	t.Parallel()
	now := Date(2024, 2, 1, 10, 0, 0)
	tests := []ClientTestCase[*ListShipmentsInput, *ListShipmentsOutput]{
		{
			name: "should return every record newest created first",
			setup: NewSetupFunc(
				NewPutRequestWithShipment("A-101", "MSM101", now.Add(1*time.Minute)),
				NewPutRequestWithShipment("A-102", "MSM102", now.Add(3*time.Minute)),
				NewPutRequestWithShipment("A-103", "MSM103", now.Add(2*time.Minute)),
			),
			args: &ListShipmentsInput{},
			want: &ListShipmentsOutput{
				Shipments: []*Shipment{
					NewTestShipment("A-102", "MSM102", now.Add(3*time.Minute)),
					NewTestShipment("A-103", "MSM103", now.Add(2*time.Minute)),
					NewTestShipment("A-101", "MSM101", now.Add(1*time.Minute)),
				},
			},
		},
		{
			name:  "should return an empty snapshot for an empty table",
			setup: NewSetupFunc(),
			args:  &ListShipmentsInput{},
			want:  &ListShipmentsOutput{},
		},
	}
	runTestsParallel[*ListShipmentsInput, *ListShipmentsOutput](t, "ListShipments()", tests,
		func(client Client, args *ListShipmentsInput) (*ListShipmentsOutput, error) {
			return client.ListShipments(context.Background(), args)
		})
}

func TestShipTrackClientCountShipmentsByStatus(t *testing.T) {
	t.Parallel()
	now := Date(2024, 2, 1, 10, 0, 0)
	delivered := NewTestShipment("A-102", "MSM102", now)
	delivered.Status = StatusDelivered
	tests := []ClientTestCase[*CountShipmentsByStatusInput, *CountShipmentsByStatusOutput]{
		{
			name: "should tally records per status",
			setup: NewSetupFunc(
				NewPutRequestWithShipment("A-101", "MSM101", now),
				&types.PutRequest{Item: mustMarshalShipment(delivered)},
				NewPutRequestWithShipment("A-103", "MSM103", now),
			),
			args: &CountShipmentsByStatusInput{},
			want: &CountShipmentsByStatusOutput{
				Counts: map[Status]int{
					StatusProcessing: 2,
					StatusDelivered:  1,
				},
				Total: 3,
			},
		},
	}
	runTestsParallel[*CountShipmentsByStatusInput, *CountShipmentsByStatusOutput](t, "CountShipmentsByStatus()", tests,
		func(client Client, args *CountShipmentsByStatusInput) (*CountShipmentsByStatusOutput, error) {
			return client.CountShipmentsByStatus(context.Background(), args)
		})
}

func runTestsParallel[Args any, Want any](t *testing.T, prefix string,
	tests []ClientTestCase[Args, Want], operation func(Client, Args) (Want, error)) {
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, clean := prepareTestClient(t, context.Background(), tt.setup)
			defer clean()
			result, err := operation(client, tt.args)
			err = assertError(t, err, tt.wantErr, prefix)
			if err != nil || tt.wantErr != nil {
				return
			}
			assertDeepEqual(t, result, tt.want, prefix)
		})
	}
}

func assertError(t *testing.T, got, want error, prefix string) error {
	t.Helper()
	if want != nil {
		if !errors.Is(got, want) {
			t.Errorf("%s error = %v, want %v", prefix, got, want)
			return got
		}
		return nil
	}
	if got != nil {
		t.Errorf("%s unexpected error = %v", prefix, got)
		return got
	}
	return nil
}

func assertDeepEqual(t *testing.T, got, want any, prefix string) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		v1, _ := json.Marshal(got)
		v2, _ := json.Marshal(want)
		t.Errorf("%s got = %v, want %v", prefix, string(v1), string(v2))
	}
}

func prepareTestClient(t *testing.T, ctx context.Context,
	setupTable func(*testing.T) (string, *dynamodb.Client, func()),
) (Client, func()) {
	t.Helper()
	tableName, raw, clean := setupTable(t)
	optFns := []func(*ClientOptions){
		WithTableName(tableName),
		WithTrackingCodeIndexName(DefaultTrackingCodeIndexName),
		WithAWSDynamoDBClient(raw),
	}
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		t.Fatalf("failed to load aws config: %s\n", err)
		return nil, nil
	}
	client, err := NewFromConfig(cfg, optFns...)
	if err != nil {
		t.Fatalf("failed to create ShipTrack client: %s\n", err)
		return nil, nil
	}
	return client, clean
}

func Date(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}

func NewTestDraft(trackingCode string) Draft {
	return Draft{
		TrackingID:         trackingCode,
		Status:             string(StatusProcessing),
		ShippingSpeed:      string(SpeedStandard),
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

func NewTestShipment(id, trackingCode string, now time.Time) *Shipment {
	s, err := NewShipment(id, NewTestDraft(trackingCode), now)
	if err != nil {
		panic(err)
	}
	return s
}

func NewPutRequestWithShipment(id, trackingCode string, now time.Time) *types.PutRequest {
	return &types.PutRequest{
		Item: mustMarshalShipment(NewTestShipment(id, trackingCode, now)),
	}
}

func mustMarshalShipment(s *Shipment) map[string]types.AttributeValue {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		panic(err)
	}
	return item
}
