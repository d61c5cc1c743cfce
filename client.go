package shiptrack

import (
	"context"
	"errors"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/msm-logistics/shiptrack/internal/clock"
)

const (
	// DefaultTableName is the name of the DynamoDB table holding
	// shipment records.
	DefaultTableName = "shipments"
	// DefaultTrackingCodeIndexName is the name of the global secondary
	// index keyed by tracking_id, used for public lookups.
	DefaultTrackingCodeIndexName = "shipments-index-tracking_id"
	// DefaultRetryMaxAttempts is the default number of attempts for
	// retrying failed DynamoDB operations.
	DefaultRetryMaxAttempts = 10

	defaultScanLimit = 250
)

// Client is an interface for interacting with the DynamoDB-hosted
// shipment table. It covers the five operation shapes the application
// needs: insert-one, update-by-id, delete-by-id, select-all-ordered,
// and select-by-exact-tracking-code, plus fetch-by-id and a per-status
// count used by the admin console.
type Client interface {
	// PutShipment inserts a new shipment record.
	PutShipment(ctx context.Context, params *PutShipmentInput) (*PutShipmentOutput, error)
	// GetShipment retrieves a shipment record by its id.
	GetShipment(ctx context.Context, params *GetShipmentInput) (*GetShipmentOutput, error)
	// GetShipmentByTrackingCode retrieves a shipment record by exact tracking code.
	GetShipmentByTrackingCode(ctx context.Context, params *GetShipmentByTrackingCodeInput) (*GetShipmentByTrackingCodeOutput, error)
	// UpdateShipment replaces every mutable attribute of an existing record.
	UpdateShipment(ctx context.Context, params *UpdateShipmentInput) (*UpdateShipmentOutput, error)
	// DeleteShipment deletes a shipment record by its id.
	DeleteShipment(ctx context.Context, params *DeleteShipmentInput) (*DeleteShipmentOutput, error)
	// ListShipments returns all shipment records, newest created first.
	ListShipments(ctx context.Context, params *ListShipmentsInput) (*ListShipmentsOutput, error)
	// CountShipmentsByStatus tallies records per delivery status.
	CountShipmentsByStatus(ctx context.Context, params *CountShipmentsByStatusInput) (*CountShipmentsByStatusOutput, error)
}

// ClientOptions defines configuration options for the shiptrack client.
//
// Note: Clock, MarshalMap, UnmarshalMap, UnmarshalListOfMaps and
// BuildExpression are primarily used for testing purposes. They allow
// stubbing of operations during tests without relying on a real
// DynamoDB instance. In typical use these fields should not be modified.
type ClientOptions struct {
	// DynamoDB is a pointer to the DynamoDB client used for database operations.
	DynamoDB *dynamodb.Client
	// TableName is the name of the DynamoDB table holding shipment records.
	TableName string
	// TrackingCodeIndexName is the name of the index used for tracking code lookups.
	TrackingCodeIndexName string
	// BaseEndpoint is the base endpoint URL for DynamoDB requests.
	BaseEndpoint string
	// RetryMaxAttempts is the maximum number of attempts for retrying failed DynamoDB operations.
	RetryMaxAttempts int

	// Clock is an abstraction of time operations, allowing control over time during tests.
	Clock clock.Clock
	// MarshalMap is a function to marshal objects into a map of DynamoDB attribute values.
	MarshalMap func(in interface{}) (map[string]types.AttributeValue, error)
	// UnmarshalMap is a function to unmarshal a map of DynamoDB attribute values into objects.
	UnmarshalMap func(m map[string]types.AttributeValue, out interface{}) error
	// UnmarshalListOfMaps is a function to unmarshal a list of maps of DynamoDB attribute values into objects.
	UnmarshalListOfMaps func(l []map[string]types.AttributeValue, out interface{}) error
	// BuildExpression is a function to build DynamoDB expressions from a builder.
	BuildExpression func(b expression.Builder) (expression.Expression, error)
}

// WithTableName is an option function to set the table name for the client.
// By default, the table name is set to "shipments".
func WithTableName(tableName string) func(*ClientOptions) {
	return func(s *ClientOptions) {
		s.TableName = tableName
	}
}

// WithTrackingCodeIndexName is an option function to set the index name
// used for tracking code lookups.
// By default, the index name is set to "shipments-index-tracking_id".
func WithTrackingCodeIndexName(indexName string) func(*ClientOptions) {
	return func(s *ClientOptions) {
		s.TrackingCodeIndexName = indexName
	}
}

// WithAWSDynamoDBClient is an option function to set a custom AWS DynamoDB client.
// When set, the client uses this pre-configured instance for all DynamoDB interactions.
func WithAWSDynamoDBClient(client *dynamodb.Client) func(*ClientOptions) {
	return func(s *ClientOptions) {
		s.DynamoDB = client
	}
}

// WithAWSBaseEndpoint is an option function to set a custom base endpoint for AWS services.
// Useful for pointing the client at a local or regional DynamoDB endpoint.
// If the DynamoDB client is set using the WithAWSDynamoDBClient function, this option function is ignored.
func WithAWSBaseEndpoint(baseEndpoint string) func(*ClientOptions) {
	return func(s *ClientOptions) {
		s.BaseEndpoint = baseEndpoint
	}
}

// WithAWSRetryMaxAttempts is an option function to set the maximum number of retry attempts for AWS service calls.
// If the DynamoDB client is set using the WithAWSDynamoDBClient function, this option function is ignored.
func WithAWSRetryMaxAttempts(retryMaxAttempts int) func(*ClientOptions) {
	return func(s *ClientOptions) {
		s.RetryMaxAttempts = retryMaxAttempts
	}
}

// NewFromConfig creates a new shiptrack client using the provided AWS
// configuration and any additional client options.
func NewFromConfig(cfg aws.Config, optFns ...func(*ClientOptions)) (Client, error) {
	o := &ClientOptions{
		TableName:             DefaultTableName,
		TrackingCodeIndexName: DefaultTrackingCodeIndexName,
		RetryMaxAttempts:      DefaultRetryMaxAttempts,
		Clock:                 &clock.RealClock{},
		MarshalMap:            attributevalue.MarshalMap,
		UnmarshalMap:          attributevalue.UnmarshalMap,
		UnmarshalListOfMaps:   attributevalue.UnmarshalListOfMaps,
		BuildExpression: func(b expression.Builder) (expression.Expression, error) {
			return b.Build()
		},
	}
	for _, opt := range optFns {
		opt(o)
	}
	c := &ClientImpl{
		tableName:             o.TableName,
		trackingCodeIndexName: o.TrackingCodeIndexName,
		dynamoDB:              o.DynamoDB,
		clock:                 o.Clock,
		marshalMap:            o.MarshalMap,
		unmarshalMap:          o.UnmarshalMap,
		unmarshalListOfMaps:   o.UnmarshalListOfMaps,
		buildExpression:       o.BuildExpression,
	}
	if c.dynamoDB != nil {
		return c, nil
	}
	c.dynamoDB = dynamodb.NewFromConfig(cfg, func(options *dynamodb.Options) {
		options.RetryMaxAttempts = o.RetryMaxAttempts
		if o.BaseEndpoint != "" {
			options.BaseEndpoint = aws.String(o.BaseEndpoint)
		}
	})
	return c, nil
}

// ClientImpl is a concrete implementation of the shiptrack.Client interface.
// Note: ClientImpl cannot be used directly. Always use the shiptrack.NewFromConfig function to create an instance.
type ClientImpl struct {
	dynamoDB              *dynamodb.Client
	tableName             string
	trackingCodeIndexName string
	clock                 clock.Clock
	marshalMap            func(in interface{}) (map[string]types.AttributeValue, error)
	unmarshalMap          func(m map[string]types.AttributeValue, out interface{}) error
	unmarshalListOfMaps   func(l []map[string]types.AttributeValue, out interface{}) error
	buildExpression       func(b expression.Builder) (expression.Expression, error)
}

// PutShipmentInput represents the input parameters for inserting a shipment record.
type PutShipmentInput struct {
	// Shipment is the fully populated record to insert. The caller
	// assigns the id and both timestamps before the insert.
	Shipment *Shipment
}

// PutShipmentOutput represents the result of an insert operation.
type PutShipmentOutput struct {
	// Shipment is a pointer to the record as it was written.
	Shipment *Shipment
}

// PutShipment inserts a new shipment record into the DynamoDB table.
// It writes the record exactly as given; tracking code uniqueness is not
// checked, matching the behavior of the hosted table.
func (c *ClientImpl) PutShipment(ctx context.Context, params *PutShipmentInput) (*PutShipmentOutput, error) {
	if params == nil {
		params = &PutShipmentInput{}
	}
	if params.Shipment == nil || params.Shipment.ID == "" {
		return &PutShipmentOutput{}, &IDNotProvidedError{}
	}
	item, err := c.marshalMap(params.Shipment)
	if err != nil {
		return &PutShipmentOutput{}, MarshalingAttributeError{Cause: err}
	}
	_, err = c.dynamoDB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item:      item,
	})
	if err != nil {
		return &PutShipmentOutput{}, handleDynamoDBError(err)
	}
	return &PutShipmentOutput{
		Shipment: params.Shipment,
	}, nil
}

// GetShipmentInput represents the input parameters for retrieving a shipment record by id.
type GetShipmentInput struct {
	// ID is the unique identifier of the record to retrieve.
	ID string
}

// GetShipmentOutput represents the result of the operation to retrieve a shipment record.
type GetShipmentOutput struct {
	// Shipment is a pointer to the retrieved record, or nil when no
	// record with the given id exists.
	Shipment *Shipment
}

// GetShipment get a specific shipment record from the DynamoDB table by id.
// A missing id yields a nil Shipment, not an error.
func (c *ClientImpl) GetShipment(ctx context.Context, params *GetShipmentInput) (*GetShipmentOutput, error) {
	if params == nil {
		params = &GetShipmentInput{}
	}
	if params.ID == "" {
		return &GetShipmentOutput{}, &IDNotProvidedError{}
	}
	resp, err := c.dynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: params.ID},
		},
		TableName:      aws.String(c.tableName),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return &GetShipmentOutput{}, handleDynamoDBError(err)
	}
	if resp.Item == nil {
		return &GetShipmentOutput{}, nil
	}
	item := Shipment{}
	err = c.unmarshalMap(resp.Item, &item)
	if err != nil {
		return &GetShipmentOutput{}, UnmarshalingAttributeError{Cause: err}
	}
	return &GetShipmentOutput{
		Shipment: &item,
	}, nil
}

// GetShipmentByTrackingCodeInput represents the input parameters for the public tracking lookup.
type GetShipmentByTrackingCodeInput struct {
	// TrackingCode is the operator-assigned public identifier. The
	// match is exact and case-sensitive.
	TrackingCode string
}

// GetShipmentByTrackingCodeOutput represents the result of a tracking code lookup.
type GetShipmentByTrackingCodeOutput struct {
	// Shipment is a pointer to the matched record, or nil when no
	// record carries the given tracking code.
	Shipment *Shipment
}

// GetShipmentByTrackingCode retrieves a shipment record by exact
// tracking code, querying the tracking code index. The table expects at
// most one match per code; when duplicates exist, the first item the
// query returns wins.
func (c *ClientImpl) GetShipmentByTrackingCode(ctx context.Context, params *GetShipmentByTrackingCodeInput) (*GetShipmentByTrackingCodeOutput, error) {
	if params == nil {
		params = &GetShipmentByTrackingCodeInput{}
	}
	if params.TrackingCode == "" {
		return &GetShipmentByTrackingCodeOutput{}, &TrackingCodeNotProvidedError{}
	}
	builder := expression.NewBuilder().
		WithKeyCondition(expression.Key("tracking_id").Equal(expression.Value(params.TrackingCode)))
	expr, err := c.buildExpression(builder)
	if err != nil {
		return &GetShipmentByTrackingCodeOutput{}, BuildingExpressionError{Cause: err}
	}
	queryResult, err := c.dynamoDB.Query(ctx, &dynamodb.QueryInput{
		IndexName:                 aws.String(c.trackingCodeIndexName),
		TableName:                 aws.String(c.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return &GetShipmentByTrackingCodeOutput{}, handleDynamoDBError(err)
	}
	if len(queryResult.Items) == 0 {
		return &GetShipmentByTrackingCodeOutput{}, nil
	}
	item := Shipment{}
	err = c.unmarshalMap(queryResult.Items[0], &item)
	if err != nil {
		return &GetShipmentByTrackingCodeOutput{}, UnmarshalingAttributeError{Cause: err}
	}
	return &GetShipmentByTrackingCodeOutput{
		Shipment: &item,
	}, nil
}

// UpdateShipmentInput represents the input parameters for a full-record update by id.
type UpdateShipmentInput struct {
	// Shipment carries the id of the record to update and the new value
	// for every mutable attribute, including the refreshed updated_at.
	// CreatedAt is ignored; the stored creation timestamp is never rewritten.
	Shipment *Shipment
}

// UpdateShipmentOutput represents the result of an update operation.
type UpdateShipmentOutput struct {
	// Shipment is a pointer to the record as stored after the update.
	Shipment *Shipment
}

// UpdateShipment replaces every mutable attribute of an existing record
// in a single update. The update is conditioned on the id existing, so
// updating a deleted record returns IDNotFoundError instead of quietly
// inserting a partial item.
func (c *ClientImpl) UpdateShipment(ctx context.Context, params *UpdateShipmentInput) (*UpdateShipmentOutput, error) {
	if params == nil {
		params = &UpdateShipmentInput{}
	}
	if params.Shipment == nil || params.Shipment.ID == "" {
		return &UpdateShipmentOutput{}, &IDNotProvidedError{}
	}
	s := params.Shipment
	builder := expression.NewBuilder().
		WithUpdate(expression.
			Set(expression.Name("tracking_id"), expression.Value(s.TrackingID)).
			Set(expression.Name("status"), expression.Value(s.Status)).
			Set(expression.Name("shipping_speed"), expression.Value(s.ShippingSpeed)).
			Set(expression.Name("sender_name"), expression.Value(s.SenderName)).
			Set(expression.Name("sender_email"), expression.Value(s.SenderEmail)).
			Set(expression.Name("sender_phone"), expression.Value(s.SenderPhone)).
			Set(expression.Name("sender_address"), expression.Value(s.SenderAddress)).
			Set(expression.Name("sender_city"), expression.Value(s.SenderCity)).
			Set(expression.Name("sender_country"), expression.Value(s.SenderCountry)).
			Set(expression.Name("recipient_name"), expression.Value(s.RecipientName)).
			Set(expression.Name("recipient_email"), expression.Value(s.RecipientEmail)).
			Set(expression.Name("recipient_phone"), expression.Value(s.RecipientPhone)).
			Set(expression.Name("recipient_address"), expression.Value(s.RecipientAddress)).
			Set(expression.Name("recipient_city"), expression.Value(s.RecipientCity)).
			Set(expression.Name("recipient_country"), expression.Value(s.RecipientCountry)).
			Set(expression.Name("package_description"), expression.Value(s.PackageDescription)).
			Set(expression.Name("package_weight"), expression.Value(s.PackageWeight)).
			Set(expression.Name("package_quantity"), expression.Value(s.PackageQuantity)).
			Set(expression.Name("notes"), expression.Value(s.Notes)).
			Set(expression.Name("estimated_delivery"), expression.Value(s.EstimatedDelivery)).
			Set(expression.Name("updated_at"), expression.Value(s.UpdatedAt))).
		WithCondition(expression.AttributeExists(expression.Name("id")))
	expr, err := c.buildExpression(builder)
	if err != nil {
		return &UpdateShipmentOutput{}, BuildingExpressionError{Cause: err}
	}
	outcome, err := c.dynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{
				Value: s.ID,
			},
		},
		TableName:                 aws.String(c.tableName),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		err = handleDynamoDBError(err)
		var condErr *ConditionalCheckFailedError
		if errors.As(err, &condErr) {
			return &UpdateShipmentOutput{}, &IDNotFoundError{}
		}
		return &UpdateShipmentOutput{}, err
	}
	updated := Shipment{}
	err = c.unmarshalMap(outcome.Attributes, &updated)
	if err != nil {
		return &UpdateShipmentOutput{}, UnmarshalingAttributeError{Cause: err}
	}
	return &UpdateShipmentOutput{
		Shipment: &updated,
	}, nil
}

// DeleteShipmentInput represents the input parameters for deleting a shipment record.
type DeleteShipmentInput struct {
	// ID is the unique identifier of the record to delete.
	ID string
}

// DeleteShipmentOutput represents the result of the delete operation.
// This struct is empty as the delete operation does not return any specific information.
type DeleteShipmentOutput struct{}

// DeleteShipment deletes a shipment record by id. Deleting an id that
// does not exist is not an error; the operation is idempotent and
// irreversible.
func (c *ClientImpl) DeleteShipment(ctx context.Context, params *DeleteShipmentInput) (*DeleteShipmentOutput, error) {
	if params == nil {
		params = &DeleteShipmentInput{}
	}
	out := &DeleteShipmentOutput{}
	if params.ID == "" {
		return out, &IDNotProvidedError{}
	}
	_, err := c.dynamoDB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: &c.tableName,
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{
				Value: params.ID,
			},
		},
	})
	if err != nil {
		return out, handleDynamoDBError(err)
	}
	return out, nil
}

// ListShipmentsInput represents the input parameters for listing shipment records.
type ListShipmentsInput struct{}

// ListShipmentsOutput represents the result of the operation to list shipment records.
type ListShipmentsOutput struct {
	// Shipments is an array of pointers to shipment records, ordered
	// newest created_at first.
	Shipments []*Shipment
}

// ListShipments returns every shipment record in the table, newest
// created first. The scan follows LastEvaluatedKey until the table is
// exhausted; the result is a point-in-time snapshot, not a live view.
func (c *ClientImpl) ListShipments(ctx context.Context, params *ListShipmentsInput) (*ListShipmentsOutput, error) {
	if params == nil {
		params = &ListShipmentsInput{}
	}
	var (
		shipments         []*Shipment
		exclusiveStartKey map[string]types.AttributeValue
	)
	for {
		output, err := c.dynamoDB.Scan(ctx, &dynamodb.ScanInput{
			TableName:         &c.tableName,
			Limit:             aws.Int32(defaultScanLimit),
			ExclusiveStartKey: exclusiveStartKey,
		})
		if err != nil {
			return &ListShipmentsOutput{}, handleDynamoDBError(err)
		}
		var page []*Shipment
		err = c.unmarshalListOfMaps(output.Items, &page)
		if err != nil {
			return &ListShipmentsOutput{}, UnmarshalingAttributeError{Cause: err}
		}
		shipments = append(shipments, page...)
		exclusiveStartKey = output.LastEvaluatedKey
		if exclusiveStartKey == nil {
			break
		}
	}
	sort.Slice(shipments, func(i, j int) bool {
		return shipments[i].CreatedTime().After(shipments[j].CreatedTime())
	})
	return &ListShipmentsOutput{Shipments: shipments}, nil
}

// CountShipmentsByStatusInput represents the input parameters for the per-status tally.
// This struct does not contain any fields as the tally always covers the whole table.
type CountShipmentsByStatusInput struct{}

// CountShipmentsByStatusOutput represents the per-status tally of shipment records.
type CountShipmentsByStatusOutput struct {
	// Counts maps each delivery status to the number of records carrying it.
	Counts map[Status]int `json:"counts"`
	// Total is the total number of shipment records in the table.
	Total int `json:"total"`
}

// CountShipmentsByStatus tallies shipment records per delivery status
// by scanning the whole table.
func (c *ClientImpl) CountShipmentsByStatus(ctx context.Context, params *CountShipmentsByStatusInput) (*CountShipmentsByStatusOutput, error) {
	if params == nil {
		params = &CountShipmentsByStatusInput{}
	}
	stats := &CountShipmentsByStatusOutput{
		Counts: make(map[Status]int),
	}
	var exclusiveStartKey map[string]types.AttributeValue
	for {
		output, err := c.dynamoDB.Scan(ctx, &dynamodb.ScanInput{
			TableName:         &c.tableName,
			Limit:             aws.Int32(defaultScanLimit),
			ExclusiveStartKey: exclusiveStartKey,
		})
		if err != nil {
			return &CountShipmentsByStatusOutput{}, handleDynamoDBError(err)
		}
		for _, itemMap := range output.Items {
			item := Shipment{}
			if err := c.unmarshalMap(itemMap, &item); err != nil {
				return &CountShipmentsByStatusOutput{}, UnmarshalingAttributeError{Cause: err}
			}
			stats.Counts[item.Status]++
			stats.Total++
		}
		exclusiveStartKey = output.LastEvaluatedKey
		if exclusiveStartKey == nil {
			break
		}
	}
	return stats, nil
}

func handleDynamoDBError(err error) error {
	var cause *types.ConditionalCheckFailedException
	if errors.As(err, &cause) {
		return &ConditionalCheckFailedError{Cause: cause}
	}
	return DynamoDBAPIError{Cause: err}
}
