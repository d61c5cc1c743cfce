package shiptrack

import "fmt"

type IDNotProvidedError struct{}

func (e IDNotProvidedError) Error() string {
	return "ID was not provided."
}

type IDNotFoundError struct{}

func (e IDNotFoundError) Error() string {
	return "Provided ID was not found in the Dynamo DB."
}

type TrackingCodeNotProvidedError struct{}

func (e TrackingCodeNotProvidedError) Error() string {
	return "Tracking code was not provided."
}

type TrackingCodeNotFoundError struct{}

func (e TrackingCodeNotFoundError) Error() string {
	return "Provided tracking code was not found in the Dynamo DB."
}

type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("Field %s is invalid: %s.", e.Field, e.Msg)
}

type ConditionalCheckFailedError struct {
	Cause error
}

func (e ConditionalCheckFailedError) Error() string {
	return fmt.Sprintf("Condition on the item has failed: %v.", e.Cause)
}

type BuildingExpressionError struct {
	Cause error
}

func (e BuildingExpressionError) Error() string {
	return fmt.Sprintf("Failed to build expression: %v.", e.Cause)
}

type DynamoDBAPIError struct {
	Cause error
}

func (e DynamoDBAPIError) Error() string {
	return fmt.Sprintf("Failed DynamoDB API: %v.", e.Cause)
}

type UnmarshalingAttributeError struct {
	Cause error
}

func (e UnmarshalingAttributeError) Error() string {
	return fmt.Sprintf("Failed to unmarshal: %v.", e.Cause)
}

type MarshalingAttributeError struct {
	Cause error
}

func (e MarshalingAttributeError) Error() string {
	return fmt.Sprintf("Failed to marshal: %v.", e.Cause)
}
