package services

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo satisfies DynamoAPI with per-call function hooks. Tests set only
// the hooks the code under test exercises; anything else errors loudly.
type fakeDynamo struct {
	getItem    func(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	putItem    func(ctx context.Context, tableName string, item interface{}) error
	updateItem func(ctx context.Context, tableName string, updateExpression string, key map[string]types.AttributeValue, values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error)
	deleteItem func(ctx context.Context, tableName string, key map[string]types.AttributeValue) error
	query      func(ctx context.Context, tableName string, keyCondition string, values map[string]types.AttributeValue, names map[string]string, limit int32, latestFirst bool) ([]map[string]types.AttributeValue, error)
	scan       func(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error
}

var errFakeUnexpected = errors.New("unexpected dynamo call")

func (f *fakeDynamo) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	if f.getItem == nil {
		return nil, errFakeUnexpected
	}
	return f.getItem(ctx, tableName, key)
}

func (f *fakeDynamo) PutItem(ctx context.Context, tableName string, item interface{}) error {
	if f.putItem == nil {
		return errFakeUnexpected
	}
	return f.putItem(ctx, tableName, item)
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, tableName string, updateExpression string, key map[string]types.AttributeValue, values map[string]types.AttributeValue, names map[string]string) (map[string]types.AttributeValue, error) {
	if f.updateItem == nil {
		return nil, errFakeUnexpected
	}
	return f.updateItem(ctx, tableName, updateExpression, key, values, names)
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) error {
	if f.deleteItem == nil {
		return errFakeUnexpected
	}
	return f.deleteItem(ctx, tableName, key)
}

func (f *fakeDynamo) QueryItemsWithOptions(ctx context.Context, tableName string, keyCondition string, values map[string]types.AttributeValue, names map[string]string, limit int32, latestFirst bool) ([]map[string]types.AttributeValue, error) {
	if f.query == nil {
		return nil, errFakeUnexpected
	}
	return f.query(ctx, tableName, keyCondition, values, names, limit, latestFirst)
}

func (f *fakeDynamo) ScanWithFilter(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
	if f.scan == nil {
		return errFakeUnexpected
	}
	return f.scan(ctx, tableName, filterFunc, excludeFields, result)
}

// scanFromSlice builds a ScanWithFilter hook serving the given records,
// applying the caller's filterFunc the way the real scan does.
func scanFromSlice(records []interface{}) func(ctx context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
	return func(_ context.Context, _ string, filterFunc func(map[string]types.AttributeValue) bool, _ map[string]string, result interface{}) error {
		var filtered []map[string]types.AttributeValue
		for _, record := range records {
			item, err := attributevalue.MarshalMap(record)
			if err != nil {
				return err
			}
			if filterFunc == nil || filterFunc(item) {
				filtered = append(filtered, item)
			}
		}
		return attributevalue.UnmarshalListOfMaps(filtered, result)
	}
}
