package databases

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/linesmerrill/medireminder-api/models"
)

// maxBatchWrite is the number of put requests DynamoDB accepts in one BatchWriteItem call
const maxBatchWrite = 25

// DynamoDBAPI is the subset of the DynamoDB client used by the tables
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

type dynamoTable[T models.Record] struct {
	client  DynamoDBAPI
	name    string
	indexes map[string]string
}

// NewDynamoTable returns a Table backed by the named DynamoDB table. The table and its
// global secondary indexes are provisioned outside this service.
func NewDynamoTable[T models.Record](client DynamoDBAPI, name string, indexes ...Index) Table[T] {
	return &dynamoTable[T]{client: client, name: name, indexes: indexNames(indexes)}
}

func (d *dynamoTable[T]) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}}
}

func (d *dynamoTable[T]) Put(ctx context.Context, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.name),
		Item:      av,
	})
	return err
}

// BatchPut writes items in chunks of maxBatchWrite. Chunks sent before a failing one stay written.
func (d *dynamoTable[T]) BatchPut(ctx context.Context, items []T) error {
	requests := make([]types.WriteRequest, 0, len(items))
	for _, item := range items {
		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return err
		}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: av}})
	}

	for start := 0; start < len(requests); start += maxBatchWrite {
		end := start + maxBatchWrite
		if end > len(requests) {
			end = len(requests)
		}
		out, err := d.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{d.name: requests[start:end]},
		})
		if err != nil {
			return err
		}
		if n := len(out.UnprocessedItems[d.name]); n > 0 {
			return fmt.Errorf("%d of %d items were not processed", n, end-start)
		}
	}
	return nil
}

func (d *dynamoTable[T]) Scan(ctx context.Context) ([]T, error) {
	return d.scan(ctx, &dynamodb.ScanInput{TableName: aws.String(d.name)})
}

func (d *dynamoTable[T]) ScanEqual(ctx context.Context, field string, value interface{}) ([]T, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name(field).Equal(expression.Value(value))).
		Build()
	if err != nil {
		return nil, err
	}
	return d.scan(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(d.name),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
}

func (d *dynamoTable[T]) scan(ctx context.Context, input *dynamodb.ScanInput) ([]T, error) {
	var raw []map[string]types.AttributeValue
	p := dynamodb.NewScanPaginator(d.client, input)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		raw = append(raw, page.Items...)
	}
	return d.unmarshalList(raw)
}

func (d *dynamoTable[T]) QueryIndex(ctx context.Context, field string, value interface{}) ([]T, error) {
	index, ok := d.indexes[field]
	if !ok {
		return nil, fmt.Errorf("no secondary index declared for %q", field)
	}
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key(field).Equal(expression.Value(value))).
		Build()
	if err != nil {
		return nil, err
	}

	var raw []map[string]types.AttributeValue
	p := dynamodb.NewQueryPaginator(d.client, &dynamodb.QueryInput{
		TableName:                 aws.String(d.name),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		raw = append(raw, page.Items...)
	}
	return d.unmarshalList(raw)
}

func (d *dynamoTable[T]) unmarshalList(raw []map[string]types.AttributeValue) ([]T, error) {
	items := []T{}
	if len(raw) == 0 {
		return items, nil
	}
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (d *dynamoTable[T]) Get(ctx context.Context, id string) (*T, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.name),
		Key:       d.key(id),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var item T
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (d *dynamoTable[T]) Update(ctx context.Context, id string, fields []models.Field) error {
	var update expression.UpdateBuilder
	for _, f := range fields {
		update = update.Set(expression.Name(f.Name), expression.Value(f.Value))
	}
	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("id"))).
		Build()
	if err != nil {
		return err
	}
	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(d.name),
		Key:                       d.key(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	return conditionError(err)
}

func (d *dynamoTable[T]) Delete(ctx context.Context, id string) error {
	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeExists(expression.Name("id"))).
		Build()
	if err != nil {
		return err
	}
	_, err = d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(d.name),
		Key:                      d.key(id),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	return conditionError(err)
}

// conditionError translates a failed attribute_exists(id) condition into ErrConditionFailed
func conditionError(err error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return ErrConditionFailed
	}
	return err
}
