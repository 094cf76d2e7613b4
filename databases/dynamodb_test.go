package databases_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/linesmerrill/medireminder-api/databases"
	"github.com/linesmerrill/medireminder-api/models"
)

type fakeDynamo struct {
	mock.Mock
}

func (f *fakeDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	ret := f.Called(ctx, in)
	out, _ := ret.Get(0).(*dynamodb.PutItemOutput)
	return out, ret.Error(1)
}

func (f *fakeDynamo) BatchWriteItem(ctx context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	ret := f.Called(ctx, in)
	out, _ := ret.Get(0).(*dynamodb.BatchWriteItemOutput)
	return out, ret.Error(1)
}

func (f *fakeDynamo) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	ret := f.Called(ctx, in)
	out, _ := ret.Get(0).(*dynamodb.GetItemOutput)
	return out, ret.Error(1)
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	ret := f.Called(ctx, in)
	out, _ := ret.Get(0).(*dynamodb.UpdateItemOutput)
	return out, ret.Error(1)
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	ret := f.Called(ctx, in)
	out, _ := ret.Get(0).(*dynamodb.DeleteItemOutput)
	return out, ret.Error(1)
}

func (f *fakeDynamo) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	ret := f.Called(ctx, in)
	out, _ := ret.Get(0).(*dynamodb.ScanOutput)
	return out, ret.Error(1)
}

func (f *fakeDynamo) Query(ctx context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	ret := f.Called(ctx, in)
	out, _ := ret.Get(0).(*dynamodb.QueryOutput)
	return out, ret.Error(1)
}

func s(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }

func TestDynamoTable_Put(t *testing.T) {
	client := &fakeDynamo{}
	table := databases.NewDynamoTable[models.Recommendation](client, "recommendations")

	client.On("PutItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		return aws.ToString(in.TableName) == "recommendations" &&
			assert.ObjectsAreEqual(s("r1"), in.Item["id"]) &&
			assert.ObjectsAreEqual(s("u1"), in.Item["user_id"])
	})).Return(&dynamodb.PutItemOutput{}, nil)

	err := table.Put(context.Background(), models.Recommendation{ID: "r1", Description: "d", UserID: "u1", Email: "a@b.com"})
	assert.NoError(t, err)
	client.AssertExpectations(t)
}

func TestDynamoTable_BatchPutChunks(t *testing.T) {
	client := &fakeDynamo{}
	table := databases.NewDynamoTable[models.Medicament](client, "medicaments")

	var sizes []int
	client.On("BatchWriteItem", mock.Anything, mock.Anything).Return(&dynamodb.BatchWriteItemOutput{}, nil).
		Run(func(args mock.Arguments) {
			in := args.Get(1).(*dynamodb.BatchWriteItemInput)
			sizes = append(sizes, len(in.RequestItems["medicaments"]))
		})

	items := make([]models.Medicament, 30)
	for i := range items {
		items[i].ID = string(rune('a' + i))
	}
	assert.NoError(t, table.BatchPut(context.Background(), items))
	assert.Equal(t, []int{25, 5}, sizes)
}

func TestDynamoTable_BatchPutUnprocessed(t *testing.T) {
	client := &fakeDynamo{}
	table := databases.NewDynamoTable[models.Medicament](client, "medicaments")

	client.On("BatchWriteItem", mock.Anything, mock.Anything).Return(&dynamodb.BatchWriteItemOutput{
		UnprocessedItems: map[string][]types.WriteRequest{"medicaments": {{}}},
	}, nil)

	err := table.BatchPut(context.Background(), []models.Medicament{{ID: "m1"}, {ID: "m2"}})
	assert.EqualError(t, err, "1 of 2 items were not processed")
}

func TestDynamoTable_BatchPutKeepsEarlierChunks(t *testing.T) {
	client := &fakeDynamo{}
	table := databases.NewDynamoTable[models.Medicament](client, "medicaments")

	var sizes []int
	record := func(args mock.Arguments) {
		in := args.Get(1).(*dynamodb.BatchWriteItemInput)
		sizes = append(sizes, len(in.RequestItems["medicaments"]))
	}
	client.On("BatchWriteItem", mock.Anything, mock.Anything).Return(&dynamodb.BatchWriteItemOutput{}, nil).
		Run(record).Once()
	client.On("BatchWriteItem", mock.Anything, mock.Anything).Return(nil, errors.New("throttled")).
		Run(record).Once()

	items := make([]models.Medicament, 30)
	for i := range items {
		items[i].ID = string(rune('a' + i))
	}
	err := table.BatchPut(context.Background(), items)
	assert.EqualError(t, err, "throttled")
	assert.Equal(t, []int{25, 5}, sizes)
	client.AssertNumberOfCalls(t, "BatchWriteItem", 2)
}

func TestDynamoTable_ScanFollowsPages(t *testing.T) {
	client := &fakeDynamo{}
	table := databases.NewDynamoTable[models.Recommendation](client, "recommendations")

	client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey == nil
	})).Return(&dynamodb.ScanOutput{
		Items:            []map[string]types.AttributeValue{{"id": s("r1")}},
		LastEvaluatedKey: map[string]types.AttributeValue{"id": s("r1")},
	}, nil).Once()
	client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		return in.ExclusiveStartKey != nil
	})).Return(&dynamodb.ScanOutput{
		Items: []map[string]types.AttributeValue{{"id": s("r2")}},
	}, nil).Once()

	recs, err := table.Scan(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []models.Recommendation{{ID: "r1"}, {ID: "r2"}}, recs)
}

func TestDynamoTable_ScanEqualUsesFilter(t *testing.T) {
	client := &fakeDynamo{}
	table := databases.NewDynamoTable[models.Admin](client, "admins")

	client.On("Scan", mock.Anything, mock.MatchedBy(func(in *dynamodb.ScanInput) bool {
		if in.FilterExpression == nil {
			return false
		}
		for _, name := range in.ExpressionAttributeNames {
			if name == "email" {
				return true
			}
		}
		return false
	})).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{}}, nil)

	admins, err := table.ScanEqual(context.Background(), "email", "a@b.com")
	assert.NoError(t, err)
	assert.Empty(t, admins)
	assert.NotNil(t, admins)
}

func TestDynamoTable_QueryIndex(t *testing.T) {
	client := &fakeDynamo{}
	table := databases.NewDynamoTable[models.Reminder](client, "reminders",
		databases.Index{Field: "user_id", Name: "user_id-index"})

	client.On("Query", mock.Anything, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		return aws.ToString(in.IndexName) == "user_id-index" && in.KeyConditionExpression != nil
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{{"id": s("rm1"), "user_id": s("u1")}},
	}, nil)

	reminders, err := table.QueryIndex(context.Background(), "user_id", "u1")
	assert.NoError(t, err)
	assert.Equal(t, []models.Reminder{{ID: "rm1", UserID: "u1"}}, reminders)

	_, err = table.QueryIndex(context.Background(), "medicament_id", "m1")
	assert.ErrorContains(t, err, "no secondary index")
}

func TestDynamoTable_Get(t *testing.T) {
	client := &fakeDynamo{}
	table := databases.NewDynamoTable[models.Admin](client, "admins")

	client.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		return assert.ObjectsAreEqual(s("missing"), in.Key["id"])
	})).Return(&dynamodb.GetItemOutput{}, nil)
	client.On("GetItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		return assert.ObjectsAreEqual(s("a1"), in.Key["id"])
	})).Return(&dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"id": s("a1"), "email": s("a@b.com"),
	}}, nil)

	admin, err := table.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, admin)

	admin, err = table.Get(context.Background(), "a1")
	assert.NoError(t, err)
	assert.Equal(t, &models.Admin{ID: "a1", Email: "a@b.com"}, admin)
}

func TestDynamoTable_UpdateConditions(t *testing.T) {
	client := &fakeDynamo{}
	table := databases.NewDynamoTable[models.Reminder](client, "reminders")

	var captured *dynamodb.UpdateItemInput
	client.On("UpdateItem", mock.Anything, mock.Anything).
		Return(nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*dynamodb.UpdateItemInput) })

	err := table.Update(context.Background(), "rm1", (models.Reminder{Title: "t", Time: "08:00"}).Fields())
	assert.ErrorIs(t, err, databases.ErrConditionFailed)

	if assert.NotNil(t, captured) {
		assert.True(t, strings.HasPrefix(aws.ToString(captured.UpdateExpression), "SET "))
		assert.Contains(t, aws.ToString(captured.ConditionExpression), "attribute_exists")
		var names []string
		for _, n := range captured.ExpressionAttributeNames {
			names = append(names, n)
		}
		assert.Contains(t, names, "time")
		assert.Contains(t, names, "status")
	}
}

func TestDynamoTable_Delete(t *testing.T) {
	client := &fakeDynamo{}
	table := databases.NewDynamoTable[models.Admin](client, "admins")

	client.On("DeleteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.DeleteItemInput) bool {
		return assert.ObjectsAreEqual(s("missing"), in.Key["id"])
	})).Return(nil, &types.ConditionalCheckFailedException{})
	client.On("DeleteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.DeleteItemInput) bool {
		return assert.ObjectsAreEqual(s("broken"), in.Key["id"])
	})).Return(nil, errors.New("mocked-error"))
	client.On("DeleteItem", mock.Anything, mock.MatchedBy(func(in *dynamodb.DeleteItemInput) bool {
		return assert.ObjectsAreEqual(s("a1"), in.Key["id"])
	})).Return(&dynamodb.DeleteItemOutput{}, nil)

	assert.ErrorIs(t, table.Delete(context.Background(), "missing"), databases.ErrConditionFailed)
	assert.EqualError(t, table.Delete(context.Background(), "broken"), "mocked-error")
	assert.NoError(t, table.Delete(context.Background(), "a1"))
}
