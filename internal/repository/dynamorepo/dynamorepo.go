package dynamorepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/mrled/stackcalc/internal/exercise"
	"github.com/mrled/stackcalc/internal/model"
)

// Client is the subset of the DynamoDB API the repository uses
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoRepository is a DynamoDB implementation of EvaluationRepository
type DynamoRepository struct {
	client    Client
	tableName string
}

// NewDynamoRepository creates a new DynamoDB-backed repository
func NewDynamoRepository(client Client, tableName string) *DynamoRepository {
	return &DynamoRepository{
		client:    client,
		tableName: tableName,
	}
}

func itemKey(kind exercise.Kind, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: string(kind)},
		"SK": &types.AttributeValueMemberS{Value: id},
	}
}

// Store saves an evaluation record to DynamoDB
// Uses the kind as the PK and the record ID as the SK
func (r *DynamoRepository) Store(ctx context.Context, record *model.EvaluationRecord) error {
	if record == nil {
		return fmt.Errorf("evaluation record cannot be nil")
	}

	item, err := attributevalue.MarshalMap(FromDomain(record))
	if err != nil {
		return fmt.Errorf("failed to marshal evaluation record: %w", err)
	}

	// Matches MemoryRepository.Store, which returns ErrAlreadyExists
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK) AND attribute_not_exists(SK)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to store evaluation record: %w", err)
	}

	return nil
}

// Get retrieves an evaluation record by kind and ID from DynamoDB
func (r *DynamoRepository) Get(ctx context.Context, kind exercise.Kind, id string) (*model.EvaluationRecord, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       itemKey(kind, id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get evaluation record: %w", err)
	}

	if result.Item == nil {
		return nil, model.ErrNotFound
	}

	var dto DynamoDTO
	if err := attributevalue.UnmarshalMap(result.Item, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal evaluation record: %w", err)
	}

	return dto.ToDomain(), nil
}

// List retrieves all evaluation records from DynamoDB, following scan pagination
func (r *DynamoRepository) List(ctx context.Context) ([]*model.EvaluationRecord, error) {
	var dtos []*DynamoDTO

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evaluation records: %w", err)
		}

		var pageDTOs []*DynamoDTO
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageDTOs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal evaluation records: %w", err)
		}
		dtos = append(dtos, pageDTOs...)
	}

	return ToDomainList(dtos), nil
}

// Delete removes an evaluation record by kind and ID from DynamoDB
func (r *DynamoRepository) Delete(ctx context.Context, kind exercise.Kind, id string) error {
	// Matches MemoryRepository.Delete, which returns ErrNotFound
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 itemKey(kind, id),
		ConditionExpression: aws.String("attribute_exists(PK) AND attribute_exists(SK)"),
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete evaluation record: %w", err)
	}

	return nil
}
