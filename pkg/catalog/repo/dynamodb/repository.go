package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/tendant/simple-catalog/pkg/catalog"
)

// ErrTableNotFound is returned when the collection's table does not exist
var ErrTableNotFound = errors.New("table not found")

// API is the subset of the DynamoDB client used by the repository
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Config options for the DynamoDB repository
type Config struct {
	Region          string // AWS region
	Endpoint        string // Optional endpoint, e.g. DynamoDB Local
	AccessKeyID     string // Optional static credentials
	SecretAccessKey string
}

// Repository implements catalog.DocumentStore on DynamoDB. Each collection
// is a table whose partition key is the collection's identifier field.
type Repository struct {
	client API
}

// New creates a repository with a client built from config
func New(config Config) (*Repository, error) {
	if config.Region == "" {
		config.Region = "us-east-1"
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Region),
	}
	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(config.AccessKeyID, config.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var dynamoOptions []func(*dynamodb.Options)
	if config.Endpoint != "" {
		dynamoOptions = append(dynamoOptions, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
		})
	}

	return NewWithClient(dynamodb.NewFromConfig(awsCfg, dynamoOptions...)), nil
}

// NewWithClient creates a repository around an existing client
func NewWithClient(client API) *Repository {
	return &Repository{client: client}
}

func (r *Repository) Get(ctx context.Context, collection catalog.Collection, id string) (catalog.Record, error) {
	output, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(collection.Name),
		Key:       keyOf(collection, id),
	})
	if err != nil {
		return nil, handleDynamoError(collection, err)
	}
	if len(output.Item) == 0 {
		return nil, catalog.ErrRecordNotFound
	}
	return unmarshalRecord(output.Item)
}

// Put writes the record, replacing any item with the same key
func (r *Repository) Put(ctx context.Context, collection catalog.Collection, record catalog.Record) (*catalog.PutResult, error) {
	if id, ok := record.ID(collection.IDField); !ok || id == "" {
		return nil, catalog.ErrMissingIdentifier
	}

	item, err := attributevalue.MarshalMap(map[string]any(record))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(collection.Name),
		Item:      item,
	}); err != nil {
		return nil, handleDynamoError(collection, err)
	}
	return &catalog.PutResult{}, nil
}

func (r *Repository) Delete(ctx context.Context, collection catalog.Collection, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(collection.Name),
		Key:       keyOf(collection, id),
	})
	if err != nil {
		return handleDynamoError(collection, err)
	}
	return nil
}

// Scan drains every page of the table
func (r *Repository) Scan(ctx context.Context, collection catalog.Collection) ([]catalog.Record, error) {
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(collection.Name),
	})

	records := []catalog.Record{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, handleDynamoError(collection, err)
		}
		for _, item := range page.Items {
			record, err := unmarshalRecord(item)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
		}
	}
	return records, nil
}

func keyOf(collection catalog.Collection, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		collection.IDField: &types.AttributeValueMemberS{Value: id},
	}
}

func unmarshalRecord(item map[string]types.AttributeValue) (catalog.Record, error) {
	record := map[string]any{}
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return catalog.Record(record), nil
}

func handleDynamoError(collection catalog.Collection, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException" {
		return fmt.Errorf("%w: %s: %v", ErrTableNotFound, collection.Name, err)
	}
	return fmt.Errorf("dynamodb %s: %w", collection.Name, err)
}
