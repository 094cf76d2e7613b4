package databases

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"github.com/linesmerrill/medireminder-api/config"
	"github.com/linesmerrill/medireminder-api/models"
)

// Provider owns the connection to the configured store and hands out tables. It is
// created once at process start.
type Provider struct {
	driver string

	client ClientHelper
	db     DatabaseHelper

	dynamo DynamoDBAPI

	mu     sync.Mutex
	memory map[string]interface{}
}

// NewProvider connects to the store selected by conf.StoreDriver
func NewProvider(ctx context.Context, conf *config.Config) (*Provider, error) {
	switch conf.StoreDriver {
	case config.DriverMongo:
		client, err := NewClient(conf)
		if err != nil {
			return nil, fmt.Errorf("create mongo client: %w", err)
		}
		if err := client.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		return NewMongoProvider(client, NewDatabase(conf, client)), nil

	case config.DriverDynamoDB:
		var opts []func(*awsconfig.LoadOptions) error
		if conf.Region != "" {
			opts = append(opts, awsconfig.WithRegion(conf.Region))
		}
		cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
			if conf.DynamoDBEndpoint != "" {
				o.BaseEndpoint = aws.String(conf.DynamoDBEndpoint)
			}
		})
		return NewDynamoProvider(client), nil

	case config.DriverMemory:
		zap.S().Warn("using the in-memory store, data is lost on restart")
		return NewMemoryProvider(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", conf.StoreDriver)
}

// NewMongoProvider wraps an already connected mongo client and database
func NewMongoProvider(client ClientHelper, db DatabaseHelper) *Provider {
	return &Provider{driver: config.DriverMongo, client: client, db: db}
}

// NewDynamoProvider wraps a DynamoDB client
func NewDynamoProvider(client DynamoDBAPI) *Provider {
	return &Provider{driver: config.DriverDynamoDB, dynamo: client}
}

// NewMemoryProvider returns a provider whose tables live in process memory
func NewMemoryProvider() *Provider {
	return &Provider{driver: config.DriverMemory, memory: map[string]interface{}{}}
}

// Driver returns the name of the store behind the provider
func (p *Provider) Driver() string {
	return p.driver
}

// Close releases the connection to the store
func (p *Provider) Close(ctx context.Context) error {
	if p.client != nil {
		return p.client.Disconnect(ctx)
	}
	return nil
}

// OpenTable returns the table called name on the provider's store. Opening the same
// in-memory table twice returns the same table.
func OpenTable[T models.Record](ctx context.Context, p *Provider, name string, indexes ...Index) (Table[T], error) {
	switch p.driver {
	case config.DriverMongo:
		return NewMongoTable[T](ctx, p.db, name, indexes...)
	case config.DriverDynamoDB:
		return NewDynamoTable[T](p.dynamo, name, indexes...), nil
	case config.DriverMemory:
		p.mu.Lock()
		defer p.mu.Unlock()
		if t, ok := p.memory[name]; ok {
			table, ok := t.(Table[T])
			if !ok {
				return nil, fmt.Errorf("memory table %q already holds another record type", name)
			}
			return table, nil
		}
		table := NewMemoryTable[T](indexes...)
		p.memory[name] = table
		return table, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", p.driver)
}
