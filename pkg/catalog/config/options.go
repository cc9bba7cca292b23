package config

import (
	"fmt"
	"log/slog"
)

// WithEnvironment sets the runtime environment name attached to log records
func WithEnvironment(env string) Option {
	return func(c *Config) error {
		c.Environment = env
		return nil
	}
}

// WithDocumentStoreType selects the document store: memory, dynamodb or postgres
func WithDocumentStoreType(storeType string) Option {
	return func(c *Config) error {
		switch storeType {
		case "memory", "dynamodb", "postgres":
			c.DocumentStore = storeType
			return nil
		default:
			return fmt.Errorf("document store must be 'memory', 'dynamodb' or 'postgres', got: %s", storeType)
		}
	}
}

// WithDatabaseURL sets the Postgres connection string and optional schema
func WithDatabaseURL(url, schema string) Option {
	return func(c *Config) error {
		c.DatabaseURL = url
		c.DatabaseSchema = schema
		return nil
	}
}

// WithDynamoDB sets the DynamoDB region and an optional endpoint override
func WithDynamoDB(region, endpoint string) Option {
	return func(c *Config) error {
		c.DynamoDBRegion = region
		c.DynamoDBEndpoint = endpoint
		return nil
	}
}

// WithTables sets the product and category collection names
func WithTables(products, categories string) Option {
	return func(c *Config) error {
		c.ProductsTable = products
		c.CategoriesTable = categories
		return nil
	}
}

// WithBlobStoreType selects the blob store: memory, fs or s3
func WithBlobStoreType(storeType string) Option {
	return func(c *Config) error {
		switch storeType {
		case "memory", "fs", "s3":
			c.BlobStore = storeType
			return nil
		default:
			return fmt.Errorf("blob store must be 'memory', 'fs' or 's3', got: %s", storeType)
		}
	}
}

// WithBucket sets the bucket receiving image uploads
func WithBucket(bucket string) Option {
	return func(c *Config) error {
		c.S3Bucket = bucket
		return nil
	}
}

// WithS3Credentials sets static S3 credentials
func WithS3Credentials(accessKeyID, secretAccessKey string) Option {
	return func(c *Config) error {
		c.S3AccessKeyID = accessKeyID
		c.S3SecretAccessKey = secretAccessKey
		return nil
	}
}

// WithS3Endpoint configures an S3-compatible endpoint such as MinIO
func WithS3Endpoint(endpoint string, usePathStyle bool) Option {
	return func(c *Config) error {
		c.S3Endpoint = endpoint
		c.S3UsePathStyle = usePathStyle
		return nil
	}
}

// WithFilesystemStorage configures the filesystem blob store
func WithFilesystemStorage(baseDir, urlPrefix string) Option {
	return func(c *Config) error {
		c.BlobStore = "fs"
		c.FSBaseDir = baseDir
		c.FSURLPrefix = urlPrefix
		return nil
	}
}

// WithKeyStrategy selects the image key strategy: flat or collection
func WithKeyStrategy(strategy string) Option {
	return func(c *Config) error {
		c.ImageKeyStrategy = strategy
		return nil
	}
}

// WithHandler selects the Lambda entrypoint by name
func WithHandler(name string) Option {
	return func(c *Config) error {
		c.Handler = name
		return nil
	}
}

// WithLogger sets the logger handed to every handler
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.logger = logger
		return nil
	}
}
