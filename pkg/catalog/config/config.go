package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-catalog/pkg/catalog"
	"github.com/tendant/simple-catalog/pkg/catalog/objectkey"
	repodynamo "github.com/tendant/simple-catalog/pkg/catalog/repo/dynamodb"
	"github.com/tendant/simple-catalog/pkg/catalog/repo/memory"
	repopg "github.com/tendant/simple-catalog/pkg/catalog/repo/postgres"
	fsstorage "github.com/tendant/simple-catalog/pkg/catalog/storage/fs"
	memorystorage "github.com/tendant/simple-catalog/pkg/catalog/storage/memory"
	s3storage "github.com/tendant/simple-catalog/pkg/catalog/storage/s3"
)

// Option applies configuration to a Config instance.
type Option func(*Config) error

// Load constructs a Config by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*Config, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		Environment:      "development",
		DocumentStore:    "dynamodb",
		DynamoDBRegion:   "us-east-1",
		ProductsTable:    catalog.DefaultProductsTable,
		CategoriesTable:  catalog.DefaultCategoriesTable,
		BlobStore:        "s3",
		S3Bucket:         s3storage.DefaultBucket,
		S3Region:         "us-east-1",
		FSBaseDir:        "./data/storage",
		ImageKeyStrategy: objectkey.StrategyFlat,
	}
}

// Config represents the configuration of the catalog handlers. The env tags
// are read by WithEnv; env-default values mirror defaults().
type Config struct {
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	// Document store configuration
	DocumentStore    string `env:"DOCUMENT_STORE" env-default:"dynamodb" validate:"oneof=memory dynamodb postgres"`
	DatabaseURL      string `env:"DATABASE_URL"`
	DatabaseSchema   string `env:"DATABASE_SCHEMA"`
	DynamoDBRegion   string `env:"DYNAMODB_REGION" env-default:"us-east-1"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`
	ProductsTable    string `env:"PRODUCTS_TABLE" env-default:"ProductsTable" validate:"required"`
	CategoriesTable  string `env:"CATEGORIES_TABLE" env-default:"CategoriesTable" validate:"required"`

	// Blob store configuration
	BlobStore                string `env:"BLOB_STORE" env-default:"s3" validate:"oneof=memory fs s3"`
	S3Bucket                 string `env:"S3_BUCKET_NAME" env-default:"smartsuite-bucket" validate:"required"`
	S3AccessKeyID            string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey        string `env:"S3_SECRET_ACCESS_KEY"`
	S3Region                 string `env:"S3_REGION" env-default:"us-east-1"`
	S3Endpoint               string `env:"S3_ENDPOINT"`
	S3UsePathStyle           bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	S3CreateBucketIfNotExist bool   `env:"S3_CREATE_BUCKET_IF_NOT_EXIST" env-default:"false"`
	FSBaseDir                string `env:"FS_BASE_DIR" env-default:"./data/storage"`
	FSURLPrefix              string `env:"FS_URL_PREFIX"`

	ImageKeyStrategy string `env:"IMAGE_KEY_STRATEGY" env-default:"flat" validate:"oneof=flat collection"`

	// Handler selects the Lambda entrypoint, e.g. "products.create"
	Handler string `env:"CATALOG_HANDLER"`

	logger *slog.Logger
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fe := validationErrors[0]
			return fmt.Errorf("invalid %s: %q does not satisfy %s", fe.Field(), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.DocumentStore == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	if c.BlobStore == "fs" && c.FSBaseDir == "" {
		return errors.New("fs_base_dir is required when using fs blob store")
	}

	if c.ProductsTable == c.CategoriesTable && c.DocumentStore == "dynamodb" {
		return errors.New("products and categories need separate tables")
	}

	return nil
}

// Build creates the catalog handlers from the configuration
func (c *Config) Build(ctx context.Context) (*catalog.Catalog, error) {
	store, err := c.buildDocumentStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build document store: %w", err)
	}

	blobs, err := c.buildBlobStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build blob store: %w", err)
	}

	keys, err := objectkey.New(c.ImageKeyStrategy)
	if err != nil {
		return nil, err
	}

	logger := c.logger
	if logger == nil {
		logger = slog.Default()
	}

	return catalog.New(c.ProductsTable, c.CategoriesTable,
		catalog.WithDocumentStore(store),
		catalog.WithBlobStore(blobs, c.S3Bucket),
		catalog.WithKeyGenerator(keys),
		catalog.WithLogger(logger.With("environment", c.Environment)),
	)
}

// buildDocumentStore creates a DocumentStore based on the configuration
func (c *Config) buildDocumentStore(ctx context.Context) (catalog.DocumentStore, error) {
	switch c.DocumentStore {
	case "memory":
		return memory.New(), nil
	case "dynamodb":
		return repodynamo.New(repodynamo.Config{
			Region:   c.DynamoDBRegion,
			Endpoint: c.DynamoDBEndpoint,
		})
	case "postgres":
		cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		// Optionally set search_path for the connection
		schema := c.DatabaseSchema
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			if schema == "" {
				return nil
			}
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", pgx.Identifier{schema}.Sanitize()))
			return err
		}
		pool, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		repo := repopg.NewWithPool(pool, "")
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported document store: %s", c.DocumentStore)
	}
}

// buildBlobStore creates a BlobStore based on the configuration
func (c *Config) buildBlobStore() (catalog.BlobStore, error) {
	switch c.BlobStore {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir:   c.FSBaseDir,
			URLPrefix: c.FSURLPrefix,
		})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.S3Region,
			Bucket:                 c.S3Bucket,
			AccessKeyID:            c.S3AccessKeyID,
			SecretAccessKey:        c.S3SecretAccessKey,
			Endpoint:               c.S3Endpoint,
			UsePathStyle:           c.S3UsePathStyle,
			CreateBucketIfNotExist: c.S3CreateBucketIfNotExist,
		})
	default:
		return nil, fmt.Errorf("unsupported blob store: %s", c.BlobStore)
	}
}
