package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// WithEnv reads the configuration from environment variables. Unset
// variables fall back to their env-default, so WithEnv resets earlier
// options; pass it first and override afterwards.
//
// Document store:
//
//	DOCUMENT_STORE - memory, dynamodb (default) or postgres
//	DATABASE_URL, DATABASE_SCHEMA - Postgres connection
//	DYNAMODB_REGION, DYNAMODB_ENDPOINT - DynamoDB client
//	PRODUCTS_TABLE, CATEGORIES_TABLE - collection names
//
// Blob store:
//
//	BLOB_STORE - memory, fs or s3 (default)
//	S3_BUCKET_NAME - upload bucket (default: smartsuite-bucket)
//	S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY - static credentials
//	S3_REGION, S3_ENDPOINT, S3_USE_PATH_STYLE, S3_CREATE_BUCKET_IF_NOT_EXIST
//	FS_BASE_DIR, FS_URL_PREFIX - filesystem store
//
// IMAGE_KEY_STRATEGY selects flat (default) or collection keys and
// CATALOG_HANDLER names the Lambda entrypoint.
func WithEnv() Option {
	return func(c *Config) error {
		if err := cleanenv.ReadEnv(c); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		return nil
	}
}

// Usage returns a description of the environment variables
func Usage() string {
	var c Config
	description, err := cleanenv.GetDescription(&c, nil)
	if err != nil {
		return ""
	}
	return description
}
