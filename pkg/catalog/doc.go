// Package catalog provides request handlers for catalog resources (products
// and categories) served behind API Gateway proxy events, with pluggable
// document store and blob store backends.
//
// Every handler follows the same contract: parse and validate the request
// body when there is one, resolve the addressed record through the
// document store, perform the mutation, optionally upload an image
// attachment to the blob store, and build a JSON response. Failures are
// carried as *Failure values and turned into 400/404 responses by
// Normalize; any other error is returned to the Lambda runtime unchanged.
//
// Implementations of document stores (memory, DynamoDB, Postgres) and blob
// stores (memory, filesystem, S3) are provided under subpackages.
package catalog
