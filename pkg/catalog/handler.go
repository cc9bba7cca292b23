package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/tendant/simple-catalog/pkg/catalog/objectkey"
)

// HandlerFunc is the signature of every Lambda entrypoint served by a Handler
type HandlerFunc func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Handler serves create, read, update, delete, list and attach-image
// requests for one resource family.
type Handler struct {
	resource Resource
	store    DocumentStore
	blobs    BlobStore
	bucket   string
	ids      IDGenerator
	keys     objectkey.Generator
	logger   *slog.Logger
	resolver *Resolver
}

// Option represents a functional option for configuring a handler
type Option func(*Handler)

// WithDocumentStore sets the document store holding the resource records
func WithDocumentStore(store DocumentStore) Option {
	return func(h *Handler) {
		h.store = store
	}
}

// WithBlobStore sets the blob store and bucket receiving image uploads
func WithBlobStore(store BlobStore, bucket string) Option {
	return func(h *Handler) {
		h.blobs = store
		h.bucket = bucket
	}
}

// WithIDGenerator replaces the default UUID identifier generator
func WithIDGenerator(ids IDGenerator) Option {
	return func(h *Handler) {
		h.ids = ids
	}
}

// WithKeyGenerator replaces the default image key generator
func WithKeyGenerator(keys objectkey.Generator) Option {
	return func(h *Handler) {
		h.keys = keys
	}
}

// WithLogger sets the logger used for request outcomes
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates a handler for resource with the given options
func NewHandler(resource Resource, options ...Option) (*Handler, error) {
	h := &Handler{
		resource: resource,
		ids:      UUIDGenerator{},
		keys:     objectkey.NewFlatGenerator(),
		logger:   slog.Default(),
	}

	for _, option := range options {
		option(h)
	}

	if h.store == nil {
		return nil, ErrMissingDocumentStore
	}
	if h.resource.Schema == nil {
		return nil, fmt.Errorf("resource %s has no schema", h.resource.Name)
	}
	if h.resource.Collection.Name == "" || h.resource.Collection.IDField == "" {
		return nil, fmt.Errorf("resource %s has an incomplete collection", h.resource.Name)
	}

	h.resolver = NewResolver(h.store, h.resource.Collection)
	return h, nil
}

// Resource returns the resource description served by the handler
func (h *Handler) Resource() Resource {
	return h.resource
}

// Create validates the request body, mints an identifier and stores the record
func (h *Handler) Create(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp, err := h.create(ctx, req)
	return h.finish("create", "", resp, err)
}

func (h *Handler) create(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	record, err := h.parseAndValidate(req.Body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if h.resource.Image.Mode == ImageAppend && h.resource.Image.Name != "" {
		if _, ok := record[h.resource.Image.Name]; !ok {
			record[h.resource.Image.Name] = []any{}
		}
	}
	id := h.ids.NewID()
	record[h.resource.Collection.IDField] = id

	if _, err := h.store.Put(ctx, h.resource.Collection, record); err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to create %s: %w", h.resource.Name, err)
	}

	h.logger.Info("Record created", "resource", h.resource.Name, "id", id)
	return RespondJSON(http.StatusCreated, record)
}

// Get returns the record addressed by the id path parameter
func (h *Handler) Get(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := pathID(req)
	resp, err := h.get(ctx, id)
	return h.finish("get", id, resp, err)
}

func (h *Handler) get(ctx context.Context, id string) (events.APIGatewayProxyResponse, error) {
	record, err := h.resolver.Resolve(ctx, id)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return RespondJSON(http.StatusOK, record)
}

// Update replaces the addressed record with the validated request body. The
// identifier always comes from the path. The response body is the store's
// write acknowledgement.
func (h *Handler) Update(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := pathID(req)
	resp, err := h.update(ctx, id, req.Body)
	return h.finish("update", id, resp, err)
}

func (h *Handler) update(ctx context.Context, id, body string) (events.APIGatewayProxyResponse, error) {
	if _, err := h.resolver.Resolve(ctx, id); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	record, err := h.parseAndValidate(body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	record[h.resource.Collection.IDField] = id

	ack, err := h.store.Put(ctx, h.resource.Collection, record)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to update %s %q: %w", h.resource.Name, id, err)
	}
	if ack == nil {
		ack = &PutResult{}
	}

	h.logger.Info("Record updated", "resource", h.resource.Name, "id", id)
	return RespondJSON(http.StatusOK, ack)
}

// Delete removes the addressed record and returns an empty 204 response
func (h *Handler) Delete(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := pathID(req)
	resp, err := h.delete(ctx, id)
	return h.finish("delete", id, resp, err)
}

func (h *Handler) delete(ctx context.Context, id string) (events.APIGatewayProxyResponse, error) {
	if _, err := h.resolver.Resolve(ctx, id); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if err := h.store.Delete(ctx, h.resource.Collection, id); err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to delete %s %q: %w", h.resource.Name, id, err)
	}

	h.logger.Info("Record deleted", "resource", h.resource.Name, "id", id)
	return RespondNoContent(), nil
}

// List returns every record of the collection, unfiltered and unpaginated.
// Store failures are returned as is, never turned into a client response.
func (h *Handler) List(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	resp, err := h.list(ctx)
	if err != nil {
		h.logger.Error("Request failed", "resource", h.resource.Name, "operation", "list", "error", err)
		return events.APIGatewayProxyResponse{}, err
	}
	return resp, nil
}

func (h *Handler) list(ctx context.Context) (events.APIGatewayProxyResponse, error) {
	records, err := h.store.Scan(ctx, h.resource.Collection)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to list %s: %w", h.resource.Name, err)
	}
	if records == nil {
		records = []Record{}
	}
	return RespondJSON(http.StatusOK, records)
}

// AddImage attaches a base64 encoded image to the addressed record. Requests
// not flagged as base64 encoded skip the upload; the record is written back
// in every case.
func (h *Handler) AddImage(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	id := pathID(req)
	resp, err := h.addImage(ctx, id, req)
	return h.finish("add_image", id, resp, err)
}

func (h *Handler) addImage(ctx context.Context, id string, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	record, err := h.resolver.Resolve(ctx, id)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if req.IsBase64Encoded && req.Body != "" {
		location, err := h.uploadImage(ctx, id, req)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		withImage(record, h.resource.Image, location)
		h.logger.Info("Image uploaded", "resource", h.resource.Name, "id", id, "location", location)
	}

	// no rollback of the uploaded blob if this write fails
	if _, err := h.store.Put(ctx, h.resource.Collection, record); err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to save %s %q: %w", h.resource.Name, id, err)
	}

	return Respond(http.StatusOK, ImageAddedMessage, true), nil
}

func (h *Handler) uploadImage(ctx context.Context, id string, req events.APIGatewayProxyRequest) (string, error) {
	contentType := headerValue(req.Headers, "content-type")
	key := h.keys.GenerateKey(id, &objectkey.KeyMetadata{
		Collection:  h.resource.Name,
		ContentType: contentType,
	})

	data, err := decodeImage(req.Body)
	if err != nil {
		return "", NewMalformedInput(err)
	}

	if h.blobs == nil {
		return "", ErrMissingBlobStore
	}
	if contentType == "" {
		contentType = defaultImageContentType
	}

	result, err := h.blobs.Upload(ctx, UploadParams{
		Bucket:      h.bucket,
		Key:         key,
		Body:        data,
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", key, err)
	}
	return result.Location, nil
}

// parseAndValidate decodes the JSON body and checks it against the resource
// schema. Unparseable text fails before validation runs.
func (h *Handler) parseAndValidate(body string) (Record, error) {
	var raw any
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, NewMalformedInput(err)
	}

	fields, ok := raw.(map[string]any)
	if !ok {
		return nil, NewValidationFailure([]string{"this must be a `object` type"})
	}

	record := Record(fields)
	if err := h.resource.Schema.Validate(record); err != nil {
		return nil, err
	}
	return record, nil
}

// finish normalizes a failed request; unclassified errors are logged and returned
func (h *Handler) finish(op, id string, resp events.APIGatewayProxyResponse, err error) (events.APIGatewayProxyResponse, error) {
	if err == nil {
		return resp, nil
	}

	normalized, unhandled := Normalize(err)
	if unhandled != nil {
		h.logger.Error("Request failed", "resource", h.resource.Name, "operation", op, "id", id, "error", unhandled)
		return normalized, unhandled
	}

	h.logger.Warn("Request rejected", "resource", h.resource.Name, "operation", op, "id", id,
		"status", normalized.StatusCode, "error", err)
	return normalized, nil
}

func pathID(req events.APIGatewayProxyRequest) string {
	return req.PathParameters["id"]
}
