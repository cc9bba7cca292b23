package objectkey

import (
	"fmt"
	"strings"
)

// Generator defines the interface for image key generation strategies
type Generator interface {
	// GenerateKey creates a blob key for an image attached to resourceID
	GenerateKey(resourceID string, metadata *KeyMetadata) string
}

// KeyMetadata contains information that influences key generation
type KeyMetadata struct {
	Collection  string // resource family, e.g. "products"
	ContentType string // declared media type, e.g. "image/png"
}

const (
	// StrategyFlat keys images as image_<id>.<ext> at the bucket root
	StrategyFlat = "flat"
	// StrategyCollection prefixes flat keys with the resource family
	StrategyCollection = "collection"
)

// New returns the generator for a named strategy
func New(strategy string) (Generator, error) {
	switch strategy {
	case "", StrategyFlat:
		return NewFlatGenerator(), nil
	case StrategyCollection:
		return NewCollectionGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported image key strategy: %s", strategy)
	}
}

// FlatGenerator produces image_<id>.<ext>, the layout existing buckets use
type FlatGenerator struct{}

func NewFlatGenerator() *FlatGenerator {
	return &FlatGenerator{}
}

func (g *FlatGenerator) GenerateKey(resourceID string, metadata *KeyMetadata) string {
	name := "image_" + sanitizeFilename(resourceID)
	if metadata != nil {
		if ext := Extension(metadata.ContentType); ext != "" {
			return name + "." + ext
		}
	}
	return name
}

// CollectionGenerator groups images per resource family
// Structure: {collection}/image_{id}.{ext}
type CollectionGenerator struct {
	BaseGenerator     Generator
	DefaultCollection string
}

func NewCollectionGenerator() *CollectionGenerator {
	return &CollectionGenerator{
		BaseGenerator:     NewFlatGenerator(),
		DefaultCollection: "default",
	}
}

func (g *CollectionGenerator) GenerateKey(resourceID string, metadata *KeyMetadata) string {
	collection := g.DefaultCollection
	if metadata != nil && metadata.Collection != "" {
		collection = sanitizeFilename(metadata.Collection)
	}
	return fmt.Sprintf("%s/%s", collection, g.BaseGenerator.GenerateKey(resourceID, metadata))
}

// CustomFuncGenerator allows users to provide their own key generation function
type CustomFuncGenerator struct {
	GenerateFunc func(resourceID string, metadata *KeyMetadata) string
}

func NewCustomFuncGenerator(fn func(resourceID string, metadata *KeyMetadata) string) *CustomFuncGenerator {
	return &CustomFuncGenerator{
		GenerateFunc: fn,
	}
}

func (g *CustomFuncGenerator) GenerateKey(resourceID string, metadata *KeyMetadata) string {
	return g.GenerateFunc(resourceID, metadata)
}

// Extension returns the subtype of a media type ("image/jpeg" -> "jpeg"),
// without parameters. It returns "" when contentType has no subtype.
func Extension(contentType string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	_, subtype, ok := strings.Cut(strings.TrimSpace(mediaType), "/")
	if !ok {
		return ""
	}
	return sanitizeFilename(strings.ToLower(strings.TrimSpace(subtype)))
}

func sanitizeFilename(filename string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	return replacer.Replace(filename)
}
