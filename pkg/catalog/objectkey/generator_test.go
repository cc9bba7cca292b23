package objectkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatGenerator(t *testing.T) {
	gen := NewFlatGenerator()

	tests := []struct {
		name     string
		metadata *KeyMetadata
		expected string
	}{
		{
			name:     "jpeg",
			metadata: &KeyMetadata{ContentType: "image/jpeg"},
			expected: "image_1.jpeg",
		},
		{
			name:     "media type parameters dropped",
			metadata: &KeyMetadata{ContentType: "image/PNG; charset=binary"},
			expected: "image_1.png",
		},
		{
			name:     "without content type",
			metadata: &KeyMetadata{},
			expected: "image_1",
		},
		{
			name:     "nil metadata",
			metadata: nil,
			expected: "image_1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, gen.GenerateKey("1", tt.metadata))
		})
	}
}

func TestFlatGenerator_SanitizesResourceID(t *testing.T) {
	gen := NewFlatGenerator()
	assert.Equal(t, "image_a_b.gif", gen.GenerateKey("a/b", &KeyMetadata{ContentType: "image/gif"}))
}

func TestCollectionGenerator(t *testing.T) {
	gen := NewCollectionGenerator()

	key := gen.GenerateKey("42", &KeyMetadata{Collection: "products", ContentType: "image/webp"})
	assert.Equal(t, "products/image_42.webp", key)

	key = gen.GenerateKey("42", nil)
	assert.Equal(t, "default/image_42", key)
}

func TestCustomFuncGenerator(t *testing.T) {
	gen := NewCustomFuncGenerator(func(resourceID string, metadata *KeyMetadata) string {
		return "custom/" + resourceID
	})
	assert.Equal(t, "custom/7", gen.GenerateKey("7", nil))
}

func TestNew(t *testing.T) {
	gen, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &FlatGenerator{}, gen)

	gen, err = New(StrategyCollection)
	require.NoError(t, err)
	assert.IsType(t, &CollectionGenerator{}, gen)

	_, err = New("sharded")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image key strategy")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "jpeg", Extension("image/jpeg"))
	assert.Equal(t, "svg+xml", Extension("image/svg+xml"))
	assert.Equal(t, "", Extension("jpeg"))
	assert.Equal(t, "", Extension(""))
}
