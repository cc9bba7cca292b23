package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductSchema(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   []string
	}{
		{
			name:   "valid",
			record: Record{"name": "Pen", "description": "Blue pen", "price": 1.5},
		},
		{
			name:   "zero price is a number",
			record: Record{"name": "Pen", "description": "Blue pen", "price": 0.0},
		},
		{
			name:   "extra fields pass through",
			record: Record{"name": "Pen", "description": "Blue pen", "price": 1.5, "color": "blue"},
		},
		{
			name:   "missing description and price",
			record: Record{"name": "Pen"},
			want:   []string{"description is a required field", "price is a required field"},
		},
		{
			name:   "everything missing",
			record: Record{},
			want: []string{
				"name is a required field",
				"description is a required field",
				"price is a required field",
			},
		},
		{
			name:   "empty strings",
			record: Record{"name": "", "description": "", "price": 2.0},
			want:   []string{"name is a required field", "description is a required field"},
		},
		{
			name:   "null counts as missing",
			record: Record{"name": nil, "description": "Blue pen", "price": 1.0},
			want:   []string{"name is a required field"},
		},
		{
			name:   "wrong types",
			record: Record{"name": 5.0, "description": true, "price": "15"},
			want: []string{
				"name must be a `string` type",
				"description must be a `string` type",
				"price must be a `number` type",
			},
		},
		{
			name:   "digit-only string price",
			record: Record{"name": "Pen", "description": "Blue pen", "price": "15"},
			want:   []string{"price must be a `number` type"},
		},
		{
			name:   "decimal string price",
			record: Record{"name": "Pen", "description": "Blue pen", "price": "1.5"},
			want:   []string{"price must be a `number` type"},
		},
		{
			name:   "negative price is a number",
			record: Record{"name": "Pen", "description": "Blue pen", "price": -3.0},
		},
		{
			name:   "price as object",
			record: Record{"name": "Pen", "description": "Blue pen", "price": map[string]any{}},
			want:   []string{"price must be a `number` type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ProductSchema.Validate(tt.record)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}

			var f *Failure
			require.ErrorAs(t, err, &f)
			assert.Equal(t, KindValidation, f.Kind)
			assert.Equal(t, tt.want, f.Errors)
		})
	}
}

func TestCategorySchema(t *testing.T) {
	assert.NoError(t, CategorySchema.Validate(Record{"name": "Office", "description": "Supplies"}))

	err := CategorySchema.Validate(Record{"price": 3.0})
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Len(t, f.Errors, 2)
}

func TestNewSchema_RegistersTypeTags(t *testing.T) {
	var schema *Schema
	require.NotPanics(t, func() {
		schema = NewSchema(FieldRule{Name: "n", Rules: "number"}, FieldRule{Name: "s", Rules: "string"})
	})
	assert.NoError(t, schema.Validate(Record{"n": 7, "s": "x"}))
	assert.Error(t, schema.Validate(Record{"n": "7"}))
	assert.Error(t, schema.Validate(Record{"s": 7.0}))
}

func TestSchemaRules(t *testing.T) {
	schema := NewSchema(
		FieldRule{Name: "title", Required: true, Rules: "string,min=3"},
		FieldRule{Name: "stock", Rules: "number,gte=0"},
	)

	assert.NoError(t, schema.Validate(Record{"title": "Lamp"}))

	err := schema.Validate(Record{"title": "ab", "stock": -1.0})
	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, []string{
		"title must be at least 3",
		"stock must be greater than or equal to 0",
	}, f.Errors)

	assert.Len(t, schema.Fields(), 2)
}
