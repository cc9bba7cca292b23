package catalog

// Record is a single stored resource document. Fields not constrained by the
// resource schema are kept verbatim.
type Record map[string]any

// ID returns the value of the identifier field when it is a string
func (r Record) ID(field string) (string, bool) {
	id, ok := r[field].(string)
	return id, ok
}

// Clone returns a deep copy of the record
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return cloneValue(map[string]any(r)).(map[string]any)
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Record:
		return Record(cloneValue(map[string]any(t)).(map[string]any))
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = cloneValue(val)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = cloneValue(val)
		}
		return s
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// Collection identifies where records of a resource type live in the
// document store and which attribute holds their identifier.
type Collection struct {
	Name    string // table or collection name
	IDField string // identifier attribute, e.g. "productID"
}

// ImageMode controls how an uploaded image location is recorded
type ImageMode int

const (
	// ImageAppend appends the location to a list field
	ImageAppend ImageMode = iota
	// ImageReplace stores the location in a single string field
	ImageReplace
)

// ImageField describes the record field receiving image locations
type ImageField struct {
	Name string
	Mode ImageMode
}

// Resource describes one resource family served by a Handler
type Resource struct {
	Name       string // e.g. "products"
	Collection Collection
	Schema     *Schema
	Image      ImageField
}

// PutResult is the document store's write acknowledgement. It carries no
// record content and encodes as an empty JSON object.
type PutResult struct{}

// UploadParams contains parameters for uploading a blob
type UploadParams struct {
	Bucket      string
	Key         string
	Body        []byte
	ContentType string
}

// UploadResult is returned by a successful blob upload
type UploadResult struct {
	Location string
}
