package catalog

import (
	"encoding/base64"
	"regexp"
	"strings"
)

const defaultImageContentType = "application/octet-stream"

var dataURIPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// headerValue looks up a header case-insensitively; API Gateway forwards
// header names as the client sent them.
func headerValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// decodeImage strips an optional data URI prefix and decodes the base64
// payload. Unpadded payloads are accepted.
func decodeImage(body string) ([]byte, error) {
	payload := dataURIPrefix.ReplaceAllString(body, "")
	payload = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, payload)

	data, err := base64.StdEncoding.DecodeString(payload)
	if err == nil {
		return data, nil
	}
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

// withImage records location on the record according to the image field mode
func withImage(record Record, field ImageField, location string) {
	if field.Mode == ImageReplace {
		record[field.Name] = location
		return
	}

	switch existing := record[field.Name].(type) {
	case []any:
		record[field.Name] = append(existing, location)
	case []string:
		images := make([]any, 0, len(existing)+1)
		for _, img := range existing {
			images = append(images, img)
		}
		record[field.Name] = append(images, location)
	case nil:
		record[field.Name] = []any{location}
	default:
		record[field.Name] = []any{existing, location}
	}
}
