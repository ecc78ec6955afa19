package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/storefrontlabs/widget/pkg/errors"
)

// Source retrieves the product feed for a session.
type Source interface {
	Fetch(ctx context.Context) ([]Product, error)
}

type payload struct {
	Products []Product `json:"products" validate:"required,dive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// HTTPSource fetches the catalog document from a URL.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) (*HTTPSource, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("catalog url is required")
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFetch, err, "building catalog request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFetch, err, "fetching catalog")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, pkgerrors.New(pkgerrors.CodeFetch, "catalog source returned non-success status").
			WithDetails(map[string]any{"status": resp.StatusCode})
	}

	return decodePayload(json.NewDecoder(resp.Body))
}

// FileSource reads the catalog document from a local file.
type FileSource struct {
	path string
}

func NewFileSource(path string) (*FileSource, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog file path is required")
	}
	return &FileSource{path: path}, nil
}

func (s *FileSource) Fetch(ctx context.Context) ([]Product, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFetch, err, "opening catalog file")
	}
	defer file.Close()

	return decodePayload(json.NewDecoder(file))
}

func decodePayload(decoder *json.Decoder) ([]Product, error) {
	var doc payload
	if err := decoder.Decode(&doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeParse, err, "decoding catalog payload")
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeParse, err, "invalid catalog payload")
	}
	return doc.Products, nil
}
