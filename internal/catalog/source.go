// Package catalog loads the papers data document and keeps the current copy.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/rcliao/paper-catalog/internal/model"
	"github.com/rcliao/paper-catalog/internal/store"
)

// ErrLoad wraps every failure to fetch or decode the data document.
var ErrLoad = errors.New("error loading papers data")

// Source loads a papers document.
type Source interface {
	Load(ctx context.Context) (*model.Document, error)
	String() string
}

// Decode parses a papers document. Fields are not validated.
func Decode(r io.Reader) (*model.Document, error) {
	var doc model.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrLoad, err)
	}
	if doc.PastPapers == nil {
		doc.PastPapers = model.Catalog{}
	}
	return &doc, nil
}

// FileSource reads the document from a local file.
type FileSource struct {
	Path string
}

func (f FileSource) Load(ctx context.Context) (*model.Document, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer fh.Close()
	return Decode(fh)
}

func (f FileSource) String() string { return f.Path }

// URLSource fetches the document with a single GET.
type URLSource struct {
	URL    string
	Client *http.Client
}

func (u URLSource) Load(ctx context.Context) (*model.Document, error) {
	client := u.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrLoad, u.URL, resp.Status)
	}
	return Decode(resp.Body)
}

func (u URLSource) String() string { return u.URL }

// StoreSource rebuilds the document from the SQLite index.
type StoreSource struct {
	Store store.Store
	Path  string
}

func (s StoreSource) Load(ctx context.Context) (*model.Document, error) {
	doc, err := s.Store.Document(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return doc, nil
}

func (s StoreSource) String() string { return "sqlite:" + s.Path }

// IsURL reports whether ref should be fetched over HTTP.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// NewSource picks a Source for a data reference: URLs are fetched, anything
// else is read from disk.
func NewSource(ref string) Source {
	if IsURL(ref) {
		return URLSource{URL: ref}
	}
	return FileSource{Path: ref}
}
