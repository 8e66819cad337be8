package fetcher

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/idlab-discover/TrustScore-cli/internal/category"
	"github.com/idlab-discover/TrustScore-cli/internal/metadata"
	"github.com/idlab-discover/TrustScore-cli/internal/scoring"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// defaultFixtureKey selects the entry used for ids with no fixture of their own.
const defaultFixtureKey = "default"

// Fixtures is the offline data set served by DummyFetcher.
type Fixtures struct {
	Datasets map[string]DatasetFixture `yaml:"datasets"`
	Models   map[string]ModelFixture   `yaml:"models"`
	Code     map[string]CodeFixture    `yaml:"code"`
}

type DatasetFixture struct {
	metadata.Dataset `yaml:",inline"`
	SizeMB           float64 `yaml:"size_mb"`
	// Status simulates an upstream HTTP status (0 or 200 = success).
	Status int `yaml:"status"`
}

type ModelFixture struct {
	metadata.Model `yaml:",inline"`
	SizeMB         float64 `yaml:"size_mb"`
	Status         int     `yaml:"status"`
}

type CodeFixture struct {
	metadata.Code `yaml:",inline"`
	SizeMB        float64 `yaml:"size_mb"`
	Status        int     `yaml:"status"`
}

// LoadFixtures decodes a fixtures document.
func LoadFixtures(r io.Reader) (*Fixtures, error) {
	var fx Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &fx, nil
}

// LoadFixturesFile decodes the fixtures document at path.
func LoadFixturesFile(path string) (*Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadFixtures(f)
}

// DummyFetcher serves metadata and sizes from fixtures without network
// access. It satisfies both the scorer's fetcher and size estimator.
type DummyFetcher struct {
	fx *Fixtures
}

// NewDummyFetcher returns a DummyFetcher over fx, or over the built-in
// fixtures when fx is nil.
func NewDummyFetcher(fx *Fixtures) *DummyFetcher {
	if fx == nil {
		loaded, err := LoadFixtures(bytes.NewReader(defaultFixtures))
		if err != nil {
			panic(fmt.Sprintf("built-in fixtures: %v", err))
		}
		fx = loaded
	}
	return &DummyFetcher{fx: fx}
}

// Fetch implements the scorer's metadata fetcher.
func (d *DummyFetcher) Fetch(ctx context.Context, c category.Category, id string) (metadata.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logf(id, "[dummy] fetch %s", c.Kind())

	switch c {
	case category.Dataset:
		f, ok := lookup(d.fx.Datasets, id)
		if !ok {
			return nil, &APIError{Service: ServiceHuggingFace, StatusCode: 404}
		}
		if err := statusErr(ServiceHuggingFace, f.Status); err != nil {
			return nil, err
		}
		return f.Dataset, nil
	case category.Model:
		f, ok := lookup(d.fx.Models, id)
		if !ok {
			return nil, &APIError{Service: ServiceHuggingFace, StatusCode: 404}
		}
		if err := statusErr(ServiceHuggingFace, f.Status); err != nil {
			return nil, err
		}
		return f.Model, nil
	case category.Code:
		f, ok := lookup(d.fx.Code, id)
		if !ok {
			return nil, &APIError{Service: ServiceGitHub, StatusCode: 404}
		}
		if err := statusErr(ServiceGitHub, f.Status); err != nil {
			return nil, err
		}
		return f.Code, nil
	default:
		return nil, fmt.Errorf("no fixtures for category %s", c)
	}
}

// Estimate implements the scorer's size estimator.
func (d *DummyFetcher) Estimate(_ context.Context, id string, c category.Category) float64 {
	if id == "" || id == scoring.UnknownName {
		return scoring.UnknownSizeMB
	}

	var (
		size   float64
		status int
		ok     bool
	)
	switch c {
	case category.Dataset:
		var f DatasetFixture
		f, ok = lookup(d.fx.Datasets, id)
		size, status = f.SizeMB, f.Status
	case category.Model:
		var f ModelFixture
		f, ok = lookup(d.fx.Models, id)
		size, status = f.SizeMB, f.Status
	case category.Code:
		var f CodeFixture
		f, ok = lookup(d.fx.Code, id)
		size, status = f.SizeMB, f.Status
	}
	if !ok || statusErr("", status) != nil {
		return scoring.FallbackSizeMB
	}
	return size
}

func lookup[T any](m map[string]T, id string) (T, bool) {
	if f, ok := m[id]; ok {
		return f, true
	}
	f, ok := m[defaultFixtureKey]
	return f, ok
}

func statusErr(service string, status int) error {
	if status == 0 || status == 200 {
		return nil
	}
	return &APIError{Service: service, StatusCode: status}
}
