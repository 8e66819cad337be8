// Package category classifies artifact URLs and extracts their identifiers.
//
// A URL is one of four closed categories. Classification is regex based and
// checks the dataset pattern first, since every dataset URL would also match
// the model pattern.
package category

import (
	"fmt"
	"regexp"
	"strings"
)

// Category is the closed set of artifact kinds a URL can reference.
type Category int

const (
	Invalid Category = iota
	Dataset
	Model
	Code
)

// All lists the valid (scoreable) categories in precedence order.
var All = []Category{Dataset, Model, Code}

// String returns the upper-case tag used in reports ("DATASET", "MODEL", ...).
func (c Category) String() string {
	switch c {
	case Dataset:
		return "DATASET"
	case Model:
		return "MODEL"
	case Code:
		return "CODE"
	default:
		return "INVALID"
	}
}

// Kind returns the lower-case name used by the Hugging Face and GitHub path
// conventions and by the history store.
func (c Category) Kind() string {
	return strings.ToLower(c.String())
}

// Valid reports whether c is one of Dataset, Model or Code.
func (c Category) Valid() bool {
	return c == Dataset || c == Model || c == Code
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Parse converts a tag such as "model" or "MODEL" back into a Category.
func Parse(s string) (Category, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DATASET":
		return Dataset, nil
	case "MODEL":
		return Model, nil
	case "CODE":
		return Code, nil
	case "INVALID":
		return Invalid, nil
	default:
		return Invalid, fmt.Errorf("unknown category %q", s)
	}
}

var (
	datasetPattern = regexp.MustCompile(`^https://huggingface\.co/datasets/(\w+/?)+`)
	modelPattern   = regexp.MustCompile(`^https://huggingface\.co/(\w+/?)+`)
	codePattern    = regexp.MustCompile(`^https://github.com/(\w+/?)+`)
)

// Classify returns the category of link. Matching is case sensitive and only
// accepts https URLs.
func Classify(link string) Category {
	switch {
	case datasetPattern.MatchString(link):
		return Dataset
	case modelPattern.MatchString(link):
		return Model
	case codePattern.MatchString(link):
		return Code
	default:
		return Invalid
	}
}
