package category

import (
	"regexp"
	"strings"
)

var (
	datasetIDPattern = regexp.MustCompile(`huggingface\.co/datasets/([^/?#]+(?:/[^/?#]+)?)`)
	modelIDPattern   = regexp.MustCompile(`huggingface\.co/([^/?#]+/[^/?#]+)`)
	repoPattern      = regexp.MustCompile(`github\.com/([^/?#]+)/([^/?#]+)`)
)

// DatasetID extracts "name" or "owner/name" from a Hugging Face dataset URL.
func DatasetID(link string) (string, bool) {
	m := datasetIDPattern.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ModelID extracts "owner/name" from a Hugging Face model URL. Single-segment
// model URLs do not parse.
func ModelID(link string) (string, bool) {
	m := modelIDPattern.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Repo extracts the owner and repository name from a GitHub URL.
func Repo(link string) (owner, name string, ok bool) {
	m := repoPattern.FindStringSubmatch(link)
	if m == nil {
		return "", "", false
	}
	name = strings.TrimSuffix(m[2], ".git")
	if name == "" {
		return "", "", false
	}
	return m[1], name, true
}

// Identifier extracts the artifact identifier for link under category c.
// Code identifiers are returned as "owner/repo".
func Identifier(c Category, link string) (string, bool) {
	switch c {
	case Dataset:
		return DatasetID(link)
	case Model:
		return ModelID(link)
	case Code:
		owner, name, ok := Repo(link)
		if !ok {
			return "", false
		}
		return owner + "/" + name, true
	default:
		return "", false
	}
}
