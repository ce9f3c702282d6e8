package inject

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/auditsim/internal/model"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Issues []model.IssueType `yaml:"issues"`
}

var (
	catalogOnce sync.Once
	catalog     []model.IssueType
)

// Catalog returns the built-in issue catalog. It is parsed once per process
// and must not be modified by callers.
func Catalog() []model.IssueType {
	catalogOnce.Do(func() {
		issues, err := ParseCatalog(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded issue catalog: %v", err))
		}
		catalog = issues
	})
	return catalog
}

// ParseCatalog decodes a YAML issue catalog and checks every entry.
func ParseCatalog(data []byte) ([]model.IssueType, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	for i, it := range f.Issues {
		if it.Name == "" || it.Kind == "" || it.Category == "" {
			return nil, fmt.Errorf("issue %d: name, kind and category are required", i+1)
		}
		if it.Probability <= 0 || it.Probability > 1 {
			return nil, fmt.Errorf("issue %s: probability %v outside (0, 1]", it.Name, it.Probability)
		}
		if it.Basis != "" && it.Basis != model.BasisAccrual && it.Basis != model.BasisCash {
			return nil, fmt.Errorf("issue %s: unknown basis %q", it.Name, it.Basis)
		}
	}
	return f.Issues, nil
}

// Categories returns the distinct categories of issues in first-seen order.
func Categories(issues []model.IssueType) []model.IssueCategory {
	seen := make(map[model.IssueCategory]bool)
	var out []model.IssueCategory
	for _, it := range issues {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}

func forBasis(issues []model.IssueType, basis model.AccountingBasis) []model.IssueType {
	out := make([]model.IssueType, 0, len(issues))
	for _, it := range issues {
		if it.AppliesTo(basis) {
			out = append(out, it)
		}
	}
	return out
}
