package accounts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cleared-dev/auditsim/internal/model"
)

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byCode   map[string]model.Account
}

// NewService creates a Service from a slice of accounts. Later duplicates of
// a code are dropped so the chart stays unique by code.
func NewService(accounts []model.Account) *Service {
	byCode := make(map[string]model.Account, len(accounts))
	unique := make([]model.Account, 0, len(accounts))
	for _, a := range accounts {
		if _, dup := byCode[a.Code]; dup {
			continue
		}
		byCode[a.Code] = a
		unique = append(unique, a)
	}
	return &Service{accounts: unique, byCode: byCode}
}

// FromChart creates a Service over a ChartOfAccounts.
func FromChart(chart model.ChartOfAccounts) *Service {
	return NewService(chart.Accounts)
}

// Path returns the conventional chart location under a workspace root.
func Path(root string) string {
	return filepath.Join(root, "accounts", "chart-of-accounts.csv")
}

// Load reads chart-of-accounts.csv from a workspace root and returns a Service.
func Load(root string) (*Service, error) {
	return LoadFile(Path(root))
}

// LoadFile reads a chart-of-accounts CSV at path.
func LoadFile(path string) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	return NewService(accts), nil
}

// All returns all accounts in chart order.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Chart wraps the accounts in a ChartOfAccounts for companyID.
func (s *Service) Chart(companyID string) model.ChartOfAccounts {
	accts := make([]model.Account, len(s.accounts))
	copy(accts, s.accounts)
	return model.ChartOfAccounts{CompanyID: companyID, Accounts: accts}
}

// Get returns an account by code.
func (s *Service) Get(code string) (model.Account, bool) {
	a, ok := s.byCode[code]
	return a, ok
}

// Exists reports whether an account code exists.
func (s *Service) Exists(code string) bool {
	_, ok := s.byCode[code]
	return ok
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// FindByName returns the first account of the given type whose name contains
// any of the keywords (case-insensitive).
func (s *Service) FindByName(accountType model.AccountType, keywords ...string) (model.Account, bool) {
	for _, a := range s.ByType(accountType) {
		name := strings.ToLower(a.Name)
		for _, kw := range keywords {
			if strings.Contains(name, strings.ToLower(kw)) {
				return a, true
			}
		}
	}
	return model.Account{}, false
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv.
func (s *Service) Save(root string) error {
	dir := filepath.Join(root, "accounts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	f, err := os.Create(Path(root))
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	return nil
}
