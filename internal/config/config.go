package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/auditsim/internal/detect"
	"github.com/cleared-dev/auditsim/internal/logger"
	"github.com/cleared-dev/auditsim/internal/model"
)

// DefaultFile is the config file name written by init and read by default.
const DefaultFile = "auditsim.yaml"

// EnvPrefix prefixes every environment override, e.g. AUDITSIM_INJECTION_ISSUE_COUNT.
const EnvPrefix = "AUDITSIM"

// Config represents the top-level auditsim.yaml configuration.
type Config struct {
	Company      CompanyConfig      `yaml:"company"`
	Injection    InjectionConfig    `yaml:"injection"`
	TrialBalance TrialBalanceConfig `yaml:"trial_balance" split_words:"true"`
	Detection    detect.Config      `yaml:"detection"`
	Log          logger.LogConfig   `yaml:"log"`
}

// CompanyConfig identifies the audited entity.
type CompanyConfig struct {
	ID         string `yaml:"id" validate:"required"`
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type" split_words:"true"`
}

// InjectionConfig controls how many issues a run plants.
type InjectionConfig struct {
	IssueCount int                   `yaml:"issue_count" split_words:"true" validate:"gte=0,lte=500"`
	Basis      model.AccountingBasis `yaml:"basis" validate:"omitempty,oneof=accrual cash"`
	Seed       *int64                `yaml:"seed,omitempty"` // nil seeds from the clock
}

// TrialBalanceConfig controls trial balance derivation.
type TrialBalanceConfig struct {
	Tolerance decimal.Decimal `yaml:"tolerance" validate:"gt=0"`
}

// Default returns a Config with sensible defaults for a new project.
func Default(companyID, entityType string) *Config {
	return &Config{
		Company: CompanyConfig{
			ID:         companyID,
			EntityType: entityType,
		},
		Injection: InjectionConfig{
			IssueCount: 5,
			Basis:      model.BasisAccrual,
		},
		TrialBalance: TrialBalanceConfig{
			Tolerance: decimal.New(1, -2),
		},
		Detection: detect.DefaultConfig(),
		Log:       logger.DefaultConfig(),
	}
}

// Load reads an auditsim.yaml file from disk. Keys missing from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("company", "service_company")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with AUDITSIM_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("applying environment: %w", err)
	}
	return nil
}

// Resolve loads path (or the defaults when path is empty, or when the file is
// missing and optional is set), applies environment overrides and validates.
func Resolve(path string, optional bool) (*Config, error) {
	cfg := Default("company", "service_company")
	if path != "" {
		loaded, err := Load(path)
		switch {
		case err == nil:
			cfg = loaded
		case optional && errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}
