package detect

// Config holds the thresholds of every analyzer.
type Config struct {
	Benford  BenfordConfig `yaml:"benford"`
	Outliers OutlierConfig `yaml:"outliers"`
	Timing   TimingConfig  `yaml:"timing"`
}

// BenfordConfig tunes the leading-digit test.
type BenfordConfig struct {
	// MinSample is the fewest non-zero amounts the test runs on.
	MinSample int `yaml:"min_sample" split_words:"true"`
	// ChiSquareCritical is the chi-square cutoff for 8 degrees of freedom.
	ChiSquareCritical float64 `yaml:"chi_square_critical" split_words:"true"`
	// MADThreshold is the mean absolute deviation treated as nonconforming.
	MADThreshold float64 `yaml:"mad_threshold" envconfig:"MAD_THRESHOLD"`
	// DigitTolerance is the proportion gap at which a single digit is named.
	DigitTolerance float64 `yaml:"digit_tolerance" split_words:"true"`
	// MaxAffected caps the entry IDs attached to the finding.
	MaxAffected int `yaml:"max_affected" split_words:"true"`
}

// OutlierConfig tunes the amount outlier test.
type OutlierConfig struct {
	ZThreshold       float64 `yaml:"z_threshold" split_words:"true"`
	IQRFactor        float64 `yaml:"iqr_factor" envconfig:"IQR_FACTOR"`
	MinAccountSample int     `yaml:"min_account_sample" split_words:"true"`
	MinSample        int     `yaml:"min_sample" split_words:"true"`
}

// TimingConfig tunes the daily activity spike test.
type TimingConfig struct {
	MinActiveDays   int     `yaml:"min_active_days" split_words:"true"`
	SpikeMultiplier float64 `yaml:"spike_multiplier" split_words:"true"`
	MinSpikeCount   int     `yaml:"min_spike_count" split_words:"true"`
}

// DefaultConfig returns the thresholds used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Benford: BenfordConfig{
			MinSample:         50,
			ChiSquareCritical: 15.507,
			MADThreshold:      0.015,
			DigitTolerance:    0.05,
			MaxAffected:       25,
		},
		Outliers: OutlierConfig{
			ZThreshold:       3.0,
			IQRFactor:        3.0,
			MinAccountSample: 10,
			MinSample:        10,
		},
		Timing: TimingConfig{
			MinActiveDays:   5,
			SpikeMultiplier: 3.0,
			MinSpikeCount:   5,
		},
	}
}

// withDefaults fills zero-valued thresholds from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Benford.MinSample <= 0 {
		c.Benford.MinSample = d.Benford.MinSample
	}
	if c.Benford.ChiSquareCritical <= 0 {
		c.Benford.ChiSquareCritical = d.Benford.ChiSquareCritical
	}
	if c.Benford.MADThreshold <= 0 {
		c.Benford.MADThreshold = d.Benford.MADThreshold
	}
	if c.Benford.DigitTolerance <= 0 {
		c.Benford.DigitTolerance = d.Benford.DigitTolerance
	}
	if c.Benford.MaxAffected <= 0 {
		c.Benford.MaxAffected = d.Benford.MaxAffected
	}
	if c.Outliers.ZThreshold <= 0 {
		c.Outliers.ZThreshold = d.Outliers.ZThreshold
	}
	if c.Outliers.IQRFactor <= 0 {
		c.Outliers.IQRFactor = d.Outliers.IQRFactor
	}
	if c.Outliers.MinAccountSample <= 1 {
		c.Outliers.MinAccountSample = d.Outliers.MinAccountSample
	}
	if c.Outliers.MinSample <= 1 {
		c.Outliers.MinSample = d.Outliers.MinSample
	}
	if c.Timing.MinActiveDays <= 0 {
		c.Timing.MinActiveDays = d.Timing.MinActiveDays
	}
	if c.Timing.SpikeMultiplier <= 0 {
		c.Timing.SpikeMultiplier = d.Timing.SpikeMultiplier
	}
	if c.Timing.MinSpikeCount <= 0 {
		c.Timing.MinSpikeCount = d.Timing.MinSpikeCount
	}
	return c
}
