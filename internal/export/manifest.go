package export

import (
	"fmt"
	"time"

	"github.com/KaramelBytes/vaxviz-cli/internal/aggregate"
	"github.com/KaramelBytes/vaxviz-cli/internal/utils"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ManifestFile is written next to the charts on every run.
const ManifestFile = "manifest.yaml"

// Manifest records what a run read and produced.
type Manifest struct {
	RunID       string         `yaml:"run_id"`
	GeneratedAt time.Time      `yaml:"generated_at"`
	Inputs      ManifestInputs `yaml:"inputs"`
	Rows        ManifestRows   `yaml:"rows"`
	LatestYear  int            `yaml:"latest_year,omitempty"`
	Regression  ManifestFit    `yaml:"regression"`
	Growth      ManifestGrowth `yaml:"growth"`
	Unmapped    []string       `yaml:"unmapped_countries,omitempty"`
	Artifacts   []string       `yaml:"artifacts"`
}

// ManifestInputs are the input files of the run.
type ManifestInputs struct {
	Indicator string `yaml:"indicator"`
	Metadata  string `yaml:"metadata"`
	Sheet     string `yaml:"sheet,omitempty"`
}

// ManifestRows counts rows at each stage.
type ManifestRows struct {
	Indicator     int `yaml:"indicator"`
	Metadata      int `yaml:"metadata"`
	Merged        int `yaml:"merged"`
	Unmatched     int `yaml:"unmatched"`
	DuplicateKeys int `yaml:"duplicate_metadata_keys"`
	// MissingCode counts indicator rows kept without a country code.
	MissingCode   int `yaml:"missing_country_code"`
}

// ManifestFit is either the fitted coefficients or the reason there are none.
type ManifestFit struct {
	Points    int      `yaml:"points"`
	Intercept *float64 `yaml:"intercept,omitempty"`
	Slope     *float64 `yaml:"slope,omitempty"`
	RSquared  *float64 `yaml:"r_squared,omitempty"`
	Undefined string   `yaml:"undefined,omitempty"`
}

// ManifestGrowth summarizes the growth ranking.
type ManifestGrowth struct {
	TopN               int      `yaml:"top_n"`
	Ranked             int      `yaml:"ranked"`
	ZeroBasePolicy     string   `yaml:"zero_base_policy"`
	ZeroBaseSkipped    []string `yaml:"zero_base_skipped,omitempty"`
	WithoutObservation []string `yaml:"without_observation,omitempty"`
}

// NewManifest starts a manifest with a fresh run id.
func NewManifest(now time.Time) *Manifest {
	return &Manifest{RunID: uuid.NewString(), GeneratedAt: now.UTC()}
}

// FitSummary converts a scatter summary into its manifest entry.
func FitSummary(s aggregate.ScatterSummary) ManifestFit {
	mf := ManifestFit{Points: len(s.Points)}
	if s.Fit == nil {
		mf.Undefined = "no data"
		if s.FitErr != nil {
			mf.Undefined = s.FitErr.Error()
		}
		return mf
	}
	f := *s.Fit
	mf.Intercept, mf.Slope, mf.RSquared = &f.Intercept, &f.Slope, &f.RSquared
	return mf
}

// WriteManifest writes m as YAML to path.
func WriteManifest(path string, m *Manifest) error {
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
