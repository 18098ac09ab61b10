package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.IndicatorPath != "unicef_indicator_2.csv" || c.MetadataPath != "unicef_metadata.csv" {
		t.Fatalf("unexpected input defaults: %+v", c)
	}
	if c.TopN != 10 || c.ZeroBase != ZeroBaseSkip || c.OutputDir != "." {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if c.AssetsHost != DefaultAssetsHost || !strings.HasPrefix(c.AssetsHost, "https://cdn.jsdelivr.net/") {
		t.Fatalf("unexpected assets host: %q", c.AssetsHost)
	}
	if c.Columns.GDPPerCapita != "GDP per capita (constant 2015 US$)" {
		t.Fatalf("unexpected gdp column: %q", c.Columns.GDPPerCapita)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	p := filepath.Join(dir, "vaxviz.yaml")
	body := "top_n: 5\nzero_base: error\ncolumns:\n  time_period: year\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("VAXVIZ_OUTPUT_DIR", "charts")
	c, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.TopN != 5 || c.ZeroBase != ZeroBaseError {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.Columns.TimePeriod != "year" {
		t.Fatalf("nested column not applied: %q", c.Columns.TimePeriod)
	}
	if c.Columns.CountryCode != "alpha_3_code" {
		t.Fatalf("nested default lost: %q", c.Columns.CountryCode)
	}
	if c.OutputDir != "charts" {
		t.Fatalf("env override not applied: %q", c.OutputDir)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "c.yaml")
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	c.TopN = 3
	c.Snapshots = true
	if err := Save(c, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.TopN != 3 || !got.Snapshots {
		t.Fatalf("round trip lost values: %+v", got)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Global)
	}{
		{"zero base", func(c *Global) { c.ZeroBase = "clamp" }},
		{"top n", func(c *Global) { c.TopN = 0 }},
		{"paths", func(c *Global) { c.MetadataPath = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Global{IndicatorPath: "a.csv", MetadataPath: "b.csv", TopN: 10, ZeroBase: ZeroBaseSkip}
			tc.mut(c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoadMissingExplicitFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing explicit config should not fail: %v", err)
	}
	if c.TopN != 10 || c.OutputDir != "." {
		t.Fatalf("defaults not applied: %+v", c)
	}
}
