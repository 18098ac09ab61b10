package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/vaxviz-cli/internal/aggregate"
	"github.com/KaramelBytes/vaxviz-cli/internal/dataset"
)

const testHost = "https://cdn.example.test/echarts/"

func f64(v float64) *float64 { return &v }

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func sampleSeries() []aggregate.TimeSeriesPoint {
	return []aggregate.TimeSeriesPoint{
		{TimePeriod: 2010, Coverage: f64(15), LifeExpectancy: f64(70), CoverageN: 2, LifeN: 1},
		{TimePeriod: 2011, Coverage: f64(30), CoverageN: 1},
		{TimePeriod: 2012, Coverage: f64(40), LifeExpectancy: f64(71), CoverageN: 1, LifeN: 1},
	}
}

func TestTimeSeriesHTML(t *testing.T) {
	o := Options{OutputDir: t.TempDir(), AssetsHost: testHost}
	path, err := TimeSeries(sampleSeries(), o)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if filepath.Base(path) != TimeSeriesFile {
		t.Fatalf("unexpected path %s", path)
	}
	html := readFile(t, path)
	for _, want := range []string{TimeSeriesTitle, testHost + "echarts.min.js", "Coverage", "LifeExpectancy", "2011", `"-"`, timeSeriesID} {
		if !strings.Contains(html, want) {
			t.Errorf("time series html missing %q", want)
		}
	}
}

func TestDefaultAssetsHostIsRemote(t *testing.T) {
	path, err := Bar(nil, 10, Options{OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := readFile(t, path)
	if !strings.Contains(html, "<script src=\"https://") || !strings.Contains(html, "echarts.min.js") {
		t.Fatalf("expected a CDN script tag, got:\n%s", html)
	}
}

func TestChoroplethMapsCodes(t *testing.T) {
	snap := aggregate.Snapshot{Year: 2020, Rows: []dataset.MergedRecord{
		{CountryCode: "USA", TimePeriod: 2020, ObsValue: f64(90)},
		{CountryCode: "COD", TimePeriod: 2020, ObsValue: f64(55)},
		{CountryCode: "ZZZ", TimePeriod: 2020, ObsValue: f64(10)},
		{CountryCode: "FRA", TimePeriod: 2020},
		{CountryCode: "", TimePeriod: 2020, ObsValue: f64(1234.5)},
	}}
	path, unmapped, err := Choropleth(snap, Options{OutputDir: t.TempDir(), AssetsHost: testHost})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(unmapped) != 1 || unmapped[0] != "ZZZ" {
		t.Fatalf("unmapped = %v, want [ZZZ]", unmapped)
	}
	html := readFile(t, path)
	for _, want := range []string{"Global RCV1 Coverage (2020)", "United States", "Dem. Rep. Congo", "ZZZ", "world", "#440154", "#fde725"} {
		if !strings.Contains(html, want) {
			t.Errorf("map html missing %q", want)
		}
	}
	if strings.Contains(html, "France") {
		t.Errorf("null observation should not be plotted")
	}
	if strings.Contains(html, "1234.5") {
		t.Errorf("row without a country code should not be plotted")
	}
}

func TestChoroplethEmptySnapshot(t *testing.T) {
	path, unmapped, err := Choropleth(aggregate.Snapshot{}, Options{OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(unmapped) != 0 {
		t.Fatalf("unexpected unmapped codes: %v", unmapped)
	}
	html := readFile(t, path)
	if !strings.Contains(html, "Global RCV1 Coverage") || strings.Contains(html, "Global RCV1 Coverage (") {
		t.Fatalf("empty map title should omit the year")
	}
}

func TestScatterTrendLine(t *testing.T) {
	withFit := aggregate.ScatterSummary{
		Points: []aggregate.Point{{CountryCode: "AAA", X: 1, Y: 3}, {CountryCode: "BBB", X: 3, Y: 7}},
		Fit:    &aggregate.Fit{Intercept: 1, Slope: 2, RSquared: 1, N: 2, MinX: 1, MaxX: 3},
	}
	dir := t.TempDir()
	path, err := Scatter(withFit, Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := readFile(t, path)
	if !strings.Contains(html, ScatterTitle) || !strings.Contains(html, "OLS trend") {
		t.Fatalf("scatter html missing title or trend line")
	}

	single := aggregate.ScatterSummary{
		Points: []aggregate.Point{{CountryCode: "AAA", X: 1, Y: 3}},
		FitErr: aggregate.ErrTooFewPoints,
	}
	path, err = Scatter(single, Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("render single point: %v", err)
	}
	if html := readFile(t, path); strings.Contains(html, "OLS trend") {
		t.Fatalf("undefined fit should not draw a trend line")
	}
}

func TestBarTitleTracksN(t *testing.T) {
	top := []aggregate.GrowthRecord{
		{CountryCode: "AAA", Growth: 50},
		{CountryCode: "BBB", Growth: 0},
	}
	path, err := Bar(top, 5, Options{OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := readFile(t, path)
	for _, want := range []string{"Top 5 Countries by Vaccination Coverage Growth", "% Growth", "AAA", "BBB"} {
		if !strings.Contains(html, want) {
			t.Errorf("bar html missing %q", want)
		}
	}
	if BarTitle(10) != "Top 10 Countries by Vaccination Coverage Growth" {
		t.Fatalf("unexpected default title %q", BarTitle(10))
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	pa, err := TimeSeries(sampleSeries(), Options{OutputDir: a})
	if err != nil {
		t.Fatal(err)
	}
	pb, err := TimeSeries(sampleSeries(), Options{OutputDir: b})
	if err != nil {
		t.Fatal(err)
	}
	if readFile(t, pa) != readFile(t, pb) {
		t.Fatalf("two renders of the same data differ")
	}
}

func TestRegionName(t *testing.T) {
	if name, ok := RegionName(" civ "); !ok || name != "Côte d'Ivoire" {
		t.Fatalf("RegionName(civ) = %q, %v", name, ok)
	}
	if name, ok := RegionName("XYZ"); ok || name != "XYZ" {
		t.Fatalf("RegionName(XYZ) = %q, %v", name, ok)
	}
}

func TestSnapshotsWritePNG(t *testing.T) {
	dir := t.TempDir()
	sc := aggregate.ScatterSummary{
		Points: []aggregate.Point{{X: 1, Y: 3}, {X: 2, Y: 5}, {X: 3, Y: 7}},
		Fit:    &aggregate.Fit{Intercept: 1, Slope: 2, RSquared: 1, N: 3, MinX: 1, MaxX: 3},
	}
	top := []aggregate.GrowthRecord{{CountryCode: "AAA", Growth: 50}, {CountryCode: "BBB", Growth: -10}}
	paths, err := Snapshots(sampleSeries(), sc, top, 10, Options{OutputDir: dir})
	if err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 snapshots, got %v", paths)
	}
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if !bytes.HasPrefix(b, []byte("\x89PNG")) {
			t.Fatalf("%s is not a PNG", p)
		}
	}
}

func TestSnapshotsEmptyData(t *testing.T) {
	paths, err := Snapshots(nil, aggregate.ScatterSummary{}, nil, 10, Options{OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("snapshots on empty data: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 snapshots, got %v", paths)
	}
}

func TestSegmentsSplitAtGaps(t *testing.T) {
	runs := segments(sampleSeries(), func(p aggregate.TimeSeriesPoint) *float64 { return p.LifeExpectancy })
	if len(runs) != 2 || len(runs[0]) != 1 || len(runs[1]) != 1 {
		t.Fatalf("unexpected runs: %v", runs)
	}
	if runs[1][0].X != 2012 {
		t.Fatalf("second run should start at 2012, got %v", runs[1][0].X)
	}
}
