// Package render turns aggregated indicator data into standalone HTML charts
// and optional PNG snapshots.
package render

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/KaramelBytes/vaxviz-cli/internal/utils"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Artifact file names written into the output directory.
const (
	TimeSeriesFile = "time_series.html"
	MapFile        = "map.html"
	ScatterFile    = "scatter.html"
	BarFile        = "bar.html"
)

// Fixed chart ids keep repeated renders byte-identical.
const (
	timeSeriesID = "vaxviz_time_series"
	mapID        = "vaxviz_map"
	scatterID    = "vaxviz_scatter"
	barID        = "vaxviz_bar"
)

// Options controls where charts are written and where they load ECharts from.
type Options struct {
	OutputDir string
	// AssetsHost is the base URL of the ECharts scripts. Empty falls back
	// to the go-echarts asset host.
	AssetsHost string
}

// Path joins name onto the output directory.
func (o Options) Path(name string) string {
	dir := o.OutputDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}

func (o Options) init(title, id string) opts.Initialization {
	return opts.Initialization{
		PageTitle:  title,
		ChartID:    id,
		AssetsHost: o.AssetsHost,
		Width:      "1100px",
		Height:     "620px",
	}
}

type renderer interface {
	Render(w io.Writer) error
}

// write renders the chart fully in memory before touching the file system,
// so a failed render never leaves a partial artifact.
func write(path string, c renderer) error {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
