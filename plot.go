package spending

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/MetalBlueberry/go-plotly/offline"
)

const minPlotSize = 100.0

// Plot is a plotly figure of one or more panels stacked vertically that share the x axis
type Plot struct {
	Fig *grob.Fig
	Lay *grob.Layout

	panels int
	series int
	labels []map[string]any
}

// PlotOpt sets a property of a Plot
type PlotOpt func(p *Plot) error

func NewPlot(opts ...PlotOpt) (*Plot, error) {
	fig := &grob.Fig{}
	lay := &grob.Layout{}
	fig.Layout = lay
	p := &Plot{Fig: fig, Lay: lay, panels: 1}

	for _, opt := range opts {
		if e := opt(p); e != nil {
			return nil, e
		}
	}

	return p, nil
}

// *********** Options ***********

func PlotWidth(w float64) PlotOpt {
	return func(p *Plot) error {
		if w < minPlotSize {
			return fmt.Errorf("plot width must be at least %0.0f", minPlotSize)
		}

		p.Lay.Width = w
		return nil
	}
}

func PlotHeight(h float64) PlotOpt {
	return func(p *Plot) error {
		if h < minPlotSize {
			return fmt.Errorf("plot height must be at least %0.0f", minPlotSize)
		}

		p.Lay.Height = h
		return nil
	}
}

func PlotTitle(title string) PlotOpt {
	return func(p *Plot) error {
		p.Lay.Title = &grob.LayoutTitle{Text: title}
		return nil
	}
}

// PlotLegend shows or hides the legend. A shown legend runs horizontally above the panels.
func PlotLegend(show bool) PlotOpt {
	return func(p *Plot) error {
		if !show {
			p.Lay.Showlegend = grob.False
			return nil
		}

		p.Lay.Showlegend = grob.True
		p.Lay.Legend = &grob.LayoutLegend{
			Orientation: grob.LayoutLegendOrientationH,
			X:           0,
			Y:           1.08,
		}

		return nil
	}
}

func PlotXlabel(label string) PlotOpt {
	return func(p *Plot) error {
		if p.Lay.Xaxis == nil {
			p.Lay.Xaxis = &grob.LayoutXaxis{}
		}

		p.Lay.Xaxis.Title = &grob.LayoutXaxisTitle{Text: label}
		return nil
	}
}

// PlotYlabel labels the y axis of the top panel
func PlotYlabel(label string) PlotOpt {
	return func(p *Plot) error {
		if p.Lay.Yaxis == nil {
			p.Lay.Yaxis = &grob.LayoutYaxis{}
		}

		p.Lay.Yaxis.Title = &grob.LayoutYaxisTitle{Text: label}
		return nil
	}
}

// PlotPanels lays the figure out as n panels, top to bottom, sharing the x axis
func PlotPanels(n int) PlotOpt {
	return func(p *Plot) error {
		if n < 1 {
			return fmt.Errorf("plot needs at least one panel, got %d", n)
		}

		if p.series > 0 {
			return fmt.Errorf("cannot change panels after series are added")
		}

		p.panels = n
		if n == 1 {
			p.Lay.Grid = nil
			return nil
		}

		p.Lay.Grid = &grob.LayoutGrid{
			Rows:    int64(n),
			Columns: 1,
			Pattern: grob.LayoutGridPatternCoupled,
		}

		return nil
	}
}

// PlotPanelLabel writes a y-axis label beside panel (0 = top). Apply it after PlotPanels.
func PlotPanelLabel(panel int, label string) PlotOpt {
	return func(p *Plot) error {
		if panel < 0 || panel >= p.panels {
			return fmt.Errorf("panel %d out of range, plot has %d", panel, p.panels)
		}

		p.labels = append(p.labels, map[string]any{
			"text":      label,
			"textangle": -90,
			"showarrow": false,
			"xref":      "paper",
			"yref":      "paper",
			"x":         -0.08,
			"xanchor":   "right",
			"y":         1 - (float64(panel)+0.5)/float64(p.panels),
			"yanchor":   "middle",
		})
		p.Lay.Annotations = p.labels

		return nil
	}
}

// *********** Methods ***********

func (p *Plot) Panels() int {
	return p.panels
}

// Series is one line+marker trace
type Series struct {
	Name   string
	Group  string
	Color  string
	Legend bool

	X []float64
	Y []float64
}

// AddSeries draws s in panel (0 = top). Points where x or y is NaN are skipped.
func (p *Plot) AddSeries(panel int, s Series) error {
	if panel < 0 || panel >= p.panels {
		return fmt.Errorf("panel %d out of range, plot has %d", panel, p.panels)
	}

	if len(s.X) != len(s.Y) {
		return fmt.Errorf("series %s: x has %d points, y has %d", s.Name, len(s.X), len(s.Y))
	}

	var x, y []float64
	for ind := range s.X {
		if math.IsNaN(s.X[ind]) || math.IsNaN(s.Y[ind]) {
			continue
		}

		x = append(x, s.X[ind])
		y = append(y, s.Y[ind])
	}

	tr := &grob.Scatter{
		Type:        grob.TraceTypeScatter,
		Name:        s.Name,
		Legendgroup: s.Group,
		X:           x,
		Y:           y,
		Mode:        grob.ScatterModeLines + "+" + grob.ScatterModeMarkers,
		Line:        &grob.ScatterLine{Color: s.Color},
		Marker:      &grob.ScatterMarker{Color: s.Color},
		Xaxis:       "x",
		Yaxis:       axisName("y", panel),
		Showlegend:  grob.False,
	}

	if s.Legend {
		tr.Showlegend = grob.True
	}

	p.Fig.AddTraces(tr)
	p.series++

	return nil
}

// Save writes the figure to fileName as a self-contained html page
func (p *Plot) Save(fileName string) error {
	if filepath.Ext(fileName) != ".html" {
		return fmt.Errorf("plots save as .html, got %s", fileName)
	}

	if dir := filepath.Dir(fileName); dir != "." {
		if _, e := os.Stat(dir); e != nil {
			return e
		}
	}

	offline.ToHtml(p.Fig, fileName)

	// ToHtml does not report write failures
	if _, e := os.Stat(fileName); e != nil {
		return fmt.Errorf("plot not written to %s: %w", fileName, e)
	}

	return nil
}

// Show opens the figure in browser ("xdg-open" if empty). With no fileName a temp file is used and removed.
func (p *Plot) Show(browser, fileName string) error {
	const nameLength = 8

	if browser == "" {
		browser = "xdg-open"
	}

	tmpFile := false
	if fileName == "" {
		fileName = tempFile("html", nameLength)
		tmpFile = true
	}

	if e := p.Save(fileName); e != nil {
		return e
	}

	cmd := exec.Command(browser, fileName)
	if e := cmd.Start(); e != nil {
		return e
	}

	time.Sleep(time.Second) // need to pause while browser loads graph

	if tmpFile {
		return os.Remove(fileName)
	}

	return nil
}

// *********** Helpers ***********

// axisName gives plotly's name for the axis of a panel: y, y2, y3...
func axisName(axis string, panel int) string {
	if panel == 0 {
		return axis
	}

	return fmt.Sprintf("%s%d", axis, panel+1)
}

// tempFile produces a random temp file name in the system's tmp location.
// The file has extension "ext". The file name begins with "tmp" has length 3 + length.
func tempFile(ext string, length int) string {
	return filepath.Join(os.TempDir(), "tmp"+randomLetters(length)+"."+ext)
}

func randomLetters(length int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"

	out := make([]byte, length)
	for ind := range out {
		n, e := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
		if e != nil {
			panic(e)
		}

		out[ind] = letters[n.Int64()]
	}

	return string(out)
}
