package spending

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlot(t *testing.T) {
	p, e := NewPlot(PlotTitle("This Is A Test"), PlotXlabel("X-Axis"),
		PlotYlabel("Y-Axis"), PlotLegend(true), PlotHeight(800), PlotWidth(700))
	require.Nil(t, e)
	assert.Equal(t, 800.0, p.Lay.Height)
	assert.Equal(t, 700.0, p.Lay.Width)
	assert.Equal(t, "X-Axis", p.Lay.Xaxis.Title.Text)
	assert.Equal(t, "Y-Axis", p.Lay.Yaxis.Title.Text)
	assert.NotNil(t, p.Lay.Legend)
	assert.Equal(t, 1, p.Panels())

	assert.NotNil(t, PlotHeight(10)(p))
	assert.NotNil(t, PlotWidth(-1)(p))

	_, e = NewPlot(PlotPanels(0))
	assert.NotNil(t, e)
}

func TestPlot_AddSeries(t *testing.T) {
	p, e := NewPlot(PlotPanels(2))
	require.Nil(t, e)
	assert.Equal(t, 2, p.Panels())
	require.NotNil(t, p.Lay.Grid)

	s := Series{Name: "G01", Group: "G01", Color: "#4C72B0", Legend: true,
		X: []float64{2000, 2001, 2002}, Y: []float64{1, math.NaN(), 3}}
	require.Nil(t, p.AddSeries(0, s))

	s.Legend = false
	require.Nil(t, p.AddSeries(1, s))

	assert.NotNil(t, p.AddSeries(2, s))
	assert.NotNil(t, p.AddSeries(0, Series{X: []float64{1}}))
	assert.NotNil(t, PlotPanels(3)(p))

	require.Len(t, p.Fig.Data, 2)
	top := p.Fig.Data[0].(*grob.Scatter)
	bottom := p.Fig.Data[1].(*grob.Scatter)

	assert.Equal(t, []float64{2000, 2002}, top.X)
	assert.Equal(t, []float64{1, 3}, top.Y)
	assert.Equal(t, "y", top.Yaxis)
	assert.Equal(t, "y2", bottom.Yaxis)
	assert.Equal(t, grob.True, top.Showlegend)
	assert.Equal(t, grob.False, bottom.Showlegend)
}

func TestPlotPanelLabel(t *testing.T) {
	p, e := NewPlot(PlotPanels(2), PlotPanelLabel(0, "top"), PlotPanelLabel(1, "bottom"))
	require.Nil(t, e)

	anns, ok := p.Lay.Annotations.([]map[string]any)
	require.True(t, ok)
	require.Len(t, anns, 2)
	assert.Equal(t, "top", anns[0]["text"])
	assert.Equal(t, 0.75, anns[0]["y"])
	assert.Equal(t, "bottom", anns[1]["text"])
	assert.Equal(t, 0.25, anns[1]["y"])
	assert.Equal(t, "paper", anns[1]["yref"])
	assert.Equal(t, -90, anns[1]["textangle"])

	_, e = NewPlot(PlotPanels(2), PlotPanelLabel(2, "none"))
	assert.NotNil(t, e)

	// panels must be set first
	_, e = NewPlot(PlotPanelLabel(1, "early"), PlotPanels(2))
	assert.NotNil(t, e)
}

func TestPlot_Save(t *testing.T) {
	p, _ := NewPlot()
	_ = p.AddSeries(0, Series{Name: "a", X: []float64{1, 2}, Y: []float64{3, 4}})

	fn := filepath.Join(t.TempDir(), "plot.html")
	require.Nil(t, p.Save(fn))
	info, e := os.Stat(fn)
	require.Nil(t, e)
	assert.Greater(t, info.Size(), int64(0))

	assert.NotNil(t, p.Save(filepath.Join(t.TempDir(), "plot.png")))
	assert.NotNil(t, p.Save(filepath.Join(t.TempDir(), "nope", "plot.html")))
}
