// Package chart draws spending over time for a set of categories: spending in millions on top,
// spending as a percent of GDP below.
package chart

import (
	"fmt"
	"slices"
	"sort"

	sp "github.com/invertedv/spending"
	"github.com/invertedv/spending/melt"
)

const (
	// MillionCol and GDPCol are the long-table columns drawn in the top and bottom panels
	MillionCol = "million"
	GDPCol     = "gdp_percent"

	Width  = 700.0
	Height = 800.0

	TopLabel    = "Million €"
	BottomLabel = "% of GDP"
)

// Palette is the colour cycle. Category i is drawn in Palette[i % len(Palette)] in both panels.
var Palette = []string{
	"#4C72B0", "#DD8452", "#55A868", "#C44E52", "#8172B3",
	"#937860", "#DA8BC3", "#8C8C8C", "#CCB974", "#64B5CD",
}

// MainCategories are the codes of the top-level spending functions
var MainCategories = []string{"G01", "G02", "G03", "G04", "G05", "G06", "G07", "G08", "G09", "G10"}

// Render draws categories from the long table. labels[i] names categories[i] in the legend,
// which only the top panel contributes to. opts are applied after the defaults.
func Render(long *sp.Table, categories, labels []string, opts ...sp.PlotOpt) (*sp.Plot, error) {
	if e := check(long, categories, labels); e != nil {
		return nil, e
	}

	defaults := []sp.PlotOpt{
		sp.PlotWidth(Width),
		sp.PlotHeight(Height),
		sp.PlotPanels(2),
		sp.PlotLegend(true),
		sp.PlotYlabel(TopLabel),
		sp.PlotPanelLabel(1, BottomLabel),
		sp.PlotXlabel(melt.YearCol),
	}

	var (
		p *sp.Plot
		e error
	)
	if p, e = sp.NewPlot(append(defaults, opts...)...); e != nil {
		return nil, e
	}

	for ind, code := range categories {
		color := Palette[ind%len(Palette)]
		for panel, metric := range []string{MillionCol, GDPCol} {
			var x, y []float64
			if x, y, e = points(long, code, metric); e != nil {
				return nil, e
			}

			s := sp.Series{Name: labels[ind], Group: code, Color: color, Legend: panel == 0, X: x, Y: y}
			if e = p.AddSeries(panel, s); e != nil {
				return nil, e
			}
		}
	}

	return p, nil
}

// check validates the inputs before anything is drawn
func check(long *sp.Table, categories, labels []string) error {
	if len(categories) != len(labels) {
		return &sp.UsageError{Msg: fmt.Sprintf("%d categories but %d labels", len(categories), len(labels))}
	}

	if len(categories) == 0 {
		return &sp.UsageError{Msg: "no categories to plot"}
	}

	for _, nm := range []string{melt.CodeCol, melt.YearCol, MillionCol, GDPCol} {
		if long.Column(nm) == nil {
			return &sp.UsageError{Msg: fmt.Sprintf("long table has no %s column", nm)}
		}
	}

	codes, e := long.Column(melt.CodeCol).AsString()
	if e != nil {
		return e
	}

	for ind, code := range categories {
		if slices.Contains(categories[:ind], code) {
			return &sp.UsageError{Msg: fmt.Sprintf("category %s requested twice", code)}
		}

		if !slices.Contains(codes, code) {
			return &sp.UsageError{Msg: fmt.Sprintf("category %s not in data", code)}
		}
	}

	return nil
}

// points returns the (year, metric) pairs of code, ordered by year
func points(long *sp.Table, code, metric string) (x, y []float64, err error) {
	codes := long.Column(melt.CodeCol)
	years := long.Column(melt.YearCol)
	vals := long.Column(metric)

	var rows []int
	for row := range long.RowCount() {
		if codes.ElementString(row) == code {
			rows = append(rows, row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return years.Less(rows[i], rows[j]) })

	for _, row := range rows {
		var yr, v float64
		if yr, err = years.ElementFloat(row); err != nil {
			return nil, nil, err
		}

		if v, err = vals.ElementFloat(row); err != nil {
			return nil, nil, err
		}

		x, y = append(x, yr), append(y, v)
	}

	return x, y, nil
}
