// Package plot renders learned value functions and learning curves as images.
package plot

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/lox/easy21/internal/fileutil"
	"github.com/lox/easy21/internal/game"
	"github.com/lox/easy21/internal/learn"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	width  = 8 * vg.Inch
	height = 6 * vg.Inch
)

// Series is one named line.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// ValueFunction plots V*(player sum) with one line per dealer card. Leaving
// dealerCards empty plots all ten.
func ValueFunction(q *learn.QTable, path string, dealerCards ...int) error {
	if len(dealerCards) == 0 {
		for d := 1; d <= learn.DealerCards; d++ {
			dealerCards = append(dealerCards, d)
		}
	}

	series := make([]Series, 0, len(dealerCards))
	for _, d := range dealerCards {
		if d < 1 || d > learn.DealerCards {
			return fmt.Errorf("dealer card %d out of range", d)
		}
		s := Series{Name: fmt.Sprintf("dealer %d", d)}
		for p := 1; p <= learn.PlayerSums; p++ {
			s.X = append(s.X, float64(p))
			s.Y = append(s.Y, q.V(game.State{PlayerSum: p, DealerCard: d}))
		}
		series = append(series, s)
	}
	return Lines(path, "Optimal value function", "Player sum", "V*", series...)
}

// Lines writes a line chart to path. The image format follows the file
// extension (png, svg or pdf).
func Lines(path, title, xLabel, yLabel string, series ...Series) error {
	format, err := formatOf(path)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true

	for i, s := range series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %q: %d x values for %d y values", s.Name, len(s.X), len(s.Y))
		}
		points := make(plotter.XYs, len(s.X))
		for j := range s.X {
			points[j] = plotter.XY{X: s.X[j], Y: s.Y[j]}
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}
	p.Add(plotter.NewGrid())

	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, err := wt.WriteTo(w)
		return err
	})
}

func formatOf(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "png", "svg", "pdf":
		return ext, nil
	case "":
		return "", fmt.Errorf("%s: missing image extension", path)
	default:
		return "", fmt.Errorf("%s: unsupported image format %q", path, ext)
	}
}
