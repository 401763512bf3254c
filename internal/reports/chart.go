package reports

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"healthscore-backend/internal/scoring"
	"healthscore-backend/internal/shared/storage/filestore"
)

const (
	chartSize   = 1000
	chartRadius = 360.0
	// Pillar scores top out at 100 but the chart grid extends to 120,
	// mirroring the report layout the answer-map authors calibrate against.
	chartScaleMax = 120.0
	gridLevels    = 10
)

// RadarChartRenderer draws the six pillar scores as a radar chart PNG.
type RadarChartRenderer struct {
	dir string
}

// NewRadarChartRenderer returns a renderer writing charts into dir.
func NewRadarChartRenderer(dir string) (*RadarChartRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("charts dir: %w", err)
	}
	return &RadarChartRenderer{dir: dir}, nil
}

// Render writes the chart for the given scores and returns its path.
func (r *RadarChartRenderer) Render(scores scoring.PillarScores) (string, error) {
	dc := gg.NewContext(chartSize, chartSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	cx := float64(chartSize) / 2
	cy := float64(chartSize) / 2
	labels := scoring.PillarLabels()
	values := scores.Values()

	angles := make([]float64, scoring.NumPillars)
	for i := range angles {
		angles[i] = 2 * math.Pi * float64(i) / scoring.NumPillars
	}

	drawGrid(dc, cx, cy, angles)
	drawAxisLabels(dc, cx, cy, angles, labels)
	drawTicks(dc, cx, cy)
	drawData(dc, cx, cy, angles, values)

	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("Your Health Score", cx, 40, 0.5, 0.5)

	name := filestore.UniqueName("chart", "png")
	path := filepath.Join(r.dir, name)
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save chart: %w", err)
	}
	return path, nil
}

// point converts a polar coordinate (fraction of chartRadius at angle) to
// canvas coordinates. Angle 0 points right, increasing counter-clockwise.
func point(cx, cy, fraction, angle float64) (float64, float64) {
	return cx + fraction*chartRadius*math.Cos(angle), cy - fraction*chartRadius*math.Sin(angle)
}

func drawGrid(dc *gg.Context, cx, cy float64, angles []float64) {
	dc.SetRGBA(0.5, 0.5, 0.5, 0.5)
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)

	// Radial spokes.
	for _, angle := range angles {
		x, y := point(cx, cy, 1, angle)
		dc.DrawLine(cx, cy, x, y)
		dc.Stroke()
	}

	// Concentric polygons every 12 units.
	for level := 1; level <= gridLevels; level++ {
		fraction := float64(level) / gridLevels
		for i, angle := range angles {
			x, y := point(cx, cy, fraction, angle)
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
		dc.Stroke()
	}

	dc.SetDash()
}

func drawAxisLabels(dc *gg.Context, cx, cy float64, angles []float64, labels [scoring.NumPillars]string) {
	dc.SetRGB(0, 0, 0)
	for i, angle := range angles {
		x, y := point(cx, cy, 1.12, angle)
		dc.DrawStringAnchored(labels[i], x, y, 0.5, 0.5)
	}
}

func drawTicks(dc *gg.Context, cx, cy float64) {
	dc.SetRGB(0.5, 0.5, 0.5)
	for level := 1; level <= gridLevels; level++ {
		fraction := float64(level) / gridLevels
		tick := fmt.Sprintf("%d", int(fraction*chartScaleMax))
		x, y := point(cx, cy, fraction, math.Pi/2)
		dc.DrawStringAnchored(tick, x-24, y, 1, 0.5)
	}
}

func drawData(dc *gg.Context, cx, cy float64, angles []float64, values [scoring.NumPillars]float64) {
	fractions := make([]float64, len(values))
	for i, v := range values {
		fractions[i] = v / chartScaleMax
	}

	tracePolygon(dc, cx, cy, angles, fractions)
	dc.SetRGBA(0x1a/255.0, 0xaf/255.0, 0x6c/255.0, 0.25)
	dc.FillPreserve()
	dc.SetRGB(0x1a/255.0, 0xaf/255.0, 0x6c/255.0)
	dc.SetLineWidth(3)
	dc.Stroke()

	// Square markers and value labels at each vertex.
	for i, angle := range angles {
		x, y := point(cx, cy, fractions[i], angle)
		dc.SetRGB(0x1a/255.0, 0xaf/255.0, 0x6c/255.0)
		dc.DrawRectangle(x-6, y-6, 12, 12)
		dc.Fill()

		lx, ly := point(cx, cy, fractions[i]+0.06, angle)
		label := fmt.Sprintf("%d", int(values[i]))
		w, h := dc.MeasureString(label)
		dc.SetRGBA(1, 1, 1, 0.7)
		dc.DrawRectangle(lx-w/2-4, ly-h/2-4, w+8, h+8)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(label, lx, ly, 0.5, 0.5)
	}
}

func tracePolygon(dc *gg.Context, cx, cy float64, angles, fractions []float64) {
	for i, angle := range angles {
		x, y := point(cx, cy, fractions[i], angle)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}
