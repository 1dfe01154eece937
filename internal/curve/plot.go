package curve

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RenderPNG draws the observed percentile envelope and the fitted curve on
// one plot and returns the PNG bytes, adapting the SVG-writer idiom from
// erunyan6-Lab_Buddy's fastqc_mimic (plot.New, plotter.NewLine, p.Legend) to
// a PNG writer, since the original renders a matplotlib PNG rather than an
// SVG.
func RenderPNG(direction string, percentile int, xValues, observed []float64, fit Fit) ([]byte, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s expected error, %s percentile", direction, ordinal(percentile))
	p.X.Label.Text = "position"
	p.Y.Label.Text = "expected error"

	observedPoints := make(plotter.XYs, len(xValues))
	predictedPoints := make(plotter.XYs, len(xValues))
	for i, x := range xValues {
		observedPoints[i].X = x
		observedPoints[i].Y = observed[i]
		predictedPoints[i].X = x
		predictedPoints[i].Y = fit.Value(x)
	}

	observedLine, err := plotter.NewLine(observedPoints)
	if err != nil {
		return nil, err
	}
	observedLine.LineStyle.Width = vg.Points(2)

	predictedLine, err := plotter.NewLine(predictedPoints)
	if err != nil {
		return nil, err
	}
	predictedLine.LineStyle.Width = vg.Points(2)
	predictedLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(observedLine, predictedLine)
	p.Legend.Add("observed", observedLine)
	p.Legend.Add(fmt.Sprintf("%s, r²=%.4f", fit.String(), fit.RSquared), predictedLine)
	p.Legend.Top = true

	writer, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
