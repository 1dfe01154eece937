// Package output serializes a scored trim-parameter table to JSON and
// writes the fitted-curve PNGs, ported from figaro.py's makeResultJSON and
// saveResultOutput.
package output

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"figaro/internal/trim"
)

// Row is the JSON shape of one scored result, matching the object keys
// makeResultJSON emits: trimPosition, maxExpectedError,
// readRetentionPercent, score.
type Row struct {
	TrimPosition         [2]int     `json:"trimPosition"`
	MaxExpectedError     [2]int     `json:"maxExpectedError"`
	ReadRetentionPercent float64    `json:"readRetentionPercent"`
	Score                float64    `json:"score"`
}

func toRow(p trim.ParameterSet) Row {
	return Row{
		TrimPosition:         [2]int{p.ForwardTrim, p.ReverseTrim},
		MaxExpectedError:     [2]int{p.ForwardMaxExpectedError, p.ReverseMaxExpectedError},
		ReadRetentionPercent: roundTo(p.ReadRetention*100, 2),
		Score:                p.Score,
	}
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// MarshalResultTable renders the sorted result table as 4-space-indented
// JSON, matching makeResultJSON's output shape.
func MarshalResultTable(results []trim.ParameterSet) ([]byte, error) {
	rows := make([]Row, len(results))
	for i, r := range results {
		rows[i] = toRow(r)
	}
	return json.MarshalIndent(rows, "", "    ")
}

// WriteResultTable writes the JSON result table to outputDir/fileName.
func WriteResultTable(outputDir, fileName string, results []trim.ParameterSet) error {
	data, err := MarshalResultTable(results)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outputDir, fileName), data, 0644)
}

// WritePlots writes the forward/reverse expected-error PNGs, matching
// saveResultOutput's forwardExpectedError.png/reverseExpectedError.png.
func WritePlots(outputDir string, forwardPNG, reversePNG []byte) error {
	if forwardPNG != nil {
		if err := os.WriteFile(filepath.Join(outputDir, "forwardExpectedError.png"), forwardPNG, 0644); err != nil {
			return err
		}
	}
	if reversePNG != nil {
		if err := os.WriteFile(filepath.Join(outputDir, "reverseExpectedError.png"), reversePNG, 0644); err != nil {
			return err
		}
	}
	return nil
}
