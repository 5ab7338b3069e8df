// Package chart draws the correct/wrong split of a submitted attempt.
package chart

import (
	"bytes"
	"fmt"
	"math"
	"strings"
)

const (
	size        = 300
	radius      = 80
	correctFill = "#27ae60"
	wrongFill   = "#e74c3c"
	labelFill   = "#2c3e50"
)

// Percentages returns the correct and wrong shares out of correct+wrong.
func Percentages(correct, wrong int) (float64, float64) {
	total := correct + wrong
	if total <= 0 {
		return 0, 0
	}
	return float64(correct) / float64(total) * 100, float64(wrong) / float64(total) * 100
}

// Render returns an SVG pie chart with a green correct slice and a red wrong slice.
func Render(correct, wrong int) []byte {
	if correct < 0 {
		correct = 0
	}
	if wrong < 0 {
		wrong = 0
	}
	correctPct, wrongPct := Percentages(correct, wrong)
	cx, cy := float64(size)/2, float64(size)/2

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, size, size, size, size)
	buf.WriteString("\n")

	switch {
	case correct+wrong == 0:
		fmt.Fprintf(&buf, `  <circle cx="%g" cy="%g" r="%d" fill="none" stroke="%s"/>`+"\n", cx, cy, radius, labelFill)
	case wrong == 0:
		fmt.Fprintf(&buf, `  <circle cx="%g" cy="%g" r="%d" fill="%s"/>`+"\n", cx, cy, radius, correctFill)
	case correct == 0:
		fmt.Fprintf(&buf, `  <circle cx="%g" cy="%g" r="%d" fill="%s"/>`+"\n", cx, cy, radius, wrongFill)
	default:
		end := correctPct / 100 * 2 * math.Pi
		buf.WriteString(slice(cx, cy, 0, end, correctFill))
		buf.WriteString(slice(cx, cy, end, 2*math.Pi, wrongFill))
	}

	fmt.Fprintf(&buf, `  <text x="%g" y="%g" text-anchor="middle" font-family="Arial" font-weight="bold" font-size="16" fill="%s">Correct: %d (%.1f%%)</text>`+"\n",
		cx, cy-100, labelFill, correct, correctPct)
	fmt.Fprintf(&buf, `  <text x="%g" y="%g" text-anchor="middle" font-family="Arial" font-weight="bold" font-size="16" fill="%s">Wrong: %d (%.1f%%)</text>`+"\n",
		cx, cy+120, labelFill, wrong, wrongPct)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// slice draws a clockwise wedge from angle start to end (radians, 0 = 3 o'clock).
func slice(cx, cy, start, end float64, fill string) string {
	x1, y1 := cx+radius*math.Cos(start), cy+radius*math.Sin(start)
	x2, y2 := cx+radius*math.Cos(end), cy+radius*math.Sin(end)
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	return fmt.Sprintf(`  <path d="M %.2f %.2f L %.2f %.2f A %d %d 0 %d 1 %.2f %.2f Z" fill="%s"/>`+"\n",
		cx, cy, x1, y1, radius, radius, large, x2, y2, fill)
}

// Bar renders a one-line text chart of width cells, '#' for correct and '.' for wrong.
func Bar(correct, wrong, width int) string {
	if width <= 0 {
		width = 20
	}
	correctPct, wrongPct := Percentages(correct, wrong)
	filled := int(math.Round(correctPct / 100 * float64(width)))
	empty := width - filled
	if correct+wrong == 0 {
		filled, empty = 0, width
	}
	return fmt.Sprintf("[%s%s] correct %d (%.1f%%) / wrong %d (%.1f%%)",
		strings.Repeat("#", filled), strings.Repeat(".", empty), correct, correctPct, wrong, wrongPct)
}
