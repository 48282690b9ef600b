package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/cigar"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleMatch    = lipgloss.NewStyle().Foreground(colorGreen)
	styleMismatch = lipgloss.NewStyle().Foreground(colorRed)
	styleGap      = lipgloss.NewStyle().Foreground(colorDim)
	styleLabel    = lipgloss.NewStyle().Foreground(colorDim)
	styleNumber   = lipgloss.NewStyle().Foreground(colorCyan)
)

type columnClass int

const (
	classMatch columnClass = iota
	classMismatch
	classGap
)

func (k columnClass) style() lipgloss.Style {
	switch k {
	case classMatch:
		return styleMatch
	case classMismatch:
		return styleMismatch
	default:
		return styleGap
	}
}

func classify(op cigar.Op, q, t byte) columnClass {
	switch {
	case op != cigar.Match:
		return classGap
	case alignment.EqualFold(q, t):
		return classMatch
	default:
		return classMismatch
	}
}

// colorRow renders row[start:end] with runs of equal column class sharing
// one style.
func colorRow(row []byte, classes []columnClass, start, end int) string {
	var b strings.Builder
	for i := start; i < end; {
		j := i
		for j < end && classes[j] == classes[i] {
			j++
		}
		b.WriteString(classes[i].style().Render(string(row[i:j])))
		i = j
	}
	return b.String()
}

// renderAlignment draws the alignment in blocks of width columns. Without
// color it falls back to the plain block format.
func renderAlignment(a *alignment.Alignment, width int, color bool) string {
	if !color {
		return a.Format(width)
	}
	if width <= 0 {
		width = max(a.Length, 1)
	}

	ops := a.Ops()
	classes := make([]columnClass, len(ops))
	for k, op := range ops {
		classes[k] = classify(op, a.AlignedQuery[k], a.AlignedTarget[k])
	}
	match := a.MatchLine()

	var b strings.Builder
	qPos, tPos := a.QueryStart, a.TargetStart
	for start := 0; start < a.Length; start += width {
		end := min(start+width, a.Length)
		qNext, tNext := qPos, tPos
		for _, op := range ops[start:end] {
			if op.ConsumesQuery() {
				qNext++
			}
			if op.ConsumesReference() {
				tNext++
			}
		}
		fmt.Fprintf(&b, "%s %s %s %s\n", styleLabel.Render("Qry"), styleNumber.Render(fmt.Sprintf("%6d", qPos+1)), colorRow(a.AlignedQuery, classes, start, end), styleNumber.Render(fmt.Sprint(qNext)))
		fmt.Fprintf(&b, "    %6s %s\n", "", styleLabel.Render(match[start:end]))
		fmt.Fprintf(&b, "%s %s %s %s\n\n", styleLabel.Render("Tgt"), styleNumber.Render(fmt.Sprintf("%6d", tPos+1)), colorRow(a.AlignedTarget, classes, start, end), styleNumber.Render(fmt.Sprint(tNext)))
		qPos, tPos = qNext, tNext
	}
	fmt.Fprintf(&b, "%s %s\n", styleTitle.Render("Score:"), styleNumber.Render(fmt.Sprint(a.Score)))
	fmt.Fprintf(&b, "%s %.1f%%\n", styleTitle.Render("Identity:"), a.Identity*100)
	fmt.Fprintf(&b, "%s %s", styleTitle.Render("CIGAR:"), a.CIGAR)
	return b.String()
}

// renderTable lays out rows under a header with padded columns.
func renderTable(header []string, rows [][]string, color bool) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	line := func(cells []string, style *lipgloss.Style) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		s := strings.TrimRight(strings.Join(parts, "  "), " ")
		if style != nil && color {
			return style.Render(s)
		}
		return s
	}

	var b strings.Builder
	b.WriteString(line(header, &styleTitle))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(line(row, nil))
		b.WriteByte('\n')
	}
	return b.String()
}
