package msa

import "github.com/aria-lang/bioalign/internal/alignment"

// ColumnConservation returns, for every column of equal-length rows, the
// fraction of rows carrying that column's most common non-gap residue.
// Residues compare case-insensitively. All-gap columns score 0.
func ColumnConservation(rows [][]byte) []float64 {
	if len(rows) == 0 {
		return nil
	}
	width := len(rows[0])
	out := make([]float64, width)
	for c := 0; c < width; c++ {
		var counts [256]int
		top := 0
		for _, row := range rows {
			r := row[c]
			if r == alignment.Gap {
				continue
			}
			r = upper(r)
			counts[r]++
			if counts[r] > top {
				top = counts[r]
			}
		}
		out[c] = float64(top) / float64(len(rows))
	}
	return out
}

// Conservation averages ColumnConservation over all columns.
func Conservation(rows [][]byte) float64 {
	return mean(ColumnConservation(rows))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
