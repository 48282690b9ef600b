package sequence

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// DefaultLineWidth is the residue count per FASTA line written by
// WriteFASTA.
const DefaultLineWidth = 80

// ReadFASTA parses every record of r. Blank lines and ';' comment lines are
// skipped. Each record must have a header and at least one residue.
func ReadFASTA(r io.Reader) ([]*Sequence, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		seqs     []*Sequence
		id, desc string
		residues []byte
		inRecord bool
	)
	flush := func() error {
		if !inRecord {
			return nil
		}
		if len(residues) == 0 {
			return &EmptySequenceError{ID: id}
		}
		seq, err := New(residues)
		if err != nil {
			return fmt.Errorf("record %q: %w", id, err)
		}
		seq.ID, seq.Description = id, desc
		seqs = append(seqs, seq)
		return nil
	}

	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		switch {
		case len(text) == 0 || text[0] == ';':
			continue
		case text[0] == '>':
			if err := flush(); err != nil {
				return nil, err
			}
			header := strings.TrimSpace(string(text[1:]))
			if header == "" {
				return nil, &FormatError{Line: line, Reason: "empty header"}
			}
			id, desc, _ = strings.Cut(header, " ")
			desc = strings.TrimSpace(desc)
			residues = residues[:0:0]
			inRecord = true
		default:
			if !inRecord {
				return nil, &FormatError{Line: line, Reason: "residues before first header"}
			}
			for _, field := range bytes.Fields(text) {
				residues = append(residues, field...)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read fasta: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(seqs) == 0 {
		return nil, &FormatError{Line: line, Reason: "no records"}
	}
	return seqs, nil
}

// WriteFASTA writes seqs wrapping residues at width per line. A width of
// zero or less uses DefaultLineWidth.
func WriteFASTA(w io.Writer, seqs []*Sequence, width int) error {
	if width <= 0 {
		width = DefaultLineWidth
	}
	bw := bufio.NewWriter(w)
	for _, s := range seqs {
		if _, err := fmt.Fprintf(bw, ">%s\n", s.Header()); err != nil {
			return err
		}
		for i := 0; i < len(s.Residues); i += width {
			end := min(i+width, len(s.Residues))
			bw.Write(s.Residues[i:end])
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// ToFASTA returns the sequence as a single FASTA record.
func (s *Sequence) ToFASTA() string {
	var sb strings.Builder
	_ = WriteFASTA(&sb, []*Sequence{s}, DefaultLineWidth)
	return sb.String()
}
