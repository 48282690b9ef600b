// Package cigar encodes, parses and manipulates SAM-style CIGAR strings.
//
// Operators follow SAM conventions: I consumes the query only,
// D consumes the reference only, M/=/X consume both.
package cigar

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is a single CIGAR operator.
type Op byte

const (
	Match     Op = 'M'
	Insertion Op = 'I'
	Deletion  Op = 'D'
	Skip      Op = 'N'
	SoftClip  Op = 'S'
	HardClip  Op = 'H'
	Padding   Op = 'P'
	Equal     Op = '='
	Diff      Op = 'X'
)

// Gap is the symbol used for gap columns in aligned rows.
const Gap = '-'

// Valid reports whether o is a SAM operator.
func (o Op) Valid() bool {
	switch o {
	case Match, Insertion, Deletion, Skip, SoftClip, HardClip, Padding, Equal, Diff:
		return true
	}
	return false
}

// ConsumesQuery reports whether o advances along the query.
func (o Op) ConsumesQuery() bool {
	switch o {
	case Match, Insertion, SoftClip, Equal, Diff:
		return true
	}
	return false
}

// ConsumesReference reports whether o advances along the reference.
func (o Op) ConsumesReference() bool {
	switch o {
	case Match, Deletion, Skip, Equal, Diff:
		return true
	}
	return false
}

func (o Op) String() string { return string(o) }

// Unit is one run of identical operators.
type Unit struct {
	Len int
	Op  Op
}

// Cigar is a run-length encoded operator sequence.
type Cigar []Unit

// Encode run-length compresses ops, merging consecutive identical operators.
func Encode(ops []Op) Cigar {
	var c Cigar
	for _, op := range ops {
		if n := len(c); n > 0 && c[n-1].Op == op {
			c[n-1].Len++
			continue
		}
		c = append(c, Unit{Len: 1, Op: op})
	}
	return c
}

// Parse decodes a CIGAR string. "*" and "" decode to an empty Cigar.
func Parse(s string) (Cigar, error) {
	if s == "" || s == "*" {
		return Cigar{}, nil
	}
	var c Cigar
	start := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= '0' && ch <= '9' {
			continue
		}
		if i == start {
			return nil, fmt.Errorf("cigar %q: operator %q at offset %d has no length", s, ch, i)
		}
		op := Op(ch)
		if !op.Valid() {
			return nil, fmt.Errorf("cigar %q: unknown operator %q at offset %d", s, ch, i)
		}
		n, err := strconv.Atoi(s[start:i])
		if err != nil {
			return nil, fmt.Errorf("cigar %q: %w", s, err)
		}
		if n == 0 {
			return nil, fmt.Errorf("cigar %q: zero-length operation at offset %d", s, start)
		}
		c = append(c, Unit{Len: n, Op: op})
		start = i + 1
	}
	if start != len(s) {
		return nil, fmt.Errorf("cigar %q: trailing length without operator", s)
	}
	return c, nil
}

// String formats c in SAM notation. An empty Cigar formats as "".
func (c Cigar) String() string {
	var b strings.Builder
	for _, u := range c {
		b.WriteString(strconv.Itoa(u.Len))
		b.WriteByte(byte(u.Op))
	}
	return b.String()
}

// Validate checks SAM structural rules: positive lengths, known operators,
// hard clips only at the ends and soft clips only between a hard clip and
// the end.
func (c Cigar) Validate() error {
	for i, u := range c {
		if u.Len <= 0 {
			return fmt.Errorf("operation %d: length %d must be positive", i, u.Len)
		}
		if !u.Op.Valid() {
			return fmt.Errorf("operation %d: unknown operator %q", i, byte(u.Op))
		}
		switch u.Op {
		case HardClip:
			if i != 0 && i != len(c)-1 {
				return fmt.Errorf("operation %d: hard clip must be first or last", i)
			}
		case SoftClip:
			if !softClipPlaced(c, i) {
				return fmt.Errorf("operation %d: soft clip may only be preceded or followed by hard clips", i)
			}
		}
	}
	return nil
}

func softClipPlaced(c Cigar, i int) bool {
	leading := true
	for k := 0; k < i; k++ {
		if c[k].Op != HardClip {
			leading = false
			break
		}
	}
	if leading {
		return true
	}
	for k := i + 1; k < len(c); k++ {
		if c[k].Op != HardClip {
			return false
		}
	}
	return true
}

// Merge joins adjacent runs of the same operator and drops empty runs.
func (c Cigar) Merge() Cigar {
	out := make(Cigar, 0, len(c))
	for _, u := range c {
		if u.Len == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Op == u.Op {
			out[n-1].Len += u.Len
			continue
		}
		out = append(out, u)
	}
	return out
}

// Collapse rewrites = and X as M and merges the result.
func (c Cigar) Collapse() Cigar {
	out := make(Cigar, len(c))
	for i, u := range c {
		if u.Op == Equal || u.Op == Diff {
			u.Op = Match
		}
		out[i] = u
	}
	return out.Merge()
}

// Reverse returns the operations in reverse order, as needed for a
// reverse-complemented read.
func (c Cigar) Reverse() Cigar {
	out := make(Cigar, len(c))
	for i, u := range c {
		out[len(c)-1-i] = u
	}
	return out
}

// HardClipToSoft turns hard clips into soft clips.
func (c Cigar) HardClipToSoft() Cigar {
	out := make(Cigar, len(c))
	for i, u := range c {
		if u.Op == HardClip {
			u.Op = SoftClip
		}
		out[i] = u
	}
	return out.Merge()
}

// QueryLength is the number of query residues consumed, soft clips included.
func (c Cigar) QueryLength() int {
	n := 0
	for _, u := range c {
		if u.Op.ConsumesQuery() {
			n += u.Len
		}
	}
	return n
}

// ReferenceLength is the number of reference residues consumed.
func (c Cigar) ReferenceLength() int {
	n := 0
	for _, u := range c {
		if u.Op.ConsumesReference() {
			n += u.Len
		}
	}
	return n
}

// Split cuts c at a reference offset. The left part consumes exactly refPos
// reference residues; operations that consume no reference at the cut go to
// the right part.
func (c Cigar) Split(refPos int) (Cigar, Cigar, error) {
	total := c.ReferenceLength()
	if refPos < 0 || refPos > total {
		return nil, nil, fmt.Errorf("split position %d outside reference span [0,%d]", refPos, total)
	}
	var left, right Cigar
	consumed := 0
	for _, u := range c {
		switch {
		case consumed >= refPos:
			right = append(right, u)
		case !u.Op.ConsumesReference():
			left = append(left, u)
		case consumed+u.Len <= refPos:
			left = append(left, u)
			consumed += u.Len
		default:
			head := refPos - consumed
			left = append(left, Unit{Len: head, Op: u.Op})
			right = append(right, Unit{Len: u.Len - head, Op: u.Op})
			consumed = refPos
		}
	}
	return left.Merge(), right.Merge(), nil
}
