package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/config"
	"github.com/aria-lang/bioalign/internal/metrics"
	"github.com/aria-lang/bioalign/internal/sequence"
)

// schemeFlags are the scoring overrides shared by align, batch and msa.
type schemeFlags struct {
	matrix    string
	match     int
	mismatch  int
	gapOpen   int
	gapExtend int
}

func (f *schemeFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.matrix, "matrix", "", "protein substitution matrix (blosum62, blosum45, blosum80, pam250)")
	fs.IntVar(&f.match, "match", 0, "match score for simple scoring")
	fs.IntVar(&f.mismatch, "mismatch", 0, "mismatch score for simple scoring")
	fs.IntVar(&f.gapOpen, "gap-open", 0, "gap open penalty (<= 0)")
	fs.IntVar(&f.gapExtend, "gap-extend", 0, "gap extend penalty (<= 0)")
}

// spec returns only the flags that were set, so unset ones fall back to
// the configuration.
func (f *schemeFlags) spec(fs *pflag.FlagSet) *config.SchemeSpec {
	s := &config.SchemeSpec{Matrix: f.matrix}
	set := func(name string, v int) *int {
		if !fs.Changed(name) {
			return nil
		}
		return &v
	}
	s.Match = set("match", f.match)
	s.Mismatch = set("mismatch", f.mismatch)
	s.GapOpen = set("gap-open", f.gapOpen)
	s.GapExtend = set("gap-extend", f.gapExtend)
	return s
}

func (f *schemeFlags) empty(fs *pflag.FlagSet) bool {
	for _, name := range []string{"matrix", "match", "mismatch", "gap-open", "gap-extend"} {
		if fs.Changed(name) {
			return false
		}
	}
	return true
}

type alignOptions struct {
	schemeFlags
	mode      string
	band      int
	fasta     string
	width     int
	json      bool
	scoreOnly bool
	noColor   bool
}

func (c *CLI) alignCommand() *cobra.Command {
	opts := alignOptions{}

	cmd := &cobra.Command{
		Use:   "align [QUERY TARGET]",
		Short: "Align two sequences",
		Long: `Align a query against a target with affine gap penalties.

Sequences are given as arguments or as the first two records of a FASTA
file (--fasta, "-" for stdin). Scoring defaults come from the config file.`,
		Example: `  bioalign align ACGTACGT ACGTTACGT
  bioalign align --mode global --matrix blosum62 HEAGAWGHEE PAWHEAE
  bioalign align --fasta pair.fa --json`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAlign(cmd, args, opts)
		},
	}

	fs := cmd.Flags()
	opts.register(fs)
	fs.StringVarP(&opts.mode, "mode", "m", "", "alignment mode (local, global, semiglobal)")
	fs.IntVar(&opts.band, "band", 0, "restrict the DP to a diagonal band of this half-width")
	fs.StringVarP(&opts.fasta, "fasta", "f", "", "read the pair from a FASTA file")
	fs.IntVarP(&opts.width, "width", "w", 60, "columns per block in text output")
	fs.BoolVar(&opts.json, "json", false, "write the alignment as JSON")
	fs.BoolVar(&opts.scoreOnly, "score-only", false, "print only the optimal score")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

func (c *CLI) runAlign(cmd *cobra.Command, args []string, opts alignOptions) error {
	ctx := cmd.Context()
	logger := LoggerFromContext(ctx)

	query, target, err := readPair(cmd.InOrStdin(), args, opts.fasta)
	if err != nil {
		return err
	}

	aligner, err := c.aligner(cmd.Flags(), &opts.schemeFlags, opts.mode)
	if err != nil {
		return err
	}
	aligner.Band = opts.band
	logger.Debug("aligning", "mode", aligner.Mode, "scheme", aligner.Scheme.Name(), "query_len", len(query), "target_len", len(target))

	out := cmd.OutOrStdout()
	prog := newProgress(logger)
	cells := alignment.Cells(len(query), len(target))

	if opts.scoreOnly {
		score, err := aligner.Score(ctx, query, target)
		metrics.ObserveAlignment("score", cells, prog.elapsed(), err)
		if err != nil {
			return err
		}
		prog.done("scored pair", "cells", cells)
		_, err = fmt.Fprintln(out, score)
		return err
	}

	aln, err := aligner.Align(ctx, query, target)
	metrics.ObserveAlignment("pairwise", cells, prog.elapsed(), err)
	if err != nil {
		return err
	}
	prog.done("aligned pair", "cells", cells, "score", aln.Score)

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(aln)
	}
	_, err = fmt.Fprintln(out, renderAlignment(aln, opts.width, !opts.noColor))
	return err
}

// aligner builds an aligner from the config, overridden by flags.
func (c *CLI) aligner(fs *pflag.FlagSet, sf *schemeFlags, mode string) (*alignment.Aligner, error) {
	m, err := c.Config.ResolveMode(mode)
	if err != nil {
		return nil, err
	}
	scheme, err := c.Config.ResolveScheme(sf.spec(fs))
	if err != nil {
		return nil, err
	}
	return &alignment.Aligner{
		Mode:     m,
		Scheme:   scheme,
		MaxCells: c.Config.Limits.MaxCells,
		Workers:  c.Config.Limits.Workers,
	}, nil
}

// readPair takes the pair from args, or from the first two FASTA records.
func readPair(stdin io.Reader, args []string, path string) ([]byte, []byte, error) {
	if path == "" {
		if len(args) != 2 {
			return nil, nil, fmt.Errorf("expected QUERY and TARGET arguments or --fasta")
		}
		return []byte(args[0]), []byte(args[1]), nil
	}
	if len(args) != 0 {
		return nil, nil, fmt.Errorf("--fasta cannot be combined with sequence arguments")
	}

	seqs, err := readFASTAFile(stdin, path)
	if err != nil {
		return nil, nil, err
	}
	if len(seqs) < 2 {
		return nil, nil, fmt.Errorf("%s: need 2 records, found %d", path, len(seqs))
	}
	return seqs[0].Residues, seqs[1].Residues, nil
}

// readFASTAFile reads path, or stdin when path is "-".
func readFASTAFile(stdin io.Reader, path string) ([]*sequence.Sequence, error) {
	if path == "-" {
		return sequence.ReadFASTA(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seqs, err := sequence.ReadFASTA(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seqs, nil
}
