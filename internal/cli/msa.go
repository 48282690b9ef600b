package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/metrics"
	"github.com/aria-lang/bioalign/internal/msa"
	"github.com/aria-lang/bioalign/internal/sequence"
)

type msaOptions struct {
	schemeFlags
	scheme   string
	distance string
	kmer     int
	workers  int
	width    int
	tree     string
	json     bool
}

func (c *CLI) msaCommand() *cobra.Command {
	opts := msaOptions{}

	cmd := &cobra.Command{
		Use:   "msa FILE",
		Short: "Progressive multiple sequence alignment",
		Long: `Align all records of a FASTA file ("-" for stdin) progressively along a
UPGMA guide tree and write the aligned records as FASTA.

--scheme auto picks protein scoring when any record is not nucleotide.
Explicit scoring flags override the selected scheme.`,
		Example: `  bioalign msa seqs.fa
  bioalign msa proteins.fa --scheme protein --tree guide.nwk
  bioalign msa seqs.fa --distance kmer --kmer 3 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMSA(cmd, args[0], opts)
		},
	}

	fs := cmd.Flags()
	opts.register(fs)
	fs.StringVarP(&opts.scheme, "scheme", "s", "auto", "scheme selector (auto, nucleotide, protein)")
	fs.StringVarP(&opts.distance, "distance", "d", "identity", "guide tree distance (identity, kmer)")
	fs.IntVarP(&opts.kmer, "kmer", "k", msa.DefaultKmerSize, "k-mer size for --distance kmer")
	fs.IntVarP(&opts.workers, "workers", "j", 0, "parallel workers for pairwise distances (default from config)")
	fs.IntVarP(&opts.width, "width", "w", sequence.DefaultLineWidth, "FASTA line width")
	fs.StringVar(&opts.tree, "tree", "", "write the guide tree in Newick format to this file")
	fs.BoolVar(&opts.json, "json", false, "write the result as JSON")

	return cmd
}

func (c *CLI) runMSA(cmd *cobra.Command, path string, opts msaOptions) error {
	ctx := cmd.Context()
	logger := LoggerFromContext(ctx)

	records, err := readFASTAFile(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	if limit := c.Config.Limits.MaxMSASequences; len(records) > limit {
		return &alignment.InputError{Arg: "sequences", Reason: fmt.Sprintf("%d sequences exceeds the limit of %d", len(records), limit)}
	}

	distance, err := msa.ParseDistance(opts.distance)
	if err != nil {
		return err
	}

	seqs := make([][]byte, len(records))
	names := make([]string, len(records))
	for i, r := range records {
		seqs[i] = r.Residues
		names[i] = r.ID
	}

	selector := opts.scheme
	if selector == "auto" {
		selector = sequence.DetectAll(records).Selector()
		logger.Debug("detected scheme", "selector", selector)
	}
	var scheme alignment.Scheme
	if opts.empty(cmd.Flags()) {
		scheme, err = msa.SchemeFor(selector)
	} else {
		scheme, err = c.Config.ResolveScheme(opts.spec(cmd.Flags()))
	}
	if err != nil {
		return err
	}

	workers := c.Config.Limits.Workers
	if opts.workers > 0 {
		workers = opts.workers
	}

	total := 0
	for _, s := range seqs {
		total += len(s)
	}
	cells := alignment.Cells(total, total)

	prog := newProgress(logger)
	res, err := msa.Align(ctx, seqs, msa.Options{
		Scheme:   scheme,
		Distance: distance,
		KmerSize: opts.kmer,
		Workers:  workers,
		MaxCells: c.Config.Limits.MaxMSACells,
		Names:    names,
	})
	metrics.ObserveAlignment("msa", cells, prog.elapsed(), err)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("aligned %d sequences", res.NSequences),
		"columns", res.NColumns, "scheme", scheme.Name(), "conservation", fmt.Sprintf("%.3f", res.Conservation))
	logger.Info("guide tree", "newick", res.Newick)

	if opts.tree != "" {
		if err := os.WriteFile(opts.tree, []byte(res.Newick+"\n"), 0o644); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	aligned := make([]*sequence.Sequence, len(records))
	for i, r := range records {
		aligned[i] = &sequence.Sequence{ID: r.ID, Description: r.Description, Residues: res.Aligned[i], Alphabet: r.Alphabet}
	}
	return sequence.WriteFASTA(out, aligned, opts.width)
}
