package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aria-lang/bioalign/internal/alignment"
	"github.com/aria-lang/bioalign/internal/metrics"
)

type batchOptions struct {
	schemeFlags
	mode    string
	band    int
	workers int
	json    bool
}

// batchRecord is one line of batch output.
type batchRecord struct {
	ID        string               `json:"id"`
	Alignment *alignment.Alignment `json:"alignment"`
}

func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Align many pairs in parallel",
		Long: `Align every pair listed in a tab-separated file ("-" for stdin).

Each line holds QUERY<TAB>TARGET or ID<TAB>QUERY<TAB>TARGET. Blank lines and
lines starting with # are skipped. Results are written in input order.`,
		Example: `  bioalign batch pairs.tsv
  cat pairs.tsv | bioalign batch - --mode global --workers 4 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd, args[0], opts)
		},
	}

	fs := cmd.Flags()
	opts.register(fs)
	fs.StringVarP(&opts.mode, "mode", "m", "", "alignment mode (local, global, semiglobal)")
	fs.IntVar(&opts.band, "band", 0, "restrict the DP to a diagonal band of this half-width")
	fs.IntVarP(&opts.workers, "workers", "j", 0, "parallel workers (default from config)")
	fs.BoolVar(&opts.json, "json", false, "write results as JSON")

	return cmd
}

func (c *CLI) runBatch(cmd *cobra.Command, path string, opts batchOptions) error {
	ctx := cmd.Context()
	logger := LoggerFromContext(ctx)

	ids, pairs, err := readPairsFile(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	if limit := c.Config.Limits.MaxBatchPairs; len(pairs) > limit {
		return &alignment.InputError{Arg: "pairs", Reason: fmt.Sprintf("%d pairs exceeds the limit of %d", len(pairs), limit)}
	}

	aligner, err := c.aligner(cmd.Flags(), &opts.schemeFlags, opts.mode)
	if err != nil {
		return err
	}
	aligner.Band = opts.band
	if opts.workers > 0 {
		aligner.Workers = opts.workers
	}

	var cells int64
	for _, p := range pairs {
		cells += alignment.Cells(len(p.Query), len(p.Target))
	}
	logger.Debug("aligning batch", "pairs", len(pairs), "mode", aligner.Mode, "scheme", aligner.Scheme.Name())

	prog := newProgress(logger)
	results, err := aligner.AlignBatch(ctx, pairs)
	metrics.ObserveAlignment("batch", cells, prog.elapsed(), err)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("aligned %d pairs", len(pairs)), "cells", cells)

	out := cmd.OutOrStdout()
	if opts.json {
		records := make([]batchRecord, len(results))
		for i, aln := range results {
			records[i] = batchRecord{ID: ids[i], Alignment: aln}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	return writeBatchTSV(out, ids, results)
}

func writeBatchTSV(w io.Writer, ids []string, results []*alignment.Alignment) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "id\tscore\tquery_start\tquery_end\ttarget_start\ttarget_end\tidentity\tcigar")
	for i, aln := range results {
		fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%d\t%d\t%.4f\t%s\n",
			ids[i], aln.Score, aln.QueryStart, aln.QueryEnd, aln.TargetStart, aln.TargetEnd, aln.Identity, aln.CIGAR)
	}
	return bw.Flush()
}

// readPairsFile parses a pair list from path, or stdin when path is "-".
// Lines without an ID are numbered from 1.
func readPairsFile(stdin io.Reader, path string) ([]string, []alignment.Pair, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		r = f
	}

	var ids []string
	var pairs []alignment.Pair
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if trimmed := strings.TrimSpace(text); trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		var id string
		switch len(fields) {
		case 2:
			id = strconv.Itoa(len(pairs) + 1)
		case 3:
			id, fields = fields[0], fields[1:]
		default:
			return nil, nil, fmt.Errorf("%s:%d: expected 2 or 3 tab-separated fields, got %d", path, line, len(fields))
		}
		ids = append(ids, id)
		pairs = append(pairs, alignment.Pair{Query: []byte(fields[0]), Target: []byte(fields[1])})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(pairs) == 0 {
		return nil, nil, fmt.Errorf("%s: no pairs", path)
	}
	return ids, pairs, nil
}
