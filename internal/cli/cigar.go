package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aria-lang/bioalign/internal/cigar"
)

func (c *CLI) cigarCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cigar",
		Short: "Inspect and convert CIGAR strings",
	}
	cmd.AddCommand(cigarStatsCommand())
	cmd.AddCommand(cigarDecodeCommand())
	cmd.AddCommand(cigarEncodeCommand())
	cmd.AddCommand(cigarMDCommand())
	return cmd
}

func cigarStatsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "stats CIGAR",
		Short:   "Count residues per operation",
		Example: `  bioalign cigar stats 3S10M2I5M1D4M`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cg, err := cigar.Parse(args[0])
			if err != nil {
				return err
			}
			stats := cg.Stats()

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(stats)
			}
			fmt.Fprintf(out, "operations:       %d\n", stats.Operations)
			fmt.Fprintf(out, "columns:          %d\n", stats.Columns)
			fmt.Fprintf(out, "aligned columns:  %d\n", stats.AlignedColumns)
			fmt.Fprintf(out, "matches:          %d\n", stats.Matches)
			fmt.Fprintf(out, "mismatches:       %d\n", stats.Mismatches)
			fmt.Fprintf(out, "insertions:       %d\n", stats.Insertions)
			fmt.Fprintf(out, "deletions:        %d\n", stats.Deletions)
			fmt.Fprintf(out, "soft clipped:     %d\n", stats.SoftClipped)
			fmt.Fprintf(out, "hard clipped:     %d\n", stats.HardClipped)
			fmt.Fprintf(out, "query length:     %d\n", stats.QueryLength)
			_, err = fmt.Fprintf(out, "reference length: %d\n", stats.ReferenceLength)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "write stats as JSON")
	return cmd
}

func cigarDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "decode CIGAR QUERY TARGET",
		Short:   "Rebuild the gapped rows described by a CIGAR",
		Example: `  bioalign cigar decode 3M1I2M ACGTAC ACGAC`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cg, err := cigar.Parse(args[0])
			if err != nil {
				return err
			}
			q, t, err := cg.Apply([]byte(args[1]), []byte(args[2]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", q, t)
			return err
		},
	}
}

func cigarEncodeCommand() *cobra.Command {
	var extended bool

	cmd := &cobra.Command{
		Use:     "encode QUERY_ROW TARGET_ROW",
		Short:   "Derive a CIGAR from two gapped rows",
		Example: `  bioalign cigar encode ACGTAC ACG-AC --extended`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cg, err := cigar.FromRows([]byte(args[0]), []byte(args[1]), extended)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cg)
			return err
		},
	}
	cmd.Flags().BoolVar(&extended, "extended", false, "write =/X instead of M")
	return cmd
}

func cigarMDCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "md CIGAR QUERY REFERENCE",
		Short:   "Compute the SAM MD tag",
		Example: `  bioalign cigar md 4M1D2M ACGTAC ACGTTAC`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cg, err := cigar.Parse(args[0])
			if err != nil {
				return err
			}
			md, err := cg.MDTag([]byte(args[1]), []byte(args[2]))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), md)
			return err
		},
	}
}
