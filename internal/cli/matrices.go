package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aria-lang/bioalign/internal/alignment"
)

func (c *CLI) matricesCommand() *cobra.Command {
	var show string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "matrices",
		Short: "List the built-in substitution matrices",
		Example: `  bioalign matrices
  bioalign matrices --show blosum62`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if show != "" {
				m, err := alignment.NamedProteinScheme(show)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, formatMatrix(m))
				return err
			}

			rows := make([][]string, 0, len(alignment.Presets()))
			for _, m := range alignment.Presets() {
				rows = append(rows, []string{m.Name(), strconv.Itoa(m.GapOpen()), strconv.Itoa(m.GapExtend())})
			}
			_, err := fmt.Fprint(out, renderTable([]string{"NAME", "GAP_OPEN", "GAP_EXTEND"}, rows, !noColor))
			return err
		},
	}

	cmd.Flags().StringVar(&show, "show", "", "print the full table of one matrix")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	return cmd
}

// formatMatrix prints m as a square table over its alphabet.
func formatMatrix(m *alignment.SubstitutionMatrix) string {
	alphabet := m.Alphabet()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s gap_open=%d gap_extend=%d\n", m.Name(), m.GapOpen(), m.GapExtend())
	b.WriteString(" ")
	for i := 0; i < len(alphabet); i++ {
		fmt.Fprintf(&b, "%4c", alphabet[i])
	}
	b.WriteByte('\n')
	for i := 0; i < len(alphabet); i++ {
		b.WriteByte(alphabet[i])
		for j := 0; j < len(alphabet); j++ {
			fmt.Fprintf(&b, "%4d", m.Pair(alphabet[i], alphabet[j]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
