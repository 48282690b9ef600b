// Command bioalign aligns nucleotide and protein sequences from the command
// line.
//
// Usage:
//
//	bioalign align [flags] QUERY TARGET
//	bioalign batch [flags] FILE
//	bioalign msa [flags] FILE
//	bioalign matrices [--show NAME]
//	bioalign cigar stats|decode|encode|md ...
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aria-lang/bioalign/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
