package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Mistuke/tlsf"
)

func init() {
	rootCmd.AddCommand(newSizeClassCmd())
}

func newSizeClassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sizeclass <size>",
		Short: "Print the (fl, sl) index cell a size would search",
		Long: `sizeclass reports which first-level/second-level cell of the
segregated free-list index a malloc request of the given size would
search, the same mapping Control.Malloc uses internally.

Example:
  tlsfctl sizeclass 420
  tlsfctl sizeclass 420 --json`,
		Args: cobra.ExactArgs(1),
		RunE: runSizeClass,
	}
}

type sizeClassResult struct {
	Size uintptr `json:"size"`
	FL   int     `json:"fl"`
	SL   int     `json:"sl"`
}

func runSizeClass(cmd *cobra.Command, args []string) error {
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return err
	}

	fl, sl := tlsf.SizeClass(uintptr(n))
	result := sizeClassResult{Size: uintptr(n), FL: fl, SL: sl}

	if jsonOut {
		return printJSON(result)
	}
	printInfo("size=%d -> fl=%d sl=%d\n", result.Size, result.FL, result.SL)
	return nil
}
