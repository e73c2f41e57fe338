package main

import (
	"math/rand"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/Mistuke/tlsf"
	"github.com/Mistuke/tlsf/heapsrc"
)

var (
	checkOps      int
	checkMaxSize  int
	checkPoolSize int
	checkSeed     int64
)

func init() {
	cmd := newCheckCmd()
	cmd.Flags().IntVar(&checkOps, "ops", 50000, "number of malloc/free/realloc operations to run")
	cmd.Flags().IntVar(&checkMaxSize, "max-size", 4096, "largest single allocation request, in bytes")
	cmd.Flags().IntVar(&checkPoolSize, "pool-size", 1<<20, "initial pool size requested from the backing source")
	cmd.Flags().Int64Var(&checkSeed, "seed", 1, "seed for the pseudo-random workload")
	rootCmd.AddCommand(cmd)
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run a randomized workload and fail on the first broken invariant",
		Long: `check exercises a tlsf.Control the same way bench does, but calls
Control.Check after every mutation and stops at the first violation it
finds, printing the diagnostic and exiting non-zero.`,
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	src := heapsrc.New()
	c, err := tlsf.Create(src.Map, src.Unmap, nil, tlsf.WithInitialPoolSize(uintptr(checkPoolSize)))
	if err != nil {
		return err
	}
	defer c.Destroy()

	rng := rand.New(rand.NewSource(checkSeed))
	var live []unsafe.Pointer

	for i := 0; i < checkOps; i++ {
		switch {
		case len(live) == 0 || rng.Intn(3) != 0:
			size := uintptr(rng.Intn(checkMaxSize) + 1)
			p, err := c.Malloc(size)
			if err != nil {
				continue
			}
			live = append(live, p)
		case rng.Intn(2) == 0:
			idx := rng.Intn(len(live))
			size := uintptr(rng.Intn(checkMaxSize) + 1)
			q, err := c.Realloc(live[idx], size)
			if err != nil {
				continue
			}
			live[idx] = q
		default:
			idx := rng.Intn(len(live))
			if err := c.Free(live[idx]); err != nil {
				printError("op %d: free: %v\n", i, err)
				return err
			}
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
		}

		if err := c.Check(); err != nil {
			printError("op %d: %v\n", i, err)
			return err
		}
	}

	printInfo("ran %d ops, no invariant violations\n", checkOps)
	return nil
}
