package main

import (
	"math/rand"
	"time"
	"unsafe"

	"github.com/spf13/cobra"

	"github.com/Mistuke/tlsf"
	"github.com/Mistuke/tlsf/heapsrc"
)

var (
	benchOps      int
	benchMaxSize  int
	benchPoolSize int
	benchSeed     int64
)

func init() {
	cmd := newBenchCmd()
	cmd.Flags().IntVar(&benchOps, "ops", 100000, "number of malloc/free/realloc operations to run")
	cmd.Flags().IntVar(&benchMaxSize, "max-size", 4096, "largest single allocation request, in bytes")
	cmd.Flags().IntVar(&benchPoolSize, "pool-size", 1<<20, "initial pool size requested from the backing source")
	cmd.Flags().Int64Var(&benchSeed, "seed", 1, "seed for the pseudo-random workload")
	rootCmd.AddCommand(cmd)
}

func newBenchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Run a synthetic malloc/free/realloc workload and report Stats",
		Long: `bench drives a tlsf.Control, backed by heapsrc, through a pseudo-random
mix of malloc, free, and realloc calls and prints the resulting Stats.

Example:
  tlsfctl bench --ops 500000 --max-size 8192
  tlsfctl bench --json`,
		RunE: runBench,
	}
}

type benchResult struct {
	Ops      int           `json:"ops"`
	Duration time.Duration `json:"duration_ns"`
	Stats    tlsf.Stats    `json:"stats"`
}

func runBench(cmd *cobra.Command, args []string) error {
	src := heapsrc.New()
	c, err := tlsf.Create(src.Map, src.Unmap, nil, tlsf.WithInitialPoolSize(uintptr(benchPoolSize)))
	if err != nil {
		return err
	}
	defer c.Destroy()

	rng := rand.New(rand.NewSource(benchSeed))
	var live []unsafe.Pointer

	start := time.Now()
	for i := 0; i < benchOps; i++ {
		switch {
		case len(live) == 0 || rng.Intn(3) != 0:
			size := uintptr(rng.Intn(benchMaxSize) + 1)
			p, err := c.Malloc(size)
			if err != nil {
				printVerbose("malloc(%d) failed: %v\n", size, err)
				continue
			}
			live = append(live, p)
		case rng.Intn(2) == 0:
			idx := rng.Intn(len(live))
			size := uintptr(rng.Intn(benchMaxSize) + 1)
			q, err := c.Realloc(live[idx], size)
			if err != nil {
				printVerbose("realloc failed: %v\n", err)
				continue
			}
			live[idx] = q
		default:
			idx := rng.Intn(len(live))
			if err := c.Free(live[idx]); err != nil {
				printVerbose("free failed: %v\n", err)
				continue
			}
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}
	elapsed := time.Since(start)

	for _, p := range live {
		_ = c.Free(p)
	}

	result := benchResult{Ops: benchOps, Duration: elapsed, Stats: c.Stats()}
	if jsonOut {
		return printJSON(result)
	}

	printInfo("ran %d ops in %s (%.0f ops/s)\n", result.Ops, result.Duration,
		float64(result.Ops)/result.Duration.Seconds())
	printInfo("%s\n", result.Stats.String())
	return nil
}
