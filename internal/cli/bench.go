package cli

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hasbyte1/go-bcrypt/bcrypt"
	"github.com/hasbyte1/go-bcrypt/metrics"
	"github.com/hasbyte1/go-bcrypt/pool"
)

type benchOptions struct {
	minCost       int
	maxCost       int
	samples       int
	metricsListen string
}

func (a *app) newBenchCommand() *cobra.Command {
	opts := benchOptions{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time hashing at a range of costs",
		Long: `Hash random passwords at every cost from --min to --max and print each
sample, the average in milliseconds and the resulting hashes per second.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.metricsListen == "" {
				opts.metricsListen = a.cfg.Metrics.Listen
			}
			return a.runBench(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().IntVar(&opts.minCost, "min", 10, "lowest cost")
	cmd.Flags().IntVar(&opts.maxCost, "max", 16, "highest cost")
	cmd.Flags().IntVar(&opts.samples, "samples", 10, "hashes per cost")
	cmd.Flags().StringVar(&opts.metricsListen, "metrics-listen", "", "serve Prometheus metrics on this address while running")
	return cmd
}

func (a *app) runBench(ctx context.Context, w io.Writer, opts benchOptions) error {
	if opts.minCost < bcrypt.MinCost || opts.maxCost > bcrypt.MaxCost || opts.minCost > opts.maxCost {
		return fmt.Errorf("%w: range %d..%d", bcrypt.ErrInvalidCost, opts.minCost, opts.maxCost)
	}
	if opts.samples < 1 {
		return fmt.Errorf("samples must be positive, got %d", opts.samples)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	m := metrics.New()
	d, err := pool.New(a.cfg.Pool, pool.WithMetrics(m), pool.WithLogger(a.logger))
	if err != nil {
		return err
	}
	d.Start()
	defer d.Stop()

	if opts.metricsListen != "" {
		srv := &http.Server{Addr: opts.metricsListen, Handler: m.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics server failed", "listen", opts.metricsListen, "error", err)
			}
		}()
		defer srv.Close()
		a.logger.Info("serving metrics", "listen", opts.metricsListen)
	}

	for cost := opts.minCost; cost <= opts.maxCost; cost++ {
		times := make([]string, 0, opts.samples)
		var total time.Duration
		for range opts.samples {
			start := time.Now()
			if _, err := d.HashWithCost(ctx, []byte(rand.Text()), cost); err != nil {
				return err
			}
			elapsed := time.Since(start)
			total += elapsed
			times = append(times, fmt.Sprintf("%.3f", ms(elapsed)))
		}
		avg := ms(total) / float64(opts.samples)
		fmt.Fprintf(w, "%d rounds: %s = %.3fms (%.2f hash/sec)\n",
			cost, strings.Join(times, ", "), avg, 1000/avg)
	}
	return nil
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
