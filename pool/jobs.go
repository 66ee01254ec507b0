package pool

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hasbyte1/go-bcrypt/bcrypt"
	"github.com/hasbyte1/go-bcrypt/metrics"
)

type hashResult struct {
	hash string
	err  error
}

type hashJob struct {
	password []byte
	salt     string
	result   chan hashResult
}

func (j hashJob) execute(m *metrics.Metrics) {
	start := time.Now()
	hash, err := bcrypt.Hash(j.password, j.salt)
	cost, _ := bcrypt.GetRounds(j.salt)
	m.Observe(metrics.OpHash, cost, err, time.Since(start))
	j.result <- hashResult{hash: hash, err: err}
}

type compareJob struct {
	password []byte
	hash     string
	result   chan bool
}

func (j compareJob) execute(m *metrics.Metrics) {
	start := time.Now()
	ok := bcrypt.Compare(j.password, j.hash)
	cost, _ := bcrypt.GetRounds(j.hash)
	m.ObserveCompare(cost, ok, time.Since(start))
	j.result <- ok
}

type saltJob struct {
	cost    int
	version bcrypt.Version
	result  chan hashResult
}

func (j saltJob) execute(m *metrics.Metrics) {
	start := time.Now()
	salt, err := bcrypt.GenerateSalt(j.cost, j.version)
	m.Observe(metrics.OpGenerateSalt, j.cost, err, time.Since(start))
	j.result <- hashResult{hash: salt, err: err}
}

// Hash runs bcrypt.Hash on a worker. The password is copied, so the caller
// may reuse its buffer as soon as Hash returns.
func (d *Dispatcher) Hash(ctx context.Context, password []byte, salt string) (string, error) {
	j := hashJob{
		password: append([]byte(nil), password...),
		salt:     salt,
		result:   make(chan hashResult, 1),
	}
	if err := d.submit(ctx, j); err != nil {
		return "", err
	}
	r, err := await(ctx, d, j.result)
	if err != nil {
		return "", err
	}
	return r.hash, r.err
}

// HashWithCost generates a salt of the given cost with the default version
// and hashes password under it.
func (d *Dispatcher) HashWithCost(ctx context.Context, password []byte, cost int) (string, error) {
	salt, err := d.GenerateSalt(ctx, cost, bcrypt.DefaultVersion)
	if err != nil {
		return "", err
	}
	return d.Hash(ctx, password, salt)
}

// Compare runs bcrypt.Compare on a worker. The error is non-nil only when
// the comparison did not run to completion for this caller.
func (d *Dispatcher) Compare(ctx context.Context, password []byte, hash string) (bool, error) {
	j := compareJob{
		password: append([]byte(nil), password...),
		hash:     hash,
		result:   make(chan bool, 1),
	}
	if err := d.submit(ctx, j); err != nil {
		return false, err
	}
	return await(ctx, d, j.result)
}

// GenerateSalt runs bcrypt.GenerateSalt on a worker.
func (d *Dispatcher) GenerateSalt(ctx context.Context, cost int, v bcrypt.Version) (string, error) {
	j := saltJob{cost: cost, version: v, result: make(chan hashResult, 1)}
	if err := d.submit(ctx, j); err != nil {
		return "", err
	}
	r, err := await(ctx, d, j.result)
	if err != nil {
		return "", err
	}
	return r.hash, r.err
}

// TryCompare is Compare that fails with ErrQueueFull instead of waiting for
// queue space.
func (d *Dispatcher) TryCompare(ctx context.Context, password []byte, hash string) (bool, error) {
	j := compareJob{
		password: append([]byte(nil), password...),
		hash:     hash,
		result:   make(chan bool, 1),
	}
	if err := d.trySubmit(j); err != nil {
		return false, err
	}
	return await(ctx, d, j.result)
}

// Pair is one password/hash comparison for CompareAll.
type Pair struct {
	Password []byte
	Hash     string
}

// CompareAll compares every pair concurrently and returns the results in
// input order. The first wait failure cancels the remaining waits and is
// returned.
func (d *Dispatcher) CompareAll(ctx context.Context, pairs []Pair) ([]bool, error) {
	out := make([]bool, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers + cap(d.jobs))
	for i, p := range pairs {
		g.Go(func() error {
			ok, err := d.Compare(gctx, p.Password, p.Hash)
			if err != nil {
				return err
			}
			out[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		d.logger.Warn("batch compare aborted", "pairs", len(pairs), "error", err)
		return nil, err
	}
	return out, nil
}
