// Package datasetgen generates deterministic key datasets for standalone
// benchmarking of sievecache outside `go test`, driven by the same
// uniform/Zipf distributions the teacher's dataset_gen tool offers.
//
// © 2025 sievecache authors. MIT License.
package datasetgen

import "math/rand"

// Distribution selects the key-access pattern a generated dataset follows.
type Distribution string

const (
	Uniform Distribution = "uniform"
	Zipf    Distribution = "zipf"
)

// Options configures Generate.
type Options struct {
	N    int
	Dist Distribution
	// ZipfS and ZipfV parameterize the Zipf distribution (math/rand.Zipf);
	// ignored when Dist is Uniform. ZipfS must be > 1, ZipfV must be >= 1.
	ZipfS, ZipfV float64
	Seed         int64
}

// DefaultOptions mirrors the teacher's dataset_gen defaults.
func DefaultOptions() Options {
	return Options{
		N:     1_000_000,
		Dist:  Uniform,
		ZipfS: 1.2,
		ZipfV: 1.0,
		Seed:  42,
	}
}

// Generate returns opts.N uint64 keys drawn from the requested distribution.
// The same opts always produce the same dataset.
func Generate(opts Options) ([]uint64, error) {
	rnd := rand.New(rand.NewSource(opts.Seed))

	var gen func() uint64
	switch opts.Dist {
	case Uniform, "":
		gen = rnd.Uint64
	case Zipf:
		if opts.ZipfS <= 1.0 || opts.ZipfV < 1 {
			return nil, errZipfParams
		}
		z := rand.NewZipf(rnd, opts.ZipfS, opts.ZipfV, ^uint64(0))
		gen = z.Uint64
	default:
		return nil, errUnknownDist
	}

	out := make([]uint64, opts.N)
	for i := range out {
		out[i] = gen()
	}
	return out, nil
}
