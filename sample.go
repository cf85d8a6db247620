package tumbler

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/rayozzie/tumbler/pkg/entropy"
	"github.com/rayozzie/tumbler/pkg/sample"
	"github.com/rayozzie/tumbler/pkg/trace"
)

// SampleConfig holds configuration for typed draws.
type SampleConfig struct {
	Engine string // engine name, DefaultEngine when empty
	Seeded bool   // deterministic construction from Seed
	Seed   uint64
	Count  int
	Out    io.Writer
	Source entropy.Source // nil means the default entropy stack

	Float   bool // draw floats instead of integers
	Bounded bool // restrict draws to the configured range
	IntMin  int64
	IntMax  int64
	FloatMin float64
	FloatMax float64
	Unique  bool // draw a duplicate-free sequence
}

// Sample builds the configured engine and writes Count draws to the
// output, one value per line. Integers cover the full int64 range unless
// bounded; floats cover [0, 1]. Unique sequences may come up short of
// Count when the range holds fewer distinct values.
func Sample(ctx context.Context, cfg SampleConfig) error {
	log := trace.FromContext(ctx).WithPrefix("SAMPLE")
	start := time.Now()

	if cfg.Out == nil {
		return fmt.Errorf("sample: no output writer")
	}
	if cfg.Count <= 0 {
		return fmt.Errorf("sample: count must be positive")
	}
	if cfg.Bounded {
		if cfg.Float && cfg.FloatMin > cfg.FloatMax {
			return fmt.Errorf("sample: min %g exceeds max %g", cfg.FloatMin, cfg.FloatMax)
		}
		if !cfg.Float && cfg.IntMin > cfg.IntMax {
			return fmt.Errorf("sample: min %d exceeds max %d", cfg.IntMin, cfg.IntMax)
		}
	}
	name := cfg.Engine
	if name == "" {
		name = DefaultEngine
	}

	eng, err := NewEngine(ctx, name, cfg.Source, cfg.Seeded, cfg.Seed)
	if err != nil {
		return fmt.Errorf("sample: %w", err)
	}

	written := 0
	if cfg.Float {
		min, max := 0.0, 1.0
		if cfg.Bounded {
			min, max = cfg.FloatMin, cfg.FloatMax
		}
		if cfg.Unique {
			for _, v := range sample.UniqueFloats(eng, min, max, cfg.Count) {
				if _, err := fmt.Fprintf(cfg.Out, "%g\n", v); err != nil {
					return fmt.Errorf("sample write: %w", err)
				}
				written++
			}
		} else {
			for i := 0; i < cfg.Count; i++ {
				if _, err := fmt.Fprintf(cfg.Out, "%g\n", sample.FloatIn(eng, min, max)); err != nil {
					return fmt.Errorf("sample write: %w", err)
				}
				written++
			}
		}
	} else {
		min, max := int64(math.MinInt64), int64(math.MaxInt64)
		if cfg.Bounded {
			min, max = cfg.IntMin, cfg.IntMax
		}
		if cfg.Unique {
			for _, v := range sample.UniqueInts(eng, min, max, cfg.Count) {
				if _, err := fmt.Fprintf(cfg.Out, "%d\n", v); err != nil {
					return fmt.Errorf("sample write: %w", err)
				}
				written++
			}
		} else {
			for i := 0; i < cfg.Count; i++ {
				if _, err := fmt.Fprintf(cfg.Out, "%d\n", sample.IntIn(eng, min, max)); err != nil {
					return fmt.Errorf("sample write: %w", err)
				}
				written++
			}
		}
	}

	log.Infof("Sampled %d values with %s (%s)", written, name, time.Since(start))
	return nil
}
