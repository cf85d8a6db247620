package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/rayozzie/tumbler"
	"github.com/rayozzie/tumbler/pkg/entropy"
	"github.com/rayozzie/tumbler/pkg/trace"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage:
  tumbler generate [-engine NAME] [-seed N] [-count N] [-format raw|hex|text] [-out FILE] [-digest] [-quantum] [-config FILE] [-verbose]
  tumbler sample [-engine NAME] [-seed N] [-count N] [-min A] [-max B] [-float] [-unique] [-quantum] [-config FILE] [-verbose]

Engines: %s

Options:
  -engine NAME      Engine to run (default from config file, else chacha20)
  -seed N           Deterministic seed; when omitted, engines key from entropy
  -count N          Number of 64-bit values or draws (default: 16)
  -format FORMAT    Generate output format: raw, hex or text (default: raw)
  -out FILE         Write generate output to FILE instead of stdout
  -digest           Print the BLAKE2b-256 digest of the generated values
  -min A, -max B    Range bounds for sample (integers unless -float)
  -float            Sample floats instead of integers
  -unique           Sample a duplicate-free sequence
  -quantum          Mix the ANU quantum source into entropy keying
  -config FILE      TOML config file (default: %s)
  -verbose          Enable detailed (debug/trace) output
`, strings.Join(tumbler.EngineNames(), ", "), tumbler.DefaultConfigFile)
	os.Exit(1)
}

// newContext installs the tracer and entropy options the subcommands
// share.
func newContext(verbose, quantum bool) context.Context {
	level := trace.LogLevelNormal
	if verbose {
		level = trace.LogLevelVerbose
	}
	ctx := trace.WithContext(context.Background(), trace.NewTracer("TUMBLER", level))
	if quantum {
		ctx = entropy.WithQuantumEnabled(ctx)
	}
	return ctx
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	engineVal := fs.String("engine", "", "engine to run")
	seedVal := fs.Uint64("seed", 0, "deterministic seed")
	countVal := fs.Uint64("count", 16, "number of 64-bit values")
	formatVal := fs.String("format", "", "raw, hex or text")
	outVal := fs.String("out", "", "output file (default: stdout)")
	digestVal := fs.Bool("digest", false, "print BLAKE2b-256 digest of the values")
	quantumVal := fs.Bool("quantum", false, "mix the quantum entropy source in")
	configVal := fs.String("config", tumbler.DefaultConfigFile, "TOML config file")
	verboseVal := fs.Bool("verbose", false, "enable detailed (trace/debug) output")
	fs.Parse(args)

	var seeded, explicitConfig, digestSet bool
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			seeded = true
		case "config":
			explicitConfig = true
		case "digest":
			digestSet = true
		}
	})

	conf, err := tumbler.LoadConfig(*configVal, explicitConfig)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if *engineVal == "" {
		*engineVal = conf.Engine
	}
	if *formatVal == "" {
		*formatVal = conf.Format
	}
	if !digestSet {
		*digestVal = conf.Digest
	}

	out := io.Writer(os.Stdout)
	if *outVal != "" {
		f, err := os.Create(*outVal)
		if err != nil {
			log.Fatalf("Error: failed to create output file %s: %v", *outVal, err)
		}
		defer f.Close()
		out = f
	}

	ctx := newContext(*verboseVal, *quantumVal)
	digest, err := tumbler.Generate(ctx, tumbler.GenerateConfig{
		Engine: *engineVal,
		Seeded: seeded,
		Seed:   *seedVal,
		Count:  *countVal,
		Format: *formatVal,
		Out:    out,
		Digest: *digestVal,
	})
	if err != nil {
		log.Fatalf("Error: Generate failed: %v", err)
	}
	if digest != "" {
		fmt.Fprintf(os.Stderr, "blake2b-256: %s\n", digest)
	}
}

func runSample(args []string) {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	engineVal := fs.String("engine", "", "engine to run")
	seedVal := fs.Uint64("seed", 0, "deterministic seed")
	countVal := fs.Int("count", 16, "number of draws")
	minVal := fs.String("min", "", "lower range bound")
	maxVal := fs.String("max", "", "upper range bound")
	floatVal := fs.Bool("float", false, "sample floats instead of integers")
	uniqueVal := fs.Bool("unique", false, "sample a duplicate-free sequence")
	quantumVal := fs.Bool("quantum", false, "mix the quantum entropy source in")
	configVal := fs.String("config", tumbler.DefaultConfigFile, "TOML config file")
	verboseVal := fs.Bool("verbose", false, "enable detailed (trace/debug) output")
	fs.Parse(args)

	var seeded, explicitConfig bool
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			seeded = true
		case "config":
			explicitConfig = true
		}
	})

	conf, err := tumbler.LoadConfig(*configVal, explicitConfig)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if *engineVal == "" {
		*engineVal = conf.Engine
	}

	cfg := tumbler.SampleConfig{
		Engine: *engineVal,
		Seeded: seeded,
		Seed:   *seedVal,
		Count:  *countVal,
		Out:    os.Stdout,
		Float:  *floatVal,
		Unique: *uniqueVal,
	}

	if *minVal != "" || *maxVal != "" {
		if *minVal == "" || *maxVal == "" {
			log.Fatalf("Error: -min and -max must be given together")
		}
		cfg.Bounded = true
		if *floatVal {
			lo, err := strconv.ParseFloat(*minVal, 64)
			if err != nil {
				log.Fatalf("Error: invalid -min value %q: %v", *minVal, err)
			}
			hi, err := strconv.ParseFloat(*maxVal, 64)
			if err != nil {
				log.Fatalf("Error: invalid -max value %q: %v", *maxVal, err)
			}
			cfg.FloatMin, cfg.FloatMax = lo, hi
		} else {
			lo, err := strconv.ParseInt(*minVal, 10, 64)
			if err != nil {
				log.Fatalf("Error: invalid -min value %q: %v", *minVal, err)
			}
			hi, err := strconv.ParseInt(*maxVal, 10, 64)
			if err != nil {
				log.Fatalf("Error: invalid -max value %q: %v", *maxVal, err)
			}
			cfg.IntMin, cfg.IntMax = lo, hi
		}
	}

	ctx := newContext(*verboseVal, *quantumVal)
	if err := tumbler.Sample(ctx, cfg); err != nil {
		log.Fatalf("Error: Sample failed: %v", err)
	}
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(os.Args[2:])
	case "sample":
		runSample(os.Args[2:])
	default:
		usage()
	}
}
