package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rcarmo/go-texc"
	"github.com/rcarmo/go-texc/internal/logging"
)

type decodeArgs struct {
	in, out           string
	profile, logLevel string
	configFile        string
	parallel          bool
}

// parseDecodeArgs parses the given arguments for the decode command.
func parseDecodeArgs(args []string) (decodeArgs, error) {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	in := fs.String("in", "", "container input file")
	out := fs.String("out", "", "raw RGBA output file")
	profile := fs.String("profile", "", "footprint profile name")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	configFile := fs.String("config", "", "profiles YAML file")
	parallel := fs.Bool("parallel", false, "decode super-blocks concurrently")

	if err := fs.Parse(args); err != nil {
		return decodeArgs{}, err
	}
	if *in == "" || *out == "" {
		return decodeArgs{}, fmt.Errorf("decode: -in and -out are required")
	}

	return decodeArgs{
		in:         *in,
		out:        *out,
		profile:    *profile,
		logLevel:   *logLevel,
		configFile: *configFile,
		parallel:   *parallel,
	}, nil
}

func runDecode(args []string) error {
	parsed, err := parseDecodeArgs(args)
	if err != nil {
		return err
	}

	_, profile, err := loadConfig(parsed.profile, parsed.logLevel, parsed.configFile)
	if err != nil {
		return err
	}

	f, err := os.Open(parsed.in)
	if err != nil {
		return fmt.Errorf("decode: open %s: %w", parsed.in, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("decode: stat %s: %w", parsed.in, err)
	}

	header, err := texc.ReadHeader(f)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	footprintW, footprintH := profile.Footprint(header.Extent.Width(), header.Extent.Height())
	decode := texc.Decompress
	if parsed.parallel {
		decode = texc.DecodeParallel
	}

	extent, blocks, err := decode(f, info.Size(), footprintW, footprintH)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	raw := blocksToRGBA(extent, blocks, extent.Width(), extent.Height())
	if err := os.WriteFile(parsed.out, raw, 0o644); err != nil {
		return fmt.Errorf("decode: write %s: %w", parsed.out, err)
	}

	logging.Info("decoded %s (%dx%d, %d blocks) to %s", parsed.in, extent.Width(), extent.Height(), len(blocks), parsed.out)
	return nil
}
