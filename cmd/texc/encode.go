package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rcarmo/go-texc"
	"github.com/rcarmo/go-texc/internal/logging"
)

type encodeArgs struct {
	in, out           string
	width, height     uint
	profile, logLevel string
	configFile        string
	parallel          bool
}

// parseEncodeArgs parses the given arguments for the encode command.
func parseEncodeArgs(args []string) (encodeArgs, error) {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	in := fs.String("in", "", "raw RGBA input file")
	out := fs.String("out", "", "container output file")
	width := fs.Uint("w", 0, "image width in pixels")
	height := fs.Uint("h", 0, "image height in pixels")
	profile := fs.String("profile", "", "footprint profile name")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	configFile := fs.String("config", "", "profiles YAML file")
	parallel := fs.Bool("parallel", false, "compress super-blocks concurrently")

	if err := fs.Parse(args); err != nil {
		return encodeArgs{}, err
	}

	if *in == "" || *out == "" || *width == 0 || *height == 0 {
		return encodeArgs{}, fmt.Errorf("encode: -in, -out, -w and -h are required")
	}

	return encodeArgs{
		in:         *in,
		out:        *out,
		width:      *width,
		height:     *height,
		profile:    *profile,
		logLevel:   *logLevel,
		configFile: *configFile,
		parallel:   *parallel,
	}, nil
}

func runEncode(args []string) error {
	parsed, err := parseEncodeArgs(args)
	if err != nil {
		return err
	}

	_, profile, err := loadConfig(parsed.profile, parsed.logLevel, parsed.configFile)
	if err != nil {
		return err
	}

	raw, err := readAll(parsed.in)
	if err != nil {
		return fmt.Errorf("encode: read %s: %w", parsed.in, err)
	}
	want := int(parsed.width) * int(parsed.height) * 4
	if len(raw) != want {
		return fmt.Errorf("encode: %s is %d bytes, expected %d for %dx%d RGBA", parsed.in, len(raw), want, parsed.width, parsed.height)
	}

	extent, blocks := rgbaToBlocks(raw, uint32(parsed.width), uint32(parsed.height))
	footprintW, footprintH := profile.Footprint(uint32(parsed.width), uint32(parsed.height))

	f, err := os.Create(parsed.out)
	if err != nil {
		return fmt.Errorf("encode: create %s: %w", parsed.out, err)
	}
	defer f.Close()

	encode := texc.Compress
	if parsed.parallel {
		encode = texc.EncodeParallel
	}
	if err := encode(extent, footprintW, footprintH, profile.FootprintID, blocks, f); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	logging.Info("encoded %s (%dx%d, %d blocks) to %s", parsed.in, parsed.width, parsed.height, len(blocks), parsed.out)
	return nil
}
