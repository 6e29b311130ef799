package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rcarmo/go-texc"
	"github.com/rcarmo/go-texc/internal/logging"
)

type infoArgs struct {
	in                string
	profile, logLevel string
	configFile        string
}

// parseInfoArgs parses the given arguments for the info command.
func parseInfoArgs(args []string) (infoArgs, error) {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	in := fs.String("in", "", "container input file")
	profile := fs.String("profile", "", "footprint profile name")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	configFile := fs.String("config", "", "profiles YAML file")

	if err := fs.Parse(args); err != nil {
		return infoArgs{}, err
	}
	if *in == "" {
		return infoArgs{}, fmt.Errorf("info: -in is required")
	}

	return infoArgs{in: *in, profile: *profile, logLevel: *logLevel, configFile: *configFile}, nil
}

func runInfo(args []string) error {
	parsed, err := parseInfoArgs(args)
	if err != nil {
		return err
	}

	_, profile, err := loadConfig(parsed.profile, parsed.logLevel, parsed.configFile)
	if err != nil {
		return err
	}

	f, err := os.Open(parsed.in)
	if err != nil {
		return fmt.Errorf("info: open %s: %w", parsed.in, err)
	}
	defer f.Close()

	header, err := texc.ReadHeader(f)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	footprintW, footprintH := profile.Footprint(header.Extent.Width(), header.Extent.Height())
	superCount := superBlockCount(header.Extent, footprintW, footprintH)

	logging.Info("%s: dim=%v extent=%dx%dx%d footprint_id=%d mip_levels=%d super_blocks=%d (footprint %dx%d)",
		parsed.in, header.Extent.Dim, header.Extent.Width(), header.Extent.Height(), header.Extent.Depth(),
		header.FootprintID, header.MipLevels, superCount, footprintW, footprintH)
	return nil
}

// superBlockCount mirrors internal/container.Geometry's axis resolution:
// D1/D1Array collapse to a single row, and an array dimension's layer
// count (stored in whichever raw-size slot Validate leaves unconstrained)
// stands in for depth.
func superBlockCount(extent texc.Extent, footprintW, footprintH uint16) uint64 {
	width := uint64(extent.Width())
	height := uint64(1)
	depth := uint64(1)

	switch extent.Dim {
	case texc.D1:
		// height, depth stay 1
	case texc.D1Array:
		depth = uint64(extent.Height())
	case texc.D3, texc.D2Array:
		height = uint64(extent.Height())
		depth = uint64(extent.Depth())
	default: // D2
		height = uint64(extent.Height())
	}

	countX := (width + uint64(footprintW) - 1) / uint64(footprintW)
	countY := (height + uint64(footprintH) - 1) / uint64(footprintH)
	return countX * countY * depth
}
