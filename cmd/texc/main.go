// Package main implements the texture codec's command-line front end:
// encode/decode a raw RGBA pixel dump to/from a container file, and
// inspect a container's header without a full decode.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rcarmo/go-texc"
	"github.com/rcarmo/go-texc/internal/config"
	"github.com/rcarmo/go-texc/internal/logging"
)

var (
	appName    = "texc"
	appVersion = "dev" // injected at build time via -ldflags
)

func main() {
	if len(os.Args) < 2 {
		showHelp()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "encode":
		err = runEncode(args)
	case "decode":
		err = runDecode(args)
	case "info":
		err = runInfo(args)
	case "-help", "--help", "help":
		showHelp()
		return
	case "-version", "--version", "version":
		showVersion()
		return
	default:
		fmt.Fprintf(os.Stderr, "texc: unknown command %q\n", cmd)
		showHelp()
		os.Exit(2)
	}

	if err != nil {
		logging.Error("%v", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println(appName)
	fmt.Println("USAGE: texc <encode|decode|info> [options]")
	fmt.Println("COMMANDS:")
	fmt.Println("  encode -in <raw.rgba> -w <width> -h <height> -out <file.jkl>")
	fmt.Println("  decode -in <file.jkl> -out <raw.rgba>")
	fmt.Println("  info   -in <file.jkl>")
	fmt.Println("OPTIONS (all commands):")
	fmt.Println("  -profile <name>    Footprint profile to use (default: the config's defaultProfile)")
	fmt.Println("  -log-level <level> debug, info, warn, error")
	fmt.Println("  -config <file>     Load profiles from a YAML file instead of the built-in set")
	fmt.Println("  -version           Show version information")
	fmt.Println("  -help              Show this help message")
	fmt.Println("ENVIRONMENT VARIABLES: TEXC_PROFILE, LOG_LEVEL")
	fmt.Println("EXAMPLES: texc encode -in frame.rgba -w 256 -h 256 -out frame.jkl")
}

func showVersion() {
	fmt.Printf("%s %s\n", appName, appVersion)
}

// loadConfig applies the shared -profile/-log-level/-config flags and
// returns the resolved configuration and profile.
func loadConfig(profileFlag, logLevelFlag, configFlag string) (*config.Config, config.Profile, error) {
	cfg, err := config.LoadWithOverrides(config.LoadOptions{
		Profile:    profileFlag,
		LogLevel:   logLevelFlag,
		ConfigFile: configFlag,
	})
	if err != nil {
		return nil, config.Profile{}, fmt.Errorf("load config: %w", err)
	}

	logging.SetLevelFromString(cfg.Logging.Level)

	profile, ok := cfg.Profiles[cfg.DefaultProfile]
	if !ok {
		return nil, config.Profile{}, fmt.Errorf("profile %q not found", cfg.DefaultProfile)
	}
	return cfg, profile, nil
}

// rgbaToBlocks packs a raw 8-bit RGBA buffer into an extent-sized grid of
// BC1 blocks, padding any partial edge tile with its last valid texel.
func rgbaToBlocks(raw []byte, width, height uint32) (texc.Extent, []texc.Block) {
	extent := texc.NewExtentD2(width, height)
	blocks := make([]texc.Block, extent.BlockCount())

	blocksWide := (width + 3) / 4
	for by := uint32(0); by*4 < height; by++ {
		for bx := uint32(0); bx*4 < width; bx++ {
			var tile texc.Tile
			for ty := 0; ty < 4; ty++ {
				for tx := 0; tx < 4; tx++ {
					px := bx*4 + uint32(tx)
					py := by*4 + uint32(ty)
					if px >= width {
						px = width - 1
					}
					if py >= height {
						py = height - 1
					}
					off := (py*width + px) * 4
					tile[ty][tx] = texc.RgbFloat{
						R: float32(raw[off]) / 255,
						G: float32(raw[off+1]) / 255,
						B: float32(raw[off+2]) / 255,
					}
				}
			}
			blocks[by*blocksWide+bx] = texc.EncodeBlock(tile)
		}
	}
	return extent, blocks
}

// blocksToRGBA expands a decoded block grid back to a raw 8-bit RGBA
// buffer of the given pixel dimensions, discarding any block padding.
func blocksToRGBA(extent texc.Extent, blocks []texc.Block, width, height uint32) []byte {
	blocksWide := (width + 3) / 4
	out := make([]byte, width*height*4)

	for by := uint32(0); by*4 < height; by++ {
		for bx := uint32(0); bx*4 < width; bx++ {
			tile := texc.DecodeBlock(blocks[by*blocksWide+bx])
			for ty := 0; ty < 4; ty++ {
				py := by*4 + uint32(ty)
				if py >= height {
					continue
				}
				for tx := 0; tx < 4; tx++ {
					px := bx*4 + uint32(tx)
					if px >= width {
						continue
					}
					off := (py*width + px) * 4
					texel := tile[ty][tx]
					out[off] = clampTo255(texel.R)
					out[off+1] = clampTo255(texel.G)
					out[off+2] = clampTo255(texel.B)
					out[off+3] = 0xff
				}
			}
		}
	}
	return out
}

func clampTo255(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

func readAll(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
