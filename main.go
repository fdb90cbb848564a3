// ABOUTME: Entry point for the untracker stem extraction tool
// ABOUTME: Parses CLI flags and runs one extraction over a module file
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/untracker/untracker-go/internal/engine"
	"github.com/untracker/untracker-go/internal/stems"
	"github.com/untracker/untracker-go/internal/version"
	"github.com/untracker/untracker-go/pkg/audio/encode"
	"github.com/untracker/untracker-go/pkg/audio/resample"
)

var (
	input         = flag.String("input", "", "Module file to extract stems from (required)")
	outputDir     = flag.String("output-dir", "stems", "Directory for extracted stem files")
	sampleRate    = flag.Int("sample-rate", 44100, "Output sample rate in Hz")
	channels      = flag.Int("channels", 2, "Output channel count (1 or 2)")
	method        = flag.String("resample", "sinc", "Resampling method: nearest, linear, cubic or sinc")
	format        = flag.String("format", "wav", "Output format: wav, flac, opus or vorbis")
	bitDepth      = flag.Int("bit-depth", 16, "Bit depth for wav output (16 or 24)")
	opusBitrate   = flag.Int("opus-bitrate", 128, "Opus bitrate in kbit/s")
	vorbisQuality = flag.Int("vorbis-quality", 5, "Vorbis quality level (0-10)")
	separation    = flag.Int("stereo-separation", 100, "Stereo separation percentage (0-200)")
	parallel      = flag.Bool("parallel", false, "Render stems concurrently")
	workers       = flag.Int("workers", 0, "Worker count for -parallel (0 = one per CPU, capped)")
	maxSizeMB     = flag.Int64("max-size-mb", 64, "Maximum module file size in MiB (0 = unlimited)")
	showVersion   = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", version.Product, version.Version)
		return
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "missing required -input flag")
		flag.Usage()
		os.Exit(1)
	}

	outFormat, err := encode.ParseFormat(*format)
	if err != nil {
		log.Fatalf("invalid -format: %v", err)
	}
	resampleMethod, err := resample.ParseMethod(*method)
	if err != nil {
		log.Fatalf("invalid -resample: %v", err)
	}

	loader, err := engine.DefaultLoader()
	if err != nil {
		log.Fatalf("cannot extract stems: %v", err)
	}

	cfg := stems.RunConfig{
		ModulePath: *input,
		OutputDir:  *outputDir,
		Loader:     loader,
		Resample: resample.Spec{
			TargetRate:        *sampleRate,
			TargetChannels:    *channels,
			Method:            resampleMethod,
			SeparationPercent: *separation,
		},
		Format: outFormat,
		Encode: encode.Options{
			BitDepth:      *bitDepth,
			OpusBitrate:   *opusBitrate,
			VorbisQuality: *vorbisQuality,
		},
		Parallel:       *parallel,
		Workers:        *workers,
		MaxModuleBytes: *maxSizeMB << 20,
	}

	res, err := stems.Run(cfg)
	if err != nil {
		log.Fatalf("extraction failed: %v", err)
	}
	if len(res.Failed) > 0 {
		log.Printf("%d of %d stems failed", len(res.Failed), res.Total)
		os.Exit(1)
	}
}
