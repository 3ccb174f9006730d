// stonegen — Procedural icons and sounds for the stones app.
//
// Usage:
//
//	stonegen [build] -out <dir> [-only icons|sounds] [-workers N] [-v]
//	stonegen icon -scene <name> -size <px> -o <file>
//	stonegen sound -effect <name> [-rate <hz>] -o <file>
//	stonegen placeholders -out <dir>
//	stonegen serve [-port 8080] [-open]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/xob0t/stonegen/clients/server"
	"github.com/xob0t/stonegen/pkg/generator"
	"github.com/xob0t/stonegen/pkg/pipeline"
	"github.com/xob0t/stonegen/pkg/scene"
	"github.com/xob0t/stonegen/pkg/synth"
)

func main() {
	args := os.Args[1:]
	cmd := "build"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "build":
		err = runBuild(args, os.Stdout)
	case "icon":
		err = runIcon(args, os.Stdout)
	case "sound":
		err = runSound(args, os.Stdout)
	case "placeholders":
		err = runPlaceholders(args, os.Stdout)
	case "serve":
		err = server.RunServe(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}
}

func runBuild(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)

	var (
		out     string
		only    string
		workers int
		verbose bool
	)
	fs.StringVar(&out, "out", ".", "Output root directory")
	fs.StringVar(&out, "o", ".", "Output root directory")
	fs.StringVar(&only, "only", "", "Build only icons or sounds")
	fs.IntVar(&workers, "workers", 0, "Parallel assets (default: GOMAXPROCS)")
	fs.BoolVar(&verbose, "v", false, "Log per-asset timings")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(verbose)

	assets := pipeline.DefaultManifest()
	if only != "" {
		k, err := pipeline.ParseKind(only)
		if err != nil {
			return err
		}
		assets = pipeline.Filter(assets, k)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return report(stdout, pipeline.Run(ctx, out, assets, pipeline.Options{Workers: workers}))
}

func runPlaceholders(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("placeholders", flag.ExitOnError)
	var out string
	fs.StringVar(&out, "out", ".", "Output root directory")
	fs.StringVar(&out, "o", ".", "Output root directory")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(false)

	return report(stdout, pipeline.Run(context.Background(), out, pipeline.PlaceholderManifest(), pipeline.Options{}))
}

// report prints one line per asset and fails if any asset failed.
func report(w io.Writer, results []pipeline.Result) error {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "FAIL %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(w, "Generated: %s (%d bytes)\n", r.Path, r.Bytes)
	}
	if failed := pipeline.Failed(results); len(failed) > 0 {
		return fmt.Errorf("%d of %d assets failed", len(failed), len(results))
	}
	fmt.Fprintf(w, "Done: %d assets\n", len(results))
	return nil
}

func runIcon(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("icon", flag.ExitOnError)

	var (
		name   string
		output string
		size   int
		height int
	)
	fs.StringVar(&name, "scene", "app", "Scene: app, foreground, splash, feature")
	fs.StringVar(&output, "o", "", "Output file path (.png)")
	fs.StringVar(&output, "output", "", "Output file path (.png)")
	fs.IntVar(&size, "size", 0, "Width in pixels (default: scene size)")
	fs.IntVar(&height, "height", 0, "Height in pixels, feature only")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if output == "" {
		return fmt.Errorf("output file is required (-o)")
	}

	k, err := scene.Parse(name)
	if err != nil {
		return err
	}
	w, h := k.DefaultSize()
	if size != 0 {
		w = size
	}
	if height != 0 {
		h = height
	}

	c, err := scene.Render(k, w, h)
	if err != nil {
		return fmt.Errorf("render %s: %w", k, err)
	}
	if err := generator.Generate(output, generator.Config{Image: c}); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Generated: %s (%dx%d)\n", output, c.Width(), c.Height())
	return nil
}

func runSound(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("sound", flag.ExitOnError)

	var (
		name   string
		output string
		rate   int
	)
	fs.StringVar(&name, "effect", "", "Effect: place, slide, flatten, win")
	fs.StringVar(&output, "o", "", "Output file path (.wav)")
	fs.StringVar(&output, "output", "", "Output file path (.wav)")
	fs.IntVar(&rate, "rate", synth.DefaultSampleRate, "Sample rate in Hz")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if output == "" {
		return fmt.Errorf("output file is required (-o)")
	}

	e, err := synth.ParseEffect(name)
	if err != nil {
		return err
	}
	samples, err := synth.Synthesize(e, rate, e.Duration())
	if err != nil {
		return err
	}
	if err := generator.Generate(output, generator.Config{Samples: samples, SampleRate: rate}); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Generated: %s (%d samples @ %d Hz)\n", output, len(samples), rate)
	return nil
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	pipeline.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`stonegen — Procedural icons and sounds (Pure Go)

USAGE:
    stonegen [build] -out <dir> [options]
    stonegen icon -scene <name> -o <file> [options]
    stonegen sound -effect <name> -o <file> [options]
    stonegen placeholders -out <dir>
    stonegen serve [-port 8080] [-open]

BUILD:
    -out <dir>             Output root (default: .)
    -only icons|sounds     Build a subset
    -workers <n>           Parallel assets (default: GOMAXPROCS)
    -v                     Log per-asset timings to stderr

ICON:
    -scene <name>          app, foreground, splash, feature (default: app)
    -size <px>             Width (default: 1024, splash 512)
    -height <px>           Height, feature graphic only (default: 500)
    -o <file>              Output .png

SOUND:
    -effect <name>         place, slide, flatten, win
    -rate <hz>             Sample rate (default: 22050)
    -o <file>              Output .wav

PLACEHOLDERS:
    Writes silent 0.1s sounds at every sound path.

UI SERVER:
    stonegen serve [-port 8080] [-open]   Preview every asset in a browser

EXAMPLES:
    stonegen -out ./app
    stonegen build -out ./app -only sounds -v
    stonegen icon -scene splash -size 256 -o splash.png
    stonegen sound -effect win -o win.wav
`)
}
