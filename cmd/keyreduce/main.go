package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"honnef.co/go/keyreduce"
	"honnef.co/go/keyreduce/internal/clip"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "reduce":
		if err := reduce(os.Args[2:]); err != nil {
			fatal("%v", err)
		}

	case "stats":
		if len(os.Args) < 3 {
			fatal("usage: keyreduce stats <clip.json>")
		}
		if err := stats(os.Args[2]); err != nil {
			fatal("%v", err)
		}

	case "version":
		fmt.Printf("keyreduce v%s\n", version)

	case "help", "--help", "-h":
		usage()

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func reduce(args []string) error {
	fs := flag.NewFlagSet("reduce", flag.ExitOnError)
	configPath := fs.String("config", "", "TOML file with reduction parameters")
	rate := fs.Float64("rate", 0, "resample rate in keyframes per second (overrides config)")
	quiet := fs.Bool("q", false, "do not report progress")
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: keyreduce reduce [-config file] [-rate n] <in> <out>")
	}
	in, out := fs.Arg(0), fs.Arg(1)

	cfg := keyreduce.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = keyreduce.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	if *rate > 0 {
		cfg.SampleRate = *rate
	}

	doc, err := clip.Load(in)
	if err != nil {
		return err
	}
	tracks, err := doc.Tracks()
	if err != nil {
		return err
	}
	targets := make([]keyreduce.Target, len(tracks))
	for i, t := range tracks {
		targets[i] = t
	}

	logger := log.New(os.Stderr, "keyreduce: ", 0)
	opts := []keyreduce.Option{keyreduce.WithLogger(logger)}
	if !*quiet {
		opts = append(opts, keyreduce.WithProgress(func(p keyreduce.Progress) {
			logger.Printf("%d/%d targets, %s elapsed, ~%s remaining",
				p.Done, p.Total, p.Elapsed.Round(time.Millisecond), p.Remaining.Round(time.Millisecond))
		}))
	}
	r, err := keyreduce.NewReducer(cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	results, err := r.Run(ctx, targets)
	if err != nil {
		return fmt.Errorf("reduce %s: %w", in, err)
	}

	var before, after int
	for _, res := range results {
		before += res.Before
		after += res.After
	}
	if err := clip.Save(out, clip.FromTracks(doc.Name, tracks)); err != nil {
		return err
	}
	fmt.Printf("reduced %d targets from %d to %d keyframes: %s\n", len(results), before, after, out)
	return nil
}

func stats(path string) error {
	doc, err := clip.Load(path)
	if err != nil {
		return err
	}
	tracks, err := doc.Tracks()
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d targets\n", doc.Name, len(tracks))
	for _, t := range tracks {
		lead := t.Channels().Lead()
		fmt.Printf("  %-24s %-6s %6d keyframes  %.3fs\n", t.Name(), t.Kind(), lead.Len(), lead.Duration())
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `keyreduce v%s - animation keyframe reduction

Usage:
  keyreduce reduce [-config file] [-rate n] [-q] <in> <out>
                                   Reduce every target of a clip
  keyreduce stats <clip>           Print keyframe counts per target
  keyreduce version                Print version
  keyreduce help                   Show this help

Clips are JSON documents; files ending in .zst are zstd-compressed.
`, version)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "keyreduce: "+format+"\n", args...)
	os.Exit(1)
}
