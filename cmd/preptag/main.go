package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.senan.xyz/preptag"
	"go.senan.xyz/preptag/cmd/internal/cmds"
	"go.senan.xyz/preptag/tags"
)

func init() {
	flag.CommandLine.Init(preptag.Name, flag.ExitOnError)
	flag.Usage = func() {
		out, name := flag.CommandLine.Output(), flag.CommandLine.Name()
		fmt.Fprintf(out, "Prepare music files: normalise folder and file names, and set metadata tags.\n")
		fmt.Fprintf(out, "\n")
		fmt.Fprintf(out, "Usage:\n")
		fmt.Fprintf(out, "  $ %s [-apply | -filenames | -metadata] [<options>]\n", name)
		fmt.Fprintf(out, "\n")
		fmt.Fprintf(out, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(out, "\n")
		fmt.Fprintf(out, "Examples:\n")
		fmt.Fprintf(out, "  $ %s\n", name)
		fmt.Fprintf(out, "      show this help\n")
		fmt.Fprintf(out, "  $ %s -filenames -root /media/import\n", name)
		fmt.Fprintf(out, "      preview and confirm renames only\n")
		fmt.Fprintf(out, "  $ %s -metadata -root /media/import\n", name)
		fmt.Fprintf(out, "      preview and confirm metadata tagging only\n")
		fmt.Fprintf(out, "  $ %s -apply -root /media/import\n", name)
		fmt.Fprintf(out, "      rename then tag, no prompts\n")
		fmt.Fprintf(out, "  $ %s -filenames -root /media/import -yes\n", name)
		fmt.Fprintf(out, "      rename only, non-interactive\n")
		fmt.Fprintf(out, "  $ %s -metadata -root /media/import -yes\n", name)
		fmt.Fprintf(out, "      tag only, non-interactive\n")
	}
}

func main() {
	exit := cmds.Logging()
	defer exit()

	cfg := cmds.FlagConfig()
	cwd, _ := os.Getwd()
	var (
		apply     = flag.Bool("apply", false, "run filenames then metadata with no confirmations")
		filenames = flag.Bool("filenames", false, "run filename and folder normalisation only")
		metadata  = flag.Bool("metadata", false, "run metadata tagging only")
		root      = flag.String("root", cwd, "root directory to scan")
		yes       = flag.Bool("yes", false, "apply changes without confirmation, for -filenames and -metadata")
	)

	cmds.FlagParse()

	if len(os.Args) == 1 {
		flag.Usage()
		return
	}

	n := countTrue(*apply, *filenames, *metadata)
	if n > 1 {
		fmt.Fprintf(flag.CommandLine.Output(), "only one of -apply, -filenames, -metadata may be given\n")
		flag.Usage()
		os.Exit(2)
	}

	rootDir, err := preptag.ResolveRoot(*root)
	if err != nil {
		slog.Error("checking root", "err", err)
		return
	}
	if n == 0 {
		flag.Usage()
		return
	}

	if codec, err := tags.Default(); err == nil {
		cfg.Codec = codec
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var confirm preptag.Confirm
	if !*yes {
		confirm = preptag.Prompt(os.Stdin, os.Stdout)
	}

	switch {
	case *apply:
		err = preptag.All(ctx, os.Stdout, cfg, rootDir)
	case *filenames:
		err = preptag.Filenames(ctx, os.Stdout, confirm, cfg, rootDir)
	case *metadata:
		err = preptag.Metadata(ctx, os.Stdout, confirm, cfg, rootDir)
	}
	if err != nil {
		slog.Error("processing", "root", rootDir, "err", err)
		return
	}
}

func countTrue(bs ...bool) int {
	var n int
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}
