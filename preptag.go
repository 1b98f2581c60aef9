package preptag

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"go.senan.xyz/preptag/fileutil"
	"go.senan.xyz/preptag/metadata"
	"go.senan.xyz/preptag/naming"
	"go.senan.xyz/preptag/pathformat"
	"go.senan.xyz/preptag/rename"
	"go.senan.xyz/preptag/tags"
)

var ErrRootNotDir = errors.New("root is not a directory")

type Config struct {
	AlbumFormat pathformat.Format
	TrackFormat pathformat.Format

	// Codec is nil when the binary was built without one, the metadata pipeline
	// refuses to start in that case.
	Codec tags.Codec

	// PrettyDiff shows renames as a coloured inline diff in previews.
	PrettyDiff bool
}

func NewConfig() *Config {
	return &Config{
		AlbumFormat: pathformat.MustParse(naming.DefaultAlbumFormat, naming.AlbumFields),
		TrackFormat: pathformat.MustParse(naming.DefaultTrackFormat, naming.TrackFields),
	}
}

// Confirm asks a yes or no question. A nil Confirm means don't ask, the answer is yes.
type Confirm func(question string) bool

// Prompt asks on out and reads a line from in. Only "y" or "yes", in any case, is a yes.
func Prompt(in io.Reader, out io.Writer) Confirm {
	r := bufio.NewReader(in)
	return func(question string) bool {
		fmt.Fprint(out, question)
		line, _ := r.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}

// ResolveRoot makes root absolute and checks it's a directory.
func ResolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("make abs: %w", err)
	}
	if ok, err := fileutil.IsDir(abs); err != nil || !ok {
		return "", fmt.Errorf("%w: %s", ErrRootNotDir, abs)
	}
	return abs, nil
}

// Filenames runs the rename pipeline: plan, preview, confirm, apply, report.
func Filenames(ctx context.Context, out io.Writer, confirm Confirm, cfg *Config, root string) error {
	actions, err := rename.Plan(root, &cfg.AlbumFormat, &cfg.TrackFormat)
	if err != nil {
		return fmt.Errorf("plan renames: %w", err)
	}

	WriteRenamePreview(out, actions, cfg.PrettyDiff)
	if len(actions) == 0 {
		return nil
	}

	if confirm != nil && !confirm("\nApply these changes? [y/N]: ") {
		fmt.Fprintln(out, "Aborted. No changes applied.")
		return nil
	}

	fmt.Fprintln(out, "\nApplying changes...")
	results, err := rename.Apply(ctx, root, actions)

	var failed int
	for _, r := range results {
		switch {
		case r.Err == nil:
			fmt.Fprintf(out, "[OK] %s -> %s\n", r.Action.Source, r.Action.Target)
		case errors.Is(r.Err, rename.ErrSourceMissing):
			fmt.Fprintf(out, "[SKIP] %v: %s\n", r.Err, r.Action.Source)
		case errors.Is(r.Err, rename.ErrTargetExists):
			fmt.Fprintf(out, "[SKIP] %v: %s\n", r.Err, r.Action.Target)
		default:
			fmt.Fprintf(out, "[ERR] %s: %v\n", r.Action.Source, r.Err)
			slog.Error("rename", "source", r.Action.Source, "target", r.Action.Target, "err", r.Err)
			failed++
		}
	}
	if err != nil {
		return fmt.Errorf("apply renames: %w", err)
	}

	fmt.Fprintf(out, "\nDone. Applied %d rename(s).\n", rename.Applied(results))
	if failed > 0 {
		return fmt.Errorf("%d rename(s) failed", failed)
	}
	return nil
}

// Metadata runs the tagging pipeline: plan, preview, confirm, apply, report.
func Metadata(ctx context.Context, out io.Writer, confirm Confirm, cfg *Config, root string) error {
	if cfg.Codec == nil {
		return fmt.Errorf("%w: %s was built without taglib support (cgo)", tags.ErrNoCodec, Name)
	}

	actions, err := metadata.Plan(cfg.Codec, root)
	if err != nil {
		return fmt.Errorf("reading media files: %w", err)
	}

	WriteMetadataPreview(out, actions)
	if len(actions) == 0 {
		return nil
	}

	if confirm != nil && !confirm("\nApply these metadata changes? [y/N]: ") {
		fmt.Fprintln(out, "Aborted. No changes applied.")
		return nil
	}

	fmt.Fprintln(out, "\nApplying metadata updates...")
	results, err := metadata.Apply(ctx, cfg.Codec, root, actions)
	for _, r := range results {
		switch {
		case r.Err == nil:
			fmt.Fprintf(out, "[OK] updated tags: %s\n", r.Action.Path)
		case r.Skipped():
			fmt.Fprintf(out, "[SKIP] unsupported format: %s\n", r.Action.Path)
		}
	}
	if err != nil {
		return fmt.Errorf("writing media files: %w", err)
	}

	fmt.Fprintf(out, "\nDone. Updated %d file(s).\n", metadata.Applied(results))
	return nil
}

// All runs renames then tagging with no confirmation. Canonical names come first so
// the tagging pass can read as many files as possible. Tagging is skipped if renaming
// failed.
func All(ctx context.Context, out io.Writer, cfg *Config, root string) error {
	if err := Filenames(ctx, out, nil, cfg, root); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return Metadata(ctx, out, nil, cfg, root)
}
