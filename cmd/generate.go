package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/giterra/giterra/internal/catalog"
	commitapp "github.com/giterra/giterra/internal/commits/application"
	commitinfra "github.com/giterra/giterra/internal/commits/infrastructure"
	gitinfra "github.com/giterra/giterra/internal/git/infrastructure"
	"github.com/giterra/giterra/internal/log"
	"github.com/giterra/giterra/internal/planet/application"
	"github.com/giterra/giterra/internal/random"
	"github.com/giterra/giterra/internal/render"
	"github.com/giterra/giterra/internal/watch"
)

// sourceOptions selects where commits are read from.
type sourceOptions struct {
	input string
	repo  string
}

type generateOptions struct {
	sourceOptions
	watch bool
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one planet segment from commits",
		Long: `Generate classifies commits, selects the segment theme and places one asset per commit.

Commits are read from a JSON or YAML commit file (--input) or from a git
repository (--repo, default the current directory). The output is a planet
segment configuration for a renderer.`,
		Example: `  giterra generate --repo . --segment 2
  giterra generate --input commits.yaml --seed 42 --format text
  giterra generate --repo ~/src/project --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "commit file (.json, .yaml or .yml)")
	cmd.Flags().StringVarP(&opts.repo, "repo", "r", "", "git repository to read commits from (default \".\")")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "regenerate when the commit source changes")
	cmd.Flags().IntP("segment", "s", 0, "octant index in [0,7]")
	cmd.Flags().Int64("seed", 0, "random seed; 0 picks a fresh one")
	cmd.Flags().StringP("format", "f", "", "output format: json, yaml or text")
	cmd.Flags().Float64("radius", 0, "planet surface radius")
	cmd.Flags().Int("limit", 0, "maximum commits to read from the repository")
	cmd.Flags().String("ref", "", "branch, tag or commit to read (default HEAD)")
	cmd.MarkFlagsMutuallyExclusive("input", "repo")

	_ = a.v.BindPFlag("planet.segment", cmd.Flags().Lookup("segment"))
	_ = a.v.BindPFlag("generation.seed", cmd.Flags().Lookup("seed"))
	_ = a.v.BindPFlag("output.format", cmd.Flags().Lookup("format"))
	_ = a.v.BindPFlag("planet.radius", cmd.Flags().Lookup("radius"))
	_ = a.v.BindPFlag("git.limit", cmd.Flags().Lookup("limit"))
	_ = a.v.BindPFlag("git.ref", cmd.Flags().Lookup("ref"))

	return cmd
}

// source returns the commit source selected by opts and the path to watch.
func (a *app) source(opts *sourceOptions) (commitapp.CommitSource, string, error) {
	if opts.input != "" {
		src, err := commitinfra.NewFileSource(opts.input, "")
		if err != nil {
			return nil, "", err
		}
		return src, opts.input, nil
	}

	repo := opts.repo
	if repo == "" {
		repo = "."
	}
	reader := gitinfra.NewExecutor(repo, a.cfg.Git.Timeout)
	cache := gitinfra.NewClassificationCache(gitinfra.DefaultCacheTTL)
	return gitinfra.NewCommitSource(reader, cache, a.cfg.Git.Ref, a.cfg.Git.Limit), repo, nil
}

func (a *app) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	src, watchPath, err := a.source(&opts.sourceOptions)
	if err != nil {
		return err
	}

	cat, err := catalog.Load()
	if err != nil {
		return err
	}

	// Resolve once so --watch refreshes keep the same seed.
	seed, err := random.Resolve(a.cfg.Generation.Seed)
	if err != nil {
		return err
	}
	gen := application.NewGenerator(
		application.WithRadius(a.cfg.Planet.Radius),
		application.WithSeed(seed),
	)

	run := func(ctx context.Context) error {
		return generateOnce(ctx, cmd.OutOrStdout(), src, gen, a.cfg.Planet.Segment, a.cfg.Output.Format, cat)
	}

	if !opts.watch {
		return run(cmd.Context())
	}
	return watchAndGenerate(cmd.Context(), watchPath, a.cfg.Watch.Debounce, cmd.ErrOrStderr(), run)
}

func generateOnce(
	ctx context.Context,
	out io.Writer,
	src commitapp.CommitSource,
	gen *application.Generator,
	segment int,
	format string,
	cat *catalog.Catalog,
) error {
	commits, err := src.Commits(ctx)
	if err != nil {
		return err
	}
	cfg, err := gen.Generate(ctx, commits, segment)
	if err != nil {
		return err
	}
	return render.Write(out, cfg, format, cat)
}

// watchAndGenerate runs fn now and after every change to path until ctx is
// done. Failed regenerations are reported and the watch continues.
func watchAndGenerate(ctx context.Context, path string, debounce time.Duration, errOut io.Writer, fn func(context.Context) error) error {
	w, err := watch.New(path, debounce)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	if err := fn(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-w.Events():
			log.Info(log.CatWatch, "Commit source changed, regenerating", "path", path)
			if err := fn(ctx); err != nil {
				log.ErrorErr(log.CatWatch, "Regeneration failed", err, "path", path)
				fmt.Fprintln(errOut, "error:", err)
			}
		}
	}
}
