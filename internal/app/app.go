// Package app implements the application layer for cclink.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.trai.ch/cclink/internal/adapters/detector"
	"go.trai.ch/cclink/internal/adapters/linear"
	"go.trai.ch/cclink/internal/adapters/telemetry"
	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/cclink/internal/core/ports"
	"go.trai.ch/cclink/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// TracerName is the instrumentation scope of every build span.
const TracerName = "cclink"

// App represents the main application logic.
type App struct {
	loader    ports.RecipeLoader
	executor  ports.Executor
	workspace ports.Workspace
	logger    ports.Logger
	store     ports.RecordStore
	hasher    ports.Hasher

	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

// New creates a new App instance.
func New(
	loader ports.RecipeLoader,
	executor ports.Executor,
	workspace ports.Workspace,
	log ports.Logger,
	store ports.RecordStore,
	hasher ports.Hasher,
) *App {
	return &App{
		loader:    loader,
		executor:  executor,
		workspace: workspace,
		logger:    log,
		store:     store,
		hasher:    hasher,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		now:       time.Now,
	}
}

// WithOutput redirects the renderer away from the process streams.
// This is primarily used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithClock replaces the clock used for record timestamps and durations.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// RecipePath names a recipe file. When empty and Request is incomplete,
	// the recipe is discovered from the work directory upwards.
	RecipePath string
	// Request holds the values given on the command line. Set values win over the recipe.
	Request domain.BuildRequest
	// Color selects the renderer colour mode.
	Color detector.ColorMode
}

// Build runs one compile-then-link build and returns the output path.
//
//nolint:cyclop // orchestration function
func (a *App) Build(ctx context.Context, opts BuildOptions) (string, error) {
	// 1. Resolve the request
	req, err := a.resolveRequest(opts)
	if err != nil {
		return "", err
	}
	if err := req.Validate(); err != nil {
		return "", err
	}
	req.WorkDir, err = absWorkDir(req.WorkDir)
	if err != nil {
		return "", err
	}

	// 2. Initialize Renderer and Telemetry
	renderer := linear.NewRenderer(a.stdout, a.stderr, linear.WithProfile(detector.ResolveProfile(opts.Color)))
	tp := telemetry.NewProvider(telemetry.NewBridge(renderer))
	otel.SetTracerProvider(tp)
	defer func() {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracerFrom(tp, TracerName).WithRenderer(renderer)

	orch := orchestrator.New(a.executor, a.workspace, tracer, a.logger)

	// 3. Run Renderer and Orchestrator concurrently
	start := a.now()
	var res *domain.BuildResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()

		r, err := orch.Run(gctx, req)
		if err != nil {
			return domain.Tag(domain.ErrBuildFailed, err)
		}
		res = r
		return nil
	})

	if err := g.Wait(); err != nil {
		return "", err
	}

	// 4. Record the result
	if res.Skipped {
		a.logger.Info(fmt.Sprintf("%s is up to date", res.OutputPath))
		return res.OutputPath, nil
	}
	elapsed := a.now().Sub(start)
	a.saveRecord(req, res, elapsed)
	a.logger.Info(fmt.Sprintf("built %s from %d object(s) in %v",
		res.OutputPath, len(res.Objects), elapsed.Round(time.Millisecond)))

	return res.OutputPath, nil
}

func (a *App) resolveRequest(opts BuildOptions) (domain.BuildRequest, error) {
	path := opts.RecipePath
	if path == "" {
		if opts.Request.Validate() == nil {
			return opts.Request, nil
		}

		dir := opts.Request.WorkDir
		if dir == "" {
			dir = "."
		}
		found, err := a.loader.Discover(dir)
		if err != nil {
			if errors.Is(err, domain.ErrRecipeNotFound) {
				return opts.Request, nil
			}
			return domain.BuildRequest{}, err
		}
		path = found
	}

	recipe, err := a.loader.Load(path)
	if err != nil {
		return domain.BuildRequest{}, zerr.Wrap(err, "failed to load recipe")
	}
	return Merge(recipe, opts.Request), nil
}

// Merge overlays command-line values on a recipe. Strings, sources and jobs
// win when set. Flags are enabled when either side enables them.
func Merge(recipe, cli domain.BuildRequest) domain.BuildRequest {
	out := recipe

	if len(cli.SourceFiles) > 0 {
		out.SourceFiles = cli.SourceFiles
	}
	if cli.CompileCommand != "" {
		out.CompileCommand = cli.CompileCommand
	}
	if cli.LinkCommand != "" {
		out.LinkCommand = cli.LinkCommand
	}
	if cli.OutputPath != "" {
		out.OutputPath = cli.OutputPath
	}
	if cli.WorkDir != "" {
		out.WorkDir = cli.WorkDir
	}
	if cli.Jobs != 0 {
		out.Jobs = cli.Jobs
	}

	out.KeepIntermediates = recipe.KeepIntermediates || cli.KeepIntermediates
	out.ForceRebuild = recipe.ForceRebuild || cli.ForceRebuild
	out.Verbose = recipe.Verbose || cli.Verbose

	return out
}

func (a *App) saveRecord(req domain.BuildRequest, res *domain.BuildResult, elapsed time.Duration) {
	output := resolve(req.WorkDir, res.OutputPath)

	digest, err := a.hasher.DigestFile(output)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("build record not written: %v", err))
		return
	}

	record := domain.BuildRecord{
		Output:         output,
		Sources:        req.SourceFiles,
		Objects:        res.Objects,
		CompileCommand: req.CompileCommand,
		LinkCommand:    req.LinkCommand,
		OutputDigest:   digest,
		Duration:       elapsed,
		Timestamp:      a.now().UTC(),
	}
	if err := a.store.Put(req.WorkDir, record); err != nil {
		a.logger.Warn(fmt.Sprintf("build record not written: %v", err))
	}
}

// Clean removes the scratch directory and the stored record for an output.
func (a *App) Clean(_ context.Context, output, workDir string) error {
	if output == "" {
		return domain.Tag(domain.ErrInvalidRequest, zerr.New("output path is required"))
	}

	workDir, err := absWorkDir(workDir)
	if err != nil {
		return err
	}

	var errs error

	scratch := filepath.Join(workDir, domain.ScratchDirName(output))
	if _, statErr := os.Stat(scratch); statErr == nil {
		a.logger.Info(fmt.Sprintf("removing %s...", scratch))
		if err := a.workspace.DeleteDir(scratch); err != nil {
			errs = errors.Join(errs, err)
		} else {
			a.logger.Info(fmt.Sprintf("removed %s", scratch))
		}
	} else {
		a.logger.Info(fmt.Sprintf("no scratch directory for %s", output))
	}

	if err := a.store.Delete(workDir, output); err != nil {
		errs = errors.Join(errs, err)
	}

	return errs
}

// Inspect returns the stored record for an output.
func (a *App) Inspect(_ context.Context, output, workDir string) (*domain.BuildRecord, error) {
	if output == "" {
		return nil, domain.Tag(domain.ErrInvalidRequest, zerr.New("output path is required"))
	}

	workDir, err := absWorkDir(workDir)
	if err != nil {
		return nil, err
	}

	record, err := a.store.Get(workDir, output)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.Tag(domain.ErrRecordNotFound, zerr.With(zerr.New("output was never built here"), "output", output))
	}
	return record, nil
}

func absWorkDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "dir", dir)
	}
	return abs, nil
}

func resolve(workDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workDir, p)
}
