// Package orchestrator runs a compile-then-link build: one compile invocation
// per source, the objects gathered in a scratch directory, then one link.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/cclink/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Orchestrator drives builds. It never terminates the process; every failure
// is returned as an error tagged with one of the domain sentinels.
type Orchestrator struct {
	executor  ports.Executor
	workspace ports.Workspace
	tracer    ports.Tracer
	logger    ports.Logger
}

// New creates a new Orchestrator.
func New(
	executor ports.Executor,
	workspace ports.Workspace,
	tracer ports.Tracer,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		executor:  executor,
		workspace: workspace,
		tracer:    tracer,
		logger:    logger,
	}
}

// Build produces req.OutputPath and returns it.
func (o *Orchestrator) Build(ctx context.Context, req domain.BuildRequest) (string, error) {
	res, err := o.Run(ctx, req)
	if err != nil {
		return "", err
	}
	return res.OutputPath, nil
}

// build holds the resolved state of one Run.
type build struct {
	req         domain.BuildRequest
	workDir     string
	output      string
	scratchName string
	scratchDir  string
	compileTool string
	linkTool    string

	// mu serializes object collection so that moves never race.
	mu sync.Mutex
}

// Run is Build with a detailed result.
func (o *Orchestrator) Run(ctx context.Context, req domain.BuildRequest) (*domain.BuildResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := newBuild(req)
	if err != nil {
		return nil, err
	}

	ctx, span := o.tracer.Start(ctx, "build "+filepath.Base(req.OutputPath),
		ports.WithAttribute("output", req.OutputPath),
		ports.WithAttribute("work_dir", b.workDir),
	)
	defer span.End()

	res, err := o.run(ctx, b)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("skipped", res.Skipped)
	return res, nil
}

func newBuild(req domain.BuildRequest) (*build, error) {
	workDir := req.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, zerr.Wrap(err, "failed to determine working directory")
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "dir", req.WorkDir)
	}

	scratchName := domain.ScratchDirName(req.OutputPath)
	return &build{
		req:         req,
		workDir:     workDir,
		output:      resolve(workDir, req.OutputPath),
		scratchName: scratchName,
		scratchDir:  filepath.Join(workDir, scratchName),
	}, nil
}

func (o *Orchestrator) run(ctx context.Context, b *build) (*domain.BuildResult, error) {
	req := b.req
	o.diag(req, "Begin compile-link build of %s", req.OutputPath)

	if o.workspace.IsFile(b.output) && !req.ForceRebuild {
		o.diag(req, "Output file %s already exists; nothing to do", req.OutputPath)
		return &domain.BuildResult{OutputPath: req.OutputPath, Skipped: true}, nil
	}

	if err := o.workspace.DeleteFile(b.output); err != nil {
		return nil, err
	}

	var err error
	if b.compileTool, err = o.workspace.FindFile(resolve(b.workDir, req.CompileCommand), domain.ErrMissingTool); err != nil {
		return nil, err
	}
	if b.linkTool, err = o.workspace.FindFile(resolve(b.workDir, req.LinkCommand), domain.ErrMissingTool); err != nil {
		return nil, err
	}

	o.diag(req, "Preparing object directory %s", b.scratchDir)
	if err := o.workspace.CleanDir(b.scratchDir); err != nil {
		return nil, err
	}

	o.tracer.EmitPlan(ctx, plan(req))

	o.diag(req, "Compiling %d source file(s) using %s", len(req.SourceFiles), b.compileTool)
	var objects []string
	if req.Parallel() {
		objects, err = o.compileParallel(ctx, b)
	} else {
		objects, err = o.compileSequential(ctx, b)
	}
	if err != nil {
		return nil, err
	}

	if err := o.link(ctx, b, objects); err != nil {
		return nil, err
	}

	if !req.KeepIntermediates {
		o.diag(req, "Removing object directory %s", b.scratchDir)
		if err := o.workspace.DeleteDir(b.scratchDir); err != nil {
			return nil, err
		}
	}

	return &domain.BuildResult{OutputPath: req.OutputPath, Objects: objects}, nil
}

func (o *Orchestrator) compileSequential(ctx context.Context, b *build) ([]string, error) {
	objects := make([]string, 0, len(b.req.SourceFiles))
	for _, src := range b.req.SourceFiles {
		srcAbs, err := o.workspace.FindFile(resolve(b.workDir, src), domain.ErrMissingSource)
		if err != nil {
			return nil, err
		}

		obj, err := o.compile(ctx, b, srcAbs)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// compileParallel checks every source and every object name up front, then
// runs at most Jobs compiles at once. Objects keep source order.
func (o *Orchestrator) compileParallel(ctx context.Context, b *build) ([]string, error) {
	sources := make([]string, len(b.req.SourceFiles))
	seen := make(map[string]string, len(sources))
	for i, src := range b.req.SourceFiles {
		srcAbs, err := o.workspace.FindFile(resolve(b.workDir, src), domain.ErrMissingSource)
		if err != nil {
			return nil, err
		}

		stem := domain.SourceStem(srcAbs)
		if first, ok := seen[stem]; ok {
			return nil, domain.Tag(domain.ErrObjectCollision, zerr.With(zerr.With(
				zerr.New("sources share an object name"), "source", srcAbs), "first_source", first))
		}
		seen[stem] = srcAbs
		sources[i] = srcAbs
	}

	objects := make([]string, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.req.Jobs)

	for i, srcAbs := range sources {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			obj, err := o.compile(gctx, b, srcAbs)
			if err != nil {
				return err
			}
			objects[i] = obj
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return objects, nil
}

// compile runs the compile command on one source and moves its object into
// the scratch directory. It returns the object path relative to the work dir.
func (o *Orchestrator) compile(ctx context.Context, b *build, srcAbs string) (obj string, err error) {
	name := filepath.Base(srcAbs)
	o.diag(b.req, "Compiling %s", name)

	ctx, span := o.tracer.Start(ctx, "compile "+name, ports.WithAttribute("source", srcAbs))
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	inv := domain.Invocation{Command: b.compileTool, Args: []string{srcAbs}, Dir: b.workDir}
	if err := o.invoke(ctx, b, inv, span, domain.ErrCompileInvocation); err != nil {
		return "", err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return o.collectObject(b, srcAbs)
}

// collectObject must be called with b.mu held.
func (o *Orchestrator) collectObject(b *build, srcAbs string) (string, error) {
	var objName, objPath string
	for _, candidate := range domain.ObjectCandidates(srcAbs) {
		path := filepath.Join(b.workDir, candidate)
		if o.workspace.IsFile(path) {
			objName, objPath = candidate, path
			break
		}
	}
	if objName == "" {
		return "", domain.Tag(domain.ErrCompileOutputMissing, zerr.With(zerr.With(
			zerr.New("no object file found"), "source", srcAbs), "dir", b.workDir))
	}

	dest := filepath.Join(b.scratchDir, objName)
	if o.workspace.IsFile(dest) {
		return "", domain.Tag(domain.ErrObjectCollision, zerr.With(zerr.With(
			zerr.New("object already in scratch directory"), "object", objName), "dir", b.scratchDir))
	}

	if err := o.workspace.Move(objPath, dest); err != nil {
		return "", domain.Tag(domain.ErrObjectMove, zerr.With(zerr.With(
			zerr.Wrap(err, "unable to move object"), "object", objName), "dir", b.scratchDir))
	}

	return filepath.Join(b.scratchName, objName), nil
}

func (o *Orchestrator) link(ctx context.Context, b *build, objects []string) (err error) {
	req := b.req
	o.diag(req, "Linking %d object file(s) into %s using %s", len(objects), req.OutputPath, b.linkTool)

	ctx, span := o.tracer.Start(ctx, "link "+filepath.Base(req.OutputPath),
		ports.WithAttribute("output", req.OutputPath),
		ports.WithAttribute("objects", objects),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	args := make([]string, 0, len(objects)+1)
	args = append(args, req.OutputPath)
	args = append(args, objects...)

	inv := domain.Invocation{Command: b.linkTool, Args: args, Dir: b.workDir}
	if err := o.invoke(ctx, b, inv, span, domain.ErrLinkInvocation); err != nil {
		return err
	}

	if !o.workspace.IsFile(b.output) {
		return domain.Tag(domain.ErrLinkOutputMissing, zerr.With(
			zerr.New("output file was not produced"), "output", req.OutputPath))
	}
	return nil
}

// invoke runs inv and applies the exit-code policy: only a process that could
// not be started is an error. A missing tool takes precedence over startKind.
func (o *Orchestrator) invoke(
	ctx context.Context,
	b *build,
	inv domain.Invocation,
	out ports.Span,
	startKind error,
) error {
	err := o.executor.Execute(ctx, inv, out, out)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrCommandStart):
		if _, findErr := o.workspace.FindFile(inv.Command, domain.ErrMissingTool); findErr != nil {
			return findErr
		}
		return domain.Tag(startKind, zerr.With(zerr.Wrap(err, "unable to run command"), "args", inv.Args))
	case errors.Is(err, domain.ErrCommandExited):
		o.diag(b.req, "%s exited unsuccessfully (exit_code=%v); checking for its output", filepath.Base(inv.Command), exitCode(err))
		return nil
	case ctx.Err() != nil:
		return err
	default:
		return domain.Tag(startKind, zerr.With(zerr.Wrap(err, "unable to run command"), "args", inv.Args))
	}
}

func (o *Orchestrator) diag(req domain.BuildRequest, format string, args ...any) {
	if req.Verbose {
		o.logger.Info(fmt.Sprintf(format, args...))
	}
}

func plan(req domain.BuildRequest) []string {
	steps := make([]string, 0, len(req.SourceFiles)+1)
	for _, src := range req.SourceFiles {
		steps = append(steps, "compile "+filepath.Base(src))
	}
	return append(steps, "link "+filepath.Base(req.OutputPath))
}

func exitCode(err error) any {
	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		if code, ok := zErr.Metadata()["exit_code"]; ok {
			return code
		}
	}
	return "unknown"
}

func resolve(workDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workDir, p)
}
