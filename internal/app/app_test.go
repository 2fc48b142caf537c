package app_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cclink/internal/adapters/detector"
	"go.trai.ch/cclink/internal/adapters/fs"
	"go.trai.ch/cclink/internal/app"
	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/cclink/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type harness struct {
	t        *testing.T
	workDir  string
	compile  string
	link     string
	loader   *mocks.MockRecipeLoader
	executor *mocks.MockExecutor
	logger   *mocks.MockLogger
	store    *mocks.MockRecordStore
	hasher   *mocks.MockHasher
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	app      *app.App
}

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	workDir := t.TempDir()
	h := &harness{
		t:        t,
		workDir:  workDir,
		compile:  filepath.Join(workDir, "compile.sh"),
		link:     filepath.Join(workDir, "link.sh"),
		loader:   mocks.NewMockRecipeLoader(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		store:    mocks.NewMockRecordStore(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
		stdout:   new(bytes.Buffer),
		stderr:   new(bytes.Buffer),
	}
	h.writeFile(h.compile, "#!/bin/sh\n")
	h.writeFile(h.link, "#!/bin/sh\n")

	h.app = app.New(h.loader, h.executor, fs.NewWorkspace(), h.logger, h.store, h.hasher).
		WithOutput(h.stdout, h.stderr).
		WithClock(func() time.Time { return fixedNow })

	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return h
}

func (h *harness) writeFile(path, content string) {
	h.t.Helper()
	require.NoError(h.t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(h.t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
}

func (h *harness) request(sources ...string) domain.BuildRequest {
	for _, src := range sources {
		h.writeFile(filepath.Join(h.workDir, src), "int x;\n")
	}
	return domain.BuildRequest{
		SourceFiles:    sources,
		CompileCommand: h.compile,
		LinkCommand:    h.link,
		OutputPath:     "prog.exe",
		WorkDir:        h.workDir,
	}
}

// toolchain behaves like compile and link scripts that also print a line each.
func (h *harness) toolchain(_ context.Context, inv domain.Invocation, stdout, _ io.Writer) error {
	switch inv.Command {
	case h.compile:
		stem := domain.SourceStem(inv.Args[0])
		_, _ = fmt.Fprintf(stdout, "compiling %s\n", filepath.Base(inv.Args[0]))
		return os.WriteFile(filepath.Join(inv.Dir, stem+".o"), []byte(stem), domain.PrivateFilePerm)
	case h.link:
		_, _ = fmt.Fprintf(stdout, "linking %s\n", inv.Args[0])
		return os.WriteFile(filepath.Join(inv.Dir, inv.Args[0]), []byte("linked"), domain.PrivateFilePerm)
	}
	return nil
}

func (h *harness) expectInvocations(n int) {
	h.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(h.toolchain).
		Times(n)
}

func TestApp_Build(t *testing.T) {
	h := newHarness(t)
	h.expectInvocations(3)

	output := filepath.Join(h.workDir, "prog.exe")
	h.hasher.EXPECT().DigestFile(output).Return("0123456789abcdef", nil)
	h.store.EXPECT().Put(h.workDir, domain.BuildRecord{
		Output:         output,
		Sources:        []string{"foo.c", "bar.c"},
		Objects:        []string{filepath.Join("obj-prog-exe", "foo.o"), filepath.Join("obj-prog-exe", "bar.o")},
		CompileCommand: h.compile,
		LinkCommand:    h.link,
		OutputDigest:   "0123456789abcdef",
		Duration:       0,
		Timestamp:      fixedNow,
	}).Return(nil)

	out, err := h.app.Build(context.Background(), app.BuildOptions{
		Request: h.request("foo.c", "bar.c"),
		Color:   detector.ColorNever,
	})
	require.NoError(t, err)
	assert.Equal(t, "prog.exe", out)
	assert.FileExists(t, output)

	assert.Contains(t, h.stdout.String(), "[compile foo.c] compiling foo.c\n")
	assert.Contains(t, h.stdout.String(), "[compile bar.c] compiling bar.c\n")
	assert.Contains(t, h.stdout.String(), "[link prog.exe] linking prog.exe\n")
	assert.Contains(t, h.stderr.String(), "Planning 3 invocation(s)")
	assert.Contains(t, h.stderr.String(), "[link prog.exe] Starting...")
}

func TestApp_Build_Skipped(t *testing.T) {
	h := newHarness(t)
	h.writeFile(filepath.Join(h.workDir, "prog.exe"), "old")

	out, err := h.app.Build(context.Background(), app.BuildOptions{
		Request: h.request("foo.c"),
		Color:   detector.ColorNever,
	})
	require.NoError(t, err)
	assert.Equal(t, "prog.exe", out)
}

func TestApp_Build_Failure(t *testing.T) {
	h := newHarness(t)

	req := h.request()
	req.SourceFiles = []string{"missing.c"}

	_, err := h.app.Build(context.Background(), app.BuildOptions{Request: req, Color: detector.ColorNever})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.ErrorIs(t, err, domain.ErrMissingSource)
	assert.Contains(t, h.stderr.String(), "Failed after")
}

func TestApp_Build_RecordFailureIsWarning(t *testing.T) {
	h := newHarness(t)
	h.expectInvocations(2)

	h.hasher.EXPECT().DigestFile(gomock.Any()).Return("digest", nil)
	h.store.EXPECT().Put(h.workDir, gomock.Any()).Return(domain.ErrStoreWrite)
	h.logger.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := h.app.Build(context.Background(), app.BuildOptions{
		Request: h.request("foo.c"),
		Color:   detector.ColorNever,
	})
	require.NoError(t, err)
}

func TestApp_Build_HashFailureIsWarning(t *testing.T) {
	h := newHarness(t)
	h.expectInvocations(2)

	h.hasher.EXPECT().DigestFile(gomock.Any()).Return("", domain.ErrOutputHash)
	h.logger.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := h.app.Build(context.Background(), app.BuildOptions{
		Request: h.request("foo.c"),
		Color:   detector.ColorNever,
	})
	require.NoError(t, err)
}

func TestApp_Build_Recipe(t *testing.T) {
	h := newHarness(t)
	recipe := h.request("foo.c", "bar.c")
	recipePath := filepath.Join(h.workDir, "cclink.yaml")

	h.loader.EXPECT().Load(recipePath).Return(recipe, nil)
	h.expectInvocations(3)
	h.hasher.EXPECT().DigestFile(filepath.Join(h.workDir, "app.exe")).Return("digest", nil)
	h.store.EXPECT().Put(h.workDir, gomock.Any()).Return(nil)

	out, err := h.app.Build(context.Background(), app.BuildOptions{
		RecipePath: recipePath,
		Request:    domain.BuildRequest{OutputPath: "app.exe"},
		Color:      detector.ColorNever,
	})
	require.NoError(t, err)
	assert.Equal(t, "app.exe", out)
	assert.FileExists(t, filepath.Join(h.workDir, "app.exe"))
}

func TestApp_Build_DiscoversRecipe(t *testing.T) {
	h := newHarness(t)
	recipePath := filepath.Join(h.workDir, "cclink.yaml")

	h.loader.EXPECT().Discover(h.workDir).Return(recipePath, nil)
	h.loader.EXPECT().Load(recipePath).Return(h.request("foo.c"), nil)
	h.expectInvocations(2)
	h.hasher.EXPECT().DigestFile(gomock.Any()).Return("digest", nil)
	h.store.EXPECT().Put(h.workDir, gomock.Any()).Return(nil)

	_, err := h.app.Build(context.Background(), app.BuildOptions{
		Request: domain.BuildRequest{WorkDir: h.workDir},
		Color:   detector.ColorNever,
	})
	require.NoError(t, err)
}

func TestApp_Build_CompleteRequestSkipsDiscovery(t *testing.T) {
	h := newHarness(t)
	h.expectInvocations(2)
	h.hasher.EXPECT().DigestFile(gomock.Any()).Return("digest", nil)
	h.store.EXPECT().Put(h.workDir, gomock.Any()).Return(nil)

	// The loader mock has no expectations, so any Discover or Load call fails the test.
	_, err := h.app.Build(context.Background(), app.BuildOptions{
		Request: h.request("foo.c"),
		Color:   detector.ColorNever,
	})
	require.NoError(t, err)
}

func TestApp_Build_InvalidRequest(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Discover(h.workDir).Return("", domain.ErrRecipeNotFound)

	_, err := h.app.Build(context.Background(), app.BuildOptions{
		Request: domain.BuildRequest{WorkDir: h.workDir, OutputPath: "prog.exe"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.NotErrorIs(t, err, domain.ErrBuildFailed)
}

func TestApp_Build_RecipeErrors(t *testing.T) {
	t.Run("load", func(t *testing.T) {
		h := newHarness(t)
		h.loader.EXPECT().Load("broken.yaml").Return(domain.BuildRequest{}, domain.ErrRecipeParse)

		_, err := h.app.Build(context.Background(), app.BuildOptions{RecipePath: "broken.yaml"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrRecipeParse)
	})

	t.Run("discover", func(t *testing.T) {
		h := newHarness(t)
		h.loader.EXPECT().Discover(h.workDir).Return("", domain.ErrRecipeRead)

		_, err := h.app.Build(context.Background(), app.BuildOptions{
			Request: domain.BuildRequest{WorkDir: h.workDir},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrRecipeRead)
	})
}

func TestMerge(t *testing.T) {
	recipe := domain.BuildRequest{
		SourceFiles:       []string{"a.c", "b.c"},
		CompileCommand:    "/r/compile.sh",
		LinkCommand:       "/r/link.sh",
		OutputPath:        "/r/prog.exe",
		KeepIntermediates: true,
		WorkDir:           "/r",
		Jobs:              4,
	}

	tests := []struct {
		name string
		cli  domain.BuildRequest
		want domain.BuildRequest
	}{
		{
			name: "empty cli keeps recipe",
			cli:  domain.BuildRequest{},
			want: recipe,
		},
		{
			name: "cli strings win",
			cli: domain.BuildRequest{
				SourceFiles:    []string{"c.c"},
				CompileCommand: "cc.sh",
				LinkCommand:    "ld.sh",
				OutputPath:     "app",
				WorkDir:        "/w",
				Jobs:           1,
			},
			want: domain.BuildRequest{
				SourceFiles:       []string{"c.c"},
				CompileCommand:    "cc.sh",
				LinkCommand:       "ld.sh",
				OutputPath:        "app",
				KeepIntermediates: true,
				WorkDir:           "/w",
				Jobs:              1,
			},
		},
		{
			name: "flags are or'd",
			cli:  domain.BuildRequest{ForceRebuild: true, Verbose: true},
			want: func() domain.BuildRequest {
				r := recipe
				r.ForceRebuild = true
				r.Verbose = true
				return r
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.Merge(recipe, tt.cli))
		})
	}
}

func TestApp_Clean(t *testing.T) {
	t.Run("removes scratch dir and record", func(t *testing.T) {
		h := newHarness(t)
		scratch := filepath.Join(h.workDir, "obj-prog-exe")
		h.writeFile(filepath.Join(scratch, "foo.o"), "foo")
		h.store.EXPECT().Delete(h.workDir, "prog.exe").Return(nil)

		require.NoError(t, h.app.Clean(context.Background(), "prog.exe", h.workDir))
		assert.NoDirExists(t, scratch)
	})

	t.Run("missing scratch dir is fine", func(t *testing.T) {
		h := newHarness(t)
		h.store.EXPECT().Delete(h.workDir, "prog.exe").Return(nil)

		require.NoError(t, h.app.Clean(context.Background(), "prog.exe", h.workDir))
	})

	t.Run("store failure is reported", func(t *testing.T) {
		h := newHarness(t)
		h.store.EXPECT().Delete(h.workDir, "prog.exe").Return(domain.ErrStoreWrite)

		err := h.app.Clean(context.Background(), "prog.exe", h.workDir)
		assert.ErrorIs(t, err, domain.ErrStoreWrite)
	})

	t.Run("output required", func(t *testing.T) {
		h := newHarness(t)
		err := h.app.Clean(context.Background(), "", h.workDir)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	})
}

func TestApp_Inspect(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h := newHarness(t)
		record := &domain.BuildRecord{Output: filepath.Join(h.workDir, "prog.exe"), OutputDigest: "digest"}
		h.store.EXPECT().Get(h.workDir, "prog.exe").Return(record, nil)

		got, err := h.app.Inspect(context.Background(), "prog.exe", h.workDir)
		require.NoError(t, err)
		assert.Equal(t, record, got)
	})

	t.Run("not found", func(t *testing.T) {
		h := newHarness(t)
		h.store.EXPECT().Get(h.workDir, "prog.exe").Return(nil, nil)

		_, err := h.app.Inspect(context.Background(), "prog.exe", h.workDir)
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})

	t.Run("store error", func(t *testing.T) {
		h := newHarness(t)
		h.store.EXPECT().Get(h.workDir, "prog.exe").Return(nil, domain.ErrStoreUnmarshal)

		_, err := h.app.Inspect(context.Background(), "prog.exe", h.workDir)
		assert.ErrorIs(t, err, domain.ErrStoreUnmarshal)
	})
}
