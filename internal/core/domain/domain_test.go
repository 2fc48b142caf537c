package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestScratchDirName(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{name: "executable", output: "prog.exe", want: "obj-prog-exe"},
		{name: "nested output", output: filepath.Join("out", "bin", "prog.exe"), want: "obj-prog-exe"},
		{name: "multiple dots", output: "libfoo.so.1", want: "obj-libfoo-so-1"},
		{name: "no extension", output: "prog", want: "obj-prog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ScratchDirName(tt.output))
		})
	}
}

func TestObjectCandidates(t *testing.T) {
	got := domain.ObjectCandidates(filepath.Join("src", "foo.c"))
	assert.Equal(t, []string{"foo.obj", "foo.o"}, got)

	assert.Equal(t, "bar", domain.SourceStem("bar.cpp"))
	assert.Equal(t, "archive.tar", domain.SourceStem("archive.tar.gz"))
}

func TestBuildRequest_Validate(t *testing.T) {
	valid := domain.BuildRequest{
		SourceFiles:    []string{"foo.c"},
		CompileCommand: "compile.sh",
		LinkCommand:    "link.sh",
		OutputPath:     "prog.exe",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name        string
		mutate      func(r *domain.BuildRequest)
		errContains string
	}{
		{
			name:        "missing compile",
			mutate:      func(r *domain.BuildRequest) { r.CompileCommand = "" },
			errContains: "compile command",
		},
		{
			name:        "missing link",
			mutate:      func(r *domain.BuildRequest) { r.LinkCommand = "" },
			errContains: "link command",
		},
		{
			name:        "missing output",
			mutate:      func(r *domain.BuildRequest) { r.OutputPath = "" },
			errContains: "output path",
		},
		{
			name:        "no sources",
			mutate:      func(r *domain.BuildRequest) { r.SourceFiles = nil },
			errContains: "source file",
		},
		{
			name:        "negative jobs",
			mutate:      func(r *domain.BuildRequest) { r.Jobs = -1 },
			errContains: "jobs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidRequest)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestBuildRequest_Parallel(t *testing.T) {
	assert.False(t, (&domain.BuildRequest{}).Parallel())
	assert.False(t, (&domain.BuildRequest{Jobs: 1}).Parallel())
	assert.True(t, (&domain.BuildRequest{Jobs: 4}).Parallel())
}

func TestTag(t *testing.T) {
	detail := zerr.With(zerr.New("compile command not found"), "path", "/opt/cc.sh")
	err := domain.Tag(domain.ErrMissingTool, detail)

	assert.ErrorIs(t, err, domain.ErrMissingTool)
	assert.NotErrorIs(t, err, domain.ErrMissingSource)
	assert.Equal(t, detail, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "tool not found")
	assert.Contains(t, err.Error(), "compile command not found")

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "/opt/cc.sh", zErr.Metadata()["path"])
}

func TestTag_NilDetail(t *testing.T) {
	err := domain.Tag(domain.ErrFileDelete, nil)
	assert.ErrorIs(t, err, domain.ErrFileDelete)
}

func TestDefaultRecordPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".cclink", "records"), domain.DefaultRecordPath())
}
