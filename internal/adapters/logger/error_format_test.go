package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/cclink/internal/adapters/logger"
	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestCollectErrorEntries(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMessages []string
		wantMetadata []map[string]any
	}{
		{
			name:         "plain error",
			err:          errors.New("exit status 1"),
			wantMessages: []string{"exit status 1"},
			wantMetadata: []map[string]any{nil},
		},
		{
			name:         "zerr single error",
			err:          zerr.New("link failed"),
			wantMessages: []string{"link failed"},
			wantMetadata: []map[string]any{{}},
		},
		{
			name: "zerr wrapped chain",
			err: zerr.Wrap(
				zerr.Wrap(errors.New("permission denied"), "rename failed"),
				"failed to move object file",
			),
			wantMessages: []string{"failed to move object file", "rename failed", "permission denied"},
			wantMetadata: []map[string]any{{}, {}, nil},
		},
		{
			name: "zerr with metadata",
			err: zerr.With(
				zerr.With(zerr.New("compile command produced no object file"), "source", "foo.c"),
				"dir", "/work",
			),
			wantMessages: []string{"compile command produced no object file"},
			wantMetadata: []map[string]any{{"source": "foo.c", "dir": "/work"}},
		},
		{
			name:         "tagged error",
			err:          domain.Tag(domain.ErrLinkOutputMissing, zerr.With(zerr.New("no output"), "output", "prog.exe")),
			wantMessages: []string{"link command produced no output file", "no output"},
			wantMetadata: []map[string]any{nil, {"output": "prog.exe"}},
		},
		{
			name:         "nil error",
			err:          nil,
			wantMessages: nil,
			wantMetadata: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := logger.CollectErrorEntriesExported(tt.err)

			if tt.err == nil {
				assert.Empty(t, entries)
				return
			}

			assert.Len(t, entries, len(tt.wantMessages))
			for i, wantMsg := range tt.wantMessages {
				assert.Equal(t, wantMsg, entries[i].Message, "message mismatch at index %d", i)
				assert.Equal(t, tt.wantMetadata[i], entries[i].Metadata, "metadata mismatch at index %d", i)
			}
		})
	}
}

func TestFormatErrorEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []logger.ErrorEntry
		want    string
	}{
		{
			name:    "single entry",
			entries: []logger.ErrorEntry{{Message: "build failed"}},
			want:    "Error: build failed",
		},
		{
			name: "two entries",
			entries: []logger.ErrorEntry{
				{Message: "build failed"},
				{Message: "tool not found"},
			},
			want: "Error: build failed\n\n  Caused by:\n    → tool not found",
		},
		{
			name: "metadata on main error",
			entries: []logger.ErrorEntry{
				{Message: "build failed", Metadata: map[string]any{"output": "prog.exe"}},
			},
			want: "Error: build failed\n       output: prog.exe",
		},
		{
			name: "metadata on cause",
			entries: []logger.ErrorEntry{
				{Message: "build failed"},
				{Message: "source file not found", Metadata: map[string]any{"file": "foo.c"}},
			},
			want: "Error: build failed\n\n  Caused by:\n    → source file not found\n      file: foo.c",
		},
		{
			name:    "multiline message",
			entries: []logger.ErrorEntry{{Message: "line1\nline2"}},
			want:    "Error: line1\n       line2",
		},
		{
			name: "multiline cause",
			entries: []logger.ErrorEntry{
				{Message: "main"},
				{Message: "cause line1\ncause line2"},
			},
			want: "Error: main\n\n  Caused by:\n    → cause line1\n      cause line2",
		},
		{
			name:    "empty entries",
			entries: []logger.ErrorEntry{},
			want:    "",
		},
		{
			name: "metadata sorted",
			entries: []logger.ErrorEntry{
				{Message: "error", Metadata: map[string]any{"zebra": "z", "alpha": "a", "mike": "m"}},
			},
			want: "Error: error\n       alpha: a\n       mike: m\n       zebra: z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.FormatErrorEntriesExported(tt.entries))
		})
	}
}

func TestCollectAndFormat(t *testing.T) {
	inner := zerr.With(zerr.New("compile command produced no object file"), "source", "bar.c")
	outer := zerr.With(zerr.Wrap(inner, "build failed"), "output", "prog.exe")

	got := logger.FormatErrorEntriesExported(logger.CollectErrorEntriesExported(outer))
	want := "Error: build failed\n" +
		"       output: prog.exe\n\n" +
		"  Caused by:\n" +
		"    → compile command produced no object file\n" +
		"      source: bar.c"
	assert.Equal(t, want, got)
}
