package linear_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cclink/internal/adapters/linear"
	"go.trai.ch/zerr"
)

func newRenderer() (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return linear.NewRenderer(&stdout, &stderr, linear.WithProfile(termenv.Ascii)), &stdout, &stderr
}

func TestRenderer_Lifecycle(t *testing.T) {
	r, stdout, stderr := newRenderer()
	require.NoError(t, r.Start(context.Background()))

	r.OnPlanEmit([]string{"compile foo.c", "link prog.exe"})
	assert.Contains(t, stderr.String(), "Planning 2 invocation(s)")

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.OnTaskStart("span1", "", "compile foo.c", start)
	assert.Contains(t, stderr.String(), "[compile foo.c] Starting...")

	r.OnTaskLog("span1", []byte("foo.c:1: warning: unused\n"))
	r.OnTaskLog("span1", []byte("done\n"))
	assert.Equal(t, "[compile foo.c] foo.c:1: warning: unused\n[compile foo.c] done\n", stdout.String())

	r.OnTaskComplete("span1", start.Add(120*time.Millisecond), nil)
	assert.Contains(t, stderr.String(), "[compile foo.c] ✓ Completed in 120ms")

	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())
}

func TestRenderer_PartialLines(t *testing.T) {
	r, stdout, _ := newRenderer()

	start := time.Now()
	r.OnTaskStart("span1", "", "link prog.exe", start)

	r.OnTaskLog("span1", []byte("partial"))
	assert.Empty(t, stdout.String())

	r.OnTaskLog("span1", []byte(" line\nsecond"))
	assert.Equal(t, "[link prog.exe] partial line\n", stdout.String())

	r.OnTaskComplete("span1", start, nil)
	assert.Equal(t, "[link prog.exe] partial line\n[link prog.exe] second\n", stdout.String())
}

func TestRenderer_Failure(t *testing.T) {
	r, _, stderr := newRenderer()

	start := time.Now()
	r.OnTaskStart("span1", "", "link prog.exe", start)
	r.OnTaskComplete("span1", start.Add(time.Second), zerr.New("link command produced no output file"))

	out := stderr.String()
	assert.Contains(t, out, "✗ Failed after 1s")
	assert.Contains(t, out, "link command produced no output file")
}

func TestRenderer_InterleavedTasks(t *testing.T) {
	r, stdout, _ := newRenderer()

	start := time.Now()
	r.OnTaskStart("a", "", "compile foo.c", start)
	r.OnTaskStart("b", "", "compile bar.c", start)

	r.OnTaskLog("a", []byte("foo 1\n"))
	r.OnTaskLog("b", []byte("bar 1\n"))
	r.OnTaskLog("a", []byte("foo 2\n"))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, []string{
		"[compile foo.c] foo 1",
		"[compile bar.c] bar 1",
		"[compile foo.c] foo 2",
	}, lines)
}

func TestRenderer_UnknownSpan(t *testing.T) {
	r, stdout, stderr := newRenderer()

	r.OnTaskLog("missing", []byte("ignored\n"))
	r.OnTaskComplete("missing", time.Now(), nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_BlankLinesDropped(t *testing.T) {
	r, stdout, _ := newRenderer()

	r.OnTaskStart("span1", "", "compile foo.c", time.Now())
	r.OnTaskLog("span1", []byte("\n\r\n"))

	assert.Empty(t, stdout.String())
}

func TestRenderer_StopFlushes(t *testing.T) {
	r, stdout, _ := newRenderer()

	start := time.Now()
	r.OnTaskStart("a", "", "compile foo.c", start)
	r.OnTaskStart("b", "", "compile bar.c", start)
	r.OnTaskLog("a", []byte("tail a"))
	r.OnTaskLog("b", []byte("tail b"))

	require.NoError(t, r.Stop())
	assert.Contains(t, stdout.String(), "[compile foo.c] tail a")
	assert.Contains(t, stdout.String(), "[compile bar.c] tail b")
}

func TestRenderer_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	start := time.Now()
	r.OnTaskStart("span1", "", "compile foo.c", start)
	r.OnTaskComplete("span1", start, nil)

	assert.NotContains(t, stderr.String(), "\x1b[")
}

func TestRenderer_ANSIProfile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr, linear.WithProfile(termenv.ANSI))

	start := time.Now()
	r.OnTaskStart("span1", "", "compile foo.c", start)
	r.OnTaskComplete("span1", start, nil)

	assert.Contains(t, stderr.String(), "\x1b[")
}
