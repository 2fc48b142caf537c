package domain

import "time"

// BuildRecord holds the result of a successful build.
// It is informational and never consulted when deciding whether to rebuild.
type BuildRecord struct {
	Output         string        `json:"output"`
	Sources        []string      `json:"sources"`
	Objects        []string      `json:"objects"`
	CompileCommand string        `json:"compile_command"`
	LinkCommand    string        `json:"link_command"`
	OutputDigest   string        `json:"output_digest"`
	Duration       time.Duration `json:"duration"`
	Timestamp      time.Time     `json:"timestamp"`
}

// BuildResult is what the orchestrator reports for a finished build.
type BuildResult struct {
	OutputPath string
	// Objects are scratch-relative object paths in source order. Empty when skipped.
	Objects []string
	// Skipped is true when the output already existed and no work was done.
	Skipped bool
}
