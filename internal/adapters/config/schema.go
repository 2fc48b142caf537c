package config

// Recipe represents the structure of the cclink.yaml recipe file.
type Recipe struct {
	Version string   `yaml:"version"`
	Compile string   `yaml:"compile"`
	Link    string   `yaml:"link"`
	Output  string   `yaml:"output"`
	Sources []string `yaml:"sources"`
	Keep    bool     `yaml:"keep"`
	Force   bool     `yaml:"force"`
	Verbose bool     `yaml:"verbose"`
	Jobs    int      `yaml:"jobs"`
}

// SupportedVersion is the recipe schema version this loader understands.
const SupportedVersion = "1"
