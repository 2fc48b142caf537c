// Package config loads build recipes from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/cclink/internal/core/domain"
	"go.trai.ch/cclink/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.RecipeLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

var _ ports.RecipeLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the recipe at path. Tool, source and output paths are resolved
// against the recipe's directory, which also becomes the request's WorkDir.
func (l *Loader) Load(path string) (domain.BuildRequest, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return domain.BuildRequest{}, domain.Tag(domain.ErrRecipeRead, zerr.With(zerr.Wrap(err, "invalid path"), "path", path))
	}

	var recipe Recipe
	if err := readAndUnmarshalYAML(absPath, &recipe); err != nil {
		return domain.BuildRequest{}, err
	}

	if recipe.Version != "" && recipe.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("recipe %s declares version %q, expected %q", path, recipe.Version, SupportedVersion))
	}

	root := filepath.Dir(absPath)
	sources := make([]string, 0, len(recipe.Sources))
	for _, src := range recipe.Sources {
		sources = append(sources, resolve(root, src))
	}

	return domain.BuildRequest{
		SourceFiles:       sources,
		CompileCommand:    resolve(root, recipe.Compile),
		LinkCommand:       resolve(root, recipe.Link),
		OutputPath:        resolve(root, recipe.Output),
		KeepIntermediates: recipe.Keep,
		ForceRebuild:      recipe.Force,
		Verbose:           recipe.Verbose,
		WorkDir:           root,
		Jobs:              recipe.Jobs,
	}, nil
}

// Discover looks for the recipe file in dir and then in each parent directory.
func (l *Loader) Discover(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", domain.Tag(domain.ErrRecipeNotFound, zerr.With(zerr.Wrap(err, "invalid directory"), "dir", dir))
	}

	for {
		candidate := filepath.Join(current, domain.RecipeFileName)
		if info, statErr := os.Stat(candidate); statErr == nil && info.Mode().IsRegular() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return "", domain.Tag(domain.ErrRecipeNotFound, zerr.With(zerr.New("no "+domain.RecipeFileName+" in directory or its parents"), "dir", dir))
}

// resolve makes p absolute relative to root. Empty values stay empty.
func resolve(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path comes from the command line or discovery
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Tag(domain.ErrRecipeNotFound, zerr.With(zerr.Wrap(err, "read failed"), "path", path))
		}
		return domain.Tag(domain.ErrRecipeRead, zerr.With(zerr.Wrap(err, "read failed"), "path", path))
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return domain.Tag(domain.ErrRecipeParse, zerr.With(zerr.Wrap(err, "invalid yaml"), "path", path))
	}

	return nil
}
