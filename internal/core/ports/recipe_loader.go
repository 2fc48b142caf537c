package ports

import "go.trai.ch/cclink/internal/core/domain"

// RecipeLoader defines the interface for loading a build recipe file.
//
//go:generate mockgen -source=recipe_loader.go -destination=mocks/mock_recipe_loader.go -package=mocks
type RecipeLoader interface {
	// Load reads the recipe at path and returns the request it describes.
	// Relative paths in the recipe are resolved against the recipe's directory.
	Load(path string) (domain.BuildRequest, error)

	// Discover returns the path of the default recipe file in dir.
	Discover(dir string) (string, error)
}
