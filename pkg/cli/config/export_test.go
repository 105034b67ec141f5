package config

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, path string) *Repository {
	return &Repository{
		backend: backend,
		path:    path,
	}
}

// NewEngineForTest creates an Engine config for testing purposes
func NewEngineForTest(path string) *Engine {
	return &Engine{path: path}
}

// FlagNames returns the names of the repository flags
func (r *Repository) FlagNames() []string {
	var names []string
	for _, f := range r.Flags() {
		names = append(names, f.Names()[0])
	}
	return names
}
