package recipe

// defaultEnv is the environment recipe providers register into from their
// package init functions, mirroring how CLI subcommands self-register.
var defaultEnv = NewEnvironment()

// Default returns the process-wide recipe environment.
func Default() *Environment {
	return defaultEnv
}

// Register adds a recipe to the default environment.
func Register(r Recipe) {
	defaultEnv.Register(r)
}
