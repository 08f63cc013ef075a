package domain

// EnvValue is a named environment value.
type EnvValue struct {
	Name  string
	Value string
}

// BuildEnvironment carries the inputs of version resolution read from the
// build environment.
type BuildEnvironment struct {
	// Override replaces the composed version when non-empty.
	Override string
	// BuildIDs lists the candidate build identifiers in precedence order.
	BuildIDs []EnvValue
}

// FirstBuildID returns the first non-empty candidate.
func (e BuildEnvironment) FirstBuildID() (EnvValue, bool) {
	for _, v := range e.BuildIDs {
		if v.Value != "" {
			return v, true
		}
	}
	return EnvValue{}, false
}
