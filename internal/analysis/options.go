package analysis

// Verbosity controls how much diagnostic output the pipeline emits.
// Its range and interpretation belong to the pipeline; this package
// only carries the value through.
type Verbosity int

// Options bundles a resolved operation with the verbosity requested for
// the invocation. It is constructed once via NewOptions and never
// modified afterwards.
type Options struct {
	Command   Operation
	Verbosity Verbosity
}

// NewOptions builds the options value for a single tool invocation.
// Both fields are taken verbatim; callers must have resolved the
// operation via ResolveOperation first.
func NewOptions(op Operation, v Verbosity) Options {
	return Options{Command: op, Verbosity: v}
}
