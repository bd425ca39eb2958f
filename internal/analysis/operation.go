// Package analysis defines the operation selector and options value that
// drive the constraint-analysis pipeline.
package analysis

// Operation identifies one of the analysis actions the tool can perform.
type Operation int

const (
	// OpDumpConstraints prints the constraint set loaded from the manifest.
	OpDumpConstraints Operation = iota
	// OpSolveConstraints computes a resolution order for the manifest constraints.
	OpSolveConstraints
	// OpDumpPersistedConstraints prints the constraint set from the state store.
	OpDumpPersistedConstraints
	// OpSolvePersistedConstraints computes a resolution order for the stored constraints.
	OpSolvePersistedConstraints
)

// Command keywords recognized by ResolveOperation.
const (
	KeywordDump           = "dump"
	KeywordSolve          = "solve"
	KeywordDumpPersisted  = "dump-persisted"
	KeywordSolvePersisted = "solve-persisted"
)

// operations maps command keywords to their operation. Matching is exact:
// no trimming, no case folding.
var operations = map[string]Operation{
	KeywordDump:           OpDumpConstraints,
	KeywordSolve:          OpSolveConstraints,
	KeywordDumpPersisted:  OpDumpPersistedConstraints,
	KeywordSolvePersisted: OpSolvePersistedConstraints,
}

// ResolveOperation maps a command keyword to its operation. The second
// return value reports whether the keyword named a known operation; a false
// result is the ordinary outcome for unrecognized input, not a failure.
func ResolveOperation(keyword string) (Operation, bool) {
	op, ok := operations[keyword]
	return op, ok
}

// Keywords returns the recognized command keywords in display order.
func Keywords() []string {
	return []string{KeywordDump, KeywordSolve, KeywordDumpPersisted, KeywordSolvePersisted}
}

// String returns the command keyword for the operation.
func (op Operation) String() string {
	switch op {
	case OpDumpConstraints:
		return KeywordDump
	case OpSolveConstraints:
		return KeywordSolve
	case OpDumpPersistedConstraints:
		return KeywordDumpPersisted
	case OpSolvePersistedConstraints:
		return KeywordSolvePersisted
	default:
		return "unknown"
	}
}

// Persisted reports whether the operation reads from the state store
// rather than the manifest.
func (op Operation) Persisted() bool {
	return op == OpDumpPersistedConstraints || op == OpSolvePersistedConstraints
}
