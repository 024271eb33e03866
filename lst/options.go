package lst

// Tree construction engines.
const (
	// EngineHeuristic is the regex/state-machine builder (Build).
	EngineHeuristic = "heuristic"

	// EngineSitter is the tree-sitter backed builder (BuildSitter).
	EngineSitter = "sitter"
)

// BatchOptions configures the Batch function.
type BatchOptions struct {
	// Path is the root directory to scan for files.
	// If empty, current directory is used.
	Path string

	// Language specifies which language to build for (e.g., "cpp").
	Language string

	// Engine selects the tree construction engine.
	// Defaults to EngineHeuristic.
	Engine string

	// Include restricts the walk to files matching any of these doublestar
	// globs (relative to Path). Empty means all supported files.
	Include []string

	// Exclude drops files matching any of these globs.
	Exclude []string

	// Jobs is the number of parallel workers.
	// If 0, defaults to number of CPUs.
	Jobs int

	// MaxBytes skips files larger than this size.
	// If 0, defaults to 2 MiB.
	MaxBytes int64

	// Progress, when set, is called after each file completes. It runs on
	// the collecting goroutine, never concurrently with itself.
	Progress func(done, total int)
}
