package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - User-facing output only: rendered chart, errors with hints
//	1 (-v)      - + Input echo, lunisolar conversion summary, timing
//	2 (-vv)     - + Per-stage results: anchors, bureau, star counts
//	3 (-vvv)    - + Individual placements and table lookups
//	4 (-vvvv)   - + Full workspace and index dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Rendered chart, command output
	OutputErrors                           // Errors with hints and resolution steps
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputInputEcho  // Echo of the parsed birth input
	OutputConversion // Gregorian to lunisolar conversion summary
	OutputTiming     // Operation timing (e.g., "computed in 2ms")

	// Level 2 (-vv) - Detailed
	OutputStageResults // Per-stage outcomes: anchors, bureau, transformation picks
	OutputConfig       // Config values loaded/applied
	OutputRenderInfo   // Renderer selection and layout decisions

	// Level 3 (-vvv) - Debug
	OutputPlacements   // Individual star placements as they land
	OutputTableLookups // Reference table rows consulted

	// Level 4 (-vvvv) - Full dump
	OutputWorkspaceDump // Full workspace contents after each stage
	OutputIndexDump     // Star index and influence map contents
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	// Level 0 - Always shown
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	// Level 1 - Informational
	OutputInputEcho:  VerbosityInfo,
	OutputConversion: VerbosityInfo,
	OutputTiming:     VerbosityInfo,

	// Level 2 - Detailed
	OutputStageResults: VerbosityDebug,
	OutputConfig:       VerbosityDebug,
	OutputRenderInfo:   VerbosityDebug,

	// Level 3 - Debug
	OutputPlacements:   VerbosityTrace,
	OutputTableLookups: VerbosityTrace,

	// Level 4 - Full dump
	OutputWorkspaceDump: VerbosityAll,
	OutputIndexDump:     VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:       "results",
	OutputErrors:        "errors",
	OutputUserStatus:    "status",
	OutputInputEcho:     "input-echo",
	OutputConversion:    "conversion",
	OutputTiming:        "timing",
	OutputStageResults:  "stage-results",
	OutputConfig:        "config",
	OutputRenderInfo:    "render-info",
	OutputPlacements:    "placements",
	OutputTableLookups:  "table-lookups",
	OutputWorkspaceDump: "workspace-dump",
	OutputIndexDump:     "index-dump",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// EnabledCategories returns all output categories enabled at the given verbosity
func EnabledCategories(verbosity int) []OutputCategory {
	var enabled []OutputCategory
	for cat, minLevel := range categoryLevels {
		if verbosity >= minLevel {
			enabled = append(enabled, cat)
		}
	}
	return enabled
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "chart output and errors only"
	case VerbosityInfo:
		return "above + input echo, conversion summary, timing"
	case VerbosityDebug:
		return "above + per-stage results and config details"
	case VerbosityTrace:
		return "above + individual placements and table lookups"
	case VerbosityAll:
		return "full output including workspace dumps"
	default:
		if verbosity > VerbosityAll {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}
