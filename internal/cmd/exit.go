// Package cmd provides CLI command implementations.
package cmd

// Exit codes reported by the unityforge CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitUnknownSelection indicates an unknown genre, feature, or module id.
	ExitUnknownSelection = 2

	// ExitCyclicDependency indicates a cycle in the feature dependency graph.
	ExitCyclicDependency = 3

	// ExitAnchorConflict indicates fragments competing for an exclusive anchor.
	ExitAnchorConflict = 4

	// ExitPlaceholderUnresolved indicates placeholders left without a value.
	ExitPlaceholderUnresolved = 5
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitUnknownSelection:
		return "Unknown Selection"
	case ExitCyclicDependency:
		return "Cyclic Dependency"
	case ExitAnchorConflict:
		return "Anchor Conflict"
	case ExitPlaceholderUnresolved:
		return "Placeholder Unresolved"
	default:
		return "Unknown"
	}
}
