// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.1.0"

// Milestones:
// 0.1.0 - Initial release: typed query builder, OBSERVER/VECTORS/ELEMENTS
//         decoders, major-bodies catalog, table output, TUI viewer
