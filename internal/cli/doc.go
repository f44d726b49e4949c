// Parses flags and drives the patch pipeline.
//
// Most flags are ordinary kong flags. The three source flags are not:
// --patch, --git, and --copy each take a group of positional tokens, and
// their order relative to each other is the order the resulting operations
// execute in. They are extracted from the raw argument list in a single
// left-to-right scan before kong parses the remainder, so the literal
// command-line order survives parsing.
//
// After parsing, the global logger is reconfigured to reflect the final
// level before the pipeline starts.
package cli
