package cli

import (
	"fmt"
	"strings"
)

// Kind of a source flag group.
type sourceKind int

const (
	patchSource sourceKind = iota // --patch <file>... <workdir>
	gitSource                     // --git [repo] [ref] <workdir>
	copySource                    // --copy <src> <dst>
)

// One occurrence of a source flag with its positional tokens.
type sourceArg struct {
	kind   sourceKind
	tokens []string
}

// Flags that consume a group of positional tokens.
var sourceFlags = map[string]sourceKind{
	"-p":      patchSource,
	"--patch": patchSource,
	"-g":      gitSource,
	"--git":   gitSource,
	"--copy":  copySource,
}

// Extracts the source flag groups from the raw argument list.
//
// Returns the groups in their literal command-line order plus the
// remaining arguments for the flag parser. Each source flag consumes the
// run of non-flag tokens that follows it. The "=" form is rejected since
// these flags take multiple positional tokens.
func extractSourceArgs(args []string) ([]sourceArg, []string, error) {
	var sources []sourceArg
	rest := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		kind, ok := sourceFlags[arg]
		if !ok {
			if name, _, found := strings.Cut(arg, "="); found {
				if _, isSource := sourceFlags[name]; isSource {
					return nil, nil, fmt.Errorf("%s takes space-separated arguments, not %s=", name, name)
				}
			}
			rest = append(rest, arg)
			continue
		}

		var tokens []string
		for i+1 < len(args) && !isFlag(args[i+1]) {
			i++
			tokens = append(tokens, args[i])
		}

		if err := checkTokenCount(arg, kind, len(tokens)); err != nil {
			return nil, nil, err
		}

		sources = append(sources, sourceArg{kind: kind, tokens: tokens})
	}

	return sources, rest, nil
}

// Whether a token looks like a flag rather than a positional value.
//
// A lone "-" is a value (stdin convention), everything else starting with
// "-" ends the current token group.
func isFlag(s string) bool {
	return len(s) > 1 && strings.HasPrefix(s, "-")
}

// Validates the token count for a source flag occurrence.
func checkTokenCount(flag string, kind sourceKind, n int) error {
	switch kind {
	case patchSource:
		if n < 2 {
			return fmt.Errorf("%s needs at least two arguments: <file>... <workdir>", flag)
		}
	case gitSource:
		if n < 1 || n > 3 {
			return fmt.Errorf("%s needs one to three arguments: [repo] [ref] <workdir>", flag)
		}
	case copySource:
		if n != 2 {
			return fmt.Errorf("%s needs exactly two arguments: <src> <dst>", flag)
		}
	}
	return nil
}
