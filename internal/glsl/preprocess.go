// Package glsl prepares fragment program sources for compilation.
package glsl

import (
	"fmt"
	"sort"
	"strings"

	"volumecloud/internal/utils"
)

const DefaultVersion = "#version 330"

// IncludeFunc returns the contents of an included file.
type IncludeFunc func(name string) ([]byte, error)

// Preprocess inserts defines after the #version line (adding DefaultVersion
// when the source has none) and inlines #include "file" directives through
// include, once per file. Unresolvable includes are dropped with a warning.
func Preprocess(source string, defines map[string]int, include IncludeFunc) string {
	source = strings.TrimPrefix(source, "\ufeff")

	var sb strings.Builder
	lines := strings.Split(source, "\n")
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "#version") {
		sb.WriteString(strings.TrimSpace(lines[0]))
		lines = lines[1:]
	} else {
		sb.WriteString(DefaultVersion)
	}
	sb.WriteString("\n")

	names := make([]string, 0, len(defines))
	for k := range defines {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		sb.WriteString(fmt.Sprintf("#define %s %d\n", k, defines[k]))
	}

	writeLines(&sb, lines, make(map[string]bool), include)
	return sb.String()
}

func writeLines(sb *strings.Builder, lines []string, included map[string]bool, include IncludeFunc) {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#include \"") && strings.HasSuffix(trimmed, "\"") && len(trimmed) > len("#include \"") {
			includeFile := strings.TrimSpace(trimmed[len("#include \"") : len(trimmed)-1])
			if included[includeFile] {
				continue
			}
			included[includeFile] = true
			if include == nil {
				utils.Warn("Shader: Could not resolve include: %s", includeFile)
				continue
			}
			content, err := include(includeFile)
			if err != nil {
				utils.Warn("Shader: Could not resolve include: %s", includeFile)
				continue
			}
			writeLines(sb, strings.Split(strings.TrimPrefix(string(content), "\ufeff"), "\n"), included, include)
			continue
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}
