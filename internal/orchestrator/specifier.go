package orchestrator

import "strings"

// specifier characters that end the package name in a requirement string,
// e.g. "requests==2.31.0", "flask>=2,<3", "uvicorn[standard]".
var specifierBreaks = []string{"==", ">=", "<=", "~=", "!=", "<", ">", "[", ";", "@", " "}

// BaseName strips version constraints and extras from a requirement
// specifier, leaving the bare package name.
func BaseName(spec string) string {
	name := strings.TrimSpace(spec)
	for _, sep := range specifierBreaks {
		if i := strings.Index(name, sep); i >= 0 {
			name = name[:i]
		}
	}
	return strings.TrimSpace(name)
}

// parseInstalledVersion scans pip install output for the "Successfully
// installed" line and extracts the version installed for name. Returns ""
// when the line or the package is absent (e.g. already satisfied).
func parseInstalledVersion(stdout, name string) string {
	const marker = "Successfully installed "
	normalized := normalizeName(name)
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, marker) {
			continue
		}
		for _, entry := range strings.Fields(strings.TrimPrefix(line, marker)) {
			// entries look like "requests-2.31.0"
			i := strings.LastIndex(entry, "-")
			if i <= 0 {
				continue
			}
			if normalizeName(entry[:i]) == normalized {
				return entry[i+1:]
			}
		}
	}
	return ""
}

// normalizeName applies pip's name normalization: case-insensitive,
// with "-", "_" and "." treated as equal.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "_", "-")
	name = strings.ReplaceAll(name, ".", "-")
	return name
}
