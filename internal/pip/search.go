package pip

import "strings"

const (
	searchSeparator = " - "
	descMarker      = "<br"
)

// ParseSearchResults turns `pip search` output into a map of package name
// to description. Each line is split once on " - "; lines without the
// separator are continuation text from a multi-line description and are
// skipped, as are lines with an empty name. Descriptions are cut at the
// first "<br" marker. Empty stdout yields an empty, non-nil map.
func ParseSearchResults(stdout string) map[string]string {
	packages := make(map[string]string)
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSuffix(line, "\r")
		name, description, found := strings.Cut(line, searchSeparator)
		if !found {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		description, _, _ = strings.Cut(description, descMarker)
		packages[name] = strings.TrimSpace(description)
	}
	return packages
}
