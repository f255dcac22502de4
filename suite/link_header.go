package suite

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals
var (
	linkHeaderEntriesRegex = regexp.MustCompile(`(?:<[^>]*?>|"[^"]*?"|[^,])+`)
	linkHeaderEntryRegex   = regexp.MustCompile(`^\s*<([^>]*?)>\s*(?:;\s*(.*))?`)
	linkHeaderParamsRegex  = regexp.MustCompile(`(.*?)=(?:(?:"([^"]*?)")|([^"]*?))\s*(?:(?:;\s*)|$)`)
)

// LinkHeaderEntry is one link from an HTTP Link header. Params includes "rel".
type LinkHeaderEntry struct {
	Target string
	Params map[string]string
}

// Rel returns the entry's relation type, or "" if it has none.
func (e LinkHeaderEntry) Rel() string { return e.Params["rel"] }

// ParseLinkHeader parses an HTTP Link header into its entries, grouped by relation type.
// Entries without a rel parameter are grouped under "". Commas inside the target or inside a
// quoted parameter value do not split entries.
func ParseLinkHeader(header string) map[string][]LinkHeaderEntry {
	ret := make(map[string][]LinkHeaderEntry)
	for _, raw := range linkHeaderEntriesRegex.FindAllString(header, -1) {
		match := linkHeaderEntryRegex.FindStringSubmatch(raw)
		if match == nil {
			continue
		}
		entry := LinkHeaderEntry{Target: match[1], Params: make(map[string]string)}
		params := match[2]
		for _, idx := range linkHeaderParamsRegex.FindAllStringSubmatchIndex(params, -1) {
			name := strings.TrimSpace(params[idx[2]:idx[3]])
			if name == "" {
				continue
			}
			if idx[4] >= 0 {
				entry.Params[name] = params[idx[4]:idx[5]]
			} else {
				entry.Params[name] = params[idx[6]:idx[7]]
			}
		}
		rel := entry.Rel()
		ret[rel] = append(ret[rel], entry)
	}
	return ret
}
