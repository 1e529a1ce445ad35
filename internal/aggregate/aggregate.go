package aggregate

import (
	"sort"
	"strings"

	"nmapview/models"
)

// Aggregate builds one OsPortGroup per OS name with at least one port. Ports
// are deduplicated, sorted lexicographically and joined with ", ". The result
// is sorted by OS name.
func Aggregate(perOS map[string][]string) []models.OsPortGroup {
	groups := []models.OsPortGroup{}
	for osName, ports := range perOS {
		if len(ports) == 0 {
			continue
		}
		unique := dedupe(ports)
		groups = append(groups, models.OsPortGroup{
			OS:        osName,
			Ports:     strings.Join(unique, ", "),
			PortCount: len(unique),
		})
	}
	SortByOS(groups)
	return groups
}

// SortByOS orders groups by OS name in place.
func SortByOS(groups []models.OsPortGroup) {
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].OS < groups[j].OS
	})
}

func dedupe(ports []string) []string {
	seen := make(map[string]struct{}, len(ports))
	unique := make([]string, 0, len(ports))
	for _, p := range ports {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		unique = append(unique, p)
	}
	sort.Strings(unique)
	return unique
}
