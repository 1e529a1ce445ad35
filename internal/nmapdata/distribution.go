package nmapdata

import (
	"sort"

	"nmapview/internal/portrange"
	"nmapview/models"
)

// PortDistribution counts records per port string, sorted by protocol, then
// numeric port id (non-numeric ids count as 0), then port string.
func PortDistribution(records []models.HostRecord) []models.PortCount {
	index := make(map[string]int)
	counts := []models.PortCount{}

	for _, r := range records {
		if i, ok := index[r.Port]; ok {
			counts[i].Count++
			continue
		}
		num, _ := portrange.Number(r.Port)
		index[r.Port] = len(counts)
		counts = append(counts, models.PortCount{
			Port:       r.Port,
			Protocol:   portrange.Protocol(r.Port),
			PortNumber: num,
			Range:      portrange.Classify(r.Port),
			Count:      1,
		})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		a, b := counts[i], counts[j]
		if a.Protocol != b.Protocol {
			return a.Protocol < b.Protocol
		}
		if a.PortNumber != b.PortNumber {
			return a.PortNumber < b.PortNumber
		}
		return a.Port < b.Port
	})
	return counts
}

// PortRangeDistribution counts records per range band in band order. Empty
// bands are left out.
func PortRangeDistribution(records []models.HostRecord) []models.RangeCount {
	perBand := make(map[string]int)
	for _, r := range records {
		perBand[portrange.Classify(r.Port)]++
	}

	out := []models.RangeCount{}
	for _, band := range portrange.Bands {
		if n := perBand[band]; n > 0 {
			out = append(out, models.RangeCount{Range: band, Count: n})
		}
	}
	return out
}

// ServiceDistribution counts records per service name, most frequent first.
func ServiceDistribution(records []models.HostRecord) []models.ServiceCount {
	perService := make(map[string]int)
	for _, r := range records {
		perService[r.Service]++
	}

	out := make([]models.ServiceCount, 0, len(perService))
	for name, n := range perService {
		out = append(out, models.ServiceCount{Service: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Service < out[j].Service
	})
	return out
}
