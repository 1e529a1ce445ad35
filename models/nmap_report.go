package models

// Unknown is the fallback value for every unresolved record field.
const Unknown = "Unknown"

// HostRecord is one flattened (host x port) observation. A host with three
// port entries yields three records.
type HostRecord struct {
	IP      string `json:"ip"`
	Port    string `json:"port"` // "<id>/<protocol>"
	Service string `json:"service"`
	Product string `json:"product"`
	Version string `json:"version"`
	State   string `json:"state"`
	OS      string `json:"os"`
}

// OsPortGroup summarizes the distinct open ports seen across all hosts that
// share a detected operating system name.
type OsPortGroup struct {
	OS        string `json:"os"`
	Ports     string `json:"ports"`
	PortCount int    `json:"port_count"`
}

// PortCount is one bar of the port distribution chart.
type PortCount struct {
	Port       string `json:"port"`
	Protocol   string `json:"protocol"`
	PortNumber int    `json:"port_num"`
	Range      string `json:"port_range"`
	Count      int    `json:"count"`
}

// RangeCount is one slice of the port range chart.
type RangeCount struct {
	Range string `json:"port_range"`
	Count int    `json:"count"`
}

// ServiceCount is one slice of the service chart.
type ServiceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

// NmapReport is everything computed from one raw scan document.
type NmapReport struct {
	ID                    string         `json:"id"`
	HostCount             int            `json:"host_count"` // host entries in the run root
	Hosts                 []string       `json:"hosts"`
	Ports                 []string       `json:"ports"`
	Services              []HostRecord   `json:"services"`
	OSPatterns            []OsPortGroup  `json:"os_patterns"`
	PortDistribution      []PortCount    `json:"port_distribution"`
	PortRangeDistribution []RangeCount   `json:"port_range_distribution"`
	ServiceDistribution   []ServiceCount `json:"service_distribution"`
}

// NewEmptyReport returns a report whose slices are all non-nil, so that the
// JSON envelope always carries arrays rather than nulls.
func NewEmptyReport() *NmapReport {
	return &NmapReport{
		Hosts:                 []string{},
		Ports:                 []string{},
		Services:              []HostRecord{},
		OSPatterns:            []OsPortGroup{},
		PortDistribution:      []PortCount{},
		PortRangeDistribution: []RangeCount{},
		ServiceDistribution:   []ServiceCount{},
	}
}
