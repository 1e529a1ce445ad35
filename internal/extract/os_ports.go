package extract

// OSPorts accumulates open "<id>/<protocol>" strings per detected OS name
// during one extraction pass. A fresh accumulator is created per document.
type OSPorts struct {
	ports map[string][]string
}

func NewOSPorts() *OSPorts {
	return &OSPorts{ports: make(map[string][]string)}
}

// Add records an open port for osName. Duplicates are kept; the aggregation
// step owns deduplication.
func (a *OSPorts) Add(osName, port string) {
	a.ports[osName] = append(a.ports[osName], port)
}

// Map returns a copy of the accumulated ports keyed by OS name.
func (a *OSPorts) Map() map[string][]string {
	out := make(map[string][]string, len(a.ports))
	for name, ports := range a.ports {
		out[name] = append([]string(nil), ports...)
	}
	return out
}
