// Package extract flattens a decoded nmap document into HostRecords.
package extract

import (
	"fmt"
	"strings"

	"nmapview/internal/logging"
	"nmapview/internal/shape"
	"nmapview/models"
)

// Element and attribute names as they appear in the decoded tree.
const (
	keyRun      = "nmaprun"
	keyHost     = "host"
	keyAddress  = "address"
	keyStatus   = "status"
	keyOS       = "os"
	keyOSMatch  = "osmatch"
	keyPorts    = "ports"
	keyPort     = "port"
	keyState    = "state"
	keyService  = "service"
	attrAddr    = "@addr"
	attrType    = "@addrtype"
	attrState   = "@state"
	attrName    = "@name"
	attrPortID  = "@portid"
	attrProto   = "@protocol"
	attrProduct = "@product"
	attrVersion = "@version"

	addrTypeIPv4 = "ipv4"
	stateOpen    = "open"
)

// Stats counts what one extraction pass saw and skipped.
type Stats struct {
	Hosts             int
	SkippedHosts      int
	SkippedPortBlocks int
	SkippedPorts      int
	Records           int
}

// Extract walks doc in document order and returns one HostRecord per valid
// port entry. Open ports are added to acc under the host's OS name.
// Malformed hosts and ports are skipped; Extract never fails.
func Extract(doc map[string]interface{}, acc *OSPorts) ([]models.HostRecord, Stats) {
	records := []models.HostRecord{}
	var stats Stats

	run, ok := doc[keyRun]
	if !ok {
		logging.Debugf("Document has no %s root, nothing to extract", keyRun)
		return records, stats
	}

	runBlock, _ := shape.AsMap(run)
	hosts := shape.AsList(runBlock[keyHost])
	logging.Debugf("Found %d hosts", len(hosts))

	for i, entry := range hosts {
		stats.Hosts++
		host, ok := shape.AsMap(entry)
		if !ok {
			logging.Debugf("Skipping host #%d: not a mapping (%T)", i, entry)
			stats.SkippedHosts++
			continue
		}

		ip := resolveIP(host)
		status := shape.String(host, models.Unknown, keyStatus, attrState)
		osName := resolveOSName(host)
		logging.Debugf("Processing host: %s (status: %s, os: %s)", ip, status, osName)

		portsBlock, ok := shape.AsMap(host[keyPorts])
		if !ok {
			logging.Debugf("Skipping ports for host %s: ports block is %T", ip, host[keyPorts])
			stats.SkippedPortBlocks++
			continue
		}

		portShape := shape.Of(portsBlock[keyPort])
		ports := portShape.Slice()
		logging.Debugf("Found %d ports for host %s (%s)", len(ports), ip, portShape.Kind())

		for j, rawPort := range ports {
			port, ok := shape.AsMap(rawPort)
			if !ok {
				logging.Debugf("Skipping port #%d of host %s: not a mapping (%T)", j, ip, rawPort)
				stats.SkippedPorts++
				continue
			}

			record := buildRecord(ip, osName, port)
			records = append(records, record)

			if record.State == stateOpen && acc != nil {
				acc.Add(osName, record.Port)
			}
		}
	}

	stats.Records = len(records)
	logging.Debugf("Processed %d entries", stats.Records)
	return records, stats
}

func buildRecord(ip, osName string, port map[string]interface{}) models.HostRecord {
	portID := orUnknown(shape.String(port, models.Unknown, attrPortID))
	protocol := orUnknown(shape.String(port, models.Unknown, attrProto))

	record := models.HostRecord{
		IP:      ip,
		Port:    fmt.Sprintf("%s/%s", portID, protocol),
		Service: models.Unknown,
		State:   shape.String(port, models.Unknown, keyState, attrState),
		OS:      osName,
	}

	if service, ok := shape.AsMap(port[keyService]); ok {
		record.Service = shape.String(service, models.Unknown, attrName)
		record.Product = shape.String(service, "", attrProduct)
		record.Version = shape.String(service, "", attrVersion)
	}
	return record
}

// orUnknown keeps both halves of a port string non-empty when the attribute
// is present but blank.
func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.Unknown
	}
	return s
}

// resolveIP returns the first ipv4-tagged address. Other address families are
// never used as a fallback.
func resolveIP(host map[string]interface{}) string {
	for _, entry := range shape.AsList(host[keyAddress]) {
		if shape.String(entry, "", attrType) == addrTypeIPv4 {
			return shape.String(entry, models.Unknown, attrAddr)
		}
	}
	return models.Unknown
}

func resolveOSName(host map[string]interface{}) string {
	osBlock, ok := shape.AsMap(host[keyOS])
	if !ok {
		return models.Unknown
	}
	match, ok := shape.First(osBlock[keyOSMatch])
	if !ok {
		return models.Unknown
	}
	return shape.String(match, models.Unknown, attrName)
}
