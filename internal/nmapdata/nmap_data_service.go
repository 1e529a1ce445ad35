package nmapdata

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"nmapview/internal/aggregate"
	"nmapview/internal/config"
	"nmapview/internal/extract"
	"nmapview/internal/logging"
	"nmapview/internal/metrics"
	"nmapview/internal/xmltree"
	"nmapview/models"
)

// ErrTooLarge is returned when an upload exceeds the configured limit.
var ErrTooLarge = errors.New("scan upload too large")

// NmapDataService turns raw nmap XML into an NmapReport. It holds no state
// between calls; every call rebuilds the report from its input.
type NmapDataService struct {
	Config  *config.Config
	Metrics *metrics.Metrics
}

// NewNmapDataService creates a new NmapDataService. m may be nil.
func NewNmapDataService(cfg *config.Config, m *metrics.Metrics) *NmapDataService {
	return &NmapDataService{
		Config:  cfg,
		Metrics: m,
	}
}

// LoadScanFile reads the configured scan file.
func (s *NmapDataService) LoadScanFile() ([]byte, error) {
	return s.LoadFile(s.Config.ScanFile)
}

// LoadFile reads raw scan XML from path.
func (s *NmapDataService) LoadFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logging.Errorf("Error loading XML file: %v", err)
		return nil, fmt.Errorf("failed to read scan file %s: %w", path, err)
	}
	logging.Debugf("Successfully read XML file, size: %d bytes", len(raw))
	return raw, nil
}

// ReportFromFile loads and processes the configured scan file.
func (s *NmapDataService) ReportFromFile() (*models.NmapReport, error) {
	return s.ReportFromPath(s.Config.ScanFile)
}

// ReportFromPath loads and processes the scan file at path.
func (s *NmapDataService) ReportFromPath(path string) (*models.NmapReport, error) {
	raw, err := s.LoadFile(path)
	if err != nil {
		s.Metrics.ObserveFailure(metrics.SourceFile)
		return nil, err
	}
	return s.Process(raw, metrics.SourceFile)
}

// ReportFromReader reads at most limit bytes from r and processes them.
// Input larger than limit is rejected rather than truncated.
func (s *NmapDataService) ReportFromReader(r io.Reader, limit int64) (*models.NmapReport, error) {
	raw, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		s.Metrics.ObserveFailure(metrics.SourceUpload)
		return nil, fmt.Errorf("failed to read scan upload: %w", err)
	}
	if int64(len(raw)) > limit {
		s.Metrics.ObserveFailure(metrics.SourceUpload)
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, limit)
	}
	return s.Process(raw, metrics.SourceUpload)
}

// Process decodes raw XML and builds the report. Only decode failures are
// returned as errors; malformed entries inside the document are skipped.
func (s *NmapDataService) Process(raw []byte, source string) (*models.NmapReport, error) {
	start := time.Now()

	doc, err := xmltree.Decode(raw)
	if err != nil {
		logging.Errorf("Error parsing Nmap XML: %v", err)
		s.Metrics.ObserveFailure(source)
		return nil, err
	}
	logging.Debugf("Successfully parsed XML data")

	report, stats := BuildReport(doc)
	s.Metrics.ObserveSuccess(source, stats, time.Since(start))
	logging.Infof("Processed %s document %s: %d hosts, %d records, %d OS groups",
		source, report.ID, stats.Hosts, stats.Records, len(report.OSPatterns))
	return report, nil
}

// BuildReport runs extraction and aggregation over an already decoded tree.
func BuildReport(doc map[string]interface{}) (*models.NmapReport, extract.Stats) {
	acc := extract.NewOSPorts()
	records, stats := extract.Extract(doc, acc)

	report := models.NewEmptyReport()
	report.ID = uuid.New().String()
	report.HostCount = stats.Hosts
	report.Services = records
	report.OSPatterns = aggregate.Aggregate(acc.Map())

	for _, r := range records {
		report.Hosts = append(report.Hosts, r.IP)
		report.Ports = append(report.Ports, r.Port)
	}

	report.PortDistribution = PortDistribution(records)
	report.PortRangeDistribution = PortRangeDistribution(records)
	report.ServiceDistribution = ServiceDistribution(records)

	return report, stats
}
