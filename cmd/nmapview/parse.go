package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"nmapview/internal/nmapdata"
	"nmapview/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the report for a scan file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appConfig.ScanFile
		if len(args) == 1 {
			path = args[0]
		}

		service := nmapdata.NewNmapDataService(appConfig, nil)
		report, err := service.ReportFromPath(path)
		if err != nil {
			return err
		}

		switch outputFormat {
		case "json":
			return writeReportJSON(cmd.OutOrStdout(), report)
		case "table":
			return writeReportTable(cmd.OutOrStdout(), path, report)
		default:
			return fmt.Errorf("unknown format %q (want json or table)", outputFormat)
		}
	},
}

var outputFormat string

func init() {
	parseCmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "Output format: json or table")
	rootCmd.AddCommand(parseCmd)
}

func writeReportJSON(w io.Writer, report *models.NmapReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeReportTable(w io.Writer, path string, report *models.NmapReport) error {
	fmt.Fprintln(w, titleStyle.Render("Nmap scan: "+path))
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("Services"))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "IP\tPORT\tSTATE\tSERVICE\tPRODUCT\tVERSION\tOS")
	for _, r := range report.Services {
		fmt.Fprintln(tw, strings.Join([]string{r.IP, r.Port, r.State, r.Service, r.Product, r.Version, r.OS}, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, sectionStyle.Render("Open ports by OS"))
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OS\tCOUNT\tPORTS")
	for _, g := range report.OSPatterns {
		fmt.Fprintln(tw, g.OS+"\t"+strconv.Itoa(g.PortCount)+"\t"+g.Ports)
	}
	return tw.Flush()
}
