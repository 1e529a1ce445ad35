package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nmapview/db"
	"nmapview/internal/logging"
	"nmapview/internal/metrics"
	"nmapview/internal/nmapdata"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Store the report for a scan file in SQLite",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appConfig.ScanFile
		if len(args) == 1 {
			path = args[0]
		}
		if dbPathFlag != "" {
			appConfig.SQLitePath = dbPathFlag
		}

		service := nmapdata.NewNmapDataService(appConfig, nil)
		report, err := service.ReportFromPath(path)
		if err != nil {
			return err
		}

		conn, err := db.ConnectToSQLite(appConfig.SQLitePath)
		if err != nil {
			return err
		}
		repo := db.NewExportRepository(conn)
		defer repo.Close()

		ctx := cmd.Context()
		if err := db.InitializeSchema(ctx, conn); err != nil {
			return err
		}
		if err := repo.SaveReport(ctx, metrics.SourceFile, report); err != nil {
			return err
		}

		logging.Infof("Exported report %s to %s", report.ID, appConfig.SQLitePath)
		fmt.Fprintln(cmd.OutOrStdout(), report.ID)
		return nil
	},
}

var dbPathFlag string

func init() {
	exportCmd.Flags().StringVar(&dbPathFlag, "db", "", "SQLite database path (overrides SQLITE_PATH)")
	rootCmd.AddCommand(exportCmd)
}
