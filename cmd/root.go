/*
Copyright © 2025 Katie Mulliken <katie@mulliken.net>
*/
package cmd

import (
	"log"
	"os"

	"github.com/seckatie/statusboard/internal/config"
	"github.com/seckatie/statusboard/internal/core"
	"github.com/seckatie/statusboard/internal/core/status"
	"github.com/seckatie/statusboard/internal/core/web"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "statusboard",
	Short: "Serve a dashboard for visual page-change monitoring results",
	Long: `statusboard renders the status.json snapshot written by a page monitor
into a filterable dashboard: one card per monitored page with its state,
similarity score, timestamps and the latest screenshot and diff.

Running statusboard with no subcommand starts the web server. The snapshot is
re-read on every page load, so the dashboard always shows the latest run.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(cmd)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		web.StartServer(cfg.Addr(), web.Options{
			Snapshot:  cfg.Snapshot,
			ImagesDir: cfg.Images,
			Formatter: cfg.Formatter(),
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default "+config.ConfigFileName+" if present)")
	rootCmd.PersistentFlags().StringP("snapshot", "s", core.StatusFile, "Path or http(s) URL of the status snapshot")
	rootCmd.PersistentFlags().String("timezone", "Local", "Time zone timestamps are shown in")
	rootCmd.PersistentFlags().String("time-format", status.DefaultTimeLayout, "Go time layout for timestamps")

	rootCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	rootCmd.Flags().String("host", "localhost", "Host to listen on")
	rootCmd.Flags().StringP("images", "i", core.ImagesDir, "Directory holding screenshot and diff images")
}
