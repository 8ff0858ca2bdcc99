package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	addrFlag   string
	dsnFlag    string
	levelsFlag string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "tinyboards",
	Short: "Eight queens and a chess sandbox in the browser",
	Long: `tinyboards serves two small board games over HTTP: an eight queens puzzle
with twelve levels and a free-form chess sandbox with undo.

Examples:
  tinyboards serve --addr :8080
  tinyboards serve --dsn "postgres://localhost/tinyboards" --debug
  tinyboards board queens`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "YAML config file (default $TINYBOARDS_CONFIG)")
	pf.StringVar(&addrFlag, "addr", "", "Listen address (default $TINYBOARDS_ADDR or :8080)")
	pf.StringVar(&dsnFlag, "dsn", "", "Postgres DSN, empty keeps sessions in memory only")
	pf.StringVar(&levelsFlag, "levels", "", "YAML file with the queens level table")
	pf.BoolVar(&debugFlag, "debug", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
