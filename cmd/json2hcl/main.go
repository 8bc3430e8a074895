// Package main implements the json2hcl CLI tool. It reads a json document from stdin and writes
// it to stdout as a jsonencode( ... ) call with " = " between keys and values.
package main

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mattpgray/json2hcl"
)

var logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		level.Error(logger).Log("msg", errorMessage(err), "err", err)
		return 1
	}
	return 0
}

// errorMessage tells conversion failures apart from bad arguments or flags, which cobra reports
// before RunE runs.
func errorMessage(err error) string {
	var (
		parseErr *json2hcl.ParseError
		ioErr    *json2hcl.IOError
	)
	if errors.As(err, &parseErr) || errors.As(err, &ioErr) {
		return "conversion failed"
	}
	return "invalid usage"
}

var rootCmd = &cobra.Command{
	Use:   "json2hcl",
	Short: "Wrap a json document from stdin in jsonencode( ... ) with = between keys and values",
	Long: `json2hcl reads one json document from stdin and writes it to stdout wrapped in
jsonencode( ... ), indented with tabs and with " = " in place of ":" between keys and
values. Keys stay quoted.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return json2hcl.Convert(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}
