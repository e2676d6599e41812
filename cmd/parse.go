package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/RajParmar007/Credit-Card-Statement-Parser/extractor"
	"github.com/spf13/cobra"
)

var (
	parseFile string
	parseBank string
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a statement PDF",
	Long: `Parses a single credit card statement PDF using the profile of the
given bank and prints the extracted record as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		registry, err := extractor.LoadRegistry()
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}

		file, err := os.Open(parseFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		defer file.Close()

		record, err := registry.ParseReader(file, parseBank)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}

		asJSON, _ := json.Marshal(record)
		fmt.Println(string(asJSON))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFile, "file", "f", "", "Path to the statement PDF (required)")
	parseCmd.Flags().StringVarP(&parseBank, "bank", "b", "", "Issuing bank, e.g. hdfc, idfc, axis, icici (required)")
	parseCmd.MarkFlagRequired("file")
	parseCmd.MarkFlagRequired("bank")
}
