package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Embedded default configuration. Issuer profiles live under parser: so that
// supporting a new bank is a config change, not a code change. All patterns
// are case-sensitive and none use dot-matches-newline; label-to-value gaps in
// linearized table text are bridged with [\s\S]*? instead. Only the icici
// transaction pattern needs (?m), because it anchors on end of line.
const defaultConfigYAML = `
cors:
  allowed_origin: http://localhost:3000
parser:
  hdfc:
    patterns:
      last_4_digits: 'Card No:\s*\d{4}\s+\d{2}XX\s+XXXX\s+(\d{4})'
      due_date: 'Payment Due Date\s+Total Dues\s+Minimum Amount Due[\s\S]*?(\d{2}/\d{2}/\d{4})\s+'
      total_balance: 'Payment Due Date\s+Total Dues\s+Minimum Amount Due[\s\S]*?\d{2}/\d{2}/\d{4}\s+([\d,]+\.\d{2})'
      transaction: '(\d{2}/\d{2}/\d{4})\s+(.*?)\s+([\d,]+\.\d{2})(\s+Cr)?'
      credit_marker: Cr
    filters:
      - Transaction Description
      - NIKHIL KHANDELWAL
  idfc:
    patterns:
      last_4_digits: 'Card Number:\s*XXXX\s+(\d{4})'
      due_date: 'Payment Due Date\s*(\d{2}/\d{2}/\d{4})'
      total_balance: 'Total Amount Due\s*r([\d,]+\.\d{2})'
      transaction: '(\d{2}/\d{2}/\d{4})\s+(.+?)\s+([\d,]+\.\d{2})(\s+CR)?'
      credit_marker: CR
    filters:
      - Transactional Details
  axis:
    patterns:
      last_4_digits: 'Credit Card Number\s+Credit Limit[\s\S]*?\d{6}\*{6}(\d{4})'
      due_date: 'Payment Due Date\s+Statement Generation Date\s*[\s\S]*?\d{2}/\d{2}/\d{4}\s+-\s+\d{2}/\d{2}/\d{4}\s+(\d{2}/\d{2}/\d{4})'
      total_balance: 'Total Payment Due\s+Minimum Payment Due[\s\S]*?([\d,]+\.\d{2})\s+Dr'
      transaction: '(\d{2}/\d{2}/\d{4})\s+(.+?)\s+([\d,]+\.\d{2})\s+(Dr|Cr)'
      credit_marker: Cr
    filters:
      - TRANSACTION DETAILS
  icici:
    patterns:
      last_4_digits: 'Card Number : \d{4}\s+XXXX\s+XXXX\s+(\d{3,4})'
      due_date: 'Due Date : (\d{2}/\d{2}/\d{4})'
      total_balance: 'Your Total Amount Due[\s\S]*?\|\s*([\d,]+\.\d{2})'
      transaction: '(?m)(\d{2}/\d{2}/\d{4})\s+(.+?)\s+([\d,]+\.\d{2})(\s+CR)?$'
      credit_marker: CR
    filters:
      - Amortization
      - CGST
      - SGST
      - FLIPKART PAYMENTS
`

var (
	cfgFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "ccparser",
		Short: "Extract structured data from credit card statement PDFs",
		Long: `ccparser recovers the card suffix, payment due date, total dues and the
transaction list from credit card statement PDFs. Each supported bank has its
own extraction profile; pass the bank name alongside the statement.`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.ccparser.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogging() {
	if !verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetFlags(log.Ltime | log.Lmsgprefix)
		log.SetPrefix("INFO: ")
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".ccparser")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found, use the embedded defaults
			if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
				fmt.Printf("Error loading embedded configuration: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
