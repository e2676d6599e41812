package cmd

import (
	"log"
	"os"

	"github.com/RajParmar007/Credit-Card-Statement-Parser/api"
	"github.com/RajParmar007/Credit-Card-Statement-Parser/extractor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long:  `Starts the HTTP API server that accepts statement PDFs and returns the extracted record as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stdout)
		log.SetFlags(log.Ltime | log.Lmsgprefix)

		registry, err := extractor.LoadRegistry()
		if err != nil {
			log.Fatalf("Failed to load issuer profiles: %v", err)
		}

		cfg := api.DefaultConfig()
		if servePort != "" {
			cfg.Port = ":" + servePort
		}
		if origin := viper.GetString("cors.allowed_origin"); origin != "" {
			cfg.AllowedOrigin = origin
		}
		cfg.LogPrefix = "SERVER: "

		server := api.New(cfg, registry)
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "5001", "Port to run the API server on")
}
