package cli

import (
	"fmt"
	"os"

	"github.com/sgribkov/newsvet/internal/pipeline"
	"github.com/sgribkov/newsvet/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the verification HTTP API",
	Long: `Serve exposes the verification pipeline over HTTP:

  POST /verify         combined ML prediction + online verification
  POST /verify-online  online verification only
  POST /predict        ML classifier prediction only
  GET  /live-news      current top headlines
  GET  /healthcheck    liveness probe

Example:
  newsvet serve
  newsvet serve --addr :8080 --classifier-url http://localhost:8000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":5000", "listen address")
	serveCmd.Flags().StringVar(&newsAPIKey, "newsapi-key", "", "NewsAPI key (default: NEWSAPI_KEY env var)")
	serveCmd.Flags().StringVar(&classifierURL, "classifier-url", "", "base URL of the external ML classifier service")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the query cache")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p := pipeline.New(cfg)
	srv := server.New(p)

	fmt.Fprintf(os.Stderr, "Listening on %s\n", serveAddr)
	return srv.ListenAndServe(serveAddr)
}
