package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppiankov/foundervalue/internal/logger"
	"github.com/ppiankov/foundervalue/internal/pipeline"
	"github.com/ppiankov/foundervalue/internal/transport/httpapi"
)

var (
	serveAddr string
	serveLLM  llmFlags
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the valuation engine over HTTP",
	Long: `Serve exposes stages, defaults, valuations and offer evaluation as a JSON API.

Example:
  foundervalue serve --addr :8080
  curl -s localhost:8080/api/stages`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config: :8080)")
	serveLLM.register(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if err := serveLLM.apply(cfg); err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg, pipeline.WithThrottle(newThrottle(cfg)))
	srv, err := httpapi.NewServer(httpapi.ServerConfig{
		Addr:        cfg.Server.Addr,
		Valuer:      p,
		YearsToExit: cfg.Offer.YearsToExit,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "✓ Listening on %s\n", srv.Addr())
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	logger.Infof("server stopped")
	return nil
}
