package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artisanhub/internal/client"
	"artisanhub/internal/domain"
	"artisanhub/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// cli carries what every command needs once the root has initialized.
type cli struct {
	apiURL  string
	token   string
	verbose bool
	asJSON  bool
	timeout time.Duration

	out    io.Writer
	errOut io.Writer
	logger *zap.Logger
	sess   *session.Session
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "artisanctl",
		Short: "Browse and manage the artisan marketplace",
		Long: `artisanctl talks to the marketplace API.

Reads are cached for the lifetime of one command; every change invalidates the
affected reads. Admin commands redirect non-admin callers to the product listing.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if c.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			config.OutputPaths = []string{"stderr"}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			c.logger = logger

			api := client.New(c.apiURL, client.WithToken(c.token), client.WithLogger(logger))
			c.sess = session.New(api, logger)
			return nil
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.apiURL, "api", envOr("ARTISAN_API_URL", "http://localhost:8080"), "Marketplace API base URL (or set ARTISAN_API_URL)")
	pf.StringVar(&c.token, "token", os.Getenv("ARTISAN_TOKEN"), "Bearer token (or set ARTISAN_TOKEN)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.BoolVar(&c.asJSON, "json", false, "Print results as JSON")
	pf.DurationVar(&c.timeout, "timeout", 2*time.Minute, "Operation timeout")

	root.AddCommand(
		c.productsCmd(),
		c.artistsCmd(),
		c.storeCmd(),
		c.profileCmd(),
		c.roleCmd(),
		c.adminCmd(),
		c.checkoutCmd(),
	)
	return root
}

// close releases the session and flushes the logger; it runs whether or not the command failed.
func (c *cli) close() {
	if c.sess != nil {
		c.sess.Close()
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

// ctx bounds one command by the timeout flag and by interrupt signals.
func (c *cli) ctx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	c := &cli{out: out, errOut: errOut}
	defer c.close()
	root := c.rootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		os.Exit(exitCode(err))
	}
}

func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return fmt.Sprintf("%s (HTTP %d)", apiErr.Message, apiErr.Status)
	default:
		return err.Error()
	}
}

func exitCode(err error) int {
	if domain.IsValidation(err) {
		return 2
	}
	return 1
}
