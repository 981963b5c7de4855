package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yoockh/showcase/config"
	"github.com/yoockh/showcase/internal/client"
	"github.com/yoockh/showcase/internal/logger"
	"github.com/yoockh/showcase/internal/metrics"
)

func main() {
	_ = godotenv.Load()
	if err := newRootCmd(config.LoadCLI()).Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries what every command needs once flags are parsed.
type cli struct {
	cfg     config.CLI
	verbose bool
	width   int

	log     *logrus.Logger
	metrics *metrics.Metrics
	api     *client.Client
}

func newRootCmd(cfg config.CLI) *cobra.Command {
	a := &cli{cfg: cfg}

	root := &cobra.Command{
		Use:   "showcase",
		Short: "Manage and browse a portfolio of certificates, badges, internships and contributions",
		Long: `showcase talks to the showcase API.

Reads are public. Writes need a token from "showcase login", kept in
SHOWCASE_TOKEN or the token file.

Kinds: certificate, badge, internship, contribution, contributionCert`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfg.APIURL, "api", cfg.APIURL, "API base URL")
	root.PersistentFlags().DurationVar(&a.cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "per-request timeout, 0 for none")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every API call")
	root.PersistentFlags().IntVar(&a.width, "width", 120, "terminal width used for grid view")

	root.AddCommand(
		a.loginCmd(),
		a.listCmd(),
		a.createCmd(),
		a.updateCmd(),
		a.deleteCmd(),
		a.galleryCmd(),
		a.uploadsCmd(),
	)
	return root
}

func (a *cli) setup(cmd *cobra.Command) error {
	a.log = logger.NewCLI(cmd.ErrOrStderr(), a.verbose)
	a.metrics = metrics.New(nil)

	token := a.cfg.Token
	if token == "" {
		token = a.readToken()
	}

	opts := []client.Option{
		client.WithLogger(a.log),
		client.WithObserver(a.metrics),
		client.WithToken(token),
	}
	if a.cfg.HTTPTimeout > 0 {
		opts = append(opts, client.WithTimeout(a.cfg.HTTPTimeout))
	}
	a.api = client.New(a.cfg.APIURL, opts...)
	return nil
}

func (a *cli) readToken() string {
	if a.cfg.TokenFile == "" {
		return ""
	}
	b, err := os.ReadFile(a.cfg.TokenFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			a.log.WithError(err).Warn("could not read token file")
		}
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (a *cli) saveToken(token string) error {
	if a.cfg.TokenFile == "" {
		return errors.New("no token file location; set SHOWCASE_TOKEN_FILE")
	}
	if err := os.MkdirAll(filepath.Dir(a.cfg.TokenFile), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	return os.WriteFile(a.cfg.TokenFile, []byte(token+"\n"), 0o600)
}
