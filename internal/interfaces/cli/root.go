package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lite-lake/infra-bamctl/internal/application/usecase"
	"github.com/lite-lake/infra-bamctl/internal/config"
)

var (
	flagHost     string
	flagUser     string
	flagPassword string
	flagConfig   string
	flagView     string
	flagInsecure bool

	ShowVersion bool
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "bamctl",
	Short: "BlueCat Address Manager DNS/network helper",
	Long:  "Bamctl manages DNS resource records and IPv4/IPv6 network objects through the Address Manager REST v2 API.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if ShowVersion {
			fmt.Println(Version)
			os.Exit(0)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagHost, "host", "", "Address Manager base URL or hostname (env: BAM_HOST)")
	pf.StringVar(&flagUser, "user", "", "API username (env: BAM_USER)")
	pf.StringVar(&flagPassword, "password", "", "API password (env: BAM_PASSWORD)")
	pf.StringVar(&flagConfig, "config", "", "Configuration name (env: BAM_CONFIG)")
	pf.StringVar(&flagView, "view", "", "DNS view name (env: BAM_VIEW)")
	pf.BoolVar(&flagInsecure, "insecure", false, "Disable TLS certificate verification")
	// Read from os.Args in main before flag parsing, so logging is
	// configured ahead of the first cobra output.
	pf.Bool("debug", false, "Enable verbose HTTP debugging")
	pf.BoolVarP(&ShowVersion, "version", "v", false, "Show version information")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings assembles the immutable settings value: config file, then
// environment, then flags.
func loadSettings() (config.Settings, error) {
	s, err := config.Defaults().LoadFile(config.ConfigFilePath())
	if err != nil {
		return config.Settings{}, err
	}
	s = s.FromEnv().WithOverrides(config.Overrides{
		Host:     flagHost,
		User:     flagUser,
		Password: flagPassword,
		Config:   flagConfig,
		View:     flagView,
		Insecure: flagInsecure,
	})
	return s, nil
}

// withSession runs fn inside one authenticated session, released on every
// exit path.
func withSession(fn func(ctx context.Context, s *usecase.Session) error) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := context.Background()
	session, err := usecase.Open(ctx, settings)
	if err != nil {
		return err
	}
	defer session.Close()

	return fn(ctx, session)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", ErrorStyle.Render(fmt.Sprintf("ERROR: %v", err)))
	os.Exit(1)
}
