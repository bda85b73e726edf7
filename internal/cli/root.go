// Package cli implements the realty command-line interface.
//
// Every invocation is one short-lived process: it resolves the config and
// data directories, opens the SQLite mirror, hydrates the in-memory store
// from it, runs one command through crm.Service, and closes the mirror.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/realty/internal/crm"
	"github.com/mesh-intelligence/realty/internal/paths"
	"github.com/mesh-intelligence/realty/internal/sqlite"
	"github.com/mesh-intelligence/realty/internal/store"
	"github.com/mesh-intelligence/realty/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	logLevel  string
}

// app carries the state of one invocation.
type app struct {
	flags  rootFlags
	stdout io.Writer
	stderr io.Writer

	configDir string
	config    *viper.Viper
	log       *slog.Logger

	backend *sqlite.Backend
	svc     *crm.Service
}

// usageError marks a bad command line: wrong arguments, unknown flags, or
// unparsable flag values.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// Execute runs the CLI with os.Args and exits with the resulting code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes one invocation and returns its exit code: 0 on success, 1 for
// errors the user can fix by changing the input, 2 for everything else.
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if closeErr := a.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err == nil {
		return exitSuccess
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitCode(err)
}

func exitCode(err error) int {
	var ue *usageError
	switch {
	case errors.As(err, &ue):
		return exitUserError
	case types.IsUserError(err):
		return exitUserError
	case strings.HasPrefix(err.Error(), "unknown command"):
		return exitUserError
	default:
		return exitSysError
	}
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "realty",
		Short: "Record store for a real-estate brokerage",
		Long: "Realty keeps the agents, clients, properties, and contracts of a\n" +
			"real-estate brokerage, validating every field and mirroring each change\n" +
			"into a local SQLite database.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (env "+paths.EnvConfigDir+")")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (env "+paths.EnvDataDir+")")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newVersionCmd(),
		a.newInitCmd(),
		a.newAgentCmd(),
		a.newClientCmd(),
		a.newPropertyCmd(),
		a.newContractCmd(),
		a.newExportCmd(),
		a.newStatsCmd(),
	)
	return root
}

// setup resolves the config directory, reads config.yaml, and builds the
// logger. It does not touch storage.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolving config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	if a.flags.logLevel != "" {
		v.Set(cfgKeyLogLevel, a.flags.logLevel)
	}

	logger, err := newLogger(a.stderr, v.GetString(cfgKeyLogLevel), v.GetString(cfgKeyLogFormat))
	if err != nil {
		return &usageError{err: err}
	}

	a.configDir = configDir
	a.config = v
	a.log = logger.With("cmd", cmd.CommandPath())
	return nil
}

// storageConfig resolves the data directory and returns the backend config.
func (a *app) storageConfig() (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.config.GetString(cfgKeyDataDir), a.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving data dir: %w", err)
	}
	return types.Config{
		Backend: a.config.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}, nil
}

// service opens the backend, hydrates a fresh store from it, and returns the
// Service bound to both. Later calls return the same Service.
func (a *app) service(ctx context.Context) (*crm.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	cfg, err := a.storageConfig()
	if err != nil {
		return nil, err
	}
	b := sqlite.NewBackend(a.log)
	if err := b.Attach(cfg); err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	snap, err := b.Load(ctx)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("loading storage: %w", err)
	}

	s := store.New()
	s.Restore(snap)

	a.backend = b
	a.svc = crm.New(s, b, a.log)
	return a.svc, nil
}

func (a *app) close() error {
	if a.backend == nil {
		return nil
	}
	err := a.backend.Close()
	a.backend = nil
	a.svc = nil
	if err != nil {
		return fmt.Errorf("closing storage: %w", err)
	}
	return nil
}
