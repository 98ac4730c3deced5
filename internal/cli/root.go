// Package cli provides the contactctl command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/contactdex/internal/db"
	"github.com/kailas-cloud/contactdex/internal/db/memory"
	dbRedis "github.com/kailas-cloud/contactdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/contactdex/internal/logger"
	contactrepo "github.com/kailas-cloud/contactdex/internal/repository/contact"
	contactuc "github.com/kailas-cloud/contactdex/internal/usecase/contact"
	searchuc "github.com/kailas-cloud/contactdex/internal/usecase/search"
	"github.com/kailas-cloud/contactdex/internal/version"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

type options struct {
	file      string
	redisAddr []string
	keyPrefix string
	output    string
	logLevel  string
	workers   int

	// store is set once setup opens it and closed by run.
	store db.Store
}

func (o *options) closeStore() {
	if o.store != nil {
		o.store.Close()
		o.store = nil
	}
}

// app holds the services a subcommand runs against.
type app struct {
	store    db.Store
	contacts *contactuc.Service
	search   *searchuc.Service
	output   string
}

type appKey struct{}

func appFrom(ctx context.Context) *app {
	a, _ := ctx.Value(appKey{}).(*app)
	return a
}

// NewRootCmd creates and returns the root command.
// Callers that execute it directly own the store it opens; Execute closes it.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *options) {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "contactctl",
		Short: "contactctl - query contact books with the find grammar",
		Long: `contactctl loads contacts from a YAML file (or a Redis-backed contactdex store)
and runs find commands against them.

  contactctl --file contacts.yaml find n/Alex n/Bernice
  contactctl --file contacts.yaml find -s n/Alex m/CS2103T`,
		Version: version.String(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return setup(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.file, "file", "f", "", "YAML file with contacts to load into an in-memory store")
	pf.StringSliceVar(&opts.redisAddr, "redis", nil, "Redis addresses of a contactdex store (used when --file is empty)")
	pf.StringVar(&opts.keyPrefix, "key-prefix", contactrepo.DefaultKeyPrefix, "Key prefix of the contactdex store")
	pf.StringVarP(&opts.output, "output", "o", OutputTable, "Output format (table|json)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.IntVar(&opts.workers, "workers", 0, "Workers used to filter large contact books (0 = default)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{OutputTable, OutputJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newFindCommand())
	rootCmd.AddCommand(newListCommand())

	return rootCmd, opts
}

// Execute runs the root command.
func Execute() error {
	rootCmd, opts := newRootCmd()
	if err := run(context.Background(), rootCmd, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// run executes cmd and closes the store it opened, including when the command fails.
func run(ctx context.Context, cmd *cobra.Command, opts *options) error {
	defer opts.closeStore()
	return cmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, opts *options) error {
	switch opts.output {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("unknown output format %q", opts.output)
	}

	log, err := logpkg.NewLogger("cli", opts.logLevel)
	if err != nil {
		return err
	}
	ctx := logpkg.ContextWithLogger(cmd.Context(), log)

	store, err := openStore(opts)
	if err != nil {
		return err
	}
	opts.store = store

	repo := contactrepo.New(store, opts.keyPrefix)
	a := &app{
		store:    store,
		contacts: contactuc.New(repo),
		search:   searchuc.New(repo, searchuc.Config{Workers: opts.workers}),
		output:   opts.output,
	}

	if opts.file != "" {
		n, err := loadContactsFile(ctx, a.contacts, opts.file)
		if err != nil {
			return err
		}
		log.Debug("contacts loaded", zap.String("file", opts.file), zap.Int("count", n))
	}

	cmd.SetContext(context.WithValue(ctx, appKey{}, a))
	return nil
}

func openStore(opts *options) (db.Store, error) {
	if opts.file != "" || len(opts.redisAddr) == 0 {
		return memory.NewStore(), nil
	}
	s, err := dbRedis.NewStore(dbRedis.Config{Addrs: opts.redisAddr})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", strings.Join(opts.redisAddr, ","), err)
	}
	return s, nil
}
