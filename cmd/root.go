package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"streamvault/pkg/database"
	"streamvault/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// commandContext lazily loads the shared config, logger and database pool.
type commandContext struct {
	envFile *string

	once   sync.Once
	config *utils.Config
	logger *zap.Logger
	err    error
}

func newCommandContext(envFile *string) *commandContext {
	return &commandContext{envFile: envFile}
}

func (c *commandContext) ensure() (*utils.Config, *zap.Logger, error) {
	c.once.Do(func() {
		path := ".env"
		if c.envFile != nil && strings.TrimSpace(*c.envFile) != "" {
			path = strings.TrimSpace(*c.envFile)
		}

		config, err := utils.LoadConfig(path)
		if err != nil {
			c.err = fmt.Errorf("load config: %w", err)
			return
		}

		logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warn: failed to init logger: %v, using production defaults\n", err)
			logger, _ = zap.NewProduction()
		}

		c.config = config
		c.logger = logger
	})
	return c.config, c.logger, c.err
}

func (c *commandContext) openDB() (database.PgxIface, error) {
	config, logger, err := c.ensure()
	if err != nil {
		return nil, err
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	logger.Info("Database connected successfully",
		zap.String("host", config.Database.Host),
		zap.String("database", config.Database.Name),
	)
	return db, nil
}

func (c *commandContext) close() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func newRootCommand() *cobra.Command {
	var envFile string
	ctx := newCommandContext(&envFile)

	rootCmd := &cobra.Command{
		Use:           "streamvault",
		Short:         "StreamVault catalog service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			ctx.close()
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to the .env configuration file")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newTitlesCommand(ctx))

	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
