package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pageza/dishdash/backend/config"
	"github.com/pageza/dishdash/backend/internal/database"
	"github.com/pageza/dishdash/backend/internal/logger"
)

// commandContext loads configuration and opens the database on first use.
type commandContext struct {
	cfg *config.Config
	db  *gorm.DB
	log *logrus.Logger

	loadConfig func() (*config.Config, error)
	openDB     func(*config.Config, logrus.FieldLogger) (*gorm.DB, error)
}

func newCommandContext() *commandContext {
	return &commandContext{
		loadConfig: config.LoadConfig,
		openDB:     database.New,
	}
}

func (c *commandContext) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.log = logger.New(cfg.LogLevel, "text")
	return cfg, nil
}

func (c *commandContext) database() (*gorm.DB, error) {
	if c.db != nil {
		return c.db, nil
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	db, err := c.openDB(cfg, c.log)
	if err != nil {
		return nil, err
	}
	c.db = db
	return db, nil
}

func (c *commandContext) close() {
	if c.db != nil {
		_ = database.Close(c.db)
		c.db = nil
	}
}

// execute runs the command line and closes the database afterwards, also
// when the command failed.
func execute(ctx *commandContext, args []string) error {
	defer ctx.close()

	cmd := newRootCommandWithContext(ctx)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCommandWithContext(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dishdashctl",
		Short:         "DishDash operations CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newSeedRecipesCommand(ctx))
	rootCmd.AddCommand(newSeedUsersCommand(ctx))
	rootCmd.AddCommand(newDeleteUserCommand(ctx))
	rootCmd.AddCommand(newIssueTokenCommand(ctx))

	return rootCmd
}
