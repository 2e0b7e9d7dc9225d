// Command admin_seed is the operator CLI: it migrates the schema, seeds the
// membership level catalog and manages the service catalog.
package main

import (
	"fmt"
	"os"
	"strconv"

	"marketplace/internal/config"
	"marketplace/internal/logger"
	"marketplace/internal/repositories"
	"marketplace/internal/services/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// opener connects to the database. Tests swap it for SQLite.
type opener func() (*gorm.DB, error)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.Server.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	open := func() (*gorm.DB, error) { return repositories.InitDB(cfg.DB) }
	if err := newRootCmd(open, log).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(open opener, log *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "admin_seed",
		Short:         "Marketplace operator tasks",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newMigrateCmd(open, log),
		newLevelsCmd(open, log),
		newServiceCmd(open, log),
	)
	return root
}

func newMigrateCmd(open opener, log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and seed membership levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			if err := repositories.Migrate(db); err != nil {
				return err
			}
			log.Info("schema migrated and membership levels seeded")
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}

func newLevelsCmd(open opener, log *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List membership levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := catalogService(open, log)
			if err != nil {
				return err
			}
			levels, err := svc.ListMembershipLevels(cmd.Context())
			if err != nil {
				return err
			}
			for _, l := range levels {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", l.ID, l.Name, l.Description)
			}
			return nil
		},
	}
}

func newServiceCmd(open opener, log *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage the service catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <description>",
		Short: "Add a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := catalogService(open, log)
			if err != nil {
				return err
			}
			created, err := svc.AddService(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a service; orders referencing it keep a null service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid service id %q", args[0])
			}
			svc, err := catalogService(open, log)
			if err != nil {
				return err
			}
			if err := svc.RemoveService(cmd.Context(), uint(id)); err != nil {
				return err
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := catalogService(open, log)
			if err != nil {
				return err
			}
			services, err := svc.ListServices(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range services {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", s.ID, s.Description)
			}
			return nil
		},
	})

	return cmd
}

func catalogService(open opener, log *zap.Logger) (catalog.Service, error) {
	db, err := open()
	if err != nil {
		return nil, err
	}
	return catalog.NewService(
		repositories.NewMembershipRepository(db),
		repositories.NewServiceRepository(db),
		log,
	), nil
}
