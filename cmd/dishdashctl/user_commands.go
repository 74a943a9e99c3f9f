package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/dishdash/backend/internal/service"
)

// validateUsername applies the login rule of 3 to 50 runes.
func validateUsername(username string) error {
	if n := len([]rune(username)); n < 3 || n > 50 {
		return fmt.Errorf("username %q must be 3 to 50 characters", username)
	}
	return nil
}

func newDeleteUserCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <username>",
		Short: "Delete a user with its saved recipes and preferences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := ctx.database()
			if err != nil {
				return err
			}

			users := service.NewUserService(db, ctx.cfg.DBQueryTimeout)
			user, err := users.GetByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if user == nil {
				return fmt.Errorf("%w: %s", service.ErrUserNotFound, args[0])
			}

			if err := users.Delete(cmd.Context(), user.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", user.Username)
			return nil
		},
	}
}

func newIssueTokenCommand(ctx *commandContext) *cobra.Command {
	var create bool

	cmd := &cobra.Command{
		Use:   "issue-token <username>",
		Short: "Print a bearer token for an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.config()
			if err != nil {
				return err
			}
			db, err := ctx.database()
			if err != nil {
				return err
			}

			tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.AccessTokenTTL)
			if err != nil {
				return err
			}
			users := service.NewUserService(db, cfg.DBQueryTimeout)

			if create {
				if err := validateUsername(args[0]); err != nil {
					return err
				}
				resp, err := service.NewAuthService(users, tokens).Login(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.AccessToken)
				return nil
			}

			user, err := users.GetByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if user == nil {
				return errors.New("no such user; pass --create to create it")
			}
			token, err := tokens.Issue(user.Username)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().BoolVar(&create, "create", false, "Create the user if it does not exist")
	return cmd
}
