package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/halo-bridge/internal/adapters/render/summary"
	"github.com/bnema/halo-bridge/internal/application"
	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/spf13/cobra"
)

var errTokensNotValid = errors.New("tokens are not valid")

func newTokensCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Manage the Halo auth/context tokens",
	}

	cmd.AddCommand(
		newTokensRefreshCmd(app),
		newTokensValidationCmd("check", "Validate the current tokens with a lightweight API call", app.sessions.ValidateTokens),
		newTokensValidationCmd("reload", "Reload tokens from the credential file and environment, then validate them", app.sessions.ReloadTokens),
		newTokensSetCmd(app),
	)
	return cmd
}

func newTokensRefreshCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the tokens using the stored session cookies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.sessions.RefreshTokens(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, result)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Tokens refreshed for %s, session expires %s.\n", result.Username, result.Expires)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	return cmd
}

func newTokensValidationCmd(use, short string, validate func(context.Context) application.TokenValidation) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			validation := validate(cmd.Context())
			if err := writeOutput(cmd, validation, asJSON, summary.Validation); err != nil {
				return err
			}
			if validation.Status != application.ValidationValid {
				return fmt.Errorf("%w: %s", errTokensNotValid, validation.Status)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	return cmd
}

func newTokensSetCmd(app *app) *cobra.Command {
	var authToken string
	var contextToken string
	var transactionID string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store an authToken/contextToken pair copied from a logged-in browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := app.sessions.SetTokens(cmd.Context(), application.SetTokensCommand{
				Tokens:        domain.TokenPair{AuthToken: authToken, ContextToken: contextToken},
				TransactionID: transactionID,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Tokens stored. Run `halo session setup` to enable automatic refresh.")
			return err
		},
	}

	cmd.Flags().StringVar(&authToken, "auth-token", "", "authToken value (TE1TX0FVVEg cookie)")
	cmd.Flags().StringVar(&contextToken, "context-token", "", "contextToken value (TE1TX0NPTlRFWFQ cookie); defaults to the auth token")
	cmd.Flags().StringVar(&transactionID, "transaction-id", "", "Optional transaction-id prefix sent with every request")
	_ = cmd.MarkFlagRequired("auth-token")

	return cmd
}
