package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/edukit-io/canvas/internal/constants"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage users",
		Long:    "Look up and list Canvas users",
	}

	cmd.AddCommand(newUsersMeCommand())
	cmd.AddCommand(newUsersGetCommand())
	cmd.AddCommand(newUsersListCommand())

	return cmd
}

func newUsersMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		Long:  "Display the user the current credentials authenticate as",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			user, err := client.GetSelf(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get current user: %w", err)
			}

			return outputUser(user)
		},
	}
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_ID",
		Short: "Get user details",
		Long:  "Display detailed information about a specific user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0], ErrUserIDInvalid)
			if err != nil {
				return err
			}

			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			user, err := client.Users().Get(context.Background(), userID)
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return outputUser(user)
		},
	}
}

func outputUser(user *canvas.User) error {
	handled, err := renderStructured(user)
	if handled {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")
	_ = table.Append("ID", fmt.Sprintf("%d", user.ID))
	_ = table.Append("Name", user.Name)
	_ = table.Append("Login", orNotAvailable(user.LoginID))
	_ = table.Append("Email", orNotAvailable(user.Email))
	_ = table.Append("SIS ID", orNotAvailable(user.SISUserID))

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newUsersListCommand() *cobra.Command {
	var (
		accountID  int64
		perPage    int
		searchTerm string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Long:  "List users under an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			accountID, err = resolveAccountID(cmd, accountID)
			if err != nil {
				return err
			}

			params := canvas.NewListParams().WithPerPage(perPage)
			if searchTerm != "" {
				params = params.WithSearchTerm(searchTerm)
			}

			page, err := client.Users().ListForAccount(context.Background(), accountID, params)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			handled, err := renderStructured(page.Items)
			if handled {
				return err
			}

			if len(page.Items) == 0 {
				_, _ = os.Stdout.WriteString("No users found\n")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Login", "Email")

			for _, user := range page.Items {
				_ = table.Append(fmt.Sprintf("%d", user.ID), user.Name,
					orNotAvailable(user.LoginID), orNotAvailable(user.Email))
			}

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&accountID, "account", 0, "account ID (defaults to the configured account)")
	cmd.Flags().IntVar(&perPage, "per-page", constants.StandardPageSize, "results per page")
	cmd.Flags().StringVar(&searchTerm, "search", "", "filter users by name or login")

	return cmd
}
