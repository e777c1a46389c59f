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

// NewModulesCommand creates the modules command group.
func NewModulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "modules",
		Aliases: []string{"module"},
		Short:   "Manage course modules",
		Long:    "List modules and module items within a course",
	}

	cmd.AddCommand(newModulesListCommand())
	cmd.AddCommand(newModulesItemsCommand())
	cmd.AddCommand(newModulesCreateCommand())
	cmd.AddCommand(newModulesDeleteCommand())

	return cmd
}

func newModulesListCommand() *cobra.Command {
	var courseID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List modules",
		Long:  "List modules in a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			courseID, err = resolveCourseID(cmd, courseID)
			if err != nil {
				return err
			}

			page, err := client.Modules().List(context.Background(), courseID, nil)
			if err != nil {
				return fmt.Errorf("failed to list modules: %w", err)
			}

			handled, err := renderStructured(page.Items)
			if handled {
				return err
			}

			if len(page.Items) == 0 {
				_, _ = os.Stdout.WriteString("No modules found\n")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Position", "Name", "State", "Items")

			for _, module := range page.Items {
				_ = table.Append(fmt.Sprintf("%d", module.ID),
					fmt.Sprintf("%d", module.Position), module.Name,
					orNotAvailable(module.WorkflowState),
					fmt.Sprintf("%d", module.ItemsCount))
			}

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "course ID (defaults to the configured course)")

	return cmd
}

func newModulesItemsCommand() *cobra.Command {
	var courseID int64

	cmd := &cobra.Command{
		Use:   "items MODULE_ID",
		Short: "List module items",
		Long:  "List the items of a module in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moduleID, err := parseID(args[0], constants.ErrModuleIDRequired)
			if err != nil {
				return err
			}

			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			courseID, err = resolveCourseID(cmd, courseID)
			if err != nil {
				return err
			}

			page, err := client.Modules().ListItems(context.Background(), courseID, moduleID, nil)
			if err != nil {
				return fmt.Errorf("failed to list module items: %w", err)
			}

			handled, err := renderStructured(page.Items)
			if handled {
				return err
			}

			if len(page.Items) == 0 {
				_, _ = os.Stdout.WriteString("No items found\n")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Position", "Type", "Title")

			for _, item := range page.Items {
				_ = table.Append(fmt.Sprintf("%d", item.ID),
					fmt.Sprintf("%d", item.Position), item.Type, item.Title)
			}

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "course ID (defaults to the configured course)")

	return cmd
}

func newModulesCreateCommand() *cobra.Command {
	var (
		courseID int64
		name     string
		position int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a module",
		Long:  "Create a new module in a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			courseID, err = resolveCourseID(cmd, courseID)
			if err != nil {
				return err
			}

			module, err := client.Modules().Create(context.Background(), courseID,
				&canvas.ModuleCreateRequest{
					Module: canvas.ModuleParams{Name: name, Position: position},
				})
			if err != nil {
				return fmt.Errorf("failed to create module: %w", err)
			}

			fmt.Printf("Module '%s' created with ID %d\n", module.Name, module.ID)

			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "course ID (defaults to the configured course)")
	cmd.Flags().StringVar(&name, "name", "", "module name (required)")
	cmd.Flags().IntVar(&position, "position", 0, "position within the course")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newModulesDeleteCommand() *cobra.Command {
	var courseID int64

	cmd := &cobra.Command{
		Use:   "delete MODULE_ID",
		Short: "Delete a module",
		Long:  "Delete a module from a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moduleID, err := parseID(args[0], constants.ErrModuleIDRequired)
			if err != nil {
				return err
			}

			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			courseID, err = resolveCourseID(cmd, courseID)
			if err != nil {
				return err
			}

			err = client.Modules().Delete(context.Background(), courseID, moduleID)
			if err != nil {
				return fmt.Errorf("failed to delete module: %w", err)
			}

			fmt.Printf("Module %d deleted\n", moduleID)

			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "course ID (defaults to the configured course)")

	return cmd
}
