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

// NewAssignmentsCommand creates the assignments command group.
func NewAssignmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assignments",
		Aliases: []string{"assignment"},
		Short:   "Manage assignments",
		Long:    "List, create, and delete assignments within a course",
	}

	cmd.AddCommand(newAssignmentsListCommand())
	cmd.AddCommand(newAssignmentsGetCommand())
	cmd.AddCommand(newAssignmentsCreateCommand())
	cmd.AddCommand(newAssignmentsDeleteCommand())

	return cmd
}

func newAssignmentsListCommand() *cobra.Command {
	var (
		courseID   int64
		perPage    int
		searchTerm string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assignments",
		Long:  "List assignments in a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			courseID, err = resolveCourseID(cmd, courseID)
			if err != nil {
				return err
			}

			params := canvas.NewListParams().WithPerPage(perPage)
			if searchTerm != "" {
				params = params.WithSearchTerm(searchTerm)
			}

			page, err := client.Assignments().List(context.Background(), courseID, params)
			if err != nil {
				return fmt.Errorf("failed to list assignments: %w", err)
			}

			handled, err := renderStructured(page.Items)
			if handled {
				return err
			}

			return renderAssignmentTable(page.Items)
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "course ID (defaults to the configured course)")
	cmd.Flags().IntVar(&perPage, "per-page", constants.StandardPageSize, "results per page")
	cmd.Flags().StringVar(&searchTerm, "search", "", "filter assignments by name")

	return cmd
}

func renderAssignmentTable(assignments []canvas.Assignment) error {
	if len(assignments) == 0 {
		_, _ = os.Stdout.WriteString("No assignments found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Points", "Due", "Published")

	for _, assignment := range assignments {
		points := constants.NotAvailable
		if assignment.PointsPossible != nil {
			points = fmt.Sprintf("%g", *assignment.PointsPossible)
		}

		published := constants.NotAvailable
		if assignment.Published != nil {
			published = fmt.Sprintf("%t", *assignment.Published)
		}

		_ = table.Append(fmt.Sprintf("%d", assignment.ID), assignment.Name,
			points, formatTime(assignment.DueAt), published)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newAssignmentsGetCommand() *cobra.Command {
	var courseID int64

	cmd := &cobra.Command{
		Use:   "get ASSIGNMENT_ID",
		Short: "Get assignment details",
		Long:  "Display detailed information about a specific assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignmentID, err := parseID(args[0], constants.ErrAssignmentIDRequired)
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

			assignment, err := client.Assignments().Get(context.Background(), courseID, assignmentID)
			if err != nil {
				return fmt.Errorf("failed to get assignment: %w", err)
			}

			handled, err := renderStructured(assignment)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", fmt.Sprintf("%d", assignment.ID))
			_ = table.Append("Name", assignment.Name)
			_ = table.Append("Grading type", orNotAvailable(assignment.GradingType))
			_ = table.Append("Due", formatTime(assignment.DueAt))

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

func newAssignmentsCreateCommand() *cobra.Command {
	var (
		courseID        int64
		name            string
		points          float64
		submissionTypes []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an assignment",
		Long:  "Create a new assignment in a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			courseID, err = resolveCourseID(cmd, courseID)
			if err != nil {
				return err
			}

			params := canvas.AssignmentParams{
				Name:            name,
				SubmissionTypes: submissionTypes,
			}
			if cmd.Flags().Changed("points") {
				params.PointsPossible = &points
			}

			assignment, err := client.Assignments().Create(context.Background(), courseID,
				&canvas.AssignmentCreateRequest{Assignment: params})
			if err != nil {
				return fmt.Errorf("failed to create assignment: %w", err)
			}

			fmt.Printf("Assignment '%s' created with ID %d\n", assignment.Name, assignment.ID)

			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "course ID (defaults to the configured course)")
	cmd.Flags().StringVar(&name, "name", "", "assignment name (required)")
	cmd.Flags().Float64Var(&points, "points", 0, "points possible")
	cmd.Flags().StringSliceVar(&submissionTypes, "submission-types", nil, "allowed submission types (online_text_entry, online_upload, online_url)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAssignmentsDeleteCommand() *cobra.Command {
	var courseID int64

	cmd := &cobra.Command{
		Use:   "delete ASSIGNMENT_ID",
		Short: "Delete an assignment",
		Long:  "Delete an assignment from a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignmentID, err := parseID(args[0], constants.ErrAssignmentIDRequired)
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

			_, err = client.Assignments().Delete(context.Background(), courseID, assignmentID)
			if err != nil {
				return fmt.Errorf("failed to delete assignment: %w", err)
			}

			fmt.Printf("Assignment %d deleted\n", assignmentID)

			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "course ID (defaults to the configured course)")

	return cmd
}

// resolveCourseID falls back to the configured course context when no
// --course flag is given.
func resolveCourseID(cmd *cobra.Command, flagValue int64) (int64, error) {
	if flagValue > 0 {
		return flagValue, nil
	}

	instance, _, err := getInstanceConfigByFlag(cmd.Flag("api").Value.String())
	if err != nil {
		return 0, err
	}

	if instance.CourseID > 0 {
		return instance.CourseID, nil
	}

	return 0, constants.ErrCourseIDRequired
}
