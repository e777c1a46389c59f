package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/edukit-io/canvas/internal/constants"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// NewEnrollmentsCommand creates the enrollments command group.
func NewEnrollmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "enrollments",
		Aliases: []string{"enrollment"},
		Short:   "Manage enrollments",
		Long:    "List, add, and remove course enrollments",
	}

	cmd.AddCommand(newEnrollmentsListCommand())
	cmd.AddCommand(newEnrollmentsAddCommand())
	cmd.AddCommand(newEnrollmentsRemoveCommand())

	return cmd
}

func newEnrollmentsListCommand() *cobra.Command {
	var (
		courseID int64
		perPage  int
		types    []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enrollments",
		Long:  "List enrollments in a course",
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
			if len(types) > 0 {
				params = params.WithFilter("type[]", types...)
			}

			page, err := client.Enrollments().ListForCourse(context.Background(), courseID, params)
			if err != nil {
				return fmt.Errorf("failed to list enrollments: %w", err)
			}

			handled, err := renderStructured(page.Items)
			if handled {
				return err
			}

			if len(page.Items) == 0 {
				_, _ = os.Stdout.WriteString("No enrollments found\n")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "User", "Type", "State")

			for _, enrollment := range page.Items {
				userName := strconv.FormatInt(enrollment.UserID, 10)
				if enrollment.User != nil {
					userName = enrollment.User.Name
				}

				_ = table.Append(fmt.Sprintf("%d", enrollment.ID), userName,
					enrollment.Type, orNotAvailable(enrollment.EnrollmentState))
			}

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "course ID (defaults to the configured course)")
	cmd.Flags().IntVar(&perPage, "per-page", constants.StandardPageSize, "results per page")
	cmd.Flags().StringSliceVar(&types, "type", nil, "filter by enrollment type (StudentEnrollment, TeacherEnrollment, ...)")

	return cmd
}

func newEnrollmentsAddCommand() *cobra.Command {
	var (
		courseID       int64
		enrollmentType string
		state          string
		notify         bool
	)

	cmd := &cobra.Command{
		Use:   "add USER_ID",
		Short: "Enroll a user",
		Long:  "Enroll a user in a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			courseID, err = resolveCourseID(cmd, courseID)
			if err != nil {
				return err
			}

			params := canvas.EnrollmentParams{
				UserID: args[0],
				Type:   enrollmentType,
			}
			if state != "" {
				params.EnrollmentState = state
			}
			if notify {
				params.Notify = &notify
			}

			enrollment, err := client.Enrollments().Create(context.Background(), courseID,
				&canvas.EnrollmentCreateRequest{Enrollment: params})
			if err != nil {
				return fmt.Errorf("failed to create enrollment: %w", err)
			}

			fmt.Printf("Enrollment %d created (%s, %s)\n",
				enrollment.ID, enrollment.Type, enrollment.EnrollmentState)

			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "course ID (defaults to the configured course)")
	cmd.Flags().StringVar(&enrollmentType, "type", canvas.EnrollmentTypeStudent, "enrollment type")
	cmd.Flags().StringVar(&state, "state", "", "initial enrollment state (invited, active)")
	cmd.Flags().BoolVar(&notify, "notify", false, "notify the user by email")

	return cmd
}

func newEnrollmentsRemoveCommand() *cobra.Command {
	var (
		courseID int64
		task     string
	)

	cmd := &cobra.Command{
		Use:   "remove ENROLLMENT_ID",
		Short: "Remove an enrollment",
		Long:  "Conclude, delete, deactivate, or inactivate an enrollment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enrollmentID, err := parseID(args[0], constants.ErrEnrollmentIDRequired)
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

			_, err = client.Enrollments().Remove(context.Background(), courseID, enrollmentID, task)
			if err != nil {
				return fmt.Errorf("failed to remove enrollment: %w", err)
			}

			fmt.Printf("Enrollment %d removed (%s)\n", enrollmentID, task)

			return nil
		},
	}

	cmd.Flags().Int64Var(&courseID, "course", 0, "course ID (defaults to the configured course)")
	cmd.Flags().StringVar(&task, "task", canvas.EnrollmentTaskConclude, "removal task (conclude, delete, deactivate)")

	return cmd
}
