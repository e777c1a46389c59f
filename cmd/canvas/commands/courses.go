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

// NewCoursesCommand creates the courses command group.
func NewCoursesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "courses",
		Aliases: []string{"course"},
		Short:   "Manage courses",
		Long:    "List, create, update, and delete Canvas courses",
	}

	cmd.AddCommand(newCoursesListCommand())
	cmd.AddCommand(newCoursesGetCommand())
	cmd.AddCommand(newCoursesCreateCommand())
	cmd.AddCommand(newCoursesDeleteCommand())

	return cmd
}

func newCoursesListCommand() *cobra.Command {
	var (
		accountID  int64
		allPages   bool
		perPage    int
		searchTerm string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List courses",
		Long:  "List courses under an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			accountID, err = resolveAccountID(cmd, accountID)
			if err != nil {
				return err
			}

			ctx := context.Background()

			params := canvas.NewListParams().WithPerPage(perPage)
			if searchTerm != "" {
				params = params.WithSearchTerm(searchTerm)
			}

			courses, err := fetchCoursePages(ctx, client, accountID, params, allPages)
			if err != nil {
				return err
			}

			handled, err := renderStructured(courses)
			if handled {
				return err
			}

			return renderCourseTable(courses)
		},
	}

	cmd.Flags().Int64Var(&accountID, "account", 0, "account ID (defaults to the configured account)")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	cmd.Flags().IntVar(&perPage, "per-page", constants.StandardPageSize, "results per page")
	cmd.Flags().StringVar(&searchTerm, "search", "", "filter courses by name")

	return cmd
}

func fetchCoursePages(ctx context.Context, client canvas.Client, accountID int64, params *canvas.ListParams, allPages bool) ([]canvas.Course, error) {
	page, err := client.Accounts().ListCourses(ctx, accountID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	courses := page.Items

	for pageNum := 2; allPages && page.Links.Next != "" && pageNum <= constants.MaxPages; pageNum++ {
		page, err = client.Accounts().ListCourses(ctx, accountID, params.WithPage(pageNum))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", pageNum, err)
		}

		courses = append(courses, page.Items...)
	}

	return courses, nil
}

func renderCourseTable(courses []canvas.Course) error {
	if len(courses) == 0 {
		_, _ = os.Stdout.WriteString("No courses found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Name", "Code", "State", "Term")

	for _, course := range courses {
		termName := constants.NotAvailable
		if course.Term != nil {
			termName = course.Term.Name
		}

		_ = table.Append(fmt.Sprintf("%d", course.ID), course.Name,
			orNotAvailable(course.CourseCode), orNotAvailable(course.WorkflowState), termName)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newCoursesGetCommand() *cobra.Command {
	var include []string

	cmd := &cobra.Command{
		Use:   "get COURSE_ID",
		Short: "Get course details",
		Long:  "Display detailed information about a specific course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0], ErrCourseIDInvalid)
			if err != nil {
				return err
			}

			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			course, err := client.Courses().Get(context.Background(), courseID, include...)
			if err != nil {
				return fmt.Errorf("failed to get course: %w", err)
			}

			handled, err := renderStructured(course)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")
			_ = table.Append("ID", fmt.Sprintf("%d", course.ID))
			_ = table.Append("Name", course.Name)
			_ = table.Append("Code", orNotAvailable(course.CourseCode))
			_ = table.Append("State", orNotAvailable(course.WorkflowState))
			_ = table.Append("Account", fmt.Sprintf("%d", course.AccountID))
			_ = table.Append("Start", formatTime(course.StartAt))
			_ = table.Append("End", formatTime(course.EndAt))

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil, "associations to include (term, teachers, total_students)")

	return cmd
}

func newCoursesCreateCommand() *cobra.Command {
	var (
		accountID  int64
		name       string
		courseCode string
		publish    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a course",
		Long:  "Create a new course under an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			accountID, err = resolveAccountID(cmd, accountID)
			if err != nil {
				return err
			}

			request := &canvas.CourseCreateRequest{
				Course: canvas.CourseParams{
					Name:       name,
					CourseCode: courseCode,
				},
			}
			if publish {
				request.Offer = true
			}

			course, err := client.Courses().Create(context.Background(), accountID, request)
			if err != nil {
				return fmt.Errorf("failed to create course: %w", err)
			}

			fmt.Printf("Course '%s' created with ID %d\n", course.Name, course.ID)

			return nil
		},
	}

	cmd.Flags().Int64Var(&accountID, "account", 0, "account ID (defaults to the configured account)")
	cmd.Flags().StringVar(&name, "name", "", "course name (required)")
	cmd.Flags().StringVar(&courseCode, "code", "", "course code")
	cmd.Flags().BoolVar(&publish, "publish", false, "make the course available immediately")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCoursesDeleteCommand() *cobra.Command {
	var conclude bool

	cmd := &cobra.Command{
		Use:   "delete COURSE_ID",
		Short: "Delete or conclude a course",
		Long:  "Delete a course, or conclude it with --conclude",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0], ErrCourseIDInvalid)
			if err != nil {
				return err
			}

			client, err := CreateClientWithAPI(cmd.Flag("api").Value.String())
			if err != nil {
				return err
			}

			event := canvas.CourseEventDelete
			if conclude {
				event = canvas.CourseEventConclude
			}

			err = client.Courses().Delete(context.Background(), courseID, event)
			if err != nil {
				return fmt.Errorf("failed to delete course: %w", err)
			}

			fmt.Printf("Course %d %sd\n", courseID, event)

			return nil
		},
	}

	cmd.Flags().BoolVar(&conclude, "conclude", false, "conclude instead of delete")

	return cmd
}

// resolveAccountID falls back to the configured account context when no
// --account flag is given.
func resolveAccountID(cmd *cobra.Command, flagValue int64) (int64, error) {
	if flagValue > 0 {
		return flagValue, nil
	}

	instance, _, err := getInstanceConfigByFlag(cmd.Flag("api").Value.String())
	if err != nil {
		return 0, err
	}

	if instance.AccountID > 0 {
		return instance.AccountID, nil
	}

	// Canvas root accounts are account 1 by convention
	return 1, nil
}
