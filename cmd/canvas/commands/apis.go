package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewAPIsCommand creates the apis command group.
func NewAPIsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apis",
		Aliases: []string{"api", "instances"},
		Short:   "Manage Canvas instances",
		Long:    "Add, list, delete, and target Canvas LMS instances",
	}

	cmd.AddCommand(newAPIsAddCommand())
	cmd.AddCommand(newAPIsListCommand())
	cmd.AddCommand(newAPIsDeleteCommand())
	cmd.AddCommand(newAPIsTargetCommand())

	return cmd
}

func newAPIsAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME ENDPOINT",
		Short: "Add a new Canvas instance",
		Long:  "Add a new Canvas instance to the configuration under a short name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, endpoint := args[0], normalizeEndpoint(args[1])

			config := loadConfig()
			if config.Instances == nil {
				config.Instances = make(map[string]*InstanceConfig)
			}

			if _, exists := config.Instances[name]; exists {
				return fmt.Errorf("%w: '%s'", ErrInstanceAlreadyExists, name)
			}

			config.Instances[name] = &InstanceConfig{Endpoint: endpoint}

			if config.CurrentInstance == "" {
				config.CurrentInstance = name
				fmt.Printf("Instance '%s' (%s) added and set as current target\n", name, endpoint)
			} else {
				fmt.Printf("Instance '%s' (%s) added\n", name, endpoint)
			}

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			return nil
		},
	}
}

func newAPIsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all Canvas instances",
		Long:  "Display all configured Canvas instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if len(config.Instances) == 0 {
				fmt.Println("No instances configured. Use 'canvas apis add' to add one.")

				return nil
			}

			type InstanceInfo struct {
				Name          string `json:"name"                yaml:"name"`
				Endpoint      string `json:"endpoint"            yaml:"endpoint"`
				Authenticated bool   `json:"authenticated"       yaml:"authenticated"`
				Current       bool   `json:"current"             yaml:"current"`
			}

			infos := make([]InstanceInfo, 0, len(config.Instances))
			for name, instance := range config.Instances {
				infos = append(infos, InstanceInfo{
					Name:          name,
					Endpoint:      instance.Endpoint,
					Authenticated: instance.Token != "" || instance.RefreshToken != "",
					Current:       name == config.CurrentInstance,
				})
			}

			handled, err := renderStructured(infos)
			if handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Endpoint", "Authenticated", "Current")

			for _, info := range infos {
				current := ""
				if info.Current {
					current = "*"
				}

				authenticated := "no"
				if info.Authenticated {
					authenticated = "yes"
				}

				_ = table.Append(info.Name, info.Endpoint, authenticated, current)
			}

			err = table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newAPIsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a Canvas instance",
		Long:  "Remove a Canvas instance from the configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			config := loadConfig()
			if _, exists := config.Instances[name]; !exists {
				return fmt.Errorf("%w: '%s'", ErrInstanceNotFound, name)
			}

			delete(config.Instances, name)

			if config.CurrentInstance == name {
				config.CurrentInstance = ""
				for domain := range config.Instances {
					config.CurrentInstance = domain

					break
				}
			}

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Instance '%s' deleted\n", name)

			return nil
		},
	}
}

func newAPIsTargetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "target NAME",
		Short: "Set the current Canvas instance",
		Long:  "Switch commands to run against the named instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			config := loadConfig()
			if _, exists := config.Instances[name]; !exists {
				return fmt.Errorf("%w: '%s'. Use 'canvas apis list' to see configured instances", ErrInstanceNotFound, name)
			}

			config.CurrentInstance = name

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Now targeting '%s' (%s)\n", name, config.Instances[name].Endpoint)

			return nil
		},
	}
}
