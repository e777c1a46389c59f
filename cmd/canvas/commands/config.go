package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/edukit-io/canvas/internal/auth"
	"github.com/edukit-io/canvas/internal/client"
	"github.com/edukit-io/canvas/internal/constants"
	"github.com/edukit-io/canvas/pkg/canvas"
	"github.com/edukit-io/canvas/pkg/canvasclient"
)

// Config represents the CLI configuration.
type Config struct {
	// Named Canvas instances keyed by domain or short name
	Instances       map[string]*InstanceConfig `json:"instances,omitempty"        yaml:"instances,omitempty"`
	CurrentInstance string                     `json:"current_instance,omitempty" yaml:"current_instance,omitempty"`

	// Global settings
	Output string `json:"output" yaml:"output"`
}

// InstanceConfig represents configuration for a single Canvas instance.
type InstanceConfig struct {
	Endpoint       string     `json:"endpoint"                   yaml:"endpoint"`
	Token          string     `json:"token,omitempty"            yaml:"token,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
	RefreshToken   string     `json:"refresh_token,omitempty"    yaml:"refresh_token,omitempty"`
	LastRefreshed  *time.Time `json:"last_refreshed,omitempty"   yaml:"last_refreshed,omitempty"`
	ClientID       string     `json:"client_id,omitempty"        yaml:"client_id,omitempty"`
	ClientSecret   string     `json:"client_secret,omitempty"    yaml:"client_secret,omitempty"`

	// Working context
	AccountID   int64  `json:"account_id,omitempty"  yaml:"account_id,omitempty"`
	CourseID    int64  `json:"course_id,omitempty"   yaml:"course_id,omitempty"`
	ActAsUserID string `json:"act_as_user,omitempty" yaml:"act_as_user,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage Canvas CLI configuration including instances and settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			maskSecrets(config)

			handled, err := renderStructured(config)
			if handled {
				return err
			}

			return displayConfigTable(config)
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	var instanceFlag string

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a specific configuration value (global or instance-specific)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			config := loadConfig()

			if instanceFlag != "" {
				return setInstanceConfig(config, instanceFlag, key, value)
			}

			return setGlobalConfig(config, key, value)
		},
	}

	cmd.Flags().StringVar(&instanceFlag, "instance", "", "target specific instance for configuration")

	return cmd
}

func newConfigUnsetCommand() *cobra.Command {
	var instanceFlag string

	cmd := &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a specific configuration value (global or instance-specific)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			config := loadConfig()

			if instanceFlag != "" {
				return unsetInstanceConfig(config, instanceFlag, key)
			}

			return unsetGlobalConfig(config, key)
		},
	}

	cmd.Flags().StringVar(&instanceFlag, "instance", "", "target specific instance for configuration")

	return cmd
}

func setGlobalConfig(config *Config, key, value string) error {
	switch key {
	case "output":
		config.Output = value
	default:
		return fmt.Errorf("%w: %s. Use --instance for instance-specific settings", ErrUnknownConfigKey, key)
	}

	err := saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Set %s=%s\n", key, value)

	return nil
}

func setInstanceConfig(config *Config, domain, key, value string) error {
	instance, exists := config.Instances[domain]
	if !exists {
		return fmt.Errorf("%w: '%s'. Use 'canvas apis list' to see configured instances", ErrInstanceNotFound, domain)
	}

	switch key {
	case "client_id":
		instance.ClientID = value
	case "client_secret":
		instance.ClientSecret = value
	case "act_as_user":
		instance.ActAsUserID = value
	case "account_id":
		id, err := parseID(value, ErrAccountIDInvalid)
		if err != nil {
			return err
		}

		instance.AccountID = id
	case "course_id":
		id, err := parseID(value, ErrCourseIDInvalid)
		if err != nil {
			return err
		}

		instance.CourseID = id
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	err := saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Set %s for instance '%s'\n", key, domain)

	return nil
}

func unsetGlobalConfig(config *Config, key string) error {
	switch key {
	case "output":
		config.Output = constants.FormatTable
	default:
		return fmt.Errorf("%w: %s. Use --instance for instance-specific settings", ErrUnknownConfigKey, key)
	}

	err := saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Unset %s\n", key)

	return nil
}

func unsetInstanceConfig(config *Config, domain, key string) error {
	instance, exists := config.Instances[domain]
	if !exists {
		return fmt.Errorf("%w: '%s'", ErrInstanceNotFound, domain)
	}

	switch key {
	case "client_id":
		instance.ClientID = ""
	case "client_secret":
		instance.ClientSecret = ""
	case "act_as_user":
		instance.ActAsUserID = ""
	case "account_id":
		instance.AccountID = 0
	case "course_id":
		instance.CourseID = 0
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	err := saveConfigStruct(config)
	if err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("Unset %s for instance '%s'\n", key, domain)

	return nil
}

func maskSecrets(config *Config) {
	for _, instance := range config.Instances {
		if instance.Token != "" {
			instance.Token = constants.MaskedSecret
		}

		if instance.RefreshToken != "" {
			instance.RefreshToken = constants.MaskedSecret
		}

		if instance.ClientSecret != "" {
			instance.ClientSecret = constants.MaskedSecret
		}
	}
}

func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Setting", "Value")

	_ = table.Append("Output", orNotAvailable(config.Output))
	_ = table.Append("Current instance", orNotAvailable(config.CurrentInstance))

	for domain, instance := range config.Instances {
		_ = table.Append("Instance "+domain, instance.Endpoint)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// loadConfig reads the CLI configuration from the viper-backed config file.
func loadConfig() *Config {
	config := &Config{
		Output:          viper.GetString("output"),
		CurrentInstance: viper.GetString("current_instance"),
		Instances:       make(map[string]*InstanceConfig),
	}

	raw := viper.GetStringMap("instances")
	for domain := range raw {
		instance := &InstanceConfig{}

		sub := viper.Sub("instances." + domain)
		if sub == nil {
			continue
		}

		err := sub.Unmarshal(instance)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping malformed instance config '%s': %v\n", domain, err)

			continue
		}

		config.Instances[domain] = instance
	}

	return config
}

// saveConfigStruct writes the configuration back to the config file.
func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}

		configDir := filepath.Join(home, ".canvas")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	// Keep the running viper state in sync for later commands
	viper.Set("current_instance", config.CurrentInstance)

	return nil
}

// extractDomainFromEndpoint derives the config key for an instance URL.
func extractDomainFromEndpoint(endpoint string) string {
	domain := strings.TrimPrefix(endpoint, "https://")
	domain = strings.TrimPrefix(domain, "http://")

	if idx := strings.Index(domain, "/"); idx != -1 {
		domain = domain[:idx]
	}

	if idx := strings.Index(domain, ":"); idx != -1 {
		domain = domain[:idx]
	}

	return domain
}

// normalizeEndpoint adds a scheme and trims the trailing slash.
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// ResolveInstanceEndpoint resolves a short name or returns the endpoint if
// it's already a URL.
func ResolveInstanceEndpoint(nameOrEndpoint string) (string, error) {
	if nameOrEndpoint == "" {
		return "", ErrInstanceNameOrURLRequired
	}

	config := loadConfig()
	if instance, exists := config.Instances[nameOrEndpoint]; exists {
		return instance.Endpoint, nil
	}

	return normalizeEndpoint(nameOrEndpoint), nil
}

// getCurrentInstanceConfig returns the configuration for the currently
// targeted instance.
func getCurrentInstanceConfig() (*InstanceConfig, string, error) {
	config := loadConfig()

	if config.CurrentInstance == "" {
		if len(config.Instances) == 0 {
			return nil, "", constants.ErrNoAPIsConfigured
		}

		for domain := range config.Instances {
			config.CurrentInstance = domain

			break
		}
	}

	instance, exists := config.Instances[config.CurrentInstance]
	if !exists {
		return nil, "", fmt.Errorf("%w: '%s'", ErrInstanceNotFound, config.CurrentInstance)
	}

	return instance, config.CurrentInstance, nil
}

// getInstanceConfigByFlag returns an instance config based on the --api flag
// or the current instance.
func getInstanceConfigByFlag(instanceFlag string) (*InstanceConfig, string, error) {
	if instanceFlag == "" {
		return getCurrentInstanceConfig()
	}

	config := loadConfig()

	if instance, exists := config.Instances[instanceFlag]; exists {
		return instance, instanceFlag, nil
	}

	endpoint := normalizeEndpoint(instanceFlag)
	for domain, instance := range config.Instances {
		if instance.Endpoint == endpoint {
			return instance, domain, nil
		}
	}

	return nil, "", fmt.Errorf("%w: '%s'. Use 'canvas apis list' to see configured instances", ErrInstanceNotFound, instanceFlag)
}

// CreateClientWithAPI creates a Canvas client for the instance selected by
// the --api flag, falling back to the current instance. Tokens refreshed
// during the command run are persisted back to the config file.
func CreateClientWithAPI(instanceFlag string) (canvas.Client, error) {
	instance, domain, err := getInstanceConfigByFlag(instanceFlag)
	if err != nil {
		return nil, err
	}

	if instance.Endpoint == "" {
		return nil, fmt.Errorf("%w, use 'canvas apis add' first", ErrNoInstanceEndpoint)
	}

	canvasConfig := &canvas.Config{
		APIEndpoint: instance.Endpoint,
		ActAsUserID: instance.ActAsUserID,
	}

	// With a refresh token the config-persisting manager keeps the stored
	// token fresh across CLI invocations
	if instance.RefreshToken != "" {
		tokenManager := auth.NewConfigTokenManager(&auth.OAuth2Config{
			TokenURL:     strings.TrimSuffix(instance.Endpoint, "/") + constants.OAuthTokenPath,
			ClientID:     instance.ClientID,
			ClientSecret: instance.ClientSecret,
			RefreshToken: instance.RefreshToken,
		}, NewConfigPersister(), domain, instance.Token, tokenExpiry(instance))

		apiClient, err := client.NewWithTokenManager(canvasConfig, tokenManager)
		if err != nil {
			return nil, fmt.Errorf("failed to create client with token manager: %w", err)
		}

		return apiClient, nil
	}

	if instance.Token != "" {
		canvasConfig.AccessToken = instance.Token

		apiClient, err := canvasclient.New(canvasConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create Canvas client: %w", err)
		}

		return apiClient, nil
	}

	return nil, constants.ErrNotAuthenticated
}

func tokenExpiry(instance *InstanceConfig) time.Time {
	if instance.TokenExpiresAt != nil {
		return *instance.TokenExpiresAt
	}

	return time.Time{}
}
