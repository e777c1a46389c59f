package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/edukit-io/canvas/pkg/canvas"
	"github.com/edukit-io/canvas/pkg/canvasclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		instanceURL  string
		accessToken  string
		clientID     string
		clientSecret string
		refreshToken string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a Canvas instance",
		Long: `Authenticate with a Canvas LMS instance.

The simplest way is a manually issued access token from the account settings
page of the instance. With an OAuth2 developer key, pass --client-id,
--client-secret, and --refresh-token instead and the CLI keeps the access
token fresh automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			originalInput := instanceURL
			if instanceURL == "" {
				instanceURL = viper.GetString("api")
				originalInput = instanceURL
			}

			if instanceURL == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Canvas instance URL (or short name): ")
				instanceURL, _ = reader.ReadString('\n')
				instanceURL = strings.TrimSpace(instanceURL)
				originalInput = instanceURL
			}

			if instanceURL == "" {
				return ErrInstanceNameOrURLRequired
			}

			endpoint, err := ResolveInstanceEndpoint(instanceURL)
			if err != nil {
				return err
			}

			hasOAuth := clientID != "" && clientSecret != "" && refreshToken != ""
			if !hasOAuth && accessToken == "" {
				fmt.Print("Access token: ")

				byteToken, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read access token: %w", err)
				}

				accessToken = strings.TrimSpace(string(byteToken))

				fmt.Println()
			}

			if !hasOAuth && accessToken == "" {
				return ErrAccessTokenRequired
			}

			canvasConfig := &canvas.Config{
				APIEndpoint:  endpoint,
				AccessToken:  accessToken,
				ClientID:     clientID,
				ClientSecret: clientSecret,
				RefreshToken: refreshToken,
			}

			apiClient, err := canvasclient.New(canvasConfig)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the credentials before persisting them
			ctx := context.Background()

			user, err := apiClient.GetSelf(ctx)
			if err != nil {
				return fmt.Errorf("failed to verify credentials: %w", err)
			}

			config := loadConfig()
			if config.Instances == nil {
				config.Instances = make(map[string]*InstanceConfig)
			}

			// Preserve a short name if the user logged in by one
			configKey := extractDomainFromEndpoint(endpoint)
			if _, exists := config.Instances[originalInput]; exists {
				configKey = originalInput
			}

			instance, exists := config.Instances[configKey]
			if !exists {
				instance = &InstanceConfig{Endpoint: endpoint}
				config.Instances[configKey] = instance
			}

			instance.Token = accessToken
			instance.ClientID = clientID
			instance.ClientSecret = clientSecret
			instance.RefreshToken = refreshToken

			if config.CurrentInstance == "" || len(config.Instances) == 1 {
				config.CurrentInstance = configKey
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Successfully logged in to %s as %s\n", endpoint, user.Name)
			if config.CurrentInstance == configKey {
				fmt.Printf("Instance '%s' set as current target\n", configKey)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&instanceURL, "api", "a", "", "Canvas instance URL or short name from config")
	cmd.Flags().StringVarP(&accessToken, "token", "t", "", "manually issued access token")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 developer key ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 developer key secret")
	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "OAuth2 refresh token")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the current Canvas instance",
		Long:  "Clear stored credentials for the currently targeted instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if config.CurrentInstance == "" {
				fmt.Println("No instance targeted")

				return nil
			}

			instance, exists := config.Instances[config.CurrentInstance]
			if exists {
				instance.Token = ""
				instance.TokenExpiresAt = nil
				instance.RefreshToken = ""
				instance.ClientSecret = ""
			}

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Logged out of '%s'\n", config.CurrentInstance)

			return nil
		},
	}
}
