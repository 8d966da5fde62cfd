package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmfclient"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		host     string
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to a z/OSMF host",
		Long:  "Verify credentials against a z/OSMF host and save the connection details",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get host
			if host == "" {
				host = viper.GetString("host")
			}

			if host == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("z/OSMF host: ")
				host, _ = reader.ReadString('\n')
				host = strings.TrimSpace(host)
			}

			if host == "" {
				return ErrHostRequired
			}

			// Get credentials
			if username == "" {
				username = viper.GetString("username")
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if username == "" {
				return ErrUsernameRequired
			}

			if password == "" {
				password = viper.GetString("password")
			}

			if password == "" {
				var err error

				password, err = readPassword("Password: ")
				if err != nil {
					return err
				}
			}

			// Create client
			config := &zosmf.Config{
				BaseURL:         host,
				Username:        username,
				Password:        password,
				CertificatePath: viper.GetString("ca-cert"),
				SkipTLSVerify:   viper.GetBool("insecure"),
			}

			client, err := zosmfclient.New(config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify credentials by establishing and discarding a session
			ctx := context.Background()
			if err := client.Login(ctx, username, password); err != nil {
				return fmt.Errorf("failed to log in: %w", err)
			}

			info, err := client.Info(ctx)
			if err != nil {
				return fmt.Errorf("failed to connect to host: %w", err)
			}

			if err := client.Logout(ctx); err != nil {
				fmt.Printf("Warning: could not end session: %v\n", err)
			}

			// Save connection details (never the password)
			viper.Set("host", host)
			viper.Set("username", username)

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Printf("Successfully logged in to %s\n", host)
			fmt.Printf("z/OSMF version: %s (z/OS %s)\n", info.ZosmfVersion, info.ZosVersion)
			fmt.Println("Set ZOSMF_PASSWORD to run commands without a prompt")

			return nil
		},
	}

	// Add flags
	cmd.Flags().StringVarP(&host, "host", "H", "", "z/OSMF host URL")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username for authentication")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for authentication")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out from the z/OSMF host",
		Long:  "Clear the saved connection details",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("host", "")
			viper.Set("username", "")

			if err := saveConfig(); err != nil {
				return err
			}

			fmt.Println("Successfully logged out")

			return nil
		},
	}
}
