package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewInfoCommand creates the info command
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display z/OSMF instance information",
		Long:  "Display version and plugin information for the z/OSMF host",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			info, err := client.Info(ctx)
			if err != nil {
				return fmt.Errorf("failed to get instance info: %w", err)
			}

			if handled, err := renderStructured(info); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("Hostname", info.ZosmfHostname)
			_ = table.Append("Port", info.ZosmfPort)
			_ = table.Append("z/OSMF Version", info.ZosmfVersion)
			_ = table.Append("z/OS Version", info.ZosVersion)
			_ = table.Append("API Version", info.APIVersion)
			_ = table.Append("SAF Realm", info.ZosmfSafRealm)
			_ = table.Render()

			if len(info.Plugins) > 0 {
				fmt.Println("\nInstalled plugins:")
				for _, plugin := range info.Plugins {
					fmt.Printf("  - %s %s\n", plugin.Name, plugin.Version)
				}
			}

			return nil
		},
	}
}
