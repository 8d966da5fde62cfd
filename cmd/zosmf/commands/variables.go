package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// NewVariablesCommand creates the variables command group
func NewVariablesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "variables",
		Aliases: []string{"vars"},
		Short:   "Manage system variables",
		Long:    "List, define, and delete z/OSMF system variables and list system symbols",
	}

	cmd.AddCommand(newVariablesListCommand())
	cmd.AddCommand(newVariablesSetCommand())
	cmd.AddCommand(newVariablesDeleteCommand())
	cmd.AddCommand(newVariablesSymbolsCommand())

	return cmd
}

// systemFlags resolves the --sysplex and --system flags to a system
// identifier, defaulting to the local system.
func systemFlags(sysplex, system string) zosmf.SystemID {
	if sysplex == "" && system == "" {
		return zosmf.LocalSystem()
	}

	return zosmf.NamedSystem(sysplex, system)
}

func newVariablesListCommand() *cobra.Command {
	var (
		sysplex string
		system  string
		name    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List system variables",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Variables().List(systemFlags(sysplex, system))
			if name != "" {
				builder = builder.Name(name)
			}

			list, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list variables: %w", err)
			}

			if handled, err := renderStructured(list); handled {
				return err
			}

			if len(list.Items) == 0 {
				fmt.Println("No variables found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Value", "Description")

			for _, variable := range list.Items {
				_ = table.Append(variable.Name, variable.Value, variable.Description)
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&sysplex, "sysplex", "", "sysplex name (default is the local system)")
	cmd.Flags().StringVar(&system, "system", "", "system name (default is the local system)")
	cmd.Flags().StringVar(&name, "name", "", "only return the variable with this name")

	return cmd
}

func newVariablesSetCommand() *cobra.Command {
	var (
		sysplex     string
		system      string
		description string
	)

	cmd := &cobra.Command{
		Use:   "set NAME=VALUE...",
		Short: "Define or update system variables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variables := make([]zosmf.NewVariable, 0, len(args))

			for _, pair := range args {
				name, value, found := strings.Cut(pair, "=")
				if !found || name == "" {
					return fmt.Errorf("%w: %q", ErrVariablePairFormat, pair)
				}

				variables = append(variables, zosmf.NewVariable{
					Name:        name,
					Value:       value,
					Description: description,
				})
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Variables().Create(context.Background(), sysplex, system, variables)
			if err != nil {
				return fmt.Errorf("failed to set variables: %w", err)
			}

			fmt.Printf("Successfully set %d variable(s)\n", len(variables))

			return nil
		},
	}

	cmd.Flags().StringVar(&sysplex, "sysplex", "", "sysplex name (required)")
	cmd.Flags().StringVar(&system, "system", "", "system name (required)")
	cmd.Flags().StringVar(&description, "description", "", "description applied to each variable")
	_ = cmd.MarkFlagRequired("sysplex")
	_ = cmd.MarkFlagRequired("system")

	return cmd
}

func newVariablesDeleteCommand() *cobra.Command {
	var (
		sysplex string
		system  string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "delete NAME...",
		Short: "Delete system variables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really delete %d variable(s)? (y/N): ", len(args))

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Cancelled")

					return nil
				}
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Variables().Delete(context.Background(), sysplex, system, args)
			if err != nil {
				return fmt.Errorf("failed to delete variables: %w", err)
			}

			fmt.Printf("Successfully deleted %d variable(s)\n", len(args))

			return nil
		},
	}

	cmd.Flags().StringVar(&sysplex, "sysplex", "", "sysplex name (required)")
	cmd.Flags().StringVar(&system, "system", "", "system name (required)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	_ = cmd.MarkFlagRequired("sysplex")
	_ = cmd.MarkFlagRequired("system")

	return cmd
}

func newVariablesSymbolsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols",
		Short: "List static system symbols of the local system",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			symbols, err := client.Variables().Symbols(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list symbols: %w", err)
			}

			if handled, err := renderStructured(symbols); handled {
				return err
			}

			if len(symbols) == 0 {
				fmt.Println("No symbols found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Value")

			for _, symbol := range symbols {
				_ = table.Append(symbol.Name, symbol.Value)
			}

			_ = table.Render()

			return nil
		},
	}
}
