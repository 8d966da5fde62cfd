package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// NewWorkflowsCommand creates the workflows command group
func NewWorkflowsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workflows",
		Aliases: []string{"wf"},
		Short:   "Manage workflows",
		Long:    "List, create, start, and manage z/OSMF workflow instances",
	}

	cmd.AddCommand(newWorkflowsListCommand())
	cmd.AddCommand(newWorkflowsCreateCommand())
	cmd.AddCommand(newWorkflowsPropertiesCommand())
	cmd.AddCommand(newWorkflowsStartCommand())
	cmd.AddCommand(newWorkflowsCancelCommand())
	cmd.AddCommand(newWorkflowsDeleteCommand())
	cmd.AddCommand(newWorkflowsArchiveCommand())
	cmd.AddCommand(newWorkflowsArchivedCommand())

	return cmd
}

func newWorkflowsListCommand() *cobra.Command {
	var (
		name     string
		category string
		system   string
		status   string
		owner    string
		vendor   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflow instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Workflows().List()
			if name != "" {
				builder = builder.Name(name)
			}

			if category != "" {
				builder = builder.Category(zosmf.WorkflowCategory(category))
			}

			if system != "" {
				builder = builder.System(system)
			}

			if status != "" {
				builder = builder.Status(zosmf.WorkflowStatus(status))
			}

			if owner != "" {
				builder = builder.Owner(owner)
			}

			if vendor != "" {
				builder = builder.Vendor(vendor)
			}

			list, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list workflows: %w", err)
			}

			if handled, err := renderStructured(list); handled {
				return err
			}

			if len(list.Items) == 0 {
				fmt.Println("No workflows found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Key", "Owner", "Vendor", "Version")

			for _, workflow := range list.Items {
				_ = table.Append(workflow.Name, workflow.Key, workflow.Owner,
					workflow.Vendor, workflow.Version)
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "workflow name pattern (regular expression)")
	cmd.Flags().StringVar(&category, "category", "", "category filter (configuration, general)")
	cmd.Flags().StringVar(&system, "system", "", "target system filter")
	cmd.Flags().StringVar(&status, "status", "", "status filter (in-progress, complete, automation-in-progress, canceled)")
	cmd.Flags().StringVar(&owner, "owner", "", "owning user filter")
	cmd.Flags().StringVar(&vendor, "vendor", "", "vendor filter")

	return cmd
}

//nolint:funlen
func newWorkflowsCreateCommand() *cobra.Command {
	var (
		system            string
		owner             string
		variableInputFile string
		variables         []string
		comments          string
		assignToOwner     bool
	)

	cmd := &cobra.Command{
		Use:   "create NAME DEFINITION-FILE",
		Short: "Create a workflow instance",
		Long:  "Register a workflow instance from a definition file on the target system",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Workflows().Create(args[0], args[1], system, owner)
			if variableInputFile != "" {
				builder = builder.VariableInputFile(variableInputFile)
			}

			for _, variable := range variables {
				name, value, ok := strings.Cut(variable, "=")
				if !ok {
					return fmt.Errorf("invalid variable %q: expected NAME=VALUE", variable)
				}

				builder = builder.Variable(name, value)
			}

			if comments != "" {
				builder = builder.Comments(comments)
			}

			if assignToOwner {
				builder = builder.AssignToOwner()
			}

			result, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to create workflow: %w", err)
			}

			if handled, err := renderStructured(result); handled {
				return err
			}

			fmt.Printf("Successfully created workflow %s (key: %s)\n", args[0], result.Key)

			return nil
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "system the workflow runs against")
	cmd.Flags().StringVar(&owner, "owner", "", "user ID owning the workflow")
	cmd.Flags().StringVar(&variableInputFile, "variable-input-file", "", "properties file with initial variable values")
	cmd.Flags().StringArrayVar(&variables, "variable", nil, "initial variable value as NAME=VALUE (repeatable)")
	cmd.Flags().StringVar(&comments, "comments", "", "comments to attach to the instance")
	cmd.Flags().BoolVar(&assignToOwner, "assign-to-owner", false, "assign all steps to the owner")

	_ = cmd.MarkFlagRequired("system")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newWorkflowsPropertiesCommand() *cobra.Command {
	var (
		steps     bool
		variables bool
	)

	cmd := &cobra.Command{
		Use:   "properties KEY",
		Short: "Show workflow properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Workflows().Properties(args[0])
			if steps {
				builder = builder.Steps()
			}

			if variables {
				builder = builder.Variables()
			}

			properties, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get workflow properties: %w", err)
			}

			if handled, err := renderStructured(properties); handled {
				return err
			}

			printWorkflowProperties(properties)

			return nil
		},
	}

	cmd.Flags().BoolVar(&steps, "steps", false, "include per-step data")
	cmd.Flags().BoolVar(&variables, "variables", false, "include variable data")

	return cmd
}

func printWorkflowProperties(properties *zosmf.WorkflowProperties) {
	fmt.Printf("Name:             %s\n", properties.Name)
	fmt.Printf("Key:              %s\n", properties.Key)
	fmt.Printf("Description:      %s\n", properties.Description)
	fmt.Printf("Version:          %s\n", properties.Version)
	fmt.Printf("Owner:            %s\n", properties.Owner)
	fmt.Printf("System:           %s\n", properties.System)
	fmt.Printf("Status:           %s\n", properties.Status)
	fmt.Printf("Percent complete: %d\n", properties.PercentComplete)

	if len(properties.Steps) > 0 {
		fmt.Println("\nSteps:")

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Number", "Name", "State", "Optional")

		for _, step := range properties.Steps {
			_ = table.Append(step.StepNumber, step.Name, step.State,
				strconv.FormatBool(step.Optional))
		}

		_ = table.Render()
	}

	if len(properties.Variables) > 0 {
		fmt.Println("\nVariables:")

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Name", "Type", "Value", "Scope")

		for _, variable := range properties.Variables {
			_ = table.Append(variable.Name, variable.Type, variable.Value, variable.Scope)
		}

		_ = table.Render()
	}
}

func newWorkflowsStartCommand() *cobra.Command {
	var (
		step     string
		stepOnly bool
		conflict string
	)

	cmd := &cobra.Command{
		Use:   "start KEY",
		Short: "Start or resume a workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Workflows().Start(args[0])
			if step != "" {
				if stepOnly {
					builder = builder.StepOnly(step)
				} else {
					builder = builder.Step(step)
				}
			}

			if conflict != "" {
				builder = builder.ConflictResolution(zosmf.WorkflowConflictResolution(conflict))
			}

			err = builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to start workflow: %w", err)
			}

			fmt.Printf("Successfully started workflow %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&step, "step", "", "step to start automation at")
	cmd.Flags().BoolVar(&stepOnly, "step-only", false, "run only the selected step")
	cmd.Flags().StringVar(&conflict, "conflict", "",
		"variable conflict resolution (outputFileValue, existingValue, leaveConflict)")

	return cmd
}

func newWorkflowsCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel KEY",
		Short: "Cancel an in-progress workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.Workflows().Cancel(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to cancel workflow: %w", err)
			}

			fmt.Printf("Successfully cancelled workflow %s\n", result.Name)

			return nil
		},
	}
}

func newWorkflowsDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete a workflow instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really delete workflow %s? (y/N): ", args[0])

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

			err = client.Workflows().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete workflow: %w", err)
			}

			fmt.Printf("Successfully deleted workflow %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func newWorkflowsArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive KEY",
		Short: "Archive a completed workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			result, err := client.Workflows().Archive(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to archive workflow: %w", err)
			}

			fmt.Printf("Successfully archived workflow (key: %s)\n", result.Key)

			return nil
		},
	}
}

func newWorkflowsArchivedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archived",
		Short: "Manage archived workflows",
	}

	cmd.AddCommand(newWorkflowsArchivedListCommand())
	cmd.AddCommand(newWorkflowsArchivedDeleteCommand())

	return cmd
}

func newWorkflowsArchivedListCommand() *cobra.Command {
	var (
		descending bool
		domain     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived workflows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Workflows().ListArchived()
			if descending {
				builder = builder.Descending()
			}

			if domain {
				builder = builder.DomainView()
			}

			list, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list archived workflows: %w", err)
			}

			if handled, err := renderStructured(list); handled {
				return err
			}

			if len(list.Items) == 0 {
				fmt.Println("No archived workflows found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Key")

			for _, workflow := range list.Items {
				_ = table.Append(workflow.Name, workflow.Key)
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().BoolVar(&descending, "descending", false, "newest first")
	cmd.Flags().BoolVar(&domain, "domain", false, "list all archived workflows of the domain")

	return cmd
}

func newWorkflowsArchivedDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete KEY",
		Short: "Delete an archived workflow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Workflows().DeleteArchived(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete archived workflow: %w", err)
			}

			fmt.Printf("Successfully deleted archived workflow %s\n", args[0])

			return nil
		},
	}
}
