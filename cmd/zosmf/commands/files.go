package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// NewFilesCommand creates the files command group
func NewFilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"fs"},
		Short:   "Manage USS files",
		Long:    "List, read, write, and manage z/OS UNIX files and directories",
	}

	cmd.AddCommand(newFilesListCommand())
	cmd.AddCommand(newFilesReadCommand())
	cmd.AddCommand(newFilesWriteCommand())
	cmd.AddCommand(newFilesCreateCommand())
	cmd.AddCommand(newFilesDeleteCommand())
	cmd.AddCommand(newFilesChmodCommand())
	cmd.AddCommand(newFilesChownCommand())
	cmd.AddCommand(newFilesCopyCommand())
	cmd.AddCommand(newFilesRenameCommand())

	return cmd
}

func newFilesChmodCommand() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "chmod MODE PATH",
		Short: "Change file permissions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Files().ChangeMode(args[1], args[0])
			if recursive {
				builder = builder.Recursive()
			}

			err = builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to change mode: %w", err)
			}

			fmt.Printf("Successfully changed mode of %s\n", args[1])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "apply to directories and their contents")

	return cmd
}

func newFilesChownCommand() *cobra.Command {
	var (
		group     string
		recursive bool
	)

	cmd := &cobra.Command{
		Use:   "chown OWNER PATH",
		Short: "Change file ownership",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Files().ChangeOwner(args[1], args[0])
			if group != "" {
				builder = builder.Group(group)
			}

			if recursive {
				builder = builder.Recursive()
			}

			err = builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to change owner: %w", err)
			}

			fmt.Printf("Successfully changed owner of %s\n", args[1])

			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "owning group to assign")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "apply to directories and their contents")

	return cmd
}

func newFilesCopyCommand() *cobra.Command {
	var (
		overwrite bool
		recursive bool
	)

	cmd := &cobra.Command{
		Use:   "copy FROM TO",
		Short: "Copy a file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Files().Copy(args[0], args[1])
			if overwrite {
				builder = builder.Overwrite()
			}

			if recursive {
				builder = builder.Recursive()
			}

			err = builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to copy file: %w", err)
			}

			fmt.Printf("Successfully copied %s to %s\n", args[0], args[1])

			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing target")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "copy directories and their contents")

	return cmd
}

func newFilesRenameCommand() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "rename FROM TO",
		Short: "Move a file or directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Files().Rename(args[0], args[1])
			if overwrite {
				builder = builder.Overwrite()
			}

			err = builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to rename file: %w", err)
			}

			fmt.Printf("Successfully renamed %s to %s\n", args[0], args[1])

			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing target")

	return cmd
}

func newFilesListCommand() *cobra.Command {
	var (
		name     string
		fileType string
		depth    int
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list PATH",
		Short: "List files and directories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Files().List(args[0])
			if name != "" {
				builder = builder.Name(name)
			}

			if fileType != "" {
				builder = builder.Type(zosmf.FileType(fileType))
			}

			if depth > 0 {
				builder = builder.Depth(depth)
			}

			if limit > 0 {
				builder = builder.Limit(limit)
			}

			list, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list files: %w", err)
			}

			if handled, err := renderStructured(list); handled {
				return err
			}

			if len(list.Items) == 0 {
				fmt.Println("No files found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Mode", "User", "Group", "Size", "Modified", "Name")

			for _, file := range list.Items {
				displayName := file.Name
				if file.Target != "" {
					displayName = file.Name + " -> " + file.Target
				}

				_ = table.Append(file.Mode, file.User, file.Group,
					strconv.FormatInt(file.Size, 10), file.ModifiedAt, displayName)
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "file name pattern")
	cmd.Flags().StringVar(&fileType, "type", "", "entry type filter (f, d, l)")
	cmd.Flags().IntVar(&depth, "depth", 0, "directory depth to descend")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries to return")

	return cmd
}

func newFilesReadCommand() *cobra.Command {
	var (
		dataType string
		encoding string
	)

	cmd := &cobra.Command{
		Use:   "read PATH",
		Short: "Read file content",
		Long:  "Read the content of a USS file and write it to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Files().Read(args[0])
			if dataType != "" {
				parsed, err := zosmf.ParseDataType(dataType)
				if err != nil {
					return err
				}

				builder = builder.DataType(parsed)
			}

			if encoding != "" {
				builder = builder.Encoding(encoding)
			}

			content, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			_, err = os.Stdout.Write(content.Data)

			return err
		},
	}

	cmd.Flags().StringVar(&dataType, "data-type", "", "content representation (text, binary)")
	cmd.Flags().StringVar(&encoding, "encoding", "", "source encoding for text conversion, e.g. IBM-1047")

	return cmd
}

func newFilesWriteCommand() *cobra.Command {
	var (
		dataType string
		fromFile string
		etag     string
	)

	cmd := &cobra.Command{
		Use:   "write PATH",
		Short: "Write file content",
		Long:  "Replace the content of a USS file from a local file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)

			if fromFile != "" {
				data, err = os.ReadFile(fromFile)
			} else {
				data, err = io.ReadAll(os.Stdin)
			}

			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Files().Write(args[0], data)
			if dataType != "" {
				parsed, err := zosmf.ParseDataType(dataType)
				if err != nil {
					return err
				}

				builder = builder.DataType(parsed)
			}

			if etag != "" {
				builder = builder.IfMatch(etag)
			}

			result, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}

			fmt.Printf("Successfully wrote %s (etag: %s)\n", args[0], result.Etag)

			return nil
		},
	}

	cmd.Flags().StringVar(&dataType, "data-type", "", "content representation (text, binary)")
	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "local file to upload (default is stdin)")
	cmd.Flags().StringVar(&etag, "if-match", "", "only write when the current etag matches")

	return cmd
}

func newFilesCreateCommand() *cobra.Command {
	var (
		directory bool
		mode      string
	)

	cmd := &cobra.Command{
		Use:   "create PATH",
		Short: "Create a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			attrs := &zosmf.FileCreateRequest{Type: "file", Mode: mode}
			if directory {
				attrs.Type = "directory"
			}

			err = client.Files().Create(context.Background(), args[0], attrs)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", attrs.Type, err)
			}

			fmt.Printf("Successfully created %s %s\n", attrs.Type, args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&directory, "directory", "d", false, "create a directory instead of a file")
	cmd.Flags().StringVar(&mode, "mode", "", "permission string, e.g. rwxr-xr-x")

	return cmd
}

func newFilesDeleteCommand() *cobra.Command {
	var (
		recursive bool
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "delete PATH",
		Short: "Delete a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really delete %s? (y/N): ", args[0])

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

			builder := client.Files().Delete(args[0])
			if recursive {
				builder = builder.Recursive()
			}

			err = builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to delete file: %w", err)
			}

			fmt.Printf("Successfully deleted %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "delete directories and their contents")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
