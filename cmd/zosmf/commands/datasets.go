package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// NewDatasetsCommand creates the datasets command group
func NewDatasetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"ds"},
		Short:   "Manage datasets",
		Long:    "List, read, write, and manage MVS datasets and their members",
	}

	cmd.AddCommand(newDatasetsListCommand())
	cmd.AddCommand(newDatasetsMembersCommand())
	cmd.AddCommand(newDatasetsReadCommand())
	cmd.AddCommand(newDatasetsWriteCommand())
	cmd.AddCommand(newDatasetsCreateCommand())
	cmd.AddCommand(newDatasetsDeleteCommand())
	cmd.AddCommand(newDatasetsRenameCommand())
	cmd.AddCommand(newDatasetsCopyCommand())
	cmd.AddCommand(newDatasetsMigrateCommand())
	cmd.AddCommand(newDatasetsRecallCommand())

	return cmd
}

func newDatasetsListCommand() *cobra.Command {
	var (
		volume     string
		start      string
		maxItems   int
		attributes bool
		total      bool
	)

	cmd := &cobra.Command{
		Use:   "list PATTERN",
		Short: "List catalogued datasets",
		Long:  "List catalogued datasets matching a name pattern, e.g. 'SYS1.**'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Datasets().List(args[0])
			if volume != "" {
				builder = builder.Volume(volume)
			}

			if start != "" {
				builder = builder.Start(start)
			}

			if maxItems > 0 {
				builder = builder.MaxItems(maxItems)
			}

			if attributes {
				builder = builder.BaseAttributes()
			}

			if total {
				builder = builder.IncludeTotal()
			}

			list, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list datasets: %w", err)
			}

			if handled, err := renderStructured(list); handled {
				return err
			}

			if len(list.Items) == 0 {
				fmt.Println("No datasets found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Name", "Volume", "Org", "RecFm", "LRecl", "Migrated")

			for _, dataset := range list.Items {
				migrated := ""
				if dataset.IsMigrated() {
					migrated = "yes"
				}

				_ = table.Append(dataset.Name, dataset.Volume, dataset.Organization,
					dataset.RecordFormat, dataset.RecordLength, migrated)
			}

			_ = table.Render()

			if list.MoreRows != nil && *list.MoreRows {
				fmt.Println("More datasets available; narrow the pattern or raise --max-items")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&volume, "volume", "", "restrict the listing to a volume serial")
	cmd.Flags().StringVar(&start, "start", "", "first dataset name to return")
	cmd.Flags().IntVar(&maxItems, "max-items", 0, "maximum number of datasets to return")
	cmd.Flags().BoolVar(&attributes, "attributes", false, "include catalog attributes")
	cmd.Flags().BoolVar(&total, "total", false, "include the total row count")

	return cmd
}

func newDatasetsMembersCommand() *cobra.Command {
	var (
		start    string
		pattern  string
		maxItems int
	)

	cmd := &cobra.Command{
		Use:   "members DATASET",
		Short: "List members of a partitioned dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Datasets().Members(args[0])
			if start != "" {
				builder = builder.Start(start)
			}

			if pattern != "" {
				builder = builder.Pattern(pattern)
			}

			if maxItems > 0 {
				builder = builder.MaxItems(maxItems)
			}

			list, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}

			if handled, err := renderStructured(list); handled {
				return err
			}

			if len(list.Items) == 0 {
				fmt.Println("No members found")

				return nil
			}

			for _, member := range list.Items {
				fmt.Println(member.Name)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first member name to return")
	cmd.Flags().StringVar(&pattern, "pattern", "", "member name pattern")
	cmd.Flags().IntVar(&maxItems, "max-items", 0, "maximum number of members to return")

	return cmd
}

func newDatasetsReadCommand() *cobra.Command {
	var (
		member      string
		volume      string
		dataType    string
		recordRange string
		search      string
	)

	cmd := &cobra.Command{
		Use:   "read DATASET",
		Short: "Read dataset content",
		Long:  "Read the content of a dataset or member and write it to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Datasets().Read(args[0])
			if member != "" {
				builder = builder.Member(member)
			}

			if volume != "" {
				builder = builder.Volume(volume)
			}

			if dataType != "" {
				parsed, err := zosmf.ParseDataType(dataType)
				if err != nil {
					return err
				}

				builder = builder.DataType(parsed)
			}

			if recordRange != "" {
				builder = builder.RecordRange(zosmf.RecordRange(recordRange))
			}

			if search != "" {
				builder = builder.Search(search)
			}

			content, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to read dataset: %w", err)
			}

			_, err = os.Stdout.Write(content.Data)

			return err
		},
	}

	cmd.Flags().StringVarP(&member, "member", "m", "", "member of a partitioned dataset")
	cmd.Flags().StringVar(&volume, "volume", "", "volume serial for uncatalogued datasets")
	cmd.Flags().StringVar(&dataType, "data-type", "", "content representation (text, binary, record)")
	cmd.Flags().StringVar(&recordRange, "record-range", "", "record range to read, e.g. 0-249")
	cmd.Flags().StringVar(&search, "search", "", "return only records containing this text")

	return cmd
}

func newDatasetsWriteCommand() *cobra.Command {
	var (
		member   string
		volume   string
		dataType string
		fromFile string
		etag     string
	)

	cmd := &cobra.Command{
		Use:   "write DATASET",
		Short: "Write dataset content",
		Long:  "Replace the content of a dataset or member from a file or stdin",
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

			builder := client.Datasets().Write(args[0], data)
			if member != "" {
				builder = builder.Member(member)
			}

			if volume != "" {
				builder = builder.Volume(volume)
			}

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
				return fmt.Errorf("failed to write dataset: %w", err)
			}

			fmt.Printf("Successfully wrote %s (etag: %s)\n", args[0], result.Etag)

			return nil
		},
	}

	cmd.Flags().StringVarP(&member, "member", "m", "", "member of a partitioned dataset")
	cmd.Flags().StringVar(&volume, "volume", "", "volume serial for uncatalogued datasets")
	cmd.Flags().StringVar(&dataType, "data-type", "", "content representation (text, binary, record)")
	cmd.Flags().StringVarP(&fromFile, "file", "f", "", "local file to upload (default is stdin)")
	cmd.Flags().StringVar(&etag, "if-match", "", "only write when the current etag matches")

	return cmd
}

//nolint:funlen
func newDatasetsCreateCommand() *cobra.Command {
	attrs := &zosmf.DatasetCreateRequest{}

	cmd := &cobra.Command{
		Use:   "create DATASET",
		Short: "Allocate a new dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Datasets().Create(context.Background(), args[0], attrs)
			if err != nil {
				return fmt.Errorf("failed to create dataset: %w", err)
			}

			fmt.Printf("Successfully created dataset %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().StringVar(&attrs.Volume, "volume", "", "volume serial")
	cmd.Flags().StringVar(&attrs.Organization, "dsorg", "", "dataset organization (PS, PO)")
	cmd.Flags().StringVar(&attrs.SpaceAllocationUnit, "alcunit", "", "space allocation unit (TRK, CYL)")
	cmd.Flags().IntVar(&attrs.PrimarySpace, "primary", 0, "primary space allocation")
	cmd.Flags().IntVar(&attrs.SecondarySpace, "secondary", 0, "secondary space allocation")
	cmd.Flags().IntVar(&attrs.DirectoryBlocks, "dirblk", 0, "directory blocks for partitioned datasets")
	cmd.Flags().StringVar(&attrs.RecordFormat, "recfm", "", "record format (FB, VB)")
	cmd.Flags().IntVar(&attrs.BlockSize, "blksize", 0, "block size")
	cmd.Flags().IntVar(&attrs.RecordLength, "lrecl", 0, "record length")
	cmd.Flags().StringVar(&attrs.DatasetType, "dsntype", "", "dataset type (LIBRARY, PDS)")
	cmd.Flags().StringVar(&attrs.ModelDataset, "like", "", "model dataset to copy attributes from")

	return cmd
}

func newDatasetsDeleteCommand() *cobra.Command {
	var (
		member string
		volume string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "delete DATASET",
		Short: "Delete a dataset or member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			if member != "" {
				target = fmt.Sprintf("%s(%s)", args[0], member)
			}

			if !force {
				fmt.Printf("Really delete %s? (y/N): ", target)

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

			builder := client.Datasets().Delete(args[0])
			if member != "" {
				builder = builder.Member(member)
			}

			if volume != "" {
				builder = builder.Volume(volume)
			}

			err = builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to delete dataset: %w", err)
			}

			fmt.Printf("Successfully deleted %s\n", target)

			return nil
		},
	}

	cmd.Flags().StringVarP(&member, "member", "m", "", "member of a partitioned dataset")
	cmd.Flags().StringVar(&volume, "volume", "", "volume serial for uncatalogued datasets")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func newDatasetsRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename FROM TO",
		Short: "Rename a dataset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			err = client.Datasets().Rename(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to rename dataset: %w", err)
			}

			fmt.Printf("Successfully renamed %s to %s\n", args[0], args[1])

			return nil
		},
	}
}

func newDatasetsCopyCommand() *cobra.Command {
	var (
		fromMember string
		toMember   string
		volume     string
		replace    bool
	)

	cmd := &cobra.Command{
		Use:   "copy FROM TO",
		Short: "Copy a dataset or member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Datasets().Copy(args[0], args[1])
			if fromMember != "" {
				builder = builder.FromMember(fromMember)
			}

			if toMember != "" {
				builder = builder.ToMember(toMember)
			}

			if volume != "" {
				builder = builder.Volume(volume)
			}

			if replace {
				builder = builder.Replace()
			}

			err = builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to copy dataset: %w", err)
			}

			fmt.Printf("Successfully copied %s to %s\n", args[0], args[1])

			return nil
		},
	}

	cmd.Flags().StringVar(&fromMember, "from-member", "", "member of the source dataset")
	cmd.Flags().StringVar(&toMember, "to-member", "", "member of the target dataset")
	cmd.Flags().StringVar(&volume, "volume", "", "volume serial of the target dataset")
	cmd.Flags().BoolVar(&replace, "replace", false, "overwrite an existing target member")

	return cmd
}

func newDatasetsMigrateCommand() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "migrate DATASET",
		Short: "Migrate a dataset out of primary storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Datasets().Migrate(args[0])
			if wait {
				builder = builder.Wait()
			}

			err = builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to migrate dataset: %w", err)
			}

			fmt.Printf("Migration requested for %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the migration to complete")

	return cmd
}

func newDatasetsRecallCommand() *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "recall DATASET",
		Short: "Recall a migrated dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Datasets().Recall(args[0])
			if wait {
				builder = builder.Wait()
			}

			err = builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to recall dataset: %w", err)
			}

			fmt.Printf("Recall requested for %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVar(&wait, "wait", false, "wait for the recall to complete")

	return cmd
}
