package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/wmcgee3/z-osmf-go/pkg/zosmf"
)

// NewJobsCommand creates the jobs command group
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Manage batch jobs",
		Long:  "List, submit, and manage z/OS batch jobs and their spool output",
	}

	cmd.AddCommand(newJobsListCommand())
	cmd.AddCommand(newJobsStatusCommand())
	cmd.AddCommand(newJobsSubmitCommand())
	cmd.AddCommand(newJobsFilesCommand())
	cmd.AddCommand(newJobsReadFileCommand())
	cmd.AddCommand(newJobsFeedbackCommand("cancel", "Cancel a job",
		zosmf.JobsClient.Cancel))
	cmd.AddCommand(newJobsFeedbackCommand("hold", "Hold a job",
		zosmf.JobsClient.Hold))
	cmd.AddCommand(newJobsFeedbackCommand("release", "Release a held job",
		zosmf.JobsClient.Release))
	cmd.AddCommand(newJobsClassCommand())
	cmd.AddCommand(newJobsPurgeCommand())

	return cmd
}

func newJobsListCommand() *cobra.Command {
	var (
		owner      string
		prefix     string
		jobID      string
		correlator string
		maxJobs    int
		activeOnly bool
		execData   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs",
		Long:  "List jobs; the owner defaults to the authenticated user, pass --owner '*' for all",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Jobs().List()
			if owner != "" {
				builder = builder.Owner(owner)
			}

			if prefix != "" {
				builder = builder.Prefix(prefix)
			}

			if jobID != "" {
				builder = builder.JobID(jobID)
			}

			if correlator != "" {
				builder = builder.UserCorrelator(correlator)
			}

			if maxJobs > 0 {
				builder = builder.MaxJobs(maxJobs)
			}

			if activeOnly {
				builder = builder.ActiveOnly()
			}

			if execData {
				builder = builder.ExecData()
			}

			list, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list jobs: %w", err)
			}

			if handled, err := renderStructured(list); handled {
				return err
			}

			if len(list.Items) == 0 {
				fmt.Println("No jobs found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "Name", "Owner", "Status", "Class", "Return Code")

			for _, job := range list.Items {
				_ = table.Append(job.ID, job.Name, job.Owner, job.Status, job.Class, job.ReturnCode)
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "filter by owning user")
	cmd.Flags().StringVar(&prefix, "prefix", "", "filter by job name prefix")
	cmd.Flags().StringVar(&jobID, "job-id", "", "filter by job id")
	cmd.Flags().StringVar(&correlator, "correlator", "", "filter by user portion of the job correlator")
	cmd.Flags().IntVar(&maxJobs, "max-jobs", 0, "maximum number of jobs to return")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only list active jobs")
	cmd.Flags().BoolVar(&execData, "exec-data", false, "include execution data")

	return cmd
}

//nolint:funlen
func newJobsStatusCommand() *cobra.Command {
	var (
		correlator string
		execData   bool
		stepData   bool
	)

	cmd := &cobra.Command{
		Use:   "status [NAME ID]",
		Short: "Show the status of a job",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := jobIdentifier(args, correlator)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Jobs().Status(id)
			if execData {
				builder = builder.ExecData()
			}

			if stepData {
				builder = builder.StepData()
			}

			job, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get job status: %w", err)
			}

			if handled, err := renderStructured(job); handled {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Property", "Value")

			_ = table.Append("ID", job.ID)
			_ = table.Append("Name", job.Name)
			_ = table.Append("Owner", job.Owner)
			_ = table.Append("Status", job.Status)
			_ = table.Append("Type", job.Type)
			_ = table.Append("Class", job.Class)
			_ = table.Append("Return Code", job.ReturnCode)
			_ = table.Append("Phase", job.PhaseName)
			_ = table.Append("Correlator", job.Correlator)

			if execData {
				_ = table.Append("Submitted", job.ExecSubmitted)
				_ = table.Append("Started", job.ExecStarted)
				_ = table.Append("Ended", job.ExecEnded)
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&correlator, "correlator", "", "identify the job by correlator")
	cmd.Flags().BoolVar(&execData, "exec-data", false, "include execution data")
	cmd.Flags().BoolVar(&stepData, "step-data", false, "include step data")

	return cmd
}

//nolint:funlen
func newJobsSubmitCommand() *cobra.Command {
	var (
		jclFile      string
		dataset      string
		ussFile      string
		messageClass string
		correlator   string
		symbols      map[string]string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a job",
		Long:  "Submit JCL from a local file, a dataset, or a USS file to the internal reader",
		RunE: func(cmd *cobra.Command, args []string) error {
			var source zosmf.JobSource

			switch {
			case jclFile != "":
				jcl, err := os.ReadFile(jclFile)
				if err != nil {
					return fmt.Errorf("failed to read JCL file: %w", err)
				}

				source = zosmf.JCLSource(string(jcl))
			case dataset != "":
				source = zosmf.DatasetSource(dataset)
			case ussFile != "":
				source = zosmf.FileSource(ussFile)
			default:
				return ErrJCLSourceRequired
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Jobs().Submit(source)

			if messageClass != "" {
				if len(messageClass) != 1 {
					return ErrMessageClassInvalid
				}

				builder = builder.MessageClass(rune(messageClass[0]))
			}

			if correlator != "" {
				builder = builder.UserCorrelator(correlator)
			}

			for name, value := range symbols {
				builder = builder.Symbol(name, value)
			}

			job, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to submit job: %w", err)
			}

			if handled, err := renderStructured(job); handled {
				return err
			}

			fmt.Printf("Successfully submitted job %s (%s)\n", job.Name, job.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&jclFile, "jcl-file", "f", "", "local file containing the JCL")
	cmd.Flags().StringVar(&dataset, "dataset", "", "dataset containing the JCL, e.g. SYS1.JCL(MYJOB)")
	cmd.Flags().StringVar(&ussFile, "uss-file", "", "USS file containing the JCL")
	cmd.Flags().StringVar(&messageClass, "message-class", "", "message class for the job")
	cmd.Flags().StringVar(&correlator, "correlator", "", "user portion of the job correlator")
	cmd.Flags().StringToStringVar(&symbols, "symbol", nil, "JCL symbols to set (name=value)")

	return cmd
}

func newJobsFilesCommand() *cobra.Command {
	var correlator string

	cmd := &cobra.Command{
		Use:   "files [NAME ID]",
		Short: "List the spool files of a job",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := jobIdentifier(args, correlator)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			list, err := client.Jobs().Files(id).Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list spool files: %w", err)
			}

			if handled, err := renderStructured(list); handled {
				return err
			}

			if len(list.Items) == 0 {
				fmt.Println("No spool files found")

				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("ID", "DD Name", "Step", "Class", "Records")

			for _, file := range list.Items {
				_ = table.Append(strconv.Itoa(file.ID), file.DDName, file.StepName,
					file.Class, strconv.Itoa(file.RecordCount))
			}

			_ = table.Render()

			return nil
		},
	}

	cmd.Flags().StringVar(&correlator, "correlator", "", "identify the job by correlator")

	return cmd
}

func newJobsReadFileCommand() *cobra.Command {
	var (
		correlator  string
		recordRange string
		search      string
		encoding    string
	)

	cmd := &cobra.Command{
		Use:   "read-file NAME ID FILE",
		Short: "Read a spool file",
		Long:  "Read the records of one spool file; FILE is the numeric id or 'JCL' for the input JCL",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileArg := args[len(args)-1]

			id, err := jobIdentifier(args[:len(args)-1], correlator)
			if err != nil {
				return err
			}

			var fileID zosmf.JobFileID

			if fileArg == "JCL" {
				fileID = zosmf.JCLFileID()
			} else {
				n, err := strconv.Atoi(fileArg)
				if err != nil {
					return ErrSpoolFileIDInvalid
				}

				fileID = zosmf.SpoolFileID(n)
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			builder := client.Jobs().ReadFile(id, fileID)
			if recordRange != "" {
				builder = builder.RecordRange(zosmf.RecordRange(recordRange))
			}

			if search != "" {
				builder = builder.Search(search)
			}

			if encoding != "" {
				builder = builder.Encoding(encoding)
			}

			content, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to read spool file: %w", err)
			}

			_, err = os.Stdout.Write(content.Data)

			return err
		},
	}

	cmd.Flags().StringVar(&correlator, "correlator", "", "identify the job by correlator")
	cmd.Flags().StringVar(&recordRange, "record-range", "", "record range to read, e.g. 0-249")
	cmd.Flags().StringVar(&search, "search", "", "return only records containing this text")
	cmd.Flags().StringVar(&encoding, "encoding", "", "target encoding for the records")

	return cmd
}

// newJobsFeedbackCommand builds the cancel, hold, and release commands, which
// differ only in the builder they start from.
func newJobsFeedbackCommand(use, short string,
	start func(zosmf.JobsClient, zosmf.JobIdentifier) zosmf.JobFeedbackBuilder,
) *cobra.Command {
	var (
		correlator   string
		asynchronous bool
	)

	cmd := &cobra.Command{
		Use:   use + " [NAME ID]",
		Short: short,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := jobIdentifier(args, correlator)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			builder := start(client.Jobs(), id)
			if asynchronous {
				builder = builder.Asynchronous()
			}

			feedback, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to %s job: %w", use, err)
			}

			if handled, err := renderStructured(feedback); handled {
				return err
			}

			fmt.Printf("Job %s (%s): %s\n", feedback.JobName, feedback.JobID, feedback.Status)

			return nil
		},
	}

	cmd.Flags().StringVar(&correlator, "correlator", "", "identify the job by correlator")
	cmd.Flags().BoolVar(&asynchronous, "async", false, "do not wait for the request to complete")

	return cmd
}

func newJobsClassCommand() *cobra.Command {
	var correlator string

	cmd := &cobra.Command{
		Use:   "class NAME ID CLASS",
		Short: "Change the class of a job",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			classArg := args[len(args)-1]
			if len(classArg) != 1 {
				return ErrMessageClassInvalid
			}

			id, err := jobIdentifier(args[:len(args)-1], correlator)
			if err != nil {
				return err
			}

			client, err := createClient()
			if err != nil {
				return err
			}

			feedback, err := client.Jobs().
				ChangeClass(id, rune(classArg[0])).
				Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to change job class: %w", err)
			}

			if handled, err := renderStructured(feedback); handled {
				return err
			}

			fmt.Printf("Job %s (%s): %s\n", feedback.JobName, feedback.JobID, feedback.Status)

			return nil
		},
	}

	cmd.Flags().StringVar(&correlator, "correlator", "", "identify the job by correlator")

	return cmd
}

func newJobsPurgeCommand() *cobra.Command {
	var (
		correlator   string
		asynchronous bool
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "purge [NAME ID]",
		Short: "Cancel a job and purge its output",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := jobIdentifier(args, correlator)
			if err != nil {
				return err
			}

			if !force {
				fmt.Printf("Really purge job %s? (y/N): ", id.String())

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

			builder := client.Jobs().CancelAndPurge(id)
			if asynchronous {
				builder = builder.Asynchronous()
			}

			feedback, err := builder.Execute(context.Background())
			if err != nil {
				return fmt.Errorf("failed to purge job: %w", err)
			}

			if handled, err := renderStructured(feedback); handled {
				return err
			}

			fmt.Printf("Job %s (%s): %s\n", feedback.JobName, feedback.JobID, feedback.Status)

			return nil
		},
	}

	cmd.Flags().StringVar(&correlator, "correlator", "", "identify the job by correlator")
	cmd.Flags().BoolVar(&asynchronous, "async", false, "do not wait for the request to complete")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
