/*
Package cli provides command-line helpers used by the tagviz command.

Output Formatting:

Command results can be written as text, JSON or YAML:

	format, err := cli.ParseOutputFormat("yaml")
	if err != nil {
		return err
	}
	if err := cli.NewFormatter(format).FormatTo(os.Stdout, result); err != nil {
		return err
	}

Progress Reporting:

Long runs over many files report progress on stderr:

	progress := cli.NewProgressReporter(os.Stderr, "files")
	progress.Start(int64(len(files)))
	for i, f := range files {
		lint(f)
		progress.Update(int64(i + 1))
	}
	progress.Finish()

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

Errors:

Commands return *CommandError for failures they report and *ConfigError when
configuration cannot be loaded; ExitCode maps them to process exit codes.
*/
package cli
