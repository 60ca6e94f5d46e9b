package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alnah/go-twilio-tools/internal/config"
	"github.com/alnah/go-twilio-tools/internal/date"
	"github.com/alnah/go-twilio-tools/internal/format"
	"github.com/alnah/go-twilio-tools/internal/twilio"
)

// recordingHeader is printed before the verbose rows.
const recordingHeader = "Date/Time Created,Recording SID,Account SID,URI,Duration,Action"

// recordingsOptions holds inputs for the recording manager.
type recordingsOptions struct {
	deleteRecs bool
	summary    bool
	verbose    bool
	confirm    bool
	archive    string
	after      string
	before     string
	account    string
	password   string
	debug      bool
}

// recordingsTally counts what the processing loop did.
type recordingsTally struct {
	count      int
	downloaded int
	skipped    int
}

// RecordingsCmd creates the recording manager command.
// The env parameter provides injectable dependencies for testing.
func RecordingsCmd(env *Env) *cobra.Command {
	var (
		opts                               recordingsOptions
		deleteT, summaryT, verboseT, confT *toggle
	)

	cmd := &cobra.Command{
		Use:   "recordings",
		Short: "List, archive and delete call recordings",
		Long: `List call recordings, optionally archiving them to a local
directory and/or deleting them.

Archived recordings are stored as <recording SID>.mp3. Recordings whose
file already exists in the archive are not downloaded again.

Deleting asks for confirmation unless --no-confirm is given.`,
		Example: `  recordings --after 2024-01-01 --before 2024-02-01 --verbose
  recordings --archive ~/recordings --delete -b 2024-01-01
  recordings --delete --no-confirm --no-summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.deleteRecs = deleteT.value()
			opts.summary = summaryT.value()
			opts.verbose = verboseT.value()
			opts.confirm = confT.value()
			return runRecordings(cmd.Context(), env, opts)
		},
	}

	fs := cmd.Flags()
	deleteT = addToggle(fs, "delete", false, "Delete recordings")
	fs.StringVar(&opts.archive, "archive", "", "Path to local directory")
	fs.StringVar(&opts.after, "after", "", "yyyy-mm-dd")
	fs.StringVarP(&opts.before, "before", "b", "", "yyyy-mm-dd")
	summaryT = addToggle(fs, "summary", true, "Count recordings")
	verboseT = addToggle(fs, "verbose", false, "List recording details")
	confT = addToggle(fs, "confirm", true, "Confirm deletions")
	fs.StringVarP(&opts.account, "account", "a", "", "Account SID (env: "+config.EnvAccountSID+")")
	fs.StringVarP(&opts.password, "password", "p", "", "Auth token (env: "+config.EnvAuthToken+")")
	fs.BoolVar(&opts.debug, "debug", false, "Log API requests to stderr")
	exclusiveToggles(cmd, "delete", "summary", "verbose", "confirm")

	return cmd
}

// runRecordings lists the matching recordings and archives and/or deletes each one.
func runRecordings(ctx context.Context, env *Env, opts recordingsOptions) error {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}

	creds, err := resolveCredentials(opts.account, opts.password, env.Getenv, cfg)
	if err != nil {
		return err
	}

	after, err := optionalDate("after", opts.after)
	if err != nil {
		return err
	}
	before, err := optionalDate("before", opts.before)
	if err != nil {
		return err
	}
	if !after.IsZero() && !before.IsZero() && !after.Before(before) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidDateRange, opts.after, opts.before)
	}

	archive := config.ExpandPath(opts.archive)
	if archive != "" {
		if err := prepareArchive(archive); err != nil {
			return err
		}
	}

	logger := newLogger(env.Stderr, opts.debug)
	defer func() { _ = logger.Sync() }()

	client, err := env.ClientFactory.NewClient(creds, logger)
	if err != nil {
		return err
	}

	// Also checks the credentials before anything is listed.
	acct, err := client.FetchAccount(ctx, creds.AccountSID)
	if err != nil {
		return fmt.Errorf("invalid account SID or auth token: %w", err)
	}

	if opts.deleteRecs && opts.confirm {
		if err := confirm(env.Stdin, env.Stdout, deletePrompt(acct.FriendlyName, after, before)); err != nil {
			return err
		}
	}

	if opts.verbose {
		fmt.Fprintln(env.Stdout, recordingHeader)
	}

	var tally recordingsTally
	filter := twilio.RecordingFilter{CreatedAfter: after, CreatedBefore: before}
	for rec, err := range client.ListRecordings(ctx, filter) {
		if err != nil {
			return err
		}
		tally.count++
		action := ""

		if archive != "" {
			downloaded, err := archiveRecording(ctx, client, archive, rec.SID)
			if err != nil {
				return err
			}
			if downloaded {
				tally.downloaded++
				action = "downloaded"
			} else {
				tally.skipped++
			}
		}

		if opts.deleteRecs {
			if err := client.DeleteRecording(ctx, rec.SID); err != nil {
				return fmt.Errorf("delete recording %s: %w", rec.SID, err)
			}
			action = joinAction(action, "deleted")
		}

		if opts.verbose {
			fmt.Fprintln(env.Stdout, recordingRow(rec, action))
		}
	}

	if opts.summary {
		fmt.Fprintln(env.Stdout, summaryLine(tally, opts.deleteRecs, archive != ""))
	}
	return nil
}

// optionalDate parses a date flag that may be empty.
func optionalDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := date.Parse(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return t, nil
}

// joinAction appends next to a "+"-separated action label.
func joinAction(action, next string) string {
	if action == "" {
		return next
	}
	return action + "+" + next
}

// recordingRow renders one verbose line.
func recordingRow(r twilio.Recording, action string) string {
	return fmt.Sprintf("%s,%s,%s,%s,%s",
		format.Timestamp(r.DateCreated), r.SID, r.CallSID, r.Duration, action)
}

// summaryLine renders the closing count, e.g.
// "12 recordings deleted, 3 downloaded, 9 skipped".
func summaryLine(t recordingsTally, deleted, archived bool) string {
	s := fmt.Sprintf("%d recordings", t.count)
	if deleted {
		s += " deleted"
	}
	if archived {
		s += fmt.Sprintf(", %d downloaded, %d skipped", t.downloaded, t.skipped)
	}
	return s
}
