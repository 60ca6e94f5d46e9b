package cli

import (
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alnah/go-twilio-tools/internal/config"
	"github.com/alnah/go-twilio-tools/internal/date"
	"github.com/alnah/go-twilio-tools/internal/format"
	"github.com/alnah/go-twilio-tools/internal/twilio"
)

// cdrHeader is the first line of every CDR file.
const cdrHeader = "SID,Parent Call SID,Date Created,Date Updated,Account SID,To,From," +
	"Phone Number SID,Status,Start Time,End Time,Duration,Price,Price Unit,Direction," +
	"Answered By,Forwarded From,To Formatted,From Formatted,Caller Name"

// cdrsOptions holds validated inputs for the CDR export.
type cdrsOptions struct {
	start, end string
	account    string
	password   string
	subaccount string
	outputDir  string
	debug      bool
}

// CDRsCmd creates the CDR export command.
// The env parameter provides injectable dependencies for testing.
func CDRsCmd(env *Env) *cobra.Command {
	var opts cdrsOptions

	cmd := &cobra.Command{
		Use:   "cdrs",
		Short: "Export call detail records to CSV",
		Long: `Export call detail records between and including two dates to
cdrs_<end date>.csv.

Dates are calendar days in the local timezone: the export starts on the
start day at 00:00:00 and ends on the end day at 23:59:59.

Fields the API reports as null (e.g. Price, Answered By, Caller Name) are
written as empty values, not as "None" like earlier exports. Values are
not quoted.

Credentials are taken from --account/--password, then from the
TWILIO_ACCOUNT_SID/TWILIO_AUTH_TOKEN environment variables (a .env file in
the working directory is honoured), then from the config file.`,
		Example: `  cdrs --start 2024-01-01 --end 2024-01-31
  cdrs --start 2024-01-01 -e 2024-01-31 -s ACxxxxxxxx -o ~/exports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCDRs(cmd.Context(), env, opts)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.start, "start", "", "yyyy-mm-dd, at 00:00:00")
	fs.StringVarP(&opts.end, "end", "e", "", "yyyy-mm-dd, at 23:59:59")
	fs.StringVarP(&opts.account, "account", "a", "", "Account SID (env: "+config.EnvAccountSID+")")
	fs.StringVarP(&opts.password, "password", "p", "", "Auth token (env: "+config.EnvAuthToken+")")
	fs.StringVarP(&opts.subaccount, "subaccount", "s", "", "Subaccount SID to export")
	fs.StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory for the CSV file (env: "+config.EnvOutputDir+")")
	fs.BoolVar(&opts.debug, "debug", false, "Log API requests to stderr")

	return cmd
}

// runCDRs exports the calls started inside the local-day window to a CSV file.
func runCDRs(ctx context.Context, env *Env, opts cdrsOptions) error {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}

	creds, err := resolveCredentials(opts.account, opts.password, env.Getenv, cfg)
	if err != nil {
		return err
	}
	creds.Subaccount = opts.subaccount

	start, err := requiredDate("start", opts.start)
	if err != nil {
		return err
	}
	end, err := requiredDate("end", opts.end)
	if err != nil {
		return err
	}

	outputDir := config.ExpandPath(config.Resolve(opts.outputDir, env.Getenv(config.EnvOutputDir), cfg.OutputDir))
	if outputDir != "" {
		if err := config.EnsureDir(outputDir); err != nil {
			return fmt.Errorf("invalid output-dir: %w", err)
		}
	}
	path := config.ResolveOutputPath(outputDir, cdrFilename(end))

	logger := newLogger(env.Stderr, opts.debug)
	defer func() { _ = logger.Sync() }()

	client, err := env.ClientFactory.NewClient(creds, logger)
	if err != nil {
		return err
	}

	// The local offset is captured once for the whole range.
	window := date.LocalDayWindow(start, end, date.Offset(env.Now()))
	filter := twilio.CallFilter{StartTimeAfter: window.Start, StartTimeBefore: window.End}

	var n int
	err = writeFileAtomic(path, func(w io.Writer) error {
		var werr error
		n, werr = writeCDRs(w, client.ListCalls(ctx, filter))
		return werr
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Wrote %d call records to %s\n", n, path)
	return nil
}

// requiredDate parses a mandatory date flag.
func requiredDate(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: --%s (%s)", ErrMissingArgument, name, date.Layout)
	}
	t, err := date.Parse(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return t, nil
}

// cdrFilename names the CDR file after the end date.
func cdrFilename(end time.Time) string {
	return fmt.Sprintf("cdrs_%04d-%02d-%02d.csv", end.Year(), int(end.Month()), end.Day())
}

// writeCDRs writes the header then one row per call, in sequence order.
// Returns the number of rows written.
func writeCDRs(w io.Writer, calls iter.Seq2[twilio.Call, error]) (int, error) {
	if _, err := io.WriteString(w, cdrHeader+"\n"); err != nil {
		return 0, fmt.Errorf("failed to write output: %w", err)
	}

	n := 0
	for call, err := range calls {
		if err != nil {
			return n, err
		}
		if err := writeRow(w, cdrFields(call)...); err != nil {
			return n, fmt.Errorf("failed to write output: %w", err)
		}
		n++
	}
	return n, nil
}

// cdrFields returns the columns of one call in header order.
func cdrFields(c twilio.Call) []string {
	return []string{
		c.SID,
		c.ParentCallSID,
		format.Timestamp(c.DateCreated),
		format.Timestamp(c.DateUpdated),
		c.AccountSID,
		c.To,
		c.From,
		c.PhoneNumberSID,
		string(c.Status),
		format.Timestamp(c.StartTime),
		format.Timestamp(c.EndTime),
		c.Duration,
		c.Price,
		c.PriceUnit,
		c.Direction,
		c.AnsweredBy,
		c.ForwardedFrom,
		c.ToFormatted,
		c.FromFormatted,
		c.CallerName,
	}
}
