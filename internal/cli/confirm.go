package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alnah/go-twilio-tools/internal/format"
)

// confirmState is the state of the delete confirmation.
type confirmState int

const (
	confirmPending confirmState = iota
	confirmAccepted
	confirmDeclined
)

// parseAnswer maps one line of input to the next state.
// Anything but y/yes/n/no (any case, surrounding space ignored) stays pending.
func parseAnswer(line string) confirmState {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return confirmAccepted
	case "n", "no":
		return confirmDeclined
	default:
		return confirmPending
	}
}

// deletePrompt describes the pending deletion. Zero bounds are omitted.
func deletePrompt(account string, after, before time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Delete all recordings for account %s ", account)
	if !after.IsZero() || !before.IsZero() {
		b.WriteString("created ")
	}
	if !after.IsZero() {
		fmt.Fprintf(&b, "after %s ", format.Date(after))
	}
	if !after.IsZero() && !before.IsZero() {
		b.WriteString("and ")
	}
	if !before.IsZero() {
		fmt.Fprintf(&b, "before %s ", format.Date(before))
	}
	b.WriteString("(y/n)? ")
	return b.String()
}

// confirm writes prompt to out and reads answers from in until one is
// accepted or declined. Declining, or reaching end of input first,
// returns ErrCancelled.
func confirm(in io.Reader, out io.Writer, prompt string) error {
	sc := bufio.NewScanner(in)
	state := confirmPending
	for state == confirmPending {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return fmt.Errorf("failed to read answer: %w", err)
			}
			fmt.Fprintln(out)
			return fmt.Errorf("%w: no answer", ErrCancelled)
		}
		state = parseAnswer(sc.Text())
	}

	if state == confirmDeclined {
		return ErrCancelled
	}
	return nil
}
