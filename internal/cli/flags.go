package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// toggle is a boolean set by a --name / --no-name flag pair.
type toggle struct {
	on, off bool
	def     bool
}

// value returns the flag pair's result, or the default if neither was given.
func (t *toggle) value() bool {
	switch {
	case t.on:
		return true
	case t.off:
		return false
	default:
		return t.def
	}
}

// addToggle registers --name and --no-name on fs.
// Pair it with exclusiveToggles on the owning command.
func addToggle(fs *pflag.FlagSet, name string, def bool, usage string) *toggle {
	t := &toggle{def: def}
	onUsage, offUsage := usage, "Disable --"+name
	if def {
		onUsage += " (default)"
	} else {
		offUsage += " (default)"
	}
	fs.BoolVar(&t.on, name, false, onUsage)
	fs.BoolVar(&t.off, "no-"+name, false, offUsage)
	return t
}

// exclusiveToggles rejects --name together with --no-name.
func exclusiveToggles(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		cmd.MarkFlagsMutuallyExclusive(name, "no-"+name)
	}
}
