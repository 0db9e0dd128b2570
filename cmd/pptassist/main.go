// Command pptassist runs the presentation assistant's editing commands
// against a .pptx file or a running presentation application.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/pptassist/office"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	live       bool
	out        string
	slide      int
	shapes     []string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "pptassist",
		Short: "Align shapes, format tables and draw cards in presentations",
		Long: `pptassist edits a .pptx file in place (or writes it to --out), or, with
--live, drives the presentation application that is currently running.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default: ~/.config/pptassist/config.yaml)")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	pf.BoolVar(&opts.live, "live", false, "Attach to the running presentation application instead of a file")
	pf.StringVarP(&opts.out, "out", "o", "", "Write the edited deck here instead of overwriting the input")
	pf.IntVar(&opts.slide, "slide", 1, "Active slide (file mode)")
	pf.StringSliceVar(&opts.shapes, "shapes", nil, "Shapes to select on the active slide, by name (file mode)")

	root.AddCommand(
		newFeaturesCmd(opts),
		newAlignCmd(opts),
		newDistributeCmd(opts),
		newEqualizeCmd(opts),
		newSwapCmd(opts),
		newTableCmd(opts),
		newGlassCardCmd(opts),
		newPreviewCmd(opts),
	)
	return root
}

// action is the body of a command, run with an open session.
type action func(cmd *cobra.Command, s *session, args []string) error

// guarded opens a session, runs fn and saves. A panic anywhere below is
// logged with its stack and reported as an ordinary failure.
func guarded(opts *globalOptions, save bool, fn action) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		var log office.Logger = office.NopLogger{}
		defer func() {
			if r := recover(); r != nil {
				log.Error("command crashed", fmt.Errorf("panic: %v", r),
					"command", cmd.CommandPath(), "stack", string(debug.Stack()))
				err = fmt.Errorf("%s failed unexpectedly; see the log for details", cmd.Name())
			}
		}()

		s, err := openSession(cmd, opts, args)
		if err != nil {
			return err
		}
		defer s.close()
		log = s.log

		if len(args) > 0 && !opts.live {
			args = args[1:]
		}
		if err := fn(cmd, s, args); err != nil {
			return err
		}
		if save {
			return s.save()
		}
		return nil
	}
}
