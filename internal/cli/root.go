package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/daemonprobe/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

// newRootCmd builds the probe command with its flags.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemonprobe",
		Short: "Detach from the terminal and report what happened",
		Long: `daemonprobe detaches itself from its controlling terminal, then prints
its process and parent process ids, whether the detach succeeded and the
working directory it ended up in. It finishes by counting 0 to 9 at half a
second per line and printing "Done.".

The exit status is 0 whether or not the detach succeeded.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runProbe,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.daemonprobe/config.yml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Probe flags, bound to config keys by config.NewLoader
	defaults := config.Default()
	cmd.Flags().Bool("no-chdir", defaults.Detach.NoChdir, "keep the working directory (false moves to the filesystem root)")
	cmd.Flags().Bool("no-close", defaults.Detach.NoClose, "keep standard streams attached (false redirects them to the null device)")
	cmd.Flags().Int("iterations", defaults.Loop.Iterations, "number of counter lines")
	cmd.Flags().Duration("interval", defaults.Loop.Interval, "pause after each counter line")
	cmd.Flags().String("log-file", defaults.Log.File, "write diagnostics to a rotating log file instead of stderr")
	cmd.Flags().Bool("progress", defaults.Progress, "show a progress bar on stderr while counting")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
