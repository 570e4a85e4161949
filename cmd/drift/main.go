// Command drift is a hackable terminal file explorer: a message-driven
// state machine binding key events to a declarative key map, synchronizing
// a live directory view and spawned shell hooks through named pipes.
// Grounded on the teacher's cmd/mutagen entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drift-explorer/drift/internal/cmdutil"
)

func rootMain(command *cobra.Command, arguments []string) error {
	if rootConfiguration.version {
		fmt.Println(coreVersion)
		return nil
	}

	if rootConfiguration.bashCompletionScript != "" {
		return command.GenBashCompletionFile(rootConfiguration.bashCompletionScript)
	}

	path := "."
	if len(arguments) > 0 {
		path = arguments[0]
	}

	return run(path)
}

var rootCommand = &cobra.Command{
	Use:   "drift [<path>]",
	Short: "A hackable terminal file explorer",
	Args:  cobra.MaximumNArgs(1),
	RunE:  rootMain,
}

var rootConfiguration struct {
	help                 bool
	version              bool
	configPath           string
	bashCompletionScript string
}

func init() {
	flags := rootCommand.Flags()
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&rootConfiguration.version, "version", "V", false, "Show version information")
	flags.StringVar(&rootConfiguration.configPath, "config", "", "Specify a configuration file to merge over the defaults")
	flags.StringVar(&rootConfiguration.bashCompletionScript, "generate-bash-completion", "", "Generate bash completion script")
	flags.MarkHidden("generate-bash-completion")

	cobra.EnableCommandSorting = false
	cobra.MousetrapHelpText = ""
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		cmdutil.Error(err)
		os.Exit(2)
	}
}
