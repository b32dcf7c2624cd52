package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Changed reports whether flagName was set explicitly on the command line, looking at
// the command's own, inherited and root persistent flags.
func Changed(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSets := []*pflag.FlagSet{command.Flags(), command.PersistentFlags(), command.InheritedFlags()}
	if rootCommand := command.Root(); rootCommand != nil {
		flagSets = append(flagSets, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSets {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}
	return false
}
