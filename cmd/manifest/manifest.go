package manifest

import (
	"fmt"

	"github.com/rancher/tagpin/cmd/groups"
	"github.com/spf13/cobra"
)

func subCommandList() []*cobra.Command {
	return []*cobra.Command{
		resolveCmd,
	}
}

func init() {
	for _, cmd := range subCommandList() {
		cmd.Use = fmt.Sprintf("%s:%s", groups.ManifestGroup.ID, cmd.Use)
		cmd.GroupID = groups.ManifestGroup.ID
	}
}

func RegisterManifestSubcommands(cmd *cobra.Command) {
	for _, subCmd := range subCommandList() {
		cmd.AddCommand(subCmd)
	}
}
