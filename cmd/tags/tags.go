package tags

import (
	"fmt"

	"github.com/rancher/tagpin/cmd/groups"
	"github.com/spf13/cobra"
)

func subCommandList() []*cobra.Command {
	return []*cobra.Command{
		listCmd,
		saveCmd,
	}
}

func init() {
	for _, cmd := range subCommandList() {
		cmd.Use = fmt.Sprintf("%s:%s", groups.TagsGroup.ID, cmd.Use)
		cmd.GroupID = groups.TagsGroup.ID
	}
}

func RegisterTagsSubcommands(cmd *cobra.Command) {
	for _, subCmd := range subCommandList() {
		cmd.AddCommand(subCmd)
	}
}
