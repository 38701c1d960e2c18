package tags

import (
	helpers "github.com/rancher/tagpin/internal/cmd"
	gitpkg "github.com/rancher/tagpin/internal/git"
	"github.com/rancher/tagpin/internal/git/remote"
	log "github.com/rancher/tagpin/internal/logging"
	"github.com/rancher/tagpin/internal/tagresolve"
	"github.com/spf13/cobra"
)

// saveCmd represents the tags:save command
var saveCmd = &cobra.Command{
	Use:   "save <repository> <file>",
	Short: "Save the tag listing of a repository for later use with --lister file",
	Args:  cobra.ExactArgs(2),
	RunE:  saveHandler,
}

func saveHandler(_ *cobra.Command, args []string) error {
	repository, path := args[0], args[1]

	lister, err := helpers.ListerFor(repository)
	if err != nil {
		return err
	}
	ctx, cancel := helpers.Context()
	defer cancel()

	raw, err := lister.ListTags(ctx, repository)
	if err != nil {
		return err
	}
	if err := remote.SaveListing(path, raw); err != nil {
		return err
	}
	log.Log.Infof("Saved %d tags of %s to %s", len(tagresolve.ParseReferences(raw)), gitpkg.DisplayName(repository), path)
	return nil
}
