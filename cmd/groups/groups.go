package groups

import "github.com/spf13/cobra"

var TagsGroup cobra.Group = cobra.Group{
	ID:    "tags",
	Title: "Tag Listing Commands:",
}

var ManifestGroup cobra.Group = cobra.Group{
	ID:    "manifest",
	Title: "Manifest Commands:",
}
