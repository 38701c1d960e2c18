package tags

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/table"
	"github.com/jedib0t/go-pretty/text"
	helpers "github.com/rancher/tagpin/internal/cmd"
	"github.com/rancher/tagpin/internal/tagresolve"
	"github.com/spf13/cobra"
)

// listCmd represents the tags:list command
var listCmd = &cobra.Command{
	Use:   "list <repository> [prefix]",
	Short: "Show the tags of a repository and what a prefix extracts from them",
	Long: `Shows every tag of <repository>. With a prefix, only tags matching it are shown
together with the extracted version and whether it is valid, which is how to find
the tags that make a resolution fail with malformed-version-tag.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: listHandler,
}

// TagRow is one listed tag.
type TagRow struct {
	Tag       string `yaml:"tag" json:"tag"`
	Remainder string `yaml:"remainder,omitempty" json:"remainder,omitempty"`
	Version   string `yaml:"version,omitempty" json:"version,omitempty"`
	Valid     bool   `yaml:"valid" json:"valid"`
}

func init() {
	listCmd.Flags().StringP("output", "o", helpers.OutputText, "Output format: text, yaml or json")
}

func listHandler(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if err := helpers.ValidateOutput(output); err != nil {
		return err
	}

	var matcher *tagresolve.PrefixMatcher
	if len(args) == 2 {
		var err error
		if matcher, err = tagresolve.CompilePrefix(args[1]); err != nil {
			return err
		}
	}

	lister, err := helpers.ListerFor(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := helpers.Context()
	defer cancel()

	raw, err := lister.ListTags(ctx, args[0])
	if err != nil {
		return err
	}
	rows := TagRows(tagresolve.ParseReferences(raw), matcher)

	if output != helpers.OutputText {
		return helpers.PrintStructured(cmd.OutOrStdout(), output, rows)
	}
	renderRows(cmd.OutOrStdout(), rows, matcher != nil)
	return nil
}

// TagRows describes names in listing order. With a matcher, names it does not match are left out.
func TagRows(names []string, matcher *tagresolve.PrefixMatcher) []TagRow {
	rows := make([]TagRow, 0, len(names))
	for _, name := range names {
		if matcher == nil {
			_, err := tagresolve.ParseVersion(name)
			rows = append(rows, TagRow{Tag: name, Valid: err == nil})
			continue
		}
		remainder, ok := matcher.Extract(name)
		if !ok {
			continue
		}
		row := TagRow{Tag: name, Remainder: remainder}
		if version, err := tagresolve.ParseVersion(remainder); err == nil {
			row.Version = version.String()
			row.Valid = true
		}
		rows = append(rows, row)
	}
	return rows
}

func renderRows(w io.Writer, rows []TagRow, withPrefix bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	if withPrefix {
		t.AppendHeader(table.Row{"#", "Tag", "Remainder", "Version", "Status"})
	} else {
		t.AppendHeader(table.Row{"#", "Tag"})
	}

	invalid := 0
	for idx, row := range rows {
		if !withPrefix {
			t.AppendRow(table.Row{idx + 1, row.Tag})
			continue
		}
		statusIcon := "✅"
		if !row.Valid {
			statusIcon = "❌"
			invalid++
		}
		t.AppendRow(table.Row{idx + 1, row.Tag, row.Remainder, row.Version, statusIcon})
	}
	t.Render()

	if withPrefix && invalid > 0 {
		fmt.Fprintln(w, text.Color.Sprintf(text.FgRed,
			"%d matching tags are not plain versions, resolving with this prefix fails", invalid))
	}
}
