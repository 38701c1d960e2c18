package manifest

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/table"
	"github.com/jedib0t/go-pretty/text"
	helpers "github.com/rancher/tagpin/internal/cmd"
	gitpkg "github.com/rancher/tagpin/internal/git"
	"github.com/rancher/tagpin/internal/manifest"
	"github.com/rancher/tagpin/internal/tagresolve"
	"github.com/spf13/cobra"
)

// resolveCmd represents the manifest:resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <manifest.yaml>",
	Short: "Resolve every dependency declared in a manifest",
	Long: `Resolves the dependencies of a YAML manifest in declaration order:

  dependencies:
    - name: vulkan-headers
      repository: https://github.com/KhronosGroup/Vulkan-Headers.git
      prefix: "v|sdk-"
      minimum: 1.3.285
      default_tag: v1.3.290

A dependency that cannot be resolved uses its default_tag when it has one.
The command fails if any dependency is left without a tag.`,
	Args: cobra.ExactArgs(1),
	RunE: resolveHandler,
}

func init() {
	resolveCmd.Flags().StringP("output", "o", helpers.OutputText, "Output format: text, yaml or json")
}

func resolveHandler(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if err := helpers.ValidateOutput(output); err != nil {
		return err
	}

	m, err := manifest.Load(args[0])
	if err != nil {
		return err
	}
	lister, err := helpers.NewLister()
	if err != nil {
		return err
	}
	ctx, cancel := helpers.Context()
	defer cancel()

	report := manifest.ResolveAll(ctx, tagresolve.New(lister), m)
	if output == helpers.OutputText {
		renderReport(cmd.OutOrStdout(), report)
	} else if err := helpers.PrintStructured(cmd.OutOrStdout(), output, report); err != nil {
		return err
	}

	if failures := report.Failures(); failures > 0 {
		return fmt.Errorf("%d of %d dependencies could not be pinned", failures, len(report.Pins))
	}
	return nil
}

func renderReport(w io.Writer, report manifest.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Name", "Repository", "Tag", "Version", "Status"})
	for _, pin := range report.Pins {
		status := "✅"
		switch {
		case pin.FellBack:
			status = text.Color.Sprintf(text.FgYellow, "default (%s)", pin.Reason)
		case pin.Failed():
			status = fmt.Sprintf("❌ %s", pin.Reason)
		}
		t.AppendRow(table.Row{pin.Name, gitpkg.DisplayName(pin.Repository), pin.Tag, pin.Version, status})
	}
	t.Render()
}
