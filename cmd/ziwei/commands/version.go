package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mingli/ziwei/render"
	"github.com/mingli/ziwei/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show ziwei version information",
	Long:  `Display version, build time, commit hash, and platform information for the ziwei binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()

		if render.ShouldOutputJSON(cmd) {
			return render.OutputJSON(info)
		}

		fmt.Println(info.String())
		fmt.Printf("Platform: %s\n", info.Platform)
		fmt.Printf("Go: %s\n", info.GoVersion)
		return nil
	},
}
