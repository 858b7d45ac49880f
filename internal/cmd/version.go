package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wethinkt/go-tonekit/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetInfo("tonekit")
		if outputJSON {
			_ = json.NewEncoder(os.Stdout).Encode(info)
			return
		}
		fmt.Println(version.String("tonekit"))
	},
}
