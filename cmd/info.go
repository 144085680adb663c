package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TRC-Loop/mak/internal/config"
)

// Semantic version of mak.
const (
	versionMajor = 1
	versionMinor = 0
	versionPatch = 0
)

// githubLink points to the project home, shown by `mak info`.
const githubLink = "https://github.com/TRC-Loop/Mak"

// Flags for `mak version`.
var (
	versionPure   bool // print the bare version string only
	versionSparse bool // print the semantic version parts on separate lines
)

// version renders the semantic version as "major.minor.patch".
func version() string {
	return fmt.Sprintf("%d.%d.%d", versionMajor, versionMinor, versionPatch)
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get version info",
	Run: func(cmd *cobra.Command, args []string) {
		if versionPure {
			fmt.Println(version())
			return
		}
		if versionSparse {
			fmt.Println("Major:", versionMajor)
			fmt.Println("Minor:", versionMinor)
			fmt.Println("Patch:", versionPatch)
			return
		}
		fmt.Println("Version:", version())
	},
}

// infoCmd prints general information about mak and its file locations.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display info about Mak",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		fmt.Println("Mak - Aliases, Macros and advanced command-chains.")
		fmt.Println("Version:", version())
		fmt.Println("Github:", githubLink)
		fmt.Println("Config Path:", config.Path())
		fmt.Println("Datastore Path:", openStore(cfg).Path)
		fmt.Println("For help, use --help")
	},
}

// init registers the version and info commands.
func init() {
	versionCmd.Flags().BoolVarP(&versionPure, "pure", "p", false, "Return version only")
	versionCmd.Flags().BoolVarP(&versionSparse, "sparse", "s", false, "Show semantic version parts")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(infoCmd)
}
