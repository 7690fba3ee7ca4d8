package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "wbemcli",
	Short: "WBEM client and MOF compiler",
	Long: `wbemcli drives a WBEM server over CIM-XML/HTTP (pkg/wbem) and
compiles MOF schema/instance documents against a repository
(pkg/mofcompiler).`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile-file", "", "path to a wconfig profile YAML file")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "named profile to connect with")
	rootCmd.PersistentFlags().StringVar(&namespace, "namespace", "root/cimv2", "target namespace")
}

var (
	profilePath string
	profileName string
	namespace   string
)
