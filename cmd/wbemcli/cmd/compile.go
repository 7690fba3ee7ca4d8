package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wbemix/gowbem/internal/repository/live"
	"github.com/wbemix/gowbem/internal/wconfig"
	"github.com/wbemix/gowbem/pkg/mofcompiler"
	"github.com/wbemix/gowbem/pkg/wbem"
)

var (
	compileDryRun bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file.mof]",
	Short: "Compile a MOF document against a WBEM server",
	Long: `Parses a MOF document and applies its qualifier, class, and
instance declarations to the namespace of the server named by
--profile-file/--profile. With --dry-run, resolves the mutation plan
without applying it.

Example:
  wbemcli compile schema.mof --profile-file profiles.yaml --profile prod --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().BoolVar(&compileDryRun, "dry-run", false, "resolve the plan without applying it")
	compileCmd.Flags().StringVar(&password, "password", "", "password for the connecting profile")
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]
	if profilePath == "" || profileName == "" {
		return fmt.Errorf("compile requires --profile-file and --profile")
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	file, err := wconfig.Load(profilePath)
	if err != nil {
		return err
	}
	client, err := wbem.DialProfile(file, profileName, password)
	if err != nil {
		return err
	}
	repo := live.New(client.Connection)

	compiler := mofcompiler.New(repo, namespace, nil)

	ctx := context.Background()
	var result *mofcompiler.Result
	if compileDryRun {
		result = compiler.DryRun(ctx, filename, string(source))
	} else {
		result = compiler.Compile(ctx, filename, string(source))
	}

	for _, declErr := range result.Errors {
		fmt.Fprintln(os.Stderr, declErr)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("compile failed with %d error(s)", len(result.Errors))
	}

	if compileDryRun {
		fmt.Printf("dry run: plan for namespace %s would apply %d mutation(s)\n",
			result.Plan.Namespace, result.Plan.Len())
		return nil
	}
	fmt.Printf("compiled %s\n", filename)
	return nil
}
