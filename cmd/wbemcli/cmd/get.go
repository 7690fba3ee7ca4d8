package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wbemix/gowbem/internal/cimobj"
	"github.com/wbemix/gowbem/internal/wclient"
	"github.com/wbemix/gowbem/internal/wconfig"
	"github.com/wbemix/gowbem/pkg/wbem"
)

var password string

var getInstanceCmd = &cobra.Command{
	Use:   "get-instance [class]",
	Short: "Fetch a keyless instance of class and print its properties",
	Long: `Connects using --profile-file/--profile, fetches the first
instance found by requesting a keyless path to class, and prints each
property to stdout.

Example:
  wbemcli get-instance CIM_OperatingSystem --profile-file profiles.yaml --profile prod`,
	Args: cobra.ExactArgs(1),
	RunE: runGetInstance,
}

func init() {
	rootCmd.AddCommand(getInstanceCmd)
	getInstanceCmd.Flags().StringVar(&password, "password", "", "password for the connecting profile")
}

func runGetInstance(_ *cobra.Command, args []string) error {
	className := args[0]

	if profilePath == "" || profileName == "" {
		return fmt.Errorf("get-instance requires --profile-file and --profile")
	}
	file, err := wconfig.Load(profilePath)
	if err != nil {
		return err
	}
	client, err := wbem.DialProfile(file, profileName, password)
	if err != nil {
		return err
	}

	path := cimobj.NewKeylessInstanceName(className, namespace)
	inst, err := client.GetInstance(context.Background(), namespace, path, wclient.GetInstanceOptions{})
	if err != nil {
		return err
	}
	if inst == nil {
		fmt.Printf("no instance of %s found\n", className)
		return nil
	}

	fmt.Printf("%s\n", inst.ClassName)
	inst.Properties.Range(func(name string, p *cimobj.Property) bool {
		fmt.Printf("  %s = %v\n", name, p.Value)
		return true
	})
	return nil
}
