package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if cfg.File != "" {
				fmt.Fprintf(w, "# %s\n", cfg.File)
			} else {
				fmt.Fprintln(w, "# defaults (no config file found)")
			}
			_, err = w.Write(out)
			return err
		},
	})
	return cmd
}
