package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"notary-crawler/internal/config"
)

func configCmd(g *globalFlags) *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Inspect the crawler configuration",
	}
	c.AddCommand(configValidateCmd(g))
	return c
}

func configValidateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the config file and print errors and warnings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(*g)
			if err != nil {
				return err
			}

			_, v := config.NormalizeAndValidate(cfg)
			out := cmd.OutOrStdout()
			for _, w := range v.Warnings {
				fmt.Fprintf(out, "warning: %s\n", w)
			}
			for _, e := range v.Errors {
				fmt.Fprintf(out, "error: %s\n", e)
			}
			if !v.OK() {
				return errors.New("config is invalid")
			}

			fmt.Fprintln(out, "OK")
			return nil
		},
	}
}
