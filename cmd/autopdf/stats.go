package main

import (
	"github.com/spf13/cobra"

	"github.com/autopdf/autopdf/internal/api"
	"github.com/autopdf/autopdf/internal/usage"
)

var statsReset bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the usage counters saved in the home directory",
	Long: `Show the usage counters saved in ~/.autopdf/stats.yaml.

A running server keeps its own counters in memory and saves them on
shutdown; use "autopdf api stats" to see them live.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := openHome()
		if err != nil {
			return err
		}
		store := usage.NewStore(h.StatsPath())
		if err := store.Load(); err != nil {
			return err
		}
		if statsReset {
			store.Reset()
			if err := store.Save(); err != nil {
				return err
			}
		}
		return api.Output(store.Snapshot())
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsReset, "reset", false, "Clear the counters")
	rootCmd.AddCommand(statsCmd)
}
