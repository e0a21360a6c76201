package main

import (
	"github.com/spf13/cobra"

	"github.com/autopdf/autopdf/internal/api"
	"github.com/autopdf/autopdf/version"
)

// versionInfo is printed in the format chosen by --output.
type versionInfo struct {
	Release    string `json:"release" yaml:"release"`
	Commit     string `json:"commit" yaml:"commit"`
	CommitDate string `json:"commit_date" yaml:"commit_date"`
	Go         string `json:"go" yaml:"go"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the autopdf build",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Output(versionInfo{
			Release:    version.GitRelease,
			Commit:     version.GitCommit,
			CommitDate: version.GitCommitDate,
			Go:         version.GoInfo,
		})
	},
}
