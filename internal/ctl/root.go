// Package ctl implements diaryctl, an offline companion to the bot that reads
// the diary journal and exercises the /time resolver from a shell.
package ctl

import (
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/common"
	"github.com/dmitrijs2005/fooddiary/internal/flagx"
	"github.com/spf13/cobra"
)

// now is the clock used by the time command.
var now = time.Now

type rootOptions struct {
	dataDir string
}

func (o *rootOptions) journalPath() string {
	return filepath.Join(o.dataDir, common.JournalFileName)
}

// NewRootCmd builds the diaryctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "diaryctl",
		Short:         "Inspect the food diary offline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	dataDir, ok := flagx.Getenv("DATA_DIR")
	if !ok {
		dataDir = "./data"
	}
	root.PersistentFlags().StringVarP(&opts.dataDir, "data-dir", "d", dataDir, "directory holding entries.jsonl")

	root.AddCommand(newReportCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newTimeCmd())

	return root
}
