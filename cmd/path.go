package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wowsmith/addonsync/config"
	"github.com/wowsmith/addonsync/internal/wowpath"
)

// NewCmdPath creates the path command.
func NewCmdPath() *cobra.Command {
	var detect bool
	var set string

	cmd := &cobra.Command{
		Use:   "path",
		Short: "Show or configure the WoW installation path",
		Long: `Shows the configured WoW installation path. With --detect, scans the
Battle.net product database for installations. With --set, validates and
stores a path in the config file.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runPath(detect, set)
		},
	}

	cmd.Flags().BoolVar(&detect, "detect", false, "Detect WoW installations from the Battle.net product database")
	cmd.Flags().StringVar(&set, "set", "", "Store the given WoW installation path in the config")

	return cmd
}

func runPath(detect bool, set string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if set != "" {
		if !wowpath.Validate(set) {
			return fmt.Errorf("no AddOns directory under %s (expected _retail_/Interface/AddOns)", set)
		}
		cfg.WowPath = set
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Printf("WoW path set to %s\n", set)
		return nil
	}

	if detect {
		paths, err := wowpath.Detect()
		if err != nil {
			return err
		}
		fmt.Println("Detected WoW installations:")
		for _, p := range paths {
			marker := ""
			if p == cfg.WowPath {
				marker = " (configured)"
			}
			fmt.Printf("  %s%s\n", p, marker)
		}
		return nil
	}

	if cfg.WowPath == "" {
		fmt.Println("No WoW path configured. Run 'addonsync path --detect' or 'addonsync path --set <path>'.")
		return nil
	}

	status := "valid"
	if !wowpath.Validate(cfg.WowPath) {
		status = "AddOns directory missing"
	}
	fmt.Printf("WoW path: %s (%s)\n", cfg.WowPath, status)
	return nil
}
