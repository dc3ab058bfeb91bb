package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wowsmith/addonsync/config"
	"github.com/wowsmith/addonsync/internal/catalog"
	"github.com/wowsmith/addonsync/internal/model"
)

// NewCmdOverride creates the override command with subcommands.
func NewCmdOverride() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage per-addon update policy overrides",
		Long: `Overrides replace the catalog's default update policy for one addon.
An override can switch an addon between release and branch tracking, or
point it at a different branch.`,
	}

	cmd.AddCommand(newCmdOverrideSet())
	cmd.AddCommand(newCmdOverrideClear())
	cmd.AddCommand(newCmdOverrideList())

	return cmd
}

func newCmdOverrideSet() *cobra.Command {
	var mode, branch string

	cmd := &cobra.Command{
		Use:   "set <addon>",
		Short: "Set an update policy override for an addon",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runOverrideSet(args[0], mode, branch)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Update mode (release, branch)")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch to track (implies branch mode unless --mode is given)")

	return cmd
}

func newCmdOverrideClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <addon>",
		Short: "Remove an addon's override, restoring the catalog default",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runOverrideClear(args[0])
		},
	}
}

func newCmdOverrideList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configured overrides",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runOverrideList()
		},
	}
}

func runOverrideSet(name, mode, branch string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	defs, err := catalog.List(config.CatalogPath())
	if err != nil {
		return err
	}
	def, ok := catalog.Find(defs, name)
	if !ok {
		return fmt.Errorf("addon %q is not in the catalog", name)
	}

	if mode == "" && branch == "" {
		return fmt.Errorf("nothing to override: pass --mode and/or --branch")
	}

	var ov model.AddonOverride
	if mode != "" {
		m := model.UpdateMode(mode)
		if !m.Valid() {
			return fmt.Errorf("invalid mode %q (must be release or branch)", mode)
		}
		ov.UpdateMode = &m
	}
	if branch != "" {
		ov.Branch = &branch
		// A branch override on a release-mode addon needs the mode switched
		// too, or resolution would ignore the branch.
		if ov.UpdateMode == nil && def.UpdateMode == model.ModeRelease {
			m := model.ModeBranch
			ov.UpdateMode = &m
		}
	}

	if err := cfg.SetOverride(def.LocalName, ov); err != nil {
		return err
	}

	fmt.Printf("Override set for %s: %s\n", def.NiceName, describeOverride(def, ov))
	return nil
}

func runOverrideClear(name string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if _, ok := cfg.AddonOverrides[name]; !ok {
		fmt.Printf("No override configured for %s.\n", name)
		return nil
	}

	if err := cfg.ClearOverride(name); err != nil {
		return err
	}
	fmt.Printf("Override cleared for %s.\n", name)
	return nil
}

func runOverrideList() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if len(cfg.AddonOverrides) == 0 {
		fmt.Println("No overrides configured.")
		return nil
	}

	defs, err := catalog.List(config.CatalogPath())
	if err != nil {
		return err
	}

	for name, ov := range cfg.AddonOverrides {
		def, ok := catalog.Find(defs, name)
		if !ok {
			fmt.Printf("  %s: (not in catalog)\n", name)
			continue
		}
		fmt.Printf("  %s: %s\n", name, describeOverride(def, ov))
	}
	return nil
}

// describeOverride renders the effective policy an override produces.
func describeOverride(def model.AddonDefinition, ov model.AddonOverride) string {
	mode := def.UpdateMode
	if ov.UpdateMode != nil {
		mode = *ov.UpdateMode
	}
	if mode == model.ModeRelease {
		return "track releases"
	}

	branch := def.Branch
	if ov.Branch != nil {
		branch = *ov.Branch
	}
	return fmt.Sprintf("track branch %q", branch)
}
