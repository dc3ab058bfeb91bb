package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wowsmith/addonsync/internal/gh"
	"github.com/wowsmith/addonsync/internal/log"
	"github.com/wowsmith/addonsync/internal/model"
	"github.com/wowsmith/addonsync/internal/policy"
)

// readmeExcerptLines caps how much of the repository README is shown.
const readmeExcerptLines = 20

// NewCmdInfo creates the info command.
func NewCmdInfo(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <addon>",
		Short: "Show details about a catalog addon",
		Long: `Shows the catalog entry, effective update policy, available branches,
and an excerpt of the repository README.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd, args[0], opts)
		},
	}

	cmd.Flags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug)")

	return cmd
}

func runInfo(cmd *cobra.Command, name string, opts *Options) error {
	ctx := cmd.Context()
	log.Initialize(opts.Verbosity, os.Stderr)

	a, err := newApp(opts)
	if err != nil {
		return err
	}

	targets, err := a.findAddons([]string{name}, false)
	if err != nil {
		return err
	}
	def := targets[0]

	fmt.Printf("%s (%s)\n", def.NiceName, def.LocalName)
	fmt.Printf("  Repository:  https://github.com/%s\n", gh.RepoSlug(def.Owner, def.Repo))
	if def.Description != "" {
		fmt.Printf("  Description: %s\n", def.Description)
	}

	pol, err := policy.Resolve(def, a.cfg.AddonOverrides)
	if err != nil {
		return err
	}
	if pol.Mode == model.ModeBranch {
		fmt.Printf("  Policy:      track branch %q", pol.Branch)
	} else {
		fmt.Printf("  Policy:      track releases")
	}
	if _, ok := a.cfg.AddonOverrides[def.LocalName]; ok {
		fmt.Print(" (override)")
	}
	fmt.Println()

	if version, err := a.resolver.Resolve(ctx, def, pol); err != nil {
		log.Warn("could not resolve latest version", "addon", def.LocalName, "error", err)
	} else {
		fmt.Printf("  Latest:      %s\n", version)
	}

	if branches, err := a.client.Branches(ctx, def.Owner, def.Repo); err == nil && len(branches) > 0 {
		fmt.Printf("  Branches:    %s\n", strings.Join(branches, ", "))
	}

	ref := ""
	if pol.Mode == model.ModeBranch {
		ref = pol.Branch
	}
	readme, err := a.client.Readme(ctx, def.Owner, def.Repo, ref)
	if err != nil {
		log.Debug("no README available", "addon", def.LocalName, "error", err)
		return nil
	}

	fmt.Println()
	lines := strings.Split(readme, "\n")
	if len(lines) > readmeExcerptLines {
		lines = lines[:readmeExcerptLines]
		lines = append(lines, "...")
	}
	fmt.Println(strings.Join(lines, "\n"))
	return nil
}
