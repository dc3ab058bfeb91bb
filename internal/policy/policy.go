// Package policy resolves the effective update policy for an addon by
// layering user overrides on top of catalog defaults.
package policy

import (
	"errors"
	"fmt"

	"github.com/wowsmith/addonsync/internal/model"
)

// ErrInvalidPolicy is returned when the resolved policy is unusable, e.g.
// branch mode with no branch name.
var ErrInvalidPolicy = errors.New("invalid update policy")

// Resolve computes the effective policy for one addon definition. Override
// fields shadow the matching definition fields independently: an override
// that only sets the branch keeps the catalog's update mode, and vice versa.
func Resolve(def model.AddonDefinition, overrides map[string]model.AddonOverride) (model.ResolvedPolicy, error) {
	resolved := model.ResolvedPolicy{
		Mode:   def.UpdateMode,
		Branch: def.Branch,
	}

	if ov, ok := overrides[def.LocalName]; ok {
		if ov.UpdateMode != nil {
			resolved.Mode = *ov.UpdateMode
		}
		if ov.Branch != nil {
			resolved.Branch = *ov.Branch
		}
	}

	if !resolved.Mode.Valid() {
		return model.ResolvedPolicy{}, fmt.Errorf("%w: unknown update mode %q for %s", ErrInvalidPolicy, resolved.Mode, def.LocalName)
	}

	if resolved.Mode == model.ModeBranch && resolved.Branch == "" {
		return model.ResolvedPolicy{}, fmt.Errorf("%w: branch mode requires a branch name for %s", ErrInvalidPolicy, def.LocalName)
	}

	return resolved, nil
}
