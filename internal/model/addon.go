// Package model defines the core data types shared across the addon
// synchronization engine.
package model

// UpdateMode selects how an addon tracks its upstream repository.
type UpdateMode string

const (
	// ModeRelease tracks the latest published release tag.
	ModeRelease UpdateMode = "release"
	// ModeBranch tracks the head of a named branch.
	ModeBranch UpdateMode = "branch"
)

// Valid reports whether the mode is one of the known values.
func (m UpdateMode) Valid() bool {
	return m == ModeRelease || m == ModeBranch
}

// Display returns a human-readable mode name.
func (m UpdateMode) Display() string {
	switch m {
	case ModeRelease:
		return "Release"
	case ModeBranch:
		return "Branch"
	default:
		return string(m)
	}
}

// AddonDefinition is one catalog entry: identity, upstream coordinates and
// the default update policy. Definitions are immutable once loaded.
type AddonDefinition struct {
	LocalName   string     `yaml:"local_name" json:"local_name"`
	NiceName    string     `yaml:"nice_name" json:"nice_name"`
	Owner       string     `yaml:"github_owner" json:"github_owner"`
	Repo        string     `yaml:"github_repo" json:"github_repo"`
	Description string     `yaml:"description" json:"description"`
	UpdateMode  UpdateMode `yaml:"update_mode" json:"update_mode"`
	Branch      string     `yaml:"branch,omitempty" json:"branch,omitempty"`
}

// AddonOverride is a user-set per-addon policy. Nil fields fall back to the
// catalog definition.
type AddonOverride struct {
	UpdateMode *UpdateMode `yaml:"update_mode,omitempty" json:"update_mode,omitempty"`
	Branch     *string     `yaml:"branch,omitempty" json:"branch,omitempty"`
}

// ResolvedPolicy is the effective update policy for one addon after
// overrides have been applied on top of the catalog default.
type ResolvedPolicy struct {
	Mode   UpdateMode
	Branch string
}

// AddonInfo is the observed local installation of one addon. Rebuilt on
// every inventory scan; never persisted.
type AddonInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Path    string `json:"path"`
}

// AddonState is the reconciliation outcome for one addon.
type AddonState string

const (
	StateChecking        AddonState = "checking"
	StateNotInstalled    AddonState = "not-installed"
	StateUpToDate        AddonState = "up-to-date"
	StateUpdateAvailable AddonState = "update-available"
	StateError           AddonState = "error"
)

// Display returns a human-readable state name.
func (s AddonState) Display() string {
	switch s {
	case StateChecking:
		return "Checking"
	case StateNotInstalled:
		return "Not installed"
	case StateUpToDate:
		return "Up to date"
	case StateUpdateAvailable:
		return "Update available"
	case StateError:
		return "Error"
	default:
		return string(s)
	}
}

// AddonStatus joins one catalog definition with the local inventory fact and
// the resolved remote version. One per catalog entry per reconciliation
// pass, in catalog order.
type AddonStatus struct {
	Definition    AddonDefinition `json:"definition"`
	LocalInfo     *AddonInfo      `json:"local_info,omitempty"`
	RemoteVersion string          `json:"remote_version,omitempty"`

	IsInstalled     bool       `json:"is_installed"`
	UpdateAvailable bool       `json:"update_available"`
	State           AddonState `json:"status"`
	Err             string     `json:"error,omitempty"`
}

// Name returns the stable addon identity used for dedup and inventory keys.
func (s *AddonStatus) Name() string {
	return s.Definition.LocalName
}
