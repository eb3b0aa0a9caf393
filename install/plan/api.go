/*
Package plan holds the installation plan: the immutable record of all
operator and environment decisions collected before any destructive action
begins. A plan must be confirmed (target device typed twice identically)
before the pipeline will accept it; this is the single irreversible gate
before data-destructive calls.
*/
package plan

import (
	"github.com/osprey-linux/installer/lib/prompt"
)

type MirrorMode string

const (
	MirrorAuto   MirrorMode = "auto"
	MirrorRegion MirrorMode = "region"
	MirrorSafe   MirrorMode = "safe"
	MirrorStable MirrorMode = "stable"
)

// Plan records every decision driving the pipeline. It is built once and
// never mutated after confirmation: every component reads from it, none
// write back into it.
type Plan struct {
	AccountName      string     `yaml:"accountName"`
	AccountSecret    string     `yaml:"-"`
	DesktopVariant   string     `yaml:"desktopVariant"`
	EnableSSH        bool       `yaml:"enableSsh"`
	GamingProfile    bool       `yaml:"gamingProfile"`
	Hostname         string     `yaml:"hostname"`
	KeyboardLayout   string     `yaml:"keyboardLayout"`
	Locale           string     `yaml:"locale"`
	LowMemory        bool       `yaml:"lowMemory"`
	MinimalFootprint bool       `yaml:"minimalFootprint"`
	MirrorMode       MirrorMode `yaml:"mirrorMode"`
	TargetDevice     string     `yaml:"targetDevice"`
	Timezone         string     `yaml:"timezone"`
	UEFI             bool       `yaml:"-"`
	VMVariant        string     `yaml:"vmVariant"`

	confirmed bool
}

// PackageSet is a named, ordered collection of package identifiers.
// Duplicates across sets are tolerated: the install tool deduplicates.
type PackageSet struct {
	Name     string
	Packages []string
}

// DesktopVariants lists the supported window-manager variants, in menu
// order.
func DesktopVariants() []string {
	return []string{"openbox", "i3", "xfce"}
}

// VMVariants lists the supported guest-tool variants, in menu order.
func VMVariants() []string {
	return []string{"none", "qemu", "virtualbox", "vmware"}
}

// LoadAnswers will pre-seed a plan from a YAML answers file. The account
// secret is never read from a file and the returned plan is not confirmed:
// the typed device confirmation is still required.
func LoadAnswers(filename string) (*Plan, error) {
	return loadAnswers(filename)
}

// ConfirmTarget enforces the typed-confirmation invariant: the operator
// must enter the target device path twice, identically, before the plan is
// considered confirmed. Any mismatch leaves the plan unconfirmed.
func (p *Plan) ConfirmTarget(prompter prompt.Prompter) error {
	return p.confirmTarget(prompter)
}

// Confirmed returns true once ConfirmTarget has succeeded.
func (p *Plan) Confirmed() bool {
	return p.confirmed
}

// PackageSets assembles the package sets to provision, in install order:
// base, desktop, theme, then the optional VM-guest and gaming sets.
func (p *Plan) PackageSets() []PackageSet {
	return p.packageSets()
}

// Validate checks that every required field has been collected.
func (p *Plan) Validate() error {
	return p.validate()
}
