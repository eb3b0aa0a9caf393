package plan

import (
	"fmt"
	"os"

	"github.com/osprey-linux/installer/lib/prompt"
	"gopkg.in/yaml.v3"
)

func loadAnswers(filename string) (*Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("error parsing answers file: %s", err)
	}
	if p.MirrorMode == "" {
		p.MirrorMode = MirrorAuto
	}
	return &p, nil
}

func (p *Plan) confirmTarget(prompter prompt.Prompter) error {
	first, err := prompter.ReadString(
		"Type the target device path to confirm (ALL DATA WILL BE ERASED)",
		"")
	if err != nil {
		return err
	}
	second, err := prompter.ReadString("Retype the target device path", "")
	if err != nil {
		return err
	}
	if first != p.TargetDevice || second != first {
		return fmt.Errorf("device confirmation mismatch for: %s",
			p.TargetDevice)
	}
	p.confirmed = true
	return nil
}

func (p *Plan) packageSets() []PackageSet {
	sets := []PackageSet{
		{Name: "base", Packages: basePackages(p.UEFI)},
		{Name: "desktop", Packages: desktopPackages(p.DesktopVariant)},
		{Name: "theme", Packages: themePackages()},
	}
	if vm := vmPackages(p.VMVariant); len(vm) > 0 {
		sets = append(sets, PackageSet{Name: "vm-guest", Packages: vm})
	}
	if p.GamingProfile {
		sets = append(sets, PackageSet{Name: "gaming",
			Packages: gamingPackages()})
	}
	return sets
}

func (p *Plan) validate() error {
	switch {
	case p.TargetDevice == "":
		return fmt.Errorf("no target device")
	case p.AccountName == "":
		return fmt.Errorf("no account name")
	case p.AccountSecret == "":
		return fmt.Errorf("no account credential")
	case p.Locale == "":
		return fmt.Errorf("no locale")
	case p.KeyboardLayout == "":
		return fmt.Errorf("no keyboard layout")
	case p.Timezone == "":
		return fmt.Errorf("no timezone")
	case p.Hostname == "":
		return fmt.Errorf("no hostname")
	case p.DesktopVariant == "":
		return fmt.Errorf("no desktop variant")
	}
	if !validVariant(p.DesktopVariant, DesktopVariants()) {
		return fmt.Errorf("unknown desktop variant: %s", p.DesktopVariant)
	}
	if p.VMVariant != "" && !validVariant(p.VMVariant, VMVariants()) {
		return fmt.Errorf("unknown VM variant: %s", p.VMVariant)
	}
	switch p.MirrorMode {
	case MirrorAuto, MirrorRegion, MirrorSafe, MirrorStable:
	default:
		return fmt.Errorf("unknown mirror mode: %s", p.MirrorMode)
	}
	return nil
}

func validVariant(value string, variants []string) bool {
	for _, variant := range variants {
		if value == variant {
			return true
		}
	}
	return false
}
