package main

import (
	"fmt"

	"github.com/osprey-linux/installer/install/hwprobe"
	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/lib/format"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/prompt"
)

// Below this much memory the target gets compressed-memory swap.
const lowMemoryThresholdMiB = 2048

// collectPlan builds the installation plan, either interactively or
// pre-seeded from an answers file. The typed device confirmation and the
// account secret are always collected interactively.
func collectPlan(prompter prompt.Prompter, info *hwprobe.Info,
	logger log.DebugLogger) (*plan.Plan, error) {
	var installPlan *plan.Plan
	var err error
	if *answersFile != "" {
		installPlan, err = plan.LoadAnswers(*answersFile)
		if err != nil {
			return nil, err
		}
		logger.Printf("pre-seeded plan from: %s\n", *answersFile)
	} else {
		installPlan = &plan.Plan{MirrorMode: plan.MirrorAuto}
	}
	installPlan.UEFI = info.UEFI
	installPlan.LowMemory = info.MemTotalMiB < lowMemoryThresholdMiB
	if installPlan.TargetDevice == "" {
		if err := chooseDevice(prompter, info, installPlan); err != nil {
			return nil, err
		}
	}
	if err := fillInteractive(prompter, installPlan); err != nil {
		return nil, err
	}
	if err := readSecret(prompter, installPlan); err != nil {
		return nil, err
	}
	if err := installPlan.Validate(); err != nil {
		return nil, err
	}
	if err := installPlan.ConfirmTarget(prompter); err != nil {
		return nil, err
	}
	return installPlan, nil
}

func chooseDevice(prompter prompt.Prompter, info *hwprobe.Info,
	installPlan *plan.Plan) error {
	choices := make([]string, 0, len(info.Devices))
	for _, device := range info.Devices {
		choices = append(choices, fmt.Sprintf("%s  %s  %s",
			device.DevPath, format.FormatBytes(device.Size), device.Model))
	}
	index, err := prompter.Choose("Select target device", choices)
	if err != nil {
		return err
	}
	installPlan.TargetDevice = info.Devices[index].DevPath
	return nil
}

func fillInteractive(prompter prompt.Prompter,
	installPlan *plan.Plan) error {
	var err error
	ask := func(prompt, defaultValue string, field *string) {
		if err != nil || *field != "" {
			return
		}
		*field, err = prompter.ReadString(prompt, defaultValue)
	}
	ask("Hostname", "osprey", &installPlan.Hostname)
	ask("Account name", "", &installPlan.AccountName)
	ask("Locale", "en_US.UTF-8", &installPlan.Locale)
	ask("Keyboard layout", "us", &installPlan.KeyboardLayout)
	ask("Timezone", "UTC", &installPlan.Timezone)
	if err != nil {
		return err
	}
	if installPlan.DesktopVariant == "" {
		variants := plan.DesktopVariants()
		index, err := prompter.Choose("Select desktop", variants)
		if err != nil {
			return err
		}
		installPlan.DesktopVariant = variants[index]
	}
	if installPlan.VMVariant == "" {
		variants := plan.VMVariants()
		index, err := prompter.Choose("Virtual machine guest tools",
			variants)
		if err != nil {
			return err
		}
		installPlan.VMVariant = variants[index]
	}
	if *answersFile == "" {
		modes := []string{string(plan.MirrorAuto), string(plan.MirrorStable),
			string(plan.MirrorRegion), string(plan.MirrorSafe)}
		index, err := prompter.Choose("Mirror selection mode", modes)
		if err != nil {
			return err
		}
		installPlan.MirrorMode = plan.MirrorMode(modes[index])
		if installPlan.EnableSSH, err = prompter.Confirm(
			"Enable remote SSH access"); err != nil {
			return err
		}
		if installPlan.GamingProfile, err = prompter.Confirm(
			"Apply gaming profile"); err != nil {
			return err
		}
		if installPlan.MinimalFootprint, err = prompter.Confirm(
			"Minimise disk footprint"); err != nil {
			return err
		}
	}
	return nil
}

// readSecret reads the account password twice and re-asks until both
// entries match. The same password is applied to root.
func readSecret(prompter prompt.Prompter, installPlan *plan.Plan) error {
	for {
		secret, err := prompter.ReadSecret("Account password")
		if err != nil {
			return err
		}
		again, err := prompter.ReadSecret("Repeat password")
		if err != nil {
			return err
		}
		if secret == again && secret != "" {
			installPlan.AccountSecret = secret
			return nil
		}
		fmt.Println("Passwords are empty or do not match, try again")
	}
}
