package bootloader

import (
	"fmt"
	"time"

	"github.com/osprey-linux/installer/lib/constants"
	"github.com/osprey-linux/installer/lib/format"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

func newInstaller(options Options, r runner.Runner,
	logger log.DebugLogger) *Installer {
	if options.MountPoint == "" {
		options.MountPoint = constants.DefaultMountPoint
	}
	return &Installer{options: options, runner: r, logger: logger}
}

func (i *Installer) install(device string, uefi bool) error {
	startTime := time.Now()
	var args []string
	if uefi {
		args = []string{"--target=x86_64-efi", "--efi-directory=/boot",
			"--bootloader-id=GRUB"}
	} else {
		args = []string{"--target=i386-pc", device}
	}
	if _, err := i.runner.RunChroot(i.options.MountPoint, "grub-install",
		args...); err != nil {
		return fmt.Errorf("error installing bootloader: %s", err)
	}
	if _, err := i.runner.RunChroot(i.options.MountPoint, "grub-mkconfig",
		"-o", "/boot/grub/grub.cfg"); err != nil {
		return fmt.Errorf("error generating bootloader configuration: %s",
			err)
	}
	i.logger.Printf("installed bootloader in %s\n",
		format.Duration(time.Since(startTime)))
	return nil
}
