/*
Package bootloader installs GRUB into the target, firmware-appropriately,
and generates its configuration. Every failure here is fatal: a system
without a bootloader did not get installed.
*/
package bootloader

import (
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

type Options struct {
	MountPoint string // Default: "/mnt".
}

type Installer struct {
	options Options
	runner  runner.Runner
	logger  log.DebugLogger
}

// New will create an Installer.
func New(options Options, r runner.Runner, logger log.DebugLogger) *Installer {
	return newInstaller(options, r, logger)
}

// Install will install the bootloader inside the target: under UEFI into
// the EFI system partition mounted at /boot, under legacy BIOS into the
// master boot record of the specified device.
func (i *Installer) Install(device string, uefi bool) error {
	return i.install(device, uefi)
}
