package sysconfig

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/osprey-linux/installer/install/plan"
)

// enableServices enables the boot-time services the plan calls for. Every
// enable is independent and non-fatal: a missing unit file leaves a
// warning, not a broken install.
func (c *Configurator) enableServices(installPlan *plan.Plan) {
	services := []string{
		"NetworkManager.service",
		"systemd-timesyncd.service",
		"lightdm.service",
		"cups.service",
		"udisks2.service",
		"bluetooth.service",
	}
	if service := guestService(installPlan.VMVariant); service != "" {
		services = append(services, service)
	}
	if installPlan.EnableSSH {
		services = append(services, "sshd.service")
	}
	if !c.deviceIsRotational(installPlan.TargetDevice) {
		services = append(services, "fstrim.timer")
	}
	for _, service := range services {
		if _, err := c.runner.RunChroot(c.options.MountPoint, "systemctl",
			"enable", service); err != nil {
			c.warn("could not enable %s: %s", service, err)
		} else {
			c.logger.Debugf(1, "enabled service: %s\n", service)
		}
	}
	if !installPlan.EnableSSH {
		// Disable explicitly rather than relying on the preset.
		if _, err := c.runner.RunChroot(c.options.MountPoint, "systemctl",
			"disable", "sshd.service"); err != nil {
			c.logger.Debugf(0, "could not disable sshd: %s\n", err)
		}
	}
}

func guestService(vmVariant string) string {
	switch vmVariant {
	case "qemu":
		return "qemu-guest-agent.service"
	case "virtualbox":
		return "vboxservice.service"
	case "vmware":
		return "vmtoolsd.service"
	}
	return ""
}

// deviceIsRotational reports whether the target is spinning rust. Unknown
// means rotational: periodic trim is only scheduled when the kernel
// positively reports flash storage.
func (c *Configurator) deviceIsRotational(device string) bool {
	filename := filepath.Join(c.options.SysfsDirectory, "class", "block",
		filepath.Base(device), "queue", "rotational")
	data, err := os.ReadFile(filename)
	if err != nil {
		return true
	}
	return strings.TrimSpace(string(data)) != "0"
}

// configureFirewall sets a deny-inbound, allow-outbound default policy.
// Non-fatal: the firewall tightens a working system, it does not gate one.
func (c *Configurator) configureFirewall() {
	commands := [][]string{
		{"systemctl", "enable", "ufw.service"},
		{"ufw", "default", "deny", "incoming"},
		{"ufw", "default", "allow", "outgoing"},
		{"ufw", "--force", "enable"},
	}
	for _, command := range commands {
		if _, err := c.runner.RunChroot(c.options.MountPoint, command[0],
			command[1:]...); err != nil {
			c.warn("firewall: %s: %s", strings.Join(command, " "), err)
			return
		}
	}
}
