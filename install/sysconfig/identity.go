package sysconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/lib/fsutil"
)

func (c *Configurator) configureIdentity(installPlan *plan.Plan) error {
	etcDir := filepath.Join(c.options.MountPoint, "etc")
	err := os.WriteFile(filepath.Join(etcDir, "hostname"),
		[]byte(installPlan.Hostname+"\n"), fsutil.PublicFilePerms)
	if err != nil {
		return err
	}
	hosts := fmt.Sprintf(
		"127.0.0.1\tlocalhost\n::1\t\tlocalhost\n127.0.1.1\t%s.localdomain\t%s\n",
		installPlan.Hostname, installPlan.Hostname)
	err = os.WriteFile(filepath.Join(etcDir, "hosts"), []byte(hosts),
		fsutil.PublicFilePerms)
	if err != nil {
		return err
	}
	// The target must not inherit the install medium's machine identity.
	if _, err := c.runner.RunChroot(c.options.MountPoint,
		"systemd-machine-id-setup"); err != nil {
		c.warn("could not regenerate machine identity: %s", err)
	}
	return nil
}
