package sysconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osprey-linux/installer/install/plan"
)

const wheelSudoers = "%wheel ALL=(ALL:ALL) ALL\n"

// createAccounts creates the operator account, sets both the account and
// root passwords (the root password mirrors the account password, which the
// final summary calls out) and grants wheel-group sudo. An installed system
// nobody can log into is useless: all failures here are fatal.
func (c *Configurator) createAccounts(installPlan *plan.Plan) error {
	_, err := c.runner.RunChroot(c.options.MountPoint, "useradd", "-m",
		"-G", "wheel,audio,video,input,storage", "-s", "/bin/bash",
		installPlan.AccountName)
	if err != nil {
		return fmt.Errorf("error creating account %s: %s",
			installPlan.AccountName, err)
	}
	for _, name := range []string{installPlan.AccountName, "root"} {
		input := name + ":" + installPlan.AccountSecret + "\n"
		if _, err := c.runner.RunChrootInput(c.options.MountPoint, input,
			"chpasswd"); err != nil {
			return fmt.Errorf("error setting password for %s: %s", name, err)
		}
	}
	filename := filepath.Join(c.options.MountPoint, "etc", "sudoers.d",
		"10-wheel")
	// Sudo refuses drop-ins with loose permissions.
	if err := os.WriteFile(filename, []byte(wheelSudoers), 0440); err != nil {
		return err
	}
	return nil
}
