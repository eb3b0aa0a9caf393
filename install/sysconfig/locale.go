package sysconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/lib/fsutil"
)

// configureLocale generates the selected locale and sets the system
// language, console keymap and timezone. A system without a generated
// locale misbehaves in too many subtle ways, so failures here are fatal.
func (c *Configurator) configureLocale(installPlan *plan.Plan) error {
	if err := c.enableLocale(installPlan.Locale); err != nil {
		return err
	}
	if _, err := c.runner.RunChroot(c.options.MountPoint,
		"locale-gen"); err != nil {
		return fmt.Errorf("error generating locale: %s", err)
	}
	etcDir := filepath.Join(c.options.MountPoint, "etc")
	err := os.WriteFile(filepath.Join(etcDir, "locale.conf"),
		[]byte("LANG="+installPlan.Locale+"\n"), fsutil.PublicFilePerms)
	if err != nil {
		return err
	}
	err = os.WriteFile(filepath.Join(etcDir, "vconsole.conf"),
		[]byte("KEYMAP="+installPlan.KeyboardLayout+"\n"),
		fsutil.PublicFilePerms)
	if err != nil {
		return err
	}
	return c.setTimezone(installPlan.Timezone)
}

// enableLocale uncomments the locale in the generation list, appending it
// if the stock list does not carry it.
func (c *Configurator) enableLocale(locale string) error {
	filename := filepath.Join(c.options.MountPoint, "etc", "locale.gen")
	lines, err := fsutil.ReadFileLines(filename)
	if err != nil {
		return err
	}
	entry := locale + " UTF-8"
	found := false
	for index, line := range lines {
		trimmed := strings.TrimSpace(strings.TrimPrefix(
			strings.TrimSpace(line), "#"))
		if trimmed == entry || trimmed == locale {
			lines[index] = entry
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, entry)
	}
	return os.WriteFile(filename,
		[]byte(strings.Join(lines, "\n")+"\n"), fsutil.PublicFilePerms)
}

func (c *Configurator) setTimezone(timezone string) error {
	_, err := c.runner.RunChroot(c.options.MountPoint, "ln", "-sf",
		filepath.Join("/usr/share/zoneinfo", timezone), "/etc/localtime")
	if err != nil {
		return fmt.Errorf("error setting timezone: %s", err)
	}
	if _, err := c.runner.RunChroot(c.options.MountPoint, "hwclock",
		"--systohc"); err != nil {
		c.warn("could not sync hardware clock: %s", err)
	}
	return nil
}
