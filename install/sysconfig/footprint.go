package sysconfig

import (
	"os"
	"path/filepath"

	"github.com/osprey-linux/installer/install/plan"
)

// stripFootprint removes documentation and unused translations from the
// target. Purely space-saving and entirely best-effort.
func (c *Configurator) stripFootprint(installPlan *plan.Plan) {
	shareDir := filepath.Join(c.options.MountPoint, "usr", "share")
	for _, name := range []string{"man", "doc", "info", "gtk-doc"} {
		if err := os.RemoveAll(filepath.Join(shareDir, name)); err != nil {
			c.warn("could not remove %s: %s", name, err)
		}
	}
	c.stripLocales(filepath.Join(shareDir, "locale"),
		baseLanguage(installPlan.Locale))
}

// stripLocales removes every translation directory except those for the
// selected language (any regional variant of it survives). Untranslated
// messages fall back to the tools' built-in strings.
func (c *Configurator) stripLocales(localeDir, language string) {
	entries, err := os.ReadDir(localeDir)
	if err != nil {
		if !os.IsNotExist(err) {
			c.warn("could not enumerate translations: %s", err)
		}
		return
	}
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if baseLanguage(name) == language {
			continue
		}
		if err := os.RemoveAll(filepath.Join(localeDir, name)); err != nil {
			c.warn("could not remove translation %s: %s", name, err)
		} else {
			removed++
		}
	}
	c.logger.Debugf(0, "removed %d unused translations\n", removed)
}

// baseLanguage extracts the language code from a locale name such as
// "de_DE.UTF-8" or a translation directory such as "de_DE@euro".
func baseLanguage(locale string) string {
	for index, char := range locale {
		if char == '_' || char == '.' || char == '@' {
			return locale[:index]
		}
	}
	return locale
}
