package sysconfig

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/lib/fsutil"
)

const (
	themeName  = "Arc-Dark"
	themeIcons = "Papirus-Dark"
	accent     = "#5294e2"
)

const builtinGtkSettings = `[Settings]
gtk-theme-name = @THEME@
gtk-icon-theme-name = @ICONS@
gtk-font-name = DejaVu Sans 10
`

const builtinGreeterConfig = `[greeter]
theme-name = @THEME@
icon-theme-name = @ICONS@
keyboard = @KEYMAP@
`

// applyTheme renders the theme template tree into the target, substituting
// plan-specific tokens. Template paths are relative to the target root. A
// missing or unreadable template tree degrades to a small built-in set:
// theming never fails an install.
func (c *Configurator) applyTheme(installPlan *plan.Plan) {
	replacer := strings.NewReplacer(
		"@THEME@", themeName,
		"@ICONS@", themeIcons,
		"@ACCENT@", accent,
		"@USER@", installPlan.AccountName,
		"@KEYMAP@", installPlan.KeyboardLayout)
	if _, err := os.Stat(c.options.TemplateDirectory); err != nil {
		c.warn("theme templates unavailable, using built-in defaults: %s",
			err)
		c.applyBuiltinTheme(replacer)
		return
	}
	err := filepath.WalkDir(c.options.TemplateDirectory,
		func(path string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return err
			}
			relPath, err := filepath.Rel(c.options.TemplateDirectory, path)
			if err != nil {
				return err
			}
			return c.renderTemplate(path, relPath, replacer)
		})
	if err != nil {
		c.warn("theme templates unavailable, using built-in defaults: %s",
			err)
		c.applyBuiltinTheme(replacer)
	}
}

func (c *Configurator) renderTemplate(path, relPath string,
	replacer *strings.Replacer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	destination := filepath.Join(c.options.MountPoint, relPath)
	if err := os.MkdirAll(filepath.Dir(destination),
		fsutil.DirPerms); err != nil {
		return err
	}
	err = os.WriteFile(destination, []byte(replacer.Replace(string(data))),
		fsutil.PublicFilePerms)
	if err != nil {
		return err
	}
	c.logger.Debugf(1, "rendered theme file: %s\n", relPath)
	return nil
}

func (c *Configurator) applyBuiltinTheme(replacer *strings.Replacer) {
	builtins := map[string]string{
		"etc/skel/.config/gtk-3.0/settings.ini": builtinGtkSettings,
		"etc/lightdm/lightdm-gtk-greeter.conf":  builtinGreeterConfig,
	}
	for relPath, content := range builtins {
		destination := filepath.Join(c.options.MountPoint, relPath)
		if err := os.MkdirAll(filepath.Dir(destination),
			fsutil.DirPerms); err != nil {
			c.warn("could not write built-in theme: %s", err)
			continue
		}
		err := os.WriteFile(destination,
			[]byte(replacer.Replace(content)), fsutil.PublicFilePerms)
		if err != nil {
			c.warn("could not write built-in theme: %s", err)
		}
	}
}
