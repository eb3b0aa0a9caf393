/*
Package sysconfig configures the provisioned target tree: locale, identity,
accounts, services, firewall, performance tuning, file-system table, desktop
theming and optional footprint reduction. Configuration runs in a fixed
order. Failures that would leave the installed system unbootable or
unusable (file-system table, locale, accounts) are fatal; the rest degrade
to warnings which are collected for the final report.
*/
package sysconfig

import (
	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

type Options struct {
	MountPoint        string // Default: "/mnt".
	SysfsDirectory    string // Default: "/sys".
	TemplateDirectory string // Theme templates. Default under /usr/share.
}

type Configurator struct {
	options  Options
	runner   runner.Runner
	logger   log.DebugLogger
	warnings []string
}

// New will create a Configurator.
func New(options Options, r runner.Runner,
	logger log.DebugLogger) *Configurator {
	return newConfigurator(options, r, logger)
}

// Configure will apply the full system configuration for the specified plan
// to the mounted target tree. A nil return does not mean a warning-free
// run: check Warnings.
func (c *Configurator) Configure(installPlan *plan.Plan) error {
	return c.configure(installPlan)
}

// Warnings will return the non-fatal problems encountered, in order.
func (c *Configurator) Warnings() []string {
	return c.warnings
}
