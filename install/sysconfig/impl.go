package sysconfig

import (
	"fmt"
	"time"

	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/lib/constants"
	"github.com/osprey-linux/installer/lib/format"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

func newConfigurator(options Options, r runner.Runner,
	logger log.DebugLogger) *Configurator {
	if options.MountPoint == "" {
		options.MountPoint = constants.DefaultMountPoint
	}
	if options.SysfsDirectory == "" {
		options.SysfsDirectory = constants.DefaultSysfsDirectory
	}
	if options.TemplateDirectory == "" {
		options.TemplateDirectory = constants.DefaultTemplateDirectory
	}
	return &Configurator{options: options, runner: r, logger: logger}
}

func (c *Configurator) configure(installPlan *plan.Plan) error {
	startTime := time.Now()
	if err := c.configureLocale(installPlan); err != nil {
		return err
	}
	if err := c.configureIdentity(installPlan); err != nil {
		return err
	}
	if err := c.createAccounts(installPlan); err != nil {
		return err
	}
	c.enableServices(installPlan)
	c.configureFirewall()
	c.configurePerformance(installPlan)
	if err := c.writeFileSystemTable(); err != nil {
		return err
	}
	c.applyTheme(installPlan)
	if installPlan.MinimalFootprint {
		c.stripFootprint(installPlan)
	}
	c.logger.Printf("configured %s in %s (%d warnings)\n",
		c.options.MountPoint, format.Duration(time.Since(startTime)),
		len(c.warnings))
	return nil
}

// warn records a non-fatal problem for the final report and logs it.
func (c *Configurator) warn(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	c.warnings = append(c.warnings, message)
	c.logger.Printf("warning: %s\n", message)
}
