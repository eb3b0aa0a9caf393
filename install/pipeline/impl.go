package pipeline

import (
	"fmt"
	"time"

	"github.com/osprey-linux/installer/install/bootloader"
	"github.com/osprey-linux/installer/install/mirrors"
	"github.com/osprey-linux/installer/install/partition"
	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/install/provision"
	"github.com/osprey-linux/installer/install/reclaim"
	"github.com/osprey-linux/installer/install/report"
	"github.com/osprey-linux/installer/install/sysconfig"
	"github.com/osprey-linux/installer/lib/constants"
	"github.com/osprey-linux/installer/lib/format"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

func newPipeline(options Options, r runner.Runner,
	actionLog *report.ActionLog, logger log.DebugLogger) *Pipeline {
	if options.MountPoint == "" {
		options.MountPoint = constants.DefaultMountPoint
	}
	metricsOnce.Do(setupMetrics)
	return &Pipeline{
		options:   options,
		runner:    r,
		logger:    logger,
		actionLog: actionLog,
	}
}

// runStage wraps one stage with action-log records and stage timing.
func (p *Pipeline) runStage(stage, action string, stageFunc func() error) error {
	p.logger.Printf("stage %s: %s\n", stage, action)
	startTime := time.Now()
	err := stageFunc()
	recordStageTime(stage, time.Since(startTime))
	p.actionLog.Record(stage, action, err)
	if err != nil {
		return fmt.Errorf("stage %s: %s", stage, err)
	}
	return nil
}

func (p *Pipeline) run(installPlan *plan.Plan) (*report.Summary, error) {
	if !installPlan.Confirmed() {
		return nil, fmt.Errorf("plan was not confirmed: refusing to install")
	}
	if err := installPlan.Validate(); err != nil {
		return nil, err
	}
	startTime := time.Now()
	device := installPlan.TargetDevice
	err := p.runStage("reclaim", "release "+device, func() error {
		reclaimer := reclaim.New(reclaim.Options{
			DevDirectory:  p.options.DevDirectory,
			MountPoint:    p.options.MountPoint,
			ProcDirectory: p.options.ProcDirectory,
		}, p.runner, p.logger)
		return reclaimer.Reclaim(device)
	})
	if err != nil {
		return nil, err
	}
	err = p.runStage("partition", "partition "+device, func() error {
		partitioner := partition.New(partition.Options{
			MountPoint:     p.options.MountPoint,
			SysfsDirectory: p.options.SysfsDirectory,
		}, p.runner, p.logger)
		_, err := partitioner.Partition(device, installPlan.UEFI)
		return err
	})
	if err != nil {
		return nil, err
	}
	var mirrorDescription string
	p.runStage("mirrors", "resolve "+string(installPlan.MirrorMode),
		func() error {
			resolver := mirrors.New(mirrors.Options{
				MirrorlistFile: p.options.MirrorlistFile,
				PacmanConfFile: p.options.PacmanConfFile,
			}, p.runner, p.logger)
			mirrorDescription = resolver.Resolve(installPlan.MirrorMode)
			return nil
		})
	provisioner := provision.New(provision.Options{
		MirrorlistFile: p.options.MirrorlistFile,
		MountPoint:     p.options.MountPoint,
		PacmanConfFile: p.options.PacmanConfFile,
		SafeProfile:    installPlan.MirrorMode == plan.MirrorSafe,
	}, p.runner, p.logger)
	err = p.runStage("provision", "install packages", func() error {
		return provisioner.Provision(installPlan)
	})
	if err != nil {
		return nil, err
	}
	configurator := sysconfig.New(sysconfig.Options{
		MountPoint:        p.options.MountPoint,
		SysfsDirectory:    p.options.SysfsDirectory,
		TemplateDirectory: p.options.TemplateDirectory,
	}, p.runner, p.logger)
	err = p.runStage("configure", "configure target", func() error {
		return configurator.Configure(installPlan)
	})
	if err != nil {
		return nil, err
	}
	err = p.runStage("bootloader", "install bootloader", func() error {
		installer := bootloader.New(bootloader.Options{
			MountPoint: p.options.MountPoint,
		}, p.runner, p.logger)
		return installer.Install(device, installPlan.UEFI)
	})
	if err != nil {
		return nil, err
	}
	summary := &report.Summary{
		AccountName:       installPlan.AccountName,
		Attempts:          provisioner.Attempts(),
		DesktopVariant:    installPlan.DesktopVariant,
		Duration:          format.Duration(time.Since(startTime)),
		FinishedAt:        time.Now(),
		Hostname:          installPlan.Hostname,
		KeyboardLayout:    installPlan.KeyboardLayout,
		Locale:            installPlan.Locale,
		LogDirectory:      p.actionLog.LogDirectory(),
		MirrorDescription: mirrorDescription,
		RunID:             p.actionLog.RunID(),
		TargetDevice:      device,
		Timezone:          installPlan.Timezone,
		UEFI:              installPlan.UEFI,
		Warnings:          configurator.Warnings(),
	}
	if err := p.actionLog.CopyInto(p.options.MountPoint); err != nil {
		p.logger.Printf("error copying logs into target: %s\n", err)
	}
	if err := p.actionLog.WriteSummary(summary,
		p.options.MountPoint); err != nil {
		p.logger.Printf("error writing summary: %s\n", err)
	}
	return summary, nil
}
