package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/osprey-linux/installer/install/hwprobe"
	"github.com/osprey-linux/installer/install/pipeline"
	"github.com/osprey-linux/installer/install/report"
	"github.com/osprey-linux/installer/lib/format"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/prompt"
	"github.com/osprey-linux/installer/lib/runner"
)

const connectivityProbeHost = "geo.mirror.pkgbuild.com"

func installSubcommand(args []string, logger log.DebugLogger) error {
	if err := installCmd(logger); err != nil {
		return fmt.Errorf("error installing: %s", err)
	}
	return nil
}

func installCmd(logger log.DebugLogger) error {
	if os.Geteuid() != 0 && !*dryRun {
		return fmt.Errorf("must run as root (or use -dryRun)")
	}
	if _, err := net.LookupHost(connectivityProbeHost); err != nil {
		return fmt.Errorf("no network connectivity: %s", err)
	}
	info, err := hwprobe.Probe(hwprobe.Options{
		DevDirectory:   *devDirectory,
		ProcDirectory:  *procDirectory,
		SysfsDirectory: *sysfsDirectory,
	}, logger)
	if err != nil {
		return err
	}
	prompter := prompt.NewTerminalPrompter(os.Stdin)
	installPlan, err := collectPlan(prompter, info, logger)
	if err != nil {
		return err
	}
	actionLog, err := report.New(report.Options{
		LogDirectory: *logDirectory,
	}, logger)
	if err != nil {
		return err
	}
	defer actionLog.Close()
	installerRunner := runner.New(runner.Options{DryRun: *dryRun}, logger)
	installPipeline := pipeline.New(pipeline.Options{
		DevDirectory:      *devDirectory,
		MirrorlistFile:    *mirrorlistFile,
		MountPoint:        *mountPoint,
		PacmanConfFile:    *pacmanConfFile,
		ProcDirectory:     *procDirectory,
		SysfsDirectory:    *sysfsDirectory,
		TemplateDirectory: *templateDirectory,
	}, installerRunner, actionLog, logger)
	summary, err := installPipeline.Run(installPlan)
	if err != nil {
		return err
	}
	report.PrintSummary(os.Stdout, summary)
	logger.Printf("total session time: %s\n",
		format.Duration(time.Since(processStartTime)))
	return nil
}
