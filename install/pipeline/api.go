/*
Package pipeline sequences the installation stages: reclaim, partition,
mirror resolution, provisioning, system configuration and bootloader
install. Stages run strictly in order, each is recorded in the action log
and timed in metrics, and the pipeline refuses to start from an unconfirmed
plan.
*/
package pipeline

import (
	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/install/report"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

type Options struct {
	DevDirectory      string // Default: "/dev".
	MirrorlistFile    string // Default: "/etc/pacman.d/mirrorlist".
	MountPoint        string // Default: "/mnt".
	PacmanConfFile    string // Default: "/etc/pacman.conf".
	ProcDirectory     string // Default: "/proc".
	SysfsDirectory    string // Default: "/sys".
	TemplateDirectory string // Default under /usr/share.
}

type Pipeline struct {
	options   Options
	runner    runner.Runner
	logger    log.DebugLogger
	actionLog *report.ActionLog
}

// New will create a Pipeline.
func New(options Options, r runner.Runner, actionLog *report.ActionLog,
	logger log.DebugLogger) *Pipeline {
	return newPipeline(options, r, actionLog, logger)
}

// Run will execute every stage for the specified confirmed plan and return
// the summary of the run. The plan must have passed the typed device
// confirmation, else Run refuses before touching anything.
func (p *Pipeline) Run(installPlan *plan.Plan) (*report.Summary, error) {
	return p.run(installPlan)
}
