/*
Package provision performs the bulk package install into the mounted staging
tree. It prepares the host (clock sync, stale lock removal and, on
low-memory machines, a temporary swap file sized by the free space on the
target), then bootstraps the target. A failed
bootstrap gets exactly one retry against the fallback package source with
download concurrency reduced and the signing keyring refreshed; a second
failure is fatal and surfaces the tail of the tool output.
*/
package provision

import (
	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

// Attempt records the outcome of one bootstrap attempt, for reporting.
type Attempt struct {
	Error      string   `json:"error,omitempty"`
	Fallback   bool     `json:"fallback"` // Fallback source was in effect.
	OutputTail []string `json:"outputTail,omitempty"`
	Succeeded  bool     `json:"succeeded"`
}

type Options struct {
	MirrorlistFile string // Default: "/etc/pacman.d/mirrorlist".
	MountPoint     string // Default: "/mnt".
	PacmanConfFile string // Default: "/etc/pacman.conf".
	PacmanLockFile string // Default: "/var/lib/pacman/db.lck".
	SafeProfile    bool   // Run the bootstrap at minimum CPU/IO priority.
}

type Provisioner struct {
	options    Options
	runner     runner.Runner
	logger     log.DebugLogger
	statFsFunc func(path string) (freeKiB uint64, err error)
	attempts   []Attempt
	swapFile   string
}

// New will create a Provisioner.
func New(options Options, r runner.Runner,
	logger log.DebugLogger) *Provisioner {
	return newProvisioner(options, r, logger)
}

// Attempts will return a record of every bootstrap attempt made, in order.
func (p *Provisioner) Attempts() []Attempt {
	return p.attempts
}

// Provision will install the package sets for the specified plan into the
// staging tree. The temporary swap file (if one was created) is removed
// before returning, whether or not provisioning succeeded.
func (p *Provisioner) Provision(installPlan *plan.Plan) error {
	return p.provision(installPlan)
}
