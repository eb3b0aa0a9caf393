/*
Package reclaim forcibly releases a target block device from any prior use
(mounts, swap, device-mapper layers, volume groups, software RAID) so that
it can be safely repartitioned. Destructive repartitioning on a busy device
silently fails or corrupts data, so every plausible layer of indirection is
unwound first.

Every sub-step is best-effort and individually non-fatal; only the final
partition-table re-read matters. Reclaiming an already-free device is a
no-op, not an error.
*/
package reclaim

import (
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

type Options struct {
	DevDirectory  string // Default: "/dev".
	MountPoint    string // Default: "/mnt".
	ProcDirectory string // Default: "/proc".
}

type Reclaimer struct {
	options Options
	runner  runner.Runner
	logger  log.DebugLogger
}

// New will create a Reclaimer.
func New(options Options, r runner.Runner, logger log.DebugLogger) *Reclaimer {
	return newReclaimer(options, r, logger)
}

// Reclaim will release the specified device. An error is returned only if
// the kernel still refuses to re-read the partition table after all layers
// have been unwound.
func (r *Reclaimer) Reclaim(device string) error {
	return r.reclaim(device)
}
