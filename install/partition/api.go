/*
Package partition creates a firmware-appropriate partition layout on a
reclaimed block device, formats it and mounts it at the staging mount point.
There is no recovery path mid-partitioning: once the device has been wiped,
any format or mount failure is fatal.
*/
package partition

import (
	"time"

	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

const (
	BootFsLabel = "EFI"
	RootFsLabel = "rootfs"
)

// Layout describes the partitions produced on the target device.
type Layout struct {
	BootPartition string // Empty under legacy BIOS.
	RootPartition string
}

type Options struct {
	MountPoint       string        // Default: "/mnt".
	PartitionTimeout time.Duration // Wait for partition nodes. Default: 5s.
	SysfsDirectory   string        // Default: "/sys".
}

type Partitioner struct {
	options Options
	runner  runner.Runner
	logger  log.DebugLogger
}

// New will create a Partitioner.
func New(options Options, r runner.Runner,
	logger log.DebugLogger) *Partitioner {
	return newPartitioner(options, r, logger)
}

// Partition will wipe the specified device and create, format and mount the
// layout for the specified firmware mode: under UEFI a 512 MiB EFI system
// partition (mounted under <staging>/boot) plus an ext4 root spanning the
// remainder; under legacy BIOS a single ext4 root partition.
func (p *Partitioner) Partition(device string, uefi bool) (*Layout, error) {
	return p.partition(device, uefi)
}
