/*
Package hwprobe detects the firmware mode, total memory and candidate
target block devices of the machine the installer is running on. Probing
has no side effects.
*/
package hwprobe

import (
	"github.com/osprey-linux/installer/lib/log"
)

// BlockDevice describes a non-removable block device suitable as an
// installation target.
type BlockDevice struct {
	DevPath string
	Model   string
	Name    string
	Size    uint64 // Bytes.
}

// Info is the result of a hardware probe.
type Info struct {
	Devices     []BlockDevice
	MemTotalMiB uint64
	UEFI        bool
}

type Options struct {
	DevDirectory     string // Default: "/dev".
	EfiVarsDirectory string // Default: "/sys/firmware/efi".
	ProcDirectory    string // Default: "/proc".
	SysfsDirectory   string // Default: "/sys".
}

// Probe will detect the firmware mode (UEFI if the firmware variables
// directory is present), total memory in MiB and the list of non-removable
// block devices. If no devices are found an error is returned: there is no
// possible installation target.
func Probe(options Options, logger log.DebugLogger) (*Info, error) {
	return probe(options, logger)
}
