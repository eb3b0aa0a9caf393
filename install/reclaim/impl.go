package reclaim

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/osprey-linux/installer/lib/constants"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
	"github.com/prometheus/procfs"
)

func newReclaimer(options Options, r runner.Runner,
	logger log.DebugLogger) *Reclaimer {
	if options.DevDirectory == "" {
		options.DevDirectory = constants.DefaultDevDirectory
	}
	if options.MountPoint == "" {
		options.MountPoint = constants.DefaultMountPoint
	}
	if options.ProcDirectory == "" {
		options.ProcDirectory = constants.DefaultProcDirectory
	}
	return &Reclaimer{options: options, runner: r, logger: logger}
}

func (r *Reclaimer) reclaim(device string) error {
	var softErrors *multierror.Error
	appendError := func(err error) {
		if err != nil {
			softErrors = multierror.Append(softErrors, err)
		}
	}
	appendError(r.unmountStaging())
	appendError(r.unmountTargetPartitions(device))
	appendError(r.disableSwap())
	appendError(r.closeEncryptedVolumes())
	appendError(r.deactivateVolumeManagers())
	appendError(r.removeMapperNodes())
	if err := softErrors.ErrorOrNil(); err != nil {
		// Best-effort steps: log for the record, keep going.
		r.logger.Debugf(0, "reclaim of %s: non-fatal: %s\n", device, err)
	}
	return r.rereadPartitionTable(device)
}

func (r *Reclaimer) unmountStaging() error {
	if _, err := r.runner.Run("umount", "-R", r.options.MountPoint); err != nil {
		return fmt.Errorf("unmounting %s: %s", r.options.MountPoint, err)
	}
	return nil
}

// unmountTargetPartitions unmounts every mounted file-system whose source
// device belongs to the target, deepest mount point first.
func (r *Reclaimer) unmountTargetPartitions(device string) error {
	file, err := os.Open(filepath.Join(r.options.ProcDirectory, "mounts"))
	if err != nil {
		return err
	}
	defer file.Close()
	var mountPoints []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		if strings.HasPrefix(fields[0], device) {
			mountPoints = append(mountPoints, fields[1])
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	var softErrors *multierror.Error
	for index := len(mountPoints) - 1; index >= 0; index-- {
		_, err := r.runner.Run("umount", mountPoints[index])
		if err != nil {
			softErrors = multierror.Append(softErrors, err)
		} else {
			r.logger.Debugf(1, "unmounted: %s\n", mountPoints[index])
		}
	}
	return softErrors.ErrorOrNil()
}

func (r *Reclaimer) disableSwap() error {
	var softErrors *multierror.Error
	if fs, err := procfs.NewFS(r.options.ProcDirectory); err != nil {
		softErrors = multierror.Append(softErrors, err)
	} else if swaps, err := fs.Swaps(); err != nil {
		softErrors = multierror.Append(softErrors, err)
	} else {
		for _, swap := range swaps {
			if _, err := r.runner.Run("swapoff", swap.Filename); err != nil {
				softErrors = multierror.Append(softErrors, err)
			} else {
				r.logger.Debugf(1, "disabled swap: %s\n", swap.Filename)
			}
		}
	}
	// Catch-all for swap activated since the enumeration.
	if _, err := r.runner.Run("swapoff", "-a"); err != nil {
		softErrors = multierror.Append(softErrors, err)
	}
	return softErrors.ErrorOrNil()
}

func (r *Reclaimer) closeEncryptedVolumes() error {
	mapperDir := filepath.Join(r.options.DevDirectory, "mapper")
	file, err := os.Open(mapperDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()
	names, err := file.Readdirnames(-1)
	if err != nil {
		return err
	}
	var softErrors *multierror.Error
	for _, name := range names {
		if name == "control" {
			continue
		}
		if _, err := r.runner.Run("cryptsetup", "close", name); err != nil {
			softErrors = multierror.Append(softErrors, err)
		} else {
			r.logger.Debugf(1, "closed encrypted volume: %s\n", name)
		}
	}
	return softErrors.ErrorOrNil()
}

func (r *Reclaimer) deactivateVolumeManagers() error {
	var softErrors *multierror.Error
	if _, err := r.runner.Run("vgchange", "-an"); err != nil {
		softErrors = multierror.Append(softErrors, err)
	}
	if _, err := r.runner.Run("mdadm", "--stop", "--scan"); err != nil {
		softErrors = multierror.Append(softErrors, err)
	}
	return softErrors.ErrorOrNil()
}

func (r *Reclaimer) removeMapperNodes() error {
	if _, err := r.runner.Run("dmsetup", "remove_all"); err != nil {
		return err
	}
	return nil
}

// rereadPartitionTable is the one verification that matters: if the kernel
// accepts a partition-table re-read, the device is free for repartitioning.
func (r *Reclaimer) rereadPartitionTable(device string) error {
	if _, err := r.runner.Run("partprobe", device); err != nil {
		r.logger.Debugf(0, "partprobe %s: %s\n", device, err)
	}
	if _, err := r.runner.Run("blockdev", "--rereadpt", device); err != nil {
		return fmt.Errorf("device still busy after reclaim: %s: %s",
			device, err)
	}
	return nil
}
