package partition

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/osprey-linux/installer/lib/constants"
	"github.com/osprey-linux/installer/lib/format"
	"github.com/osprey-linux/installer/lib/fsutil"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

func newPartitioner(options Options, r runner.Runner,
	logger log.DebugLogger) *Partitioner {
	if options.MountPoint == "" {
		options.MountPoint = constants.DefaultMountPoint
	}
	if options.PartitionTimeout < time.Millisecond {
		options.PartitionTimeout = 5 * time.Second
	}
	if options.SysfsDirectory == "" {
		options.SysfsDirectory = constants.DefaultSysfsDirectory
	}
	return &Partitioner{options: options, runner: r, logger: logger}
}

func (p *Partitioner) partition(device string, uefi bool) (*Layout, error) {
	startTime := time.Now()
	if err := p.wipe(device); err != nil {
		return nil, err
	}
	if uefi {
		if err := p.makeEfiLayout(device); err != nil {
			return nil, err
		}
	} else {
		if err := p.makeBiosLayout(device); err != nil {
			return nil, err
		}
	}
	layout := &Layout{}
	rootNumber := 1
	if uefi {
		rootNumber = 2
		bootPartition, err := p.waitForPartition(device, 1)
		if err != nil {
			return nil, err
		}
		layout.BootPartition = bootPartition
	}
	rootPartition, err := p.waitForPartition(device, rootNumber)
	if err != nil {
		return nil, err
	}
	layout.RootPartition = rootPartition
	if err := p.makeFileSystems(layout); err != nil {
		return nil, err
	}
	if err := p.mountFileSystems(layout); err != nil {
		return nil, err
	}
	p.logger.Printf("partitioned and mounted %s in %s\n",
		device, format.Duration(time.Since(startTime)))
	return layout, nil
}

// wipe erases all file-system signatures and partition-table metadata. If
// the first wipe is rejected (the device may still look busy right after
// reclaim), force a settle and retry once.
func (p *Partitioner) wipe(device string) error {
	if _, err := p.runner.Run("wipefs", "--all", "--force", device); err == nil {
		return nil
	} else {
		p.logger.Printf("first wipe of %s rejected, settling: %s\n",
			device, err)
	}
	p.runner.Run("udevadm", "settle")
	p.runner.Run("blockdev", "--rereadpt", device)
	if _, err := p.runner.Run("wipefs", "--all", "--force", device); err != nil {
		return fmt.Errorf("error wiping %s: %s", device, err)
	}
	return nil
}

func (p *Partitioner) makeEfiLayout(device string) error {
	espEnd := strconv.Itoa(constants.EfiPartitionMiB+1) + "MiB"
	_, err := p.runner.Run("parted", "-s", "-a", "optimal", device,
		"mklabel", "gpt",
		"mkpart", "primary", "fat32", "1MiB", espEnd,
		"set", "1", "esp", "on",
		"mkpart", "primary", "ext4", espEnd, "100%")
	if err != nil {
		return fmt.Errorf("error partitioning %s: %s", device, err)
	}
	return nil
}

func (p *Partitioner) makeBiosLayout(device string) error {
	_, err := p.runner.Run("parted", "-s", "-a", "optimal", device,
		"mklabel", "msdos",
		"mkpart", "primary", "ext4", "1MiB", "100%",
		"set", "1", "boot", "on")
	if err != nil {
		return fmt.Errorf("error partitioning %s: %s", device, err)
	}
	return nil
}

// resolvePartition re-derives the partition device node from live sysfs
// state. Node naming varies by device class (nvme0n1p1 vs sda1), so the
// name is never assumed from convention.
func (p *Partitioner) resolvePartition(device string,
	number int) (string, error) {
	devLeafName := filepath.Base(device)
	classDir := filepath.Join(p.options.SysfsDirectory, "class", "block",
		devLeafName)
	suffix := strconv.FormatInt(int64(number), 10)
	for _, leaf := range []string{devLeafName + "p" + suffix,
		devLeafName + suffix} {
		if _, err := os.Stat(filepath.Join(classDir, leaf)); err == nil {
			return filepath.Join(filepath.Dir(device), leaf), nil
		}
	}
	return "", fmt.Errorf("no partition %d on %s yet", number, device)
}

// waitForPartition polls sysfs until the kernel has created the partition
// node, bounded by the partition timeout.
func (p *Partitioner) waitForPartition(device string,
	number int) (string, error) {
	var name string
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 50 * time.Millisecond
	expBackoff.MaxElapsedTime = p.options.PartitionTimeout
	err := backoff.Retry(func() error {
		var err error
		name, err = p.resolvePartition(device, number)
		return err
	}, expBackoff)
	if err != nil {
		return "", fmt.Errorf("partition %d of %s never appeared: %s",
			number, device, err)
	}
	return name, nil
}

func (p *Partitioner) makeFileSystems(layout *Layout) error {
	if layout.BootPartition != "" {
		_, err := p.runner.Run("mkfs.vfat", "-F", "32", "-n", BootFsLabel,
			layout.BootPartition)
		if err != nil {
			return fmt.Errorf("error formatting %s: %s",
				layout.BootPartition, err)
		}
	}
	_, err := p.runner.Run("mkfs.ext4", "-F", "-L", RootFsLabel,
		"-E", "lazy_itable_init=0,lazy_journal_init=0",
		layout.RootPartition)
	if err != nil {
		return fmt.Errorf("error formatting %s: %s",
			layout.RootPartition, err)
	}
	return nil
}

func (p *Partitioner) mountFileSystems(layout *Layout) error {
	if err := os.MkdirAll(p.options.MountPoint, fsutil.DirPerms); err != nil {
		return err
	}
	_, err := p.runner.Run("mount", "-t", "ext4", layout.RootPartition,
		p.options.MountPoint)
	if err != nil {
		return fmt.Errorf("error mounting root: %s", err)
	}
	if layout.BootPartition == "" {
		return nil
	}
	bootDir := filepath.Join(p.options.MountPoint, "boot")
	if err := os.MkdirAll(bootDir, fsutil.DirPerms); err != nil {
		return err
	}
	_, err = p.runner.Run("mount", "-t", "vfat", layout.BootPartition,
		bootDir)
	if err != nil {
		return fmt.Errorf("error mounting boot: %s", err)
	}
	return nil
}
