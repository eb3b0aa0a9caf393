package partition

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/osprey-linux/installer/lib/log/testlogger"
	"github.com/osprey-linux/installer/lib/runner/testrunner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePartitioner(t *testing.T, device string,
	partitions []string) (*Partitioner, *testrunner.Runner) {
	topDir := t.TempDir()
	blockDir := filepath.Join(topDir, "sys", "class", "block",
		filepath.Base(device))
	require.NoError(t, os.MkdirAll(blockDir, 0755))
	for _, partition := range partitions {
		require.NoError(t, os.MkdirAll(
			filepath.Join(blockDir, partition), 0755))
	}
	options := Options{
		MountPoint:       filepath.Join(topDir, "mnt"),
		PartitionTimeout: 100 * time.Millisecond,
		SysfsDirectory:   filepath.Join(topDir, "sys"),
	}
	r := testrunner.New()
	return New(options, r, testlogger.New(t)), r
}

func TestPartitionEfi(t *testing.T) {
	partitioner, r := makePartitioner(t, "/dev/sda",
		[]string{"sda1", "sda2"})
	layout, err := partitioner.Partition("/dev/sda", true)
	require.NoError(t, err)
	assert.Equal(t, "/dev/sda1", layout.BootPartition)
	assert.Equal(t, "/dev/sda2", layout.RootPartition)
	lines := r.CommandLines()
	assert.Contains(t, lines, "wipefs --all --force /dev/sda")
	assert.Contains(t, lines,
		"parted -s -a optimal /dev/sda mklabel gpt "+
			"mkpart primary fat32 1MiB 513MiB set 1 esp on "+
			"mkpart primary ext4 513MiB 100%")
	assert.Contains(t, lines, "mkfs.vfat -F 32 -n EFI /dev/sda1")
	assert.Contains(t, lines, "mkfs.ext4 -F -L rootfs "+
		"-E lazy_itable_init=0,lazy_journal_init=0 /dev/sda2")
	mountPoint := partitioner.options.MountPoint
	assert.Contains(t, lines,
		fmt.Sprintf("mount -t ext4 /dev/sda2 %s", mountPoint))
	assert.Contains(t, lines,
		fmt.Sprintf("mount -t vfat /dev/sda1 %s/boot", mountPoint))
}

func TestPartitionBios(t *testing.T) {
	partitioner, r := makePartitioner(t, "/dev/sda", []string{"sda1"})
	layout, err := partitioner.Partition("/dev/sda", false)
	require.NoError(t, err)
	assert.Empty(t, layout.BootPartition)
	assert.Equal(t, "/dev/sda1", layout.RootPartition)
	lines := r.CommandLines()
	assert.Contains(t, lines,
		"parted -s -a optimal /dev/sda mklabel msdos "+
			"mkpart primary ext4 1MiB 100% set 1 boot on")
	for _, line := range lines {
		assert.NotContains(t, line, "mkfs.vfat")
	}
}

// NVMe partition nodes carry a "p" separator which must be derived from
// sysfs, never assumed.
func TestPartitionNvmeNaming(t *testing.T) {
	partitioner, _ := makePartitioner(t, "/dev/nvme0n1",
		[]string{"nvme0n1p1", "nvme0n1p2"})
	layout, err := partitioner.Partition("/dev/nvme0n1", true)
	require.NoError(t, err)
	assert.Equal(t, "/dev/nvme0n1p1", layout.BootPartition)
	assert.Equal(t, "/dev/nvme0n1p2", layout.RootPartition)
}

func TestPartitionNodeNeverAppears(t *testing.T) {
	partitioner, _ := makePartitioner(t, "/dev/sda", nil)
	_, err := partitioner.Partition("/dev/sda", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "never appeared")
}

// A busy-looking device gets one settle-and-retry on the wipe; a second
// rejection is fatal.
func TestPartitionWipeRetry(t *testing.T) {
	partitioner, r := makePartitioner(t, "/dev/sda", []string{"sda1"})
	r.PushResult("wipefs", "", fmt.Errorf("probing initialization failed"))
	_, err := partitioner.Partition("/dev/sda", false)
	require.NoError(t, err)
	assert.Equal(t, 2, r.NumCalls("wipefs"))
	assert.Contains(t, r.CommandLines(), "udevadm settle")

	partitioner, r = makePartitioner(t, "/dev/sda", []string{"sda1"})
	r.SetError("wipefs", fmt.Errorf("probing initialization failed"))
	_, err = partitioner.Partition("/dev/sda", false)
	require.Error(t, err)
	assert.Equal(t, 2, r.NumCalls("wipefs"))
}
