package reclaim

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/osprey-linux/installer/lib/log/testlogger"
	"github.com/osprey-linux/installer/lib/runner/testrunner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const procMounts = `/dev/sda1 /media/old-boot vfat rw 0 0
/dev/sda2 /media/old-root ext4 rw 0 0
/dev/sda2 /media/old-root/nested ext4 rw 0 0
/dev/sdb1 /media/other ext4 rw 0 0
`

const procSwaps = `Filename				Type		Size		Used	Priority
/dev/sda3                               partition	1048572		0	-2
`

func makeReclaimer(t *testing.T) (*Reclaimer, *testrunner.Runner, Options) {
	topDir := t.TempDir()
	options := Options{
		DevDirectory:  filepath.Join(topDir, "dev"),
		MountPoint:    "/mnt",
		ProcDirectory: filepath.Join(topDir, "proc"),
	}
	require.NoError(t, os.MkdirAll(options.ProcDirectory, 0755))
	require.NoError(t,
		os.MkdirAll(filepath.Join(options.DevDirectory, "mapper"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(options.ProcDirectory, "mounts"),
		[]byte(procMounts), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(options.ProcDirectory, "swaps"),
		[]byte(procSwaps), 0644))
	r := testrunner.New()
	return New(options, r, testlogger.New(t)), r, options
}

func TestReclaimSequence(t *testing.T) {
	reclaimer, r, options := makeReclaimer(t)
	for _, name := range []string{"control", "cryptoroot"} {
		require.NoError(t, os.WriteFile(
			filepath.Join(options.DevDirectory, "mapper", name), nil, 0644))
	}
	require.NoError(t, reclaimer.Reclaim("/dev/sda"))
	lines := r.CommandLines()
	assert.Contains(t, lines, "umount -R /mnt")
	// Deepest mount point first, foreign devices untouched.
	nested := indexOf(t, lines, "umount /media/old-root/nested")
	root := indexOf(t, lines, "umount /media/old-root")
	assert.Less(t, nested, root)
	assert.NotContains(t, lines, "umount /media/other")
	assert.Contains(t, lines, "swapoff /dev/sda3")
	assert.Contains(t, lines, "swapoff -a")
	assert.Contains(t, lines, "cryptsetup close cryptoroot")
	assert.NotContains(t, lines, "cryptsetup close control")
	assert.Contains(t, lines, "vgchange -an")
	assert.Contains(t, lines, "mdadm --stop --scan")
	assert.Contains(t, lines, "dmsetup remove_all")
	// The re-read is the verification and must come last.
	assert.Equal(t, "blockdev --rereadpt /dev/sda", lines[len(lines)-1])
}

// Reclaiming an already-clean device must succeed: every release step may
// fail, only the final partition-table re-read matters.
func TestReclaimIdempotent(t *testing.T) {
	reclaimer, r, _ := makeReclaimer(t)
	for _, name := range []string{"umount", "swapoff", "cryptsetup",
		"vgchange", "mdadm", "dmsetup", "partprobe"} {
		r.SetError(name, fmt.Errorf("nothing to do"))
	}
	require.NoError(t, reclaimer.Reclaim("/dev/sda"))
	require.NoError(t, reclaimer.Reclaim("/dev/sda"))
}

func TestReclaimDeviceStillBusy(t *testing.T) {
	reclaimer, r, _ := makeReclaimer(t)
	r.SetError("blockdev", fmt.Errorf("ioctl failed: device busy"))
	err := reclaimer.Reclaim("/dev/sda")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "still busy")
}

func indexOf(t *testing.T, lines []string, want string) int {
	for index, line := range lines {
		if line == want {
			return index
		}
	}
	t.Fatalf("command not found: %s", want)
	return -1
}
