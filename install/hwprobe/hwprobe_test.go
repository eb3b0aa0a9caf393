package hwprobe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/osprey-linux/installer/lib/log/testlogger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const procMeminfo = `MemTotal:        4194304 kB
MemFree:         1048576 kB
MemAvailable:    2097152 kB
`

type fakeDevice struct {
	name      string
	model     string
	partition bool
	removable string
	sectors   string
}

func makeOptions(t *testing.T, efi bool, devices []fakeDevice) Options {
	topDir := t.TempDir()
	options := Options{
		DevDirectory:     filepath.Join(topDir, "dev"),
		EfiVarsDirectory: filepath.Join(topDir, "sys", "firmware", "efi"),
		ProcDirectory:    filepath.Join(topDir, "proc"),
		SysfsDirectory:   filepath.Join(topDir, "sys"),
	}
	require.NoError(t, os.MkdirAll(options.ProcDirectory, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(options.ProcDirectory, "meminfo"),
		[]byte(procMeminfo), 0644))
	if efi {
		require.NoError(t, os.MkdirAll(options.EfiVarsDirectory, 0755))
	}
	blockDir := filepath.Join(options.SysfsDirectory, "class", "block")
	require.NoError(t, os.MkdirAll(blockDir, 0755))
	for _, device := range devices {
		dirname := filepath.Join(blockDir, device.name)
		require.NoError(t, os.MkdirAll(dirname, 0755))
		if device.partition {
			require.NoError(t, os.WriteFile(
				filepath.Join(dirname, "partition"), []byte("1\n"), 0644))
			continue
		}
		deviceDir := filepath.Join(dirname, "device")
		require.NoError(t, os.MkdirAll(deviceDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dirname, "removable"),
			[]byte(device.removable+"\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dirname, "size"),
			[]byte(device.sectors+"\n"), 0644))
		if device.model != "" {
			require.NoError(t, os.WriteFile(
				filepath.Join(deviceDir, "model"),
				[]byte(device.model+"\n"), 0644))
		}
	}
	return options
}

func TestProbe(t *testing.T) {
	options := makeOptions(t, true, []fakeDevice{
		{name: "sda", model: "Samsung SSD 870", removable: "0",
			sectors: "1953525168"},
		{name: "sda1", partition: true},
		{name: "sdb", model: "Flash Stick", removable: "1",
			sectors: "60604416"},
		{name: "zram0", removable: "0", sectors: "0"},
	})
	// zram0 has no device link: it must be skipped, not fail the probe.
	require.NoError(t,
		os.Remove(filepath.Join(options.SysfsDirectory, "class", "block",
			"zram0", "device")))
	info, err := Probe(options, testlogger.New(t))
	require.NoError(t, err)
	assert.True(t, info.UEFI)
	assert.Equal(t, uint64(4096), info.MemTotalMiB)
	require.Len(t, info.Devices, 1)
	device := info.Devices[0]
	assert.Equal(t, "sda", device.Name)
	assert.Equal(t, filepath.Join(options.DevDirectory, "sda"),
		device.DevPath)
	assert.Equal(t, "Samsung SSD 870", device.Model)
	assert.Equal(t, uint64(1953525168)<<9, device.Size)
}

func TestProbeLegacyFirmware(t *testing.T) {
	options := makeOptions(t, false, []fakeDevice{
		{name: "vda", removable: "0", sectors: "41943040"},
	})
	info, err := Probe(options, testlogger.New(t))
	require.NoError(t, err)
	assert.False(t, info.UEFI)
	assert.Empty(t, info.Devices[0].Model)
}

func TestProbeNoDevices(t *testing.T) {
	options := makeOptions(t, false, []fakeDevice{
		{name: "sr0", removable: "1", sectors: "0"},
	})
	_, err := Probe(options, testlogger.New(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no target devices found")
}
