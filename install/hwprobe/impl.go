package hwprobe

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/osprey-linux/installer/lib/constants"
	"github.com/osprey-linux/installer/lib/format"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/prometheus/procfs"
)

func (options *Options) setDefaults() {
	if options.DevDirectory == "" {
		options.DevDirectory = constants.DefaultDevDirectory
	}
	if options.EfiVarsDirectory == "" {
		options.EfiVarsDirectory = constants.EfiVariablesDirectory
	}
	if options.ProcDirectory == "" {
		options.ProcDirectory = constants.DefaultProcDirectory
	}
	if options.SysfsDirectory == "" {
		options.SysfsDirectory = constants.DefaultSysfsDirectory
	}
}

func probe(options Options, logger log.DebugLogger) (*Info, error) {
	options.setDefaults()
	info := &Info{UEFI: checkIsEfi(options.EfiVarsDirectory)}
	memTotal, err := readMemTotalMiB(options.ProcDirectory)
	if err != nil {
		return nil, fmt.Errorf("error reading memory info: %s", err)
	}
	info.MemTotalMiB = memTotal
	devices, err := listDevices(options, logger)
	if err != nil {
		return nil, err
	}
	info.Devices = devices
	logger.Debugf(0, "probed: UEFI=%v memory=%d MiB devices=%d\n",
		info.UEFI, info.MemTotalMiB, len(info.Devices))
	return info, nil
}

// Returns true if the system has EFI firmware, else false.
func checkIsEfi(efiVarsDirectory string) bool {
	if _, err := os.Stat(efiVarsDirectory); err == nil {
		return true
	}
	return false
}

func readMemTotalMiB(procDirectory string) (uint64, error) {
	fs, err := procfs.NewFS(procDirectory)
	if err != nil {
		return 0, err
	}
	meminfo, err := fs.Meminfo()
	if err != nil {
		return 0, err
	}
	if meminfo.MemTotal == nil {
		return 0, fmt.Errorf("no MemTotal in meminfo")
	}
	return *meminfo.MemTotal >> 10, nil
}

func listDevices(options Options, logger log.DebugLogger) (
	[]BlockDevice, error) {
	basedir := filepath.Join(options.SysfsDirectory, "class", "block")
	file, err := os.Open(basedir)
	if err != nil {
		return nil, err
	}
	names, err := file.Readdirnames(-1)
	file.Close()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	var devices []BlockDevice
	for _, name := range names {
		dirname := filepath.Join(basedir, name)
		if _, err := os.Stat(filepath.Join(dirname, "partition")); err == nil {
			logger.Debugf(2, "skipping partition: %s\n", name)
			continue
		}
		if _, err := os.Stat(filepath.Join(dirname, "device")); err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			logger.Debugf(2, "skipping non-device: %s\n", name)
			continue
		}
		if v, err := readInt(filepath.Join(dirname, "removable")); err != nil {
			return nil, err
		} else if v != 0 {
			logger.Debugf(2, "skipping removable device: %s\n", name)
			continue
		}
		sectors, err := readInt(filepath.Join(dirname, "size"))
		if err != nil {
			return nil, err
		}
		device := BlockDevice{
			DevPath: filepath.Join(options.DevDirectory, name),
			Model:   readModel(dirname),
			Name:    name,
			Size:    sectors << 9,
		}
		logger.Debugf(1, "found: %s %s %s\n",
			name, format.FormatBytes(device.Size), device.Model)
		devices = append(devices, device)
	}
	if len(devices) < 1 {
		return nil, fmt.Errorf("no target devices found")
	}
	return devices, nil
}

func readInt(filename string) (uint64, error) {
	if file, err := os.Open(filename); err != nil {
		return 0, err
	} else {
		defer file.Close()
		var value uint64
		if nVal, err := fmt.Fscanf(file, "%d\n", &value); err != nil {
			return 0, err
		} else if nVal != 1 {
			return 0, fmt.Errorf("read %d values, expected 1", nVal)
		} else {
			return value, nil
		}
	}
}

func readModel(dirname string) string {
	data, err := os.ReadFile(filepath.Join(dirname, "device", "model"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
