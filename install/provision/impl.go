package provision

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/osprey-linux/installer/install/mirrors"
	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/lib/constants"
	"github.com/osprey-linux/installer/lib/format"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

func newProvisioner(options Options, r runner.Runner,
	logger log.DebugLogger) *Provisioner {
	if options.MirrorlistFile == "" {
		options.MirrorlistFile = constants.DefaultMirrorlistFile
	}
	if options.MountPoint == "" {
		options.MountPoint = constants.DefaultMountPoint
	}
	if options.PacmanConfFile == "" {
		options.PacmanConfFile = constants.DefaultPacmanConfFile
	}
	if options.PacmanLockFile == "" {
		options.PacmanLockFile = constants.PacmanLockFile
	}
	return &Provisioner{
		options:    options,
		runner:     r,
		logger:     logger,
		statFsFunc: statFreeKiB,
	}
}

func statFreeKiB(path string) (uint64, error) {
	var statbuf syscall.Statfs_t
	if err := syscall.Statfs(path, &statbuf); err != nil {
		return 0, err
	}
	return statbuf.Bavail * uint64(statbuf.Bsize) >> 10, nil
}

func (p *Provisioner) provision(installPlan *plan.Plan) error {
	startTime := time.Now()
	p.prepareHost()
	p.makeSwapFile(installPlan)
	defer p.removeSwapFile()
	packages := flattenPackageSets(installPlan.PackageSets())
	p.logger.Printf("installing %d packages into %s\n",
		len(packages), p.options.MountPoint)
	tail, err := p.bootstrap(packages, false)
	if err == nil {
		p.logger.Printf("provisioned %s in %s\n",
			p.options.MountPoint, format.Duration(time.Since(startTime)))
		return nil
	}
	p.logger.Printf("bootstrap failed, retrying with fallback source: %s\n",
		err)
	if err := p.switchToFallback(); err != nil {
		p.logger.Printf("error switching to fallback source: %s\n", err)
	}
	tail, err = p.bootstrap(packages, true)
	if err != nil {
		for _, line := range tail {
			p.logger.Println(line)
		}
		return fmt.Errorf("bootstrap failed twice, giving up: %s", err)
	}
	p.logger.Printf("provisioned %s in %s (fallback source)\n",
		p.options.MountPoint, format.Duration(time.Since(startTime)))
	return nil
}

// prepareHost gets the live environment out of the way of the bootstrap:
// kick off clock synchronisation (package signatures are time-sensitive) and
// clear a stale database lock left by a previous run. Both are best-effort.
func (p *Provisioner) prepareHost() {
	if _, err := p.runner.Run("timedatectl", "set-ntp", "true"); err != nil {
		p.logger.Debugf(0, "error enabling clock sync: %s\n", err)
	}
	if err := os.Remove(p.options.PacmanLockFile); err != nil {
		if !os.IsNotExist(err) {
			p.logger.Debugf(0, "error removing stale lock: %s\n", err)
		}
	} else {
		p.logger.Printf("removed stale lock: %s\n", p.options.PacmanLockFile)
	}
}

// makeSwapFile creates a temporary swap file on the freshly mounted target,
// sized by the space available there, so that low-memory machines survive
// the bootstrap. Machines with enough memory get no swap file, and no
// space means no swap: the bootstrap is attempted regardless.
func (p *Provisioner) makeSwapFile(installPlan *plan.Plan) {
	if !installPlan.LowMemory {
		return
	}
	freeKiB, err := p.statFsFunc(p.options.MountPoint)
	if err != nil {
		p.logger.Debugf(0, "error checking free space: %s\n", err)
		return
	}
	var sizeMiB uint64
	switch {
	case freeKiB >= constants.SwapFileTier1FreeKiB:
		sizeMiB = constants.SwapFileTier1SizeMiB
	case freeKiB >= constants.SwapFileTier2FreeKiB:
		sizeMiB = constants.SwapFileTier2SizeMiB
	default:
		p.logger.Debugf(0,
			"only %d KiB free: no room for a temporary swap file\n", freeKiB)
		return
	}
	swapFile := filepath.Join(p.options.MountPoint, "swapfile")
	size := strconv.FormatUint(sizeMiB, 10) + "M"
	if _, err := p.runner.Run("fallocate", "-l", size, swapFile); err != nil {
		p.logger.Debugf(0, "error allocating swap file: %s\n", err)
		return
	}
	if err := os.Chmod(swapFile, 0600); err != nil {
		p.logger.Debugf(0, "error securing swap file: %s\n", err)
	}
	if _, err := p.runner.Run("mkswap", swapFile); err != nil {
		p.logger.Debugf(0, "error formatting swap file: %s\n", err)
		os.Remove(swapFile)
		return
	}
	if _, err := p.runner.Run("swapon", swapFile); err != nil {
		p.logger.Debugf(0, "error enabling swap file: %s\n", err)
		os.Remove(swapFile)
		return
	}
	p.swapFile = swapFile
	p.logger.Printf("enabled temporary %d MiB swap file\n", sizeMiB)
}

// removeSwapFile tears down the temporary swap file. The installed system
// must never inherit it.
func (p *Provisioner) removeSwapFile() {
	if p.swapFile == "" {
		return
	}
	if _, err := p.runner.Run("swapoff", p.swapFile); err != nil {
		p.logger.Debugf(0, "error disabling swap file: %s\n", err)
	}
	if err := os.Remove(p.swapFile); err != nil {
		p.logger.Printf("error removing swap file: %s\n", err)
	} else {
		p.logger.Debugf(0, "removed temporary swap file\n")
	}
	p.swapFile = ""
}

func (p *Provisioner) bootstrap(packages []string, fallback bool) (
	[]string, error) {
	args := append([]string{"-K", p.options.MountPoint}, packages...)
	name := "pacstrap"
	if p.options.SafeProfile {
		// Keep the desktop responsive while gigabytes are unpacked.
		args = append([]string{"-n", "19", "ionice", "-c", "3", name},
			args...)
		name = "nice"
	}
	output, err := p.runner.Run(name, args...)
	tail := lastLines(output, constants.OutputTailLines)
	attempt := Attempt{Fallback: fallback, Succeeded: err == nil}
	if err != nil {
		attempt.Error = err.Error()
		attempt.OutputTail = tail
	}
	p.attempts = append(p.attempts, attempt)
	return tail, err
}

// switchToFallback rewrites the package-source configuration for the retry:
// the single known-good source, serial downloads and a refreshed signing
// keyring (stale keys are a common cause of the first failure).
func (p *Provisioner) switchToFallback() error {
	if err := mirrors.WriteFallbackList(p.options.MirrorlistFile); err != nil {
		return err
	}
	if err := mirrors.TuneForUnreliableLink(
		p.options.PacmanConfFile); err != nil {
		return err
	}
	_, err := p.runner.Run("pacman", "-Sy", "--noconfirm",
		"archlinux-keyring")
	if err != nil {
		p.logger.Debugf(0, "error refreshing keyring: %s\n", err)
	}
	return nil
}

func flattenPackageSets(sets []plan.PackageSet) []string {
	var packages []string
	seen := make(map[string]struct{})
	for _, set := range sets {
		for _, pkg := range set.Packages {
			if _, ok := seen[pkg]; ok {
				continue
			}
			seen[pkg] = struct{}{}
			packages = append(packages, pkg)
		}
	}
	return packages
}

func lastLines(output []byte, count int) []string {
	lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	if len(lines) > count {
		lines = lines[len(lines)-count:]
	}
	return lines
}
