package sysconfig

import (
	"os"
	"path/filepath"

	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/lib/fsutil"
)

const zramConfig = `[zram0]
zram-size = min(ram / 2, 4096)
compression-algorithm = zstd
`

// configurePerformance tunes the CPU frequency governor and, on low-memory
// machines, sets up compressed-memory swap. All best-effort.
func (c *Configurator) configurePerformance(installPlan *plan.Plan) {
	governor := "schedutil"
	if installPlan.GamingProfile {
		governor = "performance"
	}
	filename := filepath.Join(c.options.MountPoint, "etc", "default",
		"cpupower")
	err := os.WriteFile(filename, []byte("governor='"+governor+"'\n"),
		fsutil.PublicFilePerms)
	if err != nil {
		c.warn("could not set CPU governor: %s", err)
	} else if _, err := c.runner.RunChroot(c.options.MountPoint, "systemctl",
		"enable", "cpupower.service"); err != nil {
		c.warn("could not enable cpupower: %s", err)
	}
	if !installPlan.LowMemory {
		return
	}
	filename = filepath.Join(c.options.MountPoint, "etc", "systemd",
		"zram-generator.conf")
	if err := os.WriteFile(filename, []byte(zramConfig),
		fsutil.PublicFilePerms); err != nil {
		c.warn("could not configure compressed-memory swap: %s", err)
	}
}
