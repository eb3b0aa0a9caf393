package sysconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deniswernert/go-fstab"
	"github.com/osprey-linux/installer/lib/fsutil"
)

// writeFileSystemTable generates the target file-system table from the live
// mounts, keyed by UUID so the table survives device renumbering. A missing
// or empty table would leave the target unbootable, so generation failures
// are fatal; the noatime tuning pass is not.
func (c *Configurator) writeFileSystemTable() error {
	output, err := c.runner.Run("genfstab", "-U", c.options.MountPoint)
	if err != nil {
		return fmt.Errorf("error generating file-system table: %s", err)
	}
	if len(output) < 1 {
		return fmt.Errorf("generated file-system table is empty")
	}
	filename := filepath.Join(c.options.MountPoint, "etc", "fstab")
	if err := os.WriteFile(filename, output,
		fsutil.PublicFilePerms); err != nil {
		return err
	}
	if err := c.tuneFileSystemTable(filename); err != nil {
		c.warn("could not tune file-system table: %s", err)
	}
	return nil
}

// tuneFileSystemTable adds noatime to every real file-system entry, sparing
// the metadata write on every read.
func (c *Configurator) tuneFileSystemTable(filename string) error {
	mounts, err := fstab.ParseFile(filename)
	if err != nil {
		return err
	}
	for _, mount := range mounts {
		if mount.VfsType == "swap" {
			continue
		}
		if mount.MntOps == nil {
			mount.MntOps = make(map[string]string)
		}
		delete(mount.MntOps, "relatime")
		mount.MntOps["noatime"] = ""
	}
	return os.WriteFile(filename, []byte(mounts.String()+"\n"),
		fsutil.PublicFilePerms)
}
