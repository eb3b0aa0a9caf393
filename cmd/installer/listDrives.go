package main

import (
	"fmt"

	"github.com/osprey-linux/installer/install/hwprobe"
	"github.com/osprey-linux/installer/lib/format"
	"github.com/osprey-linux/installer/lib/log"
)

func listDrivesSubcommand(args []string, logger log.DebugLogger) error {
	if err := listDrivesCmd(logger); err != nil {
		return fmt.Errorf("error listing drives: %s", err)
	}
	return nil
}

func listDrivesCmd(logger log.DebugLogger) error {
	info, err := hwprobe.Probe(hwprobe.Options{
		DevDirectory:   *devDirectory,
		ProcDirectory:  *procDirectory,
		SysfsDirectory: *sysfsDirectory,
	}, logger)
	if err != nil {
		return err
	}
	for _, device := range info.Devices {
		fmt.Printf("%s\t%s\t%s\n", device.DevPath,
			format.FormatBytes(device.Size), device.Model)
	}
	return nil
}
