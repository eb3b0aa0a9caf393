package main

import (
	"fmt"
	"os"

	"github.com/osprey-linux/installer/install/hwprobe"
	"github.com/osprey-linux/installer/lib/json"
	"github.com/osprey-linux/installer/lib/log"
)

func probeSubcommand(args []string, logger log.DebugLogger) error {
	if err := probeCmd(logger); err != nil {
		return fmt.Errorf("error probing: %s", err)
	}
	return nil
}

func probeCmd(logger log.DebugLogger) error {
	info, err := hwprobe.Probe(hwprobe.Options{
		DevDirectory:   *devDirectory,
		ProcDirectory:  *procDirectory,
		SysfsDirectory: *sysfsDirectory,
	}, logger)
	if err != nil {
		return err
	}
	return json.WriteWithIndent(os.Stdout, "    ", info)
}
