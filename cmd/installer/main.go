//go:build linux
// +build linux

package main

import (
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/Cloud-Foundations/tricorder/go/tricorder"
	"github.com/osprey-linux/installer/lib/constants"
	"github.com/osprey-linux/installer/lib/flags/commands"
	"github.com/osprey-linux/installer/lib/fsutil"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/log/debuglogger"
)

var (
	answersFile = flag.String("answersFile", "",
		"Pathname of YAML answers file to pre-seed the installation plan")
	devDirectory = flag.String("devDirectory", constants.DefaultDevDirectory,
		"Directory where device nodes live")
	dryRun = flag.Bool("dryRun", ifUnprivileged(),
		"If true, do not make changes")
	logDebugLevel = flag.Int("logDebugLevel", -1, "Debug log level")
	logDirectory  = flag.String("logDirectory", constants.LogDirectory,
		"Directory for session and action logs")
	mirrorlistFile = flag.String("mirrorlistFile",
		constants.DefaultMirrorlistFile,
		"Pathname of the package mirror list")
	mountPoint = flag.String("mountPoint", constants.DefaultMountPoint,
		"Mount point for new root file-system")
	pacmanConfFile = flag.String("pacmanConfFile",
		constants.DefaultPacmanConfFile,
		"Pathname of the package manager configuration")
	procDirectory = flag.String("procDirectory",
		constants.DefaultProcDirectory, "Directory where procfs is mounted")
	sysfsDirectory = flag.String("sysfsDirectory",
		constants.DefaultSysfsDirectory, "Directory where sysfs is mounted")
	templateDirectory = flag.String("templateDirectory",
		constants.DefaultTemplateDirectory,
		"Directory containing theme templates")

	processStartTime = time.Now()
)

func printUsage() {
	w := flag.CommandLine.Output()
	fmt.Fprintln(w,
		"Usage: installer [flags...] [command [args...]]")
	fmt.Fprintln(w, "Common flags:")
	flag.PrintDefaults()
	fmt.Fprintln(w, "Commands:")
	commands.PrintCommands(w, subcommands)
}

var subcommands = []commands.Command{
	{Command: "install", Args: "", MinArgs: 0, MaxArgs: 0,
		CmdFunc: installSubcommand},
	{Command: "list-drives", Args: "", MinArgs: 0, MaxArgs: 0,
		CmdFunc: listDrivesSubcommand},
	{Command: "probe", Args: "", MinArgs: 0, MaxArgs: 0,
		CmdFunc: probeSubcommand},
}

func ifUnprivileged() bool {
	if os.Geteuid() != 0 {
		return true
	}
	return false
}

// createLogger builds the session logger, teeing to stderr and the session
// log file so a crashed run still leaves a record on disk.
func createLogger() (log.DebugLogger, error) {
	writer := io.Writer(os.Stderr)
	if err := os.MkdirAll(*logDirectory, fsutil.DirPerms); err == nil {
		file, err := os.OpenFile(filepath.Join(*logDirectory, "session.log"),
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, fsutil.PublicFilePerms)
		if err == nil {
			writer = io.MultiWriter(os.Stderr, file)
		}
	}
	logger := debuglogger.New(stdlog.New(writer, "", stdlog.LstdFlags))
	logger.SetLevel(int16(*logDebugLevel))
	return logger, nil
}

func processCommand(args []string) {
	logger, err := createLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(args) < 1 { // Bare invocation runs a full install.
		if err := installSubcommand(nil, logger); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}
	os.Exit(commands.RunCommands(subcommands, printUsage, logger))
}

func main() {
	tricorder.RegisterFlags()
	flag.Usage = printUsage
	flag.Parse()
	processCommand(flag.Args())
}
