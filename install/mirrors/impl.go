package mirrors

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/lib/constants"
	"github.com/osprey-linux/installer/lib/fsutil"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

var stableServers = []string{
	"https://geo.mirror.pkgbuild.com/$repo/os/$arch",
	"https://mirror.rackspace.com/archlinux/$repo/os/$arch",
	"https://mirrors.kernel.org/archlinux/$repo/os/$arch",
}

var regionServers = []string{
	"https://mirror.leaseweb.net/archlinux/$repo/os/$arch",
	"https://ftp.halifax.rwth-aachen.de/archlinux/$repo/os/$arch",
	"https://archlinux.mailtunnel.eu/$repo/os/$arch",
}

func newResolver(options Options, r runner.Runner,
	logger log.DebugLogger) *Resolver {
	if options.MirrorlistFile == "" {
		options.MirrorlistFile = constants.DefaultMirrorlistFile
	}
	if options.PacmanConfFile == "" {
		options.PacmanConfFile = constants.DefaultPacmanConfFile
	}
	if options.RankTimeout < time.Second {
		options.RankTimeout = constants.MirrorRankTimeoutSeconds * time.Second
	}
	return &Resolver{options: options, runner: r, logger: logger}
}

func (r *Resolver) resolve(mode plan.MirrorMode) string {
	switch mode {
	case plan.MirrorSafe:
		if err := TuneForUnreliableLink(r.options.PacmanConfFile); err != nil {
			r.logger.Printf("error tuning for unreliable link: %s\n", err)
			return "default mirror list"
		}
		return "default mirror list, serial downloads, no download timeout"
	case plan.MirrorRegion:
		return r.writeFixedList(regionServers, "regional mirror list")
	case plan.MirrorStable:
		return r.writeFixedList(stableServers, "stable mirror list")
	default:
		return r.rankMirrors()
	}
}

// rankMirrors runs the external ranking tool under a hard wall-clock
// budget. Missing tool, failure or timeout all degrade silently to the
// default list.
func (r *Resolver) rankMirrors() string {
	startTime := time.Now()
	_, err := r.runner.RunTimeout(r.options.RankTimeout, "reflector",
		"--protocol", "https",
		"--latest", "20",
		"--sort", "rate",
		"--save", r.options.MirrorlistFile)
	if err != nil {
		r.logger.Printf("mirror ranking unavailable after %s: %s\n",
			time.Since(startTime), err)
		return "default mirror list (ranking unavailable)"
	}
	return "ranked mirror list"
}

func (r *Resolver) writeFixedList(servers []string, description string) string {
	if err := writeList(r.options.MirrorlistFile, servers); err != nil {
		r.logger.Printf("error writing mirror list: %s\n", err)
		return "default mirror list"
	}
	return description
}

func writeList(filename string, servers []string) error {
	builder := &strings.Builder{}
	for _, server := range servers {
		fmt.Fprintf(builder, "Server = %s\n", server)
	}
	return os.WriteFile(filename, []byte(builder.String()),
		fsutil.PublicFilePerms)
}

// WriteFallbackList replaces the mirror list with the single, maximally
// compatible fallback source, used when the operator-selected sources have
// already failed a provisioning attempt.
func WriteFallbackList(filename string) error {
	return writeList(filename, []string{constants.FallbackMirror})
}

// TuneForUnreliableLink rewrites the install-tool configuration to download
// serially and without a download timeout, trading speed for robustness.
func TuneForUnreliableLink(filename string) error {
	lines, err := fsutil.ReadFileLines(filename)
	if err != nil {
		return err
	}
	var sawParallel, sawNoTimeout bool
	output := make([]string, 0, len(lines)+2)
	for _, line := range lines {
		trimmed := strings.TrimSpace(strings.TrimPrefix(
			strings.TrimSpace(line), "#"))
		switch {
		case strings.HasPrefix(trimmed, "ParallelDownloads"):
			if sawParallel {
				continue
			}
			output = append(output, "ParallelDownloads = 1")
			sawParallel = true
		case trimmed == "DisableDownloadTimeout":
			if sawNoTimeout {
				continue
			}
			output = append(output, "DisableDownloadTimeout")
			sawNoTimeout = true
		default:
			output = append(output, line)
		}
	}
	if !sawParallel {
		output = appendOption(output, "ParallelDownloads = 1")
	}
	if !sawNoTimeout {
		output = appendOption(output, "DisableDownloadTimeout")
	}
	return os.WriteFile(filename,
		[]byte(strings.Join(output, "\n")+"\n"), fsutil.PublicFilePerms)
}

// appendOption inserts line directly after the [options] section header,
// falling back to appending at the end.
func appendOption(lines []string, line string) []string {
	for index, existing := range lines {
		if strings.TrimSpace(existing) == "[options]" {
			output := make([]string, 0, len(lines)+1)
			output = append(output, lines[:index+1]...)
			output = append(output, line)
			output = append(output, lines[index+1:]...)
			return output
		}
	}
	return append(lines, line)
}
