/*
Package mirrors selects and optimizes the package-source list prior to bulk
install. Resolution is always best-effort: it never blocks on interactive
input and never fails the pipeline, it only degrades to the default list.
*/
package mirrors

import (
	"time"

	"github.com/osprey-linux/installer/install/plan"
	"github.com/osprey-linux/installer/lib/log"
	"github.com/osprey-linux/installer/lib/runner"
)

type Options struct {
	MirrorlistFile string        // Default: "/etc/pacman.d/mirrorlist".
	PacmanConfFile string        // Default: "/etc/pacman.conf".
	RankTimeout    time.Duration // Budget for mirror ranking. Default: 90s.
}

type Resolver struct {
	options Options
	runner  runner.Runner
	logger  log.DebugLogger
}

// New will create a Resolver.
func New(options Options, r runner.Runner, logger log.DebugLogger) *Resolver {
	return newResolver(options, r, logger)
}

// Resolve will rewrite the package-source configuration for the specified
// mode and returns a description of the effective configuration:
//   - auto: time-bounded ranking of mirrors by measured responsiveness,
//     silently falling back to the default list
//   - stable/region: a small fixed hand-picked list
//   - safe: download concurrency reduced to 1 and the download timeout
//     disabled; the mirror list itself is untouched
func (r *Resolver) Resolve(mode plan.MirrorMode) string {
	return r.resolve(mode)
}
