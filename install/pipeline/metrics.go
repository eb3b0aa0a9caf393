package pipeline

import (
	"sync"
	"time"

	"github.com/Cloud-Foundations/tricorder/go/tricorder"
	"github.com/Cloud-Foundations/tricorder/go/tricorder/units"
)

var (
	metricsOnce        sync.Once
	stageDistributions map[string]*tricorder.CumulativeDistribution
)

func setupMetrics() {
	latencyBucketer := tricorder.NewGeometricBucketer(1, 1e7)
	stageDistributions = make(
		map[string]*tricorder.CumulativeDistribution)
	for _, stage := range []string{"reclaim", "partition", "mirrors",
		"provision", "configure", "bootloader"} {
		distribution := latencyBucketer.NewCumulativeDistribution()
		tricorder.RegisterMetric("/install/"+stage+"-time", distribution,
			units.Millisecond, "time in the "+stage+" stage")
		stageDistributions[stage] = distribution
	}
}

func recordStageTime(stage string, duration time.Duration) {
	if distribution := stageDistributions[stage]; distribution != nil {
		distribution.Add(duration)
	}
}
