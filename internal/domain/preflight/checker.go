// Package preflight aggregates environment signals (privilege, disk space,
// network reachability) into warnings before any install work begins.
package preflight

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/devstrap/devstrap/internal/ports"
)

const (
	// DiskUnknown marks a disk-space measurement that could not be taken.
	// Unknown is not zero: a failed probe must not look like a full disk.
	DiskUnknown int64 = -1

	lowDiskThresholdMB = 2048

	networkEndpoint = "github.com:443"
	networkTimeout  = 2500 * time.Millisecond
)

// Result holds the aggregated preflight signals. Created once per run,
// read-only afterwards.
type Result struct {
	HasSudo          bool
	DiskSpaceMB      int64
	NetworkReachable bool
	Warnings         []string
}

// Checker runs the preflight probes. Each probe is injectable so tests can
// simulate hosts; the zero-value probes are replaced with real ones by
// NewChecker.
type Checker struct {
	logger    ports.Logger
	privilege func() bool
	diskSpace func() (int64, error)
	network   func(ctx context.Context) bool
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithPrivilegeProbe overrides the privilege probe.
func WithPrivilegeProbe(probe func() bool) CheckerOption {
	return func(c *Checker) {
		c.privilege = probe
	}
}

// WithDiskProbe overrides the disk-space probe. The probe returns free
// megabytes on the system volume, or an error when it cannot measure.
func WithDiskProbe(probe func() (int64, error)) CheckerOption {
	return func(c *Checker) {
		c.diskSpace = probe
	}
}

// WithNetworkProbe overrides the network reachability probe.
func WithNetworkProbe(probe func(ctx context.Context) bool) CheckerOption {
	return func(c *Checker) {
		c.network = probe
	}
}

// NewChecker creates a Checker with real host probes unless overridden.
func NewChecker(logger ports.Logger, opts ...CheckerOption) *Checker {
	c := &Checker{
		logger:    logger,
		privilege: isElevated,
		diskSpace: freeDiskMB,
		network:   dialProbe,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes all probes and returns the aggregated result. It never
// fails: a probe that cannot measure degrades its signal to unknown/false.
func (c *Checker) Run(ctx context.Context) Result {
	result := Result{DiskSpaceMB: DiskUnknown}

	result.HasSudo = c.privilege()
	if !result.HasSudo {
		result.Warnings = append(result.Warnings,
			"running without elevated privileges; some installs may prompt for a password")
	}

	if mb, err := c.diskSpace(); err == nil {
		result.DiskSpaceMB = mb
		if mb < lowDiskThresholdMB {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("low disk space: %d MB free (want at least %d MB)", mb, lowDiskThresholdMB))
		}
	} else {
		c.logger.Debug(ctx, "disk space probe failed", ports.F("error", err.Error()))
	}

	result.NetworkReachable = c.network(ctx)
	if !result.NetworkReachable {
		result.Warnings = append(result.Warnings,
			"network unreachable; downloads will likely fail")
	}

	c.logger.Info(ctx, "preflight complete",
		ports.F("sudo", result.HasSudo),
		ports.F("disk_mb", result.DiskSpaceMB),
		ports.F("network", result.NetworkReachable),
		ports.F("warnings", len(result.Warnings)),
	)

	return result
}

// dialProbe checks reachability of a well-known endpoint with a bounded
// timeout.
func dialProbe(ctx context.Context) bool {
	dialCtx, cancel := context.WithTimeout(ctx, networkTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(dialCtx, "tcp", networkEndpoint)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
