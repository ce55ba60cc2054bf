// Package sysservices implements the periodic telemetry sampler: datetime,
// CPU, memory, disk, network, and optional battery, each pushed into the
// "datetime" or "system" state namespace a widget subscribes to. Grounded
// on gopsutil/v3 usage in
// other_examples/459e8ffb_l3liss-qtilerugo (gobar/main.go)'s cpu.Percent and
// net.IOCounters calls, and on the polling/namespace shape of
// original_source/src/pytonium_shell/system_services.py, which this
// generalizes from Python's psutil to gopsutil/v3 plus distatus/battery for
// the battery reading psutil provides natively but gopsutil does not.
package sysservices

import (
	"context"
	"time"

	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"github.com/Maximilian-Winter/pytonium-shell/internal/logging"
)

// Snapshot is one sampling pass's worth of data, split by the namespace it
// gets routed to.
type Snapshot struct {
	Datetime DatetimeSnapshot
	System   SystemSnapshot
}

// DatetimeSnapshot is pushed into the "datetime" namespace.
type DatetimeSnapshot struct {
	Time        string
	TimeSeconds string
	Date        string
	Day         string
}

// SystemSnapshot is pushed into the "system" namespace. BatteryPercent and
// BatteryCharging are zero-valued AND HasBattery is false when no battery
// is present — callers must check HasBattery rather than treat 0 as "empty".
type SystemSnapshot struct {
	CPUPercent      float64
	CPUPerCore      []float64
	MemTotal        uint64
	MemUsed         uint64
	MemPercent      float64
	DiskTotal       uint64
	DiskUsed        uint64
	DiskPercent     float64
	NetSent         uint64
	NetRecv         uint64
	HasBattery      bool
	BatteryPercent  float64
	BatteryCharging bool
}

// Sampler polls system state at Interval, tolerating per-datum failures
// without blocking the rest of the snapshot.
type Sampler struct {
	Interval time.Duration
	lastPoll time.Time
}

// New creates a Sampler with the given poll interval (default 1s).
func New(interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Sampler{Interval: interval}
}

// Poll returns a fresh Snapshot iff Interval has elapsed since the last
// successful poll; otherwise ok is false and ticks should not push state.
func (s *Sampler) Poll(ctx context.Context) (snap Snapshot, ok bool) {
	if !s.lastPoll.IsZero() && time.Since(s.lastPoll) < s.Interval {
		return Snapshot{}, false
	}
	s.lastPoll = time.Now()
	return s.sample(ctx), true
}

func (s *Sampler) sample(ctx context.Context) Snapshot {
	log := logging.FromContext(ctx)
	now := time.Now()

	snap := Snapshot{
		Datetime: DatetimeSnapshot{
			Time:        now.Format("15:04"),
			TimeSeconds: now.Format("15:04:05"),
			Date:        now.Format("02.01.2006"),
			Day:         now.Format("Monday"),
		},
	}

	if percents, err := cpu.Percent(0, true); err != nil {
		log.Warn().Err(err).Msg("sysservices: cpu sample failed")
	} else {
		snap.System.CPUPerCore = percents
		snap.System.CPUPercent = average(percents)
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		log.Warn().Err(err).Msg("sysservices: memory sample failed")
	} else {
		snap.System.MemTotal = vm.Total
		snap.System.MemUsed = vm.Used
		snap.System.MemPercent = vm.UsedPercent
	}

	if du, err := disk.Usage("/"); err != nil {
		log.Warn().Err(err).Msg("sysservices: disk sample failed")
	} else {
		snap.System.DiskTotal = du.Total
		snap.System.DiskUsed = du.Used
		snap.System.DiskPercent = du.UsedPercent
	}

	if counters, err := net.IOCounters(false); err != nil || len(counters) == 0 {
		if err != nil {
			log.Warn().Err(err).Msg("sysservices: network sample failed")
		}
	} else {
		snap.System.NetSent = counters[0].BytesSent
		snap.System.NetRecv = counters[0].BytesRecv
	}

	if batteries, err := battery.GetAll(); err != nil || len(batteries) == 0 {
		// No battery present (desktop) is the common case, not a failure;
		// HasBattery stays false and the battery fields keep their zero values.
	} else {
		b := batteries[0]
		snap.System.HasBattery = true
		if b.Full > 0 {
			snap.System.BatteryPercent = (b.Current / b.Full) * 100
		}
		snap.System.BatteryCharging = b.State.Raw == battery.Charging
	}

	return snap
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
