// Package sysmon provides system-wide CPU and memory usage sampling plus
// host capability metadata for the execution reports.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Device describes the host the lane grid runs on. The metadata is used for
// reporting only, never for correctness.
type Device struct {
	Model        string
	LogicalCores int
	TotalMemMB   uint64
}

// DescribeDevice collects host capability metadata. Fields that cannot be
// read fall back to runtime values or stay zero.
func DescribeDevice() Device {
	d := Device{LogicalCores: runtime.NumCPU()}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		d.Model = infos[0].ModelName
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		d.TotalMemMB = vmem.Total / (1024 * 1024)
	}
	return d
}
