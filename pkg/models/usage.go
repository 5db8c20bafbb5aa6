package models

import "sort"

// ResourceUsage represents the aggregate requested resources of a
// namespace or cluster. Values are requests, not measured usage.
type ResourceUsage struct {
	// CPU in cores
	CPUCores float64 `json:"cpuCores" yaml:"cpuCores"`
	// Memory in GB
	MemoryGB float64 `json:"memoryGB" yaml:"memoryGB"`
	// Persistent storage in GB
	StorageGB float64 `json:"storageGB" yaml:"storageGB"`
	// Pod count, informational only
	PodCount int `json:"podCount" yaml:"podCount"`
}

// Add returns the elementwise sum of u and other.
func (u ResourceUsage) Add(other ResourceUsage) ResourceUsage {
	return ResourceUsage{
		CPUCores:  u.CPUCores + other.CPUCores,
		MemoryGB:  u.MemoryGB + other.MemoryGB,
		StorageGB: u.StorageGB + other.StorageGB,
		PodCount:  u.PodCount + other.PodCount,
	}
}

// Scale returns u with every resource quantity multiplied by k.
// Pod counts are not scaled; they are counts, not quantities.
func (u ResourceUsage) Scale(k float64) ResourceUsage {
	return ResourceUsage{
		CPUCores:  u.CPUCores * k,
		MemoryGB:  u.MemoryGB * k,
		StorageGB: u.StorageGB * k,
		PodCount:  u.PodCount,
	}
}

// SumUsages sums usage across namespaces. Namespaces are visited in
// sorted order so the floating-point result is deterministic.
func SumUsages(usages map[string]ResourceUsage) ResourceUsage {
	names := make([]string, 0, len(usages))
	for name := range usages {
		names = append(names, name)
	}
	sort.Strings(names)

	var total ResourceUsage
	for _, name := range names {
		total = total.Add(usages[name])
	}
	return total
}
