// Package waste prices orphaned cloud resources: unattached disks and
// idle static addresses. The inventory is supplied by the caller, not
// discovered here.
package waste

import (
	"fmt"

	"github.com/costpilot/cost-copilot/pkg/estimator"
	"github.com/costpilot/cost-copilot/pkg/models"
	"github.com/costpilot/cost-copilot/pkg/pricing"
)

// IdleAddressPerMonth is the flat monthly charge for a reserved but
// unused external address.
const IdleAddressPerMonth = 3.50

// UnattachedDisk is a persistent disk not mounted by any instance.
type UnattachedDisk struct {
	Name   string              `yaml:"name" json:"name"`
	Zone   string              `yaml:"zone,omitempty" json:"zone,omitempty"`
	SizeGB float64             `yaml:"sizeGB" json:"sizeGB"`
	Class  models.StorageClass `yaml:"class,omitempty" json:"class,omitempty"`
}

// IdleAddress is a reserved external IP with no target.
type IdleAddress struct {
	Name   string `yaml:"name" json:"name"`
	Region string `yaml:"region,omitempty" json:"region,omitempty"`
}

// Inventory is the set of orphaned resources to price.
type Inventory struct {
	Disks     []UnattachedDisk `yaml:"disks" json:"disks"`
	Addresses []IdleAddress    `yaml:"addresses" json:"addresses"`
}

// Line is one priced inventory item. Min and Max differ only when the
// disk class is unknown and the cost is a range across classes.
type Line struct {
	Resource   string  `yaml:"resource" json:"resource"`
	Name       string  `yaml:"name" json:"name"`
	Note       string  `yaml:"note,omitempty" json:"note,omitempty"`
	MinMonthly float64 `yaml:"minMonthly" json:"minMonthly"`
	MaxMonthly float64 `yaml:"maxMonthly" json:"maxMonthly"`
}

// Report totals the monthly waste of an inventory.
type Report struct {
	Lines      []Line  `yaml:"lines" json:"lines"`
	MinMonthly float64 `yaml:"minMonthly" json:"minMonthly"`
	MaxMonthly float64 `yaml:"maxMonthly" json:"maxMonthly"`
}

// Empty reports whether nothing in the inventory costs money.
func (r Report) Empty() bool {
	return len(r.Lines) == 0
}

// Analyze prices every inventory item. Disks with a known class get an
// exact rate; unknown classes are reported as a [min,max] range across
// all classes rather than guessed at.
func Analyze(inventory Inventory) (Report, error) {
	var report Report

	for _, disk := range inventory.Disks {
		if disk.SizeGB < 0 {
			return Report{}, fmt.Errorf("disk %q size must not be negative, got %g: %w",
				disk.Name, disk.SizeGB, estimator.ErrInvalidInput)
		}

		line := Line{Resource: "disk", Name: disk.Name}
		if rate, err := pricing.StorageRateForClass(disk.Class); err == nil {
			line.MinMonthly = disk.SizeGB * rate
			line.MaxMonthly = line.MinMonthly
		} else {
			line.MinMonthly = disk.SizeGB * pricing.PDStandardPerGBMonth
			line.MaxMonthly = disk.SizeGB * pricing.PDSSDPerGBMonth
			line.Note = fmt.Sprintf("unknown disk class %q, range across known classes", disk.Class)
		}
		report.Lines = append(report.Lines, line)
	}

	for _, addr := range inventory.Addresses {
		report.Lines = append(report.Lines, Line{
			Resource:   "address",
			Name:       addr.Name,
			MinMonthly: IdleAddressPerMonth,
			MaxMonthly: IdleAddressPerMonth,
		})
	}

	for _, line := range report.Lines {
		report.MinMonthly += line.MinMonthly
		report.MaxMonthly += line.MaxMonthly
	}

	return report, nil
}
