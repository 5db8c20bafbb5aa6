package waste

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadInventory reads an inventory YAML file:
//
//	disks:
//	  - name: disk-1
//	    zone: us-central1-a
//	    sizeGB: 100
//	    class: pd-standard
//	addresses:
//	  - name: lb-ip
//	    region: us-central1
func LoadInventory(path string) (Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Inventory{}, fmt.Errorf("failed to read inventory file %s: %w", path, err)
	}

	var inventory Inventory
	if err := yaml.Unmarshal(data, &inventory); err != nil {
		return Inventory{}, fmt.Errorf("failed to parse inventory file %s: %w", path, err)
	}
	return inventory, nil
}
