package datasets

import (
	"fmt"
	"strings"
)

// Partition names one of the window collections held by a DataLoader.
type Partition int

const (
	// All holds every window in shuffled order.
	All Partition = iota
	Train
	Validation
	Test
)

var partitionNames = [...]string{
	All:        "all",
	Train:      "train",
	Validation: "validation",
	Test:       "test",
}

// Partitions lists every partition in split order.
func Partitions() []Partition {
	return []Partition{All, Validation, Test, Train}
}

func (p Partition) String() string {
	if p < All || p > Test {
		return fmt.Sprintf("Partition(%d)", int(p))
	}
	return partitionNames[p]
}

func (p Partition) valid() bool {
	return p >= All && p <= Test
}

// ParsePartition maps a partition name (case-insensitive) to a Partition.
// "val" is accepted for validation.
func ParsePartition(s string) (Partition, error) {
	name := strings.TrimSpace(strings.ToLower(s))
	if name == "val" {
		return Validation, nil
	}
	for i, n := range partitionNames {
		if n == name {
			return Partition(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPartition, s)
}
