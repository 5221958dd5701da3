package domain

import "fmt"

// VehicleStatus represents the fleet status of a vehicle.
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusInUse       VehicleStatus = "in_use"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

// ParseVehicleStatus validates a vehicle status string at the boundary.
func ParseVehicleStatus(s string) (VehicleStatus, error) {
	switch VehicleStatus(s) {
	case VehicleStatusAvailable, VehicleStatusInUse, VehicleStatusMaintenance:
		return VehicleStatus(s), nil
	}
	return "", fmt.Errorf("unknown vehicle status %q", s)
}

// Vehicle represents a fleet vehicle, identified by its registration
// number. A vehicle may be linked to any number of drivers.
type Vehicle struct {
	ID                 string
	RegistrationNumber string
	Model              string
	CapacityType       string // sedan, van, bus
	Capacity           int
	Status             VehicleStatus
}
