package referenceframe

import (
	"go.viam.com/rapidkin/spatialmath"
)

// MechanicalUnit is the capability set shared by robots and external axes.
type MechanicalUnit interface {
	// Name returns the unit name.
	Name() string
	// DoF returns the limits of every axis the unit drives.
	DoF() []Limit
	// BoundingBox returns a world aligned box covering the unit over its reachable range.
	BoundingBox() spatialmath.Box
	// Transform moves all geometry of the unit by pose.
	Transform(pose spatialmath.Pose)
}
