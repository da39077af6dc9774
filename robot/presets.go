package robot

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/rapidkin/kinematics"
	"go.viam.com/rapidkin/logging"
	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
)

// Preset names a robot model that can be built without CAD geometry.
type Preset string

// The available presets.
const (
	PresetIRB120     = Preset("IRB120")
	PresetIRB6700200 = Preset("IRB6700-200/2.60")
)

type preset struct {
	params    kinematics.Parameters
	limits    [6]referenceframe.Limit
	thickness float64
}

var presets = map[Preset]preset{
	PresetIRB120: {
		params: kinematics.Parameters{A1: 0, A2: -70, A3: 0, B: 0, C1: 290, C2: 270, C3: 302, C4: 72},
		limits: [6]referenceframe.Limit{
			{Min: -165, Max: 165},
			{Min: -110, Max: 110},
			{Min: -110, Max: 70},
			{Min: -160, Max: 160},
			{Min: -120, Max: 120},
			{Min: -400, Max: 400},
		},
		thickness: 80,
	},
	PresetIRB6700200: {
		params: kinematics.Parameters{A1: 320, A2: -200, A3: 0, B: 0, C1: 780, C2: 1125, C3: 1142.5, C4: 200},
		limits: [6]referenceframe.Limit{
			{Min: -170, Max: 170},
			{Min: -65, Max: 85},
			{Min: -180, Max: 70},
			{Min: -300, Max: 300},
			{Min: -130, Max: 130},
			{Min: -360, Max: 360},
		},
		thickness: 300,
	},
}

// Presets returns the names of the available presets.
func Presets() []Preset {
	return []Preset{PresetIRB120, PresetIRB6700200}
}

// NewPreset builds the named robot standing on basePlane. The meshes are boxes spanning each link.
func NewPreset(name Preset, basePlane spatialmath.Plane, logger logging.Logger) (*Robot, error) {
	p, ok := presets[name]
	if !ok {
		return nil, newInvalidRobotError("unknown preset %q", name)
	}
	planes, mountingFrame := p.params.AxisPlanes(basePlane)
	meshes := linkMeshes(basePlane, planes, mountingFrame, p.thickness)
	return NewFromParameters(string(name), p.params, basePlane, p.limits, meshes, logger)
}

// linkMeshes returns a base box below axis 1 and one box per link spanning from its axis origin to the next.
func linkMeshes(
	basePlane spatialmath.Plane,
	planes [6]spatialmath.Plane,
	mountingFrame spatialmath.Plane,
	thickness float64,
) []*spatialmath.Mesh {
	ends := make([]r3.Vector, 0, 7)
	ends = append(ends, basePlane.Origin)
	for _, pl := range planes {
		ends = append(ends, pl.Origin)
	}
	ends = append(ends, mountingFrame.Origin)

	meshes := make([]*spatialmath.Mesh, 0, numRobotMeshes)
	for i := 0; i < numRobotMeshes; i++ {
		from, to := ends[i], ends[i+1]
		d := to.Sub(from)
		dims := r3.Vector{
			X: math.Abs(d.X) + thickness,
			Y: math.Abs(d.Y) + thickness,
			Z: math.Abs(d.Z) + thickness,
		}
		meshes = append(meshes, spatialmath.NewBoxMesh(spatialmath.NewPoseFromPoint(from.Add(d.Mul(0.5))), dims))
	}
	return meshes
}
