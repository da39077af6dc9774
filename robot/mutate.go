package robot

import (
	"go.viam.com/rapidkin/kinematics"
	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
	"go.viam.com/rapidkin/tool"
)

// SetName renames the robot.
func (r *Robot) SetName(name string) {
	r.name = name
	r.update()
}

// SetBasePlane moves the robot geometry (axis planes, mounting frame, tool and meshes) from the current base
// plane onto plane. External axes stay where they are.
func (r *Robot) SetBasePlane(plane spatialmath.Plane) {
	if r.basePlane.IsValid() && plane.IsValid() {
		r.transformRobotGeometry(spatialmath.PlaneToPlane(r.basePlane, plane))
	}
	r.basePlane = plane
	r.update()
}

// SetMountingFrame replaces the flange plane and re-attaches the tool to it.
func (r *Robot) SetMountingFrame(plane spatialmath.Plane) {
	r.mountingFrame = plane
	r.tool = r.attachTool(r.tool)
	r.update()
}

// SetInternalAxisPlanes replaces the six internal axis planes.
func (r *Robot) SetInternalAxisPlanes(planes []spatialmath.Plane) error {
	if len(planes) != 6 {
		return kinematics.NewInvalidPlaneCountError(len(planes))
	}
	copy(r.internalAxisPlanes[:], planes)
	r.update()
	return nil
}

// SetInternalAxisLimits replaces the six internal axis limits.
func (r *Robot) SetInternalAxisLimits(limits []referenceframe.Limit) error {
	if len(limits) != 6 {
		return referenceframe.NewIncorrectDoFError(len(limits), 6)
	}
	copy(r.internalAxisLimits[:], limits)
	r.update()
	return nil
}

// SetTool attaches a copy of t to the mounting frame. A nil tool restores tool0.
func (r *Robot) SetTool(t *tool.Tool) {
	if t == nil {
		t = tool.Default()
	}
	r.tool = r.attachTool(t)
	r.update()
}

// Transform applies pose to the robot and to every attached external axis.
func (r *Robot) Transform(pose spatialmath.Pose) {
	r.basePlane = r.basePlane.Transform(pose)
	r.transformRobotGeometry(pose)
	for _, ax := range r.externalAxes {
		ax.Transform(pose)
	}
	r.update()
}

func (r *Robot) transformRobotGeometry(pose spatialmath.Pose) {
	for i, pl := range r.internalAxisPlanes {
		r.internalAxisPlanes[i] = pl.Transform(pose)
	}
	r.mountingFrame = r.mountingFrame.Transform(pose)
	r.tool.Transform(pose)
	for i, m := range r.meshes {
		r.meshes[i] = m.Transform(pose)
	}
	for i, m := range r.posedMeshes {
		r.posedMeshes[i] = m.Transform(pose)
	}
}
