package robot

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/rapidkin/externalaxis"
	"go.viam.com/rapidkin/kinematics"
	"go.viam.com/rapidkin/logging"
	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
	"go.viam.com/rapidkin/tool"
)

var irb120Params = kinematics.Parameters{A1: 0, A2: -70, A3: 0, B: 0, C1: 290, C2: 270, C3: 302, C4: 72}

func newIRB120(t *testing.T, base spatialmath.Plane) *Robot {
	t.Helper()
	r, err := NewPreset(PresetIRB120, base, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return r
}

func newTrack(t *testing.T, logic string, movesRobot bool) externalaxis.Axis {
	t.Helper()
	ax, err := externalaxis.New(externalaxis.Config{
		Name:       "track",
		Kind:       externalaxis.KindLinear,
		AxisPlane:  spatialmath.NewPlane(r3.Vector{}, r3.Vector{Y: 1}, r3.Vector{Z: 1}),
		Limits:     referenceframe.Limit{Min: -2000, Max: 2000},
		AxisLogic:  logic,
		MovesRobot: movesRobot,
	})
	test.That(t, err, test.ShouldBeNil)
	return ax
}

func newTable(t *testing.T, logic string) externalaxis.Axis {
	t.Helper()
	ax, err := externalaxis.New(externalaxis.Config{
		Name:      "table",
		Kind:      externalaxis.KindRotational,
		AxisPlane: spatialmath.NewPlane(r3.Vector{X: 800}, r3.Vector{X: 1}, r3.Vector{Y: 1}),
		Limits:    referenceframe.Limit{Min: -180, Max: 180},
		AxisLogic: logic,
	})
	test.That(t, err, test.ShouldBeNil)
	return ax
}

func TestPresetRobot(t *testing.T) {
	r := newIRB120(t, spatialmath.WorldXY())
	test.That(t, r.State(), test.ShouldEqual, StateValid)
	test.That(t, r.Validate(), test.ShouldBeNil)
	test.That(t, r.String(), test.ShouldEqual, "Robot (IRB120)")
	test.That(t, cmp.Diff(r.KinematicParameters(), irb120Params, cmpopts.EquateApprox(0, 1e-9)), test.ShouldBeEmpty)
	test.That(t, r.LowerArmLength(), test.ShouldAlmostEqual, 270)
	test.That(t, r.UpperArmLength(), test.ShouldAlmostEqual, math.Hypot(302, 70))
	test.That(t, r.ElbowLength(), test.ShouldAlmostEqual, 270+math.Hypot(302, 70))
	test.That(t, len(r.Meshes()), test.ShouldEqual, 8)
	test.That(t, r.DoF()[0], test.ShouldResemble, referenceframe.Limit{Min: -165, Max: 165})
	test.That(t, r.Tool().Name(), test.ShouldEqual, tool.DefaultName)
	test.That(t, r.BoundingBox().Contains(r3.Vector{X: 374, Z: 630}), test.ShouldBeTrue)

	for _, l := range r.ExternalAxisLimits() {
		test.That(t, l.Min, test.ShouldEqual, referenceframe.UndefinedAxisValue)
	}

	_, err := NewPreset("IRB9999", spatialmath.WorldXY(), nil)
	test.That(t, errors.Is(err, ErrInvalidRobot), test.ShouldBeTrue)

	for _, name := range Presets() {
		r, err := NewPreset(name, spatialmath.WorldXY(), nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, r.IsValid(), test.ShouldBeTrue)
	}
}

func TestRobotKinematicsRoundTrip(t *testing.T) {
	base := spatialmath.NewPlane(r3.Vector{X: 250, Y: -100, Z: 40}, r3.Vector{Y: 1}, r3.Vector{X: -1})
	r := newIRB120(t, base)
	ext := referenceframe.NewExternalJointPosition()

	for _, joints := range []referenceframe.RobotJointPosition{
		referenceframe.NewRobotJointPosition(10, 20, 30, 40, 50, 60),
		referenceframe.NewRobotJointPosition(-45, -10, 15, -90, -30, 120),
		referenceframe.NewRobotJointPosition(120, 40, -60, 10, 80, -20),
	} {
		fk := r.ForwardKinematics(joints, ext)
		test.That(t, fk.InLimits, test.ShouldBeTrue)

		cfg := r.AxisConfiguration(joints)
		ik, err := r.InverseKinematics(fk.TCPPlane, cfg, ext)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ik.Reachable, test.ShouldBeTrue)
		test.That(t, ik.RobotJointPosition.AlmostEqual(joints, 1e-6), test.ShouldBeTrue)

		all, err := r.InverseKinematicsAll(fk.TCPPlane, ext)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, len(all), test.ShouldEqual, kinematics.NumConfigurations)
		test.That(t, all[cfg].RobotJointPosition.AlmostEqual(joints, 1e-6), test.ShouldBeTrue)
	}

	_, err := r.InverseKinematics(base, 8, ext)
	test.That(t, errors.Is(err, kinematics.ErrInvalidAxisConfig), test.ShouldBeTrue)
}

func TestRobotMutations(t *testing.T) {
	t.Run("base plane relocates the robot", func(t *testing.T) {
		r := newIRB120(t, spatialmath.WorldXY())
		base := spatialmath.NewPlane(r3.Vector{X: 1000, Y: 500}, r3.Vector{Y: 1}, r3.Vector{X: -1})
		r.SetBasePlane(base)
		test.That(t, r.State(), test.ShouldEqual, StateValid)
		test.That(t, cmp.Diff(r.KinematicParameters(), irb120Params, cmpopts.EquateApprox(0, 1e-9)), test.ShouldBeEmpty)

		tcp := r.ForwardKinematics(referenceframe.RobotJointPosition{}, referenceframe.NewExternalJointPosition()).TCPPlane
		test.That(t, spatialmath.R3VectorAlmostEqual(tcp.Origin, base.PointAt(374, 0, 630), 1e-9), test.ShouldBeTrue)
		test.That(t, spatialmath.R3VectorAlmostEqual(r.MountingFrame().Origin, base.PointAt(374, 0, 630), 1e-9),
			test.ShouldBeTrue)
	})

	t.Run("tool offsets the tcp", func(t *testing.T) {
		r := newIRB120(t, spatialmath.WorldXY())
		r.SetTool(tool.New(tool.Config{
			Name:      "gripper",
			ToolPlane: spatialmath.NewPlane(r3.Vector{Z: 100}, r3.Vector{X: 1}, r3.Vector{Y: 1}),
			Mass:      1.5,
		}))
		test.That(t, r.Tool().Name(), test.ShouldEqual, "gripper")
		tcp := r.ForwardKinematics(referenceframe.RobotJointPosition{}, referenceframe.NewExternalJointPosition()).TCPPlane
		test.That(t, spatialmath.R3VectorAlmostEqual(tcp.Origin, r3.Vector{X: 474, Z: 630}, 1e-9), test.ShouldBeTrue)

		r.SetTool(nil)
		test.That(t, r.Tool().Name(), test.ShouldEqual, tool.DefaultName)
	})

	t.Run("invalid geometry settles on invalid", func(t *testing.T) {
		r := newIRB120(t, spatialmath.WorldXY())
		planes := r.InternalAxisPlanes()
		broken := planes
		broken[3] = spatialmath.Plane{}
		test.That(t, r.SetInternalAxisPlanes(broken[:]), test.ShouldBeNil)
		test.That(t, r.State(), test.ShouldEqual, StateInvalid)
		test.That(t, r.String(), test.ShouldEqual, "Invalid Robot")
		err := r.Validate()
		test.That(t, errors.Is(err, ErrInvalidRobot), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "internal axis plane 4")

		test.That(t, r.SetInternalAxisPlanes(planes[:]), test.ShouldBeNil)
		test.That(t, r.State(), test.ShouldEqual, StateValid)

		err = r.SetInternalAxisPlanes(planes[:5])
		test.That(t, errors.Is(err, kinematics.ErrInvalidPlaneCount), test.ShouldBeTrue)
		err = r.SetInternalAxisLimits(make([]referenceframe.Limit, 5))
		test.That(t, err, test.ShouldNotBeNil)

		limits := r.InternalAxisLimits()
		limits[0] = referenceframe.Limit{Min: 10, Max: -10}
		test.That(t, r.SetInternalAxisLimits(limits[:]), test.ShouldBeNil)
		test.That(t, r.State(), test.ShouldEqual, StateInvalid)
	})

	t.Run("transform moves robot and axes", func(t *testing.T) {
		r := newIRB120(t, spatialmath.WorldXY())
		r, err := r.AttachExternalAxes(newTable(t, "A"))
		test.That(t, err, test.ShouldBeNil)

		shift := spatialmath.NewPoseFromPoint(r3.Vector{Z: 300})
		r.Transform(shift)
		test.That(t, r.BasePlane().Origin.Z, test.ShouldAlmostEqual, 300)
		test.That(t, r.ExternalAxes()[0].AxisPlane().Origin.Z, test.ShouldAlmostEqual, 300)
		test.That(t, r.ExternalAxisPlanes()[0].Origin.Z, test.ShouldAlmostEqual, 300)
		test.That(t, cmp.Diff(r.KinematicParameters(), irb120Params, cmpopts.EquateApprox(0, 1e-9)), test.ShouldBeEmpty)
	})

	t.Run("new rejects wrong counts", func(t *testing.T) {
		_, err := New(Config{Name: "r", InternalAxisPlanes: make([]spatialmath.Plane, 3)}, nil)
		test.That(t, errors.Is(err, kinematics.ErrInvalidPlaneCount), test.ShouldBeTrue)
	})
}

func TestAttachExternalAxes(t *testing.T) {
	r := newIRB120(t, spatialmath.WorldXY())

	t.Run("unassigned axes take the lowest free number", func(t *testing.T) {
		out, err := r.AttachExternalAxes(newTrack(t, "", true), newTable(t, "A"), newTable(t, "-1"))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, len(r.ExternalAxes()), test.ShouldEqual, 0)

		axes := out.ExternalAxes()
		test.That(t, len(axes), test.ShouldEqual, 3)
		test.That(t, axes[0].AxisLogic(), test.ShouldEqual, "B")
		test.That(t, axes[1].AxisLogic(), test.ShouldEqual, "A")
		test.That(t, axes[2].AxisLogic(), test.ShouldEqual, "C")
		test.That(t, out.MovingExternalAxis().Name(), test.ShouldEqual, "track")
		test.That(t, out.ExternalAxisLimits()[1], test.ShouldResemble, referenceframe.Limit{Min: -2000, Max: 2000})
		test.That(t, out.ExternalAxisLimits()[3].Max, test.ShouldEqual, referenceframe.UndefinedAxisValue)
		test.That(t, out.ExternalAxisPlanes()[3].IsValid(), test.ShouldBeFalse)

		test.That(t, out.DetachExternalAxes().ExternalAxes(), test.ShouldBeEmpty)
		test.That(t, out.DetachExternalAxes().MovingExternalAxis(), test.ShouldBeNil)
	})

	t.Run("caller axes are not aliased", func(t *testing.T) {
		track := newTrack(t, "", false)
		_, err := r.AttachExternalAxes(track)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, track.AxisNumber(), test.ShouldEqual, externalaxis.Unassigned)
	})

	t.Run("too many axes", func(t *testing.T) {
		var axes []externalaxis.Axis
		for i := 0; i < 7; i++ {
			axes = append(axes, newTable(t, ""))
		}
		_, err := r.AttachExternalAxes(axes...)
		test.That(t, errors.Is(err, ErrTooManyExternalAxes), test.ShouldBeTrue)
	})

	t.Run("more than one moving axis", func(t *testing.T) {
		_, err := r.AttachExternalAxes(newTrack(t, "A", true), newTrack(t, "B", true))
		test.That(t, errors.Is(err, ErrMultipleMovingAxes), test.ShouldBeTrue)
	})

	t.Run("duplicate logic numbers", func(t *testing.T) {
		_, err := r.AttachExternalAxes(newTable(t, "C"), newTable(t, "2"))
		test.That(t, errors.Is(err, ErrDuplicateAxisLogicNumber), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "axis logic C")
	})
}

func TestRobotOnTrack(t *testing.T) {
	r, err := newIRB120(t, spatialmath.WorldXY()).AttachExternalAxes(newTrack(t, "A", true))
	test.That(t, err, test.ShouldBeNil)

	ext := referenceframe.ExternalJointPositionFromValues(500, 9e9, 9e9, 9e9, 9e9, 9e9)
	sol := r.ForwardKinematics(referenceframe.RobotJointPosition{}, ext)
	test.That(t, spatialmath.R3VectorAlmostEqual(sol.TCPPlane.Origin, r3.Vector{X: 874, Z: 630}, 1e-9), test.ShouldBeTrue)
	test.That(t, sol.ExternalAxisPlanes[0].Origin.X, test.ShouldAlmostEqual, 500)

	meshes := r.PoseMeshes(referenceframe.RobotJointPosition{}, ext)
	test.That(t, len(meshes), test.ShouldEqual, 8)
	test.That(t, len(r.PosedMeshes()), test.ShouldEqual, 8)
	test.That(t, meshes[0].BoundingBox().Center().X, test.ShouldAlmostEqual, r.Meshes()[0].BoundingBox().Center().X+500)

	clone := r.Clone()
	clone.SetBasePlane(spatialmath.NewPlane(r3.Vector{Y: 100}, r3.Vector{X: 1}, r3.Vector{Y: 1}))
	test.That(t, r.BasePlane().Origin.Y, test.ShouldEqual, 0.0)
}

func TestRobotPoseMeshesPosesAxes(t *testing.T) {
	track, err := externalaxis.New(externalaxis.Config{
		Name:       "track",
		Kind:       externalaxis.KindLinear,
		AxisPlane:  spatialmath.NewPlane(r3.Vector{}, r3.Vector{Y: 1}, r3.Vector{Z: 1}),
		Limits:     referenceframe.Limit{Min: -2000, Max: 2000},
		LinkMesh:   spatialmath.NewBoxMesh(spatialmath.NewZeroPose(), r3.Vector{X: 400, Y: 400, Z: 20}),
		AxisLogic:  "A",
		MovesRobot: true,
	})
	test.That(t, err, test.ShouldBeNil)
	r, err := newIRB120(t, spatialmath.WorldXY()).AttachExternalAxes(track)
	test.That(t, err, test.ShouldBeNil)

	r.PoseMeshes(referenceframe.RobotJointPosition{}, referenceframe.ExternalJointPositionFromValues(500, 9e9, 9e9, 9e9, 9e9, 9e9))
	posed := r.ExternalAxes()[0].PosedMeshes()
	test.That(t, posed, test.ShouldHaveLength, 2)
	test.That(t, posed[1].BoundingBox().Center().X, test.ShouldAlmostEqual, 500)
}

func TestRobotLimits(t *testing.T) {
	r, err := newIRB120(t, spatialmath.WorldXY()).AttachExternalAxes(newTrack(t, "A", true))
	test.That(t, err, test.ShouldBeNil)

	messages := r.CheckInternalAxisLimits(referenceframe.NewRobotJointPosition(170, 0, 0, 0, 0, 0))
	test.That(t, messages, test.ShouldResemble,
		[]string{"Internal axis 1 of robot IRB120 is out of range: 170 is not in [-165, 165]."})
	test.That(t, r.CheckInternalAxisLimits(referenceframe.NewRobotJointPosition(165, 110, 70, 0, 0, 0)), test.ShouldBeEmpty)

	messages = r.CheckExternalAxisLimits(referenceframe.ExternalJointPositionFromValues(2500, 9e9, 9e9, 9e9, 9e9, 9e9))
	test.That(t, len(messages), test.ShouldEqual, 1)
	test.That(t, messages[0], test.ShouldContainSubstring, "External axis A (track)")
	test.That(t, r.CheckExternalAxisLimits(referenceframe.NewExternalJointPosition()), test.ShouldBeEmpty)
}
