package kinematics

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/rapidkin/externalaxis"
	"go.viam.com/rapidkin/logging"
	"go.viam.com/rapidkin/referenceframe"
	"go.viam.com/rapidkin/spatialmath"
	"go.viam.com/rapidkin/tool"
)

var irb120 = Parameters{A1: 0, A2: -70, A3: 0, B: 0, C1: 290, C2: 270, C3: 302, C4: 72}

var irb6700 = Parameters{A1: 320, A2: -200, A3: 0, B: 0, C1: 780, C2: 1125, C3: 1142.5, C4: 200}

type testModel struct {
	params Parameters
	base   spatialmath.Plane
	axes   []externalaxis.Axis
	tool   *tool.Tool
}

func newTestModel(params Parameters, base spatialmath.Plane) *testModel {
	return &testModel{params: params, base: base, tool: tool.Default()}
}

func (m *testModel) Name() string {
	return "test"
}

func (m *testModel) BasePlane() spatialmath.Plane {
	return m.base
}

func (m *testModel) KinematicParameters() Parameters {
	return m.params
}

func (m *testModel) InternalAxisLimits() [6]referenceframe.Limit {
	return [6]referenceframe.Limit{
		{Min: -180, Max: 180},
		{Min: -110, Max: 110},
		{Min: -110, Max: 70},
		{Min: -160, Max: 160},
		{Min: -120, Max: 120},
		{Min: -400, Max: 400},
	}
}

func (m *testModel) ExternalAxes() []externalaxis.Axis {
	out := make([]externalaxis.Axis, len(m.axes))
	for i, ax := range m.axes {
		out[i] = ax.Clone()
	}
	return out
}

func (m *testModel) Tool() *tool.Tool {
	_, mounting := m.params.AxisPlanes(m.base)
	return m.tool.Attach(mounting)
}

func (m *testModel) Meshes() []*spatialmath.Mesh {
	planes, _ := m.params.AxisPlanes(m.base)
	dims := r3.Vector{X: 20, Y: 20, Z: 20}
	meshes := []*spatialmath.Mesh{spatialmath.NewBoxMesh(m.base.Pose(), dims)}
	for _, pl := range planes {
		meshes = append(meshes, spatialmath.NewBoxMesh(pl.Pose(), dims))
	}
	return append(meshes, m.Tool().Mesh())
}

func rotatedBase() spatialmath.Plane {
	return spatialmath.NewPlane(r3.Vector{X: 100, Y: 200, Z: 50}, r3.Vector{Y: 1}, r3.Vector{X: -1})
}

func TestParametersRoundTrip(t *testing.T) {
	for name, params := range map[string]Parameters{
		"irb120":  irb120,
		"irb6700": irb6700,
		"offsets": {A1: 25, A2: -35, A3: 12, B: 40, C1: 400, C2: 560, C3: 515, C4: 80},
	} {
		t.Run(name, func(t *testing.T) {
			for _, base := range []spatialmath.Plane{spatialmath.WorldXY(), rotatedBase(), spatialmath.WorldYZ()} {
				planes, mounting := params.AxisPlanes(base)
				derived := ParametersFromAxisPlanes(base, planes)
				test.That(t, derived.AlmostEqual(params, 1e-9), test.ShouldBeTrue)
				test.That(t, derived.IsValid(), test.ShouldBeTrue)
				test.That(t, spatialmath.R3VectorAlmostEqual(mounting.Origin, planes[5].Origin, 1e-9), test.ShouldBeTrue)
			}
		})
	}

	test.That(t, Parameters{A1: math.NaN()}.IsValid(), test.ShouldBeFalse)
}

func TestArmLengths(t *testing.T) {
	planes, _ := irb120.AxisPlanes(rotatedBase())
	lower, upper, elbow := ArmLengths(rotatedBase(), planes)
	test.That(t, lower, test.ShouldAlmostEqual, 270)
	test.That(t, upper, test.ShouldAlmostEqual, math.Hypot(302, 70))
	test.That(t, elbow, test.ShouldAlmostEqual, lower+upper)
}

func TestForwardKinematicsZeroPose(t *testing.T) {
	model := newTestModel(irb120, spatialmath.WorldXY())
	sol := NewForwardKinematics(model, logging.NewTestLogger(t)).Calculate(
		referenceframe.RobotJointPosition{}, referenceframe.NewExternalJointPosition())

	test.That(t, sol.InLimits, test.ShouldBeTrue)
	test.That(t, sol.ErrorText, test.ShouldBeEmpty)
	test.That(t, spatialmath.R3VectorAlmostEqual(sol.TCPPlane.Origin, r3.Vector{X: 374, Z: 630}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(sol.TCPPlane.ZAxis(), r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(sol.TCPPlane.XAxis, r3.Vector{Z: -1}, 1e-9), test.ShouldBeTrue)
	test.That(t, len(sol.RobotMeshes), test.ShouldEqual, 8)
}

func TestForwardKinematicsPosesLinks(t *testing.T) {
	model := newTestModel(irb120, rotatedBase())
	joints := referenceframe.NewRobotJointPosition(30, 20, -40, 50, 60, 70)
	sol := NewForwardKinematics(model, nil).Calculate(joints, referenceframe.NewExternalJointPosition())

	for i := 0; i < 6; i++ {
		center := sol.RobotMeshes[i+1].BoundingBox().Center()
		test.That(t, spatialmath.R3VectorAlmostEqual(center, sol.InternalAxisPlanes[i].Origin, 1e-6), test.ShouldBeTrue)
	}
	test.That(t, spatialmath.PlaneAlmostEqual(sol.TCPPlane, sol.MountingFrame, 1e-9), test.ShouldBeTrue)

	t.Run("axis 1 rotates about the base normal", func(t *testing.T) {
		zero := NewForwardKinematics(model, nil).Calculate(referenceframe.RobotJointPosition{}, referenceframe.NewExternalJointPosition())
		turned := NewForwardKinematics(model, nil).Calculate(
			referenceframe.NewRobotJointPosition(90, 0, 0, 0, 0, 0), referenceframe.NewExternalJointPosition())
		base := rotatedBase()
		expected := zero.TCPPlane.Transform(spatialmath.NewRotationAboutAxis(base.Origin, base.ZAxis(), math.Pi/2))
		test.That(t, spatialmath.PlaneAlmostEqual(turned.TCPPlane, expected, 1e-9), test.ShouldBeTrue)
	})

	t.Run("limits are reported", func(t *testing.T) {
		out := NewForwardKinematics(model, nil)
		out.HideMeshes(true)
		sol := out.Calculate(referenceframe.NewRobotJointPosition(0, 0, 100, 0, 0, 0), referenceframe.NewExternalJointPosition())
		test.That(t, sol.InLimits, test.ShouldBeFalse)
		test.That(t, len(sol.ErrorText), test.ShouldEqual, 1)
		test.That(t, sol.ErrorText[0], test.ShouldContainSubstring, "Internal axis 3")
		test.That(t, sol.RobotMeshes, test.ShouldBeEmpty)
	})
}

func TestInverseKinematicsRoundTrip(t *testing.T) {
	for name, params := range map[string]Parameters{"irb120": irb120, "irb6700": irb6700} {
		model := newTestModel(params, rotatedBase())
		fk := NewForwardKinematics(model, nil)
		ik := NewInverseKinematics(model, logging.NewTestLogger(t))

		for _, joints := range []referenceframe.RobotJointPosition{
			referenceframe.NewRobotJointPosition(30, 20, -40, 50, 60, 70),
			referenceframe.NewRobotJointPosition(-100, -30, 45, -120, -45, 10),
			referenceframe.NewRobotJointPosition(170, 60, 30, 10, 90, -170),
			referenceframe.NewRobotJointPosition(-20, 10, 120, 0, 35, 0),
			referenceframe.NewRobotJointPosition(10, -70, 20, 30, -100, 80),
		} {
			t.Run(name+joints.ToRAPID(), func(t *testing.T) {
				target := fk.Calculate(joints, referenceframe.NewExternalJointPosition()).TCPPlane
				cfg := ik.Configuration(joints)

				sol, err := ik.Calculate(target, cfg, referenceframe.NewExternalJointPosition())
				test.That(t, err, test.ShouldBeNil)
				test.That(t, sol.Reachable, test.ShouldBeTrue)
				test.That(t, sol.AxisConfig, test.ShouldEqual, cfg)
				test.That(t, sol.RobotJointPosition.AlmostEqual(joints, 1e-6), test.ShouldBeTrue)

				all, err := ik.CalculateAll(target, referenceframe.NewExternalJointPosition())
				test.That(t, err, test.ShouldBeNil)
				test.That(t, len(all), test.ShouldEqual, NumConfigurations)
				for _, other := range all {
					if !other.Reachable {
						continue
					}
					reached := fk.Calculate(other.RobotJointPosition, referenceframe.NewExternalJointPosition()).TCPPlane
					test.That(t, spatialmath.PlaneAlmostEqual(reached, target, 1e-6), test.ShouldBeTrue)
					test.That(t, ik.Configuration(other.RobotJointPosition), test.ShouldEqual, other.AxisConfig)
				}

				test.That(t, ClosestSolution(joints, all).RobotJointPosition.AlmostEqual(joints, 1e-6), test.ShouldBeTrue)
			})
		}
	}
}

func TestInverseKinematicsWithTool(t *testing.T) {
	model := newTestModel(irb120, spatialmath.WorldXY())
	model.tool = tool.New(tool.Config{
		Name:      "pen",
		ToolPlane: spatialmath.NewPlane(r3.Vector{X: 10, Z: 100}, r3.Vector{X: 1}, r3.Vector{Y: 1}),
		Mass:      0.5,
	})
	joints := referenceframe.NewRobotJointPosition(15, 25, -10, 30, 40, 50)
	target := NewForwardKinematics(model, nil).Calculate(joints, referenceframe.NewExternalJointPosition()).TCPPlane

	flange := NewForwardKinematics(model, nil).Calculate(joints, referenceframe.NewExternalJointPosition()).MountingFrame
	test.That(t, target.Origin.Sub(flange.Origin).Norm(), test.ShouldAlmostEqual, math.Hypot(10, 100))

	ik := NewInverseKinematics(model, nil)
	sol, err := ik.Calculate(target, ik.Configuration(joints), referenceframe.NewExternalJointPosition())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sol.RobotJointPosition.AlmostEqual(joints, 1e-6), test.ShouldBeTrue)
}

func TestInverseKinematicsErrors(t *testing.T) {
	model := newTestModel(irb120, spatialmath.WorldXY())
	ik := NewInverseKinematics(model, nil)

	_, err := ik.Calculate(spatialmath.WorldXY(), 8, referenceframe.NewExternalJointPosition())
	test.That(t, errors.Is(err, ErrInvalidAxisConfig), test.ShouldBeTrue)
	_, err = ik.Calculate(spatialmath.WorldXY(), -1, referenceframe.NewExternalJointPosition())
	test.That(t, errors.Is(err, ErrInvalidAxisConfig), test.ShouldBeTrue)

	offset := irb120
	offset.A3 = 10
	_, err = NewInverseKinematics(newTestModel(offset, spatialmath.WorldXY()), nil).Calculate(
		spatialmath.WorldXY(), 0, referenceframe.NewExternalJointPosition())
	test.That(t, errors.Is(err, ErrNonSphericalWrist), test.ShouldBeTrue)

	t.Run("unreachable targets are solved best effort", func(t *testing.T) {
		logger, logs := logging.NewObservedTestLogger(t)
		far := spatialmath.NewPlane(r3.Vector{X: 5000, Z: 600}, r3.Vector{Z: -1}, r3.Vector{Y: 1})
		sol, err := NewInverseKinematics(model, logger).Calculate(far, 0, referenceframe.NewExternalJointPosition())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, sol.Reachable, test.ShouldBeFalse)
		test.That(t, sol.InLimits, test.ShouldBeFalse)
		test.That(t, sol.ErrorText[0], test.ShouldContainSubstring, "out of reach")
		test.That(t, logs.FilterMessage("inverse kinematics target out of reach").Len(), test.ShouldEqual, 1)
	})
}

func TestConfiguration(t *testing.T) {
	test.That(t, Configuration(irb120, referenceframe.NewRobotJointPosition(0, 0, 0, 0, 30, 0)), test.ShouldEqual, 0)
	test.That(t, Configuration(irb120, referenceframe.NewRobotJointPosition(0, 0, 0, 0, -30, 0)), test.ShouldEqual, ConfigWristFlipped)
	test.That(t, Configuration(irb120, referenceframe.NewRobotJointPosition(0, 0, 120, 0, 30, 0))&ConfigElbowDown,
		test.ShouldEqual, ConfigElbowDown)
	test.That(t, Configuration(irb120, referenceframe.NewRobotJointPosition(180, 0, 0, 0, 30, 0))&ConfigShoulderBack, test.ShouldEqual, 0)
	test.That(t, Configuration(irb120, referenceframe.NewRobotJointPosition(0, -100, 0, 0, 30, 0))&ConfigShoulderBack,
		test.ShouldEqual, ConfigShoulderBack)
}

func TestRobotMovingExternalAxis(t *testing.T) {
	track, err := externalaxis.NewLinearAxis(externalaxis.Config{
		Name:       "track",
		AxisPlane:  spatialmath.NewPlane(r3.Vector{}, r3.Vector{Y: 1}, r3.Vector{Z: 1}),
		Limits:     referenceframe.Limit{Min: -2000, Max: 2000},
		AxisLogic:  "A",
		MovesRobot: true,
	})
	test.That(t, err, test.ShouldBeNil)
	model := newTestModel(irb120, spatialmath.WorldXY())
	model.axes = []externalaxis.Axis{track}

	fk := NewForwardKinematics(model, nil)
	ext := referenceframe.ExternalJointPositionFromValues(500, 9e9, 9e9, 9e9, 9e9, 9e9)
	sol := fk.Calculate(referenceframe.RobotJointPosition{}, ext)
	test.That(t, spatialmath.R3VectorAlmostEqual(sol.TCPPlane.Origin, r3.Vector{X: 874, Z: 630}, 1e-9), test.ShouldBeTrue)
	test.That(t, sol.BasePlane.Origin.X, test.ShouldAlmostEqual, 500)
	test.That(t, len(sol.ExternalAxisMeshes), test.ShouldEqual, 1)

	t.Run("defined value is used", func(t *testing.T) {
		ik := NewInverseKinematics(model, nil)
		inv, err := ik.Calculate(sol.TCPPlane, 0, ext)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, inv.ExternalJointPosition.Get(0), test.ShouldEqual, 500.0)
		test.That(t, inv.RobotJointPosition.AlmostEqual(referenceframe.RobotJointPosition{}, 1e-6), test.ShouldBeTrue)
	})

	t.Run("unconnected value takes the closest valid value", func(t *testing.T) {
		target := spatialmath.NewPlane(r3.Vector{X: 1374, Z: 630}, r3.Vector{Z: -1}, r3.Vector{Y: 1})
		inv, err := NewInverseKinematics(model, nil).Calculate(target, 0, referenceframe.NewExternalJointPosition())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, inv.ExternalJointPosition.Get(0), test.ShouldAlmostEqual, 1374)
		test.That(t, inv.Reachable, test.ShouldBeTrue)

		reached := fk.Calculate(inv.RobotJointPosition, inv.ExternalJointPosition).TCPPlane
		test.That(t, spatialmath.PlaneAlmostEqual(reached, target, 1e-6), test.ShouldBeTrue)
	})

	t.Run("out of range track values are clamped and reported", func(t *testing.T) {
		far := referenceframe.ExternalJointPositionFromValues(2500, 9e9, 9e9, 9e9, 9e9, 9e9)
		sol := fk.Calculate(referenceframe.RobotJointPosition{}, far)
		test.That(t, sol.BasePlane.Origin.X, test.ShouldAlmostEqual, 2000)
		test.That(t, sol.InLimits, test.ShouldBeFalse)
		test.That(t, sol.ErrorText[0], test.ShouldContainSubstring, "External axis A")
	})
}
