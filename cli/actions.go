package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/yosuke-furukawa/json5/encoding/json5"

	"go.viam.com/rapidkin/kinematics"
	"go.viam.com/rapidkin/logging"
	"go.viam.com/rapidkin/rapid"
	"go.viam.com/rapidkin/robot"
	"go.viam.com/rapidkin/spatialmath"
)

func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}

func newLogger(c *cli.Context) logging.Logger {
	if c.Bool(flagDebug) {
		return logging.NewDebugLogger("rapidkin")
	}
	return logging.NewLogger("rapidkin")
}

// loadRobot returns the robot described by the --robot document, or the --preset robot on the world XY plane.
// Documents are read as JSON5 so hand written files may carry comments.
func loadRobot(c *cli.Context, logger logging.Logger) (*robot.Robot, error) {
	if path := c.Path(flagRobot); path != "" {
		//nolint:gosec
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var attributes map[string]interface{}
		if err := json5.Unmarshal(data, &attributes); err != nil {
			return nil, errors.Wrapf(err, "cannot read robot document %s", path)
		}
		return robot.FromAttributes(attributes, logger)
	}
	return robot.NewPreset(robot.Preset(c.String(flagPreset)), spatialmath.WorldXY(), logger)
}

func declarationHeader(c *cli.Context) (rapid.Scope, rapid.VariableType, error) {
	scope, err := rapid.ParseScope(c.String(flagScope))
	if err != nil {
		return "", "", err
	}
	vt, err := rapid.ParseVariableType(c.String(flagVariable))
	if err != nil {
		return "", "", err
	}
	return scope, vt, nil
}

// PresetsAction lists the robot presets.
func PresetsAction(c *cli.Context) error {
	for _, p := range robot.Presets() {
		printf(c.App.Writer, "%s", p)
	}
	return nil
}

// ParamsAction prints the axes and OPW parameters of a robot.
func ParamsAction(c *cli.Context) error {
	r, err := loadRobot(c, newLogger(c))
	if err != nil {
		return err
	}
	if err := r.Validate(); err != nil {
		return err
	}
	printf(c.App.Writer, "%s", r.Table())

	p := r.KinematicParameters()
	t := table.NewWriter()
	t.AppendHeader(table.Row{"a1", "a2", "a3", "b", "c1", "c2", "c3", "c4"})
	t.AppendRow(table.Row{p.A1, p.A2, p.A3, p.B, p.C1, p.C2, p.C3, p.C4})
	printf(c.App.Writer, "%s", t.Render())
	printf(c.App.Writer, "lower arm %.3f, upper arm %.3f", r.LowerArmLength(), r.UpperArmLength())
	return nil
}

// FKAction poses a robot and prints the tool center point as a robtarget declaration.
func FKAction(c *cli.Context) error {
	logger := newLogger(c)
	r, err := loadRobot(c, logger)
	if err != nil {
		return err
	}
	joints, err := rapid.ParseJointPosition(c.String(flagJoints))
	if err != nil {
		return errors.Wrap(err, "invalid --joints")
	}
	ext, err := rapid.ParseExternalJointPosition(c.String(flagExtax))
	if err != nil {
		return errors.Wrap(err, "invalid --extax")
	}
	scope, vt, err := declarationHeader(c)
	if err != nil {
		return err
	}

	sol := r.ForwardKinematics(joints, ext)
	target := rapid.NewRobotTarget(c.String(flagName), sol.TCPPlane, r.AxisConfiguration(joints), ext)
	target.Scope, target.VariableType = scope, vt
	printf(c.App.Writer, "%s", target.ToRAPIDDeclaration())
	for _, msg := range sol.ErrorText {
		printf(c.App.ErrWriter, "%s", msg)
	}
	return nil
}

// parseTarget accepts a robtarget declaration or a bare robtarget literal.
func parseTarget(text string) (*rapid.RobotTarget, error) {
	if !strings.Contains(text, ":=") {
		text = "VAR robtarget target := " + text
	}
	return rapid.ParseRobotTarget(text)
}

// IKAction solves the joint position of a robot for a robtarget and prints it as a jointtarget declaration.
func IKAction(c *cli.Context) error {
	logger := newLogger(c)
	r, err := loadRobot(c, logger)
	if err != nil {
		return err
	}
	target, err := parseTarget(c.String(flagTarget))
	if err != nil {
		return errors.Wrap(err, "invalid --target")
	}
	scope, vt, err := declarationHeader(c)
	if err != nil {
		return err
	}

	var solutions []*kinematics.InverseSolution
	if c.Bool(flagAll) {
		solutions, err = r.InverseKinematicsAll(target.Plane, target.ExternalJointPosition)
	} else {
		cfg := target.AxisConfig
		if c.Int(flagConfig) >= 0 {
			cfg = c.Int(flagConfig)
		}
		var sol *kinematics.InverseSolution
		sol, err = r.InverseKinematics(target.Plane, cfg, target.ExternalJointPosition)
		solutions = append(solutions, sol)
	}
	if err != nil {
		return err
	}

	for _, sol := range solutions {
		name := c.String(flagName)
		if c.Bool(flagAll) {
			name = fmt.Sprintf("%s_cfg%d", name, sol.AxisConfig)
		}
		jt := rapid.NewJointTarget(name, sol.RobotJointPosition, sol.ExternalJointPosition)
		jt.Scope, jt.VariableType = scope, vt
		printf(c.App.Writer, "%s", jt.ToRAPIDDeclaration())
		for _, msg := range sol.ErrorText {
			printf(c.App.ErrWriter, "%s: %s", name, msg)
		}
	}
	return nil
}

// SchemaAction prints the JSON schema of robot documents.
func SchemaAction(c *cli.Context) error {
	data, err := json.MarshalIndent(robot.Schema(), "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", data)
	return nil
}
