package referenceframe

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestRobotJointPositionNaN(t *testing.T) {
	jp := NewRobotJointPosition(1, math.NaN(), 3, 4, 5, 6)
	test.That(t, jp.Get(1), test.ShouldEqual, 0.0)

	jp.Set(4, math.NaN())
	test.That(t, jp.Get(4), test.ShouldEqual, 0.0)

	_, err := RobotJointPositionFromSlice(make([]float64, 7))
	test.That(t, err, test.ShouldNotBeNil)

	short, err := RobotJointPositionFromSlice([]float64{10, 20})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, short.Slice(), test.ShouldResemble, []float64{10, 20, 0, 0, 0, 0})
}

func TestRobotJointPositionArithmetic(t *testing.T) {
	a := NewRobotJointPosition(1, 2, 3, 4, 5, 6)
	b := NewRobotJointPosition(6, 5, 4, 3, 2, 1)

	test.That(t, a.Add(b).Values(), test.ShouldResemble, [6]float64{7, 7, 7, 7, 7, 7})
	test.That(t, a.Sub(b).Get(0), test.ShouldEqual, -5.0)
	test.That(t, a.Mul(b).Get(2), test.ShouldEqual, 12.0)
	test.That(t, a.MulScalar(2).Get(5), test.ShouldEqual, 12.0)
	test.That(t, a.AddScalar(1).SubScalar(1), test.ShouldResemble, a)

	q, err := a.Div(b)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, q.Get(3), test.ShouldAlmostEqual, 4.0/3.0)

	t.Run("divide by a zero element", func(t *testing.T) {
		dividend := NewRobotJointPosition(10, 20, 30, 40, 50, 60)
		_, err := dividend.Div(NewRobotJointPosition(1, 2, 0, 4, 5, 6))
		test.That(t, errors.Is(err, ErrDivideByZero), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "index 2")
	})

	t.Run("divide by zero scalar", func(t *testing.T) {
		_, err := a.DivScalar(0)
		test.That(t, errors.Is(err, ErrDivideByZero), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldEqual, "scalar divisor: division by zero")

		_, err = NewExternalJointPosition().DivScalar(0)
		test.That(t, errors.Is(err, ErrDivideByZero), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldNotContainSubstring, "index")
	})

	t.Run("clone is independent", func(t *testing.T) {
		c := a.Clone()
		c.Set(0, 100)
		test.That(t, a.Get(0), test.ShouldEqual, 1.0)
	})
}

func TestRobotJointPositionRAPID(t *testing.T) {
	jp := NewRobotJointPosition(0, 0, 0, 0, 45, 0)
	test.That(t, jp.ToRAPID(), test.ShouldEqual, "[0, 0, 0, 0, 45, 0]")

	jp = NewRobotJointPosition(1.23456789, -0.5, 0, 0, 0, 0)
	test.That(t, jp.ToRAPID(), test.ShouldEqual, "[1.234568, -0.5, 0, 0, 0, 0]")
}

func TestExternalJointPositionSentinel(t *testing.T) {
	jp := NewExternalJointPosition()
	for i := 0; i < NumAxes; i++ {
		test.That(t, jp.IsDefined(i), test.ShouldBeFalse)
		test.That(t, jp.Get(i), test.ShouldEqual, UndefinedAxisValue)
	}

	jp.Set(0, math.NaN())
	test.That(t, jp.IsDefined(0), test.ShouldBeFalse)

	jp.Set(0, 500)
	test.That(t, jp.Get(0), test.ShouldEqual, 500.0)
	test.That(t, jp.ToRAPID(), test.ShouldEqual, "[500, 9E9, 9E9, 9E9, 9E9, 9E9]")

	v, err := jp.GetByLetter("a")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldEqual, 500.0)

	test.That(t, jp.SetByLetter("C", 12), test.ShouldBeNil)
	test.That(t, jp.Get(2), test.ShouldEqual, 12.0)

	_, err = jp.GetByLetter("g")
	test.That(t, errors.Is(err, ErrInvalidAxisLetter), test.ShouldBeTrue)
}

func TestExternalJointPositionArithmetic(t *testing.T) {
	a := ExternalJointPositionFromValues(10, 9e9, 9e9, 9e9, 9e9, 20)
	b := ExternalJointPositionFromValues(5, 9e9, 9e9, 9e9, 9e9, 4)

	sum, err := a.Add(b)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sum.Get(0), test.ShouldEqual, 15.0)
	test.That(t, sum.IsDefined(1), test.ShouldBeFalse)
	test.That(t, sum.Get(5), test.ShouldEqual, 24.0)

	scaled := a.MulScalar(2)
	test.That(t, scaled.Get(0), test.ShouldEqual, 20.0)
	test.That(t, scaled.Get(3), test.ShouldEqual, UndefinedAxisValue)

	t.Run("mismatch", func(t *testing.T) {
		c := ExternalJointPositionFromValues(5, 1, 9e9, 9e9, 9e9, 4)
		_, err := a.Sub(c)
		test.That(t, errors.Is(err, ErrAxisMismatch), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "external axis B")
	})

	t.Run("divide by zero", func(t *testing.T) {
		c := ExternalJointPositionFromValues(5, 9e9, 9e9, 9e9, 9e9, 0)
		_, err := a.Div(c)
		test.That(t, errors.Is(err, ErrDivideByZero), test.ShouldBeTrue)
	})
}

func TestJointPositionJSON(t *testing.T) {
	ext := ExternalJointPositionFromValues(1, 9e9, 9e9, 9e9, 9e9, 9e9)
	data, err := json.Marshal(ext)
	test.That(t, err, test.ShouldBeNil)

	var decoded ExternalJointPosition
	test.That(t, json.Unmarshal(data, &decoded), test.ShouldBeNil)
	test.That(t, decoded.AlmostEqual(ext, 1e-12), test.ShouldBeTrue)

	var robot RobotJointPosition
	test.That(t, json.Unmarshal([]byte(`[1, 2, 3, 4, 5, 6]`), &robot), test.ShouldBeNil)
	test.That(t, robot, test.ShouldResemble, NewRobotJointPosition(1, 2, 3, 4, 5, 6))
}

func TestLimit(t *testing.T) {
	l := NewLimit(100, 0)
	test.That(t, l, test.ShouldResemble, Limit{Min: 0, Max: 100})
	test.That(t, l.Contains(0), test.ShouldBeTrue)
	test.That(t, l.Contains(100), test.ShouldBeTrue)
	test.That(t, l.Contains(100.0001), test.ShouldBeFalse)
	test.That(t, l.Clamp(150), test.ShouldEqual, 100.0)
	test.That(t, l.Clamp(l.Clamp(-3)), test.ShouldEqual, l.Clamp(-3))
	test.That(t, l.IsValid(), test.ShouldBeTrue)
	test.That(t, Limit{Min: 1, Max: 0}.IsValid(), test.ShouldBeFalse)
	test.That(t, Limit{Min: math.NaN(), Max: 0}.IsValid(), test.ShouldBeFalse)
	test.That(t, l.String(), test.ShouldEqual, "[0, 100]")
}

func TestAxisLetters(t *testing.T) {
	test.That(t, AxisLetter(0), test.ShouldEqual, "A")
	test.That(t, AxisLetter(5), test.ShouldEqual, "F")
	test.That(t, AxisLetter(-1), test.ShouldEqual, "-1")

	i, err := AxisIndexFromLetter("e")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, i, test.ShouldEqual, 4)
}
