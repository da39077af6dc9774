// Package rapid formats and parses ABB RAPID data literals and declarations: joint positions, jointtarget,
// robtarget and the pose parts shared by tooldata and wobjdata.
package rapid

import (
	"strings"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/rapidkin/spatialmath"
	"go.viam.com/rapidkin/utils"
)

// FormatNumber formats a number the way RAPID literals are written: at most six decimals, no trailing zeros,
// and 9E9 for the unconnected axis value.
func FormatNumber(v float64) string {
	if v == 9e9 {
		return "9E9"
	}
	return utils.FormatNumber(v)
}

// FormatList joins already formatted items into a RAPID aggregate.
func FormatList(items ...string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

// FormatNumbers formats numbers as a RAPID aggregate.
func FormatNumbers(values ...float64) string {
	items := make([]string, len(values))
	for i, v := range values {
		items[i] = FormatNumber(v)
	}
	return FormatList(items...)
}

// FormatPoint formats a pos literal [x, y, z].
func FormatPoint(pt r3.Vector) string {
	return FormatNumbers(pt.X, pt.Y, pt.Z)
}

// FormatQuaternion formats an orient literal [q1, q2, q3, q4]. The sign is chosen so q1 is not negative.
func FormatQuaternion(q quat.Number) string {
	q = spatialmath.Normalize(q)
	if q.Real < 0 {
		q = spatialmath.Flip(q)
	}
	return FormatNumbers(q.Real, q.Imag, q.Jmag, q.Kmag)
}

// FormatPose formats a pose literal [[x, y, z], [q1, q2, q3, q4]].
func FormatPose(p spatialmath.Pose) string {
	return FormatList(FormatPoint(p.Point()), FormatQuaternion(p.Orientation().Quaternion()))
}

// FormatBool formats a RAPID bool literal.
func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
