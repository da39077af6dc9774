package robot

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/rapidkin/externalaxis"
	"go.viam.com/rapidkin/referenceframe"
)

// AttachExternalAxes returns a copy of the robot coordinating exactly the given axes. The axes are cloned;
// unassigned axes receive the lowest free logic number in list order. The receiver is left untouched, and no
// robot is returned unless the result validates.
func (r *Robot) AttachExternalAxes(axes ...externalaxis.Axis) (*Robot, error) {
	out := r.Clone()
	if err := out.setExternalAxes(axes); err != nil {
		return nil, err
	}
	out.update()
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// DetachExternalAxes returns a copy of the robot without external axes.
func (r *Robot) DetachExternalAxes() *Robot {
	out := r.Clone()
	out.externalAxes = nil
	out.update()
	return out
}

// MovingExternalAxis returns the external axis that carries the robot, or nil.
func (r *Robot) MovingExternalAxis() externalaxis.Axis {
	ax, ok := lo.Find(r.externalAxes, externalaxis.Axis.MovesRobot)
	if !ok {
		return nil
	}
	return ax.Clone()
}

func (r *Robot) setExternalAxes(axes []externalaxis.Axis) error {
	clones := lo.Map(axes, func(ax externalaxis.Axis, _ int) externalaxis.Axis {
		return ax.Clone()
	})
	if err := checkExternalAxes(clones); err != nil {
		return err
	}

	used := lo.Map(clones, func(ax externalaxis.Axis, _ int) int { return ax.AxisNumber() })
	for _, ax := range clones {
		if ax.AxisNumber() != externalaxis.Unassigned {
			continue
		}
		free, _ := lo.Find(lo.Range(referenceframe.NumAxes), func(n int) bool { return !lo.Contains(used, n) })
		if err := ax.SetAxisNumber(free); err != nil {
			return err
		}
		used = append(used, free)
		r.logger.Debugw("assigned external axis logic", "robot", r.name, "axis", ax.Name(), "logic", ax.AxisLogic())
	}
	r.externalAxes = clones
	return nil
}

// checkExternalAxes reports the structural problems of an external axis list: too many axes, more than one
// robot moving axis, or a logic number used twice. Unassigned axes are not duplicates of each other.
func checkExternalAxes(axes []externalaxis.Axis) error {
	var err error
	if len(axes) > referenceframe.NumAxes {
		err = multierr.Append(err, errors.Wrapf(ErrTooManyExternalAxes, "got %d", len(axes)))
	}
	if movers := lo.CountBy(axes, externalaxis.Axis.MovesRobot); movers > 1 {
		err = multierr.Append(err, errors.Wrapf(ErrMultipleMovingAxes, "got %d", movers))
	}
	assigned := lo.FilterMap(axes, func(ax externalaxis.Axis, _ int) (int, bool) {
		return ax.AxisNumber(), ax.AxisNumber() != externalaxis.Unassigned
	})
	for _, n := range lo.FindDuplicates(assigned) {
		err = multierr.Append(err, errors.Wrapf(ErrDuplicateAxisLogicNumber, "axis logic %s", referenceframe.AxisLetter(n)))
	}
	return err
}
