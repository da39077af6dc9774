package robot

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/invopop/jsonschema"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"

	"go.viam.com/rapidkin/logging"
	"go.viam.com/rapidkin/rapid"
	"go.viam.com/rapidkin/spatialmath"
	"go.viam.com/rapidkin/utils"
)

// document is the persisted form of a robot: the config tagged with the version that wrote it.
type document struct {
	Version int `json:"version"`
	Config
}

// MarshalJSON writes the robot config tagged with the current version.
func (r *Robot) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{Version: utils.CurrentVersionNumber(), Config: r.Config()})
}

// FromJSON builds a robot from a versioned JSON document.
func FromJSON(data []byte, logger logging.Logger) (*Robot, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "cannot decode robot document")
	}
	return fromDocument(doc, logger)
}

// FromAttributes builds a robot from a generic attribute map, as found in larger configuration files. Keys
// follow the JSON document; unknown keys are logged and ignored. A missing version means the current one.
func FromAttributes(attributes map[string]interface{}, logger logging.Logger) (*Robot, error) {
	logger = logging.OrNop(logger)
	var doc document
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Squash:     true,
		Result:     &doc,
		Metadata:   &md,
		DecodeHook: mapstructure.DecodeHookFuncType(meshDecodeHook),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "cannot decode robot attributes")
	}
	if len(md.Unused) != 0 {
		logger.Warnw("ignoring unknown robot attributes", "keys", strings.Join(md.Unused, ", "))
	}
	if _, ok := attributes["version"]; !ok {
		doc.Version = utils.CurrentVersionNumber()
	}
	return fromDocument(doc, logger)
}

func fromDocument(doc document, logger logging.Logger) (*Robot, error) {
	if err := utils.CheckVersionNumber(doc.Version); err != nil {
		return nil, err
	}
	return New(doc.Config, logger)
}

var meshType = reflect.TypeOf(spatialmath.Mesh{})

// meshDecodeHook decodes meshes through their JSON form, since their vertex and face lists are not exported.
func meshDecodeHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != meshType || from.Kind() != reflect.Map {
		return data, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var m spatialmath.Mesh
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Schema returns the JSON schema of the robot document.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&document{})
}

// Table renders the axis planes and limits of the robot, one row per internal and external axis.
func (r *Robot) Table() string {
	t := table.NewWriter()
	t.SetTitle(r.String())
	t.AppendHeader(table.Row{"Axis", "Kind", "Origin", "Direction", "Limits"})
	for i, pl := range r.internalAxisPlanes {
		t.AppendRow(table.Row{
			fmt.Sprintf("rax_%d", i+1), "rotational",
			rapid.FormatPoint(pl.Origin), rapid.FormatPoint(pl.ZAxis()), r.internalAxisLimits[i],
		})
	}
	for _, ax := range r.externalAxes {
		pl := ax.AxisPlane()
		t.AppendRow(table.Row{
			fmt.Sprintf("eax_%s (%s)", strings.ToLower(ax.AxisLogic()), ax.Name()),
			ax.Kind(), rapid.FormatPoint(pl.Origin), rapid.FormatPoint(pl.ZAxis()), ax.Limits(),
		})
	}
	return t.Render()
}
