package request

import (
	"bytes"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"

	"osrm_api/pkg/status"
)

// Envelope keys shared by every service.
const (
	keyService     = "service"
	keyVersion     = "version"
	keyProfile     = "profile"
	keyCoordinates = "coordinates"
	keyFormat      = "format"
)

// rawValue is an undecoded member value of a JSON or YAML object.
type rawValue interface {
	decode(dst any) error
	isNull() bool
}

type jsonValue json.RawMessage

func (v jsonValue) decode(dst any) error { return json.Unmarshal(v, dst) }

func (v jsonValue) isNull() bool { return string(bytes.TrimSpace(v)) == "null" }

type yamlValue struct{ node *yaml.Node }

func (v yamlValue) decode(dst any) error {
	if err := checkTags(v.node, reflect.TypeOf(dst)); err != nil {
		return err
	}
	return v.node.Decode(dst)
}

func (v yamlValue) isNull() bool { return v.node.ShortTag() == "!!null" }

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// checkTags rejects scalars whose resolved tag does not match the Go type
// they decode into, so YAML accepts exactly the values JSON does: "yes" is
// not a bool and 1 is not a string. Null is accepted and decodes as absent.
func checkTags(node *yaml.Node, t reflect.Type) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	tag := node.ShortTag()
	if tag == "!!null" {
		return nil
	}

	var want []string
	switch k := t.Kind(); {
	case reflect.PointerTo(t).Implements(textUnmarshalerType), k == reflect.String:
		want = []string{"!!str"}
	case k == reflect.Bool:
		want = []string{"!!bool"}
	case k >= reflect.Int && k <= reflect.Uint64:
		want = []string{"!!int"}
	case k == reflect.Float32, k == reflect.Float64:
		want = []string{"!!int", "!!float"}
	case k == reflect.Slice && node.Kind == yaml.SequenceNode:
		for _, item := range node.Content {
			if err := checkTags(item, t.Elem()); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
	if node.Kind != yaml.ScalarNode || !slices.Contains(want, tag) {
		return fmt.Errorf("line %d: cannot decode %s %q into %s", node.Line, tag, node.Value, t)
	}
	return nil
}

// ParseJSON decodes a request from a JSON object.
func ParseJSON(data []byte) (*Request, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, status.Errorf(status.InvalidQuery, "malformed request: %w", err)
	}
	if fields == nil {
		return nil, status.Errorf(status.InvalidQuery, "request must be an object")
	}
	raw := make(map[string]rawValue, len(fields))
	for k, v := range fields {
		raw[k] = jsonValue(v)
	}
	return decode(raw)
}

// ParseYAML decodes a request from a YAML mapping.
func ParseYAML(data []byte) (*Request, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, status.Errorf(status.InvalidQuery, "malformed request: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, status.Errorf(status.InvalidQuery, "empty request")
	}
	return decodeYAMLNode(doc.Content[0])
}

func decodeYAMLNode(node *yaml.Node) (*Request, error) {
	if node.Kind != yaml.MappingNode {
		return nil, status.Errorf(status.InvalidQuery, "request must be a mapping")
	}
	raw := make(map[string]rawValue, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, dup := raw[key]; dup {
			return nil, status.Errorf(status.InvalidQuery, "line %d: duplicate key %q", node.Content[i].Line, key)
		}
		raw[key] = yamlValue{node: node.Content[i+1]}
	}
	return decode(raw)
}

// UnmarshalJSON implements json.Unmarshaler. Syntax errors in the enclosing
// document are reported by encoding/json before this is called; use
// ParseJSON to have them classified as InvalidQuery.
func (r *Request) UnmarshalJSON(data []byte) error {
	req, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*r = *req
	return nil
}

func (r *Request) UnmarshalYAML(node *yaml.Node) error {
	req, err := decodeYAMLNode(node)
	if err != nil {
		return err
	}
	*r = *req
	return nil
}

func decode(raw map[string]rawValue) (*Request, error) {
	svc, err := decodeService(raw)
	if err != nil {
		return nil, err
	}
	req := &Request{Service: svc}

	if v, ok := raw[keyVersion]; ok {
		if err := v.decode(&req.Version); err != nil {
			return nil, status.Errorf(status.InvalidVersion, "version must be a string")
		}
	}

	v, ok := requiredMember(raw, keyProfile)
	if !ok {
		return nil, status.Errorf(status.InvalidQuery, "missing profile")
	}
	if err := v.decode(&req.Profile); err != nil {
		return nil, optionError(keyProfile, err)
	}

	v, ok = requiredMember(raw, keyCoordinates)
	if !ok {
		return nil, status.Errorf(status.InvalidQuery, "missing coordinates")
	}
	if req.Coordinates, err = decodeCoordinates(v); err != nil {
		return nil, err
	}

	if v, ok := raw[keyFormat]; ok {
		if err := v.decode(&req.Format); err != nil {
			return nil, optionError(keyFormat, err)
		}
	}

	if err := decodeOptions(svc, raw); err != nil {
		return nil, err
	}
	return req, nil
}

func decodeService(raw map[string]rawValue) (Service, error) {
	v, ok := requiredMember(raw, keyService)
	if !ok {
		return nil, status.Errorf(status.InvalidService, "missing service")
	}
	var tag string
	if err := v.decode(&tag); err != nil {
		return nil, status.Errorf(status.InvalidService, "service must be a string")
	}
	kind, err := ParseServiceKind(tag)
	if err != nil {
		return nil, err
	}
	return kind.newService()
}

// requiredMember returns the value of a required key. A null value counts as missing.
func requiredMember(raw map[string]rawValue, key string) (rawValue, bool) {
	v, ok := raw[key]
	if !ok || v.isNull() {
		return nil, false
	}
	return v, true
}

func decodeCoordinates(v rawValue) ([]orb.Point, error) {
	var pairs [][]float64
	if err := v.decode(&pairs); err != nil {
		return nil, status.Errorf(status.InvalidQuery, "coordinates must be a list of [longitude, latitude] pairs")
	}
	coords := make([]orb.Point, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, status.Errorf(status.InvalidQuery, "coordinate %d has %d values, want 2", i, len(p))
		}
		coords[i] = orb.Point{p[0], p[1]}
	}
	return coords, nil
}

// decodeOptions decodes every non-envelope member into the service's
// options. Members the service does not declare are rejected.
func decodeOptions(svc Service, raw map[string]rawValue) error {
	opts := svc.options()
	keys := make([]string, 0, len(raw))
	for k := range raw {
		switch k {
		case keyService, keyVersion, keyProfile, keyCoordinates, keyFormat:
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		i := slices.IndexFunc(opts, func(o option) bool { return o.key == k })
		if i < 0 {
			return status.Errorf(status.InvalidOptions, "option %q is not supported by the %s service", k, svc.Kind())
		}
		if err := raw[k].decode(opts[i].dst); err != nil {
			return optionError(k, err)
		}
	}
	return nil
}

// optionError classifies a failure to decode a known member. Errors that
// already carry a status keep it.
func optionError(key string, err error) error {
	var se *status.Error
	if errors.As(err, &se) {
		return err
	}
	return status.Errorf(status.InvalidOptions, "invalid value for %s: %w", key, err)
}

// member is a key/value pair in wire order.
type member struct {
	key   string
	value any
}

func (r Request) members() ([]member, error) {
	if r.Service == nil {
		return nil, status.Errorf(status.InvalidService, "request has no service")
	}
	coords := r.Coordinates
	if coords == nil {
		coords = []orb.Point{}
	}
	ms := []member{{keyService, r.Service.Kind()}}
	if r.Version != nil {
		ms = append(ms, member{keyVersion, *r.Version})
	}
	ms = append(ms,
		member{keyProfile, r.Profile},
		member{keyCoordinates, coords},
		member{keyFormat, r.Format},
	)
	for _, o := range r.Service.options() {
		if o.present {
			ms = append(ms, member{o.key, o.dst})
		}
	}
	return ms, nil
}

// MarshalJSON writes the request as a flat object: envelope members first,
// then the options of the service in declaration order. Omitted optional
// options are left out.
func (r Request) MarshalJSON() ([]byte, error) {
	ms, err := r.members()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range ms {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(m.key)
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r Request) MarshalYAML() (any, error) {
	ms, err := r.members()
	if err != nil {
		return nil, err
	}
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, m := range ms {
		var val yaml.Node
		if err := val.Encode(m.value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: m.key},
			&val,
		)
	}
	return node, nil
}
