// Package yaml adapts YAML documents to the JSON value model so YAML input
// (configs, manifests) can be decoded with unused-input warnings. YAML
// mappings preserve key order, matching the ordered-object data model.
package yaml

import (
	"fmt"
	"strconv"

	y "gopkg.in/yaml.v3"

	strictjson "github.com/reoring/strictjson"
)

// aliasDepthLimit bounds alias expansion; yaml.v3 rejects cyclic aliases
// already, this guards against pathological chains.
const aliasDepthLimit = 1000

// Parse converts a YAML document into a JSON Value. Syntax errors and
// non-JSON-representable constructs (non-string mapping keys, unsupported
// tags) are reported as errors, which Decode maps to the bad-input outcome.
func Parse(data []byte) (strictjson.Value, error) {
	var root y.Node
	if err := y.Unmarshal(data, &root); err != nil {
		return strictjson.Value{}, err
	}
	if root.Kind == 0 {
		// empty document
		return strictjson.NullValue(), nil
	}
	return fromNode(&root, 0)
}

// fromNode converts one YAML node; aliasDepth counts alias hops only, so
// plain deep nesting is never rejected.

// Decode parses YAML and runs the decoder against the resulting value.
func Decode[T any](d strictjson.Decoder[T], data []byte) strictjson.Result[T] {
	v, err := Parse(data)
	if err != nil {
		return strictjson.Result[T]{Outcome: strictjson.OutcomeBadInput, InputErr: err}
	}
	return strictjson.DecodeValue(d, v)
}

func fromNode(n *y.Node, aliasDepth int) (strictjson.Value, error) {
	if aliasDepth > aliasDepthLimit {
		return strictjson.Value{}, fmt.Errorf("yaml: alias nesting too deep")
	}
	switch n.Kind {
	case y.DocumentNode:
		if len(n.Content) == 0 {
			return strictjson.NullValue(), nil
		}
		return fromNode(n.Content[0], aliasDepth)
	case y.AliasNode:
		return fromNode(n.Alias, aliasDepth+1)
	case y.SequenceNode:
		items := make([]strictjson.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c, aliasDepth)
			if err != nil {
				return strictjson.Value{}, err
			}
			items = append(items, v)
		}
		return strictjson.ArrayValue(items...), nil
	case y.MappingNode:
		members := make([]strictjson.Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == y.AliasNode {
				k = k.Alias
			}
			if k.Kind != y.ScalarNode || k.Tag != "!!str" {
				return strictjson.Value{}, fmt.Errorf("yaml: line %d: mapping key is not a string", k.Line)
			}
			cv, err := fromNode(v, aliasDepth)
			if err != nil {
				return strictjson.Value{}, err
			}
			members = upsert(members, k.Value, cv)
		}
		return strictjson.ObjectValue(members...), nil
	case y.ScalarNode:
		return fromScalar(n)
	default:
		return strictjson.Value{}, fmt.Errorf("yaml: line %d: unsupported node kind", n.Line)
	}
}

func fromScalar(n *y.Node) (strictjson.Value, error) {
	switch n.Tag {
	case "!!null":
		return strictjson.NullValue(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return strictjson.Value{}, fmt.Errorf("yaml: line %d: bad bool %q", n.Line, n.Value)
		}
		return strictjson.BoolValue(b), nil
	case "!!int":
		// base 0 handles yaml's hex/octal spellings
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return strictjson.Value{}, fmt.Errorf("yaml: line %d: bad int %q", n.Line, n.Value)
		}
		return strictjson.IntValue(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return strictjson.Value{}, fmt.Errorf("yaml: line %d: bad float %q", n.Line, n.Value)
		}
		return strictjson.FloatValue(f), nil
	case "!!str", "!!timestamp":
		return strictjson.StringValue(n.Value), nil
	default:
		return strictjson.Value{}, fmt.Errorf("yaml: line %d: tag %s is not representable in JSON", n.Line, n.Tag)
	}
}

// upsert keeps the mapping's last value for a repeated key, in first-seen
// position, mirroring the JSON builder.
func upsert(members []strictjson.Member, key string, v strictjson.Value) []strictjson.Member {
	for i := range members {
		if members[i].Key == key {
			members[i].Value = v
			return members
		}
	}
	return append(members, strictjson.Member{Key: key, Value: v})
}
