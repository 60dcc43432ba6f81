package config

import (
	"reflect"
	"strconv"
	"strings"

	money "github.com/fireplan/fire-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// decodeLenient unmarshals YAML into out after rewriting numeric scalars
// that would not decode: "$1,200" becomes 1200, "7%" becomes 0.07 and
// anything unreadable becomes 0.
func decodeLenient(data []byte, out interface{}) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return err
	}
	if root.Kind == 0 {
		return nil
	}
	coerceNode(&root, reflect.TypeOf(out))
	return root.Decode(out)
}

// yamlFieldName returns the key a struct field decodes from.
func yamlFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("yaml")
	if tag == "-" {
		return ""
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		return strings.ToLower(f.Name)
	}
	return name
}

func coerceNode(n *yaml.Node, t reflect.Type) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch n.Kind {
	case yaml.DocumentNode:
		for _, c := range n.Content {
			coerceNode(c, t)
		}
	case yaml.AliasNode:
	case yaml.MappingNode:
		switch t.Kind() {
		case reflect.Struct:
			fields := make(map[string]reflect.Type, t.NumField())
			for i := 0; i < t.NumField(); i++ {
				f := t.Field(i)
				if f.IsExported() {
					fields[yamlFieldName(f)] = f.Type
				}
			}
			for i := 0; i+1 < len(n.Content); i += 2 {
				if ft, ok := fields[n.Content[i].Value]; ok {
					coerceNode(n.Content[i+1], ft)
				}
			}
		case reflect.Map:
			for i := 0; i+1 < len(n.Content); i += 2 {
				coerceNode(n.Content[i+1], t.Elem())
			}
		}
	case yaml.SequenceNode:
		if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			for _, c := range n.Content {
				coerceNode(c, t.Elem())
			}
		}
	case yaml.ScalarNode:
		coerceScalar(n, t)
	}
}

func coerceScalar(n *yaml.Node, t reflect.Type) {
	if n.Tag == "!!null" {
		return
	}
	v := strings.TrimSpace(n.Value)
	switch {
	case t == decimalType:
		var d decimal.Decimal
		if strings.HasSuffix(v, "%") {
			d = money.ParsePercent(v)
		} else {
			d = money.ParseMoney(v)
		}
		setNumber(n, d.String())
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Uint64:
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			return
		}
		setNumber(n, money.ParseMoney(v).Truncate(0).String())
	case t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64:
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return
		}
		setNumber(n, money.ParseMoney(v).String())
	case t.Kind() == reflect.Bool:
		if _, err := strconv.ParseBool(v); err == nil {
			return
		}
		switch strings.ToLower(v) {
		case "yes", "y", "on":
			n.Value, n.Tag, n.Style = "true", "!!bool", 0
		default:
			n.Value, n.Tag, n.Style = "false", "!!bool", 0
		}
	}
}

func setNumber(n *yaml.Node, v string) {
	n.Value = v
	n.Style = 0
	if strings.Contains(v, ".") {
		n.Tag = "!!float"
	} else {
		n.Tag = "!!int"
	}
}
