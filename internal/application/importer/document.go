package importer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/marketplace/backend/internal/domain/shared"
)

// PriceList is a supplier feed decoded from JSON or YAML. Suppliers
// produce these files with a variety of tools, so the category and
// parameter shapes are deliberately lenient.
type PriceList struct {
	Shop       string         `json:"shop" yaml:"shop"`
	Categories []CategoryDecl `json:"categories" yaml:"categories"`
	Goods      []Good         `json:"goods" yaml:"goods"`
}

// CategoryDecl is a category declared at the top of the feed. Goods may
// reference it by the declared ID instead of spelling the name out.
type CategoryDecl struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Good is one catalog position in the feed.
type Good struct {
	ID         int64       `json:"id" yaml:"id"`
	Category   CategoryRef `json:"category" yaml:"category"`
	Model      string      `json:"model" yaml:"model"`
	Name       string      `json:"name" yaml:"name"`
	Price      Amount      `json:"price" yaml:"price"`
	PriceRRC   Amount      `json:"price_rrc" yaml:"price_rrc"`
	Quantity   int         `json:"quantity" yaml:"quantity"`
	Parameters Parameters  `json:"parameters" yaml:"parameters"`
}

// CategoryRef accepts the three spellings seen in real feeds: an inline
// object with id and name, a bare name string, or a declared ID.
type CategoryRef struct {
	ID   int64
	Name string
}

func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}
	switch trimmed[0] {
	case '{':
		var obj struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		r.ID, r.Name = obj.ID, obj.Name
		return nil
	case '"':
		return json.Unmarshal(data, &r.Name)
	default:
		return json.Unmarshal(data, &r.ID)
	}
}

func (r *CategoryRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var obj struct {
			ID   int64  `yaml:"id"`
			Name string `yaml:"name"`
		}
		if err := node.Decode(&obj); err != nil {
			return err
		}
		r.ID, r.Name = obj.ID, obj.Name
		return nil
	case yaml.ScalarNode:
		if id, err := strconv.ParseInt(node.Value, 10, 64); err == nil {
			r.ID = id
			return nil
		}
		r.Name = node.Value
		return nil
	default:
		return fmt.Errorf("unsupported category reference on line %d", node.Line)
	}
}

// IsZero reports whether the good carried no category reference at all.
func (r CategoryRef) IsZero() bool {
	return r.ID == 0 && r.Name == ""
}

// Amount is a decimal price that decodes from JSON numbers and strings
// as well as YAML scalars.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	return a.Decimal.UnmarshalJSON(data)
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("invalid price on line %d", node.Line)
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", node.Value, err)
	}
	a.Decimal = d
	return nil
}

// ParameterKV is one characteristic of a good, rendered to a string
// value regardless of the scalar type the feed used.
type ParameterKV struct {
	Name  string
	Value string
}

// Parameters accepts either a mapping of name to value or a list of
// {name, value} objects. Mapping order in JSON is not defined, so map
// form is sorted by name to keep imports deterministic.
type Parameters []ParameterKV

func (p *Parameters) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}
	if trimmed[0] == '[' {
		var list []struct {
			Name  string      `json:"name"`
			Value interface{} `json:"value"`
		}
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		for _, kv := range list {
			*p = append(*p, ParameterKV{Name: kv.Name, Value: formatScalar(kv.Value)})
		}
		return nil
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	var m map[string]interface{}
	if err := dec.Decode(&m); err != nil {
		return err
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		*p = append(*p, ParameterKV{Name: name, Value: formatScalar(m[name])})
	}
	return nil
}

func (p *Parameters) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		// YAML mappings keep document order
		for i := 0; i+1 < len(node.Content); i += 2 {
			*p = append(*p, ParameterKV{
				Name:  node.Content[i].Value,
				Value: node.Content[i+1].Value,
			})
		}
		return nil
	case yaml.SequenceNode:
		var list []struct {
			Name  string `yaml:"name"`
			Value string `yaml:"value"`
		}
		if err := node.Decode(&list); err != nil {
			return err
		}
		for _, kv := range list {
			*p = append(*p, ParameterKV{Name: kv.Name, Value: kv.Value})
		}
		return nil
	default:
		return fmt.Errorf("unsupported parameters shape on line %d", node.Line)
	}
}

func formatScalar(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// DecodePriceList parses a price list from JSON or YAML bytes and
// validates its structure. Structural problems are INVALID_PRICE_LIST
// domain errors so callers reject the whole file without touching the
// shop's catalog.
func DecodePriceList(data []byte) (*PriceList, error) {
	if len(data) == 0 {
		return nil, shared.NewDomainError("INVALID_PRICE_LIST", "file is empty")
	}
	if !utf8.Valid(data) {
		return nil, shared.NewDomainError("INVALID_PRICE_LIST", "file is not valid UTF-8 text")
	}

	var doc PriceList
	if json.Valid(data) {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, shared.NewDomainErrorf("INVALID_PRICE_LIST", "invalid JSON price list: %v", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, shared.NewDomainErrorf("INVALID_PRICE_LIST", "invalid YAML price list: %v", err)
		}
	}

	if strings.TrimSpace(doc.Shop) == "" {
		return nil, shared.NewDomainError("INVALID_PRICE_LIST", "shop name is required")
	}
	if doc.Goods == nil {
		return nil, shared.NewDomainError("INVALID_PRICE_LIST", "goods list is required")
	}

	return &doc, nil
}
