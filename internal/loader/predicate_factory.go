package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/intentfilter"
	"github.com/intentfw/ifw/internal/predicate"
)

// stringAttrTags maps a predicate element's XML tag to the leaf
// attribute it inspects.
var stringAttrTags = map[string]predicate.Attr{
	"action":             predicate.AttrAction,
	"component":          predicate.AttrComponent,
	"component-name":     predicate.AttrComponentName,
	"component-package":  predicate.AttrComponentPackage,
	"data":               predicate.AttrData,
	"host":               predicate.AttrHost,
	"mime-type":          predicate.AttrMimeType,
	"scheme":             predicate.AttrScheme,
	"path":               predicate.AttrPath,
	"ssp":                predicate.AttrSSP,
}

// parsePredicate builds the Predicate tree rooted at el. An
// unrecognized tag is a per-rule parse error, as is a malformed leaf
// (bad mode, uncompilable regex, wrong child count for <not>).
func parsePredicate(el *etree.Element) (predicate.Predicate, error) {
	tag := el.Tag

	if attr, ok := stringAttrTags[tag]; ok {
		return parseStringLeaf(attr, el)
	}

	switch tag {
	case "and":
		return parseCombinator(el, func(children []predicate.Predicate) predicate.Predicate {
			return &predicate.And{Children: children}
		})
	case "or":
		return parseCombinator(el, func(children []predicate.Predicate) predicate.Predicate {
			return &predicate.Or{Children: children}
		})
	case "not":
		children, err := parseChildren(el)
		if err != nil {
			return nil, err
		}
		if len(children) != 1 {
			return nil, fmt.Errorf("<not> requires exactly one child, got %d", len(children))
		}
		return &predicate.Not{Child: children[0]}, nil
	case "category":
		name := el.SelectAttrValue("name", "")
		return &predicate.Category{Name: name}, nil
	case "port":
		return parsePort(el)
	case "sender":
		class, err := parseClass(el)
		if err != nil {
			return nil, err
		}
		return &predicate.Sender{Want: class}, nil
	case "target":
		class, err := parseClass(el)
		if err != nil {
			return nil, err
		}
		return &predicate.Target{Want: class}, nil
	case "sender-package":
		return &predicate.SenderPackage{Name: el.SelectAttrValue("name", "")}, nil
	case "target-package":
		return &predicate.TargetPackage{Name: el.SelectAttrValue("name", "")}, nil
	case "sender-permission":
		return &predicate.SenderPermission{Name: el.SelectAttrValue("name", "")}, nil
	case "target-permission":
		return &predicate.TargetPermission{Name: el.SelectAttrValue("name", "")}, nil
	case "intent-filter":
		f, err := parseIntentFilter(el)
		if err != nil {
			return nil, err
		}
		return &predicate.IntentFilterLeaf{Filter: f}, nil
	case "provisioned":
		return &predicate.Provisioned{}, nil
	default:
		return nil, fmt.Errorf("unrecognized predicate element <%s>", tag)
	}
}

func parseChildren(el *etree.Element) ([]predicate.Predicate, error) {
	var children []predicate.Predicate
	for _, child := range el.ChildElements() {
		p, err := parsePredicate(child)
		if err != nil {
			return nil, err
		}
		children = append(children, p)
	}
	return children, nil
}

func parseCombinator(el *etree.Element, build func([]predicate.Predicate) predicate.Predicate) (predicate.Predicate, error) {
	children, err := parseChildren(el)
	if err != nil {
		return nil, err
	}
	return build(children), nil
}

func parseStringLeaf(attr predicate.Attr, el *etree.Element) (predicate.Predicate, error) {
	mode, literal, err := parseModeAttr(el)
	if err != nil {
		return nil, err
	}
	return predicate.NewStringLeaf(attr, mode, literal)
}

// modeAttrOrder is the closed set of accepted attribute names, in a
// fixed order so two attributes present at once deterministically
// report the first.
var modeAttrOrder = []string{"equals", "starts-with", "contains", "pattern", "regex"}

func parseModeAttr(el *etree.Element) (predicate.Mode, string, error) {
	for _, name := range modeAttrOrder {
		if v := el.SelectAttr(name); v != nil {
			mode, ok := predicate.ModeFromAttr(name)
			if !ok {
				return 0, "", fmt.Errorf("unknown match mode %q", name)
			}
			return mode, v.Value, nil
		}
	}
	return 0, "", fmt.Errorf("<%s> requires one of equals|starts-with|contains|pattern|regex", el.Tag)
}

func parsePort(el *etree.Element) (predicate.Predicate, error) {
	if v := el.SelectAttrValue("value", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid port value %q: %w", v, err)
		}
		return predicate.NewExactPort(n), nil
	}
	low := el.SelectAttrValue("low", "")
	high := el.SelectAttrValue("high", "")
	if low == "" || high == "" {
		return nil, fmt.Errorf("<port> requires value, or both low and high")
	}
	lo, err := strconv.Atoi(low)
	if err != nil {
		return nil, fmt.Errorf("invalid port low %q: %w", low, err)
	}
	hi, err := strconv.Atoi(high)
	if err != nil {
		return nil, fmt.Errorf("invalid port high %q: %w", high, err)
	}
	return &predicate.Port{Low: lo, High: hi}, nil
}

func parseClass(el *etree.Element) (predicate.Class, error) {
	v := el.SelectAttrValue("type", "")
	class, ok := predicate.ClassFromAttr(v)
	if !ok {
		return 0, fmt.Errorf("<%s> requires type one of signature|system|user, got %q", el.Tag, v)
	}
	return class, nil
}

func parseIntentFilter(el *etree.Element) (*intentfilter.Filter, error) {
	f := &intentfilter.Filter{}
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "action":
			name := child.SelectAttrValue("name", "")
			if name == "" {
				return nil, fmt.Errorf("<action> requires name")
			}
			f.Actions = append(f.Actions, name)
		case "category":
			name := child.SelectAttrValue("name", "")
			if name == "" {
				return nil, fmt.Errorf("<category> requires name")
			}
			f.Categories = append(f.Categories, name)
		case "data":
			spec, err := parseDataSpec(child)
			if err != nil {
				return nil, err
			}
			f.Data = append(f.Data, spec)
		default:
			return nil, fmt.Errorf("unrecognized <intent-filter> child <%s>", child.Tag)
		}
	}
	return f, nil
}

func parseDataSpec(el *etree.Element) (intentfilter.DataSpec, error) {
	spec := intentfilter.DataSpec{
		MimeType: el.SelectAttrValue("mimeType", ""),
		Scheme:   el.SelectAttrValue("scheme", ""),
		Host:     el.SelectAttrValue("host", ""),
	}
	if portAttr := el.SelectAttrValue("port", ""); portAttr != "" {
		p, err := strconv.Atoi(portAttr)
		if err != nil {
			return spec, fmt.Errorf("invalid data port %q: %w", portAttr, err)
		}
		spec.Port = p
	}
	switch {
	case el.SelectAttr("pathPrefix") != nil:
		spec.Path = el.SelectAttrValue("pathPrefix", "")
		spec.PathKind = intentfilter.PathPrefix
	case el.SelectAttr("pathPattern") != nil:
		spec.Path = el.SelectAttrValue("pathPattern", "")
		spec.PathKind = intentfilter.PathPattern
	case el.SelectAttr("path") != nil:
		spec.Path = el.SelectAttrValue("path", "")
		spec.PathKind = intentfilter.PathLiteral
	}
	if spec.MimeType == "" && spec.Scheme == "" {
		return spec, fmt.Errorf("<data> requires at least one of mimeType or scheme")
	}
	return spec, nil
}

func parseComponentFilter(el *etree.Element) (intent.Component, error) {
	flat := el.SelectAttrValue("name", "")
	c, ok := intent.ParseComponent(flat)
	if !ok {
		return intent.Component{}, fmt.Errorf("<component-filter> has missing or unparseable name %q", flat)
	}
	return c, nil
}

func boolAttr(el *etree.Element, name string) bool {
	return strings.EqualFold(el.SelectAttrValue(name, "false"), "true")
}
