package mjcf

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Vec is a numeric vector attribute: space-separated floats in the
// document, e.g. pos="0 0 1.5".
type Vec []float64

func ParseVec(s string) (Vec, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, nil
	}
	v := make(Vec, len(fields))
	for i, f := range fields {
		val, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("bad float %q", f)
		}
		v[i] = val
	}
	return v, nil
}

func (v Vec) String() string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

func (v *Vec) UnmarshalXMLAttr(attr xml.Attr) error {
	parsed, err := ParseVec(attr.Value)
	if err != nil {
		return fmt.Errorf("mjcf: attribute %s: %w", attr.Name.Local, err)
	}
	*v = parsed
	return nil
}

func (v Vec) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	if len(v) == 0 {
		return xml.Attr{}, nil
	}
	return xml.Attr{Name: name, Value: v.String()}, nil
}
