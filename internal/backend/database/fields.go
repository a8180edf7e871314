package database

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type fieldKind int

const (
	stringField fieldKind = iota
	numberField
)

// imageFields lists the recognized input keys. Anything else, including
// a caller supplied id, is dropped.
var imageFields = map[string]fieldKind{
	"title":          stringField,
	"width":          numberField,
	"filterId":       numberField,
	"image":          stringField,
	"createdAt":      stringField,
	"processedImage": stringField,
}

// ImageFromFields builds an Image from a decoded JSON object, casting
// values to the schema types. The returned image has no id.
func ImageFromFields(fields map[string]any) (*Image, error) {
	image := &Image{}
	for key, value := range fields {
		kind, ok := imageFields[key]
		if !ok {
			continue
		}

		var err error
		switch kind {
		case stringField:
			var s *string
			if s, err = castString(value); err == nil {
				assignString(image, key, s)
			}
		case numberField:
			var n *float64
			if n, err = castNumber(value); err == nil {
				assignNumber(image, key, n)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidField, key, err)
		}
	}
	return image, nil
}

func assignString(image *Image, key string, value *string) {
	switch key {
	case "title":
		image.Title = value
	case "image":
		image.Image = value
	case "createdAt":
		image.CreatedAt = value
	case "processedImage":
		image.ProcessedImage = value
	}
}

func assignNumber(image *Image, key string, value *float64) {
	switch key {
	case "width":
		image.Width = value
	case "filterId":
		image.FilterID = value
	}
}

func castString(value any) (*string, error) {
	var s string
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		s = v
	case bool:
		s = strconv.FormatBool(v)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		s = v.String()
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	default:
		return nil, fmt.Errorf("cannot cast %T to string", value)
	}
	return &s, nil
}

func castNumber(value any) (*float64, error) {
	var n float64
	switch v := value.(type) {
	case nil:
		return nil, nil
	case float64:
		n = v
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case bool:
		if v {
			n = 1
		}
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to number", v.String())
		}
		n = f
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to number", v)
		}
		n = f
	default:
		return nil, fmt.Errorf("cannot cast %T to number", value)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, fmt.Errorf("%v is not a finite number", n)
	}
	return &n, nil
}
