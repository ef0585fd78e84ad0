package elements

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/scene/pkg/scene"
)

// parseSize decodes a non-negative size. Unset yields 0.
func parseSize(kind, key string, value *string) (float64, error) {
	if value == nil {
		return 0, nil
	}
	f, err := strconv.ParseFloat(*value, 64)
	if err == nil && f < 0 {
		err = fmt.Errorf("negative size")
	}
	if err != nil {
		return 0, scene.InvalidAttribute(kind, key, *value, err)
	}
	return f, nil
}

// parseColor decodes a color. Unset yields no color.
func parseColor(kind, key string, value *string) (scene.Color, error) {
	if value == nil {
		return 0, nil
	}
	c, err := scene.ParseColor(*value)
	if err != nil {
		return 0, scene.InvalidAttribute(kind, key, *value, err)
	}
	return c, nil
}

// parseFlag decodes a boolean attribute. A present attribute with an empty
// value is true, the way HTML boolean attributes behave.
func parseFlag(kind, key string, value *string) (bool, error) {
	if value == nil {
		return false, nil
	}
	if *value == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(*value)
	if err != nil {
		return false, scene.InvalidAttribute(kind, key, *value, err)
	}
	return b, nil
}

func parseDirection(kind, key string, value *string) (scene.Direction, error) {
	if value == nil {
		return scene.Column, nil
	}
	switch *value {
	case "column", "":
		return scene.Column, nil
	case "row":
		return scene.Row, nil
	}
	return 0, scene.InvalidAttribute(kind, key, *value, fmt.Errorf("want row or column"))
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
