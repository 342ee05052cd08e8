package query

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
	"github.com/gofiber/fiber/v2"
)

// ErrInvalidID is returned when a path id is not a positive integer
var ErrInvalidID = errors.New("invalid id")

// ParseID reads a positive integer path param
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}
	return uint(id), nil
}

// Page reads ?page=N, falling back to 1
func Page(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		return 1
	}
	return page
}

// UpdateFields builds a column map from the non-nil pointer fields of data.
// Columns are named after the json tag. Non-pointer fields are ignored.
func UpdateFields(data interface{}) map[string]interface{} {
	fields := map[string]interface{}{}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return fields
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return fields
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.Ptr || f.IsNil() {
			continue
		}
		column := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		if column == "" || column == "-" {
			continue
		}
		fields[column] = f.Elem().Interface()
	}

	return fields
}

// NullFields marks the listed nullable columns for clearing when body sends them as an
// explicit JSON null. UpdateFields cannot see these since a null leaves the pointer nil.
func NullFields(body []byte, fields map[string]interface{}, columns ...string) {
	for _, column := range columns {
		node, err := sonic.Get(body, column)
		if err == nil && node.TypeSafe() == ast.V_NULL {
			fields[column] = nil
		}
	}
}
