package utils

import (
	"reflect"
	"strings"
)

// GetFields lists the exported fields of a struct value or pointer in
// declaration order.
func GetFields(t any) []reflect.StructField {
	typeOf := reflect.TypeOf(t)
	if typeOf.Kind() == reflect.Pointer {
		typeOf = typeOf.Elem()
	}
	var result []reflect.StructField
	for i := 0; i < typeOf.NumField(); i++ {
		field := typeOf.Field(i)
		if field.IsExported() {
			result = append(result, field)
		}
	}
	return result
}

// ParquetTagToKeyValue splits a tag such as "name=id, type=INT32".
// Entries without '=' map to an empty value.
func ParquetTagToKeyValue(tag string) map[string]string {
	result := make(map[string]string)
	for _, entry := range strings.Split(tag, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, value, _ := strings.Cut(entry, "=")
		result[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return result
}

// ColumnName is the parquet column of a field, or the field name when the
// tag carries none.
func ColumnName(field reflect.StructField) string {
	if name := ParquetTagToKeyValue(field.Tag.Get("parquet"))["name"]; name != "" {
		return name
	}
	return field.Name
}
