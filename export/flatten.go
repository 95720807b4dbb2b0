package export

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"unicode"
)

// Flatten turns a record batch into a Table with snake_case column names.
// Embedded structs flatten without a prefix, named sub-records flatten under
// their field name, map fields become one column per key, and slice fields
// render as JSON cells. Nil pointers register their column but leave the
// cell null.
func Flatten[T any](records []T) *Table {
	table := NewTable()
	for _, record := range records {
		row := Row{}
		flattenValue(table, row, reflect.ValueOf(record), "")
		table.Append(row)
	}
	return table
}

func flattenValue(table *Table, row Row, v reflect.Value, prefix string) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous {
			flattenValue(table, row, v.Field(i), prefix)
			continue
		}
		flattenField(table, row, v.Field(i), prefix+snakeCase(field.Name))
	}
}

func flattenField(table *Table, row Row, v reflect.Value, name string) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			if v.Type().Elem().Kind() != reflect.Struct {
				table.AddColumn(name)
			}
			return
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		flattenValue(table, row, v, name+"_")
	case reflect.Map:
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			column := name + "_" + snakeCase(k)
			table.AddColumn(column)
			setCell(row, column, v.MapIndex(reflect.ValueOf(k)))
		}
	case reflect.Slice:
		table.AddColumn(name)
		if v.Len() > 0 {
			if data, err := json.Marshal(v.Interface()); err == nil {
				row[name] = string(data)
			}
		}
	default:
		table.AddColumn(name)
		setCell(row, name, v)
	}
}

func setCell(row Row, column string, v reflect.Value) {
	switch v.Kind() {
	case reflect.String:
		row[column] = v.String()
	case reflect.Bool:
		row[column] = v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		row[column] = int(v.Int())
	case reflect.Float32, reflect.Float64:
		row[column] = v.Float()
	default:
		row[column] = v.Interface()
	}
}

// snakeCase converts a Go field name to snake_case, keeping acronym runs
// together: "NameID" becomes "name_id" and "VIPScoop" becomes "vip_scoop"
func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && !unicode.IsSpace(runes[i-1]) && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if unicode.IsSpace(r) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
