package utils

import "reflect"

var ColumnTag = "db"

// StructTagValues returns the db column names declared on input's fields,
// in declaration order. Column lists are built at package init, so a bad
// type fails fast.
func StructTagValues(input any) []string {
	targetValue := reflect.ValueOf(input)
	if targetValue.Kind() == reflect.Ptr {
		targetValue = targetValue.Elem()
	}

	if targetValue.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	targetType := targetValue.Type()

	result := make([]string, 0, targetValue.NumField())
	for i := 0; i < targetValue.NumField(); i++ {
		if targetType.Field(i).PkgPath != "" {
			continue
		}

		tagValue := targetType.Field(i).Tag.Get(ColumnTag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		result = append(result, tagValue)
	}

	return result
}

// StructToMap maps db column names to field values, skipping any columns
// named in ignore. Inserts against serial keys pass "id" as an ignore.
func StructToMap(input any, ignore ...string) map[string]any {
	ignored := make(map[string]struct{}, len(ignore))
	for _, col := range ignore {
		ignored[col] = struct{}{}
	}

	itemValue := reflect.ValueOf(input)
	if itemValue.Kind() == reflect.Ptr {
		itemValue = itemValue.Elem()
	}

	if itemValue.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	itemType := itemValue.Type()

	result := make(map[string]any)
	for i := 0; i < itemValue.NumField(); i++ {
		if itemType.Field(i).PkgPath != "" {
			continue
		}

		tagValue := itemType.Field(i).Tag.Get(ColumnTag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		if _, skip := ignored[tagValue]; skip {
			continue
		}

		result[tagValue] = itemValue.Field(i).Interface()
	}

	return result
}
