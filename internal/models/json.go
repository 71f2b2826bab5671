// json.go
//
// A Go service for the easyform form-building API
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of easyform-api.
// easyform-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// easyform-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with easyform-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSONObject is a free-form mapping stored as a JSON column in SQL stores and
// as an embedded document in MongoDB.
type JSONObject map[string]interface{}

// Value delegates to gorm.io/datatypes.JSONMap
func (m JSONObject) Value() (driver.Value, error) {
	if m == nil {
		return datatypes.JSONMap{}.Value()
	}
	return datatypes.JSONMap(m).Value()
}

// Scan delegates to gorm.io/datatypes.JSONMap
func (m *JSONObject) Scan(value interface{}) error {
	var dm datatypes.JSONMap
	if err := dm.Scan(value); err != nil {
		return err
	}
	*m = JSONObject(dm)
	return nil
}

// GormDataType returns the generic gorm data type
func (JSONObject) GormDataType() string {
	return "json"
}

// GormDBDataType ensures the correct data type is used for each database driver.
func (JSONObject) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonColumnType(db)
}

// JSONList is an ordered sequence stored as a JSON array column in SQL stores
// and as a BSON array in MongoDB.
type JSONList[T any] []T

// Value marshals the list as a JSON array string; nil encodes as "[]".
func (l JSONList[T]) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]T(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan delegates to gorm.io/datatypes.JSONSlice
func (l *JSONList[T]) Scan(value interface{}) error {
	if value == nil {
		*l = JSONList[T]{}
		return nil
	}
	return (*datatypes.JSONSlice[T])(l).Scan(value)
}

// GormDataType returns the generic gorm data type
func (JSONList[T]) GormDataType() string {
	return "json"
}

// GormDBDataType ensures the correct data type is used for each database driver.
func (JSONList[T]) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonColumnType(db)
}

// jsonColumnType resolves the issue where MSSQL does not support the 'json' data type.
func jsonColumnType(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
