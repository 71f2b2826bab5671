// errors.go
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

package services

import (
	"errors"
	"time"

	"github.com/localnerve/easyform-api/internal/database"
	"github.com/localnerve/easyform-api/internal/types"
	"go.uber.org/zap"
)

// Now returns the timestamp stamped on new and updated documents.
// Millisecond precision matches what every store round-trips.
var Now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// translate maps store sentinels onto the error taxonomy
func translate(err error, notFoundMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return types.NotFoundError(notFoundMessage)
	case errors.Is(err, database.ErrConflict):
		return types.ConflictError(err.Error())
	}
	return types.StoreError(err)
}
