package visit

import "errors"

var ErrVisitNotFound = errors.New("visit not found")
