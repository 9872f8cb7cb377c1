package memory

import "errors"

var errDuplicate = errors.New("id duplicado")
