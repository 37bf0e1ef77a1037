package storage

import "errors"

// ErrNotFound результат с таким ID не сохранён
var ErrNotFound = errors.New("assessment not found")
