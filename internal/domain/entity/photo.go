package entity

import "errors"

// ErrPoorPhoto фото не прошло проверку качества
var ErrPoorPhoto = errors.New("photo quality check failed")
