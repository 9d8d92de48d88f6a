package proto

import "errors"

var (
	ErrInvalidPrefix = errors.New("proto: invalid length prefix")
	ErrWordTooLong   = errors.New("proto: word exceeds length limit")
)
