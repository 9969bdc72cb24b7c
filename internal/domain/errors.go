package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidName = errors.New("invalid name")
	ErrInvalidIP   = errors.New("invalid IP address")
	ErrInvalidCIDR = errors.New("invalid CIDR")
	ErrInvalidTTL  = errors.New("invalid TTL")
	ErrInvalidType = errors.New("invalid record type")
	ErrEmptyValue  = errors.New("empty value")
	ErrRequired    = errors.New("required field missing")

	ErrMissingBlocks = errors.New("no parent blocks configured")
	ErrNoParentBlock = errors.New("no configured block contains network")
	ErrAmbiguous     = errors.New("ambiguous match")

	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrRemote       = errors.New("remote API failure")
	ErrTransport    = errors.New("transport failure")
)

func RequiredField(field string) error {
	return fmt.Errorf("%w: %s", ErrRequired, field)
}

func WrapOp(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

func WrapEntity(entity, name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s[%s]: %w", entity, name, err)
}
