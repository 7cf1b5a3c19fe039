package address

import "errors"

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrNotAddressOwner = errors.New("address does not belong to user")
)
