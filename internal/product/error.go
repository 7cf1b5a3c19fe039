package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotProductOwner = errors.New("product does not belong to producer")
	ErrNothingToUpdate = errors.New("no product fields to update")
)
