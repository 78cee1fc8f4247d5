package restapi

import "github.com/pkg/errors"

var ErrInvalidPage = errors.New("page must be a non-negative integer")
var ErrInvalidPageSize = errors.New("page_size must be a positive integer")
