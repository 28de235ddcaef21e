package models

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrNotFound         = status.Errorf(codes.NotFound, "not found")
	ErrDuplicateItem    = status.Errorf(codes.AlreadyExists, "item already in wishlist")
	ErrPermissionDenied = status.Errorf(codes.PermissionDenied, "permission denied")
)
