package repository

import "errors"

// ErrProtectedEntity is returned when a mutation targets a sentinel row
// (the "None" location or the "All" category). Sentinels can never be
// edited or deleted; the check happens before any row is touched.
var ErrProtectedEntity = errors.New("repository: entity is protected and cannot be modified")

// ErrSubCategorySlotsFull is returned when linking a sub-category to an
// image that already holds its maximum of two sub-category links.
var ErrSubCategorySlotsFull = errors.New("repository: image already has two sub-categories")

// ErrSubCategoryDuplicate is returned when linking a sub-category that the
// image's other slot already holds.
var ErrSubCategoryDuplicate = errors.New("repository: sub-category already assigned to this image")
