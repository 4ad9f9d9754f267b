package posts

import "errors"

var (
	// ErrPostNotFound reports that no article file backs the requested slug.
	// I/O and parse failures while resolving a single article degrade to this
	// same error so a broken file never takes down the caller.
	ErrPostNotFound = errors.New("posts: post not found")
	// ErrContentDirRequired indicates the service was constructed without a
	// content directory or filesystem.
	ErrContentDirRequired = errors.New("posts: content directory is required")
)
