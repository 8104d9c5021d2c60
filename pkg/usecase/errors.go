package usecase

import (
	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for use case layer
var (
	ErrSessionNotFound  = goerr.New("session not found", goerr.T(errutil.TagNotFound))
	ErrNoResponses      = goerr.New("no survey responses found", goerr.T(errutil.TagValidation))
	ErrInvalidStudent   = goerr.New("invalid student type", goerr.T(errutil.TagValidation))
	ErrUnknownMajor     = goerr.New("unknown major for university", goerr.T(errutil.TagValidation))
	ErrUnknownUniversty = goerr.New("unknown university", goerr.T(errutil.TagValidation))
)

// Context keys for error values
const (
	SessionIDKey   = "session_id"
	StudentTypeKey = "student_type"
)
