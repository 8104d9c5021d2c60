package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/campus-lab/coursepath/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// respondJSON marshals body and writes it with the given status code
func respondJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

// respondError maps the error to a status code via its tags and writes it
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, errutil.HTTPStatus(err))
}
