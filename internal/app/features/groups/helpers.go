// internal/app/features/groups/helpers.go
package groups

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/normalize"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// pathID canonicalizes a URL path identifier into an ObjectID. This is the
// single place hex ids cross the boundary; everything past it compares
// ObjectID values directly. Malformed ids are a 400, shaped as the
// standard envelope.
func pathID(r *http.Request, param string) (primitive.ObjectID, *httpjson.Error) {
	raw := normalize.QueryParam(chi.URLParam(r, param))
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, httpjson.Validation("invalid " + param)
	}
	return id, nil
}

// hexID canonicalizes an id supplied in a body or query value. An empty
// value returns the zero id with no error; required-ness is the caller's
// call.
func hexID(raw string) (primitive.ObjectID, *httpjson.Error) {
	raw = normalize.QueryParam(raw)
	if raw == "" {
		return primitive.NilObjectID, nil
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, httpjson.Validation("invalid user id")
	}
	return id, nil
}

// decodeBody unmarshals a JSON request body into dst. An empty body is
// fine (DELETE endpoints may carry the user id in the query instead).
func decodeBody(r *http.Request, dst any) *httpjson.Error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return httpjson.Validation("invalid request body")
}

// bodyOrQueryID resolves a user id that may arrive either in the decoded
// body field or as a query parameter.
func bodyOrQueryID(r *http.Request, bodyValue, queryParam string) (primitive.ObjectID, *httpjson.Error) {
	if bodyValue != "" {
		return hexID(bodyValue)
	}
	return hexID(r.URL.Query().Get(queryParam))
}
