package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Submitted field names. Some contain spaces and are sent as-is.
const (
	fieldEmail           = "email"
	fieldPassword        = "password"
	fieldConfirmPassword = "confirm password"
	fieldName            = "name"
	fieldNotifyDate      = "notify date"
	fieldPrice           = "price"
	fieldQuantity        = "quantity"
	fieldStatus          = "status"

	MsgBadBody = "the request body could not be parsed"

	maxMemory = 8 << 20
)

// fields are the values a client submitted, either as a form or as a JSON
// object. Missing and null values are absent.
type fields map[string]string

func (f fields) get(key string) string { return f[key] }

// lookup is nil when key was not submitted.
func (f fields) lookup(key string) *string {
	v, ok := f[key]
	if !ok {
		return nil
	}
	return &v
}

func readFields(c *gin.Context) (fields, error) {
	if c.ContentType() == binding.MIMEJSON {
		return readJSONFields(c.Request.Body)
	}

	if err := c.Request.ParseMultipartForm(maxMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, common.NewFailure(common.KindMalformedInput, http.StatusBadRequest, MsgBadBody)
	}
	out := make(fields, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out, nil
}

// readJSONFields keeps numbers as written and renders booleans as
// "true"/"false". Nested objects and arrays are rejected.
func readJSONFields(body io.Reader) (fields, error) {
	var raw map[string]any
	if body != nil {
		dec := json.NewDecoder(body)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, common.NewFailure(common.KindMalformedInput, http.StatusBadRequest, MsgBadBody)
		}
	}
	out := make(fields, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
		case string:
			out[k] = v
		case json.Number:
			out[k] = v.String()
		case bool:
			out[k] = strconv.FormatBool(v)
		default:
			return nil, common.NewFailure(common.KindMalformedInput, http.StatusBadRequest, MsgBadBody)
		}
	}
	return out, nil
}
