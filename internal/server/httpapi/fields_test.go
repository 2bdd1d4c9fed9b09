package httpapi

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/shoppinglist/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsFor(t *testing.T, contentType, body string) (fields, error) {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	return readFields(c)
}

func TestReadFields_URLEncoded(t *testing.T) {
	f, err := fieldsFor(t, "application/x-www-form-urlencoded", "name=milk&notify+date=2099-01-01&status=")
	require.NoError(t, err)

	assert.Equal(t, "milk", f.get(fieldName))
	assert.Equal(t, "2099-01-01", f.get(fieldNotifyDate))
	require.NotNil(t, f.lookup(fieldStatus))
	assert.Equal(t, "", *f.lookup(fieldStatus))
	assert.Nil(t, f.lookup(fieldPrice))
}

func TestReadFields_Multipart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("email", "a@example.com"))
	require.NoError(t, w.WriteField("confirm password", "secret1"))
	require.NoError(t, w.Close())

	f, err := fieldsFor(t, w.FormDataContentType(), buf.String())
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", f.get(fieldEmail))
	assert.Equal(t, "secret1", f.get(fieldConfirmPassword))
}

func TestReadFields_JSON(t *testing.T) {
	f, err := fieldsFor(t, "application/json; charset=utf-8", `{"name":"milk","price":2.5,"quantity":3,"status":true,"notify date":null}`)
	require.NoError(t, err)

	assert.Equal(t, "milk", f.get(fieldName))
	assert.Equal(t, "2.5", f.get(fieldPrice))
	assert.Equal(t, "3", f.get(fieldQuantity))
	assert.Equal(t, "true", f.get(fieldStatus))
	assert.Nil(t, f.lookup(fieldNotifyDate))
}

func TestReadFields_JSONNumbersKeepTheirText(t *testing.T) {
	f, err := fieldsFor(t, "application/json", `{"price": 1000000, "quantity": 12345678901234567890, "name": 0.10}`)
	require.NoError(t, err)

	assert.Equal(t, "1000000", f.get(fieldPrice))
	assert.Equal(t, "12345678901234567890", f.get(fieldQuantity))
	assert.Equal(t, "0.10", f.get(fieldName))
}

func TestReadFields_EmptyJSONBody(t *testing.T) {
	f, err := fieldsFor(t, "application/json", "")
	require.NoError(t, err)
	assert.Empty(t, f)
}

func TestReadFields_BadJSON(t *testing.T) {
	for _, body := range []string{`{"name":`, `["milk"]`, `{"price":{"amount":2}}`, `{"name":["milk"]}`} {
		_, err := fieldsFor(t, "application/json", body)
		f, ok := common.AsFailure(err)
		require.True(t, ok, body)
		assert.Equal(t, http.StatusBadRequest, f.Status)
		assert.Equal(t, MsgBadBody, f.Message)
	}
}
