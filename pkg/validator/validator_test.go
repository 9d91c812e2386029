package validator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemRequest struct {
	ProductID int    `json:"product_id" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=99"`
	Note      string `json:"note" validate:"max=10"`
}

type searchRequest struct {
	Query string `json:"query" validate:"notblank,max=100"`
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(addItemRequest{ProductID: 3, Quantity: 2}))
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	fields := fieldsOf(t, Validate(addItemRequest{Quantity: 1}))

	assert.Contains(t, fields, "product_id")
	assert.NotContains(t, fields, "ProductID")
	assert.Equal(t, "is required", fields["product_id"])
}

func TestValidate_NumericBounds(t *testing.T) {
	fields := fieldsOf(t, Validate(addItemRequest{ProductID: 1, Quantity: 500}))
	assert.Equal(t, "must be less than or equal to 99", fields["quantity"])

	fields = fieldsOf(t, Validate(addItemRequest{ProductID: -1}))
	assert.Equal(t, "must be greater than 0", fields["product_id"])
}

func TestValidate_StringLength(t *testing.T) {
	fields := fieldsOf(t, Validate(addItemRequest{ProductID: 1, Note: "far too long a note"}))
	assert.Equal(t, "must be at most 10 characters", fields["note"])
}

func TestValidate_NotBlank(t *testing.T) {
	fields := fieldsOf(t, Validate(searchRequest{Query: "   "}))
	assert.Equal(t, "must not be blank", fields["query"])

	assert.NoError(t, Validate(searchRequest{Query: "laptop"}))
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(addItemRequest{Quantity: 100})
	require.Error(t, err)

	assert.Contains(t, err.Error(), "field 'product_id' is required")
	assert.Contains(t, err.Error(), "field 'quantity'")
	assert.Contains(t, err.Error(), "; ")
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     bool
		wantValFail bool
	}{
		{name: "valid body", body: `{"product_id":4,"quantity":1}`},
		{name: "malformed json", body: `{"product_id":`, wantErr: true},
		{name: "unknown field", body: `{"product_id":4,"colour":"red"}`, wantErr: true},
		{name: "fails validation", body: `{"quantity":1}`, wantErr: true, wantValFail: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(tt.body))
			var dst addItemRequest

			err := DecodeAndValidate(req, &dst)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, 4, dst.ProductID)
				return
			}
			require.Error(t, err)
			var valErr *ValidationError
			assert.Equal(t, tt.wantValFail, errors.As(err, &valErr))
		})
	}
}
