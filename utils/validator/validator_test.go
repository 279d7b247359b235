package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDeal struct {
	ProductName string  `json:"product_name" validate:"required,max=10"`
	SalePrice   float64 `json:"sale_price" validate:"gt=0,lte=10000"`
	DealType    string  `json:"deal_type" validate:"oneof=sale bogo"`
	ZipCode     string  `json:"zip_code" validate:"zipcode"`
	Ignored     string  `json:"-"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		input      sampleDeal
		wantFields []string
	}{
		{
			name:  "valid",
			input: sampleDeal{ProductName: "Apples", SalePrice: 1.99, DealType: "sale", ZipCode: "07001"},
		},
		{
			name:       "missing name and zero price",
			input:      sampleDeal{DealType: "sale", ZipCode: "07001"},
			wantFields: []string{"product_name", "sale_price"},
		},
		{
			name:       "price too high and bad type",
			input:      sampleDeal{ProductName: "TV", SalePrice: 15000, DealType: "auction", ZipCode: "07001"},
			wantFields: []string{"sale_price", "deal_type"},
		},
		{
			name:       "bad zip",
			input:      sampleDeal{ProductName: "Milk", SalePrice: 3, DealType: "bogo", ZipCode: "7001A"},
			wantFields: []string{"zip_code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Len(t, validationErr.Errors, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, validationErr.Errors, field)
			}
		})
	}
}

func TestValidationError_ErrorIsStable(t *testing.T) {
	err := ValidationError{Errors: map[string]string{
		"sale_price":   "sale_price must be greater than 0",
		"product_name": "product_name is required",
	}}

	assert.Equal(t,
		"validation failed: product_name: product_name is required, sale_price: sale_price must be greater than 0",
		err.Error())
}

func TestValidator_ValidateVar(t *testing.T) {
	v := New()

	assert.NoError(t, v.ValidateVar("07001", "zipcode"))
	assert.Error(t, v.ValidateVar("0700", "zipcode"))
}
