package validate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kjeyarn/lending-gateway/pkg/validate"
)

func TestCustomValidator_FieldErrors(t *testing.T) {
	t.Parallel()
	type payload struct {
		Reason   string `json:"reason" validate:"required"`
		Location string `json:"location" validate:"required,max=5"`
	}
	v := validate.NewCustomValidator()

	err := v.Validate(payload{Location: "too long"})
	require.Error(t, err)
	fields := validate.FieldErrors(err)
	require.Equal(t, []string{"failed on the 'required' rule"}, fields["reason"])
	require.Equal(t, []string{"failed on the 'max' rule"}, fields["location"])

	require.NoError(t, v.Validate(payload{Reason: "ok", Location: "lib"}))
	require.Nil(t, validate.FieldErrors(nil))
}
