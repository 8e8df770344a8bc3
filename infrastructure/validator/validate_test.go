package validator

import "testing"

type verifyPayload struct {
	UserID string   `validate:"required"`
	Frames [][]byte `validate:"required,min=1"`
}

func TestValidateStruct(t *testing.T) {
	valid := verifyPayload{UserID: "user-1", Frames: [][]byte{[]byte("frame")}}
	if errs := ValidatorInstance.ValidateStruct(valid); errs != nil {
		t.Errorf("ValidateStruct(valid) = %v; want nil", *errs)
	}

	missing := verifyPayload{Frames: [][]byte{[]byte("frame")}}
	if errs := ValidatorInstance.ValidateStruct(missing); errs == nil {
		t.Error("ValidateStruct(missing userID) = nil; want errors")
	}

	empty := verifyPayload{UserID: "user-1", Frames: [][]byte{}}
	if errs := ValidatorInstance.ValidateStruct(empty); errs == nil {
		t.Error("ValidateStruct(empty frames) = nil; want errors")
	}
}

func TestDirectionRule(t *testing.T) {
	for _, value := range []string{"LEFT", "RIGHT"} {
		if err := ValidatorInstance.ValidateValue(value, "direction"); err != nil {
			t.Errorf("ValidateValue(%q) = %v; want nil", value, err)
		}
	}
	for _, value := range []string{"UP", "left", ""} {
		if err := ValidatorInstance.ValidateValue(value, "direction"); err == nil {
			t.Errorf("ValidateValue(%q) = nil; want error", value)
		}
	}
}
