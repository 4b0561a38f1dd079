package validator

import (
	"testing"

	"shareit/pkg/model"
)

func strPtr(s string) *string { return &s }

func TestUserValidator_ValidateCreate(t *testing.T) {
	v := NewUserValidator()

	tests := []struct {
		name    string
		user    model.UserCreate
		wantErr bool
	}{
		{"valid", model.UserCreate{Name: "Ann", Email: "ann@example.com"}, false},
		{"blank name", model.UserCreate{Email: "ann@example.com"}, true},
		{"blank email", model.UserCreate{Name: "Ann"}, true},
		{"malformed email", model.UserCreate{Name: "Ann", Email: "ann.example.com"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCreate(&tt.user)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCreate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUserValidator_ValidateUpdate(t *testing.T) {
	v := NewUserValidator()

	tests := []struct {
		name    string
		update  model.UserUpdate
		wantErr bool
	}{
		{"empty patch", model.UserUpdate{}, false},
		{"name only", model.UserUpdate{Name: strPtr("Bob")}, false},
		{"blank name", model.UserUpdate{Name: strPtr("")}, true},
		{"bad email", model.UserUpdate{Email: strPtr("bob")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateUpdate(&tt.update)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUpdate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
