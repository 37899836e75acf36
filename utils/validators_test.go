package utils

import "testing"

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"hunter2!", true},
		{"a1!b2@", true},
		{"short", false},
		{"nodigits!", false},
		{"nospecial1", false},
		{"1!", false},
	}

	for _, tc := range cases {
		if got := ValidatePassword(tc.password); got != tc.valid {
			t.Errorf("ValidatePassword(%q) = %v, want %v", tc.password, got, tc.valid)
		}
	}
}

func TestValidateDate(t *testing.T) {
	cases := []struct {
		date  string
		valid bool
	}{
		{"2024-01-15", true},
		{"2024-12-31", true},
		{"2024-02-30", false},
		{"15-01-2024", false},
		{"2024/01/15", false},
		{"2024-1-5", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := ValidateDate(tc.date); got != tc.valid {
			t.Errorf("ValidateDate(%q) = %v, want %v", tc.date, got, tc.valid)
		}
	}
}
