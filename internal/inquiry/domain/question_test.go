package domain

import "testing"

func TestPersonalInfoText(t *testing.T) {
	cases := []struct {
		name     string
		infoType string
		purpose  string
		want     string
	}{
		{"known type", "email", "", "What is your email address?"},
		{"known type with purpose", "email", "sending the report", "What is your email address? (needed for: sending the report)"},
		{"unknown type", "shoe size", "", "Please provide your shoe size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PersonalInfoText(tc.infoType, tc.purpose); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestHasOption(t *testing.T) {
	q := Question{Options: []string{"thin", "thick"}}
	if !q.HasOption("thin") {
		t.Fatal("expected thin to match")
	}
	if q.HasOption("stuffed") {
		t.Fatal("expected stuffed to miss")
	}
	if q.HasOption("Thin") {
		t.Fatal("option matching is exact")
	}
}
