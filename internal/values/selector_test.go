package values

import (
	"reflect"
	"testing"

	apperrors "github.com/praxable/praxable-cli/internal/errors"
	"github.com/praxable/praxable-cli/internal/models"
)

func TestToggleIsItsOwnInverse(t *testing.T) {
	tests := []struct {
		name    string
		initial []string
		toggle  string
	}{
		{"empty set", nil, "Health"},
		{"absent value", []string{"Family"}, "Health"},
		{"present value", []string{"Health", "Family"}, "Health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(tt.initial...)
			before := s.Selected()

			s.Toggle(tt.toggle)
			s.Toggle(tt.toggle)

			after := s.Selected()
			if len(before) != len(after) {
				t.Fatalf("Selected() = %v after double toggle, want %v", after, before)
			}
			for _, n := range before {
				if !s.Has(n) {
					t.Errorf("value %q lost after double toggle", n)
				}
			}
		})
	}
}

func TestToggleReportsState(t *testing.T) {
	var s Selector

	if !s.Toggle("Health") {
		t.Error("Toggle() on absent value = false, want true")
	}
	if s.Toggle("Health") {
		t.Error("Toggle() on present value = true, want false")
	}
	if !s.Empty() {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestCaseSensitive(t *testing.T) {
	s := NewSelector("Health")
	if s.Has("health") {
		t.Error("Has(\"health\") = true, want false")
	}
	s.Toggle("health")
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestSelectedInsertionOrder(t *testing.T) {
	s := NewSelector()
	s.Toggle("Health")
	s.Toggle("Creativity")
	s.Toggle("Family")
	s.Toggle("Creativity")
	s.Toggle("Creativity")

	want := []string{"Health", "Family", "Creativity"}
	if got := s.Selected(); !reflect.DeepEqual(got, want) {
		t.Errorf("Selected() = %v, want %v", got, want)
	}

	got := s.Selected()
	got[0] = "mutated"
	if s.Selected()[0] != "Health" {
		t.Error("Selected() exposes internal storage")
	}
}

func TestSetAndClear(t *testing.T) {
	s := NewSelector("A", "B", "A")
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after duplicate drop", s.Len())
	}

	s.Set("C")
	if !reflect.DeepEqual(s.Selected(), []string{"C"}) {
		t.Errorf("Selected() = %v, want [C]", s.Selected())
	}

	s.Clear()
	if !s.Empty() || s.Has("C") {
		t.Error("Clear() left values selected")
	}
}

func TestRetain(t *testing.T) {
	s := NewSelector("Health", "Creativity", "Family")
	s.Retain([]string{"Family", "Health", "Career"})

	want := []string{"Health", "Family"}
	if got := s.Selected(); !reflect.DeepEqual(got, want) {
		t.Errorf("Selected() = %v, want %v", got, want)
	}
}

func TestFromNames(t *testing.T) {
	known := []models.CoreValue{{ValueName: "Health"}, {ValueName: "Family"}}

	sel, err := FromNames(known, []string{"Family", "Health", "Family"})
	if err != nil {
		t.Fatalf("FromNames() error = %v", err)
	}
	if got := sel.Selected(); len(got) != 2 || got[0] != "Family" {
		t.Errorf("Selected() = %v", got)
	}

	if _, err := FromNames(known, []string{"health"}); !apperrors.IsValidation(err) {
		t.Errorf("case mismatch error = %v, want validation error", err)
	}

	sel, err = FromNames(known, nil)
	if err != nil || !sel.Empty() {
		t.Errorf("no names: sel=%v err=%v", sel, err)
	}
}
