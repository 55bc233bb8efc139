package legalcase

import "testing"

func TestCanCreateCase(t *testing.T) {
	tests := []struct {
		name        string
		ctx         CreateCaseContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "social security with matching subcategory",
			ctx:         CreateCaseContext{ClientID: "CLIENT-001", ClientExists: true, Category: "social-security", Subcategory: "retirement"},
			wantAllowed: true,
		},
		{
			name:        "civil accepts any subcategory",
			ctx:         CreateCaseContext{ClientID: "CLIENT-001", ClientExists: true, Category: "civil", Subcategory: "anything"},
			wantAllowed: true,
		},
		{
			name:        "subcategory optional",
			ctx:         CreateCaseContext{ClientID: "CLIENT-001", ClientExists: true, Category: "criminal"},
			wantAllowed: true,
		},
		{
			name:       "client missing",
			ctx:        CreateCaseContext{ClientID: "CLIENT-999", Category: "civil"},
			wantReason: "client CLIENT-999 not found",
		},
		{
			name:       "unknown category",
			ctx:        CreateCaseContext{ClientID: "CLIENT-001", ClientExists: true, Category: "tax"},
			wantReason: `unknown category "tax"`,
		},
		{
			name:       "subcategory from another category",
			ctx:        CreateCaseContext{ClientID: "CLIENT-001", ClientExists: true, Category: "criminal", Subcategory: "retirement"},
			wantReason: `subcategory "retirement" does not belong to Criminal`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreateCase(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestStatusTransitions(t *testing.T) {
	if !CanCompleteCase(StatusTransitionContext{CaseID: "CASE-001", Status: StatusOpen}).Allowed {
		t.Error("open case should be completable")
	}
	if CanCompleteCase(StatusTransitionContext{CaseID: "CASE-001", Status: StatusCompleted}).Allowed {
		t.Error("completed case should not be completable")
	}
	if !CanReopenCase(StatusTransitionContext{CaseID: "CASE-001", Status: StatusCompleted}).Allowed {
		t.Error("completed case should be reopenable")
	}
	if err := CanReopenCase(StatusTransitionContext{CaseID: "CASE-001", Status: StatusOpen}).Error(); err == nil {
		t.Error("open case should not be reopenable")
	}
	if Toggle(StatusOpen) != StatusCompleted || Toggle(StatusCompleted) != StatusOpen {
		t.Error("Toggle mismatch")
	}
}

func TestCatalog(t *testing.T) {
	if got := len(Categories()); got != 5 {
		t.Errorf("Categories() = %d entries", got)
	}
	if got := CategoryLabel("labor"); got != "Trabalhista" {
		t.Errorf("CategoryLabel(labor) = %q", got)
	}
	if got := SubcategoryLabel("criminal", "fraud"); got != "Estelionato" {
		t.Errorf("SubcategoryLabel = %q", got)
	}
	if len(Subcategories("civil")) != 0 {
		t.Error("civil should have no subcategories")
	}
	if StatusLabel("open") != "Em Aberto" || ValidStatus("archived") {
		t.Error("status catalog mismatch")
	}
	if GenerateCaseID(9) != "CASE-010" {
		t.Errorf("GenerateCaseID(9) = %q", GenerateCaseID(9))
	}
}
