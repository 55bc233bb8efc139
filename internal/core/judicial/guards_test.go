package judicial

import "testing"

func TestCanRegisterProcess(t *testing.T) {
	tests := []struct {
		name        string
		ctx         RegisterProcessContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "valid formatted number",
			ctx:         RegisterProcessContext{ClientID: "CLIENT-001", ClientExists: true, ProcessNumber: "1234567-47.2023.8.26.0100"},
			wantAllowed: true,
		},
		{
			name:       "client missing",
			ctx:        RegisterProcessContext{ClientID: "CLIENT-404", ProcessNumber: "12345674720238260100"},
			wantReason: "client CLIENT-404 not found",
		},
		{
			name:       "wrong check digits",
			ctx:        RegisterProcessContext{ClientID: "CLIENT-001", ClientExists: true, ProcessNumber: "12345674820238260100"},
			wantReason: "Número do processo inválido: dígito verificador incorreto",
		},
		{
			name:       "too short",
			ctx:        RegisterProcessContext{ClientID: "CLIENT-001", ClientExists: true, ProcessNumber: "123"},
			wantReason: "Número do processo deve conter 20 dígitos",
		},
		{
			name:       "duplicate",
			ctx:        RegisterProcessContext{ClientID: "CLIENT-001", ClientExists: true, ProcessNumber: "12345674720238260100", AlreadyExists: true},
			wantReason: "process 1234567-47.2023.8.26.0100 is already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanRegisterProcess(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestTribunal(t *testing.T) {
	if got := Tribunal("1234567-47.2023.8.26.0100"); got != "8.26" {
		t.Errorf("Tribunal = %q, want 8.26", got)
	}
	if got := Tribunal("123"); got != "" {
		t.Errorf("Tribunal(short) = %q", got)
	}
}

func TestMatchesTribunal(t *testing.T) {
	tests := []struct {
		tribunal, filter string
		want             bool
	}{
		{"TJSP", "", true},
		{"TJSP", "all", true},
		{"TJSP", "TJSP", true},
		{"TJSP", "TRF1", false},
	}
	for _, tt := range tests {
		if got := MatchesTribunal(tt.tribunal, tt.filter); got != tt.want {
			t.Errorf("MatchesTribunal(%q, %q) = %v", tt.tribunal, tt.filter, got)
		}
	}
}
