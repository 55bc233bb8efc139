package validation

import "testing"

func TestValidateCPF(t *testing.T) {
	tests := []struct {
		name    string
		cpf     string
		valid   bool
		wantErr string
	}{
		{name: "valid digits only", cpf: "52998224725", valid: true},
		{name: "valid formatted", cpf: "529.982.247-25", valid: true},
		{name: "another valid", cpf: "11144477735", valid: true},
		{name: "empty", cpf: "", wantErr: MsgCPFRequired},
		{name: "too short", cpf: "123", wantErr: MsgCPFLength},
		{name: "too long", cpf: "529982247250", wantErr: MsgCPFLength},
		{name: "repeated digits", cpf: "11111111111", wantErr: MsgCPFRepeated},
		{name: "repeated zeros formatted", cpf: "000.000.000-00", wantErr: MsgCPFRepeated},
		{name: "wrong second digit", cpf: "52998224726", wantErr: MsgCPFCheckDigit},
		{name: "wrong first digit", cpf: "52998224735", wantErr: MsgCPFCheckDigit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateCPF(tt.cpf)
			if got.IsValid != tt.valid {
				t.Errorf("ValidateCPF(%q).IsValid = %v, want %v", tt.cpf, got.IsValid, tt.valid)
			}
			if got.Error != tt.wantErr {
				t.Errorf("ValidateCPF(%q).Error = %q, want %q", tt.cpf, got.Error, tt.wantErr)
			}
		})
	}
}

func TestValidateCPF_RejectsEveryRepeatedDigit(t *testing.T) {
	for c := '0'; c <= '9'; c++ {
		cpf := ""
		for i := 0; i < 11; i++ {
			cpf += string(c)
		}
		if got := ValidateCPF(cpf); got.IsValid {
			t.Errorf("ValidateCPF(%q) accepted a repeated-digit CPF", cpf)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr string
	}{
		{name: "mobile", phone: "11999998888"},
		{name: "mobile formatted", phone: "(11) 99999-8888"},
		{name: "landline", phone: "1133334444"},
		{name: "empty", phone: "", wantErr: MsgPhoneRequired},
		{name: "short", phone: "119999", wantErr: MsgPhoneLength},
		{name: "long", phone: "119999988881", wantErr: MsgPhoneLength},
		{name: "bad area code", phone: "0999998888", wantErr: MsgPhoneAreaCode},
		{name: "mobile without 9", phone: "11899998888", wantErr: MsgPhoneMobile},
		{name: "repeated mobile", phone: "11999999999", wantErr: MsgPhoneRepeated},
		{name: "repeated landline", phone: "1133333333", wantErr: MsgPhoneRepeated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePhone(tt.phone)
			if got.IsValid != (tt.wantErr == "") {
				t.Errorf("ValidatePhone(%q).IsValid = %v", tt.phone, got.IsValid)
			}
			if got.Error != tt.wantErr {
				t.Errorf("ValidatePhone(%q).Error = %q, want %q", tt.phone, got.Error, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr string
	}{
		{"ana@example.com", ""},
		{"a.b+c@sub.example.com.br", ""},
		{"", MsgEmailRequired},
		{"ana@example", MsgEmailFormat},
		{"ana example@x.com", MsgEmailFormat},
		{"@example.com", MsgEmailFormat},
	}

	for _, tt := range tests {
		if got := ValidateEmail(tt.email); got.Error != tt.wantErr {
			t.Errorf("ValidateEmail(%q).Error = %q, want %q", tt.email, got.Error, tt.wantErr)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	if got := ValidateRequired("   ", "Nome"); got.IsValid || got.Error != "Nome é obrigatório" {
		t.Errorf("ValidateRequired(blank) = %+v", got)
	}
	if got := ValidateRequired("Ana", "Nome"); !got.IsValid {
		t.Errorf("ValidateRequired(Ana) = %+v", got)
	}
}

func TestValidateProcessNumber(t *testing.T) {
	tests := []struct {
		number  string
		wantErr string
	}{
		{"12345674720238260100", ""},
		{"1234567-47.2023.8.26.0100", ""},
		{"12345674820238260100", MsgProcessCheckDigit},
		{"1234567472023826010", MsgProcessLength},
		{"", MsgProcessLength},
	}

	for _, tt := range tests {
		if got := ValidateProcessNumber(tt.number); got.Error != tt.wantErr {
			t.Errorf("ValidateProcessNumber(%q).Error = %q, want %q", tt.number, got.Error, tt.wantErr)
		}
	}
}

func TestProcessCheckDigits(t *testing.T) {
	if got := ProcessCheckDigits("123456720238260100"); got != 47 {
		t.Errorf("ProcessCheckDigits = %d, want 47", got)
	}
}
