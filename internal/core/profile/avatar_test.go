package profile

import "testing"

func TestCanChangeAvatar(t *testing.T) {
	tests := []struct {
		name        string
		ctx         AvatarChangeContext
		wantAllowed bool
	}{
		{"initials default color", AvatarChangeContext{Type: AvatarInitials}, true},
		{"initials custom color", AvatarChangeContext{Type: AvatarInitials, Data: AvatarData{Color: "#3B82F6"}}, true},
		{"initials bad color", AvatarChangeContext{Type: AvatarInitials, Data: AvatarData{Color: "blue"}}, false},
		{"icon", AvatarChangeContext{Type: AvatarIcon, Data: AvatarData{Icon: "scale"}}, true},
		{"icon missing name", AvatarChangeContext{Type: AvatarIcon}, false},
		{"predefined", AvatarChangeContext{Type: AvatarPredefined, Data: AvatarData{URL: "/avatars/1.png"}}, true},
		{"predefined missing url", AvatarChangeContext{Type: AvatarPredefined}, false},
		{"uploaded own icon", AvatarChangeContext{Type: AvatarUploaded, Data: AvatarData{UploadedIconID: "ICON-001"}, UploadedIconOwn: true}, true},
		{"uploaded foreign icon", AvatarChangeContext{Type: AvatarUploaded, Data: AvatarData{UploadedIconID: "ICON-001"}}, false},
		{"unknown type", AvatarChangeContext{Type: "global"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanChangeAvatar(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v (reason %q)", result.Allowed, tt.wantAllowed, result.Reason)
			}
		})
	}
}

func TestCanUploadIcon(t *testing.T) {
	tests := []struct {
		name        string
		ctx         UploadIconContext
		wantAllowed bool
	}{
		{"png", UploadIconContext{DetectedMIME: "image/png", Size: 1024}, true},
		{"pdf", UploadIconContext{DetectedMIME: "application/pdf", Size: 1024}, false},
		{"too large", UploadIconContext{DetectedMIME: "image/jpeg", Size: MaxIconBytes + 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanUploadIcon(tt.ctx).Allowed; got != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", got, tt.wantAllowed)
			}
		})
	}
}

func TestPalette(t *testing.T) {
	if len(Palette) != 20 {
		t.Errorf("palette has %d colors, want 20", len(Palette))
	}
	typ, data := DefaultAvatar()
	if typ != AvatarInitials || data.Color != DefaultAvatarColor {
		t.Errorf("DefaultAvatar = %s %+v", typ, data)
	}
}
