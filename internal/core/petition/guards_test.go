package petition

import "testing"

func TestCanCreateTemplate(t *testing.T) {
	tests := []struct {
		name       string
		ctx        CreateTemplateContext
		wantReason string
	}{
		{"complete", CreateTemplateContext{Tema: "CONSÓRCIO", Subtema: "Geral", Titulo: "Desistência", Ordem: "23.1"}, ""},
		{"missing tema", CreateTemplateContext{Subtema: "Geral", Titulo: "x", Ordem: "1"}, "Tema é obrigatório"},
		{"missing subtema", CreateTemplateContext{Tema: "x", Titulo: "x", Ordem: "1"}, "Subtema é obrigatório"},
		{"missing titulo", CreateTemplateContext{Tema: "x", Subtema: "x", Ordem: "1"}, "Título é obrigatório"},
		{"missing ordem", CreateTemplateContext{Tema: "x", Subtema: "x", Titulo: "x", Ordem: " "}, "Ordem é obrigatória"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanCreateTemplate(tt.ctx)
			if result.Allowed != (tt.wantReason == "") {
				t.Errorf("Allowed = %v", result.Allowed)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanAttachFile(t *testing.T) {
	tests := []struct {
		name        string
		ctx         AttachFileContext
		wantAllowed bool
	}{
		{"pdf", AttachFileContext{FileName: "modelo.pdf", DetectedMIME: MIMEPDF}, true},
		{"docx upper-case ext", AttachFileContext{FileName: "MODELO.DOCX", DetectedMIME: MIMEDOCX}, true},
		{"doc not allowed", AttachFileContext{FileName: "modelo.doc", DetectedMIME: "application/msword"}, false},
		{"renamed executable", AttachFileContext{FileName: "modelo.pdf", DetectedMIME: "application/x-elf"}, false},
		{"no extension", AttachFileContext{FileName: "modelo", DetectedMIME: MIMEPDF}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAttachFile(tt.ctx).Allowed; got != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", got, tt.wantAllowed)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name   string
		term   string
		filter string
		want   bool
	}{
		{"empty term", "", "", true},
		{"accent-insensitive", "peticao", "", true},
		{"case-insensitive", "GERAL", "", true},
		{"matches subtema", "honorários", "", true},
		{"no match", "consórcio", "", false},
		{"tema filter all", "", AllThemes, true},
		{"tema filter match", "inicial", "PETIÇÃO GERAL", true},
		{"tema filter mismatch", "", "CONSÓRCIO", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matches("Petição inicial – GERAL", "PETIÇÃO GERAL", "Honorarios", tt.term, tt.filter)
			if got != tt.want {
				t.Errorf("Matches(term=%q, filter=%q) = %v, want %v", tt.term, tt.filter, got, tt.want)
			}
		})
	}
}

func TestLookupCatalogItem(t *testing.T) {
	cat, item, ok := LookupCatalogItem("20.12.1")
	if !ok {
		t.Fatal("expected 20.12.1 in catalog")
	}
	if cat != "JUIZADOS ESPECIAIS DA FAZENDA DO DF" {
		t.Errorf("category = %q", cat)
	}
	if item.ID != "20.12.1" {
		t.Errorf("item = %+v", item)
	}

	if _, _, ok := LookupCatalogItem("99.9"); ok {
		t.Error("unexpected catalog hit")
	}
}

func TestCatalogThemesAreKnown(t *testing.T) {
	for _, c := range Catalog {
		if !ValidTema(c.Title) {
			t.Errorf("catalog category %q is not a predefined theme", c.Title)
		}
	}
}
