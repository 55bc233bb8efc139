package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/praxis/internal/ports/primary"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		want    int64
		wantErr bool
	}{
		{name: "comma decimals", amount: "99,90", want: 9990},
		{name: "dot decimals", amount: "99.90", want: 9990},
		{name: "thousands and comma", amount: "1.234,56", want: 123456},
		{name: "thousands only", amount: "1.234", want: 123400},
		{name: "whole reais", amount: "99", want: 9900},
		{name: "single decimal", amount: "99,9", want: 9990},
		{name: "currency prefix", amount: "R$ 49,00", want: 4900},
		{name: "zero", amount: "0,00", wantErr: true},
		{name: "letters", amount: "abc", wantErr: true},
		{name: "empty", amount: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCents(tt.amount)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlayChanged_OnlySetFlags(t *testing.T) {
	var in primary.ClientInput
	cmd := &cobra.Command{Use: "update"}
	clientFlags(cmd.Flags(), &in)
	require.NoError(t, cmd.Flags().Parse([]string{"--phone", "11987654321", "--city", ""}))

	dst := primary.ClientInput{
		Name:  "Maria Souza",
		Phone: "(11) 3456-7890",
		Email: "maria@example.com",
	}
	dst.Address.City = "Santos"

	overlayChanged(cmd.Flags(), &dst, &in)

	assert.Equal(t, "11987654321", dst.Phone)
	assert.Equal(t, "", dst.Address.City)
	assert.Equal(t, "maria@example.com", dst.Email)
	assert.Equal(t, "Maria Souza", dst.Name)
}

func TestTaskUpdateRequest_OnlyGivenFlags(t *testing.T) {
	cmd := taskUpdateCmd()
	require.NoError(t, cmd.Flags().Parse([]string{"--description", "", "--due", "2026-11-03"}))
	desc, err := cmd.Flags().GetString("description")
	require.NoError(t, err)

	req := taskUpdateRequest(cmd.Flags(), "TASK-001", "", desc, "2026-11-03")

	assert.Equal(t, "TASK-001", req.TaskID)
	assert.Nil(t, req.Title)
	require.NotNil(t, req.Description)
	assert.Equal(t, "", *req.Description)
	require.NotNil(t, req.DueDate)
	assert.Equal(t, "2026-11-03", *req.DueDate)
}

func TestClientToInput(t *testing.T) {
	c := &primary.Client{ID: "CLIENT-001", Name: "João", CPF: "529.982.247-25", Category: "civil"}
	c.Respondent.Name = "Banco X"

	in := clientToInput(c)

	assert.Equal(t, "João", in.Name)
	assert.Equal(t, "529.982.247-25", in.CPF)
	assert.Equal(t, "Banco X", in.Respondent.Name)
}

func TestThemeCmd_RejectsUnknownColor(t *testing.T) {
	cmd := themeSetCmd()
	cmd.SetArgs([]string{"border", "#000000"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown color "border"`)
}

func TestValidateCmd(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr string
	}{
		{args: []string{"cpf", "529.982.247-25"}},
		{args: []string{"cpf", "111.111.111-11"}, wantErr: "sequência"},
		{args: []string{"process", "123"}, wantErr: "20 dígitos"},
		{args: []string{"zip", "01001000"}, wantErr: "unknown field kind"},
	}

	for _, tt := range tests {
		t.Run(tt.args[0]+"/"+tt.args[1], func(t *testing.T) {
			cmd := ValidateCmd()
			cmd.SetArgs(tt.args)
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			err := cmd.Execute()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
