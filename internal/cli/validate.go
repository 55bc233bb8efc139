package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/praxis/internal/validation"
)

// ValidateCmd returns the validate command
func ValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [cpf|phone|email|process] [value]",
		Short: "Check a field value the way intake forms do",
		Example: `  praxis validate cpf 529.982.247-25
  praxis validate process 12345674720238260100`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"cpf", "phone", "email", "process"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, value := args[0], args[1]

			var res validation.Result
			formatted := value
			switch kind {
			case "cpf":
				res = validation.ValidateCPF(value)
				formatted = validation.ApplyInputMask(value, validation.MaskCPF)
			case "phone":
				res = validation.ValidatePhone(value)
				formatted = validation.ApplyInputMask(value, validation.MaskPhone)
			case "email":
				res = validation.ValidateEmail(value)
			case "process":
				res = validation.ValidateProcessNumber(value)
				formatted = validation.FormatProcessNumber(value)
			default:
				return fmt.Errorf("unknown field kind %q\nHint: use cpf, phone, email or process", kind)
			}

			if !res.IsValid {
				return errors.New(res.Error)
			}
			cmd.Printf("%s %s\n", good("✓"), formatted)
			return nil
		},
	}
}
