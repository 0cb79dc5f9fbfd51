package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fin-tools/stock-atlas/pkg/services/derive"
	"github.com/spf13/cobra"
)

type FieldsCmd struct {
	fieldsPath string
	output     io.Writer
}

func NewFieldsCmd(output io.Writer) *cobra.Command {
	fc := &FieldsCmd{output: output}
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List configured derived fields",
		RunE:  fc.run,
	}

	cmd.Flags().StringVar(&fc.fieldsPath, "fields", "", "Optional derived-field definitions file")

	return cmd
}

func (fc *FieldsCmd) run(cmd *cobra.Command, args []string) error {
	fields := derive.Defaults()
	if fc.fieldsPath != "" {
		loaded, err := derive.LoadFields(fc.fieldsPath)
		if err != nil {
			return err
		}
		fields = loaded
	}

	for _, f := range fields {
		label := ""
		if f.Label != "" {
			label = fmt.Sprintf(" (%s)", f.Label)
		}
		fmt.Fprintf(fc.output, "%s%s = %s\n", f.Name, label, strings.Join(f.Fields, " + "))
	}
	return nil
}
