package app

import (
	"github.com/spf13/pflag"

	"github.com/blackwell-systems/tasktimer/internal/report"
)

// formatValue is a pflag.Value restricted to the supported report formats.
type formatValue report.Format

var _ pflag.Value = (*formatValue)(nil)

func newFormatValue(def report.Format, p *report.Format) *formatValue {
	*p = def
	return (*formatValue)(p)
}

func (f *formatValue) String() string { return string(*f) }

func (f *formatValue) Set(s string) error {
	format, err := report.ParseFormat(s)
	if err != nil {
		return err
	}
	*f = formatValue(format)
	return nil
}

func (f *formatValue) Type() string { return "format" }

// addFormatFlag registers --format on fs, storing the parsed value in p.
func addFormatFlag(fs *pflag.FlagSet, p *report.Format) {
	fs.Var(newFormatValue(report.Text, p), "format", "Output format: text, json, markdown or csv")
}
