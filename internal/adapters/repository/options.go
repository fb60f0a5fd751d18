package repository

// DefaultPeriodColumn names the column holding period labels.
const DefaultPeriodColumn = "Week"

// CSVOption applies a configuration option to the CSVSource.
type CSVOption func(*CSVSource)

// WithPeriodColumn sets the header of the period label column.
func WithPeriodColumn(name string) CSVOption {
	return func(s *CSVSource) {
		if name != "" {
			s.periodColumn = name
		}
	}
}

// WithComma sets the field delimiter.
func WithComma(r rune) CSVOption {
	return func(s *CSVSource) {
		if r != 0 {
			s.comma = r
		}
	}
}
