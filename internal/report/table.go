package report

import "strconv"

// SummaryHeaders returns the column names for the cross-year summary table.
func SummaryHeaders() []string {
	return []string{
		"Year",
		"Direction",
		"Top_Country",
		"Min_Constraint",
		"Avg_Constraint",
		"Num_Countries",
		"Num_Valid",
	}
}

// SummaryRecords renders summary rows for CSV or workbook output.
func SummaryRecords(rows []SummaryRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.Year),
			r.Direction,
			r.TopCountry,
			strconv.FormatFloat(r.MinConstraint, 'f', -1, 64),
			strconv.FormatFloat(r.AvgConstraint, 'f', 4, 64),
			strconv.Itoa(r.NumCountries),
			strconv.Itoa(r.NumValid),
		})
	}
	return records
}

// FrequencyHeaders returns the column names for a top-frequency table.
func FrequencyHeaders() []string {
	return []string{"Country", "Years_In_Top_List"}
}

// FrequencyRecords renders country frequency counts for CSV or workbook
// output.
func FrequencyRecords(counts []CountryCount) [][]string {
	records := make([][]string, 0, len(counts))
	for _, c := range counts {
		records = append(records, []string{c.Country, strconv.Itoa(c.Count)})
	}
	return records
}

// ProportionHeaders returns the column names for a per-year proportion
// table.
func ProportionHeaders() []string {
	return []string{"Year", "Country", "Proportion(%)"}
}

// ProportionRecords renders per-year proportion rows for CSV or workbook
// output.
func ProportionRecords(rows []ProportionRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			strconv.Itoa(r.Year),
			r.Country,
			strconv.FormatFloat(r.Proportion, 'f', -1, 64),
		})
	}
	return records
}
