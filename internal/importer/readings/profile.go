package readings

// Profile describes the column layout of a meter-readings CSV. Landlords
// keep these sheets in different tools, so a couple of header spellings
// are accepted. Adding a layout is just adding a Profile here.
type Profile struct {
	Name     string
	UnitCol  string
	PrevCol  string
	CurrCol  string
	RateCol  string
	WaterCol string
	NotesCol string // optional, may be absent from the file
}

// requiredCols returns the column names that must be present for this
// profile to match.
func (p Profile) requiredCols() []string {
	return []string{p.UnitCol, p.PrevCol, p.CurrCol, p.RateCol, p.WaterCol}
}

// profiles is the ordered list of layouts to try during auto-detection.
var profiles = []Profile{
	{
		Name:     "export",
		UnitCol:  "unit_number",
		PrevCol:  "elec_prev_reading",
		CurrCol:  "elec_curr_reading",
		RateCol:  "elec_rate",
		WaterCol: "water_amount",
		NotesCol: "notes",
	},
	{
		Name:     "sheet",
		UnitCol:  "Unit",
		PrevCol:  "Previous Reading",
		CurrCol:  "Current Reading",
		RateCol:  "Rate",
		WaterCol: "Water",
		NotesCol: "Notes",
	},
}
