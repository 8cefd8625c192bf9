package zone

// Reference instants used to find a location's standard and daylight
// offsets: no DST was in effect anywhere in the table on Jan 1 1970, and
// every DST-observing zone in it was on daylight time on June 30 2015.
const (
	winterRefMillis = 0
	summerRefMillis = 1435636800000
)

// class is one row of the static classification table.
type class struct {
	std, dst string // abbreviations
	name     string
}

// offsets are minutes east of UTC: {standard, daylight}
var classes = map[[2]int]class{
	{0, 0}:       {"GMT", "GMT", "UTC"},
	{-180, -120}: {"WGT", "WGST", "Western_Greenland"},
	{-210, -150}: {"NST", "NDT", "Canada/Newfoundland"},
	{-240, -180}: {"AST", "ADT", "Canada/Atlantic"},
	{-300, -240}: {"EST", "EDT", "US/Eastern"},
	{-360, -300}: {"CST", "CDT", "US/Central"},
	{-420, -420}: {"MST", "MST", "US/Arizona"},
	{-420, -360}: {"MST", "MDT", "US/Mountain"},
	{-480, -420}: {"PST", "PDT", "US/Pacific"},
	{-540, -480}: {"AKST", "AKDT", "US/Alaska"},
	{-600, -600}: {"HST", "HST", "US/Hawaii"},
	{-600, -540}: {"HAST", "HADT", "US/Aleutian"},
}

// Unknown is the full name reported for offset pairs missing from the table.
const Unknown = "???"
