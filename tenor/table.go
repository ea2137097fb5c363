package tenor

// canonical maps market tenor strings to their normalised form. Note "1Y" and
// "1Y6M" are stored in months.
var canonical = map[string]Tenor{
	"1D":   {1, Day},
	"2D":   {2, Day},
	"1BD":  {1, BusinessDay},
	"2BD":  {2, BusinessDay},
	"1W":   {1, Week},
	"2W":   {2, Week},
	"3W":   {3, Week},
	"1M":   {1, Month},
	"2M":   {2, Month},
	"3M":   {3, Month},
	"4M":   {4, Month},
	"5M":   {5, Month},
	"6M":   {6, Month},
	"7M":   {7, Month},
	"8M":   {8, Month},
	"9M":   {9, Month},
	"10M":  {10, Month},
	"11M":  {11, Month},
	"12M":  {12, Month},
	"1Y":   {12, Month},
	"18M":  {18, Month},
	"1Y6M": {18, Month},
	"2Y":   {2, Year},
	"3Y":   {3, Year},
	"4Y":   {4, Year},
	"5Y":   {5, Year},
	"10Y":  {10, Year},
	"20Y":  {20, Year},
	"25Y":  {25, Year},
	"30Y":  {30, Year},
	"35Y":  {35, Year},
	"40Y":  {40, Year},
	"45Y":  {45, Year},
	"50Y":  {50, Year},
}
