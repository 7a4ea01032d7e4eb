package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultAgingFactors returns the standard medical cost aging curve, relative cost
// by integer member age from 1 through 88.
func DefaultAgingFactors() map[int]decimal.Decimal {
	return map[int]decimal.Decimal{
		1:  decimal.RequireFromString("1.0276"),
		2:  decimal.RequireFromString("1.0560"),
		3:  decimal.RequireFromString("1.0851"),
		4:  decimal.RequireFromString("1.1151"),
		5:  decimal.RequireFromString("1.1459"),
		6:  decimal.RequireFromString("1.1775"),
		7:  decimal.RequireFromString("1.2100"),
		8:  decimal.RequireFromString("1.2434"),
		9:  decimal.RequireFromString("1.2778"),
		10: decimal.RequireFromString("1.3131"),
		11: decimal.RequireFromString("1.3493"),
		12: decimal.RequireFromString("1.3866"),
		13: decimal.RequireFromString("1.4248"),
		14: decimal.RequireFromString("1.4642"),
		15: decimal.RequireFromString("1.5046"),
		16: decimal.RequireFromString("1.5461"),
		17: decimal.RequireFromString("1.5888"),
		18: decimal.RequireFromString("1.6327"),
		19: decimal.RequireFromString("1.6778"),
		20: decimal.RequireFromString("1.7241"),
		21: decimal.RequireFromString("1.8025"),
		22: decimal.RequireFromString("1.8845"),
		23: decimal.RequireFromString("1.9701"),
		24: decimal.RequireFromString("2.0597"),
		25: decimal.RequireFromString("2.1534"),
		26: decimal.RequireFromString("2.2513"),
		27: decimal.RequireFromString("2.3537"),
		28: decimal.RequireFromString("2.4607"),
		29: decimal.RequireFromString("2.5726"),
		30: decimal.RequireFromString("2.6895"),
		31: decimal.RequireFromString("2.7707"),
		32: decimal.RequireFromString("2.8543"),
		33: decimal.RequireFromString("2.9404"),
		34: decimal.RequireFromString("3.0291"),
		35: decimal.RequireFromString("3.1205"),
		36: decimal.RequireFromString("3.2147"),
		37: decimal.RequireFromString("3.3117"),
		38: decimal.RequireFromString("3.4116"),
		39: decimal.RequireFromString("3.5145"),
		40: decimal.RequireFromString("3.6206"),
		41: decimal.RequireFromString("3.7764"),
		42: decimal.RequireFromString("3.9388"),
		43: decimal.RequireFromString("4.1083"),
		44: decimal.RequireFromString("4.2850"),
		45: decimal.RequireFromString("4.4694"),
		46: decimal.RequireFromString("4.6616"),
		47: decimal.RequireFromString("4.8622"),
		48: decimal.RequireFromString("5.0713"),
		49: decimal.RequireFromString("5.2895"),
		50: decimal.RequireFromString("5.5171"),
		51: decimal.RequireFromString("5.6528"),
		52: decimal.RequireFromString("5.7918"),
		53: decimal.RequireFromString("5.9342"),
		54: decimal.RequireFromString("6.0801"),
		55: decimal.RequireFromString("6.2296"),
		56: decimal.RequireFromString("6.3828"),
		57: decimal.RequireFromString("6.5398"),
		58: decimal.RequireFromString("6.7006"),
		59: decimal.RequireFromString("6.8654"),
		60: decimal.RequireFromString("7.0342"),
		61: decimal.RequireFromString("7.1413"),
		62: decimal.RequireFromString("7.2499"),
		63: decimal.RequireFromString("7.3603"),
		64: decimal.RequireFromString("7.4723"),
		65: decimal.RequireFromString("7.5860"),
		66: decimal.RequireFromString("7.7127"),
		67: decimal.RequireFromString("7.8415"),
		68: decimal.RequireFromString("7.9725"),
		69: decimal.RequireFromString("8.1057"),
		70: decimal.RequireFromString("8.2411"),
		71: decimal.RequireFromString("8.5190"),
		72: decimal.RequireFromString("8.8062"),
		73: decimal.RequireFromString("9.1032"),
		74: decimal.RequireFromString("9.8006"),
		75: decimal.RequireFromString("10.5514"),
		76: decimal.RequireFromString("10.6875"),
		77: decimal.RequireFromString("10.8255"),
		78: decimal.RequireFromString("10.9652"),
		79: decimal.RequireFromString("11.2544"),
		80: decimal.RequireFromString("11.5513"),
		81: decimal.RequireFromString("12.1205"),
		82: decimal.RequireFromString("12.7177"),
		83: decimal.RequireFromString("13.3444"),
		84: decimal.RequireFromString("13.6512"),
		85: decimal.RequireFromString("13.9651"),
		86: decimal.RequireFromString("14.0337"),
		87: decimal.RequireFromString("14.1027"),
		88: decimal.RequireFromString("14.1720"),
	}
}

// AgingFactorFile is the on-disk shape of a custom aging curve
type AgingFactorFile struct {
	AgingFactors map[int]decimal.Decimal `yaml:"aging_factors" json:"agingFactors"`
}
