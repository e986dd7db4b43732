package ucd

// https://www.unicode.org/reports/tr44/#GC_Values_Table
var compositGeneralCategories = map[string][]string{
	// Cased_Letter
	"lc": {"lu", "ll", "lt"},
	// Letter
	"l": {"lu", "ll", "lt", "lm", "lo"},
	// Mark
	"m": {"mn", "mc", "me"},
	// Number
	"n": {"nd", "nl", "no"},
	// Punctuation
	"p": {"pc", "pd", "ps", "pi", "pe", "pf", "po"},
	// Symbol
	"s": {"sm", "sc", "sk", "so"},
	// Separator
	"z": {"zs", "zl", "zp"},
	// Other
	"c": {"cc", "cf", "cs", "co"},
}

// https://www.unicode.org/Public/13.0.0/ucd/PropertyValueAliases.txt
var generalCategoryValueAbbs = map[string]string{
	"casedletter":          "lc",
	"letter":               "l",
	"uppercaseletter":      "lu",
	"lowercaseletter":      "ll",
	"titlecaseletter":      "lt",
	"modifierletter":       "lm",
	"otherletter":          "lo",
	"mark":                 "m",
	"combiningmark":        "m",
	"nonspacingmark":       "mn",
	"spacingmark":          "mc",
	"enclosingmark":        "me",
	"number":               "n",
	"decimalnumber":        "nd",
	"digit":                "nd",
	"letternumber":         "nl",
	"othernumber":          "no",
	"punctuation":          "p",
	"punct":                "p",
	"connectorpunctuation": "pc",
	"dashpunctuation":      "pd",
	"openpunctuation":      "ps",
	"closepunctuation":     "pe",
	"initialpunctuation":   "pi",
	"finalpunctuation":     "pf",
	"otherpunctuation":     "po",
	"symbol":               "s",
	"mathsymbol":           "sm",
	"currencysymbol":       "sc",
	"modifiersymbol":       "sk",
	"othersymbol":          "so",
	"separator":            "z",
	"spaceseparator":       "zs",
	"lineseparator":        "zl",
	"paragraphseparator":   "zp",
	"other":                "c",
	"control":              "cc",
	"cntrl":                "cc",
	"format":               "cf",
	"surrogate":            "cs",
	"privateuse":           "co",
}

// https://www.unicode.org/Public/13.0.0/ucd/DerivedCoreProperties.txt
var derivedCoreProperties = map[string]struct {
	categories []string
	properties []string
}{
	// Alphabetic
	"alpha": {
		categories: []string{"lu", "ll", "lt", "lm", "lo", "nl"},
		properties: []string{"otheralphabetic", "otherlowercase", "otheruppercase"},
	},
	// Lowercase
	"lower": {
		categories: []string{"ll"},
		properties: []string{"otherlowercase"},
	},
	// Uppercase
	"upper": {
		categories: []string{"lu"},
		properties: []string{"otheruppercase"},
	},
}

// https://www.unicode.org/Public/13.0.0/ucd/PropertyAliases.txt
var propertyNameAbbs = map[string]string{
	"generalcategory": "gc",
	"gc":              "gc",
	"script":          "sc",
	"sc":              "sc",
	"alphabetic":      "alpha",
	"alpha":           "alpha",
	"lowercase":       "lower",
	"lower":           "lower",
	"uppercase":       "upper",
	"upper":           "upper",
	"whitespace":      "whitespace",
	"wspace":          "whitespace",
	"space":           "whitespace",
}

// https://www.unicode.org/reports/tr44/#Type_Key_Table
// https://www.unicode.org/reports/tr44/#Binary_Values_Table
var binaryValues = map[string]bool{
	"yes":   true,
	"y":     true,
	"true":  true,
	"t":     true,
	"no":    false,
	"n":     false,
	"false": false,
	"f":     false,
}
