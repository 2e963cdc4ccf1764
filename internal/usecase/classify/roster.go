package classify

// auMembers is the African Union roster (55 member states). Order matters:
// fuzzy-match ties resolve to the earliest entry.
var auMembers = []string{
	"Algeria", "Angola", "Benin", "Botswana", "Burkina Faso", "Burundi",
	"Cabo Verde", "Cameroon", "Central African Republic", "Chad", "Comoros",
	"Congo", "Côte d'Ivoire", "Democratic Republic of the Congo", "Djibouti",
	"Egypt", "Equatorial Guinea", "Eritrea", "Eswatini", "Ethiopia", "Gabon",
	"Gambia", "Ghana", "Guinea", "Guinea-Bissau", "Kenya", "Lesotho",
	"Liberia", "Libya", "Madagascar", "Malawi", "Mali", "Mauritania",
	"Mauritius", "Morocco", "Mozambique", "Namibia", "Niger", "Nigeria",
	"Rwanda", "Sahrawi Arab Democratic Republic", "São Tomé and Príncipe",
	"Senegal", "Seychelles", "Sierra Leone", "Somalia", "South Africa",
	"South Sudan", "Sudan", "Tanzania", "Togo", "Tunisia", "Uganda",
	"Zambia", "Zimbabwe",
}

// auAliases maps alternative names and common variations to roster names.
var auAliases = map[string]string{
	"United Republic of Tanzania": "Tanzania",
	"DRC":                         "Democratic Republic of the Congo",
	"DR Congo":                    "Democratic Republic of the Congo",
	"Congo (Democratic Republic)": "Democratic Republic of the Congo",
	"Congo (DRC)":                 "Democratic Republic of the Congo",
	"Democratic Republic of Congo": "Democratic Republic of the Congo",
	"Republic of the Congo":        "Congo",
	"Republic of Congo":            "Congo",
	"Congo (Republic)":             "Congo",
	"Cape Verde":                   "Cabo Verde",
	"Ivory Coast":                  "Côte d'Ivoire",
	"Swaziland":                    "Eswatini",
	"Western Sahara":               "Sahrawi Arab Democratic Republic",
	"Sao Tome and Principe":        "São Tomé and Príncipe",
	"The Gambia":                   "Gambia",
}

// partnerEntities are UN-context speakers that are not states but always
// classify as Development Partners.
var partnerEntities = []string{
	"Secretary-General",
	"President of the General Assembly",
	"PGA",
	"UN Secretary-General",
	"UN SG",
	"SG",
	"European Union",
	"African Union Commission",
}

// countryCodes maps ISO3 codes to country names. Used by corpus ingestion
// (filenames carry the code) and for the recognized-state roster: any name
// here that is not an AU member classifies as a Development Partner.
var countryCodes = map[string]string{
	"USA": "United States", "CHN": "China", "RUS": "Russia", "GBR": "United Kingdom",
	"FRA": "France", "DEU": "Germany", "JPN": "Japan", "IND": "India", "BRA": "Brazil",
	"CAN": "Canada", "AUS": "Australia", "ITA": "Italy", "ESP": "Spain", "MEX": "Mexico",
	"TUR": "Turkey", "SAU": "Saudi Arabia", "IRN": "Iran", "IRQ": "Iraq", "ISR": "Israel",
	"PSE": "Palestine",

	"DZA": "Algeria", "AGO": "Angola", "BEN": "Benin", "BWA": "Botswana",
	"BFA": "Burkina Faso", "BDI": "Burundi", "CPV": "Cabo Verde", "CMR": "Cameroon",
	"CAF": "Central African Republic", "TCD": "Chad", "COM": "Comoros",
	"COG": "Congo", "CIV": "Côte d'Ivoire", "COD": "Democratic Republic of the Congo",
	"DJI": "Djibouti", "EGY": "Egypt", "GNQ": "Equatorial Guinea", "ERI": "Eritrea",
	"SWZ": "Eswatini", "ETH": "Ethiopia", "GAB": "Gabon", "GMB": "Gambia",
	"GHA": "Ghana", "GIN": "Guinea", "GNB": "Guinea-Bissau", "KEN": "Kenya",
	"LSO": "Lesotho", "LBR": "Liberia", "LBY": "Libya", "MDG": "Madagascar",
	"MWI": "Malawi", "MLI": "Mali", "MRT": "Mauritania", "MUS": "Mauritius",
	"MAR": "Morocco", "MOZ": "Mozambique", "NAM": "Namibia", "NER": "Niger",
	"NGA": "Nigeria", "RWA": "Rwanda", "ESH": "Sahrawi Arab Democratic Republic",
	"STP": "São Tomé and Príncipe", "SEN": "Senegal", "SYC": "Seychelles",
	"SLE": "Sierra Leone", "SOM": "Somalia", "ZAF": "South Africa",
	"SSD": "South Sudan", "SDN": "Sudan", "TZA": "Tanzania", "TGO": "Togo",
	"TUN": "Tunisia", "UGA": "Uganda", "ZMB": "Zambia", "ZWE": "Zimbabwe",

	"ARG": "Argentina", "CHL": "Chile", "COL": "Colombia", "PER": "Peru",
	"VEN": "Venezuela", "ECU": "Ecuador", "BOL": "Bolivia", "PRY": "Paraguay",
	"URY": "Uruguay", "GUY": "Guyana", "SUR": "Suriname", "CUB": "Cuba",
	"JAM": "Jamaica", "HTI": "Haiti", "DOM": "Dominican Republic",
	"TTO": "Trinidad and Tobago", "BRB": "Barbados", "LCA": "Saint Lucia",
	"VCT": "Saint Vincent and the Grenadines", "GRD": "Grenada",
	"ATG": "Antigua and Barbuda", "KNA": "Saint Kitts and Nevis", "DMA": "Dominica",
	"BLZ": "Belize", "CRI": "Costa Rica", "PAN": "Panama", "NIC": "Nicaragua",
	"HND": "Honduras", "SLV": "El Salvador", "GTM": "Guatemala",

	"PHL": "Philippines", "IDN": "Indonesia", "MYS": "Malaysia", "SGP": "Singapore",
	"THA": "Thailand", "VNM": "Vietnam", "KHM": "Cambodia", "LAO": "Laos",
	"MMR": "Myanmar", "BGD": "Bangladesh", "PAK": "Pakistan", "LKA": "Sri Lanka",
	"NPL": "Nepal", "BTN": "Bhutan", "MDV": "Maldives", "AFG": "Afghanistan",
	"UZB": "Uzbekistan", "KAZ": "Kazakhstan", "KGZ": "Kyrgyzstan",
	"TJK": "Tajikistan", "TKM": "Turkmenistan", "AZE": "Azerbaijan",
	"ARM": "Armenia", "GEO": "Georgia", "MNG": "Mongolia", "PRK": "North Korea",
	"KOR": "South Korea", "BRN": "Brunei", "TLS": "Timor-Leste",

	"FJI": "Fiji", "PNG": "Papua New Guinea", "SLB": "Solomon Islands",
	"VUT": "Vanuatu", "WSM": "Samoa", "TON": "Tonga", "KIR": "Kiribati",
	"TUV": "Tuvalu", "NRU": "Nauru", "PLW": "Palau", "MHL": "Marshall Islands",
	"FSM": "Micronesia", "NZL": "New Zealand",

	"POL": "Poland", "CZE": "Czech Republic", "SVK": "Slovakia", "HUN": "Hungary",
	"ROU": "Romania", "BGR": "Bulgaria", "HRV": "Croatia", "SVN": "Slovenia",
	"BIH": "Bosnia and Herzegovina", "MNE": "Montenegro", "MKD": "North Macedonia",
	"SRB": "Serbia", "ALB": "Albania", "MDA": "Moldova", "UKR": "Ukraine",
	"BLR": "Belarus", "LTU": "Lithuania", "LVA": "Latvia", "EST": "Estonia",
	"LUX": "Luxembourg", "LIE": "Liechtenstein", "MCO": "Monaco",
	"SMR": "San Marino", "VAT": "Vatican City", "AND": "Andorra", "GRC": "Greece",
	"CYP": "Cyprus", "MLT": "Malta", "ISL": "Iceland", "NOR": "Norway",
	"SWE": "Sweden", "DNK": "Denmark", "FIN": "Finland", "IRL": "Ireland",
	"PRT": "Portugal", "NLD": "Netherlands", "BEL": "Belgium",
	"CHE": "Switzerland", "AUT": "Austria",

	"LBN": "Lebanon", "JOR": "Jordan", "SYR": "Syria", "YEM": "Yemen",
	"OMN": "Oman", "ARE": "United Arab Emirates", "QAT": "Qatar",
	"BHR": "Bahrain", "KWT": "Kuwait",
}

// honorifics are diplomatic title prefixes stripped during normalization.
var honorifics = []string{
	"his excellency",
	"her excellency",
	"h.e.",
	"h.e",
	"the honourable",
	"the honorable",
	"hon.",
	"president of the republic of",
	"president of",
	"prime minister of",
	"minister of foreign affairs of",
	"foreign minister of",
	"delegation of",
	"government of",
	"dr.",
	"mr.",
	"mrs.",
	"ms.",
}
