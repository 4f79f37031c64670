package knowledge

import "nyayasetu-backend/models"

// statutesByCategory is the static Indian statute table. Relevance values
// are the curated baseline for a direct category hit; issue-driven matches
// from other categories get a computed relevance instead. family_law and
// other carry no curated statutes.
var statutesByCategory = map[models.Category][]models.SuggestedLaw{
	models.CategoryDomesticViolence: {
		{
			Section:     "IPC Section 498A",
			Description: "Husband or relative of husband of a woman subjecting her to cruelty",
			Relevance:   "95%",
			Details:     "Punishment for subjecting a married woman to cruelty",
		},
		{
			Section:     "Protection of Women from Domestic Violence Act, 2005",
			Description: "Comprehensive law to protect women from domestic violence",
			Relevance:   "92%",
			Details:     "Provides for more effective protection of the rights of women",
		},
		{
			Section:     "IPC Section 354",
			Description: "Assault or criminal force to woman with intent to outrage her modesty",
			Relevance:   "85%",
			Details:     "Covers physical assault and molestation",
		},
	},
	models.CategoryWomenRights: {
		{
			Section:     "IPC Section 354A",
			Description: "Sexual harassment and punishment for sexual harassment",
			Relevance:   "90%",
			Details:     "Covers workplace and other forms of sexual harassment",
		},
		{
			Section:     "Sexual Harassment of Women at Workplace Act, 2013",
			Description: "Prevention, prohibition and redressal of sexual harassment of women at workplace",
			Relevance:   "95%",
			Details:     "Mandatory for all workplaces with 10 or more employees",
		},
		{
			Section:     "Dowry Prohibition Act, 1961",
			Description: "Prohibition of dowry",
			Relevance:   "88%",
			Details:     "Makes giving and taking of dowry a criminal offense",
		},
	},
	models.CategoryLaborRights: {
		{
			Section:     "Minimum Wages Act, 1948",
			Description: "Provides for fixing minimum rates of wages",
			Relevance:   "95%",
			Details:     "Ensures minimum wage payment to workers",
		},
		{
			Section:     "Payment of Wages Act, 1936",
			Description: "Regulates payment of wages to certain classes of persons",
			Relevance:   "90%",
			Details:     "Prevents unauthorized deductions from wages",
		},
		{
			Section:     "Industrial Disputes Act, 1947",
			Description: "Investigation and settlement of industrial disputes",
			Relevance:   "85%",
			Details:     "Covers wrongful termination and labor disputes",
		},
	},
	models.CategoryPropertyDispute: {
		{
			Section:     "Transfer of Property Act, 1882",
			Description: "Transfer of property by act of parties",
			Relevance:   "90%",
			Details:     "Governs transfer of immovable property",
		},
		{
			Section:     "Registration Act, 1908",
			Description: "Registration of documents",
			Relevance:   "85%",
			Details:     "Mandatory registration of property documents",
		},
		{
			Section:     "Indian Succession Act, 1925",
			Description: "Succession and inheritance laws",
			Relevance:   "80%",
			Details:     "Covers inheritance and succession rights",
		},
	},
	models.CategoryConsumerProtection: {
		{
			Section:     "Consumer Protection Act, 2019",
			Description: "Protection of interests of consumers",
			Relevance:   "95%",
			Details:     "Comprehensive consumer protection law",
		},
		{
			Section:     "Sale of Goods Act, 1930",
			Description: "Sale of goods and related matters",
			Relevance:   "85%",
			Details:     "Covers defective goods and warranty issues",
		},
	},
	models.CategoryCriminalLaw: {
		{
			Section:     "IPC Section 420",
			Description: "Cheating and dishonestly inducing delivery of property",
			Relevance:   "90%",
			Details:     "Covers fraud and cheating cases",
		},
		{
			Section:     "IPC Section 379",
			Description: "Punishment for theft",
			Relevance:   "85%",
			Details:     "Basic theft provisions",
		},
		{
			Section:     "IPC Section 506",
			Description: "Punishment for criminal intimidation",
			Relevance:   "80%",
			Details:     "Covers threats and intimidation",
		},
	},
	models.CategoryCasteDiscrimination: {
		{
			Section:     "Scheduled Castes and Scheduled Tribes (Prevention of Atrocities) Act, 1989",
			Description: "Prevention of atrocities against SCs and STs",
			Relevance:   "95%",
			Details:     "Comprehensive law against caste-based discrimination",
		},
		{
			Section:     "Article 15 of Constitution",
			Description: "Prohibition of discrimination on grounds of religion, race, caste, sex or place of birth",
			Relevance:   "90%",
			Details:     "Constitutional protection against discrimination",
		},
		{
			Section:     "Article 17 of Constitution",
			Description: "Abolition of untouchability",
			Relevance:   "88%",
			Details:     "Constitutional abolition of untouchability",
		},
	},
	models.CategoryConstitutionalRights: {
		{
			Section:     "Article 21 of Constitution",
			Description: "Protection of life and personal liberty",
			Relevance:   "95%",
			Details:     "Fundamental right to life and liberty",
		},
		{
			Section:     "Article 14 of Constitution",
			Description: "Equality before law",
			Relevance:   "90%",
			Details:     "Right to equality and equal protection of laws",
		},
		{
			Section:     "Article 19 of Constitution",
			Description: "Protection of certain rights regarding freedom of speech etc.",
			Relevance:   "85%",
			Details:     "Fundamental freedoms including speech and expression",
		},
	},
}

// CategoryInfo describes one legal category for UI consumption
type CategoryInfo struct {
	ID          models.Category `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Keywords    []string        `json:"keywords"`
}

var categoryInfos = []CategoryInfo{
	{
		ID:          models.CategoryDomesticViolence,
		Name:        "Domestic Violence",
		Description: "Violence within domestic relationships",
		Keywords:    []string{"domestic", "violence", "husband", "wife", "family", "abuse"},
	},
	{
		ID:          models.CategoryWomenRights,
		Name:        "Women Rights",
		Description: "Rights and protection for women",
		Keywords:    []string{"women", "harassment", "dowry", "workplace", "sexual"},
	},
	{
		ID:          models.CategoryLaborRights,
		Name:        "Labor Rights",
		Description: "Workers and employment rights",
		Keywords:    []string{"worker", "employee", "wages", "salary", "job", "termination"},
	},
	{
		ID:          models.CategoryPropertyDispute,
		Name:        "Property Dispute",
		Description: "Property and land related disputes",
		Keywords:    []string{"property", "land", "house", "inheritance", "ownership"},
	},
	{
		ID:          models.CategoryConsumerProtection,
		Name:        "Consumer Protection",
		Description: "Consumer rights and protection",
		Keywords:    []string{"consumer", "product", "service", "defective", "warranty"},
	},
	{
		ID:          models.CategoryCriminalLaw,
		Name:        "Criminal Law",
		Description: "Criminal offenses and procedures",
		Keywords:    []string{"theft", "fraud", "cheating", "criminal", "police"},
	},
	{
		ID:          models.CategoryCasteDiscrimination,
		Name:        "Caste Discrimination",
		Description: "Caste-based discrimination and atrocities",
		Keywords:    []string{"caste", "dalit", "scheduled", "discrimination", "atrocity"},
	},
	{
		ID:          models.CategoryConstitutionalRights,
		Name:        "Constitutional Rights",
		Description: "Fundamental rights and constitutional matters",
		Keywords:    []string{"fundamental", "rights", "constitution", "freedom", "equality"},
	},
}

// EmergencyContact is a national helpline entry
type EmergencyContact struct {
	Number      string `json:"number"`
	Description string `json:"description"`
}

var emergencyContacts = map[string]EmergencyContact{
	"police":          {Number: "100", Description: "Police Emergency"},
	"womenHelpline":   {Number: "1091", Description: "Women Helpline (24x7)"},
	"childHelpline":   {Number: "1098", Description: "Child Helpline"},
	"legalAid":        {Number: "15100", Description: "National Legal Services Authority"},
	"elderlyHelpline": {Number: "14567", Description: "Elder Line (Toll Free)"},
	"mentalHealth":    {Number: "9152987821", Description: "COOJ Mental Health Foundation"},
}

// LegalAidContact is a state legal services authority entry
type LegalAidContact struct {
	Authority string `json:"authority"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

var legalAidContacts = map[string]LegalAidContact{
	"delhi": {
		Authority: "Delhi State Legal Services Authority",
		Address:   "Delhi High Court Complex, New Delhi",
		Phone:     "011-23385010",
		Email:     "dslsa@delhicourts.nic.in",
	},
	"mumbai": {
		Authority: "Maharashtra State Legal Services Authority",
		Address:   "Bombay High Court, Mumbai",
		Phone:     "022-22621681",
		Email:     "mslsa@bombayhighcourt.nic.in",
	},
	"bangalore": {
		Authority: "Karnataka State Legal Services Authority",
		Address:   "High Court of Karnataka, Bangalore",
		Phone:     "080-22212926",
		Email:     "kslsa@karnatakajudiciary.kar.nic.in",
	},
}

// nationalLegalAid is the fallback when no state entry exists
var nationalLegalAid = LegalAidContact{
	Authority: "National Legal Services Authority",
	Address:   "Supreme Court of India, New Delhi",
	Phone:     "011-23388922",
	Email:     "nalsa@nic.in",
}
