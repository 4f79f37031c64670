package bias

import "nyayasetu-backend/models"

// lexiconEntry is one bias category with its keyword set. Declaration order
// matters: ties on severity resolve to the earliest category.
type lexiconEntry struct {
	Type     models.BiasType
	Keywords []string
}

// Lexicon is the static keyword table used for deterministic bias scoring.
// Keywords cover Hindi and English usage for the Indian legal context.
type Lexicon struct {
	categories             []lexiconEntry
	discriminationKeywords []string
	intensityIndicators    []string
}

// NewLexicon returns the built-in lexicon
func NewLexicon() *Lexicon {
	return &Lexicon{
		categories: []lexiconEntry{
			{
				Type: models.BiasTypeGender,
				Keywords: []string{
					"औरत", "महिला", "लड़की", "बहू", "पत्नी", "woman", "girl", "wife", "female",
					"मर्द", "आदमी", "लड़का", "पति", "man", "male", "husband", "boy",
				},
			},
			{
				Type: models.BiasTypeCaste,
				Keywords: []string{
					"जाति", "दलित", "ब्राह्मण", "क्षत्रिय", "वैश्य", "शूद्र", "अनुसूचित",
					"caste", "dalit", "brahmin", "kshatriya", "vaishya", "shudra", "scheduled",
				},
			},
			{
				Type: models.BiasTypeReligion,
				Keywords: []string{
					"हिंदू", "मुस्लिम", "सिख", "ईसाई", "बौद्ध", "जैन",
					"hindu", "muslim", "sikh", "christian", "buddhist", "jain",
				},
			},
			{
				Type: models.BiasTypeEconomic,
				Keywords: []string{
					"गरीब", "अमीर", "पैसा", "धन", "संपत्ति", "poor", "rich", "money", "wealth", "property",
				},
			},
			{
				Type: models.BiasTypeRegional,
				Keywords: []string{
					"उत्तर", "दक्षिण", "पूर्व", "पश्चिम", "गांव", "शहर",
					"north", "south", "east", "west", "village", "city", "rural", "urban",
				},
			},
		},
		discriminationKeywords: []string{
			"भेदभाव", "अन्याय", "अत्याचार", "उत्पीड़न", "शोषण",
			"discrimination", "injustice", "oppression", "harassment", "exploitation",
			"unfair", "biased", "prejudice", "stereotype",
		},
		intensityIndicators: []string{
			"मारना", "पीटना", "हिंसा", "धमकी", "beating", "violence", "threat", "abuse",
		},
	}
}

// explanations is a fixed per-language, per-category template table.
// Explanations are never generated, which keeps bias output deterministic.
var explanations = map[models.Language]map[models.BiasType]string{
	models.LanguageHindi: {
		models.BiasTypeGender:   "लिंग आधारित भेदभाव की संभावना का पता चला है।",
		models.BiasTypeCaste:    "जाति आधारित भेदभाव की संभावना का पता चला है।",
		models.BiasTypeReligion: "धर्म आधारित भेदभाव की संभावना का पता चला है।",
		models.BiasTypeEconomic: "आर्थिक स्थिति के आधार पर भेदभाव की संभावना है।",
		models.BiasTypeRegional: "क्षेत्रीय या भाषाई भेदभाव की संभावना है।",
		models.BiasTypeGeneral:  "सामान्य भेदभाव की संभावना का पता चला है।",
	},
	models.LanguageEnglish: {
		models.BiasTypeGender:   "Potential gender-based discrimination detected.",
		models.BiasTypeCaste:    "Potential caste-based discrimination detected.",
		models.BiasTypeReligion: "Potential religion-based discrimination detected.",
		models.BiasTypeEconomic: "Potential economic status-based discrimination detected.",
		models.BiasTypeRegional: "Potential regional or linguistic discrimination detected.",
		models.BiasTypeGeneral:  "General discrimination patterns detected.",
	},
}

const (
	noBiasExplanation         = "No bias patterns detected in the query."
	keywordsOnlyExplanationEN = "Discrimination-related keywords found in the query."
	keywordsOnlyExplanationHI = "भेदभाव संबंधी शब्दों का उपयोग मिला है।"
)

// preventionSuggestions are fixed per-type, per-language advice lists
var preventionSuggestions = map[models.Language]map[models.BiasType][]string{
	models.LanguageEnglish: {
		models.BiasTypeGender: {
			"Ensure equal treatment regardless of gender",
			"Document any gender-based discrimination",
			"Contact women's rights organizations",
			"File complaint under relevant women protection laws",
		},
		models.BiasTypeCaste: {
			"Document caste-based discrimination incidents",
			"File complaint under SC/ST Prevention of Atrocities Act",
			"Contact Dalit rights organizations",
			"Seek legal aid for caste discrimination cases",
		},
		models.BiasTypeReligion: {
			"Document religious discrimination",
			"Contact minority rights organizations",
			"File complaint under relevant constitutional provisions",
			"Seek legal counsel for religious freedom cases",
		},
		models.BiasTypeEconomic: {
			"Document economic discrimination",
			"Seek legal aid services",
			"Contact poverty alleviation programs",
			"File complaint with appropriate authorities",
		},
		models.BiasTypeRegional: {
			"Document linguistic or regional discrimination",
			"Contact regional rights organizations",
			"File complaint under language rights provisions",
			"Seek local community support",
		},
	},
	models.LanguageHindi: {
		models.BiasTypeGender: {
			"लिंग के आधार पर समान व्यवहार सुनिश्चित करें",
			"लिंग आधारित भेदभाव का दस्तावेजीकरण करें",
			"महिला अधिकार संगठनों से संपर्क करें",
			"महिला सुरक्षा कानूनों के तहत शिकायत दर्ज करें",
		},
		models.BiasTypeCaste: {
			"जाति आधारित भेदभाव की घटनाओं का दस्तावेजीकरण करें",
			"अनुसूचित जाति/जनजाति अत्याचार निवारण अधिनियम के तहत शिकायत दर्ज करें",
			"दलित अधिकार संगठनों से संपर्क करें",
			"जाति भेदभाव के मामलों के लिए कानूनी सहायता लें",
		},
		models.BiasTypeReligion: {
			"धार्मिक भेदभाव का दस्तावेजीकरण करें",
			"अल्पसंख्यक अधिकार संगठनों से संपर्क करें",
			"संबंधित संवैधानिक प्रावधानों के तहत शिकायत दर्ज करें",
			"धार्मिक स्वतंत्रता के मामलों के लिए कानूनी सलाह लें",
		},
	},
}
