package services

// ImageFeature pairs one reportable restroom feature with the detection
// label keywords that imply it. Matching is a case-insensitive substring
// test against each detected label.
type ImageFeature struct {
	Name     string
	Keywords []string
}

// restroomFeatures is the fixed feature vocabulary for image analysis.
// Order is significant: result maps are keyed by name but DetectedFeatures
// lists names in this order.
var restroomFeatures = []ImageFeature{
	{Name: "Modern Fixtures", Keywords: []string{
		"toilet", "sink", "faucet", "shower", "bathtub", "fixture", "plumbing",
		"bathroom fixture", "restroom fixture", "modern bathroom", "contemporary",
	}},
	{Name: "Touchless Technology", Keywords: []string{
		"automatic faucet", "motion sensor", "touchless", "sensor", "automatic",
		"hands-free", "no touch", "motion activated", "automatic flush",
	}},
	{Name: "ADA Compliant", Keywords: []string{
		"wheelchair accessible", "grab bar", "handrail", "ada", "accessible",
		"disability", "handicap", "wheelchair", "barrier-free", "universal design",
	}},
	{Name: "Good Lighting", Keywords: []string{
		"light fixture", "window", "natural light", "bright", "well lit",
		"lighting", "illumination", "light", "brightly lit", "good visibility",
		"adequate lighting",
	}},
	{Name: "Poor Lighting", Keywords: []string{
		"dim", "dark", "poor lighting", "low light", "gloomy", "shadowy",
		"dimly lit", "insufficient lighting", "poor visibility", "darkness", "shadows",
	}},
	{Name: "Clean", Keywords: []string{
		"clean", "maintained", "spotless", "sanitary", "hygienic", "fresh",
		"tidy", "well-maintained", "neat", "orderly", "immaculate",
	}},
	{Name: "Dirty", Keywords: []string{
		"dirty", "filthy", "unsanitary", "stained", "grimy", "messy",
		"unclean", "soiled", "contaminated", "unhygienic", "disheveled",
	}},
	{Name: "Hand Dryers", Keywords: []string{
		"hand dryer", "air dryer", "blow dryer", "drying", "air hand dryer",
		"electric dryer", "hot air", "drying station", "air blower",
	}},
	{Name: "Baby Changing Station", Keywords: []string{
		"baby changing", "diaper changing", "infant care", "nursing",
		"changing table", "baby station", "diaper station", "infant station",
		"changing area", "baby care",
	}},
	{Name: "Menstrual Products", Keywords: []string{
		"menstrual", "tampon", "pad", "sanitary", "feminine", "period",
		"dispenser", "feminine hygiene", "menstrual care", "sanitary products",
		"feminine products",
	}},
	{Name: "Spacious", Keywords: []string{
		"spacious", "roomy", "large", "wide", "open area", "ample space",
		"generous", "expansive", "open", "uncrowded", "comfortable space",
	}},
	{Name: "Stylish", Keywords: []string{
		"stylish", "design", "aesthetic", "decorative", "modern design",
		"elegant", "fashionable", "trendy", "sophisticated", "well-designed",
		"attractive",
	}},
	{Name: "Multiple Stalls", Keywords: []string{
		"multiple stalls", "several stalls", "many stalls", "multiple toilets",
		"stall", "toilet stall", "bathroom stall", "restroom stall",
		"multiple bathrooms",
	}},
	{Name: "Family-Friendly", Keywords: []string{
		"family", "baby changing", "diaper", "child", "infant",
		"family restroom", "family bathroom", "children", "kid-friendly",
		"family-friendly",
	}},
	{Name: "Gender-Neutral", Keywords: []string{
		"gender neutral", "all gender", "unisex", "inclusive",
		"gender inclusive", "all-gender", "gender-free", "universal",
		"neutral", "non-gendered",
	}},
	{Name: "Eco-Friendly", Keywords: []string{
		"eco", "sustainable", "green", "water saving", "low flow",
		"environmentally friendly", "conservation", "energy efficient",
		"recycled", "biodegradable", "eco-conscious",
	}},
}
