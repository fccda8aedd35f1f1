package services

// Candidate label vocabularies for zero-shot comment classification. The
// classifier re-ranks these against the combined comment text; labels are
// grouped by polarity and submitted in fixed-size batches.

var prosLabels = []string{
	"clean",
	"neat",
	"well-maintained",
	"fresh smell",
	"no odor",
	"spotless",
	"hygienic",
	"well-sanitized",
	"sparkling",
	"well-lit",
	"bright",
	"good lighting",
	"properly lit",
	"sufficient lighting",
	"natural light",
	"accessible",
	"wheelchair accessible",
	"disability-friendly",
	"easy access",
	"spacious",
	"user-friendly",
	"fully stocked",
	"enough toilet paper",
	"soap available",
	"paper towels available",
	"sanitizer available",
	"fully stocked dispensers",
	"sufficient toilet paper",
	"fresh towels",
	"regularly maintained",
}

var consLabels = []string{
	"dirty",
	"trash on the floor",
	"unclean",
	"stinky",
	"bad odor",
	"messy",
	"unhygienic",
	"soiled floor",
	"spills",
	"overflowing trash bins",
	"poorly lit",
	"dark",
	"too dim",
	"bad lighting",
	"no light in some areas",
	"flickering lights",
	"inadequate lighting",
	"not wheelchair accessible",
	"hard to reach",
	"narrow aisles",
	"difficult for the disabled",
	"no ramps",
	"not user-friendly",
	"no soap",
	"out of toilet paper",
	"empty dispensers",
	"no hand towels",
	"no sanitizer",
	"out of pads",
	"no sanitary products",
}

// chunkLabels splits a label list into batches of at most size elements.
func chunkLabels(labels []string, size int) [][]string {
	if size <= 0 {
		return [][]string{labels}
	}
	chunks := make([][]string, 0, (len(labels)+size-1)/size)
	for i := 0; i < len(labels); i += size {
		end := i + size
		if end > len(labels) {
			end = len(labels)
		}
		chunks = append(chunks, labels[i:end])
	}
	return chunks
}
