package standards

import "planfairy/internal/domain"

// seedPools are the built-in sample standards used until a real catalog is
// imported. Keys follow the same "State|Subject|GradeBand" scheme as imports.
var seedPools = map[string][]domain.StandardEntry{
	"Colorado|Social Studies|6-8": {
		{Code: "CO.SS.MS.1.1", Text: "Analyze continuity and change over time in societies and regions.", Tags: []string{"continuity", "change", "historical", "timeline"}},
		{Code: "CO.SS.MS.2.2", Text: "Explain economic choices and trade-offs using real-world scenarios.", Tags: []string{"economics", "trade", "scarcity", "choice"}},
		{Code: "CO.SS.MS.3.3", Text: "Use geographic tools to gather data and make inferences about places.", Tags: []string{"geography", "map", "gis", "place"}},
		{Code: "CO.SS.MS.4.1", Text: "Describe civic responsibilities and processes for participation.", Tags: []string{"civics", "rights", "responsibility", "participation"}},
		{Code: "CO.SS.MS.1.3", Text: "Evaluate causes and effects of significant historical events.", Tags: []string{"cause", "effect", "revolution", "war"}},
	},
	"Colorado|World Languages|9-12": {
		{Code: "CO.WL.HS.1", Text: "Interpretive communication in target language across authentic texts.", Tags: []string{"interpretive", "reading", "listening", "authentic"}},
		{Code: "CO.WL.HS.2", Text: "Interpersonal communication to exchange information and opinions.", Tags: []string{"interpersonal", "speaking", "conversation"}},
		{Code: "CO.WL.HS.3", Text: "Presentational communication for audiences on familiar/unfamiliar topics.", Tags: []string{"presentational", "speaking", "writing"}},
		{Code: "CO.WL.HS.4", Text: "Cultural competence: practices, products, perspectives.", Tags: []string{"culture", "practices", "products", "perspectives"}},
	},
}
