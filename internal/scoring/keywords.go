package scoring

// Keyword lists used by the heuristic text scorers. These are substring
// matched against raw review text, so multi-word phrases must appear
// exactly as the portals render them.

// genericKeywords are boilerplate cliches (positive and negative) that
// short reviews lean on; their presence lowers content trust.
var genericKeywords = []string{
	"최고의 학원",
	"강추",
	"좋아요",
	"만족합니다",
	"매우 만족",
	"별로예요",
	"비추천",
}

var positiveKeywords = []string{
	"좋아요",
	"만족",
	"좋은 점",
	"추천",
	"꼼꼼히",
	"친절",
	"감사",
	"도움",
}

var negativeKeywords = []string{
	"아쉬운 점",
	"단점",
	"부족",
	"불편",
	"비추천",
	"불만",
	"힘들",
}
