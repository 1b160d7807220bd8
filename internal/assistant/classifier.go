package assistant

import "strings"

// TaskType tags a request with the kind of work it asks for.
type TaskType string

const (
	TaskAudio    TaskType = "audio"
	TaskVideo    TaskType = "video"
	TaskWriting  TaskType = "writing"
	TaskDesign   TaskType = "design"
	TaskBusiness TaskType = "business"
	TaskLegal    TaskType = "legal"
	TaskAnalysis TaskType = "analysis"
	TaskGeneral  TaskType = "general"
)

type classifierRule struct {
	task     TaskType
	keywords []string
}

// Order matters: the first rule with a hit wins.
var classifierRules = []classifierRule{
	{TaskAudio, []string{"music", "audio", "song", "sound"}},
	{TaskVideo, []string{"video", "film", "movie", "edit"}},
	{TaskWriting, []string{"write", "article", "blog", "content"}},
	{TaskDesign, []string{"design", "image", "logo", "graphic"}},
	{TaskBusiness, []string{"business", "manage", "plan", "strategy"}},
	{TaskLegal, []string{"legal", "contract", "law", "agreement"}},
	{TaskAnalysis, []string{"summarize", "analyze", "extract", "process"}},
}

// Classify maps free text to a task type. Keywords are matched as plain
// substrings of the lower-cased text, so "planet" counts as "plan".
func Classify(text string) TaskType {
	lower := strings.ToLower(text)
	for _, rule := range classifierRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.task
			}
		}
	}
	return TaskGeneral
}
