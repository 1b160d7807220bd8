package assistant

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl prompts/*.tmpl
var templateFS embed.FS

var (
	fallbackTemplates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))
	systemPrompt      = template.Must(template.ParseFS(templateFS, "prompts/system.tmpl"))
)

const readyToHelp = "I'm ready to help! Please provide more details about your specific requirements."

type templateData struct {
	Assistant    string
	Task         TaskType
	Message      string
	LowerMessage string
	FileContext  string
}

func newTemplateData(assistant string, task TaskType, message, fileContext string) templateData {
	return templateData{
		Assistant:    assistant,
		Task:         task,
		Message:      message,
		LowerMessage: strings.ToLower(message),
		FileContext:  fileContext,
	}
}

// Fallback returns the canned reply for a task type. It is used whenever the
// remote model cannot answer.
func Fallback(task TaskType, message, fileContext, assistant string) string {
	hasFiles := fileContext != ""

	var name string
	switch task {
	case TaskAnalysis:
		if !hasFiles {
			return readyToHelp
		}
		name = "analysis_files.tmpl"
	case TaskAudio, TaskVideo, TaskWriting, TaskDesign, TaskBusiness, TaskLegal:
		name = string(task) + ".tmpl"
	default:
		if hasFiles {
			name = "general_files.tmpl"
		} else {
			name = "general.tmpl"
		}
	}

	var b strings.Builder
	if err := fallbackTemplates.ExecuteTemplate(&b, name, newTemplateData(assistant, task, message, fileContext)); err != nil {
		return readyToHelp
	}
	return b.String()
}

func buildSystemPrompt(assistant string, task TaskType, message, fileContext string) (string, error) {
	var b strings.Builder
	if err := systemPrompt.Execute(&b, newTemplateData(assistant, task, message, fileContext)); err != nil {
		return "", err
	}
	return b.String(), nil
}
