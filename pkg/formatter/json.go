package formatter

import (
	"encoding/json"
	"strconv"
)

// JSONDocument is the shape produced by the JSON formatter.
type JSONDocument struct {
	Project string     `json:"project"`
	Files   []JSONFile `json:"files"`
	Errors  []string   `json:"errors"`
}

// JSONFile is one exported file.
type JSONFile struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}

// JSON renders the export as a single indented JSON object.
type JSON struct {
	doc JSONDocument
}

// NewJSON returns an empty JSON formatter.
func NewJSON() *JSON {
	return &JSON{}
}

// BeginDocument implements Formatter.
func (j *JSON) BeginDocument(projectName string) {
	j.doc = JSONDocument{
		Project: projectName,
		Files:   []JSONFile{},
		Errors:  []string{},
	}
}

// AddFile implements Formatter.
func (j *JSON) AddFile(path, content, language string) {
	j.doc.Files = append(j.doc.Files, JSONFile{Path: path, Language: language, Content: content})
}

// AddError implements Formatter.
func (j *JSON) AddError(message string) {
	j.doc.Errors = append(j.doc.Errors, message)
}

// EndDocument implements Formatter.
func (j *JSON) EndDocument() string {
	out, err := json.MarshalIndent(j.doc, "", "  ")
	if err != nil {
		return `{"errors": [` + strconv.Quote("encode document: "+err.Error()) + `]}`
	}
	return string(out)
}
