package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelope(t *testing.T) {
	rec := &Record{ID: "abc", Filename: "CS-IN_Rapport.docx"}
	assert.Equal(t,
		"<source><source_id>CS-IN_Rapport.docx</source_id><source_context>http://localhost:3000/api/v1/files/abc/content</source_context></source>\n",
		Envelope("http://localhost:3000/api/v1/files/", rec))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", ContentType("a.DOCX"))
	assert.Equal(t, "application/octet-stream", ContentType("noext"))
}
