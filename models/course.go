package models

import "strings"

// MaterialKind is the category of an uploaded course material.
type MaterialKind string

const (
	KindSlides MaterialKind = "slides" // PDF presentation slides
	KindNotes  MaterialKind = "notes"  // written notes, scripts, books
	KindExam   MaterialKind = "exam"   // a past exam
)

func (k MaterialKind) Valid() bool {
	switch k {
	case KindSlides, KindNotes, KindExam:
		return true
	}
	return false
}

// Icon returns the glyph shown next to a material of this kind.
func (k MaterialKind) Icon() string {
	switch k {
	case KindExam:
		return "📋"
	case KindNotes:
		return "📝"
	case KindSlides:
		return "🎞️"
	default:
		return "📚"
	}
}

type Material struct {
	StoredName  string       `json:"name"`
	Kind        MaterialKind `json:"type"`
	DisplayName string       `json:"-"`
}

// NewMaterial builds a material with its display name already derived.
func NewMaterial(storedName string, kind MaterialKind) Material {
	return Material{
		StoredName:  storedName,
		Kind:        kind,
		DisplayName: DisplayName(storedName),
	}
}

// DisplayName strips the ".pdf" suffix from a stored file name. The display
// name is derived locally and never sent to the backend.
func DisplayName(storedName string) string {
	return strings.TrimSuffix(storedName, ".pdf")
}

type Course struct {
	ID        int        `json:"course_id"`
	Name      string     `json:"name"`
	Materials []Material `json:"materials"`
}
