package model

import "strings"

// FieldName identifies one canonical engine-input field.
type FieldName string

// Canonical profile field names. Conditions reference fields by these names;
// the intake mapping layer translates raw answers into them.
const (
	FieldStudentLevel     FieldName = "student_level"
	FieldAcademicBand     FieldName = "academic_band"
	FieldSPMCredits       FieldName = "spm_credits"
	FieldCGPA             FieldName = "cgpa"
	FieldBudgetMonthly    FieldName = "budget_monthly"
	FieldIntakeMonths     FieldName = "intake_months"
	FieldInterestTags     FieldName = "interest_tags"
	FieldDestinationTags  FieldName = "destination_tags"
	FieldEnglishLevel     FieldName = "english_level"
	FieldEnglishTestScore FieldName = "english_test_score"
	FieldDocumentsReady   FieldName = "documents_ready"
)

// ValueKind discriminates the shapes a profile value can take.
type ValueKind int

const (
	ValueNumber ValueKind = iota
	ValueText
	ValueList
)

// Value is the tagged union a condition evaluates against. Exactly one of
// Number, Text, List is meaningful, selected by Kind.
type Value struct {
	Kind   ValueKind
	Number float64
	Text   string
	List   []string
}

// NumberValue wraps a numeric profile value.
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Number: n} }

// TextValue wraps a textual profile value.
func TextValue(s string) Value { return Value{Kind: ValueText, Text: s} }

// ListValue wraps a multi-select profile value.
func ListValue(items []string) Value { return Value{Kind: ValueList, List: items} }

// Profile is the engine-input form of a student profile. Every field is
// independently optional.
type Profile struct {
	StudentLevel     Field[string]
	AcademicBand     Field[string]
	SPMCredits       Field[float64]
	CGPA             Field[float64]
	BudgetMonthly    Field[float64]
	IntakeMonths     Field[float64]
	InterestTags     Field[[]string]
	DestinationTags  Field[[]string]
	EnglishLevel     Field[string]
	EnglishTestScore Field[float64]
	DocumentsReady   Field[[]string]
}

// Lookup resolves a field by canonical name. The second return is false when
// the field is absent or the name is unknown.
func (p Profile) Lookup(name FieldName) (Value, bool) {
	switch name {
	case FieldStudentLevel:
		if v, ok := p.StudentLevel.Get(); ok {
			return TextValue(v), true
		}
	case FieldAcademicBand:
		if v, ok := p.AcademicBand.Get(); ok {
			return TextValue(v), true
		}
	case FieldSPMCredits:
		if v, ok := p.SPMCredits.Get(); ok {
			return NumberValue(v), true
		}
	case FieldCGPA:
		if v, ok := p.CGPA.Get(); ok {
			return NumberValue(v), true
		}
	case FieldBudgetMonthly:
		if v, ok := p.BudgetMonthly.Get(); ok {
			return NumberValue(v), true
		}
	case FieldIntakeMonths:
		if v, ok := p.IntakeMonths.Get(); ok {
			return NumberValue(v), true
		}
	case FieldInterestTags:
		if v, ok := p.InterestTags.Get(); ok {
			return ListValue(v), true
		}
	case FieldDestinationTags:
		if v, ok := p.DestinationTags.Get(); ok {
			return ListValue(v), true
		}
	case FieldEnglishLevel:
		if v, ok := p.EnglishLevel.Get(); ok {
			return TextValue(v), true
		}
	case FieldEnglishTestScore:
		if v, ok := p.EnglishTestScore.Get(); ok {
			return NumberValue(v), true
		}
	case FieldDocumentsReady:
		if v, ok := p.DocumentsReady.Get(); ok {
			return ListValue(v), true
		}
	}
	return Value{}, false
}

// ProfileInput is the serialized form accepted from intake files and the HTTP
// API. Pointer fields distinguish "absent" from zero answers; Profile converts
// to the engine-input form.
type ProfileInput struct {
	StudentLevel     *string  `json:"student_level,omitempty" yaml:"student_level,omitempty"`
	AcademicBand     *string  `json:"academic_band,omitempty" yaml:"academic_band,omitempty"`
	SPMCredits       *float64 `json:"spm_credits,omitempty" yaml:"spm_credits,omitempty"`
	CGPA             *float64 `json:"cgpa,omitempty" yaml:"cgpa,omitempty"`
	BudgetMonthly    *float64 `json:"budget_monthly,omitempty" yaml:"budget_monthly,omitempty"`
	IntakeMonths     *float64 `json:"intake_months,omitempty" yaml:"intake_months,omitempty"`
	InterestTags     []string `json:"interest_tags,omitempty" yaml:"interest_tags,omitempty"`
	DestinationTags  []string `json:"destination_tags,omitempty" yaml:"destination_tags,omitempty"`
	EnglishLevel     *string  `json:"english_level,omitempty" yaml:"english_level,omitempty"`
	EnglishTestScore *float64 `json:"english_test_score,omitempty" yaml:"english_test_score,omitempty"`
	DocumentsReady   []string `json:"documents_ready,omitempty" yaml:"documents_ready,omitempty"`
}

// Profile converts the serialized form to the engine-input form. Empty tag
// lists stay missing; tag values are trimmed and lowercased.
func (in ProfileInput) Profile() Profile {
	var p Profile
	if in.StudentLevel != nil {
		p.StudentLevel = Present(strings.TrimSpace(*in.StudentLevel))
	}
	if in.AcademicBand != nil {
		p.AcademicBand = Present(strings.TrimSpace(*in.AcademicBand))
	}
	if in.SPMCredits != nil {
		p.SPMCredits = Present(*in.SPMCredits)
	}
	if in.CGPA != nil {
		p.CGPA = Present(*in.CGPA)
	}
	if in.BudgetMonthly != nil {
		p.BudgetMonthly = Present(*in.BudgetMonthly)
	}
	if in.IntakeMonths != nil {
		p.IntakeMonths = Present(*in.IntakeMonths)
	}
	if tags := NormalizeTags(in.InterestTags); len(tags) > 0 {
		p.InterestTags = Present(tags)
	}
	if tags := NormalizeTags(in.DestinationTags); len(tags) > 0 {
		p.DestinationTags = Present(tags)
	}
	if in.EnglishLevel != nil {
		p.EnglishLevel = Present(strings.TrimSpace(*in.EnglishLevel))
	}
	if in.EnglishTestScore != nil {
		p.EnglishTestScore = Present(*in.EnglishTestScore)
	}
	if tags := NormalizeTags(in.DocumentsReady); len(tags) > 0 {
		p.DocumentsReady = Present(tags)
	}
	return p
}

// NormalizeTags lowercases trimmed entries and drops empty ones, preserving order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
