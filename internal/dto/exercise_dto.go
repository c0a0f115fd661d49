package dto

// ListExercisesQuery carries the optional catalog filters. Empty fields are
// omitted from the upstream query string, not sent as empty values.
type ListExercisesQuery struct {
	BodyPart   string `query:"bodyPart"`
	Offset     string `query:"offset"`
	Limit      string `query:"limit"`
	SortMethod string `query:"sortMethod"`
	SortOrder  string `query:"sortOrder"`
}
