package models

import "strings"

// Student is one roster row. The same name may appear once per distinct
// school/class combination, so the uniqueness key is the full triple.
type Student struct {
	Name   string `json:"student"`
	School string `json:"school"`
	Class  string `json:"class"`
}

// Key returns the exact uniqueness triple.
func (s Student) Key() [3]string {
	return [3]string{s.Name, s.School, s.Class}
}

// EqualFold reports whether two roster rows refer to the same student,
// ignoring case. Used for duplicate checks on create.
func (s Student) EqualFold(o Student) bool {
	return strings.EqualFold(s.Name, o.Name) &&
		strings.EqualFold(s.School, o.School) &&
		strings.EqualFold(s.Class, o.Class)
}

// Label is the display form used in selection lists: "Name — School".
func (s Student) Label() string {
	if strings.TrimSpace(s.School) == "" {
		return s.Name
	}
	return s.Name + " — " + s.School
}
