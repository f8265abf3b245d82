package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/22dimrodi-maker/student-orders/app/models"
)

var studentColumns = []string{"student", "school", "class"}

// StudentStore owns the roster. Earlier versions of the data files carried
// only (student) or (student, school) columns; Load tolerates all three
// schema variants and defaults the missing fields to empty.
type StudentStore struct {
	repo Repository

	mu    sync.Mutex
	cache []models.Student
	valid bool
}

func (ss *StudentStore) Load() ([]models.Student, error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if !ss.valid {
		records, _, err := ss.repo.ReadAll()
		if err != nil {
			return nil, err
		}
		ss.cache = parseStudents(records)
		ss.valid = true
	}
	return append([]models.Student(nil), ss.cache...), nil
}

func (ss *StudentStore) Replace(rows []models.Student) error {
	normalized := NormalizeStudents(rows)

	records := [][]string{studentColumns}
	for _, s := range normalized {
		records = append(records, []string{s.Name, s.School, s.Class})
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.valid = false
	if err := ss.repo.WriteAll(records); err != nil {
		return err
	}
	ss.cache = normalized
	ss.valid = true
	return nil
}

func (ss *StudentStore) Invalidate() {
	ss.mu.Lock()
	ss.valid = false
	ss.mu.Unlock()
}

// Add appends one roster row. A row matching an existing (name, school,
// class) triple, ignoring case, is rejected with ErrDuplicateStudent.
func (ss *StudentStore) Add(s models.Student) error {
	rows, err := ss.Load()
	if err != nil {
		return err
	}
	candidate := trimStudent(s)
	for _, existing := range rows {
		if existing.EqualFold(candidate) {
			return ErrDuplicateStudent
		}
	}
	return ss.Replace(append(rows, candidate))
}

// Merge appends imported rows and pushes everything through the normal save
// path, so imports inherit trimming, de-duplication and sorting for free.
func (ss *StudentStore) Merge(imported []models.Student) error {
	rows, err := ss.Load()
	if err != nil {
		return err
	}
	return ss.Replace(append(rows, imported...))
}

// Delete removes the roster row matching the exact triple.
func (ss *StudentStore) Delete(s models.Student) (bool, error) {
	rows, err := ss.Load()
	if err != nil {
		return false, err
	}
	kept := rows[:0:0]
	for _, existing := range rows {
		if existing.Key() != s.Key() {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(rows) {
		return false, nil
	}
	return true, ss.Replace(kept)
}

// DeleteWhere removes every row matching the school and/or class
// allow-lists. An empty list leaves that dimension unconstrained; both lists
// empty deletes nothing.
func (ss *StudentStore) DeleteWhere(schools, classes []string) (int, error) {
	if len(schools) == 0 && len(classes) == 0 {
		return 0, nil
	}
	rows, err := ss.Load()
	if err != nil {
		return 0, err
	}

	inSchool := toSet(schools)
	inClass := toSet(classes)
	kept := rows[:0:0]
	for _, s := range rows {
		match := (len(inSchool) == 0 || inSchool[s.School]) &&
			(len(inClass) == 0 || inClass[s.Class])
		if !match {
			kept = append(kept, s)
		}
	}
	removed := len(rows) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, ss.Replace(kept)
}

// Schools lists the distinct non-empty school names, sorted.
func (ss *StudentStore) Schools() ([]string, error) {
	rows, err := ss.Load()
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var out []string
	for _, s := range rows {
		if s.School != "" && !seen[s.School] {
			seen[s.School] = true
			out = append(out, s.School)
		}
	}
	sort.Strings(out)
	return out, nil
}

// NormalizeStudents trims all fields, drops rows without a name, keeps the
// latest row per exact triple and sorts by (school, class, student).
func NormalizeStudents(rows []models.Student) []models.Student {
	latest := make(map[[3]string]int)
	var out []models.Student
	for _, s := range rows {
		s = trimStudent(s)
		if s.Name == "" {
			continue
		}
		if i, ok := latest[s.Key()]; ok {
			out[i] = s
			continue
		}
		latest[s.Key()] = len(out)
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.School != b.School {
			return a.School < b.School
		}
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		return a.Name < b.Name
	})
	return out
}

func trimStudent(s models.Student) models.Student {
	s.Name = strings.TrimSpace(s.Name)
	s.School = strings.TrimSpace(s.School)
	s.Class = strings.TrimSpace(s.Class)
	return s
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func parseStudents(records [][]string) []models.Student {
	if len(records) == 0 {
		return nil
	}

	nameCol, schoolCol, classCol := 0, 1, 2
	body := records
	if i := headerIndex(records[0], "student"); i >= 0 {
		nameCol = i
		schoolCol = headerIndex(records[0], "school")
		classCol = headerIndex(records[0], "class")
		body = records[1:]
	}

	var out []models.Student
	for _, rec := range body {
		out = append(out, trimStudent(models.Student{
			Name:   cell(rec, nameCol),
			School: cell(rec, schoolCol),
			Class:  cell(rec, classCol),
		}))
	}
	return out
}
