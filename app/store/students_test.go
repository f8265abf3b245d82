package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22dimrodi-maker/student-orders/app/models"
)

func TestStudentAddRejectsDuplicateTriple(t *testing.T) {
	st := memStore()

	require.NoError(t, st.Students.Add(models.Student{Name: "Maria", School: "1st Primary", Class: "B1"}))
	err := st.Students.Add(models.Student{Name: " maria ", School: "1st primary", Class: "b1"})
	require.ErrorIs(t, err, ErrDuplicateStudent)

	// Same name in another class is a different student.
	require.NoError(t, st.Students.Add(models.Student{Name: "Maria", School: "1st Primary", Class: "C2"}))

	rows, err := st.Students.Load()
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestStudentDeleteExactTriple(t *testing.T) {
	st := memStore()
	require.NoError(t, st.Students.Add(models.Student{Name: "Maria", School: "1st Primary", Class: "B1"}))
	require.NoError(t, st.Students.Add(models.Student{Name: "Maria", School: "1st Primary", Class: "C2"}))

	ok, err := st.Students.Delete(models.Student{Name: "Maria", School: "1st Primary", Class: "B1"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.Students.Delete(models.Student{Name: "Maria", School: "1st Primary", Class: "B1"})
	require.NoError(t, err)
	assert.False(t, ok)

	rows, err := st.Students.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "C2", rows[0].Class)
}

func TestStudentDeleteWhere(t *testing.T) {
	st := memStore()
	require.NoError(t, st.Students.Merge([]models.Student{
		{Name: "Maria", School: "1st Primary", Class: "B1"},
		{Name: "Nikos", School: "1st Primary", Class: "C2"},
		{Name: "Eleni", School: "2nd Primary", Class: "B1"},
	}))

	// Both lists empty deletes nothing.
	removed, err := st.Students.DeleteWhere(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	// School and class constraints intersect.
	removed, err = st.Students.DeleteWhere([]string{"1st Primary"}, []string{"B1"})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	// A school alone wipes the whole school.
	removed, err = st.Students.DeleteWhere([]string{"1st Primary"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	rows, err := st.Students.Load()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2nd Primary", rows[0].School)
}

func TestStudentSchools(t *testing.T) {
	st := memStore()
	require.NoError(t, st.Students.Merge([]models.Student{
		{Name: "Maria", School: "2nd Primary", Class: "B1"},
		{Name: "Nikos", School: "1st Primary", Class: "C2"},
		{Name: "Eleni", School: "2nd Primary", Class: "B2"},
		{Name: "Kostas"},
	}))

	schools, err := st.Students.Schools()
	require.NoError(t, err)
	assert.Equal(t, []string{"1st Primary", "2nd Primary"}, schools)
}

func TestStudentLoadLegacySchemas(t *testing.T) {
	cases := []struct {
		name    string
		records [][]string
		want    models.Student
	}{
		{
			name:    "name only",
			records: [][]string{{"student"}, {"Maria"}},
			want:    models.Student{Name: "Maria"},
		},
		{
			name:    "name and school",
			records: [][]string{{"student", "school"}, {"Maria", "1st Primary"}},
			want:    models.Student{Name: "Maria", School: "1st Primary"},
		},
		{
			name:    "full triple without header",
			records: [][]string{{"Maria", "1st Primary", "B1"}},
			want:    models.Student{Name: "Maria", School: "1st Primary", Class: "B1"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ss := &StudentStore{repo: &MemoryRepository{Present: true, Records: tc.records}}
			rows, err := ss.Load()
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, tc.want, rows[0])
		})
	}
}

func TestNormalizeStudentsSortsAndDedupes(t *testing.T) {
	rows := []models.Student{
		{Name: "Nikos", School: "2nd Primary", Class: "C2"},
		{Name: " Maria ", School: "1st Primary", Class: "B1"},
		{Name: "Maria", School: "1st Primary", Class: "B1"},
		{Name: "", School: "1st Primary", Class: "B1"},
	}

	out := NormalizeStudents(rows)
	require.Len(t, out, 2)
	assert.Equal(t, "Maria", out[0].Name)
	assert.Equal(t, "Nikos", out[1].Name)

	assert.Equal(t, out, NormalizeStudents(out))
}
