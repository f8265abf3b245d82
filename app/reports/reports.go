// Package reports computes groupby-style summaries over a filtered subset of
// the order ledger. All functions are pure: they read ledger rows and return
// fresh slices, never touching the store.
package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/22dimrodi-maker/student-orders/app/models"
)

// Criteria is a set of independent allow-lists plus an inclusive date range.
// An empty list (or zero time) leaves that dimension unconstrained; filtering
// is a pure intersection across dimensions.
type Criteria struct {
	Students []string  `json:"students"`
	Schools  []string  `json:"schools"`
	Classes  []string  `json:"classes"`
	Products []string  `json:"products"`
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
}

// Match reports whether a single ledger row satisfies every dimension.
func (c Criteria) Match(o models.OrderLine) bool {
	if !contains(c.Students, o.Student) ||
		!contains(c.Schools, o.School) ||
		!contains(c.Classes, o.Class) ||
		!contains(c.Products, o.Product) {
		return false
	}
	if !c.From.IsZero() && o.Date.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && o.Date.After(c.To) {
		return false
	}
	return true
}

// Filter returns the ledger rows matching the criteria.
func Filter(rows []models.OrderLine, c Criteria) []models.OrderLine {
	var out []models.OrderLine
	for _, o := range rows {
		if c.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

func contains(allow []string, v string) bool {
	if len(allow) == 0 {
		return true
	}
	for _, a := range allow {
		if a == v {
			return true
		}
	}
	return false
}

// Group is one aggregation bucket. Only the fields named by the grouping are
// populated; Orders counts ledger lines, Qty and Total are sums.
type Group struct {
	Student   string          `json:"student,omitempty"`
	School    string          `json:"school,omitempty"`
	Class     string          `json:"class,omitempty"`
	Product   string          `json:"product,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price,omitempty"`
	Orders    int             `json:"orders"`
	Qty       int             `json:"qty"`
	Total     decimal.Decimal `json:"total"`
}

type keyFunc func(models.OrderLine) Group

// groupKey flattens the grouping fields to a comparable key. Prices go
// through StringFixed so 1.5 and 1.50 land in the same bucket.
func groupKey(g Group) string {
	return g.Student + "\x00" + g.School + "\x00" + g.Class + "\x00" +
		g.Product + "\x00" + g.UnitPrice.StringFixed(4)
}

func summarize(rows []models.OrderLine, key keyFunc) []Group {
	index := map[string]int{}
	var out []Group
	for _, o := range rows {
		g := key(o)
		k := groupKey(g)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, g)
		}
		out[i].Orders++
		out[i].Qty += o.Qty
		out[i].Total = out[i].Total.Add(o.Total)
	}
	return out
}

// ByStudent groups by (student, school, class), sorted by school, class,
// student ascending.
func ByStudent(rows []models.OrderLine) []Group {
	out := summarize(rows, func(o models.OrderLine) Group {
		return Group{Student: o.Student, School: o.School, Class: o.Class}
	})
	sortBySchoolClassStudent(out)
	return out
}

// ByClass groups by (school, class), same ordering as ByStudent.
func ByClass(rows []models.OrderLine) []Group {
	out := summarize(rows, func(o models.OrderLine) Group {
		return Group{School: o.School, Class: o.Class}
	})
	sortBySchoolClassStudent(out)
	return out
}

// BySchool groups by school alone.
func BySchool(rows []models.OrderLine) []Group {
	out := summarize(rows, func(o models.OrderLine) Group {
		return Group{School: o.School}
	})
	sortBySchoolClassStudent(out)
	return out
}

// ByProduct groups by product, highest revenue first.
func ByProduct(rows []models.OrderLine) []Group {
	out := summarize(rows, func(o models.OrderLine) Group {
		return Group{Product: o.Product}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// ByProductQty is the restocking variant: grouped by product, highest
// quantity first.
func ByProductQty(rows []models.OrderLine) []Group {
	out := summarize(rows, func(o models.OrderLine) Group {
		return Group{Product: o.Product}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Qty > out[j].Qty
	})
	return out
}

// Detailed groups by (student, school, class, product, unit price), the
// grain the order slips are rendered from. Sorted by school, student,
// class, product.
func Detailed(rows []models.OrderLine) []Group {
	out := summarize(rows, func(o models.OrderLine) Group {
		return Group{
			Student:   o.Student,
			School:    o.School,
			Class:     o.Class,
			Product:   o.Product,
			UnitPrice: o.UnitPrice,
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.School != b.School {
			return a.School < b.School
		}
		if a.Student != b.Student {
			return a.Student < b.Student
		}
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		return a.Product < b.Product
	})
	return out
}

func sortBySchoolClassStudent(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.School != b.School {
			return a.School < b.School
		}
		if a.Class != b.Class {
			return a.Class < b.Class
		}
		return a.Student < b.Student
	})
}
