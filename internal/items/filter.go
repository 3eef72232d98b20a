package items

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"punchlist-cli/internal/model"
)

// PageSize is fixed; views always slice the filtered sequence into
// ten-row pages.
const PageSize = 10

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc, true
	case SortDesc:
		return SortDesc, true
	}
	return "", false
}

type FilterKind string

const (
	FilterByPriority FilterKind = "priority"
	FilterByName     FilterKind = "name"
	FilterByDate     FilterKind = "date"
)

// FilterMode is a tagged variant: exactly one of the three modes is
// active at a time. The zero value is not meaningful; construct through
// ByPriority, ByName, or ByDate.
type FilterMode struct {
	kind     FilterKind
	priority model.Priority
	query    string
	order    SortOrder
}

// ByPriority keeps only items of the given priority, in insertion order.
func ByPriority(p model.Priority) FilterMode {
	return FilterMode{kind: FilterByPriority, priority: p}
}

// ByName keeps items whose name contains query case-insensitively and
// orders them by locale-aware name comparison, ascending.
func ByName(query string) FilterMode {
	return FilterMode{kind: FilterByName, query: query}
}

// ByDate keeps every item and orders by creation time. Ties keep their
// original relative order.
func ByDate(order SortOrder) FilterMode {
	if order != SortDesc {
		order = SortAsc
	}
	return FilterMode{kind: FilterByDate, order: order}
}

// DefaultFilter is the mode a fresh session starts in: every item,
// oldest first.
func DefaultFilter() FilterMode {
	return ByDate(SortAsc)
}

func (m FilterMode) Kind() FilterKind {
	if m.kind == "" {
		return FilterByDate
	}
	return m.kind
}

func (m FilterMode) Priority() model.Priority { return m.priority }
func (m FilterMode) Query() string            { return m.query }

func (m FilterMode) Order() SortOrder {
	if m.order == "" {
		return SortAsc
	}
	return m.order
}

func (m FilterMode) String() string {
	switch m.Kind() {
	case FilterByPriority:
		return fmt.Sprintf("priority=%s", m.priority)
	case FilterByName:
		return fmt.Sprintf("name~%q", m.query)
	default:
		return fmt.Sprintf("date %s", m.Order())
	}
}

// View is one derived page of the collection plus the navigation state
// the caller needs to render paging controls.
type View struct {
	Items      []model.Item
	Page       int
	TotalPages int

	// Total is the post-filter item count across all pages.
	Total int
}

// BuildView runs the filter -> sort -> paginate pipeline. It is pure: the
// input slice is never reordered, and the result is recomputed on every
// call. The page argument is trusted as given; out-of-range pages yield
// an empty Items slice while TotalPages/Total still describe the whole
// filtered sequence. Clamping is the navigation's job, not BuildView's.
func BuildView(items []model.Item, mode FilterMode, page int) View {
	filtered := make([]model.Item, 0, len(items))
	switch mode.Kind() {
	case FilterByPriority:
		for _, it := range items {
			if it.Priority == mode.priority {
				filtered = append(filtered, it)
			}
		}
	case FilterByName:
		q := strings.ToLower(mode.query)
		for _, it := range items {
			if strings.Contains(strings.ToLower(it.Name), q) {
				filtered = append(filtered, it)
			}
		}
	default:
		filtered = append(filtered, items...)
	}

	switch mode.Kind() {
	case FilterByName:
		c := collate.New(language.Und)
		sort.SliceStable(filtered, func(i, j int) bool {
			return c.CompareString(filtered[i].Name, filtered[j].Name) < 0
		})
	case FilterByDate:
		if mode.Order() == SortDesc {
			sort.SliceStable(filtered, func(i, j int) bool {
				return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
			})
		} else {
			sort.SliceStable(filtered, func(i, j int) bool {
				return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
			})
		}
	}

	total := len(filtered)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	var pageItems []model.Item
	if page >= 1 && start < total {
		if end > total {
			end = total
		}
		pageItems = filtered[start:end]
	} else {
		pageItems = []model.Item{}
	}

	return View{Items: pageItems, Page: page, TotalPages: totalPages, Total: total}
}

// ClampPage is what navigation controls use before asking for a view:
// pages move within [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
