package pagination

import (
	"errors"
	"strconv"
	"strings"
)

// MaxPage bounds the page number so offsets stay well inside int range.
const MaxPage = 1_000_000

type Options struct {
	DefaultPerPage int
	MaxPerPage     int
}

var (
	DefaultOpts = Options{DefaultPerPage: 10, MaxPerPage: 100}
	WidgetOpts  = Options{DefaultPerPage: 50, MaxPerPage: 100}
	LogOpts     = Options{DefaultPerPage: 20, MaxPerPage: 500}
)

type Params struct {
	Page    int
	PerPage int
}

// Parse reads raw page/limit query values. Page is clamped to [1, MaxPage];
// limit is clamped to [1, MaxPerPage] and falls back to the default when
// unparsable.
func Parse(page, limit string, opt Options) Params {
	p := atoiDefault(page, 1)
	if p < 1 {
		p = 1
	}
	if p > MaxPage {
		p = MaxPage
	}

	per := atoiDefault(limit, opt.DefaultPerPage)
	if per < 1 {
		per = 1
	}
	if per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}
	return Params{Page: p, PerPage: per}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if errors.Is(err, strconv.ErrRange) {
		// n is already saturated; callers clamp it.
		return n
	}
	if err != nil {
		return def
	}
	return n
}

func (p Params) Limit() int  { return p.PerPage }
func (p Params) Offset() int { return (p.Page - 1) * p.PerPage }

// Meta is the pagination block returned with list payloads.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalCount  int64 `json:"total_count"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// BuildMeta derives page counts from the true total row count.
func BuildMeta(total int64, p Params) Meta {
	pages := 1
	if p.PerPage > 0 && total > 0 {
		pages = int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	}
	return Meta{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		TotalCount:  total,
		TotalPages:  pages,
		HasNext:     int64(p.Page)*int64(p.PerPage) < total,
		HasPrev:     p.Page > 1,
	}
}
