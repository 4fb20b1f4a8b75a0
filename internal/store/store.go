package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrNotFound = errors.New("store: record not found")

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Op string

const (
	Eq  Op = "="
	Ne  Op = "<>"
	Lt  Op = "<"
	Lte Op = "<="
	Gt  Op = ">"
	Gte Op = ">="
	In  Op = "IN"
)

type Filter struct {
	Field string
	Op    Op
	Value any
}

func Where(field string, op Op, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

type Order struct {
	Field string
	Desc  bool
}

// Search casa Term (sem diferenciar maiúsculas) em qualquer um dos Fields.
type Search struct {
	Term   string
	Fields []string
}

type Query struct {
	Page    int
	Limit   int
	Filters []Filter
	Search  *Search
	OrderBy []Order
	Preload []string
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Repository é o contrato genérico de CRUD paginado consumido pelo núcleo.
type Repository[T any] interface {
	List(ctx context.Context, q Query) (Page[T], error)
	Get(ctx context.Context, id any, scope ...Filter) (*T, error)
	Create(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id any, scope ...Filter) error
}

// Nomes de coluna entram no SQL sem placeholder, então só aceitamos
// identificadores simples.
var columnRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func (f Filter) clause() (string, error) {
	if !columnRe.MatchString(f.Field) {
		return "", fmt.Errorf("store: invalid filter field %q", f.Field)
	}
	switch f.Op {
	case Eq, Ne, Lt, Lte, Gt, Gte:
		return fmt.Sprintf("%s %s ?", f.Field, f.Op), nil
	case In:
		return fmt.Sprintf("%s IN ?", f.Field), nil
	default:
		return "", fmt.Errorf("store: invalid filter operator %q", f.Op)
	}
}

func (o Order) clause() (string, error) {
	if !columnRe.MatchString(o.Field) {
		return "", fmt.Errorf("store: invalid order field %q", o.Field)
	}
	if o.Desc {
		return o.Field + " DESC", nil
	}
	return o.Field + " ASC", nil
}

func (s Search) clause() (string, []any, error) {
	if len(s.Fields) == 0 {
		return "", nil, fmt.Errorf("store: search without fields")
	}

	like := "%" + strings.ToLower(strings.TrimSpace(s.Term)) + "%"
	parts := make([]string, 0, len(s.Fields))
	args := make([]any, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !columnRe.MatchString(f) {
			return "", nil, fmt.Errorf("store: invalid search field %q", f)
		}
		parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", f))
		args = append(args, like)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args, nil
}

func (q Query) normalized() Query {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

func (q Query) offset() int {
	return (q.Page - 1) * q.Limit
}

func totalPages(total int64, limit int) int {
	if total == 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
