package apifilters

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultPage  = int64(1)
	DefaultLimit = int64(10)
)

// reserved query keys never become equality filters.
var reservedKeys = map[string]bool{
	"sort":   true,
	"fields": true,
	"q":      true,
	"page":   true,
	"limit":  true,
}

// comparison operators accepted in the field[op]=value grammar.
var operators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

// Query is the executable query description the builder produces. It performs
// no I/O itself; repositories feed it into the driver.
type Query struct {
	Filter     bson.M
	Sort       bson.D
	Projection bson.M
	Skip       int64
	Limit      int64
	Page       int64
}

// Builder translates raw HTTP query parameters into a bounded Query. The
// stages mirror the request pipeline: Filter -> Sort -> LimitFields ->
// SearchByQuery -> Paginate, each feeding the next.
type Builder struct {
	params      url.Values
	defaultSort string
	query       Query
}

// New creates a Builder. defaultSort is the creation-time field the collection
// falls back to when no sort parameter is present, e.g. "postingDate".
func New(params url.Values, defaultSort string) *Builder {
	return &Builder{
		params:      params,
		defaultSort: defaultSort,
		query: Query{
			Filter: bson.M{},
			Page:   DefaultPage,
			Limit:  DefaultLimit,
		},
	}
}

// Filter turns every non-reserved parameter into an equality filter, or a
// comparison filter when the key uses the field[op]=value grammar. Unknown
// operator tokens are silently dropped.
func (b *Builder) Filter() *Builder {
	for key, values := range b.params {
		if reservedKeys[key] || len(values) == 0 {
			continue
		}
		value := values[0]

		field, op, ok := splitOperator(key)
		if !ok {
			b.query.Filter[key] = castValue(value)
			continue
		}

		mongoOp, known := operators[op]
		if !known {
			// Malformed operator token: no-op filter, not an error.
			continue
		}

		cond, hasCond := b.query.Filter[field].(bson.M)
		if !hasCond {
			cond = bson.M{}
		}
		if mongoOp == "$in" {
			cond[mongoOp] = castList(value)
		} else {
			cond[mongoOp] = castValue(value)
		}
		b.query.Filter[field] = cond
	}
	return b
}

// Sort parses the comma-separated sort parameter, "-" prefix meaning
// descending. Without the parameter the collection's creation-time field
// orders results newest first.
func (b *Builder) Sort() *Builder {
	raw := b.params.Get("sort")
	if raw == "" {
		b.query.Sort = bson.D{{Key: b.defaultSort, Value: -1}}
		return b
	}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		b.query.Sort = append(b.query.Sort, bson.E{Key: field, Value: order})
	}
	return b
}

// LimitFields restricts the projection to the comma-separated fields
// parameter. Absent, the repository's default projection applies.
func (b *Builder) LimitFields() *Builder {
	raw := b.params.Get("fields")
	if raw == "" {
		return b
	}
	projection := bson.M{}
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field != "" {
			projection[field] = 1
		}
	}
	if len(projection) > 0 {
		b.query.Projection = projection
	}
	return b
}

// SearchByQuery adds a free-text search clause for the q parameter, ANDed
// with the filters built before it.
func (b *Builder) SearchByQuery() *Builder {
	q := b.params.Get("q")
	if q != "" {
		b.query.Filter["$text"] = bson.M{"$search": q}
	}
	return b
}

// Paginate computes skip/limit from the page and limit parameters.
// Non-positive or unparsable values fall back to the defaults.
func (b *Builder) Paginate() *Builder {
	b.query.Page = positiveOrDefault(b.params.Get("page"), DefaultPage)
	b.query.Limit = positiveOrDefault(b.params.Get("limit"), DefaultLimit)
	b.query.Skip = (b.query.Page - 1) * b.query.Limit
	return b
}

// Query returns the accumulated query description.
func (b *Builder) Query() Query {
	return b.query
}

// Build runs all stages in order and returns the result.
func Build(params url.Values, defaultSort string) Query {
	return New(params, defaultSort).
		Filter().
		Sort().
		LimitFields().
		SearchByQuery().
		Paginate().
		Query()
}

// splitOperator parses "salary[gte]" into ("salary", "gte", true).
func splitOperator(key string) (field, op string, ok bool) {
	open := strings.Index(key, "[")
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	return key[:open], key[open+1 : len(key)-1], true
}

// castValue converts canonical numeric literals so comparisons work against
// number fields. Values that merely look numeric but do not round-trip, like
// the zero-padded "02129", stay strings so equality filters on string fields
// keep matching.
func castValue(raw string) interface{} {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if strconv.FormatInt(i, 10) == raw {
			return i
		}
		return raw
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == raw {
		return f
	}
	return raw
}

func castList(raw string) bson.A {
	parts := strings.Split(raw, ",")
	list := make(bson.A, 0, len(parts))
	for _, part := range parts {
		list = append(list, castValue(strings.TrimSpace(part)))
	}
	return list
}

func positiveOrDefault(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
