package apifilters

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFilter_ExcludesReservedKeys(t *testing.T) {
	params := url.Values{}
	params.Set("sort", "-salary")
	params.Set("fields", "title")
	params.Set("q", "node")
	params.Set("page", "2")
	params.Set("limit", "5")
	params.Set("jobType", "Permanent")

	query := New(params, "postingDate").Filter().Query()

	assert.Equal(t, bson.M{"jobType": "Permanent"}, query.Filter)
}

func TestFilter_ComparisonOperators(t *testing.T) {
	params := url.Values{}
	params.Set("salary[gte]", "50000")
	params.Set("positions[lt]", "3")

	query := New(params, "postingDate").Filter().Query()

	assert.Equal(t, bson.M{"$gte": int64(50000)}, query.Filter["salary"])
	assert.Equal(t, bson.M{"$lt": int64(3)}, query.Filter["positions"])
}

func TestFilter_InOperator(t *testing.T) {
	params := url.Values{}
	params.Set("industry[in]", "IT,Banking")

	query := New(params, "postingDate").Filter().Query()

	assert.Equal(t, bson.M{"$in": bson.A{"IT", "Banking"}}, query.Filter["industry"])
}

func TestFilter_CombinedRangeOnSameField(t *testing.T) {
	params := url.Values{}
	params.Set("salary[gte]", "40000")
	params.Set("salary[lte]", "90000")

	query := New(params, "postingDate").Filter().Query()

	assert.Equal(t, bson.M{"$gte": int64(40000), "$lte": int64(90000)}, query.Filter["salary"])
}

func TestFilter_MalformedOperatorIsIgnored(t *testing.T) {
	params := url.Values{}
	params.Set("salary[foo]", "50000")
	params.Set("company", "Acme")

	query := New(params, "postingDate").Filter().Query()

	assert.Equal(t, bson.M{"company": "Acme"}, query.Filter)
}

func TestFilter_NumericEqualityIsCast(t *testing.T) {
	params := url.Values{}
	params.Set("positions", "2")
	params.Set("salary", "55000.5")

	query := New(params, "postingDate").Filter().Query()

	assert.Equal(t, int64(2), query.Filter["positions"])
	assert.Equal(t, 55000.5, query.Filter["salary"])
}

func TestFilter_NumericLookalikesStayStrings(t *testing.T) {
	params := url.Values{}
	params.Set("location.zipcode", "02129")
	params.Set("company", "7.50a")
	params.Set("positions[gte]", "007")

	query := New(params, "postingDate").Filter().Query()

	// Zero-padded values do not round-trip through a number and must keep
	// matching string fields by equality.
	assert.Equal(t, "02129", query.Filter["location.zipcode"])
	assert.Equal(t, "7.50a", query.Filter["company"])
	assert.Equal(t, bson.M{"$gte": "007"}, query.Filter["positions"])
}

func TestSort_Default(t *testing.T) {
	query := New(url.Values{}, "postingDate").Sort().Query()

	assert.Equal(t, bson.D{{Key: "postingDate", Value: -1}}, query.Sort)
}

func TestSort_MultiKey(t *testing.T) {
	params := url.Values{}
	params.Set("sort", "-salary,title")

	query := New(params, "postingDate").Sort().Query()

	assert.Equal(t, bson.D{
		{Key: "salary", Value: -1},
		{Key: "title", Value: 1},
	}, query.Sort)
}

func TestLimitFields(t *testing.T) {
	params := url.Values{}
	params.Set("fields", "title,company,salary")

	query := New(params, "postingDate").LimitFields().Query()

	assert.Equal(t, bson.M{"title": 1, "company": 1, "salary": 1}, query.Projection)
}

func TestLimitFields_AbsentLeavesProjectionEmpty(t *testing.T) {
	query := New(url.Values{}, "postingDate").LimitFields().Query()

	assert.Nil(t, query.Projection)
}

func TestSearchByQuery_ANDedWithFilters(t *testing.T) {
	params := url.Values{}
	params.Set("q", "developer")
	params.Set("jobType", "Permanent")

	query := New(params, "postingDate").Filter().SearchByQuery().Query()

	assert.Equal(t, "Permanent", query.Filter["jobType"])
	assert.Equal(t, bson.M{"$search": "developer"}, query.Filter["$text"])
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantSkip  int64
		wantLimit int64
	}{
		{"defaults", "", "", 0, 10},
		{"second page", "2", "10", 10, 10},
		{"custom limit", "3", "25", 50, 25},
		{"zero page clamps", "0", "10", 0, 10},
		{"negative page clamps", "-4", "10", 0, 10},
		{"zero limit clamps", "2", "0", 10, 10},
		{"negative limit clamps", "2", "-1", 10, 10},
		{"garbage clamps", "abc", "xyz", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := url.Values{}
			if tt.page != "" {
				params.Set("page", tt.page)
			}
			if tt.limit != "" {
				params.Set("limit", tt.limit)
			}

			query := New(params, "postingDate").Paginate().Query()

			assert.Equal(t, tt.wantSkip, query.Skip)
			assert.Equal(t, tt.wantLimit, query.Limit)
		})
	}
}

func TestBuild_AllStages(t *testing.T) {
	params := url.Values{}
	params.Set("jobType", "Permanent")
	params.Set("salary[gte]", "50000")
	params.Set("sort", "-salary,title")
	params.Set("fields", "title,salary")
	params.Set("q", "go")
	params.Set("page", "2")
	params.Set("limit", "5")

	query := Build(params, "postingDate")

	assert.Equal(t, "Permanent", query.Filter["jobType"])
	assert.Equal(t, bson.M{"$gte": int64(50000)}, query.Filter["salary"])
	assert.Equal(t, bson.M{"$search": "go"}, query.Filter["$text"])
	assert.NotContains(t, query.Filter, "sort")
	assert.NotContains(t, query.Filter, "fields")
	assert.NotContains(t, query.Filter, "q")
	assert.NotContains(t, query.Filter, "page")
	assert.NotContains(t, query.Filter, "limit")
	assert.Equal(t, bson.D{{Key: "salary", Value: -1}, {Key: "title", Value: 1}}, query.Sort)
	assert.Equal(t, bson.M{"title": 1, "salary": 1}, query.Projection)
	assert.Equal(t, int64(5), query.Skip)
	assert.Equal(t, int64(5), query.Limit)
}
