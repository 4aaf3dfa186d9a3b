package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	cfg := Config{DefaultLimit: 20, MaxLimit: 100}

	tests := []struct {
		name      string
		query     string
		want      Params
		wantError bool
	}{
		{"TC-1: defaults", "", Params{Page: 1, Limit: 20}, false},
		{"TC-2: page and limit", "page=2&limit=30", Params{Page: 2, Limit: 30}, false},
		{"TC-3: limit at max", "limit=100", Params{Page: 1, Limit: 100}, false},
		{"TC-4: limit above max", "limit=101", Params{}, true},
		{"TC-5: zero page", "page=0", Params{}, true},
		{"TC-6: negative limit", "limit=-1", Params{}, true},
		{"TC-7: non-numeric page", "page=abc", Params{}, true},
		{"TC-8: page overflowing the offset", "page=9223372036854775807", Params{}, true},
		{"TC-9: page beyond max offset", "page=21474838&limit=100", Params{}, true},
		{"TC-10: page at max offset", "page=21474837&limit=100", Params{Page: 21474837, Limit: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/api/line/messages?"+tt.query, nil)
			got, err := ParseQueryParams(r, cfg)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 450, Params{Page: 10, Limit: 50}.Offset())
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 1},
		{10, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
		{5, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestNewResponse_NilDataBecomesEmpty(t *testing.T) {
	t.Parallel()

	resp := NewResponse[string](nil, NewMetadata(Params{Page: 1, Limit: 20}, 0))
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("TC-1: defaults", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "")
		t.Setenv("PAGINATION_MAX_LIMIT", "")
		assert.Equal(t, DefaultConfig(), LoadFromEnv())
	})

	t.Run("TC-2: overrides", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "10")
		t.Setenv("PAGINATION_MAX_LIMIT", "50")
		assert.Equal(t, Config{DefaultLimit: 10, MaxLimit: 50}, LoadFromEnv())
	})

	t.Run("TC-3: default above max is clamped", func(t *testing.T) {
		t.Setenv("PAGINATION_DEFAULT_LIMIT", "80")
		t.Setenv("PAGINATION_MAX_LIMIT", "10")
		assert.Equal(t, Config{DefaultLimit: 10, MaxLimit: 10}, LoadFromEnv())
	})
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("200", "11-50"))
	RecordRequest(200, 12)
	assert.Equal(t, before+1, testutil.ToFloat64(RequestsTotal.WithLabelValues("200", "11-50")))

	assert.Equal(t, "1-10", pageRangeBucket(1))
	assert.Equal(t, "51-100", pageRangeBucket(100))
	assert.Equal(t, "100+", pageRangeBucket(101))
}
