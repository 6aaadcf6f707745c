package sponsorblock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSegments() Segments {
	return NewSegments([]RawSegment{
		{Category: "ads", Segment: [2]float64{10, 20}},
		{Category: "sponsor", Segment: [2]float64{50, 70}},
	}, 100)
}

func TestSegments_Current(t *testing.T) {
	segs := testSegments()

	seg, ok := segs.Current(15).Get()
	require.True(t, ok)
	assert.Equal(t, Category("ads"), seg.Category)

	assert.False(t, segs.Current(25).IsPresent())
	// End is exclusive.
	assert.False(t, segs.Current(70).IsPresent())
	// Start is inclusive.
	assert.True(t, segs.Current(50).IsPresent())
}

func TestNewSegments_Percentages(t *testing.T) {
	all := testSegments().All()
	require.Len(t, all, 2)
	assert.InDelta(t, 50.0, all[1].StartPercentage, 1e-9)
	assert.InDelta(t, 70.0, all[1].EndPercentage, 1e-9)
}

func TestNewSegments_ZeroDuration(t *testing.T) {
	all := NewSegments([]RawSegment{{Category: "intro", Segment: [2]float64{0, 5}}}, 0).All()
	require.Len(t, all, 1)
	assert.Zero(t, all[0].StartPercentage)
	assert.Zero(t, all[0].EndPercentage)
}

func TestNewSegments_DropsInvalid(t *testing.T) {
	segs := NewSegments([]RawSegment{
		{Category: "intro", Segment: [2]float64{5, 5}},
		{Category: "outro", Segment: [2]float64{9, 3}},
		{Category: "sponsor", Segment: [2]float64{1, 2}},
	}, 10)
	assert.Equal(t, 1, segs.Len())
}

type fakeSettings struct {
	enabled  bool
	policies map[string]string
}

func (f fakeSettings) SponsorBlockEnabled() bool { return f.enabled }

func (f fakeSettings) SponsorBlockPolicy(c string) string { return f.policies[c] }

func TestResolvePolicy(t *testing.T) {
	s := fakeSettings{enabled: true, policies: map[string]string{
		"sponsor": "skip",
		"intro":   "ask",
		"outro":   "bogus",
	}}

	assert.Equal(t, PolicySkip, ResolvePolicy(s, CategorySponsor))
	assert.Equal(t, PolicyAsk, ResolvePolicy(s, CategoryIntro))
	assert.Equal(t, PolicyNone, ResolvePolicy(s, CategoryOutro))
	assert.Equal(t, PolicyNone, ResolvePolicy(s, "unheard_of"))
	assert.Equal(t, PolicyNone, ResolvePolicy(nil, CategorySponsor))

	s.enabled = false
	assert.Equal(t, PolicyNone, ResolvePolicy(s, CategorySponsor))
}

func TestClient_SkipSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/skipSegments", r.URL.Path)
		assert.Equal(t, "abc", r.URL.Query().Get("videoID"))
		assert.Equal(t, `["sponsor","intro"]`, r.URL.Query().Get("categories"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"category":"sponsor","actionType":"skip","segment":[12.5,30],"UUID":"u1"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	got, err := c.SkipSegments(context.Background(), "abc", []Category{CategorySponsor, CategoryIntro})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].UUID)
	assert.Equal(t, [2]float64{12.5, 30}, got[0].Segment)
}

func TestClient_SkipSegments_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).SkipSegments(context.Background(), "abc", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_SkipSegments_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).SkipSegments(context.Background(), "abc", nil)
	assert.Error(t, err)
}
