package provider

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/okfde/froide-campaign-service/internal/database/repository"
	"github.com/okfde/froide-campaign-service/internal/models"
)

type fakeStore struct {
	objects      map[string]*models.InformationObject
	links        []repository.TargetRequestLink
	searchResult []*models.InformationObject
	lastQuery    repository.TargetQuery
	linked       map[uint][]uint
}

func newFakeStore(objs ...*models.InformationObject) *fakeStore {
	s := &fakeStore{
		objects: map[string]*models.InformationObject{},
		linked:  map[uint][]uint{},
	}
	for _, o := range objs {
		s.objects[o.Ident] = o
	}
	s.searchResult = objs
	return s
}

func (s *fakeStore) Search(_ context.Context, q repository.TargetQuery) ([]*models.InformationObject, error) {
	s.lastQuery = q
	return s.searchResult, nil
}

func (s *fakeStore) GetByIdent(_ context.Context, _ uint, ident string) (*models.InformationObject, error) {
	obj, ok := s.objects[ident]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return obj, nil
}

func (s *fakeStore) RequestLinks(_ context.Context, ids []uint) ([]repository.TargetRequestLink, error) {
	want := map[uint]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []repository.TargetRequestLink
	for _, l := range s.links {
		if want[l.InformationObjectID] {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeStore) LinkRequest(_ context.Context, iobjID, requestID uint) (bool, error) {
	s.linked[iobjID] = append(s.linked[iobjID], requestID)
	for _, o := range s.objects {
		if o.ID == iobjID && o.FoiRequestID == nil {
			id := requestID
			o.FoiRequestID = &id
			return true, nil
		}
	}
	return false, nil
}

type fakeTagger struct {
	tagged map[uint]string
}

func (t *fakeTagger) TagCampaign(_ context.Context, requestID uint, slug string) (bool, error) {
	if t.tagged == nil {
		t.tagged = map[uint]string{}
	}
	t.tagged[requestID] = slug
	return true, nil
}

func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func testCampaign() *models.Campaign {
	return &models.Campaign{
		ID:              7,
		Title:           "Schulen",
		Slug:            "schulen",
		Ident:           "schulen-2024",
		Description:     "Campaign description",
		SubjectTemplate: "Hygieneberichte {{.title}}",
		Template:        "Bitte senden Sie mir die Berichte zu {{.title}} ({{.address}}).",
	}
}

func testTarget() *models.InformationObject {
	return &models.InformationObject{
		ID:           11,
		CampaignID:   7,
		Ident:        "school-1",
		Title:        "Grundschule am Park",
		Address:      "Parkweg 1, Berlin",
		PublicBodyID: uintPtr(3),
		PublicBody:   &models.PublicBody{ID: 3, Name: "Bezirksamt Mitte", Slug: "bezirksamt-mitte"},
		Context:      models.JSON{"description": "Target description"},
	}
}

func newTestProvider(t *testing.T, campaign *models.Campaign, store *fakeStore, tagger *fakeTagger) *Provider {
	t.Helper()
	var rt RequestTagger
	if tagger != nil {
		rt = tagger
	}
	p, err := New(campaign, store, rt, URLConfig{MakeRequestURL: "/make-request/"})
	require.NoError(t, err)
	return p
}

func TestFoiRequestInfo(t *testing.T) {
	tests := []struct {
		name       string
		links      []models.RequestLink
		wantID     *uint
		resolution string
	}{
		{"no requests", nil, nil, ""},
		{
			"successful wins regardless of position",
			[]models.RequestLink{{ID: 1, Resolution: "refused"}, {ID: 2, Resolution: ""}, {ID: 3, Resolution: "successful"}},
			uintPtr(3), models.ResolutionSuccessful,
		},
		{
			"first successful is reported",
			[]models.RequestLink{{ID: 4, Resolution: "successful"}, {ID: 5, Resolution: "successful"}},
			uintPtr(4), models.ResolutionSuccessful,
		},
		{
			"last refused without success",
			[]models.RequestLink{{ID: 1, Resolution: "refused"}, {ID: 2, Resolution: ""}, {ID: 3, Resolution: "refused"}},
			uintPtr(3), models.ResolutionRefused,
		},
		{
			"first request pending otherwise",
			[]models.RequestLink{{ID: 8, Resolution: ""}, {ID: 9, Resolution: "partially_successful"}},
			uintPtr(8), models.ResolutionPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, resolution := foiRequestInfo(tt.links)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.resolution, resolution)
		})
	}
}

func TestTruncateSubject(t *testing.T) {
	exact := strings.Repeat("a", 250)
	assert.Equal(t, exact, TruncateSubject(exact))

	long := strings.Repeat("b", 251)
	got := TruncateSubject(long)
	assert.Equal(t, strings.Repeat("b", 250)+"...", got)
	assert.Len(t, got, 253)

	umlauts := strings.Repeat("ü", 251)
	assert.Equal(t, 253, len([]rune(TruncateSubject(umlauts))))
}

func TestEffectiveRadius(t *testing.T) {
	assert.Equal(t, 900, EffectiveRadius(1000))
	assert.Equal(t, 0, EffectiveRadius(0))
}

func TestParseRef(t *testing.T) {
	id, ident, ok := ParseRef(Ref(7, "school-1"))
	require.True(t, ok)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, "school-1", ident)

	id, ident, ok = ParseRef("campaign:12@a@b")
	require.True(t, ok)
	assert.Equal(t, uint(12), id)
	assert.Equal(t, "a@b", ident)

	for _, ref := range []string{"", "campaign:", "campaign:x@a", "campaign:1@", "other:1@a", "campaign:1"} {
		_, _, ok := ParseRef(ref)
		assert.False(t, ok, ref)
	}
}

func TestProvider_buildQuery(t *testing.T) {
	p := newTestProvider(t, testCampaign(), newFakeStore(), nil)

	t.Run("no filters keeps default order", func(t *testing.T) {
		q := p.buildQuery(Filters{})
		assert.Equal(t, uint(7), q.CampaignID)
		assert.Equal(t, repository.OrderDefault, q.Order)
		assert.Equal(t, DefaultLimit, q.Limit)
		assert.Nil(t, q.Box)
	})

	t.Run("text query orders by rank", func(t *testing.T) {
		q := p.buildQuery(Filters{Query: "  park ", Limit: 5})
		assert.Equal(t, "park", q.Query)
		assert.Equal(t, repository.OrderRank, q.Order)
		assert.Equal(t, 5, q.Limit)
	})

	t.Run("coarse zoom orders by distance", func(t *testing.T) {
		q := p.buildQuery(Filters{Lat: floatPtr(52.5), Lng: floatPtr(13.4), Zoom: intPtr(10)})
		require.NotNil(t, q.Box)
		require.NotNil(t, q.Center)
		assert.Equal(t, repository.OrderDistance, q.Order)
		assert.InDelta(t, 900.0/111320.0, q.Box.MaxLat-52.5, 1e-9)
	})

	t.Run("detail zoom is random", func(t *testing.T) {
		q := p.buildQuery(Filters{Lat: floatPtr(52.5), Lng: floatPtr(13.4), Zoom: intPtr(DetailZoomLevel)})
		assert.Equal(t, repository.OrderRandom, q.Order)
	})

	t.Run("geo with text is random", func(t *testing.T) {
		q := p.buildQuery(Filters{Query: "park", Lat: floatPtr(52.5), Lng: floatPtr(13.4), Zoom: intPtr(3)})
		assert.Equal(t, repository.OrderRandom, q.Order)
	})

	t.Run("requested limit is capped", func(t *testing.T) {
		assert.Equal(t, MaxLimit, p.buildQuery(Filters{Limit: 10000000}).Limit)
		assert.Equal(t, MaxLimit, p.buildQuery(Filters{Limit: MaxLimit}).Limit)
	})

	t.Run("explicit radius is shrunk", func(t *testing.T) {
		q := p.buildQuery(Filters{Lat: floatPtr(0), Lng: floatPtr(0), Radius: intPtr(2000)})
		assert.InDelta(t, 1800.0/111320.0, q.Box.MaxLat, 1e-9)
	})
}

func TestProvider_LimitFromKwargs(t *testing.T) {
	campaign := testCampaign()
	campaign.ProviderKwargs = models.JSON{"limit": float64(20), "law_type": "IFG"}
	p := newTestProvider(t, campaign, newFakeStore(), nil)

	assert.Equal(t, 20, p.buildQuery(Filters{}).Limit)
	assert.Equal(t, "IFG", p.Config().LawType)
}

func TestProvider_Search(t *testing.T) {
	requested := testTarget()
	plain := &models.InformationObject{ID: 12, CampaignID: 7, Ident: "school-2", Title: "Oberschule"}
	store := newFakeStore(requested, plain)
	store.links = []repository.TargetRequestLink{
		{InformationObjectID: 11, FoiRequestID: 100, Resolution: "refused"},
		{InformationObjectID: 11, FoiRequestID: 101, Resolution: "successful"},
	}
	p := newTestProvider(t, testCampaign(), store, nil)

	items, err := p.Search(context.Background(), Filters{Requested: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, *store.lastQuery.Requested)

	first := items[0]
	assert.Equal(t, "school-1", first.Ident)
	assert.Equal(t, uintPtr(101), first.FoiRequest)
	assert.Equal(t, models.ResolutionSuccessful, first.Resolution)
	assert.Len(t, first.FoiRequests, 2)
	assert.Equal(t, "Bezirksamt Mitte", first.PublicBodyName)
	assert.Equal(t, "Target description", first.Description)
	assert.Equal(t, "/campaign/7/school-1/request/", first.RequestURL)
	assert.Nil(t, first.Context)

	second := items[1]
	assert.Nil(t, second.FoiRequest)
	assert.Equal(t, models.ResolutionNormal, second.Resolution)
	assert.Empty(t, second.FoiRequests)
	assert.Equal(t, "Campaign description", second.Description)
	assert.Equal(t, "", second.PublicBodyName)
}

func boolPtr(v bool) *bool { return &v }

func TestProvider_Detail(t *testing.T) {
	p := newTestProvider(t, testCampaign(), newFakeStore(testTarget()), nil)

	item, err := p.Detail(context.Background(), "school-1")
	require.NoError(t, err)
	assert.Equal(t, "Grundschule am Park", item.Title)
	assert.Equal(t, "Target description", item.Context.String("description"))

	_, err = p.Detail(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProvider_RequestURL(t *testing.T) {
	campaign := testCampaign()
	campaign.ProviderKwargs = models.JSON{"law_type": "IFG"}
	p := newTestProvider(t, campaign, newFakeStore(testTarget()), nil)

	raw, err := p.RequestURL(context.Background(), "school-1")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/make-request/to/bezirksamt-mitte/", u.Path)

	q := u.Query()
	assert.Equal(t, "Hygieneberichte Grundschule am Park", q.Get("subject"))
	assert.Equal(t, "Bitte senden Sie mir die Berichte zu Grundschule am Park (Parkweg 1, Berlin).", q.Get("body"))
	assert.Equal(t, "campaign:7@school-1", q.Get("ref"))
	assert.Equal(t, "IFG", q.Get("law_type"))
	for _, f := range append(hideFeatures, "hide_publicbody") {
		assert.Equal(t, "1", q.Get(f), f)
	}

	_, err = p.RequestURL(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProvider_RequestURLWithoutPublicBody(t *testing.T) {
	target := testTarget()
	target.PublicBody = nil
	target.PublicBodyID = nil
	p := newTestProvider(t, testCampaign(), newFakeStore(target), nil)

	raw, err := p.RequestURL(context.Background(), "school-1")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/make-request/", u.Path)
	assert.Equal(t, "", u.Query().Get("hide_publicbody"))
	assert.Equal(t, "", u.Query().Get("law_type"))
}

func TestNew_InvalidTemplate(t *testing.T) {
	campaign := testCampaign()
	campaign.SubjectTemplate = "{{.title"
	_, err := New(campaign, newFakeStore(), nil, URLConfig{})
	assert.Error(t, err)
}

func TestProvider_ConnectRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("public body mismatch is ignored", func(t *testing.T) {
		store := newFakeStore(testTarget())
		tagger := &fakeTagger{}
		p := newTestProvider(t, testCampaign(), store, tagger)

		fr := &models.FoiRequest{ID: 50, PublicBodyID: uintPtr(4), Public: true}
		require.NoError(t, p.ConnectRequest(ctx, "school-1", fr))
		assert.Empty(t, store.linked)
		assert.Empty(t, tagger.tagged)
	})

	t.Run("missing public body is ignored", func(t *testing.T) {
		store := newFakeStore(testTarget())
		p := newTestProvider(t, testCampaign(), store, &fakeTagger{})

		require.NoError(t, p.ConnectRequest(ctx, "school-1", &models.FoiRequest{ID: 50, Public: true}))
		assert.Empty(t, store.linked)
	})

	t.Run("non public request is ignored", func(t *testing.T) {
		store := newFakeStore(testTarget())
		p := newTestProvider(t, testCampaign(), store, &fakeTagger{})

		require.NoError(t, p.ConnectRequest(ctx, "school-1", &models.FoiRequest{ID: 50, PublicBodyID: uintPtr(3)}))
		assert.Empty(t, store.linked)
	})

	t.Run("unknown target is ignored", func(t *testing.T) {
		store := newFakeStore(testTarget())
		p := newTestProvider(t, testCampaign(), store, &fakeTagger{})

		require.NoError(t, p.ConnectRequest(ctx, "x", &models.FoiRequest{ID: 50, PublicBodyID: uintPtr(3), Public: true}))
		assert.Empty(t, store.linked)
	})

	t.Run("matching request is linked and tagged", func(t *testing.T) {
		target := testTarget()
		store := newFakeStore(target)
		tagger := &fakeTagger{}
		p := newTestProvider(t, testCampaign(), store, tagger)

		first := &models.FoiRequest{ID: 50, PublicBodyID: uintPtr(3), Public: true}
		require.NoError(t, p.ConnectRequest(ctx, "school-1", first))
		second := &models.FoiRequest{ID: 51, PublicBodyID: uintPtr(3), Public: true}
		require.NoError(t, p.ConnectRequest(ctx, "school-1", second))

		assert.Equal(t, []uint{50, 51}, store.linked[11])
		require.NotNil(t, target.FoiRequestID)
		assert.Equal(t, uint(50), *target.FoiRequestID)
		assert.Equal(t, "schulen-2024", tagger.tagged[50])
		assert.Equal(t, "schulen-2024", tagger.tagged[51])
	})

	t.Run("campaign without ident skips tagging", func(t *testing.T) {
		campaign := testCampaign()
		campaign.Ident = ""
		store := newFakeStore(testTarget())
		tagger := &fakeTagger{}
		p := newTestProvider(t, campaign, store, tagger)

		require.NoError(t, p.ConnectRequest(ctx, "school-1", &models.FoiRequest{ID: 50, PublicBodyID: uintPtr(3), Public: true}))
		assert.Len(t, store.linked[11], 1)
		assert.Empty(t, tagger.tagged)
	})
}

func TestConfigFromCampaign(t *testing.T) {
	assert.Equal(t, Config{Kind: KindBase}, ConfigFromCampaign(&models.Campaign{}))
	assert.Equal(t, Config{Kind: KindBase}, ConfigFromCampaign(&models.Campaign{ProviderKind: "unknown"}))

	cfg := ConfigFromCampaign(&models.Campaign{ProviderKind: string(KindAmenityLocal)})
	assert.Equal(t, KindAmenityLocal, cfg.Kind)
	assert.True(t, cfg.CreateAllowed)
}
