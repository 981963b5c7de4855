package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/showcase/internal/client/clienttest"
	"github.com/yoockh/showcase/internal/models"
	"github.com/yoockh/showcase/internal/utils"
)

func loggedIn(t *testing.T, srv *clienttest.Server) *Client {
	t.Helper()
	c := New(srv.URL)
	_, err := c.Login(context.Background(), clienttest.AdminEmail, clienttest.AdminPassword)
	require.NoError(t, err)
	require.NotEmpty(t, c.Token())
	return c
}

func TestLogin(t *testing.T) {
	srv := clienttest.NewServer(t)
	c := New(srv.URL)

	_, err := c.Login(context.Background(), clienttest.AdminEmail, "wrong")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	assert.Empty(t, c.Token())

	res, err := c.Login(context.Background(), clienttest.AdminEmail, clienttest.AdminPassword)
	require.NoError(t, err)
	assert.Equal(t, clienttest.AdminEmail, res.User.Email)
	assert.Equal(t, res.Token, c.Token())
}

func TestCreateThenFetch(t *testing.T) {
	srv := clienttest.NewServer(t)
	c := loggedIn(t, srv)
	ctx := context.Background()

	created, err := Create[models.Certificate](ctx, c, models.Form{"title": "X"}, nil)
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	all, err := FetchAll[models.Certificate](ctx, c)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "X", all[0].Title)
	assert.Equal(t, created.ID, all[0].ID)
	assert.False(t, all[0].CreatedAt.IsZero())
}

func TestDeleteThenFetch(t *testing.T) {
	srv := clienttest.NewServer(t)
	c := loggedIn(t, srv)
	ctx := context.Background()

	keep, err := Create[models.Certificate](ctx, c, models.Form{"title": "keep"}, nil)
	require.NoError(t, err)
	drop, err := Create[models.Certificate](ctx, c, models.Form{"title": "drop"}, nil)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, models.KindCertificate, drop.ID.Hex()))

	all, err := FetchAll[models.Certificate](ctx, c)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)

	err = c.Delete(ctx, models.KindCertificate, drop.ID.Hex())
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestFetchAll_NewestFirst(t *testing.T) {
	srv := clienttest.NewServer(t)
	c := loggedIn(t, srv)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		_, err := Create[models.Badge](ctx, c, models.Form{"title": title}, nil)
		require.NoError(t, err)
	}

	all, err := FetchAll[models.Badge](ctx, c)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "three", all[0].Title)
	assert.Equal(t, "one", all[2].Title)
}

func TestFetchAll_EmptyIsNotNil(t *testing.T) {
	srv := clienttest.NewServer(t)

	all, err := FetchAll[models.Internship](context.Background(), New(srv.URL))
	require.NoError(t, err)
	assert.NotNil(t, all)
}

func TestWritesNeedToken(t *testing.T) {
	srv := clienttest.NewServer(t)
	ctx := context.Background()

	_, err := Create[models.Badge](ctx, New(srv.URL), models.Form{"title": "x"}, nil)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, err = Create[models.Badge](ctx, New(srv.URL, WithToken("forged")), models.Form{"title": "x"}, nil)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestCreate_ValidatesBeforeSending(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	c := New(srv.URL, WithToken("t"))

	_, err := Create[models.Contribution](context.Background(), c, models.Form{"title": "Talk"}, nil)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
	assert.Contains(t, err.Error(), "type")
	assert.Contains(t, err.Error(), "image")
	assert.Zero(t, hits.Load())

	img := &Image{Name: "talk.png", Reader: strings.NewReader("png")}
	_, err = Create[models.Contribution](context.Background(), c, models.Form{"title": "Talk", "type": "talk"}, img)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestIDsAreEscaped(t *testing.T) {
	var (
		mu   sync.Mutex
		seen []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Method+" "+r.URL.EscapedPath()+" "+r.URL.Query().Get("record_id"))
		mu.Unlock()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	c := New(srv.URL, WithToken("t"))
	ctx := context.Background()

	require.NoError(t, c.Delete(ctx, models.KindBadge, "a/b?c#d"))
	_, err := Update[models.Certificate](ctx, c, "x/../y", models.Form{"title": "T"}, nil)
	require.NoError(t, err)
	_, err = c.UploadLog(ctx, "r1&limit=1#x")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"DELETE /badges/a%2Fb%3Fc%23d ",
		"PUT /certificates/x%2F..%2Fy ",
		"GET /admin/uploads r1&limit=1#x",
	}, seen)
}

func TestCreateAndUpdateWithImage(t *testing.T) {
	srv := clienttest.NewServer(t)
	c := loggedIn(t, srv)
	ctx := context.Background()

	img := &Image{Name: "cert.png", Reader: strings.NewReader("\x89PNG\r\n\x1a\nrest")}
	created, err := Create[models.ContributionCert](ctx, c, models.Form{"title": "Legacy"}, img)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(created.Image, "/uploads/images/contributionCert/"), created.Image)
	assert.True(t, strings.HasSuffix(created.Image, ".png"))
	assert.Equal(t, "Legacy", created.DisplayName())

	updated, err := Update[models.ContributionCert](ctx, c, created.ID.Hex(), models.Form{"name": "Renamed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, created.Image, updated.Image)
	assert.Equal(t, "Renamed", updated.DisplayName())
	assert.Equal(t, "Legacy", updated.Title)
}

func TestUpdate_Internship(t *testing.T) {
	srv := clienttest.NewServer(t)
	c := loggedIn(t, srv)
	ctx := context.Background()

	created, err := Create[models.Internship](ctx, c, models.Form{
		"company": "Acme",
		"skills":  models.FormatSkills([]string{"Go", "React"}),
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "React"}, created.Skills)

	updated, err := Update[models.Internship](ctx, c, created.ID.Hex(), models.Form{"status": "completed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "completed", updated.Status)
	assert.Equal(t, []string{"Go", "React"}, updated.Skills)

	_, err = Update[models.Internship](ctx, c, "000000000000000000000000", models.Form{"status": "x"}, nil)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestContributionCertPathIsSeparate(t *testing.T) {
	srv := clienttest.NewServer(t)
	c := loggedIn(t, srv)
	ctx := context.Background()

	_, err := Create[models.ContributionCert](ctx, c, models.Form{"name": "cert"}, &Image{Name: "a.png", Reader: strings.NewReader("a")})
	require.NoError(t, err)

	contribs, err := FetchAll[models.Contribution](ctx, c)
	require.NoError(t, err)
	assert.Empty(t, contribs)

	certs, err := FetchAll[models.ContributionCert](ctx, c)
	require.NoError(t, err)
	assert.Len(t, certs, 1)
}

type countingObserver struct {
	mu     sync.Mutex
	ok     map[string]int
	failed map[string]int
}

func (o *countingObserver) ObserveFetch(kind string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.failed[kind]++
		return
	}
	o.ok[kind]++
}

func TestFetchAll_ServerFailure(t *testing.T) {
	srv := clienttest.NewServer(t)
	srv.Fail(models.KindBadge, http.StatusBadGateway)
	obs := &countingObserver{ok: map[string]int{}, failed: map[string]int{}}
	c := New(srv.URL, WithObserver(obs))

	_, err := FetchAll[models.Badge](context.Background(), c)
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)

	_, err = FetchAll[models.Certificate](context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 1, obs.failed["badge"])
	assert.Equal(t, 1, obs.ok["certificate"])
}

func TestFetchAll_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := FetchAll[models.Badge](context.Background(), New(url))
	assert.True(t, utils.IsCode(err, utils.CodeUnavailable))
}

func TestFetchAll_Timeout(t *testing.T) {
	srv := clienttest.NewServer(t)
	release := srv.HoldReads()
	defer release()

	_, err := FetchAll[models.Badge](context.Background(), New(srv.URL, WithTimeout(50*time.Millisecond)))
	assert.True(t, utils.IsCode(err, utils.CodeTimeout), "%v", err)
}

func TestMissingFields(t *testing.T) {
	assert.Equal(t, []string{"company"}, MissingFields[models.Internship](models.Form{}, false))
	assert.Equal(t, []string{"image"}, MissingFields[models.ContributionCert](models.Form{"name": "x"}, false))
	assert.Empty(t, MissingFields[models.ContributionCert](models.Form{}, true))
}
