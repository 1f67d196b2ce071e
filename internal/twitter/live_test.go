package twitter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCsrfFromCookies(t *testing.T) {
	assert.Equal(t, "abc123", csrfFromCookies("auth_token=xyz; ct0=abc123; lang=en"))
	assert.Empty(t, csrfFromCookies("auth_token=xyz"))
	assert.Empty(t, csrfFromCookies(""))
}

func TestLiveScraperNotLoggedInWithoutCookies(t *testing.T) {
	scraper := NewLiveScraper(nil)
	loggedIn, err := scraper.IsLoggedIn(context.Background())
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestLiveScraperFetchesProfileAndTweets(t *testing.T) {
	var gotCsrf string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCsrf = r.Header.Get("x-csrf-token")
		switch r.URL.Path {
		case "/account/verify_credentials.json":
			w.Write([]byte(`{"screen_name":"ada"}`))
		case "/users/show.json":
			w.Write([]byte(`{
				"id_str": "99",
				"name": "Ada Lovelace",
				"description": "first programmer",
				"followers_count": 1200,
				"friends_count": 3,
				"statuses_count": 7,
				"verified": true,
				"created_at": "Tue Dec 10 09:00:00 +0000 1815",
				"profile_image_url_https": "https://pbs.example.com/ada_normal.jpg"
			}`))
		case "/statuses/user_timeline.json":
			assert.Equal(t, "2", r.URL.Query().Get("count"))
			w.Write([]byte(`[
				{
					"id_str": "201",
					"full_text": "Notes on the analytical engine #math",
					"favorite_count": 50,
					"retweet_count": 10,
					"reply_count": 4,
					"created_at": "Mon Jan 2 15:04:05 +0000 2006",
					"entities": {
						"hashtags": [{"text": "math"}],
						"user_mentions": [{"screen_name": "babbage"}]
					}
				},
				{"id_str": "200", "text": "older post", "entities": {}}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	scraper := NewLiveScraper(&Credentials{Cookies: "auth_token=tok; ct0=csrf-1"})
	scraper.base = server.URL

	loggedIn, err := scraper.IsLoggedIn(context.Background())
	require.NoError(t, err)
	assert.True(t, loggedIn)
	assert.Equal(t, "csrf-1", gotCsrf)

	profile, err := scraper.GetProfile(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", profile.Name)
	assert.Equal(t, "first programmer", profile.Biography)
	assert.Equal(t, 1200, profile.FollowersCount)
	assert.True(t, profile.IsVerified)
	assert.Equal(t, "https://pbs.example.com/ada_400x400.jpg", profile.Avatar)

	tweets, err := scraper.GetTweets(context.Background(), "ada", 2)
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, "201", tweets[0].ID)
	assert.Equal(t, "Notes on the analytical engine #math", tweets[0].Text)
	assert.Equal(t, 50, tweets[0].Likes)
	assert.Equal(t, []string{"math"}, tweets[0].Hashtags)
	assert.Equal(t, []string{"babbage"}, tweets[0].Mentions)
	assert.Equal(t, "older post", tweets[1].Text)
}

func TestLiveScraperSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"code":34,"message":"Sorry, that page does not exist."}]}`, http.StatusNotFound)
	}))
	defer server.Close()

	scraper := NewLiveScraper(&Credentials{Cookies: "ct0=x"})
	scraper.base = server.URL

	_, err := scraper.GetProfile(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
