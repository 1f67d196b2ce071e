package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	debuglog "github.com/personafy/personafy/internal/log"
)

const apiBase = "https://api.twitter.com/1.1"

// bearerToken is the public token the Twitter web client ships with. Cookie
// authentication still gates every request.
const bearerToken = "AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA"

// LiveScraper talks to the Twitter web API using the session cookies from
// Credentials. It implements Scraper.
type LiveScraper struct {
	client  *http.Client
	base    string
	cookies string
	csrf    string
}

func NewLiveScraper(credentials *Credentials) *LiveScraper {
	cookies := ""
	if credentials != nil {
		cookies = credentials.Cookies
	}
	return &LiveScraper{
		client:  &http.Client{Timeout: 30 * time.Second},
		base:    apiBase,
		cookies: cookies,
		csrf:    csrfFromCookies(cookies),
	}
}

// csrfFromCookies extracts the ct0 cookie value, which the API expects
// mirrored in the x-csrf-token header.
func csrfFromCookies(cookies string) string {
	for _, part := range strings.Split(cookies, ";") {
		name, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if found && name == "ct0" {
			return value
		}
	}
	return ""
}

func (o *LiveScraper) IsLoggedIn(ctx context.Context) (bool, error) {
	if o.cookies == "" {
		return false, nil
	}
	var ignored map[string]any
	err := o.get(ctx, o.base+"/account/verify_credentials.json", &ignored)
	if err != nil {
		debuglog.LogAt(debuglog.Detailed, "Session check failed: %v\n", err)
		return false, nil
	}
	return true, nil
}

func (o *LiveScraper) GetProfile(ctx context.Context, username string) (*Profile, error) {
	var user userDocument
	endpoint := o.base + "/users/show.json?screen_name=" + url.QueryEscape(username)
	if err := o.get(ctx, endpoint, &user); err != nil {
		return nil, errors.Wrapf(err, "fetching profile for %s", username)
	}
	profile := user.profile()
	return &profile, nil
}

func (o *LiveScraper) GetTweets(ctx context.Context, username string, max int) (ret []Tweet, err error) {
	query := url.Values{
		"screen_name": {username},
		"count":       {strconv.Itoa(max)},
		"tweet_mode":  {"extended"},
		"include_rts": {"true"},
	}
	var timeline []tweetDocument
	endpoint := o.base + "/statuses/user_timeline.json?" + query.Encode()
	if err = o.get(ctx, endpoint, &timeline); err != nil {
		return nil, errors.Wrapf(err, "fetching tweets for %s", username)
	}
	ret = lo.Map(timeline, func(doc tweetDocument, _ int) Tweet {
		return doc.tweet()
	})
	if len(ret) > max {
		ret = ret[:max]
	}
	return ret, nil
}

func (o *LiveScraper) get(ctx context.Context, endpoint string, out any) (err error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Authorization", "Bearer "+bearerToken)
	request.Header.Set("Cookie", o.cookies)
	if o.csrf != "" {
		request.Header.Set("x-csrf-token", o.csrf)
	}

	debuglog.LogAt(debuglog.Wire, "GET %s\n", endpoint)
	response, err := o.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, out)
}

// createdAtLayout is Twitter's legacy timestamp format.
const createdAtLayout = "Mon Jan 2 15:04:05 -0700 2006"

type userDocument struct {
	IDStr           string `json:"id_str"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Location        string `json:"location"`
	URL             string `json:"url"`
	Protected       bool   `json:"protected"`
	Verified        bool   `json:"verified"`
	FollowersCount  int    `json:"followers_count"`
	FriendsCount    int    `json:"friends_count"`
	FavouritesCount int    `json:"favourites_count"`
	MediaCount      int    `json:"media_count"`
	StatusesCount   int    `json:"statuses_count"`
	CreatedAt       string `json:"created_at"`
	ProfileImage    string `json:"profile_image_url_https"`
}

func (d userDocument) profile() Profile {
	joined, _ := time.Parse(createdAtLayout, d.CreatedAt)
	return Profile{
		Avatar:         strings.Replace(d.ProfileImage, "_normal.", "_400x400.", 1),
		Biography:      d.Description,
		FollowersCount: d.FollowersCount,
		FollowingCount: d.FriendsCount,
		LikesCount:     d.FavouritesCount,
		MediaCount:     d.MediaCount,
		Name:           d.Name,
		Location:       d.Location,
		IsPrivate:      d.Protected,
		IsVerified:     d.Verified,
		TweetsCount:    d.StatusesCount,
		UserID:         d.IDStr,
		Joined:         joined,
		Website:        d.URL,
	}
}

type tweetDocument struct {
	IDStr             string `json:"id_str"`
	FullText          string `json:"full_text"`
	Text              string `json:"text"`
	CreatedAt         string `json:"created_at"`
	FavoriteCount     int    `json:"favorite_count"`
	RetweetCount      int    `json:"retweet_count"`
	ReplyCount        int    `json:"reply_count"`
	BookmarkCount     int    `json:"bookmark_count"`
	PossiblySensitive bool   `json:"possibly_sensitive"`
	InReplyToIDStr    string `json:"in_reply_to_status_id_str"`
	QuotedIDStr       string `json:"quoted_status_id_str"`
	Retweeted         *struct{} `json:"retweeted_status"`
	Entities          struct {
		Hashtags []struct {
			Text string `json:"text"`
		} `json:"hashtags"`
		UserMentions []struct {
			ScreenName string `json:"screen_name"`
		} `json:"user_mentions"`
		URLs []struct {
			ExpandedURL string `json:"expanded_url"`
		} `json:"urls"`
		Media []struct {
			Type     string `json:"type"`
			MediaURL string `json:"media_url_https"`
		} `json:"media"`
	} `json:"entities"`
}

func (d tweetDocument) tweet() Tweet {
	text := d.FullText
	if text == "" {
		text = d.Text
	}
	parsed, _ := time.Parse(createdAtLayout, d.CreatedAt)

	tweet := Tweet{
		ID:               d.IDStr,
		Text:             text,
		Likes:            d.FavoriteCount,
		Retweets:         d.RetweetCount,
		Replies:          d.ReplyCount,
		BookmarkCount:    d.BookmarkCount,
		TimeParsed:       parsed,
		IsQuoted:         d.QuotedIDStr != "",
		IsReply:          d.InReplyToIDStr != "",
		IsRetweet:        d.Retweeted != nil,
		SensitiveContent: d.PossiblySensitive,
	}
	for _, hashtag := range d.Entities.Hashtags {
		tweet.Hashtags = append(tweet.Hashtags, hashtag.Text)
	}
	for _, mention := range d.Entities.UserMentions {
		tweet.Mentions = append(tweet.Mentions, mention.ScreenName)
	}
	for _, link := range d.Entities.URLs {
		tweet.URLs = append(tweet.URLs, link.ExpandedURL)
	}
	for _, media := range d.Entities.Media {
		switch media.Type {
		case "photo":
			tweet.Photos = append(tweet.Photos, media.MediaURL)
		case "video", "animated_gif":
			tweet.Videos = append(tweet.Videos, media.MediaURL)
		}
	}
	return tweet
}
