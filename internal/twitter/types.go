package twitter

import "time"

// Profile is the public account information returned by the scraping
// collaborator. Downstream code treats the distilled document as opaque;
// these fields exist so it serializes the way the prompt templates expect.
type Profile struct {
	Avatar         string    `json:"avatar,omitempty"`
	Biography      string    `json:"biography,omitempty"`
	FollowersCount int       `json:"followersCount"`
	FollowingCount int       `json:"followingCount"`
	LikesCount     int       `json:"likesCount"`
	MediaCount     int       `json:"mediaCount"`
	Name           string    `json:"name,omitempty"`
	Location       string    `json:"location,omitempty"`
	IsPrivate      bool      `json:"isPrivate"`
	IsVerified     bool      `json:"isVerified"`
	TweetsCount    int       `json:"tweetsCount"`
	UserID         string    `json:"userId,omitempty"`
	Joined         time.Time `json:"joined,omitzero"`
	Website        string    `json:"website,omitempty"`
}

type Tweet struct {
	ID               string    `json:"id"`
	Text             string    `json:"text"`
	Likes            int       `json:"likes"`
	Retweets         int       `json:"retweets"`
	Replies          int       `json:"replies"`
	BookmarkCount    int       `json:"bookmarkCount"`
	Views            int       `json:"views"`
	Hashtags         []string  `json:"hashtags,omitempty"`
	Mentions         []string  `json:"mentions,omitempty"`
	Photos           []string  `json:"photos,omitempty"`
	Videos           []string  `json:"videos,omitempty"`
	URLs             []string  `json:"urls,omitempty"`
	TimeParsed       time.Time `json:"timeParsed,omitzero"`
	IsQuoted         bool      `json:"isQuoted"`
	IsReply          bool      `json:"isReply"`
	IsRetweet        bool      `json:"isRetweet"`
	IsPin            bool      `json:"isPin"`
	SensitiveContent bool      `json:"sensitiveContent"`
	HTML             string    `json:"html,omitempty"`
}

// Account is the distilled profile document: the account's profile plus its
// recent posts, newest first. It is injected verbatim into prompt templates.
type Account struct {
	Username string  `json:"username"`
	Profile  Profile `json:"profile"`
	Tweets   []Tweet `json:"tweets"`
}

// NewestTweetID returns the id of the most recent post, or empty when the
// account has none. Core uses it as the persona cache freshness marker.
func (a *Account) NewestTweetID() string {
	if len(a.Tweets) == 0 {
		return ""
	}
	return a.Tweets[0].ID
}
