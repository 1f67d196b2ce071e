package twitter

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Scraper is the boundary to the external scraping collaborator. The wire
// protocol behind it is not this tool's concern; implementations only need
// to answer "fetch recent posts for account".
type Scraper interface {
	IsLoggedIn(ctx context.Context) (bool, error)
	GetProfile(ctx context.Context, username string) (*Profile, error)
	GetTweets(ctx context.Context, username string, max int) ([]Tweet, error)
}

// Credentials hold the account login used by the scraping collaborator.
// Cookies, when present, let a scraper resume a prior session without a
// fresh login.
type Credentials struct {
	Username string
	Password string
	Email    string
	Cookies  string
}

// CredentialsFromEnv loads scraper credentials from the environment (and a
// .env file when present). A nil return with nil error means "not
// configured" - callers decide whether that is fatal for their mode.
func CredentialsFromEnv() (*Credentials, error) {
	// A missing .env file is fine; the variables may be set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "loading .env")
	}

	username := os.Getenv("TWITTER_USERNAME")
	password := os.Getenv("TWITTER_PASSWORD")
	email := os.Getenv("TWITTER_EMAIL")
	cookies := os.Getenv("TWITTER_COOKIES")
	if cookies == "" && (username == "" || password == "" || email == "") {
		return nil, nil
	}

	return &Credentials{
		Username: username,
		Password: password,
		Email:    email,
		Cookies:  cookies,
	}, nil
}

// ReplayScraper serves a previously distilled account document instead of
// hitting the network. It backs the --offline flag and the test suites.
type ReplayScraper struct {
	account *Account
}

func NewReplayScraper(account *Account) *ReplayScraper {
	return &ReplayScraper{account: account}
}

// ReplayFromFile loads a saved <handle>.distilled.json document.
func ReplayFromFile(path string) (*ReplayScraper, error) {
	account, err := LoadAccount(path)
	if err != nil {
		return nil, err
	}
	return NewReplayScraper(account), nil
}

func (o *ReplayScraper) IsLoggedIn(ctx context.Context) (bool, error) {
	return true, nil
}

func (o *ReplayScraper) GetProfile(ctx context.Context, username string) (*Profile, error) {
	if username != o.account.Username {
		return nil, errors.Errorf("no recorded profile for %s", username)
	}
	profile := o.account.Profile
	return &profile, nil
}

func (o *ReplayScraper) GetTweets(ctx context.Context, username string, max int) ([]Tweet, error) {
	if username != o.account.Username {
		return nil, errors.Errorf("no recorded tweets for %s", username)
	}
	tweets := o.account.Tweets
	if max > 0 && len(tweets) > max {
		tweets = tweets[:max]
	}
	return tweets, nil
}
